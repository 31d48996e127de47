// Implements read-modify-write access to one tenant's collections with
// per-tenant serialization.
//
// The process is the only writer of the data directory, but concurrent
// requests against the same tenant would otherwise interleave between the
// read of a collection file and its write-back, silently losing the first
// writer's change. Every mutation therefore runs under a mutex keyed by
// tenant ID, serializing the whole load-mutate-save sequence.

package storage

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tiendakit/tiendakit/internal/jsondoc"
	"github.com/tiendakit/tiendakit/internal/models"
)

// Collection file names within a tenant directory.
const (
	ColProducts   = "products"
	ColCategories = "categories"
	ColOrders     = "orders"
	ColCustomers  = "customers"
	ColPages      = "pages"
	ColGallery    = "gallery"
	ColShipments  = "shipments"
	ColConfig     = "config"
	ColAnalytics  = "analytics"
)

// ErrRecordNotFound is returned when a record ID does not exist in the
// addressed collection.
var ErrRecordNotFound = errors.New("record not found")

// TenantStore provides isolated access to per-tenant collections.
// A missing tenant is materialized from the default schema on first use.
type TenantStore struct {
	layout *Layout

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewTenantStore creates a tenant store over the given layout.
func NewTenantStore(layout *Layout) *TenantStore {
	return &TenantStore{
		layout: layout,
		locks:  make(map[string]*sync.Mutex),
	}
}

// lock returns the mutex serializing all mutations for one tenant,
// creating it on first use. The caller must have validated tenantID.
func (s *TenantStore) lock(tenantID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[tenantID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[tenantID] = l
	}
	return l
}

// Exists reports whether the tenant's directory has been created.
func (s *TenantStore) Exists(tenantID string) bool {
	dir, err := s.layout.TenantDir(tenantID)
	if err != nil {
		return false
	}
	if _, err := os.Stat(dir); err != nil {
		return false
	}
	return true
}

// Create provisions a tenant directory with the default document,
// applying config overrides. Creating an existing tenant overwrites only
// files that are part of the default set that are missing; it never
// clobbers existing collections.
func (s *TenantStore) Create(tenantID string, configure func(*models.StoreConfig)) error {
	if err := ValidateTenantID(tenantID); err != nil {
		return err
	}
	l := s.lock(tenantID)
	l.Lock()
	defer l.Unlock()

	data := NewTenantData()
	if configure != nil {
		configure(&data.Config)
	}
	return s.saveAllLocked(tenantID, data)
}

// Load returns the tenant's full document, materializing defaults for
// collections that have never been written. A file that exists but fails
// to parse surfaces a *jsondoc.CorruptError.
func (s *TenantStore) Load(tenantID string) (*models.TenantData, error) {
	if err := ValidateTenantID(tenantID); err != nil {
		return nil, err
	}
	data := NewTenantData()
	for name, v := range map[string]any{
		ColProducts:   &data.Products,
		ColCategories: &data.Categories,
		ColOrders:     &data.Orders,
		ColCustomers:  &data.Customers,
		ColPages:      &data.Pages,
		ColGallery:    &data.Gallery,
		ColShipments:  &data.Shipments,
		ColConfig:     &data.Config,
		ColAnalytics:  &data.Analytics,
	} {
		if err := s.readCollection(tenantID, name, v); err != nil {
			return nil, err
		}
	}
	repairTenantData(data)
	return data, nil
}

// Save atomically persists the tenant's full document, one file per
// collection, creating the tenant directory if needed.
func (s *TenantStore) Save(tenantID string, data *models.TenantData) error {
	if err := ValidateTenantID(tenantID); err != nil {
		return err
	}
	l := s.lock(tenantID)
	l.Lock()
	defer l.Unlock()
	return s.saveAllLocked(tenantID, data)
}

func (s *TenantStore) saveAllLocked(tenantID string, data *models.TenantData) error {
	for name, v := range map[string]any{
		ColProducts:   data.Products,
		ColCategories: data.Categories,
		ColOrders:     data.Orders,
		ColCustomers:  data.Customers,
		ColPages:      data.Pages,
		ColGallery:    data.Gallery,
		ColShipments:  data.Shipments,
		ColConfig:     data.Config,
		ColAnalytics:  data.Analytics,
	} {
		if err := s.writeCollection(tenantID, name, v); err != nil {
			return err
		}
	}
	return nil
}

// readCollection loads one collection file into v, leaving v untouched
// when the file does not exist (v arrives holding the default).
func (s *TenantStore) readCollection(tenantID, name string, v any) error {
	path, err := s.layout.TenantFile(tenantID, name)
	if err != nil {
		return err
	}
	if _, err := jsondoc.Read(path, v); err != nil {
		return fmt.Errorf("tenant %s collection %s: %w", tenantID, name, err)
	}
	return nil
}

func (s *TenantStore) writeCollection(tenantID, name string, v any) error {
	path, err := s.layout.TenantFile(tenantID, name)
	if err != nil {
		return err
	}
	if err := jsondoc.Write(path, v); err != nil {
		return fmt.Errorf("tenant %s collection %s: %w", tenantID, name, err)
	}
	return nil
}

// Config returns the tenant's config singleton, at defaults when never
// written.
func (s *TenantStore) Config(tenantID string) (models.StoreConfig, error) {
	if err := ValidateTenantID(tenantID); err != nil {
		return models.StoreConfig{}, err
	}
	cfg := NewStoreConfig()
	if err := s.readCollection(tenantID, ColConfig, &cfg); err != nil {
		return models.StoreConfig{}, err
	}
	if cfg.SocialLinks == nil {
		cfg.SocialLinks = map[string]string{}
	}
	return cfg, nil
}

// UpdateConfig applies fn to the tenant's config under the tenant lock
// and persists the result.
func (s *TenantStore) UpdateConfig(tenantID string, fn func(*models.StoreConfig)) (models.StoreConfig, error) {
	if err := ValidateTenantID(tenantID); err != nil {
		return models.StoreConfig{}, err
	}
	l := s.lock(tenantID)
	l.Lock()
	defer l.Unlock()

	cfg := NewStoreConfig()
	if err := s.readCollection(tenantID, ColConfig, &cfg); err != nil {
		return models.StoreConfig{}, err
	}
	if cfg.SocialLinks == nil {
		cfg.SocialLinks = map[string]string{}
	}
	fn(&cfg)
	if err := s.writeCollection(tenantID, ColConfig, cfg); err != nil {
		return models.StoreConfig{}, err
	}
	return cfg, nil
}

// Analytics returns the tenant's analytics singleton.
func (s *TenantStore) Analytics(tenantID string) (models.Analytics, error) {
	if err := ValidateTenantID(tenantID); err != nil {
		return models.Analytics{}, err
	}
	a := NewAnalytics()
	if err := s.readCollection(tenantID, ColAnalytics, &a); err != nil {
		return models.Analytics{}, err
	}
	return a, nil
}

// RecordSale folds an order into the tenant's analytics: cumulative
// revenue and order count, per-product aggregates, and the rolling
// monthly revenue series.
func (s *TenantStore) RecordSale(tenantID string, order *models.Order) (models.Analytics, error) {
	if err := ValidateTenantID(tenantID); err != nil {
		return models.Analytics{}, err
	}
	l := s.lock(tenantID)
	l.Lock()
	defer l.Unlock()

	a := NewAnalytics()
	if err := s.readCollection(tenantID, ColAnalytics, &a); err != nil {
		return models.Analytics{}, err
	}

	a.TotalSales += order.Total
	a.TotalOrders++
	for _, item := range order.Items {
		found := false
		for i := range a.ProductsSold {
			if a.ProductsSold[i].ProductID == item.ProductID {
				a.ProductsSold[i].Quantity += item.Quantity
				a.ProductsSold[i].Revenue += item.Price * float64(item.Quantity)
				found = true
				break
			}
		}
		if !found {
			a.ProductsSold = append(a.ProductsSold, models.ProductSales{
				ProductID:   item.ProductID,
				ProductName: item.Name,
				Quantity:    item.Quantity,
				Revenue:     item.Price * float64(item.Quantity),
			})
		}
	}

	month := time.Now().UTC().Format("2006-01")
	found := false
	for i := range a.MonthlyRevenue {
		if a.MonthlyRevenue[i].Month == month {
			a.MonthlyRevenue[i].Revenue += order.Total
			found = true
			break
		}
	}
	if !found {
		a.MonthlyRevenue = append(a.MonthlyRevenue, models.MonthlyRevenue{Month: month, Revenue: order.Total})
	}

	if err := s.writeCollection(tenantID, ColAnalytics, a); err != nil {
		return models.Analytics{}, err
	}
	return a, nil
}

//

// Record is implemented by all tenant collection record types.
type Record interface {
	GetID() string
	SetID(string)
	GetCreated() time.Time
	SetCreated(time.Time)
	SetUpdated(time.Time)
}

// recordPtr constrains PT to a pointer to T implementing Record.
type recordPtr[T any] interface {
	*T
	Record
}

// Collection is a typed view over one named tenant collection. The
// package-level descriptors (Products, Orders, ...) bind each record type
// to its file name exactly once.
type Collection[T any, PT recordPtr[T]] struct {
	name string
}

// Typed collection descriptors.
var (
	Products   = Collection[models.Product, *models.Product]{name: ColProducts}
	Categories = Collection[models.Category, *models.Category]{name: ColCategories}
	Orders     = Collection[models.Order, *models.Order]{name: ColOrders}
	Customers  = Collection[models.Customer, *models.Customer]{name: ColCustomers}
	Pages      = Collection[models.Page, *models.Page]{name: ColPages}
	Gallery    = Collection[models.GalleryItem, *models.GalleryItem]{name: ColGallery}
	Shipments  = Collection[models.Shipment, *models.Shipment]{name: ColShipments}
)

// Name returns the collection's file name.
func (c Collection[T, PT]) Name() string {
	return c.name
}

// List returns all records of the collection, oldest first.
func (c Collection[T, PT]) List(s *TenantStore, tenantID string) ([]T, error) {
	if err := ValidateTenantID(tenantID); err != nil {
		return nil, err
	}
	items := []T{}
	if err := s.readCollection(tenantID, c.name, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns the record with the given ID.
func (c Collection[T, PT]) Get(s *TenantStore, tenantID, id string) (T, error) {
	var zero T
	items, err := c.List(s, tenantID)
	if err != nil {
		return zero, err
	}
	for i := range items {
		if PT(&items[i]).GetID() == id {
			return items[i], nil
		}
	}
	return zero, fmt.Errorf("tenant %s collection %s id %s: %w", tenantID, c.name, id, ErrRecordNotFound)
}

// Insert appends a record, assigning a fresh UUID and timestamps.
// The whole read-append-write sequence runs under the tenant lock.
func (c Collection[T, PT]) Insert(s *TenantStore, tenantID string, item T) (T, error) {
	var zero T
	if err := ValidateTenantID(tenantID); err != nil {
		return zero, err
	}
	l := s.lock(tenantID)
	l.Lock()
	defer l.Unlock()

	items := []T{}
	if err := s.readCollection(tenantID, c.name, &items); err != nil {
		return zero, err
	}
	now := time.Now().UTC()
	p := PT(&item)
	p.SetID(uuid.NewString())
	p.SetCreated(now)
	p.SetUpdated(now)
	items = append(items, item)
	if err := s.writeCollection(tenantID, c.name, items); err != nil {
		return zero, err
	}
	return item, nil
}

// Update applies fn to the record with the given ID under the tenant
// lock, refreshes its modification timestamp, and persists the
// collection. The record ID is immutable: any ID change made by fn is
// discarded.
func (c Collection[T, PT]) Update(s *TenantStore, tenantID, id string, fn func(*T)) (T, error) {
	var zero T
	if err := ValidateTenantID(tenantID); err != nil {
		return zero, err
	}
	l := s.lock(tenantID)
	l.Lock()
	defer l.Unlock()

	items := []T{}
	if err := s.readCollection(tenantID, c.name, &items); err != nil {
		return zero, err
	}
	for i := range items {
		p := PT(&items[i])
		if p.GetID() != id {
			continue
		}
		fn(&items[i])
		p.SetID(id)
		p.SetUpdated(time.Now().UTC())
		if err := s.writeCollection(tenantID, c.name, items); err != nil {
			return zero, err
		}
		return items[i], nil
	}
	return zero, fmt.Errorf("tenant %s collection %s id %s: %w", tenantID, c.name, id, ErrRecordNotFound)
}

// Delete removes the record with the given ID under the tenant lock.
func (c Collection[T, PT]) Delete(s *TenantStore, tenantID, id string) error {
	if err := ValidateTenantID(tenantID); err != nil {
		return err
	}
	l := s.lock(tenantID)
	l.Lock()
	defer l.Unlock()

	items := []T{}
	if err := s.readCollection(tenantID, c.name, &items); err != nil {
		return err
	}
	for i := range items {
		if PT(&items[i]).GetID() != id {
			continue
		}
		items = append(items[:i], items[i+1:]...)
		return s.writeCollection(tenantID, c.name, items)
	}
	return fmt.Errorf("tenant %s collection %s id %s: %w", tenantID, c.name, id, ErrRecordNotFound)
}

// Replace overwrites the whole collection under the tenant lock.
func (c Collection[T, PT]) Replace(s *TenantStore, tenantID string, items []T) error {
	if err := ValidateTenantID(tenantID); err != nil {
		return err
	}
	l := s.lock(tenantID)
	l.Lock()
	defer l.Unlock()
	return s.writeCollection(tenantID, c.name, items)
}
