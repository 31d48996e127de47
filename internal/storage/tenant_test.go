package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/tiendakit/tiendakit/internal/jsondoc"
	"github.com/tiendakit/tiendakit/internal/models"
)

func setupTenantStore(t *testing.T) *TenantStore {
	t.Helper()
	return NewTenantStore(NewLayout(t.TempDir()))
}

func TestLoadMaterializesDefaults(t *testing.T) {
	s := setupTenantStore(t)

	data, err := s.Load("fresh-tenant")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(data, NewTenantData()) {
		t.Errorf("fresh tenant document differs from canonical default: %+v", data)
	}
	if data.Config.StoreName != "Mi Tienda" {
		t.Errorf("expected default store name, got %q", data.Config.StoreName)
	}
	if data.Config.ThemeID != "tienda-mascotas" {
		t.Errorf("expected default theme, got %q", data.Config.ThemeID)
	}
}

func TestDefaultsAreIndependent(t *testing.T) {
	a := NewTenantData()
	b := NewTenantData()
	a.Config.SocialLinks["instagram"] = "https://example.com"
	a.Products = append(a.Products, models.Product{Name: "Widget"})
	if len(b.Config.SocialLinks) != 0 || len(b.Products) != 0 {
		t.Error("mutating one default document leaked into another")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := setupTenantStore(t)

	data := NewTenantData()
	data.Products = append(data.Products, models.Product{
		ID:    "p1",
		Name:  "Collar",
		Price: 9.99,
		Stock: 3,
	})
	data.Config.StoreName = "Petlandia"
	data.Config.SocialLinks["x"] = "https://x.example"
	data.Analytics.TotalSales = 123.45

	if err := s.Save("acme", data); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := s.Load("acme")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, data) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, data)
	}
}

func TestTenantIsolation(t *testing.T) {
	s := setupTenantStore(t)

	if _, err := Products.Insert(s, "tenant-a", models.Product{Name: "Widget", Price: 9.99}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	aProducts, err := Products.List(s, "tenant-a")
	if err != nil {
		t.Fatal(err)
	}
	bProducts, err := Products.List(s, "tenant-b")
	if err != nil {
		t.Fatal(err)
	}
	if len(aProducts) != 1 {
		t.Errorf("expected 1 product in tenant-a, got %d", len(aProducts))
	}
	if len(bProducts) != 0 {
		t.Errorf("tenant-a's product leaked into tenant-b: %+v", bProducts)
	}

	// And the other direction.
	if _, err := Products.Insert(s, "tenant-b", models.Product{Name: "Gadget"}); err != nil {
		t.Fatal(err)
	}
	aProducts, err = Products.List(s, "tenant-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(aProducts) != 1 || aProducts[0].Name != "Widget" {
		t.Errorf("tenant-b's write affected tenant-a: %+v", aProducts)
	}
}

func TestCollectionCRUD(t *testing.T) {
	s := setupTenantStore(t)

	inserted, err := Products.Insert(s, "acme", models.Product{Name: "Widget", Price: 9.99, Status: models.ProductDraft})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if inserted.ID == "" {
		t.Error("expected generated ID")
	}
	if inserted.CreatedAt.IsZero() || inserted.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := Products.Get(s, "acme", inserted.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Widget" {
		t.Errorf("expected Widget, got %q", got.Name)
	}

	updated, err := Products.Update(s, "acme", inserted.ID, func(p *models.Product) {
		p.Price = 12.50
		p.ID = "hijacked" // must be discarded
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Price != 12.50 {
		t.Errorf("expected updated price, got %v", updated.Price)
	}
	if updated.ID != inserted.ID {
		t.Errorf("record ID must be immutable, got %q", updated.ID)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Error("expected UpdatedAt to be refreshed")
	}

	if err := Products.Delete(s, "acme", inserted.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := Products.Get(s, "acme", inserted.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound after delete, got %v", err)
	}
	if err := Products.Delete(s, "acme", "missing"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

// TestConcurrentInsertsNoLostUpdate is the regression test for the
// lost-update race: two concurrent inserts against the same tenant must
// both be present afterwards.
func TestConcurrentInsertsNoLostUpdate(t *testing.T) {
	s := setupTenantStore(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	names := []string{"Widget", "Gadget"}
	for i := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = Products.Insert(s, "acme", models.Product{Name: names[i], Price: 9.99})
		}()
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	products, err := Products.List(s, "acme")
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 2 {
		t.Fatalf("lost update: expected 2 products, got %d", len(products))
	}
	seen := map[string]bool{}
	for _, p := range products {
		seen[p.Name] = true
	}
	if !seen["Widget"] || !seen["Gadget"] {
		t.Errorf("expected both Widget and Gadget, got %+v", seen)
	}
}

func TestConcurrentUpdatesSerialize(t *testing.T) {
	s := setupTenantStore(t)
	p, err := Products.Insert(s, "acme", models.Product{Name: "Widget", Stock: 0})
	if err != nil {
		t.Fatal(err)
	}

	const n = 20
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = Products.Update(s, "acme", p.ID, func(prod *models.Product) {
				prod.Stock++
			})
		}()
	}
	wg.Wait()

	got, err := Products.Get(s, "acme", p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Stock != n {
		t.Errorf("lost update: expected stock %d, got %d", n, got.Stock)
	}
}

func TestCorruptCollectionSurfaces(t *testing.T) {
	layout := NewLayout(t.TempDir())
	s := NewTenantStore(layout)

	path, err := layout.TenantFile("acme", ColProducts)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	var corrupt *jsondoc.CorruptError
	if _, err := Products.List(s, "acme"); !errors.As(err, &corrupt) {
		t.Errorf("expected CorruptError from List, got %v", err)
	}
	if _, err := s.Load("acme"); !errors.As(err, &corrupt) {
		t.Errorf("expected CorruptError from Load, got %v", err)
	}
}

func TestInvalidTenantIDRejectedBeforeIO(t *testing.T) {
	root := t.TempDir()
	s := NewTenantStore(NewLayout(root))

	if _, err := Products.Insert(s, "../escape", models.Product{Name: "evil"}); !errors.Is(err, ErrInvalidTenantID) {
		t.Fatalf("expected ErrInvalidTenantID, got %v", err)
	}
	// Nothing may have been written anywhere under the root.
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("filesystem touched for invalid tenant ID: %v", entries)
	}
}

func TestCreateAndExists(t *testing.T) {
	s := setupTenantStore(t)

	if s.Exists("acme") {
		t.Error("tenant should not exist yet")
	}
	err := s.Create("acme", func(cfg *models.StoreConfig) {
		cfg.StoreName = "Acme Store"
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !s.Exists("acme") {
		t.Error("tenant should exist after Create")
	}

	cfg, err := s.Config("acme")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StoreName != "Acme Store" {
		t.Errorf("expected configured store name, got %q", cfg.StoreName)
	}
	if cfg.ThemeID != DefaultThemeID {
		t.Errorf("expected default theme preserved, got %q", cfg.ThemeID)
	}
}

func TestUpdateConfig(t *testing.T) {
	s := setupTenantStore(t)

	cfg, err := s.UpdateConfig("acme", func(c *models.StoreConfig) {
		c.StoreName = "La Esquina"
		c.Published = true
		c.SocialLinks["instagram"] = "https://instagram.example"
	})
	if err != nil {
		t.Fatalf("UpdateConfig failed: %v", err)
	}
	if cfg.StoreName != "La Esquina" || !cfg.Published {
		t.Errorf("unexpected config: %+v", cfg)
	}

	reloaded, err := s.Config("acme")
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.SocialLinks["instagram"] == "" {
		t.Error("expected social link to persist")
	}
}

func TestRecordSale(t *testing.T) {
	s := setupTenantStore(t)

	order := &models.Order{
		Total: 30,
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Widget", Price: 10, Quantity: 2},
			{ProductID: "p2", Name: "Gadget", Price: 10, Quantity: 1},
		},
	}
	if _, err := s.RecordSale("acme", order); err != nil {
		t.Fatalf("RecordSale failed: %v", err)
	}
	// Second sale of an existing product merges into its aggregate.
	a, err := s.RecordSale("acme", &models.Order{
		Total: 10,
		Items: []models.OrderItem{{ProductID: "p1", Name: "Widget", Price: 10, Quantity: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if a.TotalSales != 40 {
		t.Errorf("expected total sales 40, got %v", a.TotalSales)
	}
	if a.TotalOrders != 2 {
		t.Errorf("expected 2 orders, got %d", a.TotalOrders)
	}
	if len(a.ProductsSold) != 2 {
		t.Fatalf("expected 2 product aggregates, got %d", len(a.ProductsSold))
	}
	for _, ps := range a.ProductsSold {
		if ps.ProductID == "p1" {
			if ps.Quantity != 3 || ps.Revenue != 30 {
				t.Errorf("p1 aggregate wrong: %+v", ps)
			}
		}
	}
	if len(a.MonthlyRevenue) != 1 || a.MonthlyRevenue[0].Revenue != 40 {
		t.Errorf("monthly revenue wrong: %+v", a.MonthlyRevenue)
	}
}

func TestSchemaRepairFillsMissingFields(t *testing.T) {
	layout := NewLayout(t.TempDir())
	s := NewTenantStore(layout)

	// Simulate a config written by an older version missing newer fields.
	path, err := layout.TenantFile("acme", ColConfig)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"storeName": "Vieja Tienda"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := s.Load("acme")
	if err != nil {
		t.Fatal(err)
	}
	if data.Config.StoreName != "Vieja Tienda" {
		t.Errorf("existing field dropped: %q", data.Config.StoreName)
	}
	if data.Config.ThemeID != DefaultThemeID {
		t.Errorf("missing field not defaulted: %q", data.Config.ThemeID)
	}
	if data.Config.SocialLinks == nil {
		t.Error("social links not materialized")
	}
}
