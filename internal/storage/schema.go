// Supplies canonical default documents for newly materialized tenants and
// for the global platform file. Every call returns an independent value so
// callers can never alias a shared template across tenants.

package storage

import (
	"github.com/tiendakit/tiendakit/internal/models"
)

// Default store configuration values.
const (
	// DefaultStoreName is the store name assigned to a fresh tenant.
	DefaultStoreName = "Mi Tienda"
	// DefaultThemeID is the visual theme assigned to a fresh tenant.
	DefaultThemeID = "tienda-mascotas"
)

// NewStoreConfig returns the default config singleton for a fresh tenant.
func NewStoreConfig() models.StoreConfig {
	return models.StoreConfig{
		StoreName:   DefaultStoreName,
		ThemeID:     DefaultThemeID,
		SocialLinks: map[string]string{},
	}
}

// NewAnalytics returns the default analytics singleton for a fresh tenant.
func NewAnalytics() models.Analytics {
	return models.Analytics{
		ProductsSold:   []models.ProductSales{},
		MonthlyRevenue: []models.MonthlyRevenue{},
	}
}

// NewTenantData returns the default tenant document: all seven collections
// empty, config and analytics at documented defaults.
func NewTenantData() *models.TenantData {
	return &models.TenantData{
		Products:   []models.Product{},
		Categories: []models.Category{},
		Orders:     []models.Order{},
		Customers:  []models.Customer{},
		Pages:      []models.Page{},
		Gallery:    []models.GalleryItem{},
		Shipments:  []models.Shipment{},
		Config:     NewStoreConfig(),
		Analytics:  NewAnalytics(),
	}
}

// NewPlatformData returns the default global document: all collections
// empty and counters zeroed.
func NewPlatformData() *models.PlatformData {
	return &models.PlatformData{
		Users:             []models.StoredUser{},
		Subscriptions:     []models.Subscription{},
		VerificationCodes: []models.VerificationCode{},
		PlatformStats:     models.PlatformStats{},
	}
}

// repairTenantData fills defaults into zero-valued singleton fields of a
// document read from disk, so data written by an older version still
// presents the full documented shape. Collections stay as-is; nil slices
// are normalized to empty ones.
func repairTenantData(d *models.TenantData) {
	if d.Config.StoreName == "" {
		d.Config.StoreName = DefaultStoreName
	}
	if d.Config.ThemeID == "" {
		d.Config.ThemeID = DefaultThemeID
	}
	if d.Config.SocialLinks == nil {
		d.Config.SocialLinks = map[string]string{}
	}
	if d.Products == nil {
		d.Products = []models.Product{}
	}
	if d.Categories == nil {
		d.Categories = []models.Category{}
	}
	if d.Orders == nil {
		d.Orders = []models.Order{}
	}
	if d.Customers == nil {
		d.Customers = []models.Customer{}
	}
	if d.Pages == nil {
		d.Pages = []models.Page{}
	}
	if d.Gallery == nil {
		d.Gallery = []models.GalleryItem{}
	}
	if d.Shipments == nil {
		d.Shipments = []models.Shipment{}
	}
	if d.Analytics.ProductsSold == nil {
		d.Analytics.ProductsSold = []models.ProductSales{}
	}
	if d.Analytics.MonthlyRevenue == nil {
		d.Analytics.MonthlyRevenue = []models.MonthlyRevenue{}
	}
}

// repairPlatformData normalizes nil collections of the global document.
func repairPlatformData(d *models.PlatformData) {
	if d.Users == nil {
		d.Users = []models.StoredUser{}
	}
	if d.Subscriptions == nil {
		d.Subscriptions = []models.Subscription{}
	}
	if d.VerificationCodes == nil {
		d.VerificationCodes = []models.VerificationCode{}
	}
}
