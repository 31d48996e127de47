// Cross-tenant aggregation for the super-admin dashboard and the public
// marketplace. Reads fan out over every tenant referenced by the user
// directory; a tenant that cannot be read is skipped rather than failing
// the whole aggregate.

package storage

import (
	"log/slog"
	"sort"

	"github.com/tiendakit/tiendakit/internal/models"
)

// GlobalStats aggregates catalog and revenue figures across all tenants.
type GlobalStats struct {
	TotalTenants            int                `json:"totalTenants"`
	ActiveSubscriptions     int                `json:"activeSubscriptions"`
	TotalProducts           int                `json:"totalProducts"`
	TotalOrders             int                `json:"totalOrders"`
	TotalRevenue            float64            `json:"totalRevenue"`
	ProductsByCategory      map[string]int     `json:"productsByCategory"`
	TopProducts             []MarketplaceSales `json:"topProducts"`
	MonthlyRecurringRevenue float64            `json:"monthlyRecurringRevenue"`
}

// MarketplaceSales is a per-product sales aggregate attributed to a store.
type MarketplaceSales struct {
	models.ProductSales
	TenantID  string `json:"tenantId"`
	StoreName string `json:"storeName"`
}

// MarketplaceProduct is a published product enriched with its store.
type MarketplaceProduct struct {
	models.Product
	TenantID  string `json:"tenantId"`
	StoreName string `json:"storeName"`
	StoreURL  string `json:"storeUrl"`
}

// StoreSummary is one entry of the public store directory.
type StoreSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	Logo         string `json:"logo,omitempty"`
	ProductCount int    `json:"productCount"`
}

// CategoryCount pairs a category with how many products it holds.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TrendingProduct is a cross-tenant best seller shown to store owners.
type TrendingProduct struct {
	Name  string `json:"name"`
	Sales int    `json:"sales"`
}

// Trends is the cross-tenant snapshot exposed to individual tenants.
type Trends struct {
	TopSellingCategories []CategoryCount   `json:"topSellingCategories"`
	TrendingProducts     []TrendingProduct `json:"trendingProducts"`
	PlatformAvgRevenue   float64           `json:"platformAvgRevenue"`
}

// AggregationService computes read-only cross-tenant views. It only ever
// reads, so it needs no locking discipline of its own.
type AggregationService struct {
	platform *PlatformStore
	tenants  *TenantStore
}

// NewAggregationService creates the aggregation service.
func NewAggregationService(platform *PlatformStore, tenants *TenantStore) *AggregationService {
	return &AggregationService{platform: platform, tenants: tenants}
}

// GlobalStats walks every tenant and totals products, orders, and revenue.
func (s *AggregationService) GlobalStats() (*GlobalStats, error) {
	data, err := s.platform.Load()
	if err != nil {
		return nil, err
	}

	stats := &GlobalStats{
		TotalTenants:            len(data.Users),
		MonthlyRecurringRevenue: data.PlatformStats.MonthlyRevenue,
		ProductsByCategory:      map[string]int{},
		TopProducts:             []MarketplaceSales{},
	}
	for i := range data.Subscriptions {
		if data.Subscriptions[i].Status == models.SubscriptionActive {
			stats.ActiveSubscriptions++
		}
	}

	for i := range data.Users {
		user := &data.Users[i]
		if user.TenantID == "" || !s.tenants.Exists(user.TenantID) {
			continue
		}
		products, err := Products.List(s.tenants, user.TenantID)
		if err != nil {
			slog.Warn("Skipping tenant in global stats", "tenantID", user.TenantID, "err", err)
			continue
		}
		orders, err := Orders.List(s.tenants, user.TenantID)
		if err != nil {
			slog.Warn("Skipping tenant in global stats", "tenantID", user.TenantID, "err", err)
			continue
		}
		analytics, err := s.tenants.Analytics(user.TenantID)
		if err != nil {
			slog.Warn("Skipping tenant in global stats", "tenantID", user.TenantID, "err", err)
			continue
		}

		stats.TotalProducts += len(products)
		stats.TotalOrders += len(orders)
		stats.TotalRevenue += analytics.TotalSales
		for j := range products {
			cat := products[j].Category
			if cat == "" {
				cat = "Sin categoría"
			}
			stats.ProductsByCategory[cat]++
		}
		for _, sold := range analytics.ProductsSold {
			stats.TopProducts = append(stats.TopProducts, MarketplaceSales{
				ProductSales: sold,
				TenantID:     user.TenantID,
				StoreName:    user.Name,
			})
		}
	}

	sort.Slice(stats.TopProducts, func(i, j int) bool {
		return stats.TopProducts[i].Quantity > stats.TopProducts[j].Quantity
	})
	if len(stats.TopProducts) > 10 {
		stats.TopProducts = stats.TopProducts[:10]
	}
	return stats, nil
}

// TrendsForTenant condenses global stats into the view shown to a store
// owner: top categories, trending products, and the platform average.
func (s *AggregationService) TrendsForTenant() (*Trends, error) {
	stats, err := s.GlobalStats()
	if err != nil {
		return nil, err
	}

	categories := make([]CategoryCount, 0, len(stats.ProductsByCategory))
	for cat, count := range stats.ProductsByCategory {
		categories = append(categories, CategoryCount{Category: cat, Count: count})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}
		return categories[i].Category < categories[j].Category
	})
	if len(categories) > 5 {
		categories = categories[:5]
	}

	trending := make([]TrendingProduct, 0, 5)
	for _, p := range stats.TopProducts {
		trending = append(trending, TrendingProduct{Name: p.ProductName, Sales: p.Quantity})
		if len(trending) == 5 {
			break
		}
	}

	tenants := stats.TotalTenants
	if tenants == 0 {
		tenants = 1
	}
	return &Trends{
		TopSellingCategories: categories,
		TrendingProducts:     trending,
		PlatformAvgRevenue:   stats.TotalRevenue / float64(tenants),
	}, nil
}

// MarketplaceProducts returns every published product across all tenants,
// newest first, enriched with store attribution.
func (s *AggregationService) MarketplaceProducts() ([]MarketplaceProduct, error) {
	data, err := s.platform.Load()
	if err != nil {
		return nil, err
	}

	all := []MarketplaceProduct{}
	for i := range data.Users {
		user := &data.Users[i]
		if user.TenantID == "" || !s.tenants.Exists(user.TenantID) {
			continue
		}
		cfg, err := s.tenants.Config(user.TenantID)
		if err != nil {
			slog.Warn("Skipping tenant in marketplace", "tenantID", user.TenantID, "err", err)
			continue
		}
		storeName := cfg.StoreName
		if storeName == "" {
			storeName = user.Name + "'s Store"
		}
		products, err := Products.List(s.tenants, user.TenantID)
		if err != nil {
			slog.Warn("Skipping tenant in marketplace", "tenantID", user.TenantID, "err", err)
			continue
		}
		for j := range products {
			if products[j].Status != models.ProductPublished {
				continue
			}
			all = append(all, MarketplaceProduct{
				Product:   products[j],
				TenantID:  user.TenantID,
				StoreName: storeName,
				StoreURL:  "/store/" + user.TenantID,
			})
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

// Stores returns the public store directory: published stores with their
// product counts.
func (s *AggregationService) Stores() ([]StoreSummary, error) {
	data, err := s.platform.Load()
	if err != nil {
		return nil, err
	}

	stores := []StoreSummary{}
	for i := range data.Users {
		user := &data.Users[i]
		if user.TenantID == "" || !s.tenants.Exists(user.TenantID) {
			continue
		}
		cfg, err := s.tenants.Config(user.TenantID)
		if err != nil {
			slog.Warn("Skipping tenant in store directory", "tenantID", user.TenantID, "err", err)
			continue
		}
		if !cfg.Published {
			continue
		}
		products, err := Products.List(s.tenants, user.TenantID)
		if err != nil {
			slog.Warn("Skipping tenant in store directory", "tenantID", user.TenantID, "err", err)
			continue
		}
		name := cfg.StoreName
		if name == "" {
			name = user.Name + "'s Store"
		}
		stores = append(stores, StoreSummary{
			ID:           user.TenantID,
			Name:         name,
			URL:          "/store/" + user.TenantID,
			Logo:         cfg.LogoURL,
			ProductCount: len(products),
		})
	}
	return stores, nil
}

// FlashDeals returns each store's best published discount, ordered by the
// deepest discount across the platform.
func (s *AggregationService) FlashDeals() ([]MarketplaceProduct, error) {
	data, err := s.platform.Load()
	if err != nil {
		return nil, err
	}

	deals := []MarketplaceProduct{}
	for i := range data.Users {
		user := &data.Users[i]
		if user.TenantID == "" || !s.tenants.Exists(user.TenantID) {
			continue
		}
		cfg, err := s.tenants.Config(user.TenantID)
		if err != nil {
			slog.Warn("Skipping tenant in flash deals", "tenantID", user.TenantID, "err", err)
			continue
		}
		storeName := cfg.StoreName
		if storeName == "" {
			storeName = user.Name + "'s Store"
		}
		products, err := Products.List(s.tenants, user.TenantID)
		if err != nil {
			slog.Warn("Skipping tenant in flash deals", "tenantID", user.TenantID, "err", err)
			continue
		}

		var best *models.Product
		for j := range products {
			p := &products[j]
			if p.Status != models.ProductPublished || p.Discount <= 0 {
				continue
			}
			if best == nil || p.Discount > best.Discount {
				best = p
			}
		}
		if best != nil {
			deals = append(deals, MarketplaceProduct{
				Product:   *best,
				TenantID:  user.TenantID,
				StoreName: storeName,
				StoreURL:  "/store/" + user.TenantID,
			})
		}
	}

	sort.Slice(deals, func(i, j int) bool {
		return deals[i].Discount > deals[j].Discount
	})
	return deals, nil
}
