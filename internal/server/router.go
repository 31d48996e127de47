// Implements HTTP routing for the API.

package server

import (
	"net/http"

	"github.com/tiendakit/tiendakit/internal/server/handlers"
	"github.com/tiendakit/tiendakit/internal/server/ratelimit"
	"github.com/tiendakit/tiendakit/internal/storage"
)

// NewRouter creates and configures the HTTP router. All API endpoints live
// under /api; record CRUD is always scoped to the token's tenant.
func NewRouter(svc *handlers.Services, cfg *handlers.Config, limiters *ratelimit.Config) http.Handler {
	mux := &http.ServeMux{}

	authh := handlers.NewAuthHandler(svc.Platform, cfg.JWTSecret)
	storeh := handlers.NewStoreHandler(svc.Tenants, svc.Aggregation)
	subh := handlers.NewSubscriptionHandler(svc.Platform)
	pubh := handlers.NewPublicHandler(svc.Tenants, svc.Aggregation)
	adminh := handlers.NewAdminHandler(svc.Platform, svc.Aggregation)
	schemah := handlers.NewSchemaHandler()
	hh := handlers.NewHealthHandler(cfg.Version)

	// Health check
	mux.Handle("/api/health", Wrap(hh.Health, cfg, limiters))

	// Auth endpoints
	mux.Handle("POST /api/auth/register", Wrap(authh.Register, cfg, limiters))
	mux.Handle("POST /api/auth/login", Wrap(authh.Login, cfg, limiters))
	mux.Handle("GET /api/auth/me", WrapAuth(authh.Me, svc, cfg, limiters))
	mux.Handle("POST /api/auth/verify/request", Wrap(authh.RequestCode, cfg, limiters))
	mux.Handle("POST /api/auth/verify", Wrap(authh.VerifyEmail, cfg, limiters))

	// Tenant record collections
	registerCollection(mux, "products", handlers.NewCollectionHandler(svc.Tenants, storage.Products, validateProduct), svc, cfg, limiters)
	registerCollection(mux, "categories", handlers.NewCollectionHandler(svc.Tenants, storage.Categories, validateCategory), svc, cfg, limiters)
	registerCollection(mux, "orders", handlers.NewCollectionHandler(svc.Tenants, storage.Orders, validateOrder), svc, cfg, limiters)
	registerCollection(mux, "customers", handlers.NewCollectionHandler(svc.Tenants, storage.Customers, validateCustomer), svc, cfg, limiters)
	registerCollection(mux, "pages", handlers.NewCollectionHandler(svc.Tenants, storage.Pages, validatePage), svc, cfg, limiters)
	registerCollection(mux, "gallery", handlers.NewCollectionHandler(svc.Tenants, storage.Gallery, validateGalleryItem), svc, cfg, limiters)
	registerCollection(mux, "shipments", handlers.NewCollectionHandler(svc.Tenants, storage.Shipments, validateShipment), svc, cfg, limiters)

	// Store configuration and analytics singletons
	mux.Handle("GET /api/store/config", WrapAuth(storeh.GetConfig, svc, cfg, limiters))
	mux.Handle("PUT /api/store/config", WrapAuth(storeh.UpdateConfig, svc, cfg, limiters))
	mux.Handle("GET /api/store/analytics", WrapAuth(storeh.GetAnalytics, svc, cfg, limiters))
	mux.Handle("POST /api/store/analytics/record-sale", WrapAuth(storeh.RecordSale, svc, cfg, limiters))
	mux.Handle("GET /api/store/trends", WrapAuth(storeh.Trends, svc, cfg, limiters))

	// Subscriptions
	mux.Handle("POST /api/subscriptions", WrapAuth(subh.Create, svc, cfg, limiters))
	mux.Handle("GET /api/subscriptions/active", WrapAuth(subh.GetActive, svc, cfg, limiters))
	mux.Handle("DELETE /api/subscriptions/{id}", WrapAuth(subh.Cancel, svc, cfg, limiters))

	// Public marketplace
	mux.Handle("GET /api/public/marketplace", Wrap(pubh.Marketplace, cfg, limiters))
	mux.Handle("GET /api/public/stores", Wrap(pubh.Stores, cfg, limiters))
	mux.Handle("GET /api/public/flash-deals", Wrap(pubh.FlashDeals, cfg, limiters))
	mux.Handle("GET /api/public/stores/{tenantID}", Wrap(pubh.Storefront, cfg, limiters))

	// Super admin
	mux.Handle("GET /api/admin/stats", WrapAdmin(adminh.Stats, svc, cfg, limiters))
	mux.Handle("GET /api/admin/global-stats", WrapAdmin(adminh.GlobalStats, svc, cfg, limiters))
	mux.Handle("GET /api/admin/users", WrapAdmin(adminh.ListUsers, svc, cfg, limiters))

	// Collection schemas for the editor
	mux.Handle("GET /api/schema/{collection}", Wrap(schemah.Get, cfg, limiters))

	return mux
}

// registerCollection wires the five CRUD routes of one tenant collection.
func registerCollection[T any, PT interface {
	*T
	storage.Record
}](mux *http.ServeMux, name string, h *handlers.CollectionHandler[T, PT], svc *handlers.Services, cfg *handlers.Config, limiters *ratelimit.Config) {
	mux.Handle("GET /api/store/"+name, WrapAuth(h.List, svc, cfg, limiters))
	mux.Handle("GET /api/store/"+name+"/{id}", WrapAuth(h.Get, svc, cfg, limiters))
	mux.Handle("POST /api/store/"+name, WrapAuth(h.Create, svc, cfg, limiters))
	mux.Handle("PUT /api/store/"+name+"/{id}", WrapAuth(h.Update, svc, cfg, limiters))
	mux.Handle("DELETE /api/store/"+name+"/{id}", WrapAuth(h.Delete, svc, cfg, limiters))
}
