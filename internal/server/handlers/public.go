// Handles the unauthenticated marketplace and storefront endpoints.

package handlers

import (
	"context"

	"github.com/tiendakit/tiendakit/internal/models"
	"github.com/tiendakit/tiendakit/internal/server/dto"
	"github.com/tiendakit/tiendakit/internal/storage"
)

// PublicHandler handles cross-store endpoints that need no authentication.
type PublicHandler struct {
	tenants *storage.TenantStore
	agg     *storage.AggregationService
}

// NewPublicHandler creates a new public handler.
func NewPublicHandler(tenants *storage.TenantStore, agg *storage.AggregationService) *PublicHandler {
	return &PublicHandler{tenants: tenants, agg: agg}
}

// MarketplaceResponse is the cross-store product feed.
type MarketplaceResponse struct {
	Products []storage.MarketplaceProduct `json:"products"`
	Total    int                          `json:"total"`
}

// Marketplace returns published products across all stores, newest first.
func (h *PublicHandler) Marketplace(ctx context.Context, req *dto.MarketplaceRequest) (*MarketplaceResponse, error) {
	products, err := h.agg.MarketplaceProducts()
	if err != nil {
		return nil, storageError("marketplace", err)
	}
	total := len(products)
	if req.Limit > 0 && req.Limit < len(products) {
		products = products[:req.Limit]
	}
	return &MarketplaceResponse{Products: products, Total: total}, nil
}

// StoresResponse is the public store directory.
type StoresResponse struct {
	Stores []storage.StoreSummary `json:"stores"`
}

// Stores returns the directory of published stores.
func (h *PublicHandler) Stores(ctx context.Context, _ *dto.StoresRequest) (*StoresResponse, error) {
	stores, err := h.agg.Stores()
	if err != nil {
		return nil, storageError("stores", err)
	}
	return &StoresResponse{Stores: stores}, nil
}

// FlashDealsResponse holds each store's best discount.
type FlashDealsResponse struct {
	Deals []storage.MarketplaceProduct `json:"deals"`
}

// FlashDeals returns the deepest published discounts across the platform.
func (h *PublicHandler) FlashDeals(ctx context.Context, _ *dto.FlashDealsRequest) (*FlashDealsResponse, error) {
	deals, err := h.agg.FlashDeals()
	if err != nil {
		return nil, storageError("flash deals", err)
	}
	return &FlashDealsResponse{Deals: deals}, nil
}

// StorefrontResponse is one store's public catalog.
type StorefrontResponse struct {
	Config   models.StoreConfig `json:"config"`
	Products []models.Product   `json:"products"`
	Pages    []models.Page      `json:"pages"`
}

// Storefront returns a single store's published catalog and pages.
func (h *PublicHandler) Storefront(ctx context.Context, req *dto.StorefrontRequest) (*StorefrontResponse, error) {
	if !h.tenants.Exists(req.TenantID) {
		return nil, dto.NotFound("store")
	}
	cfg, err := h.tenants.Config(req.TenantID)
	if err != nil {
		return nil, storageError("store", err)
	}
	products, err := storage.Products.List(h.tenants, req.TenantID)
	if err != nil {
		return nil, storageError("products", err)
	}
	published := []models.Product{}
	for i := range products {
		if products[i].Status == models.ProductPublished {
			published = append(published, products[i])
		}
	}
	pages, err := storage.Pages.List(h.tenants, req.TenantID)
	if err != nil {
		return nil, storageError("pages", err)
	}
	visible := []models.Page{}
	for i := range pages {
		if pages[i].Published {
			visible = append(visible, pages[i])
		}
	}
	return &StorefrontResponse{Config: cfg, Products: published, Pages: visible}, nil
}
