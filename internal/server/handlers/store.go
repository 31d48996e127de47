// Handles store configuration, analytics, and sale recording.

package handlers

import (
	"context"

	"github.com/tiendakit/tiendakit/internal/models"
	"github.com/tiendakit/tiendakit/internal/server/dto"
	"github.com/tiendakit/tiendakit/internal/storage"
)

// StoreHandler handles the per-tenant config and analytics singletons.
type StoreHandler struct {
	tenants *storage.TenantStore
	agg     *storage.AggregationService
}

// NewStoreHandler creates a new store handler.
func NewStoreHandler(tenants *storage.TenantStore, agg *storage.AggregationService) *StoreHandler {
	return &StoreHandler{tenants: tenants, agg: agg}
}

// GetConfig returns the tenant's store configuration.
func (h *StoreHandler) GetConfig(ctx context.Context, user *models.User, _ *dto.GetStoreConfigRequest) (*models.StoreConfig, error) {
	cfg, err := h.tenants.Config(user.TenantID)
	if err != nil {
		return nil, storageError("store config", err)
	}
	return &cfg, nil
}

// UpdateConfig applies a partial update to the store configuration.
func (h *StoreHandler) UpdateConfig(ctx context.Context, user *models.User, req *dto.UpdateStoreConfigRequest) (*models.StoreConfig, error) {
	cfg, err := h.tenants.UpdateConfig(user.TenantID, func(c *models.StoreConfig) {
		if req.StoreName != nil {
			c.StoreName = *req.StoreName
		}
		if req.ThemeID != nil {
			c.ThemeID = *req.ThemeID
		}
		if req.LogoURL != nil {
			c.LogoURL = *req.LogoURL
		}
		if req.BannerImage != nil {
			c.BannerImage = *req.BannerImage
		}
		if req.ContactPhone != nil {
			c.ContactPhone = *req.ContactPhone
		}
		if req.ContactEmail != nil {
			c.ContactEmail = *req.ContactEmail
		}
		if req.Address != nil {
			c.Address = *req.Address
		}
		if req.SocialLinks != nil {
			c.SocialLinks = req.SocialLinks
		}
		if req.Published != nil {
			c.Published = *req.Published
		}
	})
	if err != nil {
		return nil, storageError("store config", err)
	}
	return &cfg, nil
}

// GetAnalytics returns the tenant's aggregate sales counters.
func (h *StoreHandler) GetAnalytics(ctx context.Context, user *models.User, _ *dto.GetAnalyticsRequest) (*models.Analytics, error) {
	a, err := h.tenants.Analytics(user.TenantID)
	if err != nil {
		return nil, storageError("analytics", err)
	}
	return &a, nil
}

// RecordSaleRequest folds a completed order into the analytics counters.
type RecordSaleRequest struct {
	OrderID string `json:"orderId"`
}

// Validate validates the record sale request fields.
func (r *RecordSaleRequest) Validate() error {
	if r.OrderID == "" {
		return dto.MissingField("orderId")
	}
	return nil
}

// RecordSale marks an order as sold: total revenue, per-product aggregates,
// and the monthly series are all updated.
func (h *StoreHandler) RecordSale(ctx context.Context, user *models.User, req *RecordSaleRequest) (*models.Analytics, error) {
	order, err := storage.Orders.Get(h.tenants, user.TenantID, req.OrderID)
	if err != nil {
		return nil, storageError("order", err)
	}
	a, err := h.tenants.RecordSale(user.TenantID, &order)
	if err != nil {
		return nil, storageError("analytics", err)
	}
	return &a, nil
}

// Trends returns the cross-store trend snapshot shown in the owner dashboard.
func (h *StoreHandler) Trends(ctx context.Context, _ *models.User, _ *dto.TrendsRequest) (*storage.Trends, error) {
	trends, err := h.agg.TrendsForTenant()
	if err != nil {
		return nil, storageError("trends", err)
	}
	return trends, nil
}
