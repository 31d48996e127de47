// Handles super-admin platform endpoints.

package handlers

import (
	"context"

	"github.com/tiendakit/tiendakit/internal/models"
	"github.com/tiendakit/tiendakit/internal/server/dto"
	"github.com/tiendakit/tiendakit/internal/storage"
)

// AdminHandler handles super-admin endpoints.
type AdminHandler struct {
	platform *storage.PlatformStore
	agg      *storage.AggregationService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(platform *storage.PlatformStore, agg *storage.AggregationService) *AdminHandler {
	return &AdminHandler{platform: platform, agg: agg}
}

// Stats returns platform-wide statistics.
func (h *AdminHandler) Stats(ctx context.Context, _ *models.User, _ *dto.PlatformStatsRequest) (*dto.PlatformStatsResponse, error) {
	stats, totalUsers, verifiedUsers, err := h.platform.Stats()
	if err != nil {
		return nil, storageError("platform stats", err)
	}
	return &dto.PlatformStatsResponse{
		TotalTenants:        stats.TotalTenants,
		TotalUsers:          totalUsers,
		VerifiedUsers:       verifiedUsers,
		ActiveSubscriptions: stats.ActiveSubscriptions,
		MonthlyRevenue:      stats.MonthlyRevenue,
	}, nil
}

// GlobalStats returns catalog and revenue aggregates across all tenants.
func (h *AdminHandler) GlobalStats(ctx context.Context, _ *models.User, _ *dto.PlatformStatsRequest) (*storage.GlobalStats, error) {
	stats, err := h.agg.GlobalStats()
	if err != nil {
		return nil, storageError("global stats", err)
	}
	return stats, nil
}

// ListUsers returns all platform users.
func (h *AdminHandler) ListUsers(ctx context.Context, _ *models.User, _ *dto.ListUsersRequest) (*dto.ListUsersResponse, error) {
	users, err := h.platform.ListUsers()
	if err != nil {
		return nil, storageError("users", err)
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, *userToResponse(&users[i]))
	}
	return &dto.ListUsersResponse{Users: resp}, nil
}
