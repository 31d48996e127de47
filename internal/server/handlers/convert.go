// Converts between storage models and API DTOs.

package handlers

import (
	"time"

	"github.com/tiendakit/tiendakit/internal/models"
	"github.com/tiendakit/tiendakit/internal/server/dto"
)

// formatTime renders a timestamp as RFC3339 for API responses.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func userToResponse(u *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          string(u.Role),
		TenantID:      u.TenantID,
		EmailVerified: u.EmailVerified,
		CreatedAt:     formatTime(u.CreatedAt),
	}
}

func subscriptionToResponse(s *models.Subscription) *dto.SubscriptionResponse {
	return &dto.SubscriptionResponse{
		ID:                 s.ID,
		PlanID:             s.PlanID,
		PlanName:           s.PlanName,
		PriceMonthly:       s.PriceMonthly,
		Status:             s.Status,
		CurrentPeriodStart: formatTime(s.CurrentPeriodStart),
		CurrentPeriodEnd:   formatTime(s.CurrentPeriodEnd),
	}
}
