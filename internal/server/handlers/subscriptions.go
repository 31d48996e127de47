// Handles subscription management for store owners.

package handlers

import (
	"context"

	"github.com/tiendakit/tiendakit/internal/models"
	"github.com/tiendakit/tiendakit/internal/server/dto"
	"github.com/tiendakit/tiendakit/internal/storage"
)

// SubscriptionHandler handles subscription endpoints.
type SubscriptionHandler struct {
	platform *storage.PlatformStore
}

// NewSubscriptionHandler creates a new subscription handler.
func NewSubscriptionHandler(platform *storage.PlatformStore) *SubscriptionHandler {
	return &SubscriptionHandler{platform: platform}
}

// Create subscribes the current user to a plan.
func (h *SubscriptionHandler) Create(ctx context.Context, user *models.User, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	sub, err := h.platform.CreateSubscription(user.ID, models.Subscription{
		PlanID:       req.PlanID,
		PlanName:     req.PlanName,
		PriceMonthly: req.PriceMonthly,
	})
	if err != nil {
		return nil, storageError("subscription", err)
	}
	return subscriptionToResponse(sub), nil
}

// GetActive returns the user's active subscription.
func (h *SubscriptionHandler) GetActive(ctx context.Context, user *models.User, _ *dto.GetSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	sub, err := h.platform.GetActiveSubscription(user.ID)
	if err != nil {
		return nil, storageError("subscription", err)
	}
	return subscriptionToResponse(sub), nil
}

// Cancel cancels one of the user's subscriptions.
func (h *SubscriptionHandler) Cancel(ctx context.Context, user *models.User, req *dto.CancelSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	subs, err := h.platform.ListSubscriptions()
	if err != nil {
		return nil, storageError("subscription", err)
	}
	owned := false
	for i := range subs {
		if subs[i].ID == req.ID && subs[i].UserID == user.ID {
			owned = true
			break
		}
	}
	if !owned {
		// Do not leak other users' subscription IDs.
		return nil, dto.NotFound("subscription")
	}

	sub, err := h.platform.UpdateSubscription(req.ID, func(s *models.Subscription) {
		s.Status = models.SubscriptionCanceled
	})
	if err != nil {
		return nil, storageError("subscription", err)
	}
	return subscriptionToResponse(sub), nil
}
