package dto

import "strings"

// --- Auth ---

// LoginRequest is a request to log in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login request fields.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return MissingField("email")
	}
	if r.Password == "" {
		return MissingField("password")
	}
	return nil
}

// RegisterRequest is a request to register a new store owner.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate validates the register request fields.
func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return MissingField("email")
	}
	if !strings.Contains(r.Email, "@") {
		return InvalidField("email", "must contain @")
	}
	if len(r.Password) < 8 {
		return InvalidField("password", "must be at least 8 characters")
	}
	if r.Name == "" {
		return MissingField("name")
	}
	return nil
}

// GetMeRequest is a request to get current user info.
type GetMeRequest struct{}

// Validate is a no-op for GetMeRequest.
func (r *GetMeRequest) Validate() error {
	return nil
}

// RequestCodeRequest asks for a new email verification code.
type RequestCodeRequest struct {
	Email string `json:"email"`
}

// Validate validates the verification code request fields.
func (r *RequestCodeRequest) Validate() error {
	if r.Email == "" {
		return MissingField("email")
	}
	return nil
}

// VerifyEmailRequest submits a verification code for an email.
type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Validate validates the verify email request fields.
func (r *VerifyEmailRequest) Validate() error {
	if r.Email == "" {
		return MissingField("email")
	}
	if r.Code == "" {
		return MissingField("code")
	}
	return nil
}

// --- Store configuration ---

// GetStoreConfigRequest is a request to read the store configuration.
type GetStoreConfigRequest struct{}

// Validate is a no-op for GetStoreConfigRequest.
func (r *GetStoreConfigRequest) Validate() error {
	return nil
}

// UpdateStoreConfigRequest updates the store configuration. Nil fields are
// left unchanged.
type UpdateStoreConfigRequest struct {
	StoreName    *string           `json:"storeName,omitempty"`
	ThemeID      *string           `json:"themeId,omitempty"`
	LogoURL      *string           `json:"logoUrl,omitempty"`
	BannerImage  *string           `json:"bannerImage,omitempty"`
	ContactPhone *string           `json:"contactPhone,omitempty"`
	ContactEmail *string           `json:"contactEmail,omitempty"`
	Address      *string           `json:"address,omitempty"`
	SocialLinks  map[string]string `json:"socialLinks,omitempty"`
	Published    *bool             `json:"isPublished,omitempty"`
}

// Validate validates the update store config request fields.
func (r *UpdateStoreConfigRequest) Validate() error {
	if r.StoreName != nil && *r.StoreName == "" {
		return InvalidField("storeName", "must not be empty")
	}
	return nil
}

// --- Analytics ---

// GetAnalyticsRequest is a request to read the store analytics counters.
type GetAnalyticsRequest struct{}

// Validate is a no-op for GetAnalyticsRequest.
func (r *GetAnalyticsRequest) Validate() error {
	return nil
}

// --- Subscriptions ---

// CreateSubscriptionRequest subscribes the current user to a plan.
type CreateSubscriptionRequest struct {
	PlanID       string  `json:"planId"`
	PlanName     string  `json:"planName"`
	PriceMonthly float64 `json:"priceMonthly"`
}

// Validate validates the create subscription request fields.
func (r *CreateSubscriptionRequest) Validate() error {
	if r.PlanID == "" {
		return MissingField("planId")
	}
	if r.PriceMonthly < 0 {
		return InvalidField("priceMonthly", "must be non-negative")
	}
	return nil
}

// GetSubscriptionRequest is a request to read the active subscription.
type GetSubscriptionRequest struct{}

// Validate is a no-op for GetSubscriptionRequest.
func (r *GetSubscriptionRequest) Validate() error {
	return nil
}

// CancelSubscriptionRequest cancels a subscription by ID.
type CancelSubscriptionRequest struct {
	ID string `path:"id"`
}

// Validate validates the cancel subscription request fields.
func (r *CancelSubscriptionRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// --- Public marketplace ---

// MarketplaceRequest is a request for the cross-store product feed.
type MarketplaceRequest struct {
	Limit int `query:"limit"`
}

// Validate validates the marketplace request fields.
func (r *MarketplaceRequest) Validate() error {
	if r.Limit < 0 {
		return InvalidField("limit", "must be non-negative")
	}
	return nil
}

// StoresRequest is a request for the public store directory.
type StoresRequest struct{}

// Validate is a no-op for StoresRequest.
func (r *StoresRequest) Validate() error {
	return nil
}

// FlashDealsRequest is a request for the best discounts across stores.
type FlashDealsRequest struct{}

// Validate is a no-op for FlashDealsRequest.
func (r *FlashDealsRequest) Validate() error {
	return nil
}

// TrendsRequest is a request for cross-store trends.
type TrendsRequest struct{}

// Validate is a no-op for TrendsRequest.
func (r *TrendsRequest) Validate() error {
	return nil
}

// StorefrontRequest is a request for one store's public catalog.
type StorefrontRequest struct {
	TenantID string `path:"tenantID"`
}

// Validate validates the storefront request fields.
func (r *StorefrontRequest) Validate() error {
	if r.TenantID == "" {
		return MissingField("tenantID")
	}
	return nil
}

// --- Admin ---

// PlatformStatsRequest is a request for platform-wide statistics.
type PlatformStatsRequest struct{}

// Validate is a no-op for PlatformStatsRequest.
func (r *PlatformStatsRequest) Validate() error {
	return nil
}

// ListUsersRequest is a request to list all platform users.
type ListUsersRequest struct{}

// Validate is a no-op for ListUsersRequest.
func (r *ListUsersRequest) Validate() error {
	return nil
}

// --- Health and schema ---

// HealthRequest is a request for the health check.
type HealthRequest struct{}

// Validate is a no-op for HealthRequest.
func (r *HealthRequest) Validate() error {
	return nil
}

// SchemaRequest is a request for a collection's JSON schema.
type SchemaRequest struct {
	Collection string `path:"collection"`
}

// Validate validates the schema request fields.
func (r *SchemaRequest) Validate() error {
	if r.Collection == "" {
		return MissingField("collection")
	}
	return nil
}
