package dto

// --- Common Responses ---

// OkResponse is a simple success response.
type OkResponse struct {
	Ok bool `json:"ok"`
}

// --- Auth Responses ---

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	TenantID      string `json:"tenantId"`
	EmailVerified bool   `json:"emailVerified"`
	CreatedAt     string `json:"createdAt"`
}

// AuthResponse is a response from logging in or registering.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// RequestCodeResponse is a response from requesting a verification code.
// The code is returned in the response because no mail transport is wired;
// the frontend surfaces it during development.
type RequestCodeResponse struct {
	Ok        bool   `json:"ok"`
	DebugCode string `json:"debugCode,omitempty"`
}

// --- Subscription Responses ---

// SubscriptionResponse is the public representation of a subscription.
type SubscriptionResponse struct {
	ID                 string  `json:"id"`
	PlanID             string  `json:"planId"`
	PlanName           string  `json:"planName"`
	PriceMonthly       float64 `json:"priceMonthly"`
	Status             string  `json:"status"`
	CurrentPeriodStart string  `json:"currentPeriodStart"`
	CurrentPeriodEnd   string  `json:"currentPeriodEnd"`
}

// --- Admin Responses ---

// PlatformStatsResponse is a response with platform-wide statistics.
type PlatformStatsResponse struct {
	TotalTenants        int     `json:"totalTenants"`
	TotalUsers          int     `json:"totalUsers"`
	VerifiedUsers       int     `json:"verifiedUsers"`
	ActiveSubscriptions int     `json:"activeSubscriptions"`
	MonthlyRevenue      float64 `json:"monthlyRevenue"`
}

// ListUsersResponse is a response containing all platform users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// --- Health Responses ---

// HealthResponse is a response from the health check.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
