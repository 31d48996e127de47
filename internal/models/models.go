// Package models defines the core data structures used throughout the application.
package models

import "time"

// UserRole defines the permissions for a platform user.
type UserRole string

const (
	// RoleOwner is a regular store owner, scoped to their own tenant.
	RoleOwner UserRole = "owner"
	// RoleSuperAdmin has access to platform-wide data across all tenants.
	RoleSuperAdmin UserRole = "super_admin"
)

// User is a platform account. Each user owns at most one tenant (their store).
type User struct {
	ID            string    `json:"id" jsonschema:"description=Unique user identifier"`
	TenantID      string    `json:"tenantId" jsonschema:"description=Tenant owned by this user"`
	Email         string    `json:"email" jsonschema:"description=Login email address, stored lowercase"`
	Name          string    `json:"name" jsonschema:"description=Display name"`
	Role          UserRole  `json:"role" jsonschema:"description=Platform role (owner/super_admin)"`
	EmailVerified bool      `json:"emailVerified" jsonschema:"description=Whether the email has been verified"`
	CreatedAt     time.Time `json:"createdAt" jsonschema:"description=Account creation timestamp"`
	UpdatedAt     time.Time `json:"updatedAt" jsonschema:"description=Last modification timestamp"`
}

// StoredUser is the persisted form of a User, including the password hash.
// The hash never leaves the storage layer.
type StoredUser struct {
	User
	PasswordHash string `json:"password" jsonschema:"description=Bcrypt-hashed password"`
}

// Subscription is a billing plan record for one user/tenant.
type Subscription struct {
	ID                   string    `json:"id" jsonschema:"description=Unique subscription identifier"`
	UserID               string    `json:"userId" jsonschema:"description=User the subscription belongs to"`
	PlanID               string    `json:"planId" jsonschema:"description=Billing plan identifier"`
	PlanName             string    `json:"planName" jsonschema:"description=Human-readable plan name"`
	PriceMonthly         float64   `json:"priceMonthly" jsonschema:"description=Monthly price in the platform currency"`
	StripeCustomerID     string    `json:"stripeCustomerId,omitempty" jsonschema:"description=External billing customer reference"`
	StripeSubscriptionID string    `json:"stripeSubscriptionId,omitempty" jsonschema:"description=External billing subscription reference"`
	Status               string    `json:"status" jsonschema:"description=Subscription status (active/canceled/past_due/trialing)"`
	CurrentPeriodStart   time.Time `json:"currentPeriodStart" jsonschema:"description=Start of the current billing period"`
	CurrentPeriodEnd     time.Time `json:"currentPeriodEnd" jsonschema:"description=End of the current billing period"`
	CreatedAt            time.Time `json:"createdAt" jsonschema:"description=Subscription creation timestamp"`
}

// Subscription statuses.
const (
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionPastDue  = "past_due"
	SubscriptionTrialing = "trialing"
)

// VerificationCode is a short-lived email verification entry.
type VerificationCode struct {
	Email     string    `json:"email" jsonschema:"description=Email address being verified, stored lowercase"`
	Code      string    `json:"code" jsonschema:"description=Six-digit verification code"`
	ExpiresAt time.Time `json:"expiresAt" jsonschema:"description=Code expiration timestamp (15 min from creation)"`
	CreatedAt time.Time `json:"createdAt" jsonschema:"description=Code creation timestamp"`
}

// PlatformStats holds aggregate counters for the whole deployment.
type PlatformStats struct {
	TotalTenants        int     `json:"total_tenants" jsonschema:"description=Number of provisioned tenants"`
	ActiveSubscriptions int     `json:"active_subscriptions" jsonschema:"description=Number of active subscriptions"`
	MonthlyRevenue      float64 `json:"monthly_revenue" jsonschema:"description=Recurring monthly revenue"`
}

// PlatformData is the single global document, shared across all tenants.
type PlatformData struct {
	Users             []StoredUser       `json:"users"`
	Subscriptions     []Subscription     `json:"subscriptions"`
	VerificationCodes []VerificationCode `json:"verification_codes"`
	PlatformStats     PlatformStats      `json:"platform_stats"`
}

// Product is a catalog item within one tenant's store.
type Product struct {
	ID          string    `json:"id" jsonschema:"description=Unique product identifier"`
	Name        string    `json:"name" jsonschema:"description=Product display name"`
	Description string    `json:"description,omitempty" jsonschema:"description=Product description"`
	Category    string    `json:"category,omitempty" jsonschema:"description=Category name"`
	Price       float64   `json:"price" jsonschema:"description=Unit price"`
	Discount    float64   `json:"discount,omitempty" jsonschema:"description=Discount percentage (0-100)"`
	Stock       int       `json:"stock" jsonschema:"description=Units in stock"`
	ImageURL    string    `json:"imageUrl,omitempty" jsonschema:"description=Primary product image URL"`
	Status      string    `json:"status" jsonschema:"description=Publication status (draft/published)"`
	CreatedAt   time.Time `json:"createdAt" jsonschema:"description=Creation timestamp"`
	UpdatedAt   time.Time `json:"updatedAt" jsonschema:"description=Last modification timestamp"`
}

// Product statuses.
const (
	ProductDraft     = "draft"
	ProductPublished = "published"
)

// Category groups products within one tenant's store.
type Category struct {
	ID          string    `json:"id" jsonschema:"description=Unique category identifier"`
	Name        string    `json:"name" jsonschema:"description=Category display name"`
	Description string    `json:"description,omitempty" jsonschema:"description=Category description"`
	CreatedAt   time.Time `json:"createdAt" jsonschema:"description=Creation timestamp"`
	UpdatedAt   time.Time `json:"updatedAt" jsonschema:"description=Last modification timestamp"`
}

// OrderItem is one line of an order. Product references are informal;
// no referential integrity is enforced by the store.
type OrderItem struct {
	ProductID string  `json:"productId" jsonschema:"description=Referenced product identifier"`
	Name      string  `json:"name" jsonschema:"description=Product name at time of purchase"`
	Price     float64 `json:"price" jsonschema:"description=Unit price at time of purchase"`
	Quantity  int     `json:"quantity" jsonschema:"description=Units purchased"`
}

// Order is a purchase within one tenant's store.
type Order struct {
	ID           string      `json:"id" jsonschema:"description=Unique order identifier"`
	CustomerID   string      `json:"customerId,omitempty" jsonschema:"description=Referenced customer identifier"`
	CustomerName string      `json:"customerName,omitempty" jsonschema:"description=Customer name captured at checkout"`
	Items        []OrderItem `json:"items" jsonschema:"description=Purchased line items"`
	Total        float64     `json:"total" jsonschema:"description=Order total"`
	Status       string      `json:"status" jsonschema:"description=Order status (pending/paid/shipped/delivered/canceled)"`
	CreatedAt    time.Time   `json:"createdAt" jsonschema:"description=Creation timestamp"`
	UpdatedAt    time.Time   `json:"updatedAt" jsonschema:"description=Last modification timestamp"`
}

// Customer is a buyer contact record within one tenant's store.
type Customer struct {
	ID        string    `json:"id" jsonschema:"description=Unique customer identifier"`
	Name      string    `json:"name" jsonschema:"description=Customer name"`
	Email     string    `json:"email,omitempty" jsonschema:"description=Customer email"`
	Phone     string    `json:"phone,omitempty" jsonschema:"description=Customer phone number"`
	Address   string    `json:"address,omitempty" jsonschema:"description=Shipping address"`
	CreatedAt time.Time `json:"createdAt" jsonschema:"description=Creation timestamp"`
	UpdatedAt time.Time `json:"updatedAt" jsonschema:"description=Last modification timestamp"`
}

// Page is a storefront page built in the visual editor.
type Page struct {
	ID        string    `json:"id" jsonschema:"description=Unique page identifier"`
	Title     string    `json:"title" jsonschema:"description=Page title"`
	Slug      string    `json:"slug,omitempty" jsonschema:"description=URL slug"`
	HTML      string    `json:"html,omitempty" jsonschema:"description=Rendered HTML body"`
	CSS       string    `json:"css,omitempty" jsonschema:"description=Page-scoped CSS"`
	Published bool      `json:"published" jsonschema:"description=Whether the page is publicly visible"`
	CreatedAt time.Time `json:"createdAt" jsonschema:"description=Creation timestamp"`
	UpdatedAt time.Time `json:"updatedAt" jsonschema:"description=Last modification timestamp"`
}

// GalleryItem is an uploaded media reference within one tenant's store.
type GalleryItem struct {
	ID        string    `json:"id" jsonschema:"description=Unique gallery item identifier"`
	URL       string    `json:"url" jsonschema:"description=Media URL"`
	Title     string    `json:"title,omitempty" jsonschema:"description=Display title"`
	AltText   string    `json:"altText,omitempty" jsonschema:"description=Accessibility text"`
	CreatedAt time.Time `json:"createdAt" jsonschema:"description=Creation timestamp"`
	UpdatedAt time.Time `json:"updatedAt" jsonschema:"description=Last modification timestamp"`
}

// Shipment tracks fulfillment for an order within one tenant's store.
type Shipment struct {
	ID         string    `json:"id" jsonschema:"description=Unique shipment identifier"`
	OrderID    string    `json:"orderId" jsonschema:"description=Referenced order identifier"`
	Carrier    string    `json:"carrier,omitempty" jsonschema:"description=Carrier name"`
	TrackingID string    `json:"trackingId,omitempty" jsonschema:"description=Carrier tracking number"`
	Status     string    `json:"status" jsonschema:"description=Shipment status (preparing/in_transit/delivered)"`
	CreatedAt  time.Time `json:"createdAt" jsonschema:"description=Creation timestamp"`
	UpdatedAt  time.Time `json:"updatedAt" jsonschema:"description=Last modification timestamp"`
}

// StoreConfig is the singleton configuration record for one tenant's store.
type StoreConfig struct {
	StoreName    string            `json:"storeName" jsonschema:"description=Store display name"`
	ThemeID      string            `json:"themeId" jsonschema:"description=Visual theme identifier"`
	LogoURL      string            `json:"logoUrl" jsonschema:"description=Store logo URL"`
	BannerImage  string            `json:"bannerImage" jsonschema:"description=Banner image URL"`
	ContactPhone string            `json:"contactPhone" jsonschema:"description=Public contact phone"`
	ContactEmail string            `json:"contactEmail" jsonschema:"description=Public contact email"`
	Address      string            `json:"address" jsonschema:"description=Physical address"`
	SocialLinks  map[string]string `json:"socialLinks" jsonschema:"description=Social network name to URL"`
	Published    bool              `json:"isPublished" jsonschema:"description=Whether the store appears in the public directory"`
}

// ProductSales aggregates units and revenue for one product.
type ProductSales struct {
	ProductID   string  `json:"productId" jsonschema:"description=Product identifier"`
	ProductName string  `json:"productName" jsonschema:"description=Product name"`
	Quantity    int     `json:"quantity" jsonschema:"description=Total units sold"`
	Revenue     float64 `json:"revenue" jsonschema:"description=Total revenue"`
}

// MonthlyRevenue is one entry of a tenant's rolling monthly revenue series.
type MonthlyRevenue struct {
	Month   string  `json:"month" jsonschema:"description=Month in YYYY-MM form"`
	Revenue float64 `json:"revenue" jsonschema:"description=Revenue for the month"`
}

// Analytics is the singleton aggregate counters record for one tenant.
type Analytics struct {
	TotalSales     float64          `json:"total_sales" jsonschema:"description=Cumulative sales revenue"`
	TotalOrders    int              `json:"total_orders" jsonschema:"description=Cumulative order count"`
	ProductsSold   []ProductSales   `json:"products_sold" jsonschema:"description=Per-product sales aggregates"`
	MonthlyRevenue []MonthlyRevenue `json:"monthly_revenue" jsonschema:"description=Rolling monthly revenue series"`
}

// TenantData is the full document owned by one tenant: seven record
// collections plus the config and analytics singletons.
type TenantData struct {
	Products   []Product     `json:"products"`
	Categories []Category    `json:"categories"`
	Orders     []Order       `json:"orders"`
	Customers  []Customer    `json:"customers"`
	Pages      []Page        `json:"pages"`
	Gallery    []GalleryItem `json:"gallery"`
	Shipments  []Shipment    `json:"shipments"`
	Config     StoreConfig   `json:"config"`
	Analytics  Analytics     `json:"analytics"`
}
