package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tiendakit/tiendakit/internal/models"
	"github.com/tiendakit/tiendakit/internal/server/dto"
	"github.com/tiendakit/tiendakit/internal/server/handlers"
	"github.com/tiendakit/tiendakit/internal/server/ratelimit"
	"github.com/tiendakit/tiendakit/internal/storage"
)

var testJWTSecret = []byte("test-secret-key-32-bytes-long!!!")

type testEnv struct {
	server   *httptest.Server
	platform *storage.PlatformStore
	tenants  *storage.TenantStore
}

func setupTestEnv(t *testing.T) *testEnv {
	return setupTestEnvWithLimits(t, ratelimit.Limits{
		AuthPerMin:  1000,
		WritePerMin: 1000,
		ReadPerMin:  1000,
	})
}

func setupTestEnvWithLimits(t *testing.T, limits ratelimit.Limits) *testEnv {
	layout := storage.NewLayout(t.TempDir())
	tenants := storage.NewTenantStore(layout)
	platform := storage.NewPlatformStore(layout, tenants)

	svc := &handlers.Services{
		Platform:    platform,
		Tenants:     tenants,
		Aggregation: storage.NewAggregationService(platform, tenants),
	}
	cfg := &handlers.Config{
		JWTSecret:           testJWTSecret,
		DataDir:             layout.Root(),
		Version:             "test",
		MaxRequestBodyBytes: 1 << 20,
	}
	limiters := ratelimit.NewConfig(limits)
	t.Cleanup(limiters.Close)

	server := httptest.NewServer(NewRouter(svc, cfg, limiters))
	t.Cleanup(server.Close)

	return &testEnv{server: server, platform: platform, tenants: tenants}
}

// doJSON performs an HTTP request, decodes the JSON response, and returns the
// status code. Body is always read and closed before returning.
func (e *testEnv) doJSON(t *testing.T, method, path string, body, response any, token string) int {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, bodyReader)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do request: %v", err)
	}

	data, err := io.ReadAll(resp.Body)
	if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		t.Fatalf("ReadAll/Close: %v", err)
	}

	if response != nil && len(data) > 0 {
		if err := json.Unmarshal(data, response); err != nil {
			t.Fatalf("Unmarshal response: %v\nBody: %s", err, string(data))
		}
	}

	return resp.StatusCode
}

// register creates a user and returns its token.
func (e *testEnv) register(t *testing.T, email, name string) string {
	var resp dto.AuthResponse
	status := e.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email:    email,
		Password: "Pass1234",
		Name:     name,
	}, &resp, "")
	if status != http.StatusOK {
		t.Fatalf("Register %s: got status %d, want %d", email, status, http.StatusOK)
	}
	if resp.Token == "" {
		t.Fatalf("Register %s: no token", email)
	}
	return resp.Token
}

func TestIntegration(t *testing.T) {
	t.Parallel()
	t.Run("Health", func(t *testing.T) {
		t.Parallel()
		env := setupTestEnv(t)

		var health dto.HealthResponse
		status := env.doJSON(t, http.MethodGet, "/api/health", nil, &health, "")
		if status != http.StatusOK {
			t.Errorf("GET /api/health: got status %d, want %d", status, http.StatusOK)
		}
		if health.Status != "ok" {
			t.Errorf("Health status: got %q, want %q", health.Status, "ok")
		}
		if health.Version != "test" {
			t.Errorf("Health version: got %q, want %q", health.Version, "test")
		}
	})

	t.Run("UserWorkflow", func(t *testing.T) {
		t.Parallel()
		env := setupTestEnv(t)

		var loginResp dto.AuthResponse
		status := env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
			Email:    "Alice@Example.com",
			Password: "securePass1234",
			Name:     "Alice",
		}, &loginResp, "")
		if status != http.StatusOK {
			t.Fatalf("POST /api/auth/register: got status %d, want %d", status, http.StatusOK)
		}
		if loginResp.Token == "" {
			t.Fatal("Register should return a token")
		}
		// Emails are normalized to lowercase.
		if loginResp.User.Email != "alice@example.com" {
			t.Errorf("User email: got %q, want %q", loginResp.User.Email, "alice@example.com")
		}
		if loginResp.User.Role != string(models.RoleOwner) {
			t.Errorf("User role: got %q, want %q", loginResp.User.Role, models.RoleOwner)
		}
		if loginResp.User.TenantID == "" {
			t.Error("Register should provision a tenant")
		}
		token := loginResp.Token

		var meResp dto.UserResponse
		status = env.doJSON(t, http.MethodGet, "/api/auth/me", nil, &meResp, token)
		if status != http.StatusOK {
			t.Fatalf("GET /api/auth/me: got status %d, want %d", status, http.StatusOK)
		}
		if meResp.Email != "alice@example.com" {
			t.Errorf("Me email: got %q, want %q", meResp.Email, "alice@example.com")
		}

		var loginResp2 dto.AuthResponse
		status = env.doJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
			Email:    "alice@example.com",
			Password: "securePass1234",
		}, &loginResp2, "")
		if status != http.StatusOK {
			t.Fatalf("POST /api/auth/login: got status %d, want %d", status, http.StatusOK)
		}
		if loginResp2.Token == "" {
			t.Fatal("Login should return a token")
		}

		status = env.doJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
			Email:    "alice@example.com",
			Password: "wrongpassword",
		}, nil, "")
		if status != http.StatusUnauthorized {
			t.Errorf("Login with wrong password: got status %d, want %d", status, http.StatusUnauthorized)
		}
	})

	t.Run("AuthMiddleware", func(t *testing.T) {
		t.Parallel()
		env := setupTestEnv(t)

		status := env.doJSON(t, http.MethodGet, "/api/auth/me", nil, nil, "")
		if status != http.StatusUnauthorized {
			t.Errorf("GET /api/auth/me without token: got status %d, want %d", status, http.StatusUnauthorized)
		}

		status = env.doJSON(t, http.MethodGet, "/api/auth/me", nil, nil, "invalid-token")
		if status != http.StatusUnauthorized {
			t.Errorf("GET /api/auth/me with invalid token: got status %d, want %d", status, http.StatusUnauthorized)
		}
	})

	t.Run("ValidationErrors", func(t *testing.T) {
		t.Parallel()
		env := setupTestEnv(t)

		status := env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
			Email: "", Password: "Pass1234", Name: "Test",
		}, nil, "")
		if status != http.StatusBadRequest {
			t.Errorf("Register with empty email: got status %d, want %d", status, http.StatusBadRequest)
		}

		status = env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
			Email: "not-an-email", Password: "Pass1234", Name: "Test",
		}, nil, "")
		if status != http.StatusBadRequest {
			t.Errorf("Register with malformed email: got status %d, want %d", status, http.StatusBadRequest)
		}

		status = env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
			Email: "valid@example.com", Password: "short", Name: "Test",
		}, nil, "")
		if status != http.StatusBadRequest {
			t.Errorf("Register with short password: got status %d, want %d", status, http.StatusBadRequest)
		}
	})

	t.Run("DuplicateUser", func(t *testing.T) {
		t.Parallel()
		env := setupTestEnv(t)

		env.register(t, "duplicate@example.com", "First")

		status := env.doJSON(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
			Email: "duplicate@example.com", Password: "Pass4567", Name: "Second",
		}, nil, "")
		if status != http.StatusConflict {
			t.Errorf("Duplicate registration: got status %d, want %d", status, http.StatusConflict)
		}
	})

	t.Run("EmailVerification", func(t *testing.T) {
		t.Parallel()
		env := setupTestEnv(t)
		env.register(t, "verify@example.com", "Verifier")

		var codeResp dto.RequestCodeResponse
		status := env.doJSON(t, http.MethodPost, "/api/auth/verify/request", dto.RequestCodeRequest{
			Email: "verify@example.com",
		}, &codeResp, "")
		if status != http.StatusOK {
			t.Fatalf("POST /api/auth/verify/request: got status %d, want %d", status, http.StatusOK)
		}
		if len(codeResp.DebugCode) != 6 {
			t.Fatalf("Verification code: got %q, want 6 digits", codeResp.DebugCode)
		}

		status = env.doJSON(t, http.MethodPost, "/api/auth/verify", dto.VerifyEmailRequest{
			Email: "verify@example.com",
			Code:  "000000",
		}, nil, "")
		if status != http.StatusBadRequest {
			t.Errorf("Verify with wrong code: got status %d, want %d", status, http.StatusBadRequest)
		}

		status = env.doJSON(t, http.MethodPost, "/api/auth/verify", dto.VerifyEmailRequest{
			Email: "verify@example.com",
			Code:  codeResp.DebugCode,
		}, nil, "")
		if status != http.StatusOK {
			t.Fatalf("POST /api/auth/verify: got status %d, want %d", status, http.StatusOK)
		}

		user, err := env.platform.GetUserByEmail("verify@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail: %v", err)
		}
		if !user.EmailVerified {
			t.Error("User should be verified after submitting the code")
		}

		// Codes are single-use.
		status = env.doJSON(t, http.MethodPost, "/api/auth/verify", dto.VerifyEmailRequest{
			Email: "verify@example.com",
			Code:  codeResp.DebugCode,
		}, nil, "")
		if status != http.StatusBadRequest {
			t.Errorf("Reusing a verification code: got status %d, want %d", status, http.StatusBadRequest)
		}
	})

	t.Run("ProductWorkflow", func(t *testing.T) {
		t.Parallel()
		env := setupTestEnv(t)
		token := env.register(t, "shop@example.com", "Shop Owner")

		// Create
		var created models.Product
		status := env.doJSON(t, http.MethodPost, "/api/store/products", map[string]any{
			"name":  "Collar Rojo",
			"price": 12.5,
			"stock": 3,
		}, &created, token)
		if status != http.StatusOK {
			t.Fatalf("POST /api/store/products: got status %d, want %d", status, http.StatusOK)
		}
		if created.ID == "" {
			t.Fatal("Created product should have an ID")
		}
		if created.Status != models.ProductDraft {
			t.Errorf("Default status: got %q, want %q", created.Status, models.ProductDraft)
		}
		if created.CreatedAt.IsZero() {
			t.Error("Created product should have a creation timestamp")
		}

		// List
		var list handlers.RecordsResponse[models.Product]
		status = env.doJSON(t, http.MethodGet, "/api/store/products", nil, &list, token)
		if status != http.StatusOK {
			t.Fatalf("GET /api/store/products: got status %d, want %d", status, http.StatusOK)
		}
		if list.Total != 1 || len(list.Items) != 1 {
			t.Fatalf("List: got %d items (total %d), want 1", len(list.Items), list.Total)
		}

		// Get
		var got models.Product
		status = env.doJSON(t, http.MethodGet, "/api/store/products/"+created.ID, nil, &got, token)
		if status != http.StatusOK {
			t.Fatalf("GET /api/store/products/%s: got status %d, want %d", created.ID, status, http.StatusOK)
		}
		if got.Name != "Collar Rojo" {
			t.Errorf("Get name: got %q, want %q", got.Name, "Collar Rojo")
		}

		// Update replaces the record but keeps ID and creation time.
		var updated models.Product
		status = env.doJSON(t, http.MethodPut, "/api/store/products/"+created.ID, map[string]any{
			"name":   "Collar Azul",
			"price":  15.0,
			"stock":  5,
			"status": "published",
		}, &updated, token)
		if status != http.StatusOK {
			t.Fatalf("PUT /api/store/products/%s: got status %d, want %d", created.ID, status, http.StatusOK)
		}
		if updated.ID != created.ID {
			t.Errorf("Update ID: got %q, want %q", updated.ID, created.ID)
		}
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("Update should preserve creation time: got %v, want %v", updated.CreatedAt, created.CreatedAt)
		}
		if updated.Name != "Collar Azul" {
			t.Errorf("Update name: got %q, want %q", updated.Name, "Collar Azul")
		}

		// Invalid payload
		status = env.doJSON(t, http.MethodPost, "/api/store/products", map[string]any{
			"name":  "Negative",
			"price": -1.0,
		}, nil, token)
		if status != http.StatusBadRequest {
			t.Errorf("Create with negative price: got status %d, want %d", status, http.StatusBadRequest)
		}

		// Delete
		status = env.doJSON(t, http.MethodDelete, "/api/store/products/"+created.ID, nil, nil, token)
		if status != http.StatusOK {
			t.Fatalf("DELETE /api/store/products/%s: got status %d, want %d", created.ID, status, http.StatusOK)
		}
		status = env.doJSON(t, http.MethodGet, "/api/store/products/"+created.ID, nil, nil, token)
		if status != http.StatusNotFound {
			t.Errorf("Get deleted product: got status %d, want %d", status, http.StatusNotFound)
		}
	})

	t.Run("StoreConfig", func(t *testing.T) {
		t.Parallel()
		env := setupTestEnv(t)
		token := env.register(t, "config@example.com", "Config Owner")

		var cfg models.StoreConfig
		status := env.doJSON(t, http.MethodGet, "/api/store/config", nil, &cfg, token)
		if status != http.StatusOK {
			t.Fatalf("GET /api/store/config: got status %d, want %d", status, http.StatusOK)
		}
		if cfg.StoreName != "Config Owner's Store" {
			t.Errorf("Seeded store name: got %q, want %q", cfg.StoreName, "Config Owner's Store")
		}
		if cfg.Published {
			t.Error("New stores should start unpublished")
		}

		// Partial update: only the provided fields change.
		newName := "Tienda Luna"
		published := true
		var updated models.StoreConfig
		status = env.doJSON(t, http.MethodPut, "/api/store/config", dto.UpdateStoreConfigRequest{
			StoreName: &newName,
			Published: &published,
		}, &updated, token)
		if status != http.StatusOK {
			t.Fatalf("PUT /api/store/config: got status %d, want %d", status, http.StatusOK)
		}
		if updated.StoreName != "Tienda Luna" {
			t.Errorf("Updated store name: got %q, want %q", updated.StoreName, "Tienda Luna")
		}
		if !updated.Published {
			t.Error("Store should be published after update")
		}
		if updated.ThemeID != cfg.ThemeID {
			t.Errorf("Theme should be unchanged: got %q, want %q", updated.ThemeID, cfg.ThemeID)
		}

		empty := ""
		status = env.doJSON(t, http.MethodPut, "/api/store/config", dto.UpdateStoreConfigRequest{
			StoreName: &empty,
		}, nil, token)
		if status != http.StatusBadRequest {
			t.Errorf("PUT /api/store/config with empty name: got status %d, want %d", status, http.StatusBadRequest)
		}
	})

	t.Run("AnalyticsWorkflow", func(t *testing.T) {
		t.Parallel()
		env := setupTestEnv(t)
		token := env.register(t, "sales@example.com", "Seller")

		var product models.Product
		env.doJSON(t, http.MethodPost, "/api/store/products", map[string]any{
			"name": "Pienso Premium", "price": 30.0, "stock": 10, "status": "published",
		}, &product, token)

		var order models.Order
		status := env.doJSON(t, http.MethodPost, "/api/store/orders", map[string]any{
			"items": []map[string]any{
				{"productId": product.ID, "name": product.Name, "price": 30.0, "quantity": 2},
			},
			"total": 60.0,
		}, &order, token)
		if status != http.StatusOK {
			t.Fatalf("POST /api/store/orders: got status %d, want %d", status, http.StatusOK)
		}

		var analytics models.Analytics
		status = env.doJSON(t, http.MethodPost, "/api/store/analytics/record-sale", handlers.RecordSaleRequest{
			OrderID: order.ID,
		}, &analytics, token)
		if status != http.StatusOK {
			t.Fatalf("POST /api/store/analytics/record-sale: got status %d, want %d", status, http.StatusOK)
		}
		if analytics.TotalOrders != 1 {
			t.Errorf("TotalOrders: got %d, want 1", analytics.TotalOrders)
		}
		if analytics.TotalSales != 60.0 {
			t.Errorf("TotalSales: got %v, want 60", analytics.TotalSales)
		}

		var again models.Analytics
		status = env.doJSON(t, http.MethodGet, "/api/store/analytics", nil, &again, token)
		if status != http.StatusOK {
			t.Fatalf("GET /api/store/analytics: got status %d, want %d", status, http.StatusOK)
		}
		if again.TotalOrders != 1 || again.TotalSales != 60.0 {
			t.Errorf("Analytics read-back: got %d orders / %v sales, want 1 / 60", again.TotalOrders, again.TotalSales)
		}

		status = env.doJSON(t, http.MethodPost, "/api/store/analytics/record-sale", handlers.RecordSaleRequest{
			OrderID: "no-such-order",
		}, nil, token)
		if status != http.StatusNotFound {
			t.Errorf("Record sale for unknown order: got status %d, want %d", status, http.StatusNotFound)
		}
	})

	t.Run("SubscriptionWorkflow", func(t *testing.T) {
		t.Parallel()
		env := setupTestEnv(t)
		token := env.register(t, "subscriber@example.com", "Subscriber")

		status := env.doJSON(t, http.MethodGet, "/api/subscriptions/active", nil, nil, token)
		if status != http.StatusNotFound {
			t.Errorf("GET /api/subscriptions/active with no subscription: got status %d, want %d", status, http.StatusNotFound)
		}

		var sub dto.SubscriptionResponse
		status = env.doJSON(t, http.MethodPost, "/api/subscriptions", dto.CreateSubscriptionRequest{
			PlanID:       "pro",
			PlanName:     "Pro",
			PriceMonthly: 29,
		}, &sub, token)
		if status != http.StatusOK {
			t.Fatalf("POST /api/subscriptions: got status %d, want %d", status, http.StatusOK)
		}
		if sub.Status != "active" {
			t.Errorf("New subscription status: got %q, want %q", sub.Status, "active")
		}

		var active dto.SubscriptionResponse
		status = env.doJSON(t, http.MethodGet, "/api/subscriptions/active", nil, &active, token)
		if status != http.StatusOK {
			t.Fatalf("GET /api/subscriptions/active: got status %d, want %d", status, http.StatusOK)
		}
		if active.ID != sub.ID {
			t.Errorf("Active subscription: got %q, want %q", active.ID, sub.ID)
		}

		// Another user cannot cancel it.
		otherToken := env.register(t, "other@example.com", "Other")
		status = env.doJSON(t, http.MethodDelete, "/api/subscriptions/"+sub.ID, nil, nil, otherToken)
		if status != http.StatusNotFound {
			t.Errorf("Canceling another user's subscription: got status %d, want %d", status, http.StatusNotFound)
		}

		status = env.doJSON(t, http.MethodDelete, "/api/subscriptions/"+sub.ID, nil, nil, token)
		if status != http.StatusOK {
			t.Fatalf("DELETE /api/subscriptions/%s: got status %d, want %d", sub.ID, status, http.StatusOK)
		}

		status = env.doJSON(t, http.MethodGet, "/api/subscriptions/active", nil, nil, token)
		if status != http.StatusNotFound {
			t.Errorf("Active subscription after cancel: got status %d, want %d", status, http.StatusNotFound)
		}
	})

	t.Run("AdminAccess", func(t *testing.T) {
		t.Parallel()
		env := setupTestEnv(t)

		if _, err := env.platform.EnsureSuperAdmin(storage.SuperAdminConfig{}); err != nil {
			t.Fatalf("EnsureSuperAdmin: %v", err)
		}
		ownerToken := env.register(t, "mortal@example.com", "Mortal")

		// Owners are forbidden from admin routes.
		status := env.doJSON(t, http.MethodGet, "/api/admin/stats", nil, nil, ownerToken)
		if status != http.StatusForbidden {
			t.Errorf("Owner on /api/admin/stats: got status %d, want %d", status, http.StatusForbidden)
		}

		var adminLogin dto.AuthResponse
		status = env.doJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
			Email:    "admin@constructor.test",
			Password: "constructor123",
		}, &adminLogin, "")
		if status != http.StatusOK {
			t.Fatalf("Admin login: got status %d, want %d", status, http.StatusOK)
		}

		var stats dto.PlatformStatsResponse
		status = env.doJSON(t, http.MethodGet, "/api/admin/stats", nil, &stats, adminLogin.Token)
		if status != http.StatusOK {
			t.Fatalf("GET /api/admin/stats: got status %d, want %d", status, http.StatusOK)
		}
		// Super admin plus the registered owner.
		if stats.TotalTenants != 2 {
			t.Errorf("TotalTenants: got %d, want 2", stats.TotalTenants)
		}
		if stats.TotalUsers != 2 {
			t.Errorf("TotalUsers: got %d, want 2", stats.TotalUsers)
		}

		var users dto.ListUsersResponse
		status = env.doJSON(t, http.MethodGet, "/api/admin/users", nil, &users, adminLogin.Token)
		if status != http.StatusOK {
			t.Fatalf("GET /api/admin/users: got status %d, want %d", status, http.StatusOK)
		}
		if len(users.Users) != 2 {
			t.Errorf("Users listed: got %d, want 2", len(users.Users))
		}
	})

	t.Run("PublicStorefront", func(t *testing.T) {
		t.Parallel()
		env := setupTestEnv(t)
		token := env.register(t, "public@example.com", "Publisher")

		var me dto.UserResponse
		env.doJSON(t, http.MethodGet, "/api/auth/me", nil, &me, token)

		env.doJSON(t, http.MethodPost, "/api/store/products", map[string]any{
			"name": "Visible", "price": 10.0, "status": "published",
		}, nil, token)
		env.doJSON(t, http.MethodPost, "/api/store/products", map[string]any{
			"name": "Hidden", "price": 10.0, "status": "draft",
		}, nil, token)
		published := true
		env.doJSON(t, http.MethodPut, "/api/store/config", dto.UpdateStoreConfigRequest{Published: &published}, nil, token)

		// Storefront is public and shows only published products.
		var front handlers.StorefrontResponse
		status := env.doJSON(t, http.MethodGet, "/api/public/stores/"+me.TenantID, nil, &front, "")
		if status != http.StatusOK {
			t.Fatalf("GET /api/public/stores/%s: got status %d, want %d", me.TenantID, status, http.StatusOK)
		}
		if len(front.Products) != 1 || front.Products[0].Name != "Visible" {
			t.Errorf("Storefront products: got %+v, want only Visible", front.Products)
		}

		status = env.doJSON(t, http.MethodGet, "/api/public/stores/no-such-tenant", nil, nil, "")
		if status != http.StatusNotFound {
			t.Errorf("Unknown storefront: got status %d, want %d", status, http.StatusNotFound)
		}

		var market handlers.MarketplaceResponse
		status = env.doJSON(t, http.MethodGet, "/api/public/marketplace", nil, &market, "")
		if status != http.StatusOK {
			t.Fatalf("GET /api/public/marketplace: got status %d, want %d", status, http.StatusOK)
		}
		if market.Total != 1 {
			t.Errorf("Marketplace total: got %d, want 1", market.Total)
		}

		var stores handlers.StoresResponse
		status = env.doJSON(t, http.MethodGet, "/api/public/stores", nil, &stores, "")
		if status != http.StatusOK {
			t.Fatalf("GET /api/public/stores: got status %d, want %d", status, http.StatusOK)
		}
		if len(stores.Stores) != 1 {
			t.Errorf("Store directory: got %d stores, want 1", len(stores.Stores))
		}
	})

	t.Run("Schema", func(t *testing.T) {
		t.Parallel()
		env := setupTestEnv(t)

		var schema map[string]any
		status := env.doJSON(t, http.MethodGet, "/api/schema/products", nil, &schema, "")
		if status != http.StatusOK {
			t.Fatalf("GET /api/schema/products: got status %d, want %d", status, http.StatusOK)
		}
		props, ok := schema["properties"].(map[string]any)
		if !ok {
			t.Fatalf("Schema has no properties: %v", schema)
		}
		if _, ok := props["price"]; !ok {
			t.Error("Product schema should describe the price field")
		}

		status = env.doJSON(t, http.MethodGet, "/api/schema/nonsense", nil, nil, "")
		if status != http.StatusNotFound {
			t.Errorf("GET /api/schema/nonsense: got status %d, want %d", status, http.StatusNotFound)
		}
	})

	t.Run("UnknownFieldRejected", func(t *testing.T) {
		t.Parallel()
		env := setupTestEnv(t)

		status := env.doJSON(t, http.MethodPost, "/api/auth/login", map[string]any{
			"email": "a@b.c", "password": "Pass1234", "bogus": true,
		}, nil, "")
		if status != http.StatusBadRequest {
			t.Errorf("Login with unknown field: got status %d, want %d", status, http.StatusBadRequest)
		}
	})
}

func TestRateLimiting(t *testing.T) {
	t.Parallel()
	env := setupTestEnvWithLimits(t, ratelimit.Limits{
		AuthPerMin:  3,
		WritePerMin: 1000,
		ReadPerMin:  1000,
	})

	// Burn the auth budget with failed logins.
	last := 0
	for range 4 {
		last = env.doJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
			Email: "nobody@example.com", Password: "Pass1234",
		}, nil, "")
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("Fourth auth attempt: got status %d, want %d", last, http.StatusTooManyRequests)
	}

	// Health is never rate limited.
	status := env.doJSON(t, http.MethodGet, "/api/health", nil, nil, "")
	if status != http.StatusOK {
		t.Errorf("GET /api/health after rate limit: got status %d, want %d", status, http.StatusOK)
	}
}
