package ratelimit

import (
	"testing"
)

func testLimits() Limits {
	return Limits{AuthPerMin: 10, WritePerMin: 120, ReadPerMin: 6000}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(testLimits())
	defer cfg.Close()

	auth := cfg.Match("POST", "/api/auth/login")
	if auth == nil || auth.Scope != ScopeIP {
		t.Error("auth tier should exist with IP scope")
	}
	write := cfg.Match("POST", "/api/store/products")
	if write == nil || write.Scope != ScopeUser {
		t.Error("write tier should exist with User scope")
	}
	read := cfg.Match("GET", "/api/store/products")
	if read == nil || read.Scope != ScopeIP {
		t.Error("read tier should exist with IP scope")
	}
}

func TestConfig_Match(t *testing.T) {
	cfg := NewConfig(testLimits())
	defer cfg.Close()

	tests := []struct {
		method   string
		path     string
		wantTier string
	}{
		{"GET", "/api/health", ""}, // No rate limit for health check
		{"POST", "/api/auth/login", "auth"},
		{"POST", "/api/auth/register", "auth"},
		{"POST", "/api/auth/verify", "auth"},
		{"POST", "/api/auth/verify/request", "auth"},
		{"GET", "/api/auth/me", "read"},
		{"GET", "/api/public/marketplace", "read"},
		{"GET", "/api/store/products/123", "read"},
		{"POST", "/api/store/products", "write"},
		{"PUT", "/api/store/config", "write"},
		{"DELETE", "/api/subscriptions/123", "write"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			tier := cfg.Match(tt.method, tt.path)
			if tt.wantTier == "" {
				if tier != nil {
					t.Errorf("expected nil tier, got %s", tier.Name)
				}
			} else {
				if tier == nil {
					t.Errorf("expected tier %s, got nil", tt.wantTier)
				} else if tier.Name != tt.wantTier {
					t.Errorf("expected tier %s, got %s", tt.wantTier, tier.Name)
				}
			}
		})
	}
}

func TestConfig_DisabledTier(t *testing.T) {
	cfg := NewConfig(Limits{AuthPerMin: 10}) // write and read disabled
	defer cfg.Close()

	if tier := cfg.Match("GET", "/api/store/products"); tier != nil {
		t.Errorf("disabled read tier should match nil, got %s", tier.Name)
	}
	if tier := cfg.Match("POST", "/api/store/products"); tier != nil {
		t.Errorf("disabled write tier should match nil, got %s", tier.Name)
	}
	if tier := cfg.Match("POST", "/api/auth/login"); tier == nil {
		t.Error("auth tier should still match")
	}
}

func TestConfig_Apply(t *testing.T) {
	cfg := NewConfig(Limits{AuthPerMin: 1})
	defer cfg.Close()

	tier := cfg.Match("POST", "/api/auth/login")
	tier.Limiter.Allow("ip:1.2.3.4:auth")
	if tier.Limiter.Allow("ip:1.2.3.4:auth").Allowed {
		t.Fatal("second request should be limited at 1/min")
	}

	// Raising the limit swaps in fresh buckets.
	cfg.Apply(Limits{AuthPerMin: 100})
	tier = cfg.Match("POST", "/api/auth/login")
	if !tier.Limiter.Allow("ip:1.2.3.4:auth").Allowed {
		t.Error("request should be allowed after limits are raised")
	}
	if tier.Limiter.Allow("ip:1.2.3.4:auth").Limit != 100 {
		t.Error("new tier should carry the raised limit")
	}
}

func TestIsAuthEndpoint(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{"POST", "/api/auth/login", true},
		{"POST", "/api/auth/register", true},
		{"POST", "/api/auth/verify", true},
		{"POST", "/api/auth/verify/request", true},
		{"GET", "/api/auth/me", false},
		{"POST", "/api/store/products", false},
		{"GET", "/api/store/products", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := isAuthEndpoint(tt.method, tt.path)
			if got != tt.want {
				t.Errorf("isAuthEndpoint(%s, %s) = %v, want %v", tt.method, tt.path, got, tt.want)
			}
		})
	}
}
