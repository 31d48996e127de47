package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateTenantID(t *testing.T) {
	tests := []struct {
		name     string
		tenantID string
		wantErr  bool
	}{
		{"uuid", "9f6a1c2e-0b7d-4f7e-9c1a-2d3e4f5a6b7c", false},
		{"simple", "acme", false},
		{"underscore", "store_42", false},
		{"empty", "", true},
		{"dot dot", "..", true},
		{"traversal", "../global", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"absolute", "/etc", true},
		{"space", "a b", true},
		{"null byte", "a\x00b", true},
		{"too long", strings.Repeat("a", 65), true},
		{"max length", strings.Repeat("a", 64), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTenantID(tt.tenantID)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTenantID(%q) error = %v, wantErr %v", tt.tenantID, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTenantID) {
				t.Errorf("expected ErrInvalidTenantID, got %v", err)
			}
		})
	}
}

func TestLayoutPaths(t *testing.T) {
	l := NewLayout("/data")

	if got := l.PlatformFile(); got != filepath.Join("/data", "global", "platform.json") {
		t.Errorf("PlatformFile() = %s", got)
	}

	dir, err := l.TenantDir("acme")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/data", "tenants", "tenant_acme"); dir != want {
		t.Errorf("TenantDir() = %s, want %s", dir, want)
	}

	file, err := l.TenantFile("acme", "products")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/data", "tenants", "tenant_acme", "products.json"); file != want {
		t.Errorf("TenantFile() = %s, want %s", file, want)
	}

	// Determinism: same input, same path.
	file2, err := l.TenantFile("acme", "products")
	if err != nil {
		t.Fatal(err)
	}
	if file != file2 {
		t.Errorf("TenantFile not deterministic: %s vs %s", file, file2)
	}
}

func TestLayoutRejectsTraversal(t *testing.T) {
	l := NewLayout("/data")
	for _, id := range []string{"..", "../global", "a/../../global", "tenant/../.."} {
		if _, err := l.TenantDir(id); !errors.Is(err, ErrInvalidTenantID) {
			t.Errorf("TenantDir(%q) = %v, want ErrInvalidTenantID", id, err)
		}
		if _, err := l.TenantFile(id, "products"); !errors.Is(err, ErrInvalidTenantID) {
			t.Errorf("TenantFile(%q) = %v, want ErrInvalidTenantID", id, err)
		}
	}
}
