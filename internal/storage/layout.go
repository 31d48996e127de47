// Package storage implements the multi-tenant JSON-file data store.
//
// On-disk convention:
//   - <root>/global/platform.json        global platform document
//   - <root>/tenants/tenant_<id>/*.json  one file per tenant collection
//
// Each tenant's data is reachable only through its validated tenant ID;
// the layout resolver never produces a path outside the tenant's own
// directory.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
)

// maxTenantIDLen bounds tenant IDs well under filesystem name limits.
const maxTenantIDLen = 64

// ErrInvalidTenantID is returned when a tenant ID fails validation.
// It is rejected before any filesystem access.
var ErrInvalidTenantID = errors.New("invalid tenant id")

// Layout deterministically maps (tenant ID | global) x collection to file
// paths under a data root. Pure computation, no I/O.
type Layout struct {
	root string
}

// NewLayout creates a layout rooted at dataDir.
func NewLayout(dataDir string) *Layout {
	return &Layout{root: dataDir}
}

// Root returns the data root directory.
func (l *Layout) Root() string {
	return l.root
}

// GlobalDir returns the directory holding global platform data.
func (l *Layout) GlobalDir() string {
	return filepath.Join(l.root, "global")
}

// PlatformFile returns the path of the single global platform document.
func (l *Layout) PlatformFile() string {
	return filepath.Join(l.GlobalDir(), "platform.json")
}

// TenantsDir returns the directory containing all tenant directories.
func (l *Layout) TenantsDir() string {
	return filepath.Join(l.root, "tenants")
}

// TenantDir returns the directory owned by one tenant.
// The tenant ID must have been validated first.
func (l *Layout) TenantDir(tenantID string) (string, error) {
	if err := ValidateTenantID(tenantID); err != nil {
		return "", err
	}
	return filepath.Join(l.TenantsDir(), "tenant_"+tenantID), nil
}

// TenantFile returns the path of one collection file within a tenant's
// directory, e.g. products.json.
func (l *Layout) TenantFile(tenantID, collection string) (string, error) {
	dir, err := l.TenantDir(tenantID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, collection+".json"), nil
}

// ValidateTenantID rejects tenant IDs that are empty, too long, or contain
// characters that could escape the tenant directory. Only ASCII letters,
// digits, '-' and '_' are accepted, which covers UUIDs.
func ValidateTenantID(tenantID string) error {
	if tenantID == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTenantID)
	}
	if len(tenantID) > maxTenantIDLen {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidTenantID, maxTenantIDLen)
	}
	for i := 0; i < len(tenantID); i++ {
		c := tenantID[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return fmt.Errorf("%w: illegal character %q", ErrInvalidTenantID, c)
		}
	}
	return nil
}
