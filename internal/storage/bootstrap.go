// First-run seeding of the platform super admin.

package storage

import (
	"log/slog"

	"github.com/tiendakit/tiendakit/internal/models"
)

// Default super-admin credentials, overridable through SuperAdminConfig.
const (
	defaultSuperAdminEmail    = "admin@constructor.test"
	defaultSuperAdminPassword = "constructor123"
	superAdminName            = "Super Admin"
	superAdminStoreName       = "Super Admin Store"
)

// SuperAdminConfig carries the seed credentials for the bootstrap routine.
type SuperAdminConfig struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EnsureSuperAdmin idempotently seeds the platform with a super-admin
// account. When a user with the super_admin role already exists this is a
// no-op; invoking it any number of times yields exactly one super admin.
func (s *PlatformStore) EnsureSuperAdmin(cfg SuperAdminConfig) (*models.User, error) {
	data, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range data.Users {
		if data.Users[i].Role == models.RoleSuperAdmin {
			u := data.Users[i].User
			return &u, nil
		}
	}

	email := cfg.Email
	if email == "" {
		email = defaultSuperAdminEmail
	}
	password := cfg.Password
	if password == "" {
		password = defaultSuperAdminPassword
	}

	user, err := s.CreateUser(email, password, superAdminName, models.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	if _, err := s.UpdateUser(user.ID, func(u *models.User) {
		u.EmailVerified = true
	}); err != nil {
		return nil, err
	}
	if _, err := s.tenants.UpdateConfig(user.TenantID, func(c *models.StoreConfig) {
		c.StoreName = superAdminStoreName
	}); err != nil {
		return nil, err
	}
	slog.Info("Super admin seeded", "email", email, "tenantID", user.TenantID)
	user.EmailVerified = true
	return user, nil
}
