// Implements the global store accessor: the single platform.json document
// holding the cross-tenant user directory, subscription ledger, email
// verification codes, and platform-wide counters.

package storage

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tiendakit/tiendakit/internal/jsondoc"
	"github.com/tiendakit/tiendakit/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost the platform has always hashed with.
const bcryptCost = 12

// verificationCodeTTL is how long an emailed code stays valid.
const verificationCodeTTL = 15 * time.Minute

var (
	errUserNotFound         = errors.New("user not found")
	errUserExists           = errors.New("user already exists")
	errInvalidCreds         = errors.New("invalid credentials")
	errEmailPwdRequired     = errors.New("email and password are required")
	errCodeInvalid          = errors.New("verification code invalid")
	errCodeExpired          = errors.New("verification code expired")
	errSubscriptionNotFound = errors.New("subscription not found")
)

// Exported views of storage sentinels that callers branch on.
var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errUserNotFound
	// ErrUserExists is returned when registering an email that is taken.
	ErrUserExists = errUserExists
	// ErrInvalidCredentials is returned on a failed authentication.
	ErrInvalidCredentials = errInvalidCreds
	// ErrCodeInvalid is returned for an unknown verification code.
	ErrCodeInvalid = errCodeInvalid
	// ErrCodeExpired is returned for a known but expired verification code.
	ErrCodeExpired = errCodeExpired
	// ErrSubscriptionNotFound is returned when no subscription matches.
	ErrSubscriptionNotFound = errSubscriptionNotFound
)

// PlatformStore provides access to the singleton global document. All
// mutations run under one mutex serializing load-mutate-save sequences;
// the global file is small and contention is negligible.
type PlatformStore struct {
	layout  *Layout
	tenants *TenantStore
	mu      sync.Mutex
}

// NewPlatformStore creates the global store accessor. The tenant store is
// needed to provision a tenant directory when a user is created.
func NewPlatformStore(layout *Layout, tenants *TenantStore) *PlatformStore {
	return &PlatformStore{layout: layout, tenants: tenants}
}

// Load returns the global document, at defaults when never written.
func (s *PlatformStore) Load() (*models.PlatformData, error) {
	data := NewPlatformData()
	if _, err := jsondoc.Read(s.layout.PlatformFile(), data); err != nil {
		return nil, fmt.Errorf("platform data: %w", err)
	}
	repairPlatformData(data)
	return data, nil
}

// Save atomically persists the global document.
func (s *PlatformStore) Save(data *models.PlatformData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(data)
}

func (s *PlatformStore) saveLocked(data *models.PlatformData) error {
	if err := jsondoc.Write(s.layout.PlatformFile(), data); err != nil {
		return fmt.Errorf("platform data: %w", err)
	}
	return nil
}

// Update applies fn to the global document under the store lock and
// persists the result.
func (s *PlatformStore) Update(fn func(*models.PlatformData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(data); err != nil {
		return err
	}
	return s.saveLocked(data)
}

// CreateUser registers a new platform user, hashes the password, assigns
// a fresh tenant, provisions the tenant directory, and bumps the tenant
// counter.
func (s *PlatformStore) CreateUser(email, password, name string, role models.UserRole) (*models.User, error) {
	if email == "" || password == "" {
		return nil, errEmailPwdRequired
	}
	email = strings.ToLower(email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if role == "" {
		role = models.RoleOwner
	}

	now := time.Now().UTC()
	user := models.StoredUser{
		User: models.User{
			ID:        uuid.NewString(),
			TenantID:  uuid.NewString(),
			Email:     email,
			Name:      name,
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: string(hash),
	}

	err = s.Update(func(data *models.PlatformData) error {
		for i := range data.Users {
			if data.Users[i].Email == email {
				return errUserExists
			}
		}
		data.Users = append(data.Users, user)
		data.PlatformStats.TotalTenants++
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Provision the tenant directory for the new store.
	err = s.tenants.Create(user.TenantID, func(cfg *models.StoreConfig) {
		cfg.StoreName = name + "'s Store"
		cfg.ContactEmail = email
	})
	if err != nil {
		return nil, fmt.Errorf("failed to provision tenant %s: %w", user.TenantID, err)
	}

	u := user.User
	return &u, nil
}

// GetUser retrieves a user by ID.
func (s *PlatformStore) GetUser(id string) (*models.User, error) {
	data, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range data.Users {
		if data.Users[i].ID == id {
			u := data.Users[i].User
			return &u, nil
		}
	}
	return nil, errUserNotFound
}

// GetUserByEmail retrieves a user by email, case-insensitive.
func (s *PlatformStore) GetUserByEmail(email string) (*models.User, error) {
	email = strings.ToLower(email)
	data, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range data.Users {
		if data.Users[i].Email == email {
			u := data.Users[i].User
			return &u, nil
		}
	}
	return nil, errUserNotFound
}

// Authenticate verifies user credentials.
func (s *PlatformStore) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(email)
	data, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range data.Users {
		if data.Users[i].Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(data.Users[i].PasswordHash), []byte(password)); err != nil {
			return nil, errInvalidCreds
		}
		u := data.Users[i].User
		return &u, nil
	}
	return nil, errInvalidCreds
}

// UpdateUser applies fn to a user under the store lock. The user ID is
// immutable; changes to it made by fn are discarded.
func (s *PlatformStore) UpdateUser(id string, fn func(*models.User)) (*models.User, error) {
	var updated models.User
	err := s.Update(func(data *models.PlatformData) error {
		for i := range data.Users {
			if data.Users[i].ID != id {
				continue
			}
			fn(&data.Users[i].User)
			data.Users[i].ID = id
			data.Users[i].UpdatedAt = time.Now().UTC()
			updated = data.Users[i].User
			return nil
		}
		return errUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListUsers returns all platform users without password hashes.
func (s *PlatformStore) ListUsers() ([]models.User, error) {
	data, err := s.Load()
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(data.Users))
	for i := range data.Users {
		users = append(users, data.Users[i].User)
	}
	return users, nil
}

// CreateVerificationCode issues a six-digit code for the email, replacing
// any previous codes for the same address. The code expires after
// 15 minutes.
func (s *PlatformStore) CreateVerificationCode(email string) (string, error) {
	email = strings.ToLower(email)
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	err = s.Update(func(data *models.PlatformData) error {
		kept := data.VerificationCodes[:0]
		for _, v := range data.VerificationCodes {
			if v.Email != email {
				kept = append(kept, v)
			}
		}
		data.VerificationCodes = append(kept, models.VerificationCode{
			Email:     email,
			Code:      code,
			ExpiresAt: now.Add(verificationCodeTTL),
			CreatedAt: now,
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// VerifyCode checks a code against the pending entry for the email.
// A matching unexpired code is consumed and the user's email is marked
// verified. Codes are single-use regardless of outcome of later calls.
func (s *PlatformStore) VerifyCode(email, code string) error {
	email = strings.ToLower(email)
	return s.Update(func(data *models.PlatformData) error {
		for _, v := range data.VerificationCodes {
			if v.Email != email || v.Code != code {
				continue
			}
			// Consume the code whether or not it is still valid.
			kept := data.VerificationCodes[:0]
			for _, other := range data.VerificationCodes {
				if other.Email != email {
					kept = append(kept, other)
				}
			}
			data.VerificationCodes = kept
			if time.Now().UTC().After(v.ExpiresAt) {
				return errCodeExpired
			}
			for i := range data.Users {
				if data.Users[i].Email == email {
					data.Users[i].EmailVerified = true
					data.Users[i].UpdatedAt = time.Now().UTC()
				}
			}
			return nil
		}
		return errCodeInvalid
	})
}

// CreateSubscription records a new active subscription and folds it into
// the platform counters.
func (s *PlatformStore) CreateSubscription(userID string, sub models.Subscription) (*models.Subscription, error) {
	now := time.Now().UTC()
	sub.ID = uuid.NewString()
	sub.UserID = userID
	sub.Status = models.SubscriptionActive
	sub.CurrentPeriodStart = now
	if sub.CurrentPeriodEnd.IsZero() {
		sub.CurrentPeriodEnd = now.Add(30 * 24 * time.Hour)
	}
	sub.CreatedAt = now

	err := s.Update(func(data *models.PlatformData) error {
		data.Subscriptions = append(data.Subscriptions, sub)
		data.PlatformStats.ActiveSubscriptions++
		data.PlatformStats.MonthlyRevenue += sub.PriceMonthly
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetActiveSubscription returns the user's active subscription.
func (s *PlatformStore) GetActiveSubscription(userID string) (*models.Subscription, error) {
	data, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range data.Subscriptions {
		if data.Subscriptions[i].UserID == userID && data.Subscriptions[i].Status == models.SubscriptionActive {
			sub := data.Subscriptions[i]
			return &sub, nil
		}
	}
	return nil, errSubscriptionNotFound
}

// UpdateSubscription applies fn to a subscription under the store lock,
// keeping the platform counters in sync with status and price changes.
func (s *PlatformStore) UpdateSubscription(id string, fn func(*models.Subscription)) (*models.Subscription, error) {
	var updated models.Subscription
	err := s.Update(func(data *models.PlatformData) error {
		for i := range data.Subscriptions {
			if data.Subscriptions[i].ID != id {
				continue
			}
			prev := data.Subscriptions[i]
			fn(&data.Subscriptions[i])
			data.Subscriptions[i].ID = id
			cur := data.Subscriptions[i]
			if prev.Status == models.SubscriptionActive && cur.Status != models.SubscriptionActive {
				data.PlatformStats.ActiveSubscriptions--
				data.PlatformStats.MonthlyRevenue -= prev.PriceMonthly
			} else if prev.Status != models.SubscriptionActive && cur.Status == models.SubscriptionActive {
				data.PlatformStats.ActiveSubscriptions++
				data.PlatformStats.MonthlyRevenue += cur.PriceMonthly
			} else if cur.Status == models.SubscriptionActive {
				data.PlatformStats.MonthlyRevenue += cur.PriceMonthly - prev.PriceMonthly
			}
			updated = cur
			return nil
		}
		return errSubscriptionNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListSubscriptions returns all subscription records.
func (s *PlatformStore) ListSubscriptions() ([]models.Subscription, error) {
	data, err := s.Load()
	if err != nil {
		return nil, err
	}
	return data.Subscriptions, nil
}

// Stats returns the platform counters together with live user tallies.
func (s *PlatformStore) Stats() (models.PlatformStats, int, int, error) {
	data, err := s.Load()
	if err != nil {
		return models.PlatformStats{}, 0, 0, err
	}
	verified := 0
	for i := range data.Users {
		if data.Users[i].EmailVerified {
			verified++
		}
	}
	return data.PlatformStats, len(data.Users), verified, nil
}

// generateCode produces a uniformly random six-digit decimal code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
