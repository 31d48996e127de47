// Defines rate limit tiers and routing rules.

package ratelimit

import (
	"strings"
	"sync/atomic"
	"time"
)

// Scope defines how rate limit keys are determined.
type Scope int

const (
	// ScopeIP uses client IP address as the rate limit key.
	ScopeIP Scope = iota
	// ScopeUser uses authenticated user ID as the rate limit key.
	ScopeUser
)

// Tier defines a rate limit tier with its limiter and scope.
type Tier struct {
	Name    string
	Limiter *Limiter
	Scope   Scope
}

// Limits holds the requests-per-minute budgets for each tier.
// A zero value disables the tier.
type Limits struct {
	AuthPerMin  int
	WritePerMin int
	ReadPerMin  int
}

// Config holds rate limiters for different tiers. The active tier set can
// be swapped at runtime when the server configuration is reloaded.
type Config struct {
	tiers atomic.Pointer[tierSet]
}

type tierSet struct {
	auth  *Tier
	write *Tier
	read  *Tier
}

// NewConfig creates a Config with the given per-minute limits.
//   - Auth: IP scope, covers login, register, and verification codes
//   - Write: user scope, covers POST/PUT/DELETE
//   - Read: IP scope, covers GET
func NewConfig(limits Limits) *Config {
	c := &Config{}
	c.Apply(limits)
	return c
}

// Apply replaces the active tier set with limiters built from limits.
// Existing buckets are discarded; in-flight requests keep the old tiers.
func (c *Config) Apply(limits Limits) {
	ts := &tierSet{}
	if limits.AuthPerMin > 0 {
		ts.auth = &Tier{
			Name:    "auth",
			Limiter: NewLimiter(limits.AuthPerMin, time.Minute, limits.AuthPerMin),
			Scope:   ScopeIP,
		}
	}
	if limits.WritePerMin > 0 {
		ts.write = &Tier{
			Name:    "write",
			Limiter: NewLimiter(limits.WritePerMin, time.Minute, max(limits.WritePerMin/6, 1)),
			Scope:   ScopeUser,
		}
	}
	if limits.ReadPerMin > 0 {
		ts.read = &Tier{
			Name:    "read",
			Limiter: NewLimiter(limits.ReadPerMin, time.Minute, max(limits.ReadPerMin/6, 1)),
			Scope:   ScopeIP,
		}
	}
	if old := c.tiers.Swap(ts); old != nil {
		old.close()
	}
}

// Match returns the tier for a request, or nil when the path is unlimited.
func (c *Config) Match(method, path string) *Tier {
	ts := c.tiers.Load()
	if ts == nil {
		return nil
	}

	// Health checks are never limited.
	if path == "/api/health" {
		return nil
	}

	if isAuthEndpoint(method, path) {
		return ts.auth
	}

	switch method {
	case "POST", "PUT", "PATCH", "DELETE":
		return ts.write
	case "GET":
		return ts.read
	}
	return nil
}

// Close stops all limiter cleanup goroutines.
func (c *Config) Close() {
	if ts := c.tiers.Swap(nil); ts != nil {
		ts.close()
	}
}

func (ts *tierSet) close() {
	for _, t := range []*Tier{ts.auth, ts.write, ts.read} {
		if t != nil {
			t.Limiter.Close()
		}
	}
}

// isAuthEndpoint checks if the path is an authentication endpoint.
func isAuthEndpoint(method, path string) bool {
	if method != "POST" {
		return false
	}
	if path == "/api/auth/login" || path == "/api/auth/register" {
		return true
	}
	return strings.HasPrefix(path, "/api/auth/verify")
}

// BuildKey creates a rate limit bucket key from scope, identifier, and tier name.
func BuildKey(scope Scope, identifier, tierName string) string {
	var prefix string
	switch scope {
	case ScopeIP:
		prefix = "ip"
	case ScopeUser:
		prefix = "user"
	default:
		prefix = "unknown"
	}
	return prefix + ":" + identifier + ":" + tierName
}
