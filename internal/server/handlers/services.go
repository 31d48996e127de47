// Defines shared service dependencies for handlers.

package handlers

import (
	"github.com/tiendakit/tiendakit/internal/storage"
)

// Services holds all service dependencies for handlers.
type Services struct {
	Platform    *storage.PlatformStore
	Tenants     *storage.TenantStore
	Aggregation *storage.AggregationService
}

// Config holds configuration values needed by handlers.
type Config struct {
	JWTSecret           []byte
	DataDir             string
	Version             string
	MaxRequestBodyBytes int64
}
