// Maps storage errors to API errors.

package handlers

import (
	"errors"

	"github.com/tiendakit/tiendakit/internal/jsondoc"
	"github.com/tiendakit/tiendakit/internal/server/dto"
	"github.com/tiendakit/tiendakit/internal/storage"
)

// storageError converts a storage layer error into an APIError. Errors with
// no specific mapping become 500s wrapping the original error.
func storageError(resource string, err error) error {
	var corrupt *jsondoc.CorruptError
	switch {
	case errors.Is(err, storage.ErrRecordNotFound):
		return dto.NotFound(resource)
	case errors.Is(err, storage.ErrUserNotFound):
		return dto.NotFound("user")
	case errors.Is(err, storage.ErrSubscriptionNotFound):
		return dto.NotFound("subscription")
	case errors.Is(err, storage.ErrInvalidTenantID):
		return dto.InvalidField("tenantID", "must be 1-64 characters of [A-Za-z0-9_-]")
	case errors.Is(err, storage.ErrUserExists):
		return dto.Conflict("User already exists")
	case errors.Is(err, storage.ErrInvalidCredentials):
		return dto.NewAPIError(401, dto.ErrorCodeUnauthorized, "Invalid credentials")
	case errors.Is(err, storage.ErrCodeExpired):
		return dto.Expired("Verification code")
	case errors.Is(err, storage.ErrCodeInvalid):
		return dto.InvalidField("code", "unknown or already used")
	case errors.As(err, &corrupt):
		return dto.CorruptData(err)
	default:
		return dto.InternalWithError("Storage operation failed", err)
	}
}
