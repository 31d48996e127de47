// Handles user authentication, registration, and email verification.

package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tiendakit/tiendakit/internal/models"
	"github.com/tiendakit/tiendakit/internal/server/dto"
	"github.com/tiendakit/tiendakit/internal/storage"
)

const tokenExpiration = 24 * time.Hour

// AuthHandler handles authentication requests.
type AuthHandler struct {
	platform  *storage.PlatformStore
	jwtSecret []byte
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(platform *storage.PlatformStore, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{platform: platform, jwtSecret: jwtSecret}
}

// GenerateToken creates a signed JWT for the user.
func (h *AuthHandler) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    user.ID,
		"tenant": user.TenantID,
		"role":   string(user.Role),
		"iat":    now.Unix(),
		"exp":    now.Add(tokenExpiration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}

// Login handles user login and returns a JWT token.
func (h *AuthHandler) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := h.platform.Authenticate(req.Email, req.Password)
	if err != nil {
		return nil, storageError("user", err)
	}

	token, err := h.GenerateToken(user)
	if err != nil {
		return nil, dto.InternalWithError("Failed to generate token", err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  userToResponse(user),
	}, nil
}

// Register handles store owner registration. A fresh tenant is provisioned
// for the new account.
func (h *AuthHandler) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	user, err := h.platform.CreateUser(req.Email, req.Password, req.Name, models.RoleOwner)
	if err != nil {
		return nil, storageError("user", err)
	}

	token, err := h.GenerateToken(user)
	if err != nil {
		return nil, dto.InternalWithError("Failed to generate token", err)
	}

	slog.InfoContext(ctx, "User registered", "email", user.Email, "tenantID", user.TenantID)
	return &dto.AuthResponse{
		Token: token,
		User:  userToResponse(user),
	}, nil
}

// Me returns the current authenticated user.
func (h *AuthHandler) Me(ctx context.Context, user *models.User, _ *dto.GetMeRequest) (*dto.UserResponse, error) {
	// Re-read so the response reflects writes since the token was issued.
	fresh, err := h.platform.GetUser(user.ID)
	if err != nil {
		return nil, storageError("user", err)
	}
	return userToResponse(fresh), nil
}

// RequestCode creates a new email verification code. Any previous code for
// the same email is invalidated.
func (h *AuthHandler) RequestCode(ctx context.Context, req *dto.RequestCodeRequest) (*dto.RequestCodeResponse, error) {
	code, err := h.platform.CreateVerificationCode(req.Email)
	if err != nil {
		return nil, storageError("verification code", err)
	}
	slog.InfoContext(ctx, "Verification code issued", "email", req.Email)
	return &dto.RequestCodeResponse{Ok: true, DebugCode: code}, nil
}

// VerifyEmail consumes a verification code and marks the account verified.
func (h *AuthHandler) VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) (*dto.OkResponse, error) {
	if err := h.platform.VerifyCode(req.Email, req.Code); err != nil {
		return nil, storageError("verification code", err)
	}
	return &dto.OkResponse{Ok: true}, nil
}
