package domain

import "context"

// LoginRequest is the body of POST /api/auth/login/.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register/.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
}

// PasswordResetRequest asks the API to email a reset link. RedirectURL is the
// page the link should point at (origin + "/reset-password").
type PasswordResetRequest struct {
	Email       string `json:"email"`
	RedirectURL string `json:"redirect_url"`
}

// PasswordResetConfirmRequest sets a new password for the holder of Token.
type PasswordResetConfirmRequest struct {
	Password string `json:"password"`
	Token    string `json:"token"`
}

// MessageResponse is returned by informational calls.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TokenResponse is returned by login and register.
type TokenResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type (
	LoginResponse                = TokenResponse
	RegisterResponse             = TokenResponse
	PasswordResetResponse        = MessageResponse
	PasswordResetConfirmResponse = MessageResponse
)

// AuthClient defines the contract for the remote authentication API.
// It lives in the domain because handlers depend on the behaviour, not on
// the HTTP implementation.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	PasswordReset(ctx context.Context, email, redirectURL string) (*PasswordResetResponse, error)
	PasswordResetConfirm(ctx context.Context, token, password string) (*PasswordResetConfirmResponse, error)
}

// PasswordResetConfirmer is the subset of AuthClient the reset form needs.
type PasswordResetConfirmer interface {
	PasswordResetConfirm(ctx context.Context, token, password string) (*PasswordResetConfirmResponse, error)
}
