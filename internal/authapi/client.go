// Package authapi is a thin client for the FinArchitect authentication API.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/finarchitect/resetpass/internal/domain"
)

const (
	loginPath                = "/api/auth/login/"
	registerPath             = "/api/auth/register/"
	passwordResetPath        = "/api/auth/password-reset/"
	passwordResetConfirmPath = "/api/auth/password-reset-confirm/%s/"

	// DefaultTimeout applies when no http.Client or timeout is supplied.
	DefaultTimeout = 15 * time.Second
)

// Client issues JSON POST requests against one base URL. It holds no mutable
// state after construction and is safe for concurrent use.
type Client struct {
	baseURL string
	// withCredentials carries the cookie jar and is only used by calls that
	// must send credentials.
	withCredentials *http.Client
	anonymous       *http.Client
}

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	jar        http.CookieJar
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient replaces the underlying http.Client. Its Jar, if any, is used
// for credentialed calls only. WithTimeout and WithCookieJar override the
// matching fields of hc whatever the option order.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithCookieJar sets the jar used by credentialed calls.
func WithCookieJar(jar http.CookieJar) Option {
	return func(o *options) {
		o.jar = jar
	}
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	hc := http.Client{Timeout: DefaultTimeout}
	if o.httpClient != nil {
		hc = *o.httpClient
	}
	if o.timeout > 0 {
		hc.Timeout = o.timeout
	}
	if o.jar != nil {
		hc.Jar = o.jar
	}

	// The anonymous client shares transport and timeout but never sends cookies.
	anon := hc
	anon.Jar = nil

	return &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		withCredentials: &hc,
		anonymous:       &anon,
	}
}

// Timeout returns the per-request timeout in effect.
func (c *Client) Timeout() time.Duration {
	return c.withCredentials.Timeout
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	body := domain.LoginRequest{Email: email, Password: password}

	resp, err := post[domain.LoginResponse](ctx, c.anonymous, c.baseURL+loginPath, body)
	if err != nil {
		slog.Error("Login error details", "email", email, "error", err)
		return nil, err
	}
	return resp, nil
}

// Register creates an account and returns its token pair.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	slog.Debug("Registration payload",
		"email", req.Email,
		"first_name", req.FirstName,
		"last_name", req.LastName,
		"company", req.Company,
	)

	resp, err := post[domain.RegisterResponse](ctx, c.anonymous, c.baseURL+registerPath, req)
	if err != nil {
		slog.Error("Registration error details", "email", req.Email, "error", err)
		return nil, err
	}
	return resp, nil
}

// PasswordReset asks the API to send a reset link pointing at redirectURL.
func (c *Client) PasswordReset(ctx context.Context, email, redirectURL string) (*domain.PasswordResetResponse, error) {
	body := domain.PasswordResetRequest{Email: email, RedirectURL: redirectURL}

	resp, err := post[domain.PasswordResetResponse](ctx, c.anonymous, c.baseURL+passwordResetPath, body)
	if err != nil {
		slog.Error("Password reset error", "email", email, "error", err)
		return nil, err
	}
	return resp, nil
}

// PasswordResetConfirm sets a new password using a reset token. The request
// is sent with credentials.
func (c *Client) PasswordResetConfirm(ctx context.Context, token, password string) (*domain.PasswordResetConfirmResponse, error) {
	endpoint := c.baseURL + fmt.Sprintf(passwordResetConfirmPath, url.PathEscape(token))
	body := domain.PasswordResetConfirmRequest{Password: password, Token: token}

	resp, err := post[domain.PasswordResetConfirmResponse](ctx, c.withCredentials, endpoint, body)
	if err != nil {
		slog.Error("Password reset confirmation error", "error", err)
		return nil, err
	}
	return resp, nil
}

// post sends body as JSON and decodes the normalized response into T.
func post[T any](ctx context.Context, hc *http.Client, endpoint string, body any) (*T, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	injectTraceContext(req)

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return decodeResponse[T](resp)
}

// injectTraceContext propagates the caller's span, if any, to the API.
func injectTraceContext(req *http.Request) {
	propagator := otel.GetTextMapPropagator()
	if propagator == nil {
		return
	}
	propagator.Inject(req.Context(), propagation.HeaderCarrier(req.Header))
}

var _ domain.AuthClient = (*Client)(nil)
