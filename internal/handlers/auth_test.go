package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finarchitect/resetpass/internal/config"
	"github.com/finarchitect/resetpass/internal/domain"
	"github.com/finarchitect/resetpass/internal/handlers"
	"github.com/finarchitect/resetpass/internal/rendering"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

// MockAuthClient provides a mock implementation of domain.AuthClient for testing.
type MockAuthClient struct {
	ConfirmCalls  int
	ConfirmToken  string
	ConfirmResp   *domain.PasswordResetConfirmResponse
	ConfirmErr    error
	ResetEmail    string
	ResetRedirect string
	ResetErr      error
	LoginResp     *domain.LoginResponse
	LoginErr      error
	RegisterReq   domain.RegisterRequest
	RegisterCalls int
	RegisterResp  *domain.RegisterResponse
	RegisterErr   error
}

func (m *MockAuthClient) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	return m.LoginResp, m.LoginErr
}

func (m *MockAuthClient) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	m.RegisterCalls++
	m.RegisterReq = req
	return m.RegisterResp, m.RegisterErr
}

func (m *MockAuthClient) PasswordReset(ctx context.Context, email, redirectURL string) (*domain.PasswordResetResponse, error) {
	m.ResetEmail = email
	m.ResetRedirect = redirectURL
	if m.ResetErr != nil {
		return nil, m.ResetErr
	}
	return &domain.PasswordResetResponse{Success: true, Message: "sent"}, nil
}

func (m *MockAuthClient) PasswordResetConfirm(ctx context.Context, token, password string) (*domain.PasswordResetConfirmResponse, error) {
	m.ConfirmCalls++
	m.ConfirmToken = token
	return m.ConfirmResp, m.ConfirmErr
}

// mockConfigProvider is a simple mock for the config.Provider interface.
type mockConfigProvider struct {
	config.Provider
	appBaseURL string
}

func (m *mockConfigProvider) GetAppBaseURL() string                { return m.appBaseURL }
func (m *mockConfigProvider) GetLoginPath() string                 { return "/login" }
func (m *mockConfigProvider) GetResetRedirectDelay() time.Duration { return 3 * time.Second }

func setupAuthTest(client *MockAuthClient, appBaseURL string) *echo.Echo {
	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))

	h := handlers.NewAuthHandler(client, rendering.NewUniversalRenderer(), &mockConfigProvider{appBaseURL: appBaseURL})
	e.GET("/reset-password", h.ResetPasswordGet)
	e.POST("/reset-password", h.ResetPasswordPost)
	e.GET(handlers.ResetDonePath, h.ResetPasswordDone)
	e.POST("/forgot-password", h.ForgotPasswordPost)
	e.POST("/login", h.LoginPost)
	e.GET("/register", h.RegisterGet)
	e.POST("/register", h.RegisterPost)
	return e
}

func postForm(e *echo.Echo, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// assertFlashMessage checks for a flash message in the session cookie set on rec.
func assertFlashMessage(t *testing.T, rec *httptest.ResponseRecorder, key, expectedMessage string) {
	t.Helper()

	// Each session save appends a Set-Cookie header; the last one wins.
	latest := map[string]*http.Cookie{}
	for _, cookie := range rec.Result().Cookies() {
		latest[cookie.Name] = cookie
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range latest {
		req.AddCookie(cookie)
	}
	cookieStore := sessions.NewCookieStore([]byte(testSessionSecret))
	sess, err := cookieStore.Get(req, "flash-session")
	require.NoError(t, err)

	flashes := sess.Flashes(key)
	require.NotEmpty(t, flashes, "expected flash message but found none for key: %s", key)
	assert.Equal(t, expectedMessage, flashes[0])
}

func resetForm(token, password, confirm string) url.Values {
	form := url.Values{}
	form.Set("token", token)
	form.Set("password", password)
	form.Set("confirm_password", confirm)
	return form
}

func TestResetPasswordGet(t *testing.T) {
	e := setupAuthTest(&MockAuthClient{}, "")

	t.Run("missing token shows message and disables submit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reset-password", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Invalid or missing reset token. Please request a new password reset link.")
		assert.Contains(t, body, `<button type="submit" disabled>`)
	})

	t.Run("token is carried into the form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reset-password?token=abc123", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `name="token" value="abc123"`)
		assert.Contains(t, body, "Set your new password")
		assert.NotContains(t, body, `<button type="submit" disabled>`)
	})
}

func TestResetPasswordPost(t *testing.T) {
	t.Run("mismatch never calls the API", func(t *testing.T) {
		client := &MockAuthClient{}
		e := setupAuthTest(client, "")

		rec := postForm(e, "/reset-password", resetForm("abc123", "P@ssw0rd", "P@ssw0rd2"), true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, client.ConfirmCalls)
		assert.Contains(t, rec.Body.String(), "Passwords do not match")
	})

	t.Run("missing token never calls the API", func(t *testing.T) {
		client := &MockAuthClient{}
		e := setupAuthTest(client, "")

		rec := postForm(e, "/reset-password", resetForm("", "P@ssw0rd", "P@ssw0rd"), true)

		assert.Zero(t, client.ConfirmCalls)
		assert.Contains(t, rec.Body.String(), "Invalid or missing reset token.")
	})

	t.Run("success over htmx schedules navigation", func(t *testing.T) {
		client := &MockAuthClient{ConfirmResp: &domain.PasswordResetConfirmResponse{
			Success: true,
			Message: "Your password has been successfully reset.",
		}}
		e := setupAuthTest(client, "")

		rec := postForm(e, "/reset-password", resetForm("abc123", "P@ssw0rd", "P@ssw0rd"), true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, client.ConfirmCalls)
		assert.Equal(t, "abc123", client.ConfirmToken)

		body := rec.Body.String()
		assert.Contains(t, body, "Your password has been successfully reset.")
		assert.Contains(t, body, `hx-get="/reset-password/done"`)
		assert.Contains(t, body, `hx-trigger="load delay:3000ms"`)
		assert.NotContains(t, body, "<html", "htmx requests receive only the fragment")
	})

	t.Run("success without htmx uses a Refresh header", func(t *testing.T) {
		client := &MockAuthClient{ConfirmResp: &domain.PasswordResetConfirmResponse{Success: true}}
		e := setupAuthTest(client, "")

		rec := postForm(e, "/reset-password", resetForm("abc123", "P@ssw0rd", "P@ssw0rd"), false)

		assert.Equal(t, "3; url=/login", rec.Header().Get("Refresh"))
		assert.Contains(t, rec.Body.String(), "Your password has been successfully reset.")
		assert.Contains(t, rec.Body.String(), "<html")
	})

	t.Run("api failure shows its message", func(t *testing.T) {
		client := &MockAuthClient{ConfirmErr: domain.NewAPIError(domain.ErrServerError, http.StatusBadRequest, "Token has expired.")}
		e := setupAuthTest(client, "")

		rec := postForm(e, "/reset-password", resetForm("abc123", "P@ssw0rd", "P@ssw0rd"), true)

		body := rec.Body.String()
		assert.Contains(t, body, "Token has expired.")
		assert.NotContains(t, body, "load delay")
		assert.Empty(t, rec.Header().Get("Refresh"))
	})
}

func TestResetPasswordDone(t *testing.T) {
	e := setupAuthTest(&MockAuthClient{}, "")

	t.Run("htmx gets HX-Redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, handlers.ResetDonePath, nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
	})

	t.Run("plain request is redirected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, handlers.ResetDonePath, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})
}

func TestForgotPasswordPost(t *testing.T) {
	t.Run("redirect url derives from the request origin", func(t *testing.T) {
		client := &MockAuthClient{}
		e := setupAuthTest(client, "")

		form := url.Values{}
		form.Set("email", "jane@example.com")
		rec := postForm(e, "/forgot-password", form, false)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "jane@example.com", client.ResetEmail)
		assert.Equal(t, "http://example.com/reset-password", client.ResetRedirect)
		assertFlashMessage(t, rec, "success", "If an account with that email exists, a password reset link has been sent.")
	})

	t.Run("configured base url wins", func(t *testing.T) {
		client := &MockAuthClient{}
		e := setupAuthTest(client, "https://app.finarchitect.io")

		form := url.Values{}
		form.Set("email", "jane@example.com")
		postForm(e, "/forgot-password", form, false)

		assert.Equal(t, "https://app.finarchitect.io/reset-password", client.ResetRedirect)
	})

	t.Run("api failure is hidden from the user", func(t *testing.T) {
		client := &MockAuthClient{ResetErr: domain.NewAPIError(domain.ErrServerError, http.StatusNotFound, "No user with that email.")}
		e := setupAuthTest(client, "")

		form := url.Values{}
		form.Set("email", "nobody@example.com")
		rec := postForm(e, "/forgot-password", form, false)

		assertFlashMessage(t, rec, "success", "If an account with that email exists, a password reset link has been sent.")
	})
}

func TestLoginPost(t *testing.T) {
	t.Run("success sets token cookies", func(t *testing.T) {
		client := &MockAuthClient{LoginResp: &domain.LoginResponse{Success: true, AccessToken: "acc", RefreshToken: "ref"}}
		e := setupAuthTest(client, "")

		form := url.Values{}
		form.Set("email", "jane@example.com")
		form.Set("password", "P@ssw0rd")
		rec := postForm(e, "/login", form, false)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		cookies := map[string]*http.Cookie{}
		for _, c := range rec.Result().Cookies() {
			cookies[c.Name] = c
		}
		require.Contains(t, cookies, "access_token")
		assert.Equal(t, "acc", cookies["access_token"].Value)
		assert.True(t, cookies["access_token"].HttpOnly)
		require.Contains(t, cookies, "refresh_token")
		assert.Equal(t, "ref", cookies["refresh_token"].Value)
	})

	t.Run("failure flashes the api message", func(t *testing.T) {
		client := &MockAuthClient{LoginErr: domain.NewAPIError(domain.ErrServerError, http.StatusUnauthorized, "Invalid credentials")}
		e := setupAuthTest(client, "")

		form := url.Values{}
		form.Set("email", "jane@example.com")
		form.Set("password", "wrong")
		rec := postForm(e, "/login", form, false)

		assert.Equal(t, "/login", rec.Header().Get("Location"))
		assertFlashMessage(t, rec, "error", "Invalid credentials")
	})
}

func TestRegisterPost(t *testing.T) {
	validForm := func() url.Values {
		form := url.Values{}
		form.Set("email", "jane@example.com")
		form.Set("first_name", "Jane")
		form.Set("last_name", "Doe")
		form.Set("company", "Acme")
		form.Set("password", "P@ssw0rd")
		form.Set("confirm_password", "P@ssw0rd")
		return form
	}

	t.Run("sets success flash on successful registration", func(t *testing.T) {
		client := &MockAuthClient{RegisterResp: &domain.RegisterResponse{Success: true, AccessToken: "acc"}}
		e := setupAuthTest(client, "")

		rec := postForm(e, "/register", validForm(), false)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, domain.RegisterRequest{
			Email:     "jane@example.com",
			Password:  "P@ssw0rd",
			FirstName: "Jane",
			LastName:  "Doe",
			Company:   "Acme",
		}, client.RegisterReq)
		assertFlashMessage(t, rec, "success", "Account created successfully!")
	})

	t.Run("sets error flash on password mismatch", func(t *testing.T) {
		client := &MockAuthClient{}
		e := setupAuthTest(client, "")

		form := validForm()
		form.Set("confirm_password", "wrongpassword")
		rec := postForm(e, "/register", form, false)

		assert.Equal(t, "/register", rec.Header().Get("Location"))
		assert.Zero(t, client.RegisterCalls)
		assertFlashMessage(t, rec, "error", "Passwords do not match.")
	})

	t.Run("failed registration pre-fills everything but passwords", func(t *testing.T) {
		client := &MockAuthClient{RegisterErr: domain.NewAPIError(domain.ErrServerError, http.StatusBadRequest, "Email already registered")}
		e := setupAuthTest(client, "")

		rec := postForm(e, "/register", validForm(), false)
		require.Equal(t, http.StatusSeeOther, rec.Code)

		latest := map[string]*http.Cookie{}
		for _, cookie := range rec.Result().Cookies() {
			latest[cookie.Name] = cookie
		}
		req := httptest.NewRequest(http.MethodGet, "/register", nil)
		for _, cookie := range latest {
			req.AddCookie(cookie)
		}
		page := httptest.NewRecorder()
		e.ServeHTTP(page, req)

		require.Equal(t, http.StatusOK, page.Code)
		body := page.Body.String()
		assert.Contains(t, body, "Email already registered")
		assert.Contains(t, body, `value="jane@example.com"`)
		assert.Contains(t, body, `value="Jane"`)
		assert.Contains(t, body, `value="Doe"`)
		assert.Contains(t, body, `value="Acme"`)
		assert.NotContains(t, body, `value="P@ssw0rd"`)
	})

	t.Run("sets error flash on short password", func(t *testing.T) {
		client := &MockAuthClient{}
		e := setupAuthTest(client, "")

		form := validForm()
		form.Set("password", "short")
		form.Set("confirm_password", "short")
		rec := postForm(e, "/register", form, false)

		assert.Zero(t, client.RegisterCalls)
		assertFlashMessage(t, rec, "error", "Password must be at least 8 characters long.")
	})
}
