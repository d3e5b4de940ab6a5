package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/finarchitect/resetpass/internal/config"
	"github.com/finarchitect/resetpass/internal/domain"
	"github.com/finarchitect/resetpass/internal/middleware"
	"github.com/finarchitect/resetpass/internal/rendering"
	"github.com/finarchitect/resetpass/internal/resetflow"
	"github.com/finarchitect/resetpass/internal/view"
	"github.com/finarchitect/resetpass/internal/view/dto/auth"
	"github.com/finarchitect/resetpass/web/src/templates/layouts"
	"github.com/finarchitect/resetpass/web/src/templates/pages"
)

const (
	// ResetDonePath answers the delayed navigation request fired after a
	// successful reset.
	ResetDonePath = "/reset-password/done"

	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"

	forgotPasswordSentMessage = "If an account with that email exists, a password reset link has been sent."
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	client   domain.AuthClient
	renderer rendering.Renderer
	cfg      config.Provider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(client domain.AuthClient, renderer rendering.Renderer, cfg config.Provider) *AuthHandler {
	return &AuthHandler{
		client:   client,
		renderer: renderer,
		cfg:      cfg,
	}
}

// ResetPasswordGet renders the password reset page (GET /reset-password?token=...).
// A missing token is shown on the page itself with the submit control disabled.
func (h *AuthHandler) ResetPasswordGet(c echo.Context) error {
	form := h.newResetForm(c.QueryParam("token"))
	return h.renderResetForm(c, form)
}

// ResetPasswordPost handles the form submission for setting a new password.
func (h *AuthHandler) ResetPasswordPost(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	form := h.newResetForm(req.Token)
	form.Password = req.Password
	form.ConfirmPassword = req.ConfirmPassword

	if err := c.Validate(&req); err != nil && !form.SubmitDisabled() {
		form.Error = "Please enter and confirm your new password."
		return h.renderResetForm(c, form)
	}

	if err := form.Submit(c.Request().Context(), h.client); err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			logger.Warn("Password reset rejected by auth API", "status", apiErr.Status, "error", apiErr.Message)
		}
	}

	if form.State == resetflow.StateSuccess {
		logger.Info("Password reset confirmed")
		if !isHTMX(c) {
			c.Response().Header().Set("Refresh", refreshHeader(form.RedirectAfter, form.RedirectTo))
		}
	}

	return h.renderResetForm(c, form)
}

// ResetPasswordDone performs the delayed navigation to the login page.
func (h *AuthHandler) ResetPasswordDone(c echo.Context) error {
	loginPath := h.cfg.GetLoginPath()
	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", loginPath)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, loginPath)
}

// ForgotPasswordGet renders the page for requesting a reset link.
func (h *AuthHandler) ForgotPasswordGet(c echo.Context) error {
	data := auth.ForgotPasswordData{Email: view.PopFormEmail(c)}
	page := layouts.Base("Forgot Password", view.GetFlashData(c), pages.ForgotPassword(data))
	return h.renderer.RenderPage(c, http.StatusOK, page)
}

// ForgotPasswordPost asks the auth API to email a reset link.
func (h *AuthHandler) ForgotPasswordPost(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&req); err != nil {
		view.SetFormEmail(c, req.Email)
		view.SetFlashError(c, validationMessage(err))
		return c.Redirect(http.StatusSeeOther, "/forgot-password")
	}

	redirectURL := h.origin(c) + "/reset-password"
	if _, err := h.client.PasswordReset(c.Request().Context(), req.Email, redirectURL); err != nil {
		// To prevent email enumeration attacks, we show the same message
		// whether or not the API accepted the address. The error is logged.
		logger.Info("Password reset request failed, hiding from user", "email", req.Email, "error", err)
	}

	view.SetFlashSuccess(c, forgotPasswordSentMessage)
	return c.Redirect(http.StatusSeeOther, "/forgot-password")
}

// LoginGet renders the login page (GET /login).
func (h *AuthHandler) LoginGet(c echo.Context) error {
	data := auth.LoginData{Email: view.PopFormEmail(c)}
	page := layouts.Base("Login", view.GetFlashData(c), pages.Login(data))
	return h.renderer.RenderPage(c, http.StatusOK, page)
}

// LoginPost handles the form submission for logging in a user.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&req); err != nil {
		view.SetFormEmail(c, req.Email)
		view.SetFlashError(c, validationMessage(err))
		return c.Redirect(http.StatusSeeOther, h.cfg.GetLoginPath())
	}

	resp, err := h.client.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("Failed login attempt", "email", req.Email, "error", err)
		view.SetFormEmail(c, req.Email)
		view.SetFlashError(c, userMessage(err, "Invalid email or password."))
		return c.Redirect(http.StatusSeeOther, h.cfg.GetLoginPath())
	}

	setTokenCookies(c, resp.AccessToken, resp.RefreshToken)
	view.SetFlashSuccess(c, messageOr(resp.Message, "Logged in successfully!"))
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the token cookies.
func (h *AuthHandler) Logout(c echo.Context) error {
	setTokenCookies(c, "", "")
	view.SetFlashSuccess(c, "You have been logged out.")
	return c.Redirect(http.StatusSeeOther, h.cfg.GetLoginPath())
}

// RegisterGet renders the registration page (GET /register).
func (h *AuthHandler) RegisterGet(c echo.Context) error {
	data := auth.RegisterData{
		Email:     view.PopFormEmail(c),
		FirstName: view.PopFormValue(c, "first_name"),
		LastName:  view.PopFormValue(c, "last_name"),
		Company:   view.PopFormValue(c, "company"),
	}
	page := layouts.Base("Register", view.GetFlashData(c), pages.Register(data))
	return h.renderer.RenderPage(c, http.StatusOK, page)
}

// RegisterPost handles the form submission for creating a new account.
func (h *AuthHandler) RegisterPost(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(&req); err != nil {
		rememberRegisterForm(c, req)
		view.SetFlashError(c, validationMessage(err))
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	resp, err := h.client.Register(c.Request().Context(), domain.RegisterRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
	})
	if err != nil {
		logger.Error("Error creating account", "email", req.Email, "error", err)
		rememberRegisterForm(c, req)
		view.SetFlashError(c, userMessage(err, "Could not create your account."))
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	setTokenCookies(c, resp.AccessToken, resp.RefreshToken)
	view.SetFlashSuccess(c, messageOr(resp.Message, "Account created successfully!"))
	return c.Redirect(http.StatusSeeOther, "/")
}

// rememberRegisterForm keeps everything but the passwords for the next render.
func rememberRegisterForm(c echo.Context, req RegisterRequest) {
	view.SetFormValues(c, map[string]string{
		"email":      req.Email,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"company":    req.Company,
	})
}

func (h *AuthHandler) newResetForm(token string) *resetflow.Form {
	return resetflow.New(token,
		resetflow.WithLoginPath(h.cfg.GetLoginPath()),
		resetflow.WithRedirectDelay(h.cfg.GetResetRedirectDelay()),
	)
}

// renderResetForm answers htmx requests with the form fragment and
// everything else with the full page.
func (h *AuthHandler) renderResetForm(c echo.Context, form *resetflow.Form) error {
	data := auth.ResetPasswordData{
		Token:          form.Token,
		Error:          form.Error,
		Success:        form.Success,
		SubmitDisabled: form.SubmitDisabled(),
		ButtonLabel:    form.ButtonLabel(),
	}
	if form.State == resetflow.StateSuccess {
		data.RedirectURL = ResetDonePath
		data.RedirectAfter = form.RedirectAfter
	}

	if isHTMX(c) {
		return h.renderer.RenderPage(c, http.StatusOK, pages.ResetPasswordForm(data))
	}
	page := layouts.Base("Reset Password", view.GetFlashData(c), pages.ResetPassword(data, h.cfg.GetLoginPath()))
	return h.renderer.RenderPage(c, http.StatusOK, page)
}

// origin is the public base URL of this site, used to build links that the
// auth API emails back to users.
func (h *AuthHandler) origin(c echo.Context) string {
	if base := h.cfg.GetAppBaseURL(); base != "" {
		return base
	}
	return c.Scheme() + "://" + c.Request().Host
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

func refreshHeader(after time.Duration, target string) string {
	return strconv.Itoa(int(after.Round(time.Second)/time.Second)) + "; url=" + target
}

// userMessage prefers the API's own message and falls back otherwise.
func userMessage(err error, fallback string) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

// setTokenCookies stores the API token pair. Empty values expire the cookies.
func setTokenCookies(c echo.Context, accessToken, refreshToken string) {
	setAuthCookie(c, accessTokenCookie, accessToken, 24*time.Hour)
	setAuthCookie(c, refreshTokenCookie, refreshToken, 7*24*time.Hour)
}

func setAuthCookie(c echo.Context, name, value string, ttl time.Duration) {
	cookie := new(http.Cookie)
	cookie.Name = name
	cookie.Value = value
	cookie.Path = "/"
	if value == "" {
		cookie.MaxAge = -1
	} else {
		cookie.Expires = time.Now().UTC().Add(ttl)
	}
	// HttpOnly keeps tokens out of reach of page scripts.
	cookie.HttpOnly = true
	cookie.Secure = c.Request().TLS != nil
	cookie.SameSite = http.SameSiteLaxMode
	c.SetCookie(cookie)
}
