// Package resetflow models the password reset form: the token read from the
// page URL, the two password fields and the idle/submitting/success/error
// transitions around the confirm call.
package resetflow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finarchitect/resetpass/internal/domain"
	"github.com/finarchitect/resetpass/internal/domain/auth_errors"
)

// State is the lifecycle position of a reset form.
type State string

const (
	StateIdle         State = "idle"
	StateMissingToken State = "missing-token"
	StateSubmitting   State = "submitting"
	StateError        State = "error"
	StateSuccess      State = "success"
)

const (
	// DefaultSuccessMessage is shown when the API confirms without a message.
	DefaultSuccessMessage = "Your password has been successfully reset."
	// UnexpectedErrorMessage is shown when a failure carries no text.
	UnexpectedErrorMessage = "An unexpected error occurred. Please try again."

	DefaultLoginPath     = "/login"
	DefaultRedirectDelay = 3 * time.Second
)

// Form holds the local state of one reset-password page.
type Form struct {
	Token           string
	Password        string
	ConfirmPassword string
	State           State
	Error           string
	Success         string

	// RedirectTo and RedirectAfter are set once the reset succeeds.
	RedirectTo    string
	RedirectAfter time.Duration

	loginPath     string
	redirectDelay time.Duration
}

// Option adjusts where and when a successful form navigates.
type Option func(*Form)

// WithLoginPath overrides the post-success navigation target.
func WithLoginPath(path string) Option {
	return func(f *Form) { f.loginPath = path }
}

// WithRedirectDelay overrides the post-success navigation delay.
func WithRedirectDelay(d time.Duration) Option {
	return func(f *Form) { f.redirectDelay = d }
}

// New mounts a form for token. An empty token puts the form straight into
// StateMissingToken with the explanatory message.
func New(token string, opts ...Option) *Form {
	f := &Form{
		Token:         token,
		State:         StateIdle,
		loginPath:     DefaultLoginPath,
		redirectDelay: DefaultRedirectDelay,
	}
	for _, opt := range opts {
		opt(f)
	}

	if token == "" {
		f.State = StateMissingToken
		f.Error = auth_errors.ErrMissingResetToken.Error()
	}
	return f
}

// SubmitDisabled reports whether the submit control must be disabled.
func (f *Form) SubmitDisabled() bool {
	return f.State == StateSubmitting || f.Token == ""
}

// ButtonLabel is the text of the submit control for the current state.
func (f *Form) ButtonLabel() string {
	if f.State == StateSubmitting {
		return "RESETTING PASSWORD..."
	}
	return "RESET PASSWORD"
}

// Validate checks the form before any network call. It returns
// auth_errors.ErrMissingResetToken or auth_errors.ErrPasswordMismatch.
func (f *Form) Validate() error {
	if f.Token == "" {
		return auth_errors.ErrMissingResetToken
	}
	if f.Password != f.ConfirmPassword {
		return auth_errors.ErrPasswordMismatch
	}
	return nil
}

// Submit runs one submission against confirmer. A missing token is a no-op
// and a mismatch only sets the inline error; neither issues a call.
// Submit returns the error that moved the form into StateError, if any.
func (f *Form) Submit(ctx context.Context, confirmer domain.PasswordResetConfirmer) error {
	if f.SubmitDisabled() {
		return nil
	}

	if err := f.Validate(); err != nil {
		f.Error = err.Error()
		return err
	}

	f.State = StateSubmitting
	f.Error = ""

	resp, err := confirmer.PasswordResetConfirm(ctx, f.Token, f.Password)
	if err != nil {
		slog.Error("Password reset error", "error", err)
		f.State = StateError
		f.Error = userMessage(err)
		return err
	}

	f.State = StateSuccess
	f.Success = resp.Message
	if f.Success == "" {
		f.Success = DefaultSuccessMessage
	}
	f.Password = ""
	f.ConfirmPassword = ""
	f.RedirectTo = f.loginPath
	f.RedirectAfter = f.redirectDelay
	return nil
}

// userMessage turns a confirm failure into the single line shown to the user.
// Transport failures carry internal URLs, so only API errors are shown as is.
func userMessage(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return UnexpectedErrorMessage
}
