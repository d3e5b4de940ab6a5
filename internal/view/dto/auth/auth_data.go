package auth

import "time"

// LoginData is a View Model (DTO) used specifically for the login template.
// It simplifies data passed from the handler, such as a previously submitted email.
type LoginData struct {
	Email string
}

// ForgotPasswordData is used to transfer data (like a pre-filled email) to the forgot password template.
type ForgotPasswordData struct {
	Email string
}

// RegisterData is used to transfer data (like the pre-filled email) to the registration template.
type RegisterData struct {
	Email     string
	FirstName string
	LastName  string
	Company   string
}

// ResetPasswordData is the rendered snapshot of a reset form.
type ResetPasswordData struct {
	Token          string
	Error          string
	Success        string
	SubmitDisabled bool
	ButtonLabel    string

	// RedirectURL is polled after RedirectAfter once the reset succeeded.
	RedirectURL   string
	RedirectAfter time.Duration
}
