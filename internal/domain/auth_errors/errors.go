package auth_errors

import "errors"

// Client-side failures of the password reset flow. Both are detected before
// any request reaches the authentication API.
var (
	// ErrMissingResetToken indicates the page was opened without a token
	// query parameter.
	ErrMissingResetToken = errors.New("Invalid or missing reset token. Please request a new password reset link.")

	// ErrPasswordMismatch indicates the password and its confirmation differ.
	ErrPasswordMismatch = errors.New("Passwords do not match")
)
