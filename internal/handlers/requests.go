package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	v := validator.New()
	// Report form field names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// LoginRequest defines the DTO for POST /login.
type LoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// RegisterRequest defines the DTO for POST /register.
type RegisterRequest struct {
	Email           string `form:"email" validate:"required,email"`
	FirstName       string `form:"first_name" validate:"required,max=150"`
	LastName        string `form:"last_name" validate:"required,max=150"`
	Company         string `form:"company" validate:"max=255"`
	Password        string `form:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" validate:"eqfield=Password"`
}

// ForgotPasswordRequest defines the DTO for POST /forgot-password.
type ForgotPasswordRequest struct {
	Email string `form:"email" validate:"required,email"`
}

// ResetPasswordRequest defines the DTO for POST /reset-password. Equality of
// the two passwords is checked by the reset form itself.
type ResetPasswordRequest struct {
	Token           string `form:"token"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
}

// validationMessage turns the first validation failure into a sentence
// suitable for a flash message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Please check the form and try again."
	}

	fe := verrs[0]
	label := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return "Please fill in your " + label + "."
	case "email":
		return "Please enter a valid email address."
	case "min":
		return "Password must be at least " + fe.Param() + " characters long."
	case "max":
		return "The " + label + " is too long."
	case "eqfield":
		return "Passwords do not match."
	default:
		return "Please check the " + label + " field."
	}
}
