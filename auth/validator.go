package auth

import (
	stderrors "errors"
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"

	"wavechat/errors"
)

var validate = validator.New()

type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// ResetPasswordRequest is the forgot-password flow payload.
type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// ValidateRegister checks field constraints before any cryptographic work.
func ValidateRegister(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return sentinelFor(err)
	}
	if !hasLetterAndDigit(req.Password) {
		return errors.ErrInvalidPassword
	}
	return nil
}

// ValidateReset applies the same password rules as registration.
func ValidateReset(req ResetPasswordRequest) error {
	if err := validate.Struct(req); err != nil {
		return sentinelFor(err)
	}
	if !hasLetterAndDigit(req.Password) {
		return errors.ErrInvalidPassword
	}
	return nil
}

// sentinelFor maps a validator failure to the matching domain sentinel.
// Only password faults get the complexity error; a bad email or name must
// not be reported as a password problem.
func sentinelFor(err error) error {
	var fields validator.ValidationErrors
	if stderrors.As(err, &fields) {
		for _, field := range fields {
			if field.Field() == "Password" {
				return fmt.Errorf("%w: %v", errors.ErrInvalidPassword, err)
			}
		}
	}
	return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
}

func hasLetterAndDigit(s string) bool {
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsNumber(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
