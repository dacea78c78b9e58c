package user

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

const (
	MinLoginLen    = 3
	MaxLoginLen    = 32
	MinPasswordLen = 8
)

// Validator - интерфейс для валидации учетных данных
type Validator interface {
	ValidateRegister(login, password string) error
	ValidateLogin(login string) error
}

// CredentialsValidator требует буквы и цифры в пароле; спецсимвол
// включается отдельно.
type CredentialsValidator struct {
	requireSpecialChar bool
}

func NewCredentialsValidator(requireSpecialChar bool) *CredentialsValidator {
	return &CredentialsValidator{requireSpecialChar: requireSpecialChar}
}

func (v *CredentialsValidator) ValidateRegister(login, password string) error {
	if err := v.ValidateLogin(login); err != nil {
		return fmt.Errorf("login validation failed: %w", err)
	}

	if err := v.validatePassword(password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}

	return nil
}

func (v *CredentialsValidator) ValidateLogin(login string) error {
	n := utf8.RuneCountInString(login)
	if n < MinLoginLen || n > MaxLoginLen {
		return fmt.Errorf("login must be %d-%d characters", MinLoginLen, MaxLoginLen)
	}

	for _, r := range login {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return fmt.Errorf("login can only contain letters, digits, '_', '-', '.'")
		}
	}

	return nil
}

func (v *CredentialsValidator) validatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}

	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain letters and digits")
	}
	if v.requireSpecialChar && !hasSpecial {
		return fmt.Errorf("password must contain at least one special character")
	}

	return nil
}
