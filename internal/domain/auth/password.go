package auth

import (
	"crypto/rand"
	"encoding/base64"
	"regexp"

	appErrors "Parcelo/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	hasUpper  = regexp.MustCompile(`[A-Z]`)
	hasLower  = regexp.MustCompile(`[a-z]`)
	hasNumber = regexp.MustCompile(`[0-9]`)
)

func PasswordRequirements(password string) error {
	if len(password) < 8 {
		return appErrors.NewValidationError("password", "senha deve ter no mínimo 8 caracteres")
	}
	if !hasUpper.MatchString(password) {
		return appErrors.NewValidationError("password", "senha deve conter ao menos uma letra maiúscula")
	}
	if !hasLower.MatchString(password) {
		return appErrors.NewValidationError("password", "senha deve conter ao menos uma letra minúscula")
	}
	if !hasNumber.MatchString(password) {
		return appErrors.NewValidationError("password", "senha deve conter ao menos um número")
	}
	return nil
}

func PasswordValidate(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return appErrors.ErrInvalidCredentials
	}
	return nil
}

func randomPassword() string {
	buf := make([]byte, 24)
	_, _ = rand.Read(buf)
	return "G0ogle" + base64.RawURLEncoding.EncodeToString(buf)
}
