// Package accounts handles the login, signup and forgot-password forms.
// There are no real accounts: submissions are validated and logged, never
// stored.
package accounts

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/sethvargo/go-password/password"
	"golang.org/x/crypto/bcrypt"

	"cinecontext/internal/validation"
	"cinecontext/models"
)

const resetCodeLength = 10

type Service struct {
	log        *slog.Logger
	bcryptCost int
	// resetCode is swapped in tests.
	resetCode func() (string, error)
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		log:        logger.With("component", "accounts"),
		bcryptCost: bcrypt.DefaultCost,
		resetCode: func() (string, error) {
			return password.Generate(resetCodeLength, 4, 0, true, true)
		},
	}
}

// Login validates the form and logs the attempt. The password is never
// logged.
func (s *Service) Login(form models.LoginForm) (models.FormResult, error) {
	form.Email = normalizeEmail(form.Email)
	if result, ok := invalid(form); !ok {
		s.log.Info("login form rejected", "email", form.Email, "fields", fieldNames(result))
		return result, nil
	}
	s.log.Info("login submitted", "email", form.Email, "remember", form.Remember)
	return models.FormResult{OK: true, Message: "Signed in as " + form.Email + "."}, nil
}

// Signup validates the form and logs a bcrypt hash in place of the
// password.
func (s *Service) Signup(form models.SignupForm) (models.FormResult, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = normalizeEmail(form.Email)
	if result, ok := invalid(form); !ok {
		s.log.Info("signup form rejected", "email", form.Email, "fields", fieldNames(result))
		return result, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.bcryptCost)
	if err != nil {
		return models.FormResult{}, fmt.Errorf("hash password: %w", err)
	}
	s.log.Info("signup submitted", "name", form.Name, "email", form.Email, "password_hash", string(hash))
	return models.FormResult{OK: true, Message: "Welcome, " + form.Name + "! Your account is ready."}, nil
}

// ForgotPassword validates the form and logs a one-time reset code.
func (s *Service) ForgotPassword(form models.ForgotPasswordForm) (models.FormResult, error) {
	form.Email = normalizeEmail(form.Email)
	if result, ok := invalid(form); !ok {
		s.log.Info("forgot-password form rejected", "email", form.Email, "fields", fieldNames(result))
		return result, nil
	}
	code, err := s.resetCode()
	if err != nil {
		return models.FormResult{}, fmt.Errorf("generate reset code: %w", err)
	}
	s.log.Info("password reset requested", "email", form.Email, "reset_code", code)
	return models.FormResult{OK: true, Message: "If an account exists for " + form.Email + ", a reset link is on its way."}, nil
}

func invalid(form any) (models.FormResult, bool) {
	err := validation.Struct(form)
	if err == nil {
		return models.FormResult{}, true
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return models.FormResult{Message: "Please fix the highlighted fields.", Errors: verr.Map()}, false
	}
	return models.FormResult{Message: err.Error()}, false
}

func fieldNames(result models.FormResult) []string {
	names := make([]string, 0, len(result.Errors))
	for name := range result.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
