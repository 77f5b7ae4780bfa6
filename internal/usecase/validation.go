package usecase

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"cinelog/internal/apperror"
	"cinelog/internal/entity"
)

var (
	emailRegexp    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// validateSignup returns every violated rule, not just the first.
func validateSignup(req entity.SignupRequest) []apperror.Violation {
	var violations []apperror.Violation

	if !emailRegexp.MatchString(req.Email) {
		violations = append(violations, apperror.Violation{Field: "email", Message: "Invalid email format"})
	}

	violations = append(violations, validatePassword(req.Password)...)

	if len(req.Username) < 3 {
		violations = append(violations, apperror.Violation{Field: "username", Message: "Username must be at least 3 characters"})
	} else if len(req.Username) > 30 {
		violations = append(violations, apperror.Violation{Field: "username", Message: "Username must be at most 30 characters"})
	}
	if req.Username != "" && !usernameRegexp.MatchString(req.Username) {
		violations = append(violations, apperror.Violation{Field: "username", Message: "Username can only contain letters, numbers, and underscores"})
	}

	// Display names are user-facing text, so the bound counts characters,
	// not bytes.
	if req.DisplayName == "" {
		violations = append(violations, apperror.Violation{Field: "displayName", Message: "Display name is required"})
	} else if utf8.RuneCountInString(req.DisplayName) > 100 {
		violations = append(violations, apperror.Violation{Field: "displayName", Message: "Display name must be at most 100 characters"})
	}

	return violations
}

func validatePassword(password string) []apperror.Violation {
	var violations []apperror.Violation

	if len(password) < 8 {
		violations = append(violations, apperror.Violation{Field: "password", Message: "Password must be at least 8 characters"})
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		violations = append(violations, apperror.Violation{Field: "password", Message: "Password must contain at least one uppercase letter"})
	}
	if !hasLower {
		violations = append(violations, apperror.Violation{Field: "password", Message: "Password must contain at least one lowercase letter"})
	}
	if !hasDigit {
		violations = append(violations, apperror.Violation{Field: "password", Message: "Password must contain at least one number"})
	}

	return violations
}

func validateLogin(req entity.LoginRequest) []apperror.Violation {
	var violations []apperror.Violation
	if !emailRegexp.MatchString(req.Email) {
		violations = append(violations, apperror.Violation{Field: "email", Message: "Invalid email format"})
	}
	if req.Password == "" {
		violations = append(violations, apperror.Violation{Field: "password", Message: "Password is required"})
	}
	return violations
}
