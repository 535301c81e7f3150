package service

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dujiao-next/storefront/internal/config"
)

// PasswordPolicyError 密码未满足的全部规则，errors.Is 可匹配 ErrWeakPassword
type PasswordPolicyError struct {
	Violations []string
}

func (e *PasswordPolicyError) Error() string {
	return strings.Join(e.Violations, "; ")
}

func (e *PasswordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

type charClass struct {
	required bool
	match    func(rune) bool
	message  string
}

func isSpecial(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	var violations []string
	if n := len([]rune(password)); policy.MinLength > 0 && n < policy.MinLength {
		violations = append(violations, fmt.Sprintf("Password must be at least %d characters", policy.MinLength))
	}
	classes := []charClass{
		{policy.RequireUpper, unicode.IsUpper, "Password must contain an uppercase letter"},
		{policy.RequireLower, unicode.IsLower, "Password must contain a lowercase letter"},
		{policy.RequireNumber, unicode.IsDigit, "Password must contain a number"},
		{policy.RequireSpecial, isSpecial, "Password must contain a special character"},
	}
	for _, class := range classes {
		if class.required && !strings.ContainsFunc(password, class.match) {
			violations = append(violations, class.message)
		}
	}
	if len(violations) == 0 {
		return nil
	}
	return &PasswordPolicyError{Violations: violations}
}
