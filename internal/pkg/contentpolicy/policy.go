// Package contentpolicy holds the prompt rules applied before anything is
// persisted or forwarded to the generation API.
package contentpolicy

import (
	"strings"
	"unicode/utf8"

	"weaponforge-be/internal/pkg/apperror"
)

const (
	MinPromptLength = 10
	MaxPromptLength = 500
)

var forbiddenTerms = [...]string{"weapon", "gun", "bomb", "violence"}

// ForbiddenTerms returns a copy of the compiled-in term list.
func ForbiddenTerms() []string {
	return append([]string(nil), forbiddenTerms[:]...)
}

// CheckLength enforces the 10-500 character window. Callers decide whether
// the prompt is trimmed first.
func CheckLength(prompt string) error {
	n := utf8.RuneCountInString(prompt)
	if n < MinPromptLength || n > MaxPromptLength {
		return apperror.Validation("prompt length must be 10-500")
	}
	return nil
}

// ContainsForbidden reports whether prompt contains a forbidden term as a
// case-insensitive substring.
func ContainsForbidden(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, term := range forbiddenTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// CheckTaskPrompt validates a prompt bound for the generation API. The raw,
// untrimmed prompt is measured.
func CheckTaskPrompt(prompt string) error {
	if err := CheckLength(prompt); err != nil {
		return err
	}
	if ContainsForbidden(prompt) {
		return apperror.Validation("prompt contains forbidden content")
	}
	return nil
}

// NormalizeWeaponPrompt trims a weapon prompt and checks its length. Forbidden
// terms are not checked on this path.
func NormalizeWeaponPrompt(prompt string) (string, error) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return "", apperror.Validation("prompt is required")
	}
	if err := CheckLength(trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}
