// Package validation provides input validation helpers for user and pin payloads.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input limit
	MaxTitleLength    = 200
	MaxBodyLength     = 2000
	MaxTagLength      = 50
	MaxTagCount       = 20
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ValidateUsername checks that a username is within length bounds and uses
// only letters, digits, underscore, dot and hyphen.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength {
		return fmt.Errorf("username must be at least %d characters", MinUsernameLength)
	}
	if len(username) > MaxUsernameLength {
		return fmt.Errorf("username must be at most %d characters", MaxUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username may only contain letters, numbers, underscores, dots and hyphens")
	}
	return nil
}

// ValidateEmail checks that an email address parses per RFC 5322.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword enforces length bounds and a minimal character mix.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one digit")
	}
	return nil
}

// ValidatePinTitle checks that a pin title is present and within bounds.
func ValidatePinTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return fmt.Errorf("title is required")
	}
	if len(trimmed) > MaxTitleLength {
		return fmt.Errorf("title must be at most %d characters", MaxTitleLength)
	}
	return nil
}

// ValidatePinDescription checks optional description length.
func ValidatePinDescription(description string) error {
	if len(description) > MaxBodyLength {
		return fmt.Errorf("description must be at most %d characters", MaxBodyLength)
	}
	return nil
}

// ValidateTags checks tag count, individual tag length and characters.
// Double quotes are rejected because tags are matched as quoted JSON
// substrings in feed queries.
func ValidateTags(tags []string) error {
	if len(tags) > MaxTagCount {
		return fmt.Errorf("at most %d tags allowed", MaxTagCount)
	}
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			return fmt.Errorf("tags must not be empty")
		}
		if len(trimmed) > MaxTagLength {
			return fmt.Errorf("tag %q must be at most %d characters", trimmed, MaxTagLength)
		}
		if strings.ContainsAny(trimmed, `"\`) {
			return fmt.Errorf("tag %q contains invalid characters", trimmed)
		}
	}
	return nil
}

// NormalizeTags trims whitespace, lowercases and deduplicates tags,
// preserving first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
