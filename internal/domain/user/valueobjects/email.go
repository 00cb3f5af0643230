package valueobjects

import (
	"fmt"
	"net/mail"
	"strings"
)

// Email is a normalized (lowercased, trimmed) email address.
type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return Email{}, fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return Email{}, fmt.Errorf("invalid email address: %q", s)
	}
	return Email{value: normalized}, nil
}

func (e Email) String() string {
	return e.value
}

func (e Email) IsZero() bool {
	return e.value == ""
}
