package service

import (
	"fmt"
	"strings"

	"bravonest/internal/domain"
)

// phoneEmailDomain is the fixed domain appended to a cleaned phone number to
// form the synthetic identity used by the auth backend.
const phoneEmailDomain = "bravonest.com"

// CleanPhone strips everything but digits.
func CleanPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneToEmail maps a phone number to the synthetic email-like identifier
// the auth backend stores.
func PhoneToEmail(phone string) string {
	return CleanPhone(phone) + "@" + phoneEmailDomain
}

// ValidatePhone requires exactly 10 digits after cleaning.
func ValidatePhone(phone string) error {
	if len(CleanPhone(phone)) != 10 {
		return domain.E(domain.KindValidation, "ValidatePhone", "please enter a valid 10-digit phone number", nil)
	}
	return nil
}

// FormatPhone renders (XXX) XXX-XXXX for 10 digits and partial parenthesized
// prefixes for shorter input.
func FormatPhone(phone string) string {
	cleaned := CleanPhone(phone)
	if len(cleaned) > 10 {
		cleaned = cleaned[:10]
	}
	switch {
	case len(cleaned) >= 6:
		return fmt.Sprintf("(%s) %s-%s", cleaned[:3], cleaned[3:6], cleaned[6:])
	case len(cleaned) >= 3:
		return fmt.Sprintf("(%s) %s", cleaned[:3], cleaned[3:])
	default:
		return cleaned
	}
}
