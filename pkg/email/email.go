package email

import (
	"strings"
	"unicode"
)

// DeriveNameFromEmail extracts a plausible first/last name from the local
// part of an address. The onboarding notifier uses it as a greeting fallback
// when a tenant record carries a blank name.
func DeriveNameFromEmail(email string) (string, string) {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	if len(parts) == 0 {
		return "Tenant", "Tenant"
	}

	first := capitalize(parts[0])
	last := "Tenant"
	if len(parts) > 1 {
		last = capitalize(parts[len(parts)-1])
	}

	return first, last
}

// DisplayName returns name unchanged when present, otherwise a name derived
// from the email address.
func DisplayName(name, email string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	first, _ := DeriveNameFromEmail(email)
	return first
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
