// Package sanitize holds the platform's input validation helpers. They
// are pure string predicates with no state; the regular expressions are
// part of the external contract and must not drift.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// EmailPattern validates platform email addresses.
	EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// UsernamePattern validates account names: 3-20 word characters or dashes.
	UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)
	// PhonePattern validates international phone numbers: 10-15 digits
	// with an optional leading plus.
	PhonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

	passwordLower  = regexp.MustCompile(`[a-z]`)
	passwordUpper  = regexp.MustCompile(`[A-Z]`)
	passwordDigit  = regexp.MustCompile(`[0-9]`)
	passwordSymbol = regexp.MustCompile(`[@$!%*?&]`)

	scriptBlockPattern = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	xssPatterns        = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script\b`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)\bon\w+\s*=`),
		regexp.MustCompile(`(?i)<iframe\b`),
		regexp.MustCompile(`(?i)<img\b[^>]*\bonerror\b`),
	}
	sqlPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(union|select|insert|update|delete|drop|alter)\b.*\b(from|into|table|where)\b`),
		regexp.MustCompile(`(?i)('|")\s*(or|and)\s+.*=`),
		regexp.MustCompile(`--`),
		regexp.MustCompile(`;\s*(drop|delete|update|insert)\b`),
	}
)

// IsValidEmail reports whether s matches the email contract.
func IsValidEmail(s string) bool {
	return EmailPattern.MatchString(s)
}

// IsValidUsername reports whether s matches the username contract.
func IsValidUsername(s string) bool {
	return UsernamePattern.MatchString(s)
}

// IsValidPhone reports whether s matches the phone contract.
func IsValidPhone(s string) bool {
	return PhonePattern.MatchString(s)
}

// IsPasswordStrong requires a lower-case letter, an upper-case letter, a
// digit, one of @$!%*?&, and at least 8 characters.
func IsPasswordStrong(s string) bool {
	return len(s) >= 8 &&
		passwordLower.MatchString(s) &&
		passwordUpper.MatchString(s) &&
		passwordDigit.MatchString(s) &&
		passwordSymbol.MatchString(s)
}

// ContainsXSSScripts reports whether s carries a script-injection marker.
func ContainsXSSScripts(s string) bool {
	for _, p := range xssPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// ContainsSQLInjection reports whether s carries a SQL-injection marker.
func ContainsSQLInjection(s string) bool {
	for _, p := range sqlPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// escaper neutralises markup-significant characters.
var escaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// SanitizeInput strips script blocks, escapes markup characters, and
// trims surrounding whitespace.
func SanitizeInput(s string) string {
	s = scriptBlockPattern.ReplaceAllString(s, "")
	s = escaper.Replace(s)
	return strings.TrimSpace(s)
}
