package sanitizer

import (
	"strings"
	"unicode"
)

const anonymousVisitor = "Anonymous"

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		case unicode.IsControl(r):
			// dropped
		default:
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return strings.TrimSpace(result.String())
}

// NormalizeVisitorName falls back to "Anonymous" when nothing printable is left.
func NormalizeVisitorName(name string) string {
	if n := TrimAndNormalize(name); n != "" {
		return n
	}
	return anonymousVisitor
}

func NormalizeEmail(email string) string {
	return strings.ToLower(TrimAndNormalize(email))
}

func NormalizeIdentifier(id string) string {
	return strings.TrimSpace(id)
}
