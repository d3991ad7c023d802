package valueobject

import (
	"regexp"
	"strings"
)

const (
	emailMinLen = 5
	emailMaxLen = 254
)

// Characters that must never appear in an address we store; they are the
// usual suspects for header injection and SQL/shell metacharacters.
const emailForbiddenChars = "<>\"'\\/;:&|`"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is an immutable, validated email address.
type Email struct {
	value string
}

// NewEmail trims and validates a raw address. The returned Email carries the
// normalized form; validation failures come back as *ValidationError.
func NewEmail(raw string) (Email, error) {
	v := strings.TrimSpace(raw)

	if len(v) < emailMinLen {
		return Email{}, newValidationError("email", KindTooShort, "email must be at least 5 characters")
	}
	if len(v) > emailMaxLen {
		return Email{}, newValidationError("email", KindTooLong, "email must be at most 254 characters")
	}
	if strings.ContainsAny(v, emailForbiddenChars) {
		return Email{}, newValidationError("email", KindForbiddenChars, "email contains forbidden characters")
	}
	if !emailPattern.MatchString(v) {
		return Email{}, newValidationError("email", KindInvalidEmailFormat, "invalid email format")
	}

	at := strings.LastIndex(v, "@")
	local, domain := v[:at], v[at+1:]
	if hasBadEdge(local) || hasBadEdge(domain) {
		return Email{}, newValidationError("email", KindInvalidEmailFormat, "email segment cannot start or end with '.' or '-'")
	}

	return Email{value: v}, nil
}

// hasBadEdge reports whether s starts or ends with '.' or '-'.
func hasBadEdge(s string) bool {
	if s == "" {
		return true
	}
	first, last := s[0], s[len(s)-1]
	return first == '.' || first == '-' || last == '.' || last == '-'
}

func (e Email) String() string { return e.value }

// IsZero reports whether the email was never constructed.
func (e Email) IsZero() bool { return e.value == "" }
