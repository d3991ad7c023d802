package valueobject

import (
	"regexp"
	"strings"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 30
)

var (
	usernameCharset = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	allDigits       = regexp.MustCompile(`^[0-9]+$`)
)

// Username is an immutable, validated account name.
type Username struct {
	value string
}

// NewUsername trims and validates a raw username against the account-name
// grammar: 3-30 chars, [a-zA-Z0-9_-], no spaces, no leading/trailing '-'/'_',
// not all digits.
func NewUsername(raw string) (Username, error) {
	v := strings.TrimSpace(raw)

	if len(v) < usernameMinLen {
		return Username{}, newValidationError("username", KindTooShort, "username must be at least 3 characters")
	}
	if len(v) > usernameMaxLen {
		return Username{}, newValidationError("username", KindTooLong, "username must be at most 30 characters")
	}
	if strings.Contains(v, " ") {
		return Username{}, newValidationError("username", KindContainsSpaces, "username cannot contain spaces")
	}
	if !usernameCharset.MatchString(v) {
		return Username{}, newValidationError("username", KindInvalidCharset, "username may only contain letters, digits, '_' and '-'")
	}
	if v[0] == '-' || v[0] == '_' || v[len(v)-1] == '-' || v[len(v)-1] == '_' {
		return Username{}, newValidationError("username", KindInvalidBoundary, "username cannot start or end with '-' or '_'")
	}
	if allDigits.MatchString(v) {
		return Username{}, newValidationError("username", KindAllDigits, "username cannot be all digits")
	}

	return Username{value: v}, nil
}

func (u Username) String() string { return u.value }

func (u Username) IsZero() bool { return u.value == "" }
