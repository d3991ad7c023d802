package valueobject

// ErrorKind classifies why a value object rejected its input.
type ErrorKind string

const (
	KindInvalidEmailFormat ErrorKind = "invalid_email_format"
	KindTooShort           ErrorKind = "too_short"
	KindTooLong            ErrorKind = "too_long"
	KindForbiddenChars     ErrorKind = "forbidden_chars"
	KindContainsSpaces     ErrorKind = "contains_spaces"
	KindInvalidCharset     ErrorKind = "invalid_charset"
	KindInvalidBoundary    ErrorKind = "invalid_boundary"
	KindAllDigits          ErrorKind = "all_digits"
	KindInvalidEnum        ErrorKind = "invalid_enum"
)

// ValidationError reports a single rule violation during value object
// construction. Kind stays stable across message wording changes.
type ValidationError struct {
	Field   string
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func newValidationError(field string, kind ErrorKind, msg string) *ValidationError {
	return &ValidationError{Field: field, Kind: kind, Message: msg}
}
