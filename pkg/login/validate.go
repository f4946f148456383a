package login

import (
	"regexp"
	"strings"
	"unicode/utf16"
)

// Field names used as FieldErrors keys and as form input names.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// MinPasswordLength is the minimum raw password length accepted by Validate.
const MinPasswordLength = 6

// Validation messages surfaced inline next to the offending input.
const (
	MessageEmailRequired    = "Email is required"
	MessageEmailInvalid     = "Email is invalid"
	MessagePasswordRequired = "Password is required"
	MessagePasswordTooShort = "Password must be at least 6 characters"
)

// IssueKind classifies a validation failure.
type IssueKind string

const (
	// MissingField marks an empty or whitespace-only value.
	MissingField IssueKind = "missing"
	// InvalidField marks a present value that fails a format or length rule.
	InvalidField IssueKind = "invalid"
)

// Issue is a single field-level validation failure.
type Issue struct {
	Field   string    `json:"field"`
	Kind    IssueKind `json:"kind"`
	Message string    `json:"message"`
}

// FieldErrors maps a field name to its validation message. A missing key means
// the field is valid or has not been validated yet.
type FieldErrors map[string]string

// Has reports whether field carries an error.
func (e FieldErrors) Has(field string) bool {
	if len(e) == 0 {
		return false
	}
	_, ok := e[field]
	return ok
}

// Clone returns an independent copy. A nil or empty receiver yields an empty,
// non-nil map.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for field, message := range e {
		out[field] = message
	}
	return out
}

// emailPattern expands the browser's \s so the character class matches the
// same whitespace set the original form rejected.
var emailPattern = regexp.MustCompile(
	`^[^@` + whitespaceClass + `]+@[^@` + whitespaceClass + `]+\.[^@` + whitespaceClass + `]+$`,
)

const whitespaceClass = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

// Validate computes a fresh error mapping for the supplied credentials. The
// email and password rules are independent, so both keys may be present.
func Validate(email, password string) FieldErrors {
	errs := FieldErrors{}
	for _, issue := range ValidateIssues(email, password) {
		errs[issue.Field] = issue.Message
	}
	return errs
}

// ValidateIssues is the typed form of Validate. Issues are ordered email first.
func ValidateIssues(email, password string) []Issue {
	var issues []Issue
	if issue, ok := validateEmail(email); !ok {
		issues = append(issues, issue)
	}
	if issue, ok := validatePassword(password); !ok {
		issues = append(issues, issue)
	}
	return issues
}

// ValidEmail reports whether value matches the email pattern. The value is not
// trimmed first.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

func validateEmail(email string) (Issue, bool) {
	if trimSpace(email) == "" {
		return Issue{Field: FieldEmail, Kind: MissingField, Message: MessageEmailRequired}, false
	}
	if !ValidEmail(email) {
		return Issue{Field: FieldEmail, Kind: InvalidField, Message: MessageEmailInvalid}, false
	}
	return Issue{}, true
}

func validatePassword(password string) (Issue, bool) {
	if trimSpace(password) == "" {
		return Issue{Field: FieldPassword, Kind: MissingField, Message: MessagePasswordRequired}, false
	}
	if textLength(password) < MinPasswordLength {
		return Issue{Field: FieldPassword, Kind: InvalidField, Message: MessagePasswordTooShort}, false
	}
	return Issue{}, true
}

func trimSpace(value string) string {
	return strings.TrimFunc(value, isSpace)
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		0x00a0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}

// textLength counts UTF-16 code units, the unit browsers report for
// input values.
func textLength(value string) int {
	n := 0
	for _, r := range value {
		n += max(utf16.RuneLen(r), 1)
	}
	return n
}
