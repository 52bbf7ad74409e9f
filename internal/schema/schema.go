// Package schema validates raw Hermadata API payloads before they enter
// the query cache. A payload that fails validation is a client/server
// contract mismatch, not a user mistake: callers surface it generically
// and never attribute it to user input.
package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Validator is implemented by decoded payload types that carry their own
// shape checks. Decode and Check run it automatically.
type Validator interface {
	Validate() error
}

// Issue is one field-level validation finding.
type Issue struct {
	Field string
	Msg   string
}

// ValidationError aggregates the issues found in one payload.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "payload validation failed"
	}
	parts := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		parts[i] = fmt.Sprintf("%s: %s", is.Field, is.Msg)
	}
	return "payload validation failed: " + strings.Join(parts, "; ")
}

// Errorf builds a single-issue ValidationError.
func Errorf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Issues: []Issue{{Field: field, Msg: fmt.Sprintf(format, args...)}}}
}

// Collect returns nil when no issues were gathered, a ValidationError
// otherwise. Validate implementations build an issue slice and end with
// it.
func Collect(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

// Decode unmarshals raw JSON into T and runs its Validate method when T
// implements Validator. The returned error is a ValidationError for both
// malformed JSON and failed checks.
func Decode[T any](raw []byte) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, Errorf("$", "malformed payload: %v", err)
	}
	if err := Check(v); err != nil {
		return v, err
	}
	return v, nil
}

// Result is the non-panicking counterpart of a decode: either a value or
// an error, never both.
type Result[T any] struct {
	OK    bool
	Value T
	Err   error
}

// SafeDecode is Decode without an error return to unwrap: callers branch
// on OK.
func SafeDecode[T any](raw []byte) Result[T] {
	v, err := Decode[T](raw)
	if err != nil {
		return Result[T]{Err: err}
	}
	return Result[T]{OK: true, Value: v}
}

// Check validates v when it implements Validator and passes everything
// else through.
func Check(v any) error {
	if val, ok := v.(Validator); ok {
		return val.Validate()
	}
	return nil
}

// chipCodeRe matches the dotted 15-digit microchip notation used across
// the Hermadata backend, e.g. "123.456.789.012.345".
var chipCodeRe = regexp.MustCompile(`^\d{3}(\.\d{3}){4}$`)

// ValidChipCode reports whether s is a well-formed microchip code.
func ValidChipCode(s string) bool {
	return chipCodeRe.MatchString(s)
}

// Require appends an issue when value is blank.
func Require(issues []Issue, field, value string) []Issue {
	if strings.TrimSpace(value) == "" {
		issues = append(issues, Issue{Field: field, Msg: "required"})
	}
	return issues
}

// RequireID appends an issue when id is not a positive identifier.
func RequireID(issues []Issue, field string, id int64) []Issue {
	if id <= 0 {
		issues = append(issues, Issue{Field: field, Msg: "must be a positive id"})
	}
	return issues
}
