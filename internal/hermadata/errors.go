package hermadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrLoginFailed is the uniform login failure: bad credentials and
// transport problems read the same to the caller, so the login form never
// leaks which one happened.
var ErrLoginFailed = errors.New("login failed")

// Error codes the backend attaches to structured rejections. Unknown
// codes are treated as generic failures by the UI.
const (
	// CodeDuplicateChip is returned when an animal write collides with an
	// existing chip code; Content carries the conflicting animal id.
	CodeDuplicateChip = "ECC"
)

// APIError is a structured non-2xx response: a machine-readable code plus
// optional content the UI maps to a specific message or action (e.g. a
// link to the conflicting record).
type APIError struct {
	StatusCode int
	Code       string          `json:"code"`
	Message    string          `json:"message"`
	Content    json.RawMessage `json:"content"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %s (status %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api returned status %d", e.StatusCode)
}

// AuthFailure reports whether the response was a 401/403-class rejection.
func (e *APIError) AuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Conflict reports whether the response was a domain conflict.
func (e *APIError) Conflict() bool {
	return e.StatusCode == http.StatusConflict
}

// chipConflictContent is the Content payload of a CodeDuplicateChip error.
type chipConflictContent struct {
	AnimalID int64 `json:"animal_id"`
}

// ChipConflict extracts the conflicting animal id from a duplicate-chip
// rejection. The second return is false for any other error shape.
func ChipConflict(err error) (int64, bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != CodeDuplicateChip {
		return 0, false
	}
	var content chipConflictContent
	if jsonErr := json.Unmarshal(apiErr.Content, &content); jsonErr != nil || content.AnimalID <= 0 {
		return 0, false
	}
	return content.AnimalID, true
}

// IsAuthFailure reports whether err (anywhere in its chain) is a
// 401/403-class API error.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.AuthFailure()
}
