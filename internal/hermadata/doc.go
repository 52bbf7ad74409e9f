// Package hermadata provides the HTTP client for the Hermadata shelter
// management API.
//
// # Overview
//
// The package wraps every backend endpoint the console uses in a typed
// method: animal intake/exit and search, the adopter and veterinarian
// registries, document upload and attachment, lookup lists, operator
// accounts, dashboard statistics and the CSV export. It also defines the
// cache key constructors so that views and mutation patches address the
// same entries.
//
// # Authentication
//
// Login exchanges credentials for a bearer token; the client attaches the
// token set via SetToken to every request. The client never decides when
// a session starts or ends — that is the authorization gate's job. It
// does centralize auth-failure detection: every 401/403 response fires
// the single hook registered with SetAuthFailureHook, so token expiry is
// discovered reactively in exactly one place.
//
// # Error taxonomy
//
//   - Transport failures surface as wrapped plain errors ("execute
//     request: ...").
//   - Structured rejections surface as *APIError with a machine-readable
//     code and optional content; ChipConflict extracts the conflicting
//     animal id from a duplicate-chip-code rejection so the UI can link
//     to the existing record.
//   - Payloads that fail shape validation surface as
//     *schema.ValidationError — a contract mismatch, shown generically,
//     never blamed on user input.
//
// # Pagination
//
// Every list endpoint shares one contract: the request carries
// from_index/to_index plus optional sort_field/sort_order, the response
// is a Page — total match count plus the requested window. Page
// implements the cache's Appender so confirmed writes can extend a cached
// window in place.
//
// # Document upload
//
// Attaching a file is two independent mutations: UploadFile stores the
// bytes and returns an opaque id, AttachAnimalDocument creates the
// association. A failed second phase orphans the upload; the console does
// not retry (accepted limitation, the backend reaps orphans).
package hermadata
