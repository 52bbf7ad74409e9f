// Package ui provides the Bubble Tea terminal console for Hermadata.
//
// The UI never talks to the backend directly: every read goes through
// the query cache (stale data renders immediately while a background
// revalidation runs) and every write goes through a cache mutation
// whose patches land before the next frame. Views subscribe to the
// cache keys they render so the entries stay resident while the view
// is open, and a one-second tick re-reads the cache to pick up data
// that arrived in the background.
//
// Session state comes from the authorization gate. A forced logout
// (expired token discovered by any request) is observed on the next
// tick and snaps the console back to the login view.
package ui
