// Package app is the composition root of the console: it loads
// configuration and preferences, builds the API client, the query
// cache, and the authorization gate, starts the background stats
// refresher, and hands everything to the UI.
//
// Construction order matters only in one place: the gate must be built
// after the client so it can claim the auth-failure hook before any
// request goes out.
package app
