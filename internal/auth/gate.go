// Package auth implements the console's authorization gate: a two-state
// session model (unauthenticated, authenticated as standard or superuser)
// that owns the bearer token and answers capability checks for the UI.
//
// The gate registers itself as the HTTP client's auth-failure hook, so a
// 401/403 anywhere forces a single, centralized transition back to the
// login view. There is no client-side token expiry or refresh: expiry is
// only ever discovered reactively through that hook.
package auth

import (
	"context"
	"sync"

	"github.com/hermadata/console/internal/hermadata"
)

// Role is the operator's privilege level.
type Role int

const (
	RoleStandard Role = iota
	RoleSuperuser
)

// Requirement is what a view demands before it renders.
type Requirement int

const (
	// AnyAuthenticated admits every logged-in operator.
	AnyAuthenticated Requirement = iota
	// SuperuserOnly admits only elevated operators (user administration,
	// document-kind configuration).
	SuperuserOnly
)

// Gate tracks the session state. The zero state is unauthenticated; the
// only way in is Login, the ways out are Logout and an auth failure
// reported by the HTTP client.
type Gate struct {
	client *hermadata.Client

	mu            sync.RWMutex
	authenticated bool
	role          Role
	username      string
	watchers      []func()
}

// NewGate wires a gate to the client and takes over its auth-failure
// hook.
func NewGate(client *hermadata.Client) *Gate {
	g := &Gate{client: client}
	client.SetAuthFailureHook(g.expire)
	return g
}

// Login authenticates and, on success, transitions to Authenticated with
// the role from the operator's profile. Invalid credentials and transport
// errors are reported identically as hermadata.ErrLoginFailed so the
// login form cannot leak which one happened.
func (g *Gate) Login(ctx context.Context, username, password string) error {
	creds, err := g.client.Login(ctx, username, password)
	if err != nil {
		return hermadata.ErrLoginFailed
	}
	g.client.SetToken(creds.AccessToken)

	profile, err := g.client.FetchProfile(ctx)
	if err != nil {
		g.client.ClearToken()
		return hermadata.ErrLoginFailed
	}

	g.mu.Lock()
	g.authenticated = true
	g.username = profile.Username
	g.role = RoleStandard
	if profile.IsSuperuser {
		g.role = RoleSuperuser
	}
	g.mu.Unlock()

	g.notify()
	return nil
}

// Logout clears the session from any state: token gone, role gone,
// watchers told to navigate back to the login view.
func (g *Gate) Logout() {
	g.client.ClearToken()

	g.mu.Lock()
	wasAuthenticated := g.authenticated
	g.authenticated = false
	g.username = ""
	g.role = RoleStandard
	g.mu.Unlock()

	if wasAuthenticated {
		g.notify()
	}
}

// expire is the auth-failure hook: the backend rejected our token, so the
// session is over regardless of what the UI was doing.
func (g *Gate) expire() {
	g.Logout()
}

// Allows is the pure capability predicate views consult before
// rendering.
func (g *Gate) Allows(req Requirement) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.authenticated {
		return false
	}
	if req == SuperuserOnly {
		return g.role == RoleSuperuser
	}
	return true
}

// Authenticated reports whether any operator is logged in.
func (g *Gate) Authenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authenticated
}

// Username returns the logged-in operator's name, or "".
func (g *Gate) Username() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.username
}

// Role returns the current privilege level; meaningful only while
// authenticated.
func (g *Gate) Role() Role {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.role
}

// Watch registers a callback for session transitions (login, logout,
// forced expiry). Callbacks run synchronously in registration order.
func (g *Gate) Watch(fn func()) {
	g.mu.Lock()
	g.watchers = append(g.watchers, fn)
	g.mu.Unlock()
}

func (g *Gate) notify() {
	g.mu.RLock()
	watchers := make([]func(), len(g.watchers))
	copy(watchers, g.watchers)
	g.mu.RUnlock()
	for _, fn := range watchers {
		fn()
	}
}
