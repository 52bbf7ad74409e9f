package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hermadata/console/internal/hermadata"
)

// authServer fakes the login and profile endpoints plus one protected
// resource that honors the issued token.
func authServer(t *testing.T, isSuperuser bool) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "good" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(hermadata.Credentials{AccessToken: "tok", TokenType: "bearer"})
		case "/users/me":
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(hermadata.Profile{Username: "anna", IsSuperuser: isSuperuser})
		case "/stats":
			// Always rejects: simulates an expired token discovered mid-session.
			w.WriteHeader(http.StatusUnauthorized)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newGate(t *testing.T, isSuperuser bool) (*Gate, *hermadata.Client) {
	t.Helper()
	server := authServer(t, isSuperuser)
	client, err := hermadata.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return NewGate(client), client
}

func TestGate_LoginTransitionsAndCapabilities(t *testing.T) {
	g, _ := newGate(t, false)

	if g.Authenticated() || g.Allows(AnyAuthenticated) {
		t.Fatal("fresh gate should be unauthenticated")
	}

	if err := g.Login(context.Background(), "anna", "good"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !g.Authenticated() || g.Username() != "anna" {
		t.Fatalf("gate after login: authenticated=%v username=%q", g.Authenticated(), g.Username())
	}
	if !g.Allows(AnyAuthenticated) {
		t.Fatal("standard operator denied AnyAuthenticated")
	}
	if g.Allows(SuperuserOnly) {
		t.Fatal("standard operator allowed SuperuserOnly")
	}
}

func TestGate_SuperuserCapability(t *testing.T) {
	g, _ := newGate(t, true)

	if err := g.Login(context.Background(), "anna", "good"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !g.Allows(SuperuserOnly) {
		t.Fatal("superuser denied SuperuserOnly")
	}
}

func TestGate_LoginFailureIsUniform(t *testing.T) {
	g, _ := newGate(t, false)

	// Bad credentials.
	err := g.Login(context.Background(), "anna", "bad")
	if !errors.Is(err, hermadata.ErrLoginFailed) {
		t.Fatalf("bad-credentials error = %v, want ErrLoginFailed", err)
	}

	// Network failure reads exactly the same.
	deadClient, cerr := hermadata.NewClient("127.0.0.1:1")
	if cerr != nil {
		t.Fatalf("NewClient returned error: %v", cerr)
	}
	dead := NewGate(deadClient)
	err = dead.Login(context.Background(), "anna", "good")
	if !errors.Is(err, hermadata.ErrLoginFailed) {
		t.Fatalf("network error = %v, want ErrLoginFailed", err)
	}
	if g.Authenticated() || dead.Authenticated() {
		t.Fatal("failed login left a gate authenticated")
	}
}

func TestGate_LogoutClearsSession(t *testing.T) {
	g, _ := newGate(t, false)
	if err := g.Login(context.Background(), "anna", "good"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	transitions := 0
	g.Watch(func() { transitions++ })

	g.Logout()
	if g.Authenticated() || g.Username() != "" || g.Allows(AnyAuthenticated) {
		t.Fatal("logout left session state behind")
	}
	if transitions != 1 {
		t.Fatalf("watcher calls = %d, want 1", transitions)
	}

	// Logout from the unauthenticated state is a quiet no-op.
	g.Logout()
	if transitions != 1 {
		t.Fatalf("watcher calls after redundant logout = %d, want 1", transitions)
	}
}

func TestGate_AuthFailureForcesLogout(t *testing.T) {
	g, client := newGate(t, false)
	if err := g.Login(context.Background(), "anna", "good"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	var sawTransition bool
	g.Watch(func() { sawTransition = true })

	// Any API call rejected with 401 must end the session via the hook.
	_, err := client.FetchStats(context.Background())
	if !hermadata.IsAuthFailure(err) {
		t.Fatalf("FetchStats error = %v, want auth failure", err)
	}
	if g.Authenticated() {
		t.Fatal("gate still authenticated after backend rejected the token")
	}
	if !sawTransition {
		t.Fatal("watchers not told about the forced logout")
	}
}
