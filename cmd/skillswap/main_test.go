package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marga-Ghale/skill-swap/internal/session"
)

// fakeBackend answers the handful of endpoints the commands touch.
func fakeBackend(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var calls []string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "login")
		io.WriteString(w, `{"user":{"id":"u1","name":"Alex Johnson"},"token":"tok","refreshToken":"ref"}`)
	})
	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "members:"+r.Header.Get("Authorization"))
		io.WriteString(w, `[
			{"id":"2","name":"Sarah Chen","skillsOffered":["React"],"skillsWanted":["Python"],"rating":4.8,"availability":"Weekends"},
			{"id":"3","name":"Michael Rodriguez","skillsOffered":["Python"],"skillsWanted":["React"],"rating":4.6,"availability":"Evenings"}
		]`)
	})
	mux.HandleFunc("GET /api/profile", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"u1","name":"Alex Johnson","skillsOffered":[],"skillsWanted":[]}`)
	})
	mux.HandleFunc("GET /api/requests", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":"r1","fromUser":{"id":"2","name":"Sarah Chen"},"offeredSkill":"React","requestedSkill":"Go","status":"pending"}]`)
	})
	mux.HandleFunc("POST /api/requests/{id}/accept", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "accept:"+r.PathValue("id"))
		io.WriteString(w, `{"id":"r1","status":"accepted"}`)
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "logout")
		io.WriteString(w, `{"message":"Logged out successfully"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLoginMembersAcceptLogout(t *testing.T) {
	srv, calls := fakeBackend(t)
	path := filepath.Join(t.TempDir(), "session.yaml")
	base := []string{"--config", path, "--server", srv.URL}

	_, err := execute(t, append(base, "members")...)
	require.Error(t, err, "commands need a login")

	out, err := execute(t, append(base, "login", "--email", "alex@example.com", "--password", "password123")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, Alex Johnson.")

	stored, err := session.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", stored.AccessToken)
	assert.Equal(t, "u1", stored.UserID)

	out, err = execute(t, append(base, "members", "--availability", "evenings")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Michael Rodriguez")
	assert.NotContains(t, out, "Sarah Chen")
	assert.Contains(t, out, "page 1 of 1 (1 members)")

	out, err = execute(t, append(base, "accept", "r1")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Request Accepted")

	_, err = execute(t, append(base, "accept", "missing")...)
	assert.Error(t, err)

	out, err = execute(t, append(base, "logout")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	stored, err = session.Load(path)
	require.NoError(t, err)
	assert.False(t, stored.LoggedIn())

	assert.Equal(t, []string{"login", "members:Bearer tok", "accept:r1", "logout"}, *calls)
}
