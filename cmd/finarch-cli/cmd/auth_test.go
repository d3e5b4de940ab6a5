package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finarchitect/resetpass/internal/domain/auth_errors"
)

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		token, password, confirm, redirectURL = "", "", "", ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func newAPI(t *testing.T, status int, body string) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var payload map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &paths
}

func TestResetConfirmCommand(t *testing.T) {
	t.Run("prints the server message", func(t *testing.T) {
		srv, paths := newAPI(t, http.StatusOK, `{"success":true,"message":"Your password has been successfully reset."}`)

		out, err := run(t, "reset-confirm", "--base-url", srv.URL, "--token", "abc123", "--password", "P@ssw0rd", "--confirm", "P@ssw0rd")

		require.NoError(t, err)
		assert.Equal(t, "Your password has been successfully reset.\n", out)
		assert.Equal(t, []string{"/api/auth/password-reset-confirm/abc123/"}, *paths)
	})

	t.Run("mismatch never calls the API", func(t *testing.T) {
		srv, paths := newAPI(t, http.StatusOK, `{}`)

		_, err := run(t, "reset-confirm", "--base-url", srv.URL, "--token", "abc123", "--password", "a", "--confirm", "b")

		assert.ErrorIs(t, err, auth_errors.ErrPasswordMismatch)
		assert.Empty(t, *paths)
	})

	t.Run("api errors keep their status", func(t *testing.T) {
		srv, _ := newAPI(t, http.StatusBadRequest, `{"message":"Token has expired."}`)

		_, err := run(t, "reset-confirm", "--base-url", srv.URL, "--token", "abc123", "--password", "P@ssw0rd", "--confirm", "P@ssw0rd")

		require.Error(t, err)
		assert.Equal(t, "Token has expired. (HTTP 400)", describe(err))
	})
}

func TestResetRequestCommand(t *testing.T) {
	srv, paths := newAPI(t, http.StatusOK, `{"success":true,"message":"Reset link sent"}`)

	out, err := run(t, "reset-request", "--base-url", srv.URL, "--email", "jane@example.com", "--redirect-url", "https://app.example.com/reset-password")

	require.NoError(t, err)
	assert.Equal(t, "Reset link sent\n", out)
	assert.Equal(t, []string{"/api/auth/password-reset/"}, *paths)
}

func TestLoginCommand(t *testing.T) {
	srv, _ := newAPI(t, http.StatusOK, `{"success":true,"message":"Welcome","access_token":"acc","refresh_token":"ref"}`)

	out, err := run(t, "login", "--base-url", srv.URL, "--email", "jane@example.com", "--password", "P@ssw0rd")

	require.NoError(t, err)
	assert.Equal(t, "Welcome\naccess_token=acc\nrefresh_token=ref\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "finarch-cli v0.1.0\n", out)
}
