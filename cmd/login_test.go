// ABOUTME: Tests for the login command
// ABOUTME: Verifies password login, redirect consumption, and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func authHandler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "ada"})
	})
	return mux
}

func TestLoginCommand_Success(t *testing.T) {
	setupCmdTest(t, authHandler(t))

	oldUser, oldPass := loginUsername, loginPassword
	loginUsername, loginPassword = "ada", "secret"
	defer func() { loginUsername, loginPassword = oldUser, oldPass }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Logged in as ada") {
		t.Errorf("expected identity line, got %q", buf.String())
	}
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	setupCmdTest(t, authHandler(t))

	oldUser, oldPass := loginUsername, loginPassword
	loginUsername, loginPassword = "ada", "wrong"
	defer func() { loginUsername, loginPassword = oldUser, oldPass }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "Invalid credentials") {
		t.Errorf("expected server detail surfaced, got %q", buf.String())
	}
}

func TestLoginCommand_MissingFlags(t *testing.T) {
	setupCmdTest(t, http.NotFoundHandler())

	oldUser, oldPass := loginUsername, loginPassword
	loginUsername, loginPassword = "", ""
	defer func() { loginUsername, loginPassword = oldUser, oldPass }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "required") {
		t.Errorf("expected usage error, got %q", buf.String())
	}
}

func TestLoginCommand_FromRedirect(t *testing.T) {
	setupCmdTest(t, authHandler(t))

	oldRedirect := loginFromRedirect
	loginFromRedirect = "http://localhost:3000/?token=tok-1&provider=wechat&username=ada"
	defer func() { loginFromRedirect = oldRedirect }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "ada") {
		t.Errorf("expected validated identity, got %q", buf.String())
	}
}

func TestLoginCommand_FromRedirectWithoutToken(t *testing.T) {
	setupCmdTest(t, authHandler(t))

	oldRedirect := loginFromRedirect
	loginFromRedirect = "http://localhost:3000/?x=1"
	defer func() { loginFromRedirect = oldRedirect }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "no token") {
		t.Errorf("expected no-token error, got %q", buf.String())
	}
}

func TestLoginCommand_ProviderNotConfigured(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/providers/status", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"wechat": map[string]any{
				"configured":   false,
				"display_name": "WeChat",
				"required_env": []string{"WECHAT_APP_ID", "WECHAT_APP_SECRET"},
			},
		})
	})
	setupCmdTest(t, mux)

	oldProvider := loginProvider
	loginProvider = "wechat"
	defer func() { loginProvider = oldProvider }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "WECHAT_APP_ID") {
		t.Errorf("expected required env vars named, got %q", buf.String())
	}
}
