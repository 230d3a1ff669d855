// ABOUTME: Tests for the auth controller state machine
// ABOUTME: Uses httptest to mock the backend auth endpoints

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wardrobeapp/wardrobe-cli/internal/client"
	"github.com/wardrobeapp/wardrobe-cli/internal/session"
)

func newController(t *testing.T, baseURL string) (*Controller, *session.Store) {
	t.Helper()
	store := session.New(t.TempDir())
	var ctrl *Controller
	c := client.New(baseURL, func() string {
		if ctrl == nil {
			return ""
		}
		return ctrl.Token()
	})
	ctrl = New(c, store)
	return ctrl, store
}

func TestBootWithStoredTokenIsPending(t *testing.T) {
	store := session.New(t.TempDir())
	store.Set(session.TokenKey, "stored-token")

	c := client.New("http://localhost:1", nil)
	ctrl := New(c, store)

	if ctrl.State() != StatePendingValidation {
		t.Errorf("expected pending-validation, got %d", ctrl.State())
	}
	if ctrl.Token() != "stored-token" {
		t.Errorf("expected stored token to be held, got %q", ctrl.Token())
	}
}

func TestBootWithoutTokenIsAnonymous(t *testing.T) {
	ctrl, _ := newController(t, "http://localhost:1")
	if ctrl.State() != StateAnonymous {
		t.Errorf("expected anonymous, got %d", ctrl.State())
	}
}

func TestValidateFailureTearsDownSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}))
	defer server.Close()

	ctrl, store := newController(t, server.URL)
	store.Set(session.TokenKey, "expired-token")
	ctrl.token = "expired-token"
	ctrl.state = StatePendingValidation

	if err := ctrl.Validate(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
	if ctrl.State() != StateAnonymous {
		t.Errorf("expected anonymous after failed validation, got %d", ctrl.State())
	}
	if ctrl.Token() != "" {
		t.Error("expected token to be cleared")
	}
	if _, ok := store.Get(session.TokenKey); ok {
		t.Error("expected storage to be cleared")
	}
}

func TestValidateSuccessPopulatesUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(client.User{ID: 1, Username: "ada"})
	}))
	defer server.Close()

	ctrl, store := newController(t, server.URL)
	store.Set(session.TokenKey, "good-token")
	ctrl.token = "good-token"
	ctrl.state = StatePendingValidation

	if err := ctrl.Validate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctrl.State() != StateAuthenticated {
		t.Errorf("expected authenticated, got %d", ctrl.State())
	}
	if ctrl.User() == nil || ctrl.User().Username != "ada" {
		t.Errorf("expected user ada, got %+v", ctrl.User())
	}
}

func TestLoginStoresTokenAndValidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			if r.Header.Get("Authorization") != "" {
				t.Error("login must not carry an auth header")
			}
			json.NewEncoder(w).Encode(map[string]string{"access_token": "fresh-token"})
		case "/auth/me":
			if r.Header.Get("Authorization") != "Bearer fresh-token" {
				t.Errorf("expected fresh token on /auth/me, got %q", r.Header.Get("Authorization"))
			}
			json.NewEncoder(w).Encode(client.User{ID: 2, Username: "grace"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	ctrl, store := newController(t, server.URL)
	if err := ctrl.Login(context.Background(), "grace", "hopper"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctrl.State() != StateAuthenticated {
		t.Errorf("expected authenticated, got %d", ctrl.State())
	}
	if token, _ := store.Get(session.TokenKey); token != "fresh-token" {
		t.Errorf("expected fresh-token persisted, got %q", token)
	}
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	}))
	defer server.Close()

	ctrl, store := newController(t, server.URL)
	err := ctrl.Login(context.Background(), "grace", "wrong")
	if err == nil {
		t.Fatal("expected login error")
	}
	if err.Error() != "Invalid credentials" {
		t.Errorf("expected server detail message, got %q", err.Error())
	}
	if ctrl.State() != StateAnonymous {
		t.Errorf("expected anonymous, got %d", ctrl.State())
	}
	if _, ok := store.Get(session.TokenKey); ok {
		t.Error("expected no token persisted after failed login")
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctrl, store := newController(t, "http://localhost:1")
	store.Set(session.TokenKey, "tok")
	ctrl.token = "tok"
	ctrl.state = StateAuthenticated
	ctrl.user = &client.User{Username: "ada"}

	msg := ctrl.Logout(true)
	if msg != LoggedOutMessage {
		t.Errorf("expected announce message, got %q", msg)
	}

	again := ctrl.Logout(false)
	if again != "" {
		t.Errorf("expected empty message, got %q", again)
	}
	if ctrl.State() != StateAnonymous || ctrl.Token() != "" || ctrl.User() != nil {
		t.Error("expected fully anonymous state after double logout")
	}
	if _, ok := store.Get(session.TokenKey); ok {
		t.Error("expected storage cleared")
	}
}

func TestConsumeRedirectStripsExactlyOAuthParams(t *testing.T) {
	ctrl, store := newController(t, "http://localhost:1")

	cleaned, captured := ctrl.ConsumeRedirect("http://localhost:8000/?token=T&provider=P&username=U&x=1")
	if !captured {
		t.Fatal("expected token capture")
	}
	if !strings.HasSuffix(cleaned, "?x=1") {
		t.Errorf("expected only x=1 to remain, got %q", cleaned)
	}
	if ctrl.Token() != "T" {
		t.Errorf("expected token T, got %q", ctrl.Token())
	}
	if stored, _ := store.Get(session.TokenKey); stored != "T" {
		t.Errorf("expected token T persisted, got %q", stored)
	}

	// Second boot over the cleaned URL must be a no-op.
	same, capturedAgain := ctrl.ConsumeRedirect(cleaned)
	if capturedAgain {
		t.Error("expected no second capture")
	}
	if same != cleaned {
		t.Errorf("expected URL unchanged, got %q", same)
	}
}

func TestConsumeRedirectWithoutTokenPassesThrough(t *testing.T) {
	ctrl, _ := newController(t, "http://localhost:1")

	raw := "http://localhost:8000/?provider=wechat&username=u"
	cleaned, captured := ctrl.ConsumeRedirect(raw)
	if captured {
		t.Error("expected no capture without token param")
	}
	if cleaned != raw {
		t.Errorf("expected URL unchanged, got %q", cleaned)
	}
}

func TestProviderGatingMakesNoNetworkCall(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	ctrl, _ := newController(t, server.URL)
	ctrl.providers = map[string]client.Provider{
		"wechat": {
			Configured:  false,
			DisplayName: "WeChat",
			RequiredEnv: []string{"WECHAT_APP_ID", "WECHAT_APP_SECRET"},
		},
	}

	_, err := ctrl.StartSocialLogin(context.Background(), "wechat", "http://localhost:8000/")
	if err == nil {
		t.Fatal("expected local refusal")
	}
	if calls != 0 {
		t.Errorf("expected zero network calls, got %d", calls)
	}
	for _, env := range []string{"WECHAT_APP_ID", "WECHAT_APP_SECRET"} {
		if !strings.Contains(err.Error(), env) {
			t.Errorf("expected message to name %s, got %q", env, err.Error())
		}
	}
}

func TestStartSocialLoginReturnsAuthorizationURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/qq/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("front_redirect") != "http://localhost:8000/" {
			t.Errorf("expected front_redirect param, got %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"provider":          "qq",
			"authorization_url": "https://graph.qq.com/oauth2.0/authorize?x=1",
		})
	}))
	defer server.Close()

	ctrl, _ := newController(t, server.URL)
	ctrl.providers = map[string]client.Provider{"qq": {Configured: true}}

	got, err := ctrl.StartSocialLogin(context.Background(), "qq", "http://localhost:8000/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://graph.qq.com/oauth2.0/authorize?x=1" {
		t.Errorf("unexpected authorization URL %q", got)
	}
}

func TestStartSocialLoginMissingURLIsHardFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"provider": "qq"})
	}))
	defer server.Close()

	ctrl, _ := newController(t, server.URL)
	if _, err := ctrl.StartSocialLogin(context.Background(), "qq", ""); err == nil {
		t.Error("expected error when authorization URL is missing")
	}
}

func TestLoadProviderStatusDegradesGracefully(t *testing.T) {
	ctrl, _ := newController(t, "http://localhost:1")
	ctrl.LoadProviderStatus(context.Background())

	providers := ctrl.Providers()
	if providers == nil {
		t.Fatal("expected empty map, not nil")
	}
	if len(providers) != 0 {
		t.Errorf("expected no providers, got %d", len(providers))
	}
}
