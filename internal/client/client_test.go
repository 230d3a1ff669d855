// ABOUTME: Tests for the wardrobe API client
// ABOUTME: Uses httptest to verify headers, error mapping, and body handling

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoginSkipsAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("expected path /auth/login, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login must not carry an Authorization header")
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "ada" || body["password"] != "pw" {
			t.Errorf("unexpected credentials %v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
	}))
	defer server.Close()

	c := New(server.URL, func() string { return "held-token" })
	token, err := c.Login(context.Background(), "ada", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "tok" {
		t.Errorf("expected tok, got %q", token)
	}
}

func TestAuthenticatedCallAttachesBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer held-token" {
			t.Errorf("expected bearer header, got %q", got)
		}
		json.NewEncoder(w).Encode([]Item{})
	}))
	defer server.Close()

	c := New(server.URL, func() string { return "held-token" })
	if _, err := c.ListItems(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEmptyTokenOmitsBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("expected no Authorization header without a token")
		}
		json.NewEncoder(w).Encode([]Item{})
	}))
	defer server.Close()

	c := New(server.URL, func() string { return "" })
	if _, err := c.ListItems(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNoContentResponseSkipsParsing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/items/7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL, func() string { return "tok" })
	if err := c.DeleteItem(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestErrorDetailExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	_, err := c.Login(context.Background(), "x", "y")
	if err == nil {
		t.Fatal("expected error")
	}
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %T", err)
	}
	if reqErr.Message != "Invalid credentials" {
		t.Errorf("expected detail message, got %q", reqErr.Message)
	}
	if reqErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", reqErr.StatusCode)
	}
}

func TestErrorWithoutDetailSynthesizesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	c := New(server.URL, nil)
	_, err := c.ListItems(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "request failed (status 502)" {
		t.Errorf("expected synthesized message, got %q", err.Error())
	}
}

func TestMalformedSuccessBodyDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{{{ definitely not json"))
	}))
	defer server.Close()

	c := New(server.URL, nil)
	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("malformed body must not fail the caller: %v", err)
	}
	if user.Username != "" {
		t.Errorf("expected empty user, got %+v", user)
	}
}

func TestConnectionErrorIsRequestError(t *testing.T) {
	c := New("http://127.0.0.1:1", nil)
	_, err := c.ListItems(context.Background())
	if err == nil {
		t.Fatal("expected connection error")
	}
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %T", err)
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode([]Item{})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListItems(ctx)
	if err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}

func TestRecommendEncodesOccasion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("occasion"); got != "date" {
			t.Errorf("expected occasion=date, got %q", got)
		}
		json.NewEncoder(w).Encode(Recommendation{Occasion: "date"})
	}))
	defer server.Close()

	c := New(server.URL, func() string { return "tok" })
	rec, err := c.Recommend(context.Background(), "date")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Occasion != "date" {
		t.Errorf("expected date, got %q", rec.Occasion)
	}
}

func TestProviderStatusDecodesMap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("provider status must not require auth")
		}
		json.NewEncoder(w).Encode(map[string]Provider{
			"wechat": {Configured: false, DisplayName: "WeChat", RequiredEnv: []string{"WECHAT_APP_ID"}},
			"qq":     {Configured: true, DisplayName: "QQ"},
		})
	}))
	defer server.Close()

	c := New(server.URL, func() string { return "tok" })
	status, err := c.ProviderStatus(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status["qq"].Configured || status["wechat"].Configured {
		t.Errorf("unexpected provider status %+v", status)
	}
}
