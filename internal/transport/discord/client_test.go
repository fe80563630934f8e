package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestRequestAuthForwardsBodyVerbatim(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/request" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &gotBody); err != nil {
			t.Errorf("decode forwarded body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-1","expires_in":300}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, "")
	payload, err := client.RequestAuth(context.Background(), "user-1", "Alice")
	if err != nil {
		t.Fatalf("RequestAuth returned error: %v", err)
	}
	if string(payload) != `{"token":"tok-1","expires_in":300}` {
		t.Fatalf("expected the response verbatim, got %s", payload)
	}
	if gotBody["userId"] != "user-1" || gotBody["userName"] != "Alice" {
		t.Fatalf("unexpected forwarded body: %v", gotBody)
	}
}

func TestCheckAuthDecodesVerifiedFlag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/auth/check/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"verified":true,"userId":"user-1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, "")
	result, err := client.CheckAuth(context.Background(), "tok/with slash")
	if err != nil {
		t.Fatalf("CheckAuth returned error: %v", err)
	}
	if !result.Verified {
		t.Fatalf("expected verified true")
	}
	if string(result.Payload) != `{"verified":true,"userId":"user-1"}` {
		t.Fatalf("expected the raw payload kept, got %s", result.Payload)
	}
}

func TestMembersDecodesRoster(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/members" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"members":[{"id":"user-1","name":"Alice","avatar":"http://cdn/a.png"},{"id":"user-2","name":"Bob","avatar":null}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, "")
	members, err := client.Members(context.Background())
	if err != nil {
		t.Fatalf("Members returned error: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if members[0].ID != "user-1" || members[0].Avatar == nil {
		t.Fatalf("unexpected first member: %+v", members[0])
	}
	if members[1].Avatar != nil {
		t.Fatalf("expected nil avatar for the second member")
	}
}

func TestNon2xxIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, "")
	if _, err := client.Members(context.Background()); err == nil {
		t.Fatalf("expected an error for a 502 response")
	}
}

func TestServiceTokenAttachedWhenSecretConfigured(t *testing.T) {
	secret := "shared-secret"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			t.Errorf("expected a bearer token, got %q", header)
			w.Write([]byte(`{"members":[]}`))
			return
		}
		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			t.Errorf("token did not verify: %v", err)
		}
		w.Write([]byte(`{"members":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, secret)
	if _, err := client.Members(context.Background()); err != nil {
		t.Fatalf("Members returned error: %v", err)
	}
}

func TestNoTokenWithoutSecret(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("expected no authorization header")
		}
		w.Write([]byte(`{"members":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, "")
	if _, err := client.Members(context.Background()); err != nil {
		t.Fatalf("Members returned error: %v", err)
	}
}
