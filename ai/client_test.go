package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCompleteSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req["model"] != "test-model" {
			t.Errorf("model = %v, want test-model", req["model"])
		}

		w.Write([]byte(`{"choices":[{"message":{"content":"{\"manufacturer\":\"Copeland\"}"}}]}`))
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL, APIKey: "test-key", Model: "test-model"})

	reply, err := client.Complete(context.Background(), "extract this row")
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if !strings.Contains(reply, "Copeland") {
		t.Errorf("reply = %q", reply)
	}
}

func TestCompleteHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL})
	if _, err := client.Complete(context.Background(), "x"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestCompleteAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error":{"message":"invalid model"}}`))
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL})
	if _, err := client.Complete(context.Background(), "x"); err == nil {
		t.Fatal("expected error from error payload")
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL})
	if _, err := client.Complete(context.Background(), "x"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestCompleteTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"choices":[{"message":{"content":"late"}}]}`))
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL, Timeout: 20 * time.Millisecond})
	if _, err := client.Complete(context.Background(), "x"); err == nil {
		t.Fatal("expected timeout error")
	}
}
