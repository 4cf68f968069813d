package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testService(url, key string) *OpenAIService {
	return &OpenAIService{
		apiKey: key,
		model:  "gpt-test",
		apiURL: url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestCompleteSuccess(t *testing.T) {
	var gotAuth string
	var gotBody struct {
		Model    string        `json:"model"`
		Messages []ChatMessage `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi there"}}]}`))
	}))
	defer srv.Close()

	s := testService(srv.URL, "sk-test")
	reply, err := s.Complete(context.Background(), []ChatMessage{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "hi there" {
		t.Fatalf("expected reply 'hi there', got %q", reply)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("expected bearer credential, got %q", gotAuth)
	}
	if gotBody.Model != "gpt-test" {
		t.Fatalf("expected model gpt-test, got %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != RoleSystem {
		t.Fatalf("expected sequence sent as-is, got %+v", gotBody.Messages)
	}
}

func TestCompleteMissingKey(t *testing.T) {
	s := testService("http://unused", "")
	if _, err := s.Complete(context.Background(), []ChatMessage{{Role: RoleUser, Content: "x"}}); err != ErrAPIKeyMissing {
		t.Fatalf("expected ErrAPIKeyMissing, got %v", err)
	}
}

func TestCompleteUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := testService(srv.URL, "sk-test")
	_, err := s.Complete(context.Background(), []ChatMessage{{Role: RoleUser, Content: "x"}})
	if err == nil {
		t.Fatalf("expected error on non-2xx status")
	}
	if !strings.Contains(err.Error(), "status 429") {
		t.Fatalf("expected status in error text, got %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected upstream body forwarded, got %v", err)
	}
}

func TestCompleteMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	s := testService(srv.URL, "sk-test")
	_, err := s.Complete(context.Background(), []ChatMessage{{Role: RoleUser, Content: "x"}})
	if err == nil || !strings.Contains(err.Error(), "malformed response") {
		t.Fatalf("expected malformed response error, got %v", err)
	}
}
