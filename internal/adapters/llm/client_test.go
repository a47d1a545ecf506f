package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"trip_concierge/internal/adapters/llm"
	"trip_concierge/internal/domain"
)

func chat(t *testing.T, cl *llm.Client) (string, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return cl.Complete(ctx, []domain.ChatMessage{
		{Role: "system", Content: "be helpful"},
		{Role: "user", Content: "flights to paris"},
	})
}

func TestComplete_ReturnsAssistantText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		var req struct {
			Model    string               `json:"model"`
			Messages []domain.ChatMessage `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "test-model" || len(req.Messages) != 2 {
			t.Errorf("unexpected request: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": "Bonjour!"}}},
		})
	}))
	defer ts.Close()

	cl, err := llm.New(ts.URL, "test-model", "test-key", 100)
	if err != nil {
		t.Fatal(err)
	}
	out, err := chat(t, cl)
	if err != nil {
		t.Fatal(err)
	}
	if out != "Bonjour!" {
		t.Fatalf("out = %q", out)
	}
}

func TestComplete_RetriesTransient(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": "ok"}}},
		})
	}))
	defer ts.Close()

	cl, _ := llm.New(ts.URL, "m", "k", 100)
	out, err := chat(t, cl)
	if err != nil {
		t.Fatal(err)
	}
	if out != "ok" || atomic.LoadInt32(&hits) != 2 {
		t.Fatalf("out=%q hits=%d", out, hits)
	}
}

func TestComplete_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	cl, _ := llm.New(ts.URL, "m", "bad-key", 100)
	if _, err := chat(t, cl); !errors.Is(err, llm.ErrUnauthorized) {
		t.Fatalf("err = %v", err)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer ts.Close()

	cl, _ := llm.New(ts.URL, "m", "k", 100)
	if _, err := chat(t, cl); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := llm.New("http://x", "m", "", 1); err == nil {
		t.Fatal("expected error for empty key")
	}
}
