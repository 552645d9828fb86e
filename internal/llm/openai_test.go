package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"unicode/utf8"

	"prompt-insights/pkg/config"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

func TestOpenAIClientComplete(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"  SELECT 1;  "}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient(&config.LLMConfig{
		APIKey:  "sk-test",
		BaseURL: srv.URL + "/",
		Model:   "gpt-4o-mini",
		Timeout: time.Second,
	}, zap.NewNop())
	defer c.Close()

	out, err := c.Complete(context.Background(), "count trades", Options{Temperature: 0, MaxTokens: 500})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if out != "SELECT 1;" {
		t.Errorf("Complete() = %q", out)
	}
	if got.Model != "gpt-4o-mini" || got.MaxTokens != 500 {
		t.Errorf("request = %+v", got)
	}
	if got.Temperature <= 0 || got.Temperature > 1e-6 {
		t.Errorf("temperature = %v, want effectively zero", got.Temperature)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != openai.ChatMessageRoleUser || got.Messages[0].Content != "count trades" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestOpenAIClientErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantIs     error
	}{
		{name: "api error", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key","type":"invalid_request_error"}}`, wantStatus: http.StatusUnauthorized},
		{name: "plain error body", status: http.StatusBadGateway, body: `upstream down`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantIs: ErrEmptyCompletion},
		{name: "bad json", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewOpenAIClient(&config.LLMConfig{BaseURL: srv.URL, Model: "m"}, zap.NewNop())
			_, err := c.Complete(context.Background(), "q", Options{})
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("error = %v, want %v", err, tt.wantIs)
			}
			if tt.wantStatus != 0 {
				var apiErr *openai.APIError
				if !errors.As(err, &apiErr) || apiErr.HTTPStatusCode != tt.wantStatus {
					t.Errorf("error = %v, want API error with status %d", err, tt.wantStatus)
				}
			}
		})
	}
}

func TestRequestTemperature(t *testing.T) {
	if got := requestTemperature(0); got <= 0 || got > 1e-6 {
		t.Errorf("requestTemperature(0) = %v", got)
	}
	if got := requestTemperature(0.3); got != float32(0.3) {
		t.Errorf("requestTemperature(0.3) = %v", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "short", in: "quota", n: 10, want: "quota"},
		{name: "ascii", in: "rate limited", n: 4, want: "rate..."},
		{name: "inside multibyte", in: "Сделки", n: 3, want: "С..."},
		{name: "on boundary", in: "Сделки", n: 4, want: "Сд..."},
		{name: "first rune split", in: "€uro", n: 2, want: "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.in, tt.n)
			}
		})
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: "nope"}}
	if _, err := New(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
