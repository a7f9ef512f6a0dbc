package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("  ")
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestGenerateContent(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/models/gemini-2.0-flash-exp:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key, query = %q", r.URL.RawQuery)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "{\"ok\": true}"}]}}]}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.WithBaseURL(server.URL)

	text, err := client.GenerateContent(context.Background(), Request{
		Model:  "gemini-2.0-flash-exp",
		Prompt: "분석해줘",
		Config: GenerationConfig{
			Temperature:     0.4,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 8192,
		},
		DisableSafety: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != `{"ok": true}` {
		t.Fatalf("text = %q", text)
	}

	genCfg, ok := captured["generationConfig"].(map[string]any)
	if !ok {
		t.Fatalf("missing generationConfig in %v", captured)
	}
	if genCfg["temperature"] != 0.4 {
		t.Fatalf("temperature = %v", genCfg["temperature"])
	}
	if genCfg["maxOutputTokens"] != float64(8192) {
		t.Fatalf("maxOutputTokens = %v", genCfg["maxOutputTokens"])
	}
	safety, ok := captured["safetySettings"].([]any)
	if !ok || len(safety) != 4 {
		t.Fatalf("safetySettings = %v", captured["safetySettings"])
	}
}

func TestGenerateContentOmitsSafetyByDefault(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "ok"}]}}]}`))
	}))
	defer server.Close()

	client, _ := NewClient("test-key")
	client.WithBaseURL(server.URL)

	if _, err := client.GenerateContent(context.Background(), Request{Model: "gemini-1.5-flash", Prompt: "p"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, present := captured["safetySettings"]; present {
		t.Fatal("safetySettings should be omitted when safety stays on")
	}
}

func TestGenerateContentRequiresModel(t *testing.T) {
	client, _ := NewClient("test-key")
	_, err := client.GenerateContent(context.Background(), Request{Prompt: "p"})
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestGenerateContentUpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	client, _ := NewClient("test-key")
	client.WithBaseURL(server.URL)

	_, err := client.GenerateContent(context.Background(), Request{Model: "gemini-1.5-flash", Prompt: "p"})
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d", upstream.StatusCode)
	}
	if upstream.Message != "quota exceeded" {
		t.Fatalf("message = %q", upstream.Message)
	}
}

func TestGenerateContentMissingCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client, _ := NewClient("test-key")
	client.WithBaseURL(server.URL)

	_, err := client.GenerateContent(context.Background(), Request{Model: "gemini-1.5-flash", Prompt: "p"})
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}
