package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GenerationConfig mirrors the per-request sampling knobs of the
// generateContent API.
type GenerationConfig struct {
	Temperature     float64
	TopK            int
	TopP            float64
	MaxOutputTokens int
}

// Request carries one generateContent call.
type Request struct {
	Model         string
	Prompt        string
	Config        GenerationConfig
	DisableSafety bool
}

// Client abstracts the Gemini API for the analysis services.
type Client interface {
	GenerateContent(ctx context.Context, req Request) (string, error)
}

// ConfigError signals that the client cannot be used because required
// configuration is missing.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// TimeoutError signals that the upstream call exceeded its deadline.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string { return fmt.Sprintf("gemini request timeout: %v", e.Err) }

func (e *TimeoutError) Unwrap() error { return e.Err }

// UpstreamError signals a non-2xx or otherwise unusable upstream reply.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gemini error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gemini error: %s", e.Message)
}

// HTTPClient implements Client against the Gemini REST API.
type HTTPClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Gemini client. The API key is required.
func NewClient(apiKey string) (*HTTPClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &ConfigError{Message: "GEMINI_API_KEY is required"}
	}
	timeout := 60 * time.Second
	if raw := strings.TrimSpace(os.Getenv("GEMINI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &HTTPClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// NewClientFromEnv reads GEMINI_API_KEY and builds a client.
func NewClientFromEnv() (*HTTPClient, error) {
	return NewClient(os.Getenv("GEMINI_API_KEY"))
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *HTTPClient) WithBaseURL(baseURL string) *HTTPClient {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
	SafetySettings   []safetySetting   `json:"safetySettings,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

var safetyOff = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
}

// GenerateContent sends one prompt and returns the first candidate text.
func (c *HTTPClient) GenerateContent(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Model) == "" {
		return "", &ConfigError{Message: "model is required"}
	}

	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: &generationConfig{
			Temperature:     req.Config.Temperature,
			TopK:            req.Config.TopK,
			TopP:            req.Config.TopP,
			MaxOutputTokens: req.Config.MaxOutputTokens,
		},
	}
	if req.DisableSafety {
		body.SafetySettings = safetyOff
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, req.Model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", &TimeoutError{Err: err}
		}
		return "", &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Message: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		var parsed generateResponse
		if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != nil {
			msg = parsed.Error.Message
		}
		if len(msg) > 500 {
			msg = msg[:500]
		}
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("response parse: %v", err)}
	}
	if parsed.Error != nil {
		return "", &UpstreamError{StatusCode: parsed.Error.Code, Message: parsed.Error.Message}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: "response missing candidates"}
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: "response empty content"}
	}
	return text, nil
}

var _ Client = (*HTTPClient)(nil)
