package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultEndpoint = "https://api.ocr.space/parse/image"

// Client abstracts the OCR provider for the scan handler.
type Client interface {
	ParseImage(ctx context.Context, fileName string, data []byte) (string, error)
}

// ConfigError signals missing OCR configuration.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// HTTPClient implements Client against the OCR.space API.
type HTTPClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewClient constructs an OCR.space client. The API key is required.
func NewClient(apiKey string) (*HTTPClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &ConfigError{Message: "OCR_SPACE_API_KEY is required"}
	}
	timeout := 25 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OCR_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &HTTPClient{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// NewClientFromEnv reads OCR_SPACE_API_KEY and builds a client.
func NewClientFromEnv() (*HTTPClient, error) {
	return NewClient(os.Getenv("OCR_SPACE_API_KEY"))
}

// WithEndpoint overrides the API endpoint. Used by tests.
func (c *HTTPClient) WithEndpoint(endpoint string) *HTTPClient {
	c.endpoint = endpoint
	return c
}

type parseResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool         `json:"IsErroredOnProcessing"`
	ErrorMessage          errorMessage `json:"ErrorMessage"`
}

// errorMessage tolerates both string and []string payloads, which the
// upstream API returns interchangeably.
type errorMessage []string

func (m *errorMessage) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			*m = errorMessage{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*m = errorMessage(many)
		return nil
	}
	return nil
}

func (m errorMessage) String() string {
	return strings.Join([]string(m), "; ")
}

// ParseImage sends one file through OCR and returns the recognized text,
// joining multi-page results with blank lines.
func (c *HTTPClient) ParseImage(ctx context.Context, fileName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty file data")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	fields := map[string]string{
		"language":          "kor",
		"isOverlayRequired": "false",
		"detectOrientation": "true",
		"scale":             "true",
		"OCREngine":         "1",
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("ocr request timeout: %w", err)
		}
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ocr error: status %d", resp.StatusCode)
	}

	var parsed parseResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("ocr response parse: %w", err)
	}
	if parsed.IsErroredOnProcessing {
		msg := parsed.ErrorMessage.String()
		if msg == "" {
			msg = "processing failed"
		}
		return "", fmt.Errorf("ocr error: %s", msg)
	}
	if len(parsed.ParsedResults) == 0 {
		return "", errors.New("ocr response missing results")
	}

	texts := make([]string, 0, len(parsed.ParsedResults))
	for _, r := range parsed.ParsedResults {
		texts = append(texts, r.ParsedText)
	}
	return strings.TrimSpace(strings.Join(texts, "\n\n")), nil
}

var _ Client = (*HTTPClient)(nil)
