package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SuperShot3/order-form/internal/config"
	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/parse"
	"github.com/SuperShot3/order-form/internal/port"
)

const (
	apiURL = "https://api.openai.com/v1/chat/completions"

	defaultModel = "gpt-4o-mini"
)

// Extractor implements port.FieldExtractor using the OpenAI Chat Completions
// API.
type Extractor struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewExtractor creates an OpenAI-backed field extractor from the parser config.
func NewExtractor(cfg *config.ParserConfig) *Extractor {
	return newExtractor(cfg, apiURL)
}

// NewExtractorWithEndpoint creates an extractor pointing at a custom API
// endpoint (for testing).
func NewExtractorWithEndpoint(cfg *config.ParserConfig, endpoint string) *Extractor {
	return newExtractor(cfg, endpoint)
}

func newExtractor(cfg *config.ParserConfig, endpoint string) *Extractor {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Extractor{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Available reports whether an API key is configured.
func (e *Extractor) Available() bool {
	return e.apiKey != ""
}

// Extract sends the raw order text to the model and decodes the reply
// envelope: an "extracted" object of field values and the model's own
// "missing_fields" list. Unknown keys are dropped from both.
func (e *Extractor) Extract(ctx context.Context, rawText string) (*port.ExtractOutput, error) {
	if !e.Available() {
		return nil, domain.ErrCredentialMissing
	}

	content, err := e.complete(ctx, parse.BuildExtractionPrompt(), rawText)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Extracted     map[string]json.RawMessage `json:"extracted"`
		MissingFields []string                   `json:"missing_fields"`
	}
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return nil, fmt.Errorf("parsing model JSON output: %w (raw: %s)", err, truncate(content, 500))
	}
	if envelope.Extracted == nil {
		return nil, fmt.Errorf("model reply has no extracted object (raw: %s)", truncate(content, 500))
	}

	fields := domain.Fields{}
	for key, val := range envelope.Extracted {
		if !domain.KnownField(key) {
			continue
		}
		f := domain.Field(key)
		var s string
		if err := json.Unmarshal(val, &s); err == nil {
			if numericField(f) {
				if n, ok := parseNumber(s); ok {
					fields.SetNumber(f, n)
					continue
				}
			}
			fields.SetString(f, s)
			continue
		}
		var n float64
		if err := json.Unmarshal(val, &n); err == nil {
			fields.SetNumber(f, n)
		}
	}

	missing := make([]domain.Field, 0, len(envelope.MissingFields))
	for _, key := range envelope.MissingFields {
		if domain.KnownField(key) {
			missing = append(missing, domain.Field(key))
		}
	}

	return &port.ExtractOutput{
		Extracted:     fields,
		MissingFields: missing,
	}, nil
}

// numericField reports whether the wire contract types this key as a number.
func numericField(f domain.Field) bool {
	return f == domain.FieldItemsTotal || f == domain.FieldDeliveryFee
}

// parseNumber handles a numeric value the model quoted as a string.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CheckConnection performs a one-token round trip against the configured
// model and reports the outcome.
func (e *Extractor) CheckConnection(ctx context.Context) domain.ConnectionCheck {
	if !e.Available() {
		return domain.ConnectionCheck{OK: false, Error: "API key not configured"}
	}
	if _, err := e.complete(ctx, "Reply with the JSON object {\"ok\":true}.", "ping"); err != nil {
		return domain.ConnectionCheck{OK: false, Model: e.model, Error: err.Error()}
	}
	return domain.ConnectionCheck{OK: true, Model: e.model}
}

// complete performs one chat-completions request and returns the first
// choice's message content.
func (e *Extractor) complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	reqBody := map[string]interface{}{
		"model": e.model,
		"messages": []map[string]interface{}{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userText},
		},
		"response_format": map[string]interface{}{
			"type": "json_object",
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	var api apiResponse
	if err := json.Unmarshal(respBody, &api); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(api.Choices) == 0 {
		return "", fmt.Errorf("empty response from API: no choices")
	}
	if api.Choices[0].FinishReason == "length" {
		return "", fmt.Errorf("output truncated (finish_reason: length)")
	}
	return api.Choices[0].Message.Content, nil
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
