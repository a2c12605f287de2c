package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SuperShot3/order-form/internal/config"
	"github.com/SuperShot3/order-form/internal/domain"
)

func completionResponse(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message":       map[string]string{"content": content},
				"finish_reason": "stop",
			},
		},
	})
	require.NoError(t, err)
	return body
}

func testExtractor(endpoint string) *Extractor {
	return NewExtractorWithEndpoint(&config.ParserConfig{APIKey: "test-key"}, endpoint)
}

func TestExtractorDecodesModelOutput(t *testing.T) {
	var gotAuth string
	var gotReq map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write(completionResponse(t, `{
			"extracted": {
				"bouquet_name": "Pink Cloud",
				"items_total": 1500,
				"made_up_key": "ignored"
			},
			"missing_fields": ["delivery_date", "phone", "made_up_key"]
		}`))
	}))
	defer srv.Close()

	out, err := testExtractor(srv.URL).Extract(context.Background(), "some order text")
	require.NoError(t, err)

	name, _ := out.Extracted.String(domain.FieldBouquetName)
	assert.Equal(t, "Pink Cloud", name)
	total, ok := out.Extracted.Number(domain.FieldItemsTotal)
	require.True(t, ok)
	assert.Equal(t, 1500.0, total)
	assert.False(t, out.Extracted.Has(domain.Field("made_up_key")))

	// The model's own missing list comes through, minus unknown keys.
	assert.Equal(t, []domain.Field{domain.FieldDeliveryDate, domain.FieldPhone}, out.MissingFields)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, defaultModel, gotReq["model"])
	rf, _ := gotReq["response_format"].(map[string]interface{})
	assert.Equal(t, "json_object", rf["type"])
}

func TestExtractorCoercesQuotedNumbers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(completionResponse(t, `{
			"extracted": {
				"items_total": "1,500",
				"delivery_fee": "0",
				"receiver_name": "42"
			},
			"missing_fields": []
		}`))
	}))
	defer srv.Close()

	out, err := testExtractor(srv.URL).Extract(context.Background(), "text")
	require.NoError(t, err)

	total, ok := out.Extracted.Number(domain.FieldItemsTotal)
	require.True(t, ok)
	assert.Equal(t, 1500.0, total)
	fee, ok := out.Extracted.Number(domain.FieldDeliveryFee)
	require.True(t, ok)
	assert.Equal(t, 0.0, fee)

	// Only the money fields are numeric on the wire.
	name, _ := out.Extracted.String(domain.FieldReceiverName)
	assert.Equal(t, "42", name)

	assert.Empty(t, out.MissingFields)
	assert.NotNil(t, out.MissingFields)
}

func TestExtractorRejectsFlatReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(completionResponse(t, `{"bouquet_name": "Pink Cloud"}`))
	}))
	defer srv.Close()

	_, err := testExtractor(srv.URL).Extract(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no extracted object")
}

func TestExtractorAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testExtractor(srv.URL).Extract(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestExtractorMalformedModelJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(completionResponse(t, "not json at all"))
	}))
	defer srv.Close()

	_, err := testExtractor(srv.URL).Extract(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing model JSON output")
}

func TestExtractorTruncatedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]interface{}{
			"choices": []map[string]interface{}{
				{
					"message":       map[string]string{"content": `{"bouquet`},
					"finish_reason": "length",
				},
			},
		})
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	_, err := testExtractor(srv.URL).Extract(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finish_reason: length")
}

func TestExtractorWithoutKey(t *testing.T) {
	e := NewExtractorWithEndpoint(&config.ParserConfig{}, "http://unused")
	assert.False(t, e.Available())

	_, err := e.Extract(context.Background(), "text")
	assert.ErrorIs(t, err, domain.ErrCredentialMissing)

	check := e.CheckConnection(context.Background())
	assert.False(t, check.OK)
}

func TestExtractorCheckConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(completionResponse(t, `{"ok":true}`))
	}))
	defer srv.Close()

	check := testExtractor(srv.URL).CheckConnection(context.Background())
	assert.True(t, check.OK)
	assert.Equal(t, defaultModel, check.Model)
}
