package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func parseRouter(svc *mocks.MockParseService) *gin.Engine {
	h := NewParseHandler(svc)
	r := gin.New()
	r.POST("/parse", h.Parse)
	r.GET("/parse/status", h.Status)
	r.POST("/parse/test", h.TestConnection)
	return r
}

func TestParseHandlerSuccess(t *testing.T) {
	extracted := domain.Fields{}
	extracted.SetString(domain.FieldBouquetName, "Pink Cloud")

	svc := new(mocks.MockParseService)
	svc.On("Parse", mock.Anything, "Bouquet: Pink Cloud").Return(&domain.ParseResult{
		Extracted:     extracted,
		MissingFields: []domain.Field{domain.FieldDeliveryDate},
		Strategy:      domain.ParseStrategyLocal,
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(`{"raw_text":"Bouquet: Pink Cloud"}`))
	req.Header.Set("Content-Type", "application/json")
	parseRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Extracted     map[string]interface{} `json:"extracted"`
			MissingFields []string               `json:"missing_fields"`
			AIUsed        bool                   `json:"ai_used"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Pink Cloud", resp.Data.Extracted["bouquet_name"])
	assert.Contains(t, resp.Data.MissingFields, "delivery_date")
	assert.False(t, resp.Data.AIUsed)
}

func TestParseHandlerEmptyText(t *testing.T) {
	svc := new(mocks.MockParseService)
	svc.On("Parse", mock.Anything, "").Return(nil, domain.ErrEmptyRawText)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(`{"raw_text":""}`))
	req.Header.Set("Content-Type", "application/json")
	parseRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_RAW_TEXT")
}

func TestParseHandlerMalformedBody(t *testing.T) {
	svc := new(mocks.MockParseService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(`{broken`))
	req.Header.Set("Content-Type", "application/json")
	parseRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	svc.AssertNotCalled(t, "Parse", mock.Anything, mock.Anything)
}

func TestParseHandlerStatus(t *testing.T) {
	svc := new(mocks.MockParseService)
	svc.On("Status", mock.Anything).Return(domain.ParseStatus{AIAvailable: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/parse/status", nil)
	parseRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ai_available":true`)
}

func TestParseHandlerTestConnection(t *testing.T) {
	svc := new(mocks.MockParseService)
	svc.On("TestConnection", mock.Anything).Return(domain.ConnectionCheck{OK: true, Model: "gpt-4o-mini"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/parse/test", nil)
	parseRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
	assert.Contains(t, w.Body.String(), "gpt-4o-mini")
}
