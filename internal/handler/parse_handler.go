package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SuperShot3/order-form/internal/service"
)

// ParseHandler handles the order-text intake endpoints.
type ParseHandler struct {
	parseService service.ParseService
}

// NewParseHandler creates a new ParseHandler.
func NewParseHandler(parseService service.ParseService) *ParseHandler {
	return &ParseHandler{parseService: parseService}
}

// ParseInput is the DTO for parse requests.
type ParseInput struct {
	RawText string `json:"raw_text"`
}

// Parse handles POST /api/v1/parse
func (h *ParseHandler) Parse(c *gin.Context) {
	var input ParseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.parseService.Parse(c.Request.Context(), input.RawText)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Status handles GET /api/v1/parse/status
func (h *ParseHandler) Status(c *gin.Context) {
	RespondOK(c, h.parseService.Status(c.Request.Context()))
}

// TestConnection handles POST /api/v1/parse/test
func (h *ParseHandler) TestConnection(c *gin.Context) {
	RespondOK(c, h.parseService.TestConnection(c.Request.Context()))
}
