package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SuperShot3/order-form/internal/domain"
	"github.com/SuperShot3/order-form/internal/service"
)

// SettingsHandler handles the operator settings endpoints.
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles GET /api/v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, settings)
}

// Update handles PUT /api/v1/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var updates domain.SettingsUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), updates)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, settings)
}
