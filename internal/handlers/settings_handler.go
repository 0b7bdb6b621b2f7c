package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/models"
	"expensetracker/internal/services"
)

// SettingsHandler handles preferences and the data reset.
type SettingsHandler struct {
	settingsService services.SettingsServicer
	auditService    services.AuditServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer, auditService services.AuditServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, auditService: auditService}
}

// UpdateSettingsRequest represents the request payload for changing
// preferences. Omitted fields keep their value.
type UpdateSettingsRequest struct {
	Theme    *string `json:"theme" example:"dark"`
	Currency *string `json:"currency" example:"EUR"`
}

// GetSettings handles reading the preferences.
// @Summary     Get settings
// @Description Get the theme and currency preferences
// @Tags        settings
// @Produce     json
// @Success     200 {object} services.Settings "Settings"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings handles changing the preferences.
// @Summary     Update settings
// @Description Change the theme and/or currency
// @Tags        settings
// @Accept      json
// @Produce     json
// @Param       request body UpdateSettingsRequest true "Preferences to change"
// @Success     200 {object} services.Settings "Updated settings"
// @Failure     400 {object} ErrorResponse "Invalid theme or currency"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	in := services.SettingsUpdate{Currency: req.Currency}
	if req.Theme != nil {
		theme := models.Theme(*req.Theme)
		in.Theme = &theme
	}

	before, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_SETTINGS", "preference", "", c.ClientIP(), services.AuditDiff(before, settings))

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// ResetData handles deleting every expense and budget.
// @Summary     Reset data
// @Description Permanently delete all expenses and budgets. Preferences are kept.
// @Tags        settings
// @Produce     json
// @Success     200 {object} MessageResponse "Data reset"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /data [delete]
func (h *SettingsHandler) ResetData(c *gin.Context) {
	if err := h.settingsService.ResetAllData(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("RESET_DATA", "expense", "", c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "All expenses and budgets deleted"})
}
