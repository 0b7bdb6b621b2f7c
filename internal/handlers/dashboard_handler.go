package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/ledger"
	"expensetracker/internal/services"
)

// DashboardHandler serves spending summaries.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	loc              *time.Location
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer, loc *time.Location) *DashboardHandler {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardHandler{dashboardService: dashboardService, loc: loc}
}

// DashboardQuery holds the dashboard's own query parameters.
type DashboardQuery struct {
	Range string `form:"range" binding:"omitempty,time_range"`
}

// GetDashboard handles the spending summary.
// @Summary     Get dashboard
// @Description Total, per-category and per-day spending for the week, month, year or all time
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Param       range      query string false "week, month, year or all (default month)"
// @Param       q          query string false "Case-insensitive search text"
// @Param       categories query string false "Comma separated categories"
// @Success     200 {object} ledger.Summary "Spending summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	var query DashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	filter, err := parseFilter(c, h.loc)
	if err != nil {
		respondWithError(c, err)
		return
	}

	r := ledger.TimeRange(strings.ToLower(query.Range))
	summary, err := h.dashboardService.GetDashboard(c.Request.Context(), r, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
