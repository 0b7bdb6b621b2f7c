package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/models"
)

// CategoryHandler serves the fixed category list.
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoryResponse represents a category in the response
type CategoryResponse struct {
	Name  models.Category `json:"name"`
	Icon  string          `json:"icon"`
	Color string          `json:"color"`
}

// GetCategories lists every category
// @Summary     Get categories
// @Description Get every expense category in display order with its icon and color
// @Tags        categories
// @Produce     json
// @Success     200 {array} CategoryResponse "Categories"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	all := models.AllCategories()
	resp := make([]CategoryResponse, 0, len(all))
	for _, category := range all {
		resp = append(resp, CategoryResponse{Name: category, Icon: category.Icon(), Color: category.Color()})
	}
	c.JSON(http.StatusOK, gin.H{"categories": resp})
}
