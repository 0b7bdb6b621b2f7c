package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
	"expensetracker/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
	loc            *time.Location
}

// NewExpenseHandler creates a new ExpenseHandler. Date-only query bounds are
// interpreted in loc.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer, loc *time.Location) *ExpenseHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService, loc: loc}
}

// CreateExpenseRequest represents the request payload for creating an expense.
// Value accepts a JSON number or a decimal string.
type CreateExpenseRequest struct {
	Name     string           `json:"name" binding:"max=200"`
	Date     *time.Time       `json:"date"`
	Value    *decimal.Decimal `json:"value" binding:"required" swaggertype:"string" example:"12.50"`
	Category string           `json:"category" binding:"omitempty,category"`
}

// UpdateExpenseRequest represents the request payload for updating an expense.
type UpdateExpenseRequest struct {
	Name     *string          `json:"name" binding:"omitempty,max=200"`
	Date     *time.Time       `json:"date"`
	Value    *decimal.Decimal `json:"value" swaggertype:"string" example:"12.50"`
	Category *string          `json:"category" binding:"omitempty,category"`
}

// CreateExpense handles the creation of a new expense.
// @Summary     Create an expense
// @Description Record a new expense. Unknown or missing categories are stored as Other.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	in := services.ExpenseInput{
		Name:     req.Name,
		Value:    *req.Value,
		Category: models.ParseCategory(req.Category),
	}
	if req.Date != nil {
		in.Date = *req.Date
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_EXPENSE", "expense", expense.ID, c.ClientIP(), services.AuditDiff(nil, expense))

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetExpenses handles listing expenses.
// @Summary     Get expenses
// @Description Get a filtered, sorted, paginated list of expenses
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       q          query string false "Case-insensitive text matched against the name"
// @Param       from       query string false "Earliest date (RFC 3339 or YYYY-MM-DD)"
// @Param       to         query string false "Latest date (RFC 3339 or YYYY-MM-DD, inclusive)"
// @Param       min        query string false "Minimum amount"
// @Param       max        query string false "Maximum amount"
// @Param       categories query string false "Comma separated categories"
// @Param       sort       query string false "date_asc, date_desc, amount_asc or amount_desc (default date_desc)"
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 50, max 500)"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	filter, err := parseFilter(c, h.loc)
	if err != nil {
		respondWithError(c, err)
		return
	}
	sortKey, err := parseSortKey(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var expenses []models.Expense
	if filter.IsAnyActive() {
		expenses, err = h.expenseService.SearchExpenses(c.Request.Context(), filter, sortKey)
	} else {
		expenses, err = h.expenseService.ListExpenses(c.Request.Context(), sortKey)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pagination.Slice(expenses, page))
}

// GetExpense handles retrieving a specific expense.
// @Summary     Get expense by ID
// @Description Get a specific expense by ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense "Expense details"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense handles updating an existing expense.
// @Summary     Update expense
// @Description Update the given fields of an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       id      path string               true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to change"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input or expense ID"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	in := services.ExpenseUpdate{Name: req.Name, Date: req.Date, Value: req.Value}
	if req.Category != nil {
		category := models.ParseCategory(*req.Category)
		in.Category = &category
	}

	before, err := h.expenseService.GetExpenseByID(c.Request.Context(), expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), expenseID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_EXPENSE", "expense", expenseID, c.ClientIP(), services.AuditDiff(before, expense))

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deleting an expense.
// @Summary     Delete expense
// @Description Delete an expense by ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       id path string true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	before, err := h.expenseService.GetExpenseByID(c.Request.Context(), expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_EXPENSE", "expense", expenseID, c.ClientIP(), services.AuditDiff(before, nil))

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
