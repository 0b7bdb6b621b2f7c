package handlers

import "github.com/gin-gonic/gin"

// Set bundles the handlers mounted under the API version group.
type Set struct {
	Expenses   *ExpenseHandler
	Budgets    *BudgetHandler
	Dashboard  *DashboardHandler
	Export     *ExportHandler
	Settings   *SettingsHandler
	Categories *CategoryHandler
}

// RegisterRoutes mounts every API route on v1.
func RegisterRoutes(v1 *gin.RouterGroup, h Set) {
	// Expense routes
	expenses := v1.Group("/expenses")
	expenses.POST("", h.Expenses.CreateExpense)
	expenses.GET("", h.Expenses.GetExpenses)
	expenses.GET("/:id", h.Expenses.GetExpense)
	expenses.PUT("/:id", h.Expenses.UpdateExpense)
	expenses.DELETE("/:id", h.Expenses.DeleteExpense)

	// Budget routes
	budgets := v1.Group("/budgets")
	budgets.POST("", h.Budgets.CreateBudget)
	budgets.GET("", h.Budgets.GetBudgets)
	budgets.GET("/status", h.Budgets.GetBudgetStatuses)
	budgets.GET("/:id", h.Budgets.GetBudget)
	budgets.PUT("/:id", h.Budgets.UpdateBudget)
	budgets.DELETE("/:id", h.Budgets.DeleteBudget)
	budgets.GET("/:id/status", h.Budgets.GetBudgetStatus)

	v1.GET("/dashboard", h.Dashboard.GetDashboard)
	v1.GET("/export", h.Export.ExportExpenses)
	v1.GET("/categories", h.Categories.GetCategories)

	// Settings routes
	v1.GET("/settings", h.Settings.GetSettings)
	v1.PUT("/settings", h.Settings.UpdateSettings)
	v1.DELETE("/data", h.Settings.ResetData)
}
