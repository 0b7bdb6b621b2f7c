package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"expensetracker/internal/events"
	"expensetracker/internal/handlers"
	"expensetracker/internal/logger"
	"expensetracker/internal/middleware"
	"expensetracker/internal/preferences"
	"expensetracker/internal/services"
	"expensetracker/internal/testutil"
	"expensetracker/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Events <-chan events.Event
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	bus := events.NewBus()
	t.Cleanup(bus.Close)
	ch, unsubscribe := bus.Subscribe(128)
	t.Cleanup(unsubscribe)

	// Services
	auditService := services.NewAuditService(db)
	expenseService := services.NewExpenseService(db, bus)
	budgetService := services.NewBudgetService(db, bus)
	dashboardService := services.NewDashboardService(expenseService, time.UTC)
	exportService := services.NewExportService(expenseService, time.UTC)
	settingsService := services.NewSettingsService(db, preferences.NewGormStore(db), bus)

	// Router
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NotFound())

	handlers.RegisterRoutes(router.Group("/api/v1"), handlers.Set{
		Expenses:   handlers.NewExpenseHandler(expenseService, auditService, time.UTC),
		Budgets:    handlers.NewBudgetHandler(budgetService, auditService),
		Dashboard:  handlers.NewDashboardHandler(dashboardService, time.UTC),
		Export:     handlers.NewExportHandler(exportService, auditService, time.UTC),
		Settings:   handlers.NewSettingsHandler(settingsService, auditService),
		Categories: handlers.NewCategoryHandler(),
	})

	return &testApp{DB: db, Router: router, Events: ch}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// createExpense posts an expense and returns its ID.
func (app *testApp) createExpense(t *testing.T, body string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/expenses", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["expense"].(map[string]interface{})["id"].(string)
}

// drainEvents returns the kinds of every event published so far.
func (app *testApp) drainEvents() []events.Kind {
	var kinds []events.Kind
	for {
		select {
		case e := <-app.Events:
			kinds = append(kinds, e.Kind)
		default:
			return kinds
		}
	}
}

func names(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var out []string
	for _, item := range parseJSON(t, rec)["data"].([]interface{}) {
		out = append(out, item.(map[string]interface{})["name"].(string))
	}
	return out
}
