package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/export"
	"expensetracker/internal/ledger"
	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/services"
	"expensetracker/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

const (
	testExpenseID = "0190a1b2-c3d4-7e5f-8a6b-7c8d9e0f1a2b"
	testBudgetID  = "0190a1b2-c3d4-7e5f-8a6b-7c8d9e0f1a2c"
)

// --- mock services ---

type mockExpenseService struct {
	createExpenseFn  func(ctx context.Context, in services.ExpenseInput) (*models.Expense, error)
	getExpenseByIDFn func(ctx context.Context, id string) (*models.Expense, error)
	updateExpenseFn  func(ctx context.Context, id string, in services.ExpenseUpdate) (*models.Expense, error)
	deleteExpenseFn  func(ctx context.Context, id string) error
	listExpensesFn   func(ctx context.Context, sort ledger.SortKey) ([]models.Expense, error)
	searchExpensesFn func(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortKey) ([]models.Expense, error)
}

func (m *mockExpenseService) CreateExpense(ctx context.Context, in services.ExpenseInput) (*models.Expense, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(ctx, in)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) GetExpenseByID(ctx context.Context, id string) (*models.Expense, error) {
	if m.getExpenseByIDFn != nil {
		return m.getExpenseByIDFn(ctx, id)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) UpdateExpense(ctx context.Context, id string, in services.ExpenseUpdate) (*models.Expense, error) {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(ctx, id, in)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) DeleteExpense(ctx context.Context, id string) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(ctx, id)
	}
	return nil
}

func (m *mockExpenseService) ListExpenses(ctx context.Context, sort ledger.SortKey) ([]models.Expense, error) {
	if m.listExpensesFn != nil {
		return m.listExpensesFn(ctx, sort)
	}
	return []models.Expense{}, nil
}

func (m *mockExpenseService) SearchExpenses(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortKey) ([]models.Expense, error) {
	if m.searchExpensesFn != nil {
		return m.searchExpensesFn(ctx, filter, sort)
	}
	return []models.Expense{}, nil
}

var _ services.ExpenseServicer = (*mockExpenseService)(nil)

type mockBudgetService struct {
	createBudgetFn      func(ctx context.Context, in services.BudgetInput) (*models.Budget, error)
	getBudgetByIDFn     func(ctx context.Context, id string) (*models.Budget, error)
	updateBudgetFn      func(ctx context.Context, id string, in services.BudgetUpdate) (*models.Budget, error)
	deleteBudgetFn      func(ctx context.Context, id string) error
	listBudgetsFn       func(ctx context.Context) ([]models.Budget, error)
	getBudgetStatusFn   func(ctx context.Context, id string) (*ledger.BudgetStatus, error)
	getBudgetStatusesFn func(ctx context.Context, active *bool) ([]ledger.BudgetStatus, error)
}

func (m *mockBudgetService) CreateBudget(ctx context.Context, in services.BudgetInput) (*models.Budget, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(ctx, in)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) GetBudgetByID(ctx context.Context, id string) (*models.Budget, error) {
	if m.getBudgetByIDFn != nil {
		return m.getBudgetByIDFn(ctx, id)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) UpdateBudget(ctx context.Context, id string, in services.BudgetUpdate) (*models.Budget, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(ctx, id, in)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) DeleteBudget(ctx context.Context, id string) error {
	if m.deleteBudgetFn != nil {
		return m.deleteBudgetFn(ctx, id)
	}
	return nil
}

func (m *mockBudgetService) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	if m.listBudgetsFn != nil {
		return m.listBudgetsFn(ctx)
	}
	return []models.Budget{}, nil
}

func (m *mockBudgetService) GetBudgetStatus(ctx context.Context, id string) (*ledger.BudgetStatus, error) {
	if m.getBudgetStatusFn != nil {
		return m.getBudgetStatusFn(ctx, id)
	}
	return &ledger.BudgetStatus{}, nil
}

func (m *mockBudgetService) GetBudgetStatuses(ctx context.Context, active *bool) ([]ledger.BudgetStatus, error) {
	if m.getBudgetStatusesFn != nil {
		return m.getBudgetStatusesFn(ctx, active)
	}
	return []ledger.BudgetStatus{}, nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

type mockDashboardService struct {
	getDashboardFn func(ctx context.Context, r ledger.TimeRange, filter ledger.FilterSpec) (*ledger.Summary, error)
}

func (m *mockDashboardService) GetDashboard(ctx context.Context, r ledger.TimeRange, filter ledger.FilterSpec) (*ledger.Summary, error) {
	if m.getDashboardFn != nil {
		return m.getDashboardFn(ctx, r, filter)
	}
	return &ledger.Summary{}, nil
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

type mockExportService struct {
	exportFn      func(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortKey, kind export.Kind) ([]byte, error)
	exportToDirFn func(ctx context.Context, dir string, filter ledger.FilterSpec, sort ledger.SortKey, kind export.Kind) (string, error)
}

func (m *mockExportService) Export(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortKey, kind export.Kind) ([]byte, error) {
	if m.exportFn != nil {
		return m.exportFn(ctx, filter, sort, kind)
	}
	return []byte{}, nil
}

func (m *mockExportService) ExportToDir(ctx context.Context, dir string, filter ledger.FilterSpec, sort ledger.SortKey, kind export.Kind) (string, error) {
	if m.exportToDirFn != nil {
		return m.exportToDirFn(ctx, dir, filter, sort, kind)
	}
	return "", nil
}

var _ services.ExportServicer = (*mockExportService)(nil)

type mockSettingsService struct {
	getSettingsFn    func(ctx context.Context) (*services.Settings, error)
	updateSettingsFn func(ctx context.Context, in services.SettingsUpdate) (*services.Settings, error)
	resetAllDataFn   func(ctx context.Context) error
}

func (m *mockSettingsService) GetSettings(ctx context.Context) (*services.Settings, error) {
	if m.getSettingsFn != nil {
		return m.getSettingsFn(ctx)
	}
	return &services.Settings{Theme: models.ThemeSystem, Currency: "INR"}, nil
}

func (m *mockSettingsService) UpdateSettings(ctx context.Context, in services.SettingsUpdate) (*services.Settings, error) {
	if m.updateSettingsFn != nil {
		return m.updateSettingsFn(ctx, in)
	}
	return &services.Settings{}, nil
}

func (m *mockSettingsService) ResetAllData(ctx context.Context) error {
	if m.resetAllDataFn != nil {
		return m.resetAllDataFn(ctx)
	}
	return nil
}

var _ services.SettingsServicer = (*mockSettingsService)(nil)

type auditEntry struct {
	action, resourceType, resourceID string
	changes                          map[string]any
}

type mockAuditService struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (m *mockAuditService) Log(action, resourceType, resourceID, _ string, changes map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, auditEntry{action: action, resourceType: resourceType, resourceID: resourceID, changes: changes})
}

func (m *mockAuditService) last() auditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) == 0 {
		return auditEntry{}
	}
	return m.entries[len(m.entries)-1]
}

func (m *mockAuditService) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.action)
	}
	return out
}

var _ services.AuditServicer = (*mockAuditService)(nil)

// --- test helpers ---

type mocks struct {
	expenses  *mockExpenseService
	budgets   *mockBudgetService
	dashboard *mockDashboardService
	export    *mockExportService
	settings  *mockSettingsService
	audit     *mockAuditService
}

func newMocks() *mocks {
	return &mocks{
		expenses:  &mockExpenseService{},
		budgets:   &mockBudgetService{},
		dashboard: &mockDashboardService{},
		export:    &mockExportService{},
		settings:  &mockSettingsService{},
		audit:     &mockAuditService{},
	}
}

func setupRouter(m *mocks) *gin.Engine {
	exportHandler := NewExportHandler(m.export, m.audit, time.UTC)
	exportHandler.now = func() time.Time { return time.Date(2025, 4, 29, 10, 0, 0, 0, time.UTC) }

	r := gin.New()
	RegisterRoutes(r.Group(""), Set{
		Expenses:   NewExpenseHandler(m.expenses, m.audit, time.UTC),
		Budgets:    NewBudgetHandler(m.budgets, m.audit),
		Dashboard:  NewDashboardHandler(m.dashboard, time.UTC),
		Export:     exportHandler,
		Settings:   NewSettingsHandler(m.settings, m.audit),
		Categories: NewCategoryHandler(),
	})
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
