package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tacovision/backend/internal/domain/models"
	"github.com/tacovision/backend/internal/repository/memory"
	"github.com/tacovision/backend/internal/server/handlers"
	"github.com/tacovision/backend/internal/service/assist"
	"github.com/tacovision/backend/internal/service/auth"
	"github.com/tacovision/backend/internal/service/inventory"
	"github.com/tacovision/backend/internal/service/schedule"
	"github.com/tacovision/backend/pkg/clients/anthropic"
)

type stubAI struct {
	entries []anthropic.ScheduleEntry
	err     error
}

func (s *stubAI) ExtractSchedule(ctx context.Context, pdfDataURI string) ([]anthropic.ScheduleEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func (s *stubAI) ForecastInventory(ctx context.Context, input anthropic.ForecastInput) (anthropic.ForecastResult, error) {
	return anthropic.ForecastResult{PredictedNeeds: "more beef", PotentialRisks: "none"}, s.err
}

func (s *stubAI) ShipmentReport(ctx context.Context, inventoryList string) (string, error) {
	return "Beef: 10 units", s.err
}

type testEnv struct {
	engine *gin.Engine
	repo   *memory.Repository
	auth   *auth.Service
}

// newTestEnv wires the full route tree against in-memory storage and a stub
// AI client, mirroring the production wiring in cmd/server.
func newTestEnv(t *testing.T, ai anthropic.Client) *testEnv {
	t.Helper()

	repo := memory.NewRepository()
	sessions := auth.NewSessionStore(time.Hour)

	authSvc := auth.NewService(repo, sessions, nil)
	inventorySvc := inventory.NewService(repo, nil, 3, nil)
	scheduleSvc := schedule.NewService(repo, ai, time.Wednesday, nil)
	assistSvc := assist.NewService(repo, ai, nil)

	engine := New(Handlers{
		Auth:      handlers.NewAuthHandler(authSvc, nil),
		Inventory: handlers.NewInventoryHandler(inventorySvc, nil),
		Schedule:  handlers.NewScheduleHandler(scheduleSvc, nil),
		Users:     handlers.NewUserHandler(authSvc, nil),
		Assist:    handlers.NewAssistHandler(assistSvc, nil),
	}, nil)

	return &testEnv{engine: engine, repo: repo, auth: authSvc}
}

func (e *testEnv) seedAndLogin(t *testing.T, id, name, pin string, role models.Role) string {
	t.Helper()
	if err := e.repo.InsertUser(context.Background(), models.User{ID: id, Name: name, PIN: pin, Role: role}); err != nil {
		t.Fatalf("InsertUser: %v", err)
	}
	token, _, err := e.auth.Login(context.Background(), id, pin)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.request(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seedAndLogin(t, "25", "Admin User", "1234", models.RoleAdminManager)

	rec := env.request(t, http.MethodPost, "/api/login", "", gin.H{"id": "25", "pin": "1234"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeJSON(t, rec, &resp)
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.Role != models.RoleAdminManager {
		t.Errorf("user = %+v", resp.User)
	}

	if rec := env.request(t, http.MethodPost, "/api/login", "", gin.H{"id": "25", "pin": "9999"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong pin status = %d", rec.Code)
	}
	if rec := env.request(t, http.MethodPost, "/api/login", "", gin.H{"id": "25"}); rec.Code != http.StatusBadRequest {
		t.Errorf("missing pin status = %d", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.seedAndLogin(t, "25", "Admin User", "1234", models.RoleAdminManager)

	if rec := env.request(t, http.MethodGet, "/api/inventory", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d", rec.Code)
	}
	if rec := env.request(t, http.MethodGet, "/api/inventory", "bogus", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("bogus token status = %d", rec.Code)
	}
	if rec := env.request(t, http.MethodGet, "/api/inventory", token, nil); rec.Code != http.StatusOK {
		t.Errorf("valid token status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if rec := env.request(t, http.MethodPost, "/api/logout", token, nil); rec.Code != http.StatusNoContent {
		t.Errorf("logout status = %d", rec.Code)
	}
	if rec := env.request(t, http.MethodGet, "/api/inventory", token, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("revoked token status = %d", rec.Code)
	}
}

func TestRoleGates(t *testing.T) {
	env := newTestEnv(t, nil)
	crew := env.seedAndLogin(t, "10", "Crew Member", "1111", models.RoleTeamTraining)
	manager := env.seedAndLogin(t, "11", "Shift Manager", "2222", models.RoleManager)
	admin := env.seedAndLogin(t, "25", "Admin User", "1234", models.RoleAdminManager)

	item := gin.H{"name": "Beef", "category": "Protein", "stock": 5, "threshold": 10, "type": "Permanent"}

	if rec := env.request(t, http.MethodPost, "/api/inventory", crew, item); rec.Code != http.StatusForbidden {
		t.Errorf("crew add item status = %d", rec.Code)
	}
	if rec := env.request(t, http.MethodPost, "/api/inventory", manager, item); rec.Code != http.StatusCreated {
		t.Errorf("manager add item status = %d, body = %s", rec.Code, rec.Body.String())
	}

	budget := gin.H{"budget": 10000.0, "spent": 7650.0, "period": "Weekly", "overstockThreshold": 3.0}
	if rec := env.request(t, http.MethodPut, "/api/budget", manager, budget); rec.Code != http.StatusForbidden {
		t.Errorf("manager update budget status = %d", rec.Code)
	}
	if rec := env.request(t, http.MethodPut, "/api/budget", admin, budget); rec.Code != http.StatusNoContent {
		t.Errorf("admin update budget status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if rec := env.request(t, http.MethodDelete, "/api/users/10", manager, nil); rec.Code != http.StatusForbidden {
		t.Errorf("manager delete user status = %d", rec.Code)
	}
	if rec := env.request(t, http.MethodDelete, "/api/users/10", admin, nil); rec.Code != http.StatusNoContent {
		t.Errorf("admin delete user status = %d", rec.Code)
	}
}

func TestInventoryLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.seedAndLogin(t, "25", "Admin User", "1234", models.RoleAdminManager)

	rec := env.request(t, http.MethodPost, "/api/inventory", token,
		gin.H{"name": "Beef", "category": "Protein", "stock": 20, "threshold": 10, "type": "Permanent"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created models.InventoryItemView
	decodeJSON(t, rec, &created)
	if created.Status != models.StatusOK {
		t.Errorf("created status = %q", created.Status)
	}

	rec = env.request(t, http.MethodPut, "/api/inventory/"+created.ID+"/stock", token, gin.H{"stock": 0})
	if rec.Code != http.StatusOK {
		t.Fatalf("update stock status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var updated models.InventoryItemView
	decodeJSON(t, rec, &updated)
	if updated.Status != models.StatusOutOfStock {
		t.Errorf("updated status = %q", updated.Status)
	}

	if rec := env.request(t, http.MethodPut, "/api/inventory/missing/stock", token, gin.H{"stock": 1}); rec.Code != http.StatusNotFound {
		t.Errorf("unknown item status = %d", rec.Code)
	}
	if rec := env.request(t, http.MethodPut, "/api/inventory/"+created.ID+"/stock", token, gin.H{}); rec.Code != http.StatusBadRequest {
		t.Errorf("missing stock field status = %d", rec.Code)
	}

	rec = env.request(t, http.MethodGet, "/api/audit", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("audit status = %d", rec.Code)
	}
	var entries []models.AuditLogEntry
	decodeJSON(t, rec, &entries)
	actions := make(map[string]bool)
	for _, e := range entries {
		actions[e.Action] = true
	}
	for _, want := range []string{models.ActionAddedItem, models.ActionUpdatedStock, models.ActionFlaggedLow} {
		if !actions[want] {
			t.Errorf("audit log missing action %q, got %+v", want, entries)
		}
	}
}

func TestShipmentExportNotConfigured(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.seedAndLogin(t, "11", "Shift Manager", "2222", models.RoleManager)

	if rec := env.request(t, http.MethodGet, "/api/inventory/shipment", token, nil); rec.Code != http.StatusOK {
		t.Errorf("shipment status = %d", rec.Code)
	}
	if rec := env.request(t, http.MethodGet, "/api/inventory/shipment?export=true", token, nil); rec.Code != http.StatusConflict {
		t.Errorf("export without exporter status = %d", rec.Code)
	}
}

func TestScheduleUpload(t *testing.T) {
	ai := &stubAI{entries: []anthropic.ScheduleEntry{
		{Name: "Jane Doe", UserID: "10", DayOfWeek: "Monday", TimeRange: "8:00 AM - 4:00 PM", HoursWorked: "8"},
	}}
	env := newTestEnv(t, ai)
	token := env.seedAndLogin(t, "11", "Shift Manager", "2222", models.RoleManager)

	body := gin.H{"pdfDataUri": "data:application/pdf;base64,JVBERi0x"}

	rec := env.request(t, http.MethodPost, "/api/schedule", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = env.request(t, http.MethodGet, "/api/schedule", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("current status = %d", rec.Code)
	}
	var sched models.Schedule
	decodeJSON(t, rec, &sched)
	if len(sched.Entries) != 1 || sched.Entries[0].Name != "Jane Doe" {
		t.Errorf("schedule = %+v", sched)
	}

	// Empty extraction reads as an unrecognized document.
	ai.entries = nil
	ai.err = anthropic.ErrEmptyExtraction
	if rec := env.request(t, http.MethodPost, "/api/schedule", token, body); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty extraction status = %d", rec.Code)
	}
}

func TestScheduleUploadWithoutAI(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.seedAndLogin(t, "11", "Shift Manager", "2222", models.RoleManager)

	body := gin.H{"pdfDataUri": "data:application/pdf;base64,JVBERi0x"}
	if rec := env.request(t, http.MethodPost, "/api/schedule", token, body); rec.Code != http.StatusConflict {
		t.Errorf("upload without ai status = %d", rec.Code)
	}
	if rec := env.request(t, http.MethodGet, "/api/schedule", token, nil); rec.Code != http.StatusNotFound {
		t.Errorf("missing schedule status = %d", rec.Code)
	}
}

func TestAssistRoutes(t *testing.T) {
	env := newTestEnv(t, &stubAI{})
	token := env.seedAndLogin(t, "11", "Shift Manager", "2222", models.RoleManager)

	rec := env.request(t, http.MethodPost, "/api/assist/forecast", token,
		gin.H{"historicalData": "sold 40 lbs beef", "dayOfWeek": "Friday", "salesPatterns": "busy evenings"})
	if rec.Code != http.StatusOK {
		t.Fatalf("forecast status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var forecast anthropic.ForecastResult
	decodeJSON(t, rec, &forecast)
	if forecast.PredictedNeeds == "" {
		t.Errorf("forecast = %+v", forecast)
	}

	rec = env.request(t, http.MethodPost, "/api/assist/shipment-report", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("shipment report status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var report struct {
		ShipmentList string `json:"shipmentList"`
	}
	decodeJSON(t, rec, &report)
	if report.ShipmentList == "" {
		t.Error("expected a shipment report")
	}

	// Without a configured client the routes degrade to 409.
	disabled := newTestEnv(t, nil)
	token = disabled.seedAndLogin(t, "11", "Shift Manager", "2222", models.RoleManager)
	if rec := disabled.request(t, http.MethodPost, "/api/assist/shipment-report", token, nil); rec.Code != http.StatusConflict {
		t.Errorf("disabled assist status = %d", rec.Code)
	}
}

func TestChangePINRoute(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.seedAndLogin(t, "10", "Crew Member", "1111", models.RoleTeamTraining)

	if rec := env.request(t, http.MethodPut, "/api/me/pin", token, gin.H{"currentPin": "9999", "newPin": "4321"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong current pin status = %d", rec.Code)
	}
	if rec := env.request(t, http.MethodPut, "/api/me/pin", token, gin.H{"currentPin": "1111", "newPin": "4321"}); rec.Code != http.StatusNoContent {
		t.Errorf("pin change status = %d", rec.Code)
	}

	if rec := env.request(t, http.MethodPost, "/api/login", "", gin.H{"id": "10", "pin": "4321"}); rec.Code != http.StatusOK {
		t.Errorf("login with new pin status = %d, body = %s", rec.Code, rec.Body.String())
	}
}
