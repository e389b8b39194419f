package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vepsplus/fieldops/internal/config"
	dbutil "github.com/vepsplus/fieldops/internal/db"
	"github.com/vepsplus/fieldops/internal/repo"
	"github.com/vepsplus/fieldops/internal/security"
)

type envelope struct {
	IsSuccess bool            `json:"isSuccess"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
}

func newTestServer(t *testing.T) (*gin.Engine, *config.AppConfig, *repo.UserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, errOpen := dbutil.Open(filepath.Join(t.TempDir(), "fieldops.db"))
	if errOpen != nil {
		t.Fatalf("open test db: %v", errOpen)
	}
	if errMigrate := dbutil.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate test db: %v", errMigrate)
	}

	cfg := &config.AppConfig{
		DatabaseDSN: "unused",
		Port:        0,
		JWT:         config.JWTConfig{Secret: "test-secret", Expiry: time.Hour},
		Fuel:        config.FuelConfig{DefaultUnitPrice: 50.0},
	}
	engine := gin.New()
	RegisterRoutes(engine, conn, cfg, nil)
	return engine, cfg, repo.NewUserRepo(conn)
}

func seedAccount(t *testing.T, users *repo.UserRepo, username, role string) {
	t.Helper()
	if _, errCreate := users.Create(context.Background(), username, "secret-pass", role); errCreate != nil {
		t.Fatalf("seed %s: %v", username, errCreate)
	}
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if errEncode := json.NewEncoder(&buf).Encode(body); errEncode != nil {
			t.Fatalf("encode body: %v", errEncode)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var env envelope
	if errDecode := json.Unmarshal(rec.Body.Bytes(), &env); errDecode != nil {
		t.Fatalf("decode envelope from %s %s: %v (body %q)", method, path, errDecode, rec.Body.String())
	}
	return rec.Code, env
}

func login(t *testing.T, engine *gin.Engine, username string) string {
	t.Helper()
	status, env := doJSON(t, engine, http.MethodPost, "/auth/login", "", gin.H{
		"username": username,
		"password": "secret-pass",
	})
	if status != http.StatusOK || !env.IsSuccess {
		t.Fatalf("login %s: status %d message %q", username, status, env.Message)
	}
	var data struct {
		Token string `json:"token"`
	}
	if errDecode := json.Unmarshal(env.Data, &data); errDecode != nil {
		t.Fatalf("decode login data: %v", errDecode)
	}
	if data.Token == "" {
		t.Fatalf("login must return a token")
	}
	return data.Token
}

func TestHealthzIsOpen(t *testing.T) {
	engine, _, _ := newTestServer(t)
	status, env := doJSON(t, engine, http.MethodGet, "/healthz", "", nil)
	if status != http.StatusOK || !env.IsSuccess {
		t.Fatalf("healthz: status %d, env %+v", status, env)
	}
}

func TestBearerGuard(t *testing.T) {
	engine, cfg, users := newTestServer(t)
	seedAccount(t, users, "alice", "user")

	status, env := doJSON(t, engine, http.MethodGet, "/timesheets", "", nil)
	if status != http.StatusUnauthorized || env.IsSuccess || env.Message != "not authenticated" {
		t.Fatalf("missing token: status %d, env %+v", status, env)
	}

	status, _ = doJSON(t, engine, http.MethodGet, "/timesheets", "garbage", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("garbage token: status %d", status)
	}

	expired, errIssue := security.IssueToken(cfg.JWT.Secret, -time.Minute, 1, "alice", "user")
	if errIssue != nil {
		t.Fatalf("issue expired token: %v", errIssue)
	}
	status, _ = doJSON(t, engine, http.MethodGet, "/timesheets", expired, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expired token: status %d", status)
	}
}

func TestLoginHidesFailureCause(t *testing.T) {
	engine, _, users := newTestServer(t)
	seedAccount(t, users, "alice", "user")

	statusUnknown, envUnknown := doJSON(t, engine, http.MethodPost, "/auth/login", "", gin.H{"username": "nobody", "password": "secret-pass"})
	statusWrong, envWrong := doJSON(t, engine, http.MethodPost, "/auth/login", "", gin.H{"username": "alice", "password": "wrong"})
	if statusUnknown != http.StatusUnauthorized || statusWrong != http.StatusUnauthorized {
		t.Fatalf("expected 401s, got %d and %d", statusUnknown, statusWrong)
	}
	if envUnknown.Message != envWrong.Message {
		t.Fatalf("failure messages must match: %q vs %q", envUnknown.Message, envWrong.Message)
	}
}

func TestFuelEndToEnd(t *testing.T) {
	engine, _, users := newTestServer(t)
	seedAccount(t, users, "alice", "user")
	token := login(t, engine, "alice")

	status, env := doJSON(t, engine, http.MethodPost, "/fuel", token, gin.H{
		"date":         "2026-03-01",
		"volume":       10,
		"mileage":      500,
		"fuelType":     "AI-95",
		"licensePlate": "A123BC",
	})
	if status != http.StatusCreated || !env.IsSuccess {
		t.Fatalf("create fuel: status %d, env %+v", status, env)
	}
	var created struct {
		ID   uint64  `json:"id"`
		Cost float64 `json:"cost"`
		Fio  string  `json:"fio"`
	}
	if errDecode := json.Unmarshal(env.Data, &created); errDecode != nil {
		t.Fatalf("decode created: %v", errDecode)
	}
	if created.Cost != 552.0 {
		t.Fatalf("expected server-computed cost 552.0, got %v", created.Cost)
	}
	if created.Fio != "alice" {
		t.Fatalf("expected fio alice, got %q", created.Fio)
	}

	fuelPath := "/fuel/" + strconv.FormatUint(created.ID, 10)

	// Lowering the odometer is rejected.
	status, env = doJSON(t, engine, http.MethodPatch, fuelPath, token, gin.H{"mileage": 400})
	if status != http.StatusBadRequest || env.IsSuccess {
		t.Fatalf("mileage regression: status %d, env %+v", status, env)
	}

	// Raising it succeeds and recomputes nothing else.
	status, env = doJSON(t, engine, http.MethodPatch, fuelPath, token, gin.H{"mileage": 600})
	if status != http.StatusOK || !env.IsSuccess {
		t.Fatalf("mileage raise: status %d, env %+v", status, env)
	}
	var updated struct {
		Mileage int     `json:"mileage"`
		Cost    float64 `json:"cost"`
	}
	if errDecode := json.Unmarshal(env.Data, &updated); errDecode != nil {
		t.Fatalf("decode updated: %v", errDecode)
	}
	if updated.Mileage != 600 || updated.Cost != 552.0 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	status, _ = doJSON(t, engine, http.MethodDelete, fuelPath, token, nil)
	if status != http.StatusOK {
		t.Fatalf("delete: status %d", status)
	}
	status, _ = doJSON(t, engine, http.MethodDelete, fuelPath, token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("repeat delete: status %d", status)
	}
}

func TestCreateIgnoresClientUserID(t *testing.T) {
	engine, _, users := newTestServer(t)
	seedAccount(t, users, "alice", "user") // id 1
	seedAccount(t, users, "bob", "user")   // id 2
	aliceToken := login(t, engine, "alice")
	bobToken := login(t, engine, "bob")

	// A userId smuggled into the body must never override the caller.
	status, env := doJSON(t, engine, http.MethodPost, "/fuel", bobToken, gin.H{
		"userId":       1,
		"date":         "2026-03-01",
		"volume":       10,
		"mileage":      500,
		"fuelType":     "AI-95",
		"licensePlate": "A123BC",
	})
	if status != http.StatusCreated || !env.IsSuccess {
		t.Fatalf("create fuel: status %d, env %+v", status, env)
	}

	status, env = doJSON(t, engine, http.MethodPost, "/timesheets", bobToken, gin.H{
		"userId":  1,
		"date":    "2026-03-01",
		"project": "Project 1",
		"hours":   8,
	})
	if status != http.StatusCreated || !env.IsSuccess {
		t.Fatalf("create timesheet: status %d, env %+v", status, env)
	}

	for _, path := range []string{"/fuel", "/timesheets"} {
		status, env = doJSON(t, engine, http.MethodGet, path, aliceToken, nil)
		if status != http.StatusOK {
			t.Fatalf("list %s as alice: status %d", path, status)
		}
		var foreign []json.RawMessage
		if errDecode := json.Unmarshal(env.Data, &foreign); errDecode != nil {
			t.Fatalf("decode %s list: %v", path, errDecode)
		}
		if len(foreign) != 0 {
			t.Fatalf("alice must not own bob's %s rows, got %d", path, len(foreign))
		}

		status, env = doJSON(t, engine, http.MethodGet, path, bobToken, nil)
		if status != http.StatusOK {
			t.Fatalf("list %s as bob: status %d", path, status)
		}
		var own []struct {
			Fio string `json:"fio"`
		}
		if errDecode := json.Unmarshal(env.Data, &own); errDecode != nil {
			t.Fatalf("decode %s list: %v", path, errDecode)
		}
		if len(own) != 1 || own[0].Fio != "bob" {
			t.Fatalf("bob must own the %s row he created, got %+v", path, own)
		}
	}
}

func TestTimesheetReviewNotifiesOwner(t *testing.T) {
	engine, _, users := newTestServer(t)
	seedAccount(t, users, "alice", "user")
	seedAccount(t, users, "chief", "boss")
	aliceToken := login(t, engine, "alice")
	chiefToken := login(t, engine, "chief")

	status, env := doJSON(t, engine, http.MethodPost, "/timesheets", aliceToken, gin.H{
		"date":    "2026-03-01",
		"project": "Project 1",
		"hours":   8,
	})
	if status != http.StatusCreated || !env.IsSuccess {
		t.Fatalf("create timesheet: status %d, env %+v", status, env)
	}
	var created struct {
		ID uint64 `json:"id"`
	}
	if errDecode := json.Unmarshal(env.Data, &created); errDecode != nil {
		t.Fatalf("decode created: %v", errDecode)
	}
	path := "/timesheets/" + strconv.FormatUint(created.ID, 10)

	// The owner may not review their own timesheet.
	status, _ = doJSON(t, engine, http.MethodPatch, path, aliceToken, gin.H{"status": "approved"})
	if status != http.StatusForbidden {
		t.Fatalf("owner review: status %d", status)
	}

	status, env = doJSON(t, engine, http.MethodPatch, path, chiefToken, gin.H{"status": "approved"})
	if status != http.StatusOK || !env.IsSuccess {
		t.Fatalf("boss review: status %d, env %+v", status, env)
	}

	status, env = doJSON(t, engine, http.MethodGet, "/notifications", aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("notifications: status %d", status)
	}
	var notifications []struct {
		Title  string `json:"title"`
		IsRead bool   `json:"isRead"`
	}
	if errDecode := json.Unmarshal(env.Data, &notifications); errDecode != nil {
		t.Fatalf("decode notifications: %v", errDecode)
	}
	if len(notifications) != 1 || notifications[0].IsRead {
		t.Fatalf("expected one unread notification, got %+v", notifications)
	}
}

func TestWorkersReferenceRequiresBoss(t *testing.T) {
	engine, _, users := newTestServer(t)
	seedAccount(t, users, "alice", "user")
	seedAccount(t, users, "chief", "boss")
	aliceToken := login(t, engine, "alice")
	chiefToken := login(t, engine, "chief")

	status, _ := doJSON(t, engine, http.MethodGet, "/references/workers", aliceToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("worker list as user: status %d", status)
	}
	status, env := doJSON(t, engine, http.MethodGet, "/references/workers", chiefToken, nil)
	if status != http.StatusOK || !env.IsSuccess {
		t.Fatalf("worker list as boss: status %d, env %+v", status, env)
	}

	status, env = doJSON(t, engine, http.MethodGet, "/references/fueltypes", aliceToken, nil)
	if status != http.StatusOK || !env.IsSuccess {
		t.Fatalf("fuel types: status %d, env %+v", status, env)
	}
}

func TestSettingsDefaultsOverHTTP(t *testing.T) {
	engine, _, users := newTestServer(t)
	seedAccount(t, users, "alice", "user")
	token := login(t, engine, "alice")

	status, env := doJSON(t, engine, http.MethodGet, "/settings", token, nil)
	if status != http.StatusOK {
		t.Fatalf("get settings: status %d", status)
	}
	var settings struct {
		DarkTheme         bool   `json:"darkTheme"`
		PushNotifications bool   `json:"pushNotifications"`
		Language          string `json:"language"`
	}
	if errDecode := json.Unmarshal(env.Data, &settings); errDecode != nil {
		t.Fatalf("decode settings: %v", errDecode)
	}
	if !settings.DarkTheme || !settings.PushNotifications || settings.Language != "ru" {
		t.Fatalf("expected defaults, got %+v", settings)
	}

	status, _ = doJSON(t, engine, http.MethodPut, "/settings", token, gin.H{
		"darkTheme":         false,
		"pushNotifications": true,
		"language":          "en",
	})
	if status != http.StatusOK {
		t.Fatalf("put settings: status %d", status)
	}
	status, env = doJSON(t, engine, http.MethodGet, "/settings", token, nil)
	if status != http.StatusOK {
		t.Fatalf("reload settings: status %d", status)
	}
	if errDecode := json.Unmarshal(env.Data, &settings); errDecode != nil {
		t.Fatalf("decode reloaded settings: %v", errDecode)
	}
	if settings.DarkTheme || settings.Language != "en" {
		t.Fatalf("expected saved settings, got %+v", settings)
	}
}
