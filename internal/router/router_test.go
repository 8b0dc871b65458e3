package router_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/deppfellow/hr-manager/internal/config"
	"github.com/deppfellow/hr-manager/internal/errs"
	"github.com/deppfellow/hr-manager/internal/handler"
	"github.com/deppfellow/hr-manager/internal/lib/job"
	"github.com/deppfellow/hr-manager/internal/logger"
	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/repository/mock"
	"github.com/deppfellow/hr-manager/internal/router"
	"github.com/deppfellow/hr-manager/internal/server"
	"github.com/deppfellow/hr-manager/internal/service"
)

type testApp struct {
	t     *testing.T
	store *mock.Store
	e     *echo.Echo
}

func newTestApp(t *testing.T, configure ...func(*config.Config)) *testApp {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Database.User = "hr"
	cfg.Database.Name = "hr_manager"
	cfg.Server.StaticDir = ""
	cfg.Server.DocsDir = filepath.Join("..", "..", "static")
	for _, fn := range configure {
		fn(cfg)
	}
	cfg.Observability.Environment = cfg.Primary.Env

	log := zerolog.Nop()
	srv := &server.Server{
		Config:        cfg,
		Logger:        &log,
		LoggerService: &logger.LoggerService{},
		Job:           job.NewJobService(&log, cfg),
	}

	store := mock.NewStore()
	services := &service.Services{
		Specialist: service.NewSpecialistService(store.Specialists),
		Applicant:  service.NewApplicantService(store.Applicants),
		Skill:      service.NewSkillService(store.Skills),
		Pack:       service.NewPackService(store.Pack),
		Job:        srv.Job,
	}

	return &testApp{
		t:     t,
		store: store,
		e:     router.NewRouter(srv, handler.NewHandlers(srv, services)),
	}
}

func (a *testApp) do(method, path, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) mustDo(method, path, body string) {
	a.t.Helper()
	rec := a.do(method, path, body)
	if rec.Code != http.StatusOK {
		a.t.Fatalf("%s %s: expected 200, got %d: %s", method, path, rec.Code, rec.Body.String())
	}
	if rec.Body.Len() != 0 {
		a.t.Fatalf("%s %s: expected an empty body, got %q", method, path, rec.Body.String())
	}
}

func (a *testApp) pack() model.Pack {
	a.t.Helper()
	rec := a.do(http.MethodGet, "/pack", "")
	if rec.Code != http.StatusOK {
		a.t.Fatalf("GET /pack: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var pack model.Pack
	if err := json.Unmarshal(rec.Body.Bytes(), &pack); err != nil {
		a.t.Fatalf("decoding pack: %v", err)
	}
	return pack
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.ErrorResponse {
	t.Helper()
	var resp errs.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error envelope %q: %v", rec.Body.String(), err)
	}
	if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil {
		t.Fatalf("timestamp %q is not RFC3339: %v", resp.Timestamp, err)
	}
	if resp.StatusCode != rec.Code {
		t.Fatalf("envelope statusCode %d does not match response %d", resp.StatusCode, rec.Code)
	}
	return resp
}

func TestPack_AttachSkillShowsInSpecialist(t *testing.T) {
	app := newTestApp(t)

	app.mustDo(http.MethodPost, "/specialists", `{"specialistID":"p1","name":"Dr. House"}`)
	app.mustDo(http.MethodPost, "/skills", `{"skillID":"s1","name":"SQL"}`)
	app.mustDo(http.MethodPatch, "/skills/specialist/", `{"skillID":"s1","specialistID":"p1"}`)

	pack := app.pack()
	if len(pack.Specialists) != 1 {
		t.Fatalf("expected one specialist, got %d", len(pack.Specialists))
	}
	if got := pack.Specialists[0].Skills; !slices.Equal(got, []string{"s1"}) {
		t.Fatalf("expected p1 skills [s1], got %v", got)
	}
}

func TestPack_PublicFieldNames(t *testing.T) {
	app := newTestApp(t)

	app.mustDo(http.MethodPost, "/specialists", `{"specialistID":"p1","name":"P","start_time":"08:00","end_time":"16:00"}`)
	app.mustDo(http.MethodPost, "/applicants", `{"applicantID":"a1","name":"A","arrival_time":"09:15"}`)

	rec := app.do(http.MethodGet, "/pack", "")
	var raw map[string][]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decoding pack: %v", err)
	}

	for _, key := range []string{"specialistID", "name", "start_time", "end_time", "applicants", "skills"} {
		if _, ok := raw["specialists"][0][key]; !ok {
			t.Errorf("specialist is missing %q", key)
		}
	}
	for _, key := range []string{"applicantID", "name", "arrival_time", "specialistID", "skills"} {
		if _, ok := raw["applicants"][0][key]; !ok {
			t.Errorf("applicant is missing %q", key)
		}
	}
	if raw["specialists"][0]["start_time"] != "08:00:00" {
		t.Errorf("expected normalized start_time, got %v", raw["specialists"][0]["start_time"])
	}
	if raw["applicants"][0]["specialistID"] != nil {
		t.Errorf("expected specialistID null for an unbound applicant")
	}
	if _, ok := raw["skills"]; !ok {
		t.Errorf("pack is missing skills")
	}
}

func TestDeleteSpecialist_ApplicantBecomesUnbound(t *testing.T) {
	app := newTestApp(t)

	app.mustDo(http.MethodPost, "/specialists", `{"specialistID":"p1","name":"P"}`)
	app.mustDo(http.MethodPost, "/applicants", `{"applicantID":"a1","name":"A"}`)
	app.mustDo(http.MethodPatch, "/bind", `{"applicantID":"a1","specialistID":"p1"}`)

	if got := app.pack().Applicants[0].SpecialistID; got == nil || *got != "p1" {
		t.Fatalf("expected a1 bound to p1")
	}

	app.mustDo(http.MethodDelete, "/specialists/p1", "")

	pack := app.pack()
	if len(pack.Specialists) != 0 {
		t.Fatalf("expected specialist to be removed")
	}
	if pack.Applicants[0].SpecialistID != nil {
		t.Fatalf("expected a1.specialistID to be null, got %q", *pack.Applicants[0].SpecialistID)
	}
}

func TestBind_Rebind(t *testing.T) {
	app := newTestApp(t)

	app.mustDo(http.MethodPost, "/specialists", `{"specialistID":"p1","name":"P1"}`)
	app.mustDo(http.MethodPost, "/specialists", `{"specialistID":"p2","name":"P2"}`)
	app.mustDo(http.MethodPost, "/applicants", `{"applicantID":"a1","name":"A"}`)
	app.mustDo(http.MethodPatch, "/bind", `{"applicantID":"a1","specialistID":"p1"}`)
	app.mustDo(http.MethodPatch, "/bind", `{"applicantID":"a1","specialistID":"p2"}`)

	for _, sp := range app.pack().Specialists {
		switch sp.ID {
		case "p1":
			if len(sp.Applicants) != 0 {
				t.Fatalf("p1 still lists %v", sp.Applicants)
			}
		case "p2":
			if !slices.Equal(sp.Applicants, []string{"a1"}) {
				t.Fatalf("expected p2 applicants [a1], got %v", sp.Applicants)
			}
		}
	}
}

func TestSkillsLifecycle(t *testing.T) {
	app := newTestApp(t)

	app.mustDo(http.MethodPost, "/applicants", `{"applicantID":"a1","name":"A"}`)
	app.mustDo(http.MethodPost, "/skills", `{"skillID":"s1","name":"SQL"}`)
	app.mustDo(http.MethodPost, "/skills", `{"skillID":"s2","name":"Go"}`)
	app.mustDo(http.MethodPatch, "/skills/applicant/", `{"skillID":"s1","applicantID":"a1"}`)
	app.mustDo(http.MethodPatch, "/skills/applicant/", `{"skillID":"s1","applicantID":"a1"}`)
	app.mustDo(http.MethodPatch, "/skills/applicant/", `{"skillID":"s2","applicantID":"a1"}`)

	if got := app.pack().Applicants[0].Skills; !slices.Equal(got, []string{"s1", "s2"}) {
		t.Fatalf("expected [s1 s2], got %v", got)
	}

	app.mustDo(http.MethodDelete, "/skills/s1", "")
	if got := app.pack().Applicants[0].Skills; !slices.Equal(got, []string{"s2"}) {
		t.Fatalf("expected [s2] after deleting s1, got %v", got)
	}

	app.mustDo(http.MethodDelete, "/skills/applicant/a1", "")
	if got := app.pack().Applicants[0].Skills; len(got) != 0 {
		t.Fatalf("expected no skills after reset, got %v", got)
	}

	rec := app.do(http.MethodGet, "/skills", "")
	var skills []model.Skill
	if err := json.Unmarshal(rec.Body.Bytes(), &skills); err != nil {
		t.Fatalf("decoding skills: %v", err)
	}
	if len(skills) != 1 || skills[0].ID != "s2" {
		t.Fatalf("expected catalogue [s2], got %+v", skills)
	}
}

func TestUpdateRoutes(t *testing.T) {
	app := newTestApp(t)

	app.mustDo(http.MethodPost, "/specialists", `{"specialistID":"p1","name":"P"}`)
	app.mustDo(http.MethodPost, "/applicants", `{"applicantID":"a1","name":"A"}`)
	app.mustDo(http.MethodPatch, "/specialists/p1", `{"name":"Q","start_time":"07:00","end_time":"15:00"}`)
	app.mustDo(http.MethodPatch, "/applicants/a1", `{"name":"B","arrival_time":"10:00:00"}`)

	pack := app.pack()
	if sp := pack.Specialists[0]; sp.Name != "Q" || sp.StartTime != "07:00:00" || sp.EndTime != "15:00:00" {
		t.Fatalf("unexpected specialist %+v", sp)
	}
	if a := pack.Applicants[0]; a.Name != "B" || a.ArrivalTime != "10:00:00" {
		t.Fatalf("unexpected applicant %+v", a)
	}
}

func TestValidationError_Envelope(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/specialists", `{"specialistID":"p1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	resp := decodeError(t, rec)
	if resp.Message != "Add specialist error: Validation failed: name is required" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Field != "name" {
		t.Fatalf("unexpected field errors %+v", resp.Errors)
	}
	if app.store.CallCount("AddSpecialist") != 0 {
		t.Fatalf("no row may be written for an invalid request")
	}
}

func TestNotFound_Envelope(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodDelete, "/applicants/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Message != "Delete applicant error: Applicant not found" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestDuplicateAndMissingReference(t *testing.T) {
	app := newTestApp(t)

	app.mustDo(http.MethodPost, "/specialists", `{"specialistID":"p1","name":"P"}`)

	rec := app.do(http.MethodPost, "/specialists", `{"specialistID":"p1","name":"P"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a duplicate, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != "SPECIALIST_ALREADY_EXISTS" {
		t.Fatalf("unexpected code %q", resp.Code)
	}

	rec = app.do(http.MethodPatch, "/skills/specialist/", `{"skillID":"nope","specialistID":"p1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown skill, got %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Code != "SKILL_NOT_FOUND" || resp.Message != "Add skill to specialist error: The referenced skill does not exist" {
		t.Fatalf("unexpected envelope %+v", resp)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Field != "skillID" {
		t.Fatalf("expected a skillID field error, got %+v", resp.Errors)
	}

	app.mustDo(http.MethodPost, "/applicants", `{"applicantID":"a1","name":"Ann"}`)
	rec = app.do(http.MethodPatch, "/bind", `{"applicantID":"a1","specialistID":"nope"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown specialist, got %d", rec.Code)
	}
	resp = decodeError(t, rec)
	if resp.Code != "SPECIALIST_NOT_FOUND" || len(resp.Errors) != 1 || resp.Errors[0].Field != "specialistID" {
		t.Fatalf("unexpected envelope %+v", resp)
	}
}

func TestInternalError_CauseHiddenInProduction(t *testing.T) {
	dev := newTestApp(t)
	dev.store.Err = errors.New("connection refused")

	rec := dev.do(http.MethodGet, "/pack", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Message != "Getting pack error: connection refused" {
		t.Fatalf("expected the cause outside production, got %q", resp.Message)
	}

	prod := newTestApp(t, func(cfg *config.Config) { cfg.Primary.Env = "production" })
	prod.store.Err = errors.New("connection refused")

	rec = prod.do(http.MethodGet, "/pack", "")
	if resp := decodeError(t, rec); resp.Message != "Getting pack error: Internal Server Error" {
		t.Fatalf("expected a generic message in production, got %q", resp.Message)
	}
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/nowhere", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Message != "Route not found" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestCORSAndRequestID(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/skills", nil)
	req.Header.Set(echo.HeaderOrigin, "http://frontend.example")
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)

	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "*" {
		t.Fatalf("expected Access-Control-Allow-Origin *, got %q", got)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("expected the incoming request id to be echoed, got %q", got)
	}

	rec = app.do(http.MethodGet, "/skills", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a generated request id")
	}

	preflight := httptest.NewRequest(http.MethodOptions, "/bind", nil)
	preflight.Header.Set(echo.HeaderOrigin, "http://frontend.example")
	preflight.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPatch)
	rec = httptest.NewRecorder()
	app.e.ServeHTTP(rec, preflight)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowMethods); !strings.Contains(got, http.MethodPatch) {
		t.Fatalf("expected PATCH to be allowed, got %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) {
		cfg.RateLimit.Requests = 2
		cfg.RateLimit.Window = time.Minute
	})

	for i := 0; i < 2; i++ {
		if rec := app.do(http.MethodGet, "/skills", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := app.do(http.MethodGet, "/skills", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("expected Retry-After 60, got %q", got)
	}
	resp := decodeError(t, rec)
	if resp.Action == nil || resp.Action.Type != errs.ActionTypeRetry {
		t.Fatalf("expected a retry action, got %+v", resp.Action)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) {
		cfg.RateLimit.Enabled = false
		cfg.RateLimit.Requests = 1
	})

	for i := 0; i < 5; i++ {
		if rec := app.do(http.MethodGet, "/skills", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}

func TestStatus_ReportsMissingDatabase(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/status", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a database, got %d", rec.Code)
	}

	var resp handler.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if resp.Status != "unhealthy" || resp.Checks["database"].Status != "unhealthy" {
		t.Fatalf("unexpected health response %+v", resp)
	}
}

func TestStatus_NoChecksConfigured(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) {
		cfg.Observability.HealthChecks.Checks = nil
	})

	rec := app.do(http.MethodGet, "/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestDocs(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/docs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/static/openapi.json") {
		t.Fatalf("docs page does not load the OpenAPI document")
	}

	rec = app.do(http.MethodGet, "/static/openapi.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected openapi.json to be served, got %d", rec.Code)
	}
}

func TestMutationsAreAudited(t *testing.T) {
	app := newTestApp(t)

	app.mustDo(http.MethodPost, "/skills", `{"skillID":"s1","name":"SQL"}`)

	// Without Redis the audit trail is only logged; the store sees no events.
	if got := len(app.store.AuditEvents()); got != 0 {
		t.Fatalf("expected no queued audit events without redis, got %d", got)
	}
}

func TestIdentifiersWithReservedCharacters(t *testing.T) {
	app := newTestApp(t)

	app.mustDo(http.MethodPost, "/specialists", `{"specialistID":"team/a","name":"Dr. House"}`)
	app.mustDo(http.MethodPost, "/applicants", `{"applicantID":"a/1","name":"Ann"}`)
	app.mustDo(http.MethodPost, "/skills", `{"skillID":"c/c++","name":"C"}`)
	app.mustDo(http.MethodPatch, "/bind", `{"applicantID":"a/1","specialistID":"team/a"}`)
	app.mustDo(http.MethodPatch, "/skills/specialist/", `{"skillID":"c/c++","specialistID":"team/a"}`)
	app.mustDo(http.MethodPatch, "/skills/applicant/", `{"skillID":"c/c++","applicantID":"a/1"}`)

	app.mustDo(http.MethodPatch, "/specialists/team%2Fa", `{"name":"Dr. Wilson","start_time":"08:00","end_time":"16:00"}`)
	app.mustDo(http.MethodPatch, "/applicants/a%2F1", `{"name":"Anna","arrival_time":"09:00"}`)
	app.mustDo(http.MethodDelete, "/skills/specialist/team%2Fa", "")
	app.mustDo(http.MethodDelete, "/skills/applicant/a%2F1", "")

	pack := app.pack()
	if len(pack.Specialists) != 1 || pack.Specialists[0].Name != "Dr. Wilson" || len(pack.Specialists[0].Skills) != 0 {
		t.Fatalf("unexpected specialists %+v", pack.Specialists)
	}
	if len(pack.Applicants) != 1 || pack.Applicants[0].Name != "Anna" || len(pack.Applicants[0].Skills) != 0 {
		t.Fatalf("unexpected applicants %+v", pack.Applicants)
	}

	app.mustDo(http.MethodDelete, "/specialists/team%2Fa", "")
	app.mustDo(http.MethodDelete, "/applicants/a%2F1", "")
	app.mustDo(http.MethodDelete, "/skills/c%2Fc++", "")

	pack = app.pack()
	if len(pack.Specialists) != 0 || len(pack.Applicants) != 0 || len(pack.Skills) != 0 {
		t.Fatalf("expected an empty roster, got %+v", pack)
	}
}
