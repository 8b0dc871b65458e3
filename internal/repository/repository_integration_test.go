package repository_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/deppfellow/hr-manager/internal/database"
	"github.com/deppfellow/hr-manager/internal/errs"
	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/repository"
	"github.com/deppfellow/hr-manager/internal/server"
	"github.com/deppfellow/hr-manager/internal/sqlerr"
)

// TestDatabaseURLEnv points the integration tests at a disposable database.
const TestDatabaseURLEnv = "HRMANAGER_TEST_DATABASE_URL"

func setupRepositories(t *testing.T) *repository.Repositories {
	t.Helper()

	dsn := os.Getenv(TestDatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping postgres integration test", TestDatabaseURLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := zerolog.Nop()
	if err := database.MigrateDSN(ctx, &logger, dsn); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, `TRUNCATE specialist_skills, applicant_skills, applicants, specialists, skills, audit_events RESTART IDENTITY`); err != nil {
		t.Fatalf("truncating: %v", err)
	}

	srv := &server.Server{
		Logger: &logger,
		DB:     &database.Database{Pool: pool},
	}
	return repository.NewRepositories(srv)
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var httpErr *errs.HTTPError
	if !errors.As(sqlerr.HandleError(err), &httpErr) || httpErr.Status != status {
		t.Fatalf("expected status %d for %v", status, err)
	}
}

func TestRepositories_Roster(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	mustNot := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	mustNot(repos.Specialists.AddSpecialist(ctx, &model.AddSpecialistRequest{SpecialistID: "p1", Name: "House", StartTime: "08:00:00", EndTime: "16:00:00"}))
	mustNot(repos.Specialists.AddSpecialist(ctx, &model.AddSpecialistRequest{SpecialistID: "p2", Name: "Wilson", StartTime: "09:00:00", EndTime: "17:00:00"}))
	mustNot(repos.Applicants.AddApplicant(ctx, &model.AddApplicantRequest{ApplicantID: "a1", Name: "Alice", ArrivalTime: "08:30:00"}))
	mustNot(repos.Applicants.AddApplicant(ctx, &model.AddApplicantRequest{ApplicantID: "a2", Name: "Bob", ArrivalTime: "08:45:00"}))
	mustNot(repos.Skills.AddSkill(ctx, &model.AddSkillRequest{SkillID: "s1", Name: "SQL"}))

	requireStatus(t, repos.Specialists.AddSpecialist(ctx, &model.AddSpecialistRequest{SpecialistID: "p1", Name: "Dup", StartTime: "08:00:00", EndTime: "16:00:00"}), http.StatusBadRequest)

	mustNot(repos.Applicants.BindToSpecialist(ctx, "a1", "p1"))
	mustNot(repos.Applicants.BindToSpecialist(ctx, "a2", "p1"))
	mustNot(repos.Applicants.BindToSpecialist(ctx, "a1", "p2"))
	requireStatus(t, repos.Applicants.BindToSpecialist(ctx, "a1", "ghost"), http.StatusBadRequest)
	requireStatus(t, repos.Applicants.BindToSpecialist(ctx, "ghost", "p1"), http.StatusNotFound)

	mustNot(repos.Specialists.AddSkill(ctx, "p1", "s1"))
	mustNot(repos.Specialists.AddSkill(ctx, "p1", "s1"))
	requireStatus(t, repos.Specialists.AddSkill(ctx, "p1", "ghost"), http.StatusBadRequest)
	mustNot(repos.Applicants.AddSkill(ctx, "a2", "s1"))

	specialists, err := repos.Specialists.ListSpecialists(ctx)
	mustNot(err)
	if len(specialists) != 2 || specialists[0].ID != "p1" {
		t.Fatalf("unexpected specialists %+v", specialists)
	}
	if !slices.Equal(specialists[0].Applicants, []string{"a2"}) || !slices.Equal(specialists[1].Applicants, []string{"a1"}) {
		t.Fatalf("unexpected bindings %v / %v", specialists[0].Applicants, specialists[1].Applicants)
	}
	if !slices.Equal(specialists[0].Skills, []string{"s1"}) {
		t.Fatalf("expected p1 skills [s1], got %v", specialists[0].Skills)
	}
	if specialists[0].StartTime != "08:00:00" {
		t.Fatalf("expected start_time 08:00:00, got %q", specialists[0].StartTime)
	}

	mustNot(repos.Skills.DeleteSkill(ctx, "s1"))
	mustNot(repos.Specialists.DeleteSpecialist(ctx, "p2"))
	requireStatus(t, repos.Specialists.DeleteSpecialist(ctx, "p2"), http.StatusNotFound)

	applicants, err := repos.Applicants.ListApplicants(ctx)
	mustNot(err)
	for _, a := range applicants {
		if len(a.Skills) != 0 {
			t.Fatalf("expected skill s1 to be gone from %s, got %v", a.ID, a.Skills)
		}
		if a.ID == "a1" && a.SpecialistID != nil {
			t.Fatalf("expected a1 to be unbound after deleting p2")
		}
	}

	mustNot(repos.Applicants.DeleteApplicant(ctx, "a2"))
	specialists, err = repos.Specialists.ListSpecialists(ctx)
	mustNot(err)
	if len(specialists[0].Applicants) != 0 || len(specialists[0].Skills) != 0 {
		t.Fatalf("expected p1 to be empty, got %+v", specialists[0])
	}
}

func TestRepositories_RecordAuditEvent(t *testing.T) {
	repos := setupRepositories(t)

	err := repos.Audit.RecordAuditEvent(context.Background(), model.AuditEvent{
		RequestID:  "req-1",
		Method:     http.MethodPost,
		Path:       "/skills",
		Status:     http.StatusOK,
		LatencyMs:  4,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("RecordAuditEvent: %v", err)
	}
}

func TestRepositories_UpdateAndResetSkills(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	mustNot := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	mustNot(repos.Specialists.AddSpecialist(ctx, &model.AddSpecialistRequest{SpecialistID: "p1", Name: "House", StartTime: "08:00:00", EndTime: "16:00:00"}))
	mustNot(repos.Applicants.AddApplicant(ctx, &model.AddApplicantRequest{ApplicantID: "a1", Name: "Alice", ArrivalTime: "08:30:00"}))
	mustNot(repos.Skills.AddSkill(ctx, &model.AddSkillRequest{SkillID: "s1", Name: "SQL"}))
	mustNot(repos.Skills.AddSkill(ctx, &model.AddSkillRequest{SkillID: "s2", Name: "Go"}))
	mustNot(repos.Specialists.AddSkill(ctx, "p1", "s1"))
	mustNot(repos.Specialists.AddSkill(ctx, "p1", "s2"))
	mustNot(repos.Applicants.AddSkill(ctx, "a1", "s2"))

	mustNot(repos.Specialists.UpdateSpecialist(ctx, &model.UpdateSpecialistRequest{SpecialistID: "p1", Name: "Cuddy", StartTime: "22:00:00", EndTime: "06:00:00"}))
	mustNot(repos.Applicants.UpdateApplicant(ctx, &model.UpdateApplicantRequest{ApplicantID: "a1", Name: "Alicia", ArrivalTime: "23:15:00"}))

	requireStatus(t, repos.Specialists.UpdateSpecialist(ctx, &model.UpdateSpecialistRequest{SpecialistID: "ghost", Name: "X", StartTime: "08:00:00", EndTime: "16:00:00"}), http.StatusNotFound)
	requireStatus(t, repos.Applicants.UpdateApplicant(ctx, &model.UpdateApplicantRequest{ApplicantID: "ghost", Name: "X", ArrivalTime: "08:00:00"}), http.StatusNotFound)

	specialists, err := repos.Specialists.ListSpecialists(ctx)
	mustNot(err)
	if len(specialists) != 1 {
		t.Fatalf("unexpected specialists %+v", specialists)
	}
	sp := specialists[0]
	if sp.Name != "Cuddy" || sp.StartTime != "22:00:00" || sp.EndTime != "06:00:00" {
		t.Fatalf("update not applied: %+v", sp)
	}
	if !slices.Equal(sp.Skills, []string{"s1", "s2"}) {
		t.Fatalf("update must keep skills, got %v", sp.Skills)
	}

	applicants, err := repos.Applicants.ListApplicants(ctx)
	mustNot(err)
	if len(applicants) != 1 || applicants[0].Name != "Alicia" || applicants[0].ArrivalTime != "23:15:00" {
		t.Fatalf("update not applied: %+v", applicants)
	}

	mustNot(repos.Specialists.ResetSkills(ctx, "p1"))
	mustNot(repos.Applicants.ResetSkills(ctx, "a1"))
	requireStatus(t, repos.Specialists.ResetSkills(ctx, "ghost"), http.StatusNotFound)
	requireStatus(t, repos.Applicants.ResetSkills(ctx, "ghost"), http.StatusNotFound)

	pack, err := repos.Pack.GetPack(ctx)
	mustNot(err)
	if len(pack.Specialists) != 1 || len(pack.Specialists[0].Skills) != 0 {
		t.Fatalf("expected p1 skills cleared, got %+v", pack.Specialists)
	}
	if len(pack.Applicants) != 1 || len(pack.Applicants[0].Skills) != 0 {
		t.Fatalf("expected a1 skills cleared, got %+v", pack.Applicants)
	}
	if len(pack.Skills) != 2 {
		t.Fatalf("reset must not delete skills, got %+v", pack.Skills)
	}
}

func TestRepositories_GetPackSeesOneSnapshot(t *testing.T) {
	repos := setupRepositories(t)
	ctx := context.Background()

	for _, id := range []string{"p1", "p2"} {
		if err := repos.Specialists.AddSpecialist(ctx, &model.AddSpecialistRequest{SpecialistID: id, Name: id, StartTime: "08:00:00", EndTime: "16:00:00"}); err != nil {
			t.Fatalf("AddSpecialist: %v", err)
		}
	}
	if err := repos.Applicants.AddApplicant(ctx, &model.AddApplicantRequest{ApplicantID: "a1", Name: "Alice", ArrivalTime: "08:30:00"}); err != nil {
		t.Fatalf("AddApplicant: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		for i := 0; i < 100; i++ {
			target := "p1"
			if i%2 == 1 {
				target = "p2"
			}
			if err := repos.Applicants.BindToSpecialist(ctx, "a1", target); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	for i := 0; i < 100; i++ {
		pack, err := repos.Pack.GetPack(ctx)
		if err != nil {
			t.Fatalf("GetPack: %v", err)
		}
		var boundTo string
		if a := pack.Applicants[0]; a.SpecialistID != nil {
			boundTo = *a.SpecialistID
		}
		for _, sp := range pack.Specialists {
			if slices.Contains(sp.Applicants, "a1") != (sp.ID == boundTo) {
				t.Fatalf("inconsistent pack: a1 bound to %q, %s lists %v", boundTo, sp.ID, sp.Applicants)
			}
		}
	}

	if err := <-done; err != nil {
		t.Fatalf("BindToSpecialist: %v", err)
	}
}
