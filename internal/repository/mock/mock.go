// Package mock is an in-memory stand-in for the Postgres repositories.
//
// It keeps the same relationships and returns the same error shapes
// (pgconn.PgError for constraint violations, sqlerr.NoRows for unknown
// targets) so service and handler tests exercise the real error mapping.
package mock

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/hr-manager/internal/model"
)

type specialistRow struct {
	model.Specialist
}

type applicantRow struct {
	model.Applicant
	seq int
}

// Store holds the shared state. Specialists, Applicants and Skills are views
// over it implementing the service repository interfaces.
type Store struct {
	mu sync.Mutex

	specialists map[string]*specialistRow
	applicants  map[string]*applicantRow
	skills      map[string]model.Skill
	audit       []model.AuditEvent
	seq         int

	// Err, when set, is returned by every call.
	Err error
	// Calls counts repository calls by method name.
	Calls map[string]int

	Specialists *SpecialistRepo
	Applicants  *ApplicantRepo
	Skills      *SkillRepo
	Pack        *PackRepo
}

func NewStore() *Store {
	s := &Store{
		specialists: map[string]*specialistRow{},
		applicants:  map[string]*applicantRow{},
		skills:      map[string]model.Skill{},
		Calls:       map[string]int{},
	}
	s.Specialists = &SpecialistRepo{s: s}
	s.Applicants = &ApplicantRepo{s: s}
	s.Skills = &SkillRepo{s: s}
	s.Pack = &PackRepo{s: s}
	return s
}

// begin locks the store and records the call. It returns Err; the caller
// must call end either way.
func (s *Store) begin(method string) error {
	s.mu.Lock()
	s.Calls[method]++
	return s.Err
}

func (s *Store) end() {
	s.mu.Unlock()
}

func (s *Store) next() int {
	s.seq++
	return s.seq
}

// CallCount returns how many times method was called.
func (s *Store) CallCount(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls[method]
}

// TotalCalls returns the number of repository calls of any kind.
func (s *Store) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.Calls {
		total += n
	}
	return total
}

// RecordAuditEvent implements job.AuditRecorder.
func (s *Store) RecordAuditEvent(_ context.Context, event model.AuditEvent) error {
	err := s.begin("RecordAuditEvent")
	defer s.end()
	if err != nil {
		return err
	}
	s.audit = append(s.audit, event)
	return nil
}

// AuditEvents returns a copy of the recorded audit events.
func (s *Store) AuditEvents() []model.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.audit)
}

func uniqueViolation(table string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint \"" + table + "_pkey\"",
		TableName:      table,
		ConstraintName: table + "_pkey",
	}
}

func foreignKeyViolation(table, column string) error {
	constraint := table + "_" + column + "_fkey"
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        "insert or update on table \"" + table + "\" violates foreign key constraint \"" + constraint + "\"",
		TableName:      table,
		ConstraintName: constraint,
	}
}

// applicantIDsOf lists the applicants bound to specialistID in bind order.
func (s *Store) applicantIDsOf(specialistID string) []string {
	var bound []*applicantRow
	for _, a := range s.applicants {
		if a.SpecialistID != nil && *a.SpecialistID == specialistID {
			bound = append(bound, a)
		}
	}
	sort.Slice(bound, func(i, j int) bool { return bound[i].seq < bound[j].seq })

	ids := make([]string, 0, len(bound))
	for _, a := range bound {
		ids = append(ids, a.ID)
	}
	return ids
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}
