package repository

import (
	"github.com/deppfellow/hr-manager/internal/server"
)

// Repositories groups every repository built on the server's pool.
type Repositories struct {
	Specialists *SpecialistRepository
	Applicants  *ApplicantRepository
	Skills      *SkillRepository
	Pack        *PackRepository
	Audit       *AuditRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Specialists: NewSpecialistRepository(s),
		Applicants:  NewApplicantRepository(s),
		Skills:      NewSkillRepository(s),
		Pack:        NewPackRepository(s),
		Audit:       NewAuditRepository(s),
	}
}
