package service

import (
	"github.com/deppfellow/hr-manager/internal/lib/job"
	"github.com/deppfellow/hr-manager/internal/repository"
	"github.com/deppfellow/hr-manager/internal/server"
)

type Services struct {
	Specialist *SpecialistService
	Applicant  *ApplicantService
	Skill      *SkillService
	Pack       *PackService
	Job        *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Specialist: NewSpecialistService(repos.Specialists),
		Applicant:  NewApplicantService(repos.Applicants),
		Skill:      NewSkillService(repos.Skills),
		Pack:       NewPackService(repos.Pack),
		Job:        s.Job,
	}
}
