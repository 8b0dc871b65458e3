package handler

import (
	"github.com/deppfellow/hr-manager/internal/server"
	"github.com/deppfellow/hr-manager/internal/service"
)

// Handlers groups every HTTP handler so the router takes a single value.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Pack       *PackHandler
	Specialist *SpecialistHandler
	Applicant  *ApplicantHandler
	Skill      *SkillHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Pack:       NewPackHandler(s, services.Pack),
		Specialist: NewSpecialistHandler(s, services.Specialist),
		Applicant:  NewApplicantHandler(s, services.Applicant),
		Skill:      NewSkillHandler(s, services.Skill),
	}
}
