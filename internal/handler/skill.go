package handler

import (
	"net/http"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/server"
	"github.com/deppfellow/hr-manager/internal/service"
	"github.com/labstack/echo/v4"
)

type SkillHandler struct {
	Handler
	skillService *service.SkillService
}

func NewSkillHandler(s *server.Server, skillService *service.SkillService) *SkillHandler {
	return &SkillHandler{
		Handler:      NewHandler(s),
		skillService: skillService,
	}
}

func (h *SkillHandler) ListSkills() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.EmptyRequest) ([]model.Skill, error) {
		return h.skillService.ListSkills(c.Request().Context())
	}, http.StatusOK, &model.EmptyRequest{}, "List skills")
}

func (h *SkillHandler) AddSkill() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.AddSkillRequest) error {
		return h.skillService.AddSkill(c.Request().Context(), req)
	}, http.StatusOK, &model.AddSkillRequest{}, "Add skill")
}

// DeleteSkill removes the skill from the catalogue and from every holder.
func (h *SkillHandler) DeleteSkill() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.DeleteSkillRequest) error {
		return h.skillService.DeleteSkill(c.Request().Context(), req)
	}, http.StatusOK, &model.DeleteSkillRequest{}, "Delete skill")
}
