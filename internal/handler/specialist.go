package handler

import (
	"net/http"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/server"
	"github.com/deppfellow/hr-manager/internal/service"
	"github.com/labstack/echo/v4"
)

type SpecialistHandler struct {
	Handler
	specialistService *service.SpecialistService
}

func NewSpecialistHandler(s *server.Server, specialistService *service.SpecialistService) *SpecialistHandler {
	return &SpecialistHandler{
		Handler:           NewHandler(s),
		specialistService: specialistService,
	}
}

func (h *SpecialistHandler) ListSpecialists() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.EmptyRequest) ([]model.Specialist, error) {
		return h.specialistService.ListSpecialists(c.Request().Context())
	}, http.StatusOK, &model.EmptyRequest{}, "List specialists")
}

func (h *SpecialistHandler) AddSpecialist() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.AddSpecialistRequest) error {
		return h.specialistService.AddSpecialist(c.Request().Context(), req)
	}, http.StatusOK, &model.AddSpecialistRequest{}, "Add specialist")
}

func (h *SpecialistHandler) UpdateSpecialist() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.UpdateSpecialistRequest) error {
		return h.specialistService.UpdateSpecialist(c.Request().Context(), req)
	}, http.StatusOK, &model.UpdateSpecialistRequest{}, "Update specialist")
}

// DeleteSpecialist removes the specialist and leaves its applicants unbound.
func (h *SpecialistHandler) DeleteSpecialist() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.DeleteSpecialistRequest) error {
		return h.specialistService.DeleteSpecialist(c.Request().Context(), req)
	}, http.StatusOK, &model.DeleteSpecialistRequest{}, "Delete specialist")
}

func (h *SpecialistHandler) AddSkill() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.AttachSkillToSpecialistRequest) error {
		return h.specialistService.AddSkill(c.Request().Context(), req)
	}, http.StatusOK, &model.AttachSkillToSpecialistRequest{}, "Add skill to specialist")
}

func (h *SpecialistHandler) ResetSkills() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.ResetSpecialistSkillsRequest) error {
		return h.specialistService.ResetSkills(c.Request().Context(), req)
	}, http.StatusOK, &model.ResetSpecialistSkillsRequest{}, "Reset specialist skills")
}
