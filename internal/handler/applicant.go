package handler

import (
	"net/http"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/server"
	"github.com/deppfellow/hr-manager/internal/service"
	"github.com/labstack/echo/v4"
)

type ApplicantHandler struct {
	Handler
	applicantService *service.ApplicantService
}

func NewApplicantHandler(s *server.Server, applicantService *service.ApplicantService) *ApplicantHandler {
	return &ApplicantHandler{
		Handler:          NewHandler(s),
		applicantService: applicantService,
	}
}

func (h *ApplicantHandler) ListApplicants() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.EmptyRequest) ([]model.Applicant, error) {
		return h.applicantService.ListApplicants(c.Request().Context())
	}, http.StatusOK, &model.EmptyRequest{}, "List applicants")
}

func (h *ApplicantHandler) AddApplicant() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.AddApplicantRequest) error {
		return h.applicantService.AddApplicant(c.Request().Context(), req)
	}, http.StatusOK, &model.AddApplicantRequest{}, "Add applicant")
}

func (h *ApplicantHandler) UpdateApplicant() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.UpdateApplicantRequest) error {
		return h.applicantService.UpdateApplicant(c.Request().Context(), req)
	}, http.StatusOK, &model.UpdateApplicantRequest{}, "Update applicant")
}

func (h *ApplicantHandler) DeleteApplicant() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.DeleteApplicantRequest) error {
		return h.applicantService.DeleteApplicant(c.Request().Context(), req)
	}, http.StatusOK, &model.DeleteApplicantRequest{}, "Delete applicant")
}

// Bind moves the applicant to the given specialist, replacing any previous binding.
func (h *ApplicantHandler) Bind() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.BindRequest) error {
		return h.applicantService.Bind(c.Request().Context(), req)
	}, http.StatusOK, &model.BindRequest{}, "Bind applicant to specialist")
}

func (h *ApplicantHandler) AddSkill() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.AttachSkillToApplicantRequest) error {
		return h.applicantService.AddSkill(c.Request().Context(), req)
	}, http.StatusOK, &model.AttachSkillToApplicantRequest{}, "Add skill to applicant")
}

func (h *ApplicantHandler) ResetSkills() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, req *model.ResetApplicantSkillsRequest) error {
		return h.applicantService.ResetSkills(c.Request().Context(), req)
	}, http.StatusOK, &model.ResetApplicantSkillsRequest{}, "Reset applicant skills")
}
