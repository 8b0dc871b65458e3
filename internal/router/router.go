// Package router builds the Echo instance: it installs the middleware
// chain and maps every route to its handler.
package router

import (
	"github.com/deppfellow/hr-manager/internal/handler"
	"github.com/deppfellow/hr-manager/internal/middleware"
	"github.com/deppfellow/hr-manager/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Audit.Trail(),
	)

	registerSystemRoutes(router, s, h)
	registerRosterRoutes(router, h)

	if dir := s.Config.Server.StaticDir; dir != "" {
		router.Static("/", dir)
	}

	return router
}

func registerRosterRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/pack", h.Pack.GetPack())

	r.GET("/specialists", h.Specialist.ListSpecialists())
	r.POST("/specialists", h.Specialist.AddSpecialist())
	r.PATCH("/specialists/:specialistID", h.Specialist.UpdateSpecialist())
	r.DELETE("/specialists/:specialistID", h.Specialist.DeleteSpecialist())

	r.GET("/applicants", h.Applicant.ListApplicants())
	r.POST("/applicants", h.Applicant.AddApplicant())
	r.PATCH("/applicants/:applicantID", h.Applicant.UpdateApplicant())
	r.DELETE("/applicants/:applicantID", h.Applicant.DeleteApplicant())

	r.PATCH("/bind", h.Applicant.Bind())

	skills := r.Group("/skills")
	skills.GET("", h.Skill.ListSkills())
	skills.POST("", h.Skill.AddSkill())
	skills.DELETE("/:skillID", h.Skill.DeleteSkill())

	skills.PATCH("/specialist/", h.Specialist.AddSkill())
	skills.DELETE("/specialist/:specialistID", h.Specialist.ResetSkills())

	skills.PATCH("/applicant/", h.Applicant.AddSkill())
	skills.DELETE("/applicant/:applicantID", h.Applicant.ResetSkills())
}
