package handler

import (
	"net/http"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/server"
	"github.com/deppfellow/hr-manager/internal/service"
	"github.com/labstack/echo/v4"
)

type PackHandler struct {
	Handler
	packService *service.PackService
}

func NewPackHandler(s *server.Server, packService *service.PackService) *PackHandler {
	return &PackHandler{
		Handler:     NewHandler(s),
		packService: packService,
	}
}

// GetPack returns every specialist, applicant and skill in one document.
func (h *PackHandler) GetPack() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.EmptyRequest) (*model.Pack, error) {
		return h.packService.GetPack(c.Request().Context())
	}, http.StatusOK, &model.EmptyRequest{}, "Getting pack")
}
