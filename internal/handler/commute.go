package handler

import (
	"net/http"

	"github.com/deppfellow/carpool/internal/model"
	"github.com/deppfellow/carpool/internal/server"
	"github.com/deppfellow/carpool/internal/service"
	"github.com/labstack/echo/v4"
)

// CommuteHandler serves /api/commutes.
type CommuteHandler struct {
	Handler
	commuteService *service.CommuteService
}

func NewCommuteHandler(s *server.Server, commuteService *service.CommuteService) *CommuteHandler {
	return &CommuteHandler{
		Handler:        NewHandler(s),
		commuteService: commuteService,
	}
}

// ListCommutes handles GET /api/commutes.
//
// Response: 200 with every commute, latest date first.
func (h *CommuteHandler) ListCommutes() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.ListRequest) ([]model.Commute, error) {
		return h.commuteService.ListCommutes(c)
	}, http.StatusOK)
}

// CreateCommute handles POST /api/commutes.
//
// Body: {date, tripType, selectedCars, selectedPersons, drivers,
// pricePerPerson}. date is YYYY-MM-DD and the id lists must be present,
// possibly empty. Response: 200 with the stored commute.
func (h *CommuteHandler) CreateCommute() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.CreateCommuteRequest) (*model.Commute, error) {
		return h.commuteService.CreateCommute(c, req)
	}, http.StatusOK)
}

// DeleteCommute handles DELETE /api/commutes/:id.
func (h *CommuteHandler) DeleteCommute() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.DeleteRequest) (*model.DeleteResponse, error) {
		if err := h.commuteService.DeleteCommute(c, req.ID); err != nil {
			return nil, err
		}
		return &model.DeleteResponse{Success: true}, nil
	}, http.StatusOK)
}
