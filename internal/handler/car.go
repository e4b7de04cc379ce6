package handler

import (
	"net/http"

	"github.com/deppfellow/carpool/internal/model"
	"github.com/deppfellow/carpool/internal/server"
	"github.com/deppfellow/carpool/internal/service"
	"github.com/labstack/echo/v4"
)

// CarHandler serves /api/cars.
//
// Cars are reshaped from the store's snake_case columns to camelCase.
// A store failure on any route is a 500 whose body is the store's message.
type CarHandler struct {
	Handler
	carService *service.CarService
}

// NewCarHandler builds the handler on top of carService.
func NewCarHandler(s *server.Server, carService *service.CarService) *CarHandler {
	return &CarHandler{
		Handler:    NewHandler(s),
		carService: carService,
	}
}

// ListCars handles GET /api/cars.
//
// Response: 200 with every car ordered by id, or [] when there are none.
func (h *CarHandler) ListCars() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.ListRequest) ([]model.Car, error) {
		return h.carService.ListCars(c)
	}, http.StatusOK)
}

// CreateCar handles POST /api/cars.
//
// Body: {name, ownerId, roundtripCost}. roundtripCost may be a number or a
// numeric string. Response: 200 with the stored car, or 400 listing the
// fields that failed validation.
func (h *CarHandler) CreateCar() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.CreateCarRequest) (*model.Car, error) {
		return h.carService.CreateCar(c, req)
	}, http.StatusOK)
}

// DeleteCar handles DELETE /api/cars/:id.
//
// Response: 200 {"success":true}, even when no car has the id. A
// non-numeric id is a 400.
func (h *CarHandler) DeleteCar() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.DeleteRequest) (*model.DeleteResponse, error) {
		if err := h.carService.DeleteCar(c, req.ID); err != nil {
			return nil, err
		}
		return &model.DeleteResponse{Success: true}, nil
	}, http.StatusOK)
}
