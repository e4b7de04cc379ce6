package handler

import (
	"net/http"

	"github.com/deppfellow/carpool/internal/model"
	"github.com/deppfellow/carpool/internal/server"
	"github.com/deppfellow/carpool/internal/service"
	"github.com/labstack/echo/v4"
)

// PersonHandler serves /api/persons. Person rows are returned as stored.
type PersonHandler struct {
	Handler
	personService *service.PersonService
}

// NewPersonHandler builds the handler on top of personService.
func NewPersonHandler(s *server.Server, personService *service.PersonService) *PersonHandler {
	return &PersonHandler{
		Handler:       NewHandler(s),
		personService: personService,
	}
}

// ListPersons handles GET /api/persons, ordered by id.
func (h *PersonHandler) ListPersons() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.ListRequest) ([]model.Person, error) {
		return h.personService.ListPersons(c)
	}, http.StatusOK)
}

// CreatePerson handles POST /api/persons with body {name}.
func (h *PersonHandler) CreatePerson() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.CreatePersonRequest) (*model.Person, error) {
		return h.personService.CreatePerson(c, req)
	}, http.StatusOK)
}

// DeletePerson handles DELETE /api/persons/:id and always acknowledges.
func (h *PersonHandler) DeletePerson() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.DeleteRequest) (*model.DeleteResponse, error) {
		if err := h.personService.DeletePerson(c, req.ID); err != nil {
			return nil, err
		}
		return &model.DeleteResponse{Success: true}, nil
	}, http.StatusOK)
}
