package handler

import (
	"github.com/deppfellow/carpool/internal/server"
	"github.com/deppfellow/carpool/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Car     *CarHandler
	Person  *PersonHandler
	Commute *CommuteHandler
}

// NewHandlers wires each handler to its service.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Car:     NewCarHandler(s, services.Car),
		Person:  NewPersonHandler(s, services.Person),
		Commute: NewCommuteHandler(s, services.Commute),
	}
}
