package router

import (
	"github.com/deppfellow/carpool/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerCarRoutes(api *echo.Group, h *handler.Handlers) {
	cars := api.Group("/cars")
	cars.GET("", h.Car.ListCars())
	cars.POST("", h.Car.CreateCar())
	cars.DELETE("/:id", h.Car.DeleteCar())
}

func registerPersonRoutes(api *echo.Group, h *handler.Handlers) {
	persons := api.Group("/persons")
	persons.GET("", h.Person.ListPersons())
	persons.POST("", h.Person.CreatePerson())
	persons.DELETE("/:id", h.Person.DeletePerson())
}

func registerCommuteRoutes(api *echo.Group, h *handler.Handlers) {
	commutes := api.Group("/commutes")
	commutes.GET("", h.Commute.ListCommutes())
	commutes.POST("", h.Commute.CreateCommute())
	commutes.DELETE("/:id", h.Commute.DeleteCommute())
}
