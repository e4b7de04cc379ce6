// Package service sits between handlers and repositories.
//
// Services turn validated requests into store rows, call exactly one
// repository method and reshape the stored rows for API clients.
package service

import (
	"github.com/deppfellow/carpool/internal/repository"
	"github.com/deppfellow/carpool/internal/server"
)

type Services struct {
	Car     *CarService
	Person  *PersonService
	Commute *CommuteService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Car:     NewCarService(s, repos.Car),
		Person:  NewPersonService(s, repos.Person),
		Commute: NewCommuteService(s, repos.Commute),
	}, nil
}
