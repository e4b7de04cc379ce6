package service

import (
	"github.com/deppfellow/carpool/internal/middleware"
	"github.com/deppfellow/carpool/internal/model"
	"github.com/deppfellow/carpool/internal/repository"
	"github.com/deppfellow/carpool/internal/server"
	"github.com/labstack/echo/v4"
)

type PersonService struct {
	server     *server.Server
	personRepo *repository.PersonRepository
}

func NewPersonService(s *server.Server, personRepo *repository.PersonRepository) *PersonService {
	return &PersonService{
		server:     s,
		personRepo: personRepo,
	}
}

// ListPersons returns persons as stored. Their columns already match the
// API shape, and columns beyond id and name are passed along.
func (s *PersonService) ListPersons(c echo.Context) ([]model.Person, error) {
	rows, err := s.personRepo.ListPersons(c.Request().Context())
	if err != nil {
		return nil, err
	}

	persons := make([]model.Person, 0, len(rows))
	for _, row := range rows {
		persons = append(persons, row.ToAPI())
	}
	return persons, nil
}

func (s *PersonService) CreatePerson(c echo.Context, req *model.CreatePersonRequest) (*model.Person, error) {
	logger := middleware.GetLogger(c)

	row, err := s.personRepo.CreatePerson(c.Request().Context(), model.NewPersonRow(req))
	if err != nil {
		logger.Error().Err(err).Msg("failed to create person")
		return nil, err
	}

	logger.Info().
		Str("event", "person_created").
		Int64("person_id", row.ID).
		Msg("Person created successfully")

	person := row.ToAPI()
	return &person, nil
}

func (s *PersonService) DeletePerson(c echo.Context, id int64) error {
	logger := middleware.GetLogger(c)

	if err := s.personRepo.DeletePerson(c.Request().Context(), id); err != nil {
		logger.Error().Err(err).Int64("person_id", id).Msg("failed to delete person")
		return err
	}

	logger.Info().
		Str("event", "person_deleted").
		Int64("person_id", id).
		Msg("Person deleted successfully")

	return nil
}
