package service

import (
	"github.com/deppfellow/carpool/internal/middleware"
	"github.com/deppfellow/carpool/internal/model"
	"github.com/deppfellow/carpool/internal/repository"
	"github.com/deppfellow/carpool/internal/server"
	"github.com/labstack/echo/v4"
)

// CommuteService converts between commute requests, rows and API shapes.
type CommuteService struct {
	server      *server.Server
	commuteRepo *repository.CommuteRepository
}

func NewCommuteService(s *server.Server, commuteRepo *repository.CommuteRepository) *CommuteService {
	return &CommuteService{
		server:      s,
		commuteRepo: commuteRepo,
	}
}

// ListCommutes returns every commute in API shape, latest date first.
func (s *CommuteService) ListCommutes(c echo.Context) ([]model.Commute, error) {
	rows, err := s.commuteRepo.ListCommutes(c.Request().Context())
	if err != nil {
		return nil, err
	}

	commutes := make([]model.Commute, 0, len(rows))
	for _, row := range rows {
		commutes = append(commutes, row.ToAPI())
	}
	return commutes, nil
}

// CreateCommute stores the commute as given. Referenced cars and persons
// are not checked.
func (s *CommuteService) CreateCommute(c echo.Context, req *model.CreateCommuteRequest) (*model.Commute, error) {
	logger := middleware.GetLogger(c)

	row, err := s.commuteRepo.CreateCommute(c.Request().Context(), model.NewCommuteRow(req))
	if err != nil {
		logger.Error().Err(err).Msg("failed to create commute")
		return nil, err
	}

	logger.Info().
		Str("event", "commute_created").
		Int64("commute_id", row.ID).
		Str("date", row.Date).
		Int("passengers", len(row.SelectedPersons)).
		Msg("Commute created successfully")

	commute := row.ToAPI()
	return &commute, nil
}

func (s *CommuteService) DeleteCommute(c echo.Context, id int64) error {
	logger := middleware.GetLogger(c)

	if err := s.commuteRepo.DeleteCommute(c.Request().Context(), id); err != nil {
		logger.Error().Err(err).Int64("commute_id", id).Msg("failed to delete commute")
		return err
	}

	logger.Info().
		Str("event", "commute_deleted").
		Int64("commute_id", id).
		Msg("Commute deleted successfully")

	return nil
}
