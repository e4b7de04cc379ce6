package service

import (
	"github.com/deppfellow/carpool/internal/middleware"
	"github.com/deppfellow/carpool/internal/model"
	"github.com/deppfellow/carpool/internal/repository"
	"github.com/deppfellow/carpool/internal/server"
	"github.com/labstack/echo/v4"
)

// CarService converts between car requests, rows and API shapes.
type CarService struct {
	server  *server.Server
	carRepo *repository.CarRepository
}

func NewCarService(s *server.Server, carRepo *repository.CarRepository) *CarService {
	return &CarService{
		server:  s,
		carRepo: carRepo,
	}
}

// ListCars returns every car in API shape.
func (s *CarService) ListCars(c echo.Context) ([]model.Car, error) {
	rows, err := s.carRepo.ListCars(c.Request().Context())
	if err != nil {
		return nil, err
	}

	cars := make([]model.Car, 0, len(rows))
	for _, row := range rows {
		cars = append(cars, row.ToAPI())
	}
	return cars, nil
}

// CreateCar stores the car and logs a car_created event.
func (s *CarService) CreateCar(c echo.Context, req *model.CreateCarRequest) (*model.Car, error) {
	logger := middleware.GetLogger(c)

	row, err := s.carRepo.CreateCar(c.Request().Context(), model.NewCarRow(req))
	if err != nil {
		logger.Error().Err(err).Msg("failed to create car")
		return nil, err
	}

	logger.Info().
		Str("event", "car_created").
		Int64("car_id", row.ID).
		Int64("owner_id", row.OwnerID).
		Msg("Car created successfully")

	car := row.ToAPI()
	return &car, nil
}

// DeleteCar removes the car with id, if any, and logs car_deleted.
func (s *CarService) DeleteCar(c echo.Context, id int64) error {
	logger := middleware.GetLogger(c)

	if err := s.carRepo.DeleteCar(c.Request().Context(), id); err != nil {
		logger.Error().Err(err).Int64("car_id", id).Msg("failed to delete car")
		return err
	}

	logger.Info().
		Str("event", "car_deleted").
		Int64("car_id", id).
		Msg("Car deleted successfully")

	return nil
}
