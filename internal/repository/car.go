package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/carpool/internal/model"
	"github.com/deppfellow/carpool/internal/server"
	"github.com/deppfellow/carpool/internal/store"
)

// CarRepository reads and writes the cars table.
type CarRepository struct {
	server *server.Server
}

func NewCarRepository(s *server.Server) *CarRepository {
	return &CarRepository{server: s}
}

// ListCars returns every car ordered by id.
func (r *CarRepository) ListCars(ctx context.Context) ([]model.CarRow, error) {
	raw, err := r.server.Store.Select(ctx, model.CarsTable, store.Query{
		Order: []store.Order{store.Asc("id")},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}

	return decodeRows[model.CarRow](model.CarsTable, raw)
}

// CreateCar inserts row and returns it with its assigned id.
func (r *CarRepository) CreateCar(ctx context.Context, row model.CarRow) (model.CarRow, error) {
	raw, err := r.server.Store.Insert(ctx, model.CarsTable, row)
	if err != nil {
		return model.CarRow{}, fmt.Errorf("failed to create car: %w", err)
	}

	return decodeRow[model.CarRow](model.CarsTable, raw)
}

func (r *CarRepository) DeleteCar(ctx context.Context, id int64) error {
	if err := r.server.Store.Delete(ctx, model.CarsTable, store.Eq("id", id)); err != nil {
		return fmt.Errorf("failed to delete car %d: %w", id, err)
	}
	return nil
}
