package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/carpool/internal/model"
	"github.com/deppfellow/carpool/internal/server"
	"github.com/deppfellow/carpool/internal/store"
)

type CommuteRepository struct {
	server *server.Server
}

func NewCommuteRepository(s *server.Server) *CommuteRepository {
	return &CommuteRepository{server: s}
}

// ListCommutes returns every commute, most recent date first.
func (r *CommuteRepository) ListCommutes(ctx context.Context) ([]model.CommuteRow, error) {
	raw, err := r.server.Store.Select(ctx, model.CommutesTable, store.Query{
		Order: []store.Order{store.Desc("date")},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list commutes: %w", err)
	}

	return decodeRows[model.CommuteRow](model.CommutesTable, raw)
}

// CreateCommute inserts row and returns it with its assigned id.
func (r *CommuteRepository) CreateCommute(ctx context.Context, row model.CommuteRow) (model.CommuteRow, error) {
	raw, err := r.server.Store.Insert(ctx, model.CommutesTable, row)
	if err != nil {
		return model.CommuteRow{}, fmt.Errorf("failed to create commute: %w", err)
	}

	return decodeRow[model.CommuteRow](model.CommutesTable, raw)
}

func (r *CommuteRepository) DeleteCommute(ctx context.Context, id int64) error {
	if err := r.server.Store.Delete(ctx, model.CommutesTable, store.Eq("id", id)); err != nil {
		return fmt.Errorf("failed to delete commute %d: %w", id, err)
	}
	return nil
}
