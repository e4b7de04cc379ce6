package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/carpool/internal/model"
	"github.com/deppfellow/carpool/internal/server"
	"github.com/deppfellow/carpool/internal/store"
)

type PersonRepository struct {
	server *server.Server
}

func NewPersonRepository(s *server.Server) *PersonRepository {
	return &PersonRepository{server: s}
}

// ListPersons returns every person ordered by id.
func (r *PersonRepository) ListPersons(ctx context.Context) ([]model.PersonRow, error) {
	raw, err := r.server.Store.Select(ctx, model.PersonsTable, store.Query{
		Order: []store.Order{store.Asc("id")},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}

	return decodeRows[model.PersonRow](model.PersonsTable, raw)
}

// CreatePerson inserts row and returns it with its assigned id.
func (r *PersonRepository) CreatePerson(ctx context.Context, row model.PersonRow) (model.PersonRow, error) {
	raw, err := r.server.Store.Insert(ctx, model.PersonsTable, row)
	if err != nil {
		return model.PersonRow{}, fmt.Errorf("failed to create person: %w", err)
	}

	return decodeRow[model.PersonRow](model.PersonsTable, raw)
}

func (r *PersonRepository) DeletePerson(ctx context.Context, id int64) error {
	if err := r.server.Store.Delete(ctx, model.PersonsTable, store.Eq("id", id)); err != nil {
		return fmt.Errorf("failed to delete person %d: %w", id, err)
	}
	return nil
}
