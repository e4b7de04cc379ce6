// Package repository reads and writes the carpool tables.
//
// Every method performs exactly one store call and decodes the returned
// JSON rows into model rows. Store failures are wrapped, never replaced,
// so the store message survives up to the error handler.
package repository

import (
	"encoding/json"
	"fmt"

	"github.com/deppfellow/carpool/internal/server"
)

type Repositories struct {
	Car     *CarRepository
	Person  *PersonRepository
	Commute *CommuteRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Car:     NewCarRepository(s),
		Person:  NewPersonRepository(s),
		Commute: NewCommuteRepository(s),
	}
}

// decodeRows unmarshals every row into T. An empty result decodes to an
// empty, non-nil slice.
func decodeRows[T any](table string, raw []json.RawMessage) ([]T, error) {
	rows := make([]T, 0, len(raw))
	for i, r := range raw {
		var row T
		if err := json.Unmarshal(r, &row); err != nil {
			return nil, fmt.Errorf("failed to decode %s row %d: %w", table, i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func decodeRow[T any](table string, raw json.RawMessage) (T, error) {
	var row T
	if err := json.Unmarshal(raw, &row); err != nil {
		return row, fmt.Errorf("failed to decode %s row: %w", table, err)
	}
	return row, nil
}
