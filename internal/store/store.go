// Package store defines the contract between the API and the relational
// table set holding cars, persons and commutes.
//
// A Store speaks in JSON rows with snake_case columns exactly as the
// backing tables define them. Reshaping rows for API clients is the job
// of the model package.
//
// Drivers live in sub-packages:
//   - postgrest: the hosted REST interface (Supabase / PostgREST)
//   - postgres: a direct pgx connection pool
//   - memstore: process-local tables for tests and demos
package store

import (
	"context"
	"encoding/json"
)

// Store is implemented by every table store driver.
//
// Each method performs exactly one round trip to the backing store.
// Failures are reported as *Error.
type Store interface {
	// Select returns every row of table matching q, in q's order.
	Select(ctx context.Context, table string, q Query) ([]json.RawMessage, error)

	// Insert writes a single row and returns it as stored, including
	// store-assigned columns such as id.
	Insert(ctx context.Context, table string, row any) (json.RawMessage, error)

	// Delete removes the rows matching every filter. Matching no row is
	// not an error. At least one filter is required.
	Delete(ctx context.Context, table string, filters ...Filter) error

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error

	// Close releases connections held by the driver.
	Close()
}

// Filter restricts a query to rows whose Column equals Value.
type Filter struct {
	Column string
	Value  any
}

// Order sorts query results by Column.
type Order struct {
	Column     string
	Descending bool
}

// Query describes a select: equality filters joined by AND, then ordering.
type Query struct {
	Filters []Filter
	Order   []Order
}

// Eq builds an equality filter.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

// Asc orders by column, smallest first.
func Asc(column string) Order {
	return Order{Column: column}
}

// Desc orders by column, largest first.
func Desc(column string) Order {
	return Order{Column: column, Descending: true}
}

// Direction returns "asc" or "desc".
func (o Order) Direction() string {
	if o.Descending {
		return "desc"
	}
	return "asc"
}
