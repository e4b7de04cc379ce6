// Package model holds the typed records exchanged with the table store
// and with API clients.
//
// Each resource has a row type mirroring the store's snake_case columns
// and an API type using camelCase field names. Rows are converted with
// ToAPI; create requests become rows with the New*Row constructors.
// Money columns are nullable decimals in the store and plain numbers, or
// null, in the API.
package model

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

// newValidator reports fields by their JSON names, so clients see
// "ownerId" rather than "OwnerID".
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// toFloat returns nil for a NULL column.
func toFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

// ListRequest is the empty payload of every list endpoint.
type ListRequest struct{}

func (r *ListRequest) Validate() error {
	return nil
}

// DeleteRequest carries the path id of a delete endpoint. A non-numeric
// id fails binding before reaching the store.
type DeleteRequest struct {
	ID int64 `param:"id" json:"-"`
}

func (r *DeleteRequest) Validate() error {
	return nil
}

// DeleteResponse acknowledges a delete, whether or not a row matched.
type DeleteResponse struct {
	Success bool `json:"success"`
}
