package model

import "github.com/shopspring/decimal"

// CarsTable is the store table holding cars.
const CarsTable = "cars"

// CarRow is a row of the cars table.
type CarRow struct {
	ID            int64               `json:"id,omitempty"`
	Name          string              `json:"name"`
	OwnerID       int64               `json:"owner_id"`
	RoundtripCost decimal.NullDecimal `json:"roundtrip_cost"`
}

// Car is the API shape of a car.
type Car struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	OwnerID       int64    `json:"ownerId"`
	RoundtripCost *float64 `json:"roundtripCost"`
}

// ToAPI reshapes the row for clients.
func (r CarRow) ToAPI() Car {
	return Car{
		ID:            r.ID,
		Name:          r.Name,
		OwnerID:       r.OwnerID,
		RoundtripCost: toFloat(r.RoundtripCost),
	}
}

// CreateCarRequest is the body of POST /api/cars.
//
// roundtripCost accepts a JSON number or a numeric string ("12.50").
type CreateCarRequest struct {
	Name          string           `json:"name" validate:"required"`
	OwnerID       *int64           `json:"ownerId" validate:"required"`
	RoundtripCost *decimal.Decimal `json:"roundtripCost" validate:"required"`
}

func (r *CreateCarRequest) Validate() error {
	return validate.Struct(r)
}

// NewCarRow converts a validated request into the row to insert.
func NewCarRow(req *CreateCarRequest) CarRow {
	return CarRow{
		Name:          req.Name,
		OwnerID:       *req.OwnerID,
		RoundtripCost: decimal.NewNullDecimal(*req.RoundtripCost),
	}
}
