package model

import "github.com/shopspring/decimal"

// CommutesTable is the store table holding commutes.
const CommutesTable = "commutes"

// DateLayout is the calendar date format of the commutes.date column.
const DateLayout = "2006-01-02"

// CommuteRow is a row of the commutes table.
//
// The id lists reference cars and persons but nothing enforces that they
// exist.
type CommuteRow struct {
	ID              int64               `json:"id,omitempty"`
	Date            string              `json:"date"`
	TripType        string              `json:"trip_type"`
	SelectedCars    []int64             `json:"selected_cars"`
	SelectedPersons []int64             `json:"selected_persons"`
	Drivers         []int64             `json:"drivers"`
	PricePerPerson  decimal.NullDecimal `json:"price_per_person"`
}

// Commute is the API shape of a commute.
type Commute struct {
	ID              int64    `json:"id"`
	Date            string   `json:"date"`
	TripType        string   `json:"tripType"`
	SelectedCars    []int64  `json:"selectedCars"`
	SelectedPersons []int64  `json:"selectedPersons"`
	Drivers         []int64  `json:"drivers"`
	PricePerPerson  *float64 `json:"pricePerPerson"`
}

func (r CommuteRow) ToAPI() Commute {
	return Commute{
		ID:              r.ID,
		Date:            r.Date,
		TripType:        r.TripType,
		SelectedCars:    r.SelectedCars,
		SelectedPersons: r.SelectedPersons,
		Drivers:         r.Drivers,
		PricePerPerson:  toFloat(r.PricePerPerson),
	}
}

// CreateCommuteRequest is the body of POST /api/commutes.
//
// tripType is free text. The id lists may be empty but must be present.
type CreateCommuteRequest struct {
	Date            string           `json:"date" validate:"required,datetime=2006-01-02"`
	TripType        string           `json:"tripType" validate:"required"`
	SelectedCars    []int64          `json:"selectedCars" validate:"required,dive,gt=0"`
	SelectedPersons []int64          `json:"selectedPersons" validate:"required,dive,gt=0"`
	Drivers         []int64          `json:"drivers" validate:"required,dive,gt=0"`
	PricePerPerson  *decimal.Decimal `json:"pricePerPerson" validate:"required"`
}

func (r *CreateCommuteRequest) Validate() error {
	return validate.Struct(r)
}

func NewCommuteRow(req *CreateCommuteRequest) CommuteRow {
	return CommuteRow{
		Date:            req.Date,
		TripType:        req.TripType,
		SelectedCars:    req.SelectedCars,
		SelectedPersons: req.SelectedPersons,
		Drivers:         req.Drivers,
		PricePerPerson:  decimal.NewNullDecimal(*req.PricePerPerson),
	}
}
