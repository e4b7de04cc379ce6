package model

import "encoding/json"

// PersonsTable is the store table holding persons.
const PersonsTable = "persons"

// PersonRow is a row of the persons table. Its columns need no renaming,
// so columns other than id and name are kept in Extra and handed to
// clients unchanged.
type PersonRow struct {
	ID    int64                      `json:"id,omitempty"`
	Name  string                     `json:"name"`
	Extra map[string]json.RawMessage `json:"-"`
}

func (r *PersonRow) UnmarshalJSON(data []byte) error {
	type known PersonRow
	var row known
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}

	var columns map[string]json.RawMessage
	if err := json.Unmarshal(data, &columns); err != nil {
		return err
	}
	delete(columns, "id")
	delete(columns, "name")
	if len(columns) > 0 {
		row.Extra = columns
	}

	*r = PersonRow(row)
	return nil
}

// Person is the API shape of a person.
type Person struct {
	ID    int64                      `json:"id"`
	Name  string                     `json:"name"`
	Extra map[string]json.RawMessage `json:"-"`
}

// MarshalJSON writes id and name next to any extra store columns.
func (p Person) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+2)
	for column, value := range p.Extra {
		out[column] = value
	}
	out["id"] = p.ID
	out["name"] = p.Name
	return json.Marshal(out)
}

func (r PersonRow) ToAPI() Person {
	return Person{ID: r.ID, Name: r.Name, Extra: r.Extra}
}

// CreatePersonRequest is the body of POST /api/persons.
type CreatePersonRequest struct {
	Name string `json:"name" validate:"required"`
}

func (r *CreatePersonRequest) Validate() error {
	return validate.Struct(r)
}

func NewPersonRow(req *CreatePersonRequest) PersonRow {
	return PersonRow{Name: req.Name}
}
