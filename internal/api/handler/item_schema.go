package handler

import (
	"bytes"
	"encoding/json"
)

// numericField accepts a JSON number or a string holding one. Whatever was
// sent is kept as text and parsed by the item workflow, so "abc", -1 and
// true all fail with the same field message. A JSON null leaves the
// enclosing pointer nil, which reads as "not submitted".
type numericField string

func (n *numericField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*n = numericField(s)
		return nil
	}
	*n = numericField(bytes.TrimSpace(b))
	return nil
}

func (n *numericField) text() *string {
	if n == nil {
		return nil
	}
	s := string(*n)
	return &s
}

type createItemRequest struct {
	Name            string        `json:"name"            validate:"max=200"`
	Category        string        `json:"category"        validate:"max=200"`
	Description     string        `json:"description"     validate:"max=2000"`
	Condition       string        `json:"condition"       validate:"max=200"`
	Quantity        *numericField `json:"quantity"        swaggertype:"number"`
	StorageLocation string        `json:"storageLocation" validate:"max=200"`
	PhotoURL        string        `json:"photoUrl"        validate:"max=2048"`
	ContactName     string        `json:"contactName"     validate:"max=200"`
	ContactPhone    string        `json:"contactPhone"    validate:"max=32"`
	Disposition     string        `json:"disposition"     enums:"Donation,Loan,Sale"`
	Price           *numericField `json:"price"           swaggertype:"number"`
}

// updateItemRequest is the full list of editable fields. Absent fields keep
// their stored value.
type updateItemRequest struct {
	Name            *string       `json:"name"            validate:"omitempty,max=200"`
	Category        *string       `json:"category"        validate:"omitempty,max=200"`
	Description     *string       `json:"description"     validate:"omitempty,max=2000"`
	Condition       *string       `json:"condition"       validate:"omitempty,max=200"`
	Quantity        *numericField `json:"quantity"        swaggertype:"number"`
	StorageLocation *string       `json:"storageLocation" validate:"omitempty,max=200"`
	PhotoURL        *string       `json:"photoUrl"        validate:"omitempty,max=2048"`
	ContactName     *string       `json:"contactName"     validate:"omitempty,max=200"`
	ContactPhone    *string       `json:"contactPhone"    validate:"omitempty,max=32"`
	Disposition     *string       `json:"disposition"     enums:"Donation,Loan,Sale"`
	Price           *numericField `json:"price"           swaggertype:"number"`
}
