package entities

import (
	"bytes"
	"encoding/json"
)

// User represents an account profile as returned by /users
type User struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Role        string   `json:"role"`
	PartnerCode string   `json:"partner_code"`
	Image       string   `json:"image"`
	Status      FlexBool `json:"status"`
}

// FlexBool decodes a boolean that the backend serves inconsistently as
// either a JSON bool or a number.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*f = true
	case bytes.Equal(data, []byte("false")), bytes.Equal(data, []byte("null")):
		*f = false
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		v, err := n.Int64()
		if err != nil {
			return err
		}
		*f = v != 0
	}
	return nil
}

func (f FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}
