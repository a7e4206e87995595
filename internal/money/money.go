package money

import (
	"encoding/json"
	"math"
)

// Cents is a monetary amount in integer cents. Arithmetic stays exact
// internally; JSON marshals to and from dollar floats because that is what
// the API clients send.
type Cents int64

// FromDollars converts a dollar amount to cents, rounding half away from zero.
func FromDollars(d float64) Cents {
	return Cents(math.Round(d * 100))
}

// Dollars converts back to a dollar float for API responses.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Dollars())
}

func (c *Cents) UnmarshalJSON(data []byte) error {
	var d float64
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*c = FromDollars(d)
	return nil
}
