package pricing

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Price is a money amount that tolerates the two representations product
// price fields arrive in: a bare JSON number or a currency-prefixed string.
// An unparsable value unmarshals as invalid instead of failing the document;
// invalid prices count as zero in aggregates.
type Price struct {
	Amount decimal.Decimal
	Valid  bool
}

func NewPrice(d decimal.Decimal) Price {
	return Price{Amount: d, Valid: true}
}

// Decimal returns the amount, zero when invalid.
func (p Price) Decimal() decimal.Decimal {
	if !p.Valid {
		return decimal.Zero
	}
	return p.Amount
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return json.Marshal("")
	}
	return json.Marshal(p.Amount)
}

func (p *Price) UnmarshalJSON(data []byte) error {
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		d, perr := Parse(num)
		if perr != nil {
			*p = Price{}
			return nil
		}
		*p = Price{Amount: d, Valid: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*p = Price{}
		return nil
	}
	d, perr := Parse(s)
	if perr != nil {
		*p = Price{}
		return nil
	}
	*p = Price{Amount: d, Valid: true}
	return nil
}
