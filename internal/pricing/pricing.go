package pricing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	inErrors "github.com/raditia/gerai/internal/errors"
)

// Parse normalizes a price that arrived either as a bare number or as a
// currency-prefixed string such as "$1,234.50". For strings, every rune that
// is not a digit or a decimal point is stripped before parsing. An empty
// remainder is an error, never a panic.
func Parse(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case json.Number:
		return parseString(v.String())
	case string:
		return parseString(v)
	default:
		return decimal.Zero, fmt.Errorf(
			"cannot parse price of type %T with error=%w",
			raw,
			inErrors.ErrUnparsablePrice,
		)
	}
}

// OrZero applies the aggregation rule: an unparsable price contributes zero
// to totals instead of corrupting them.
func OrZero(raw any) decimal.Decimal {
	d, err := Parse(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseString(raw string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	stripped := b.String()
	if stripped == "" {
		return decimal.Zero, fmt.Errorf(
			"price %q is empty after stripping with error=%w",
			raw,
			inErrors.ErrUnparsablePrice,
		)
	}
	d, err := decimal.NewFromString(stripped)
	if err != nil {
		return decimal.Zero, fmt.Errorf(
			"failed parsing price %q with error=%w",
			raw,
			inErrors.ErrUnparsablePrice,
		)
	}
	return d, nil
}
