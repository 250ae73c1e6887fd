package utils

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

const CurrencyPrefix = "RM "

// FormatPrice renders an amount as Malaysian Ringgit, e.g. "RM 45.90".
// Anything that is not a finite number renders as "RM 0.00".
func FormatPrice(v any) string {
	return CurrencyPrefix + FormatPriceNumber(v)
}

// FormatPriceNumber is FormatPrice without the currency prefix.
func FormatPriceNumber(v any) string {
	switch p := v.(type) {
	case decimal.Decimal:
		return p.StringFixed(2)
	case *decimal.Decimal:
		if p == nil {
			return "0.00"
		}
		return p.StringFixed(2)
	case float64:
		return formatFloat(p)
	case float32:
		return formatFloat(float64(p))
	case int:
		return formatFloat(float64(p))
	case int64:
		return formatFloat(float64(p))
	case int32:
		return formatFloat(float64(p))
	default:
		return "0.00"
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0.00"
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}
