package diarias

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Rate holds the three currency values of one classification tier: the
// full 24h unit and the 15% / 30% partial-unit values.
type Rate struct {
	Full decimal.Decimal
	P15  decimal.Decimal
	P30  decimal.Decimal
}

// Table is the fixed per-diem rate table by classification. Values mirror
// the current regulation; updating them here updates both the calculation
// endpoint and the form preview at once.
var Table = map[Tipo]Rate{
	TipoInterior: {
		Full: decimal.RequireFromString("290.55"),
		P15:  decimal.RequireFromString("43.58"),
		P30:  decimal.RequireFromString("87.17"),
	},
	TipoCapital: {
		Full: decimal.RequireFromString("371.26"),
		P15:  decimal.RequireFromString("55.69"),
		P30:  decimal.RequireFromString("111.38"),
	},
	TipoBrasilia: {
		Full: decimal.RequireFromString("468.12"),
		P15:  decimal.RequireFromString("70.22"),
		P30:  decimal.RequireFromString("140.43"),
	},
}

// RateFor returns the rate for a tier, falling back to INTERIOR for an
// unknown value.
func RateFor(tipo Tipo) Rate {
	if r, ok := Table[tipo]; ok {
		return r
	}
	return Table[TipoInterior]
}

// Partial returns the partial-unit value for a 0/15/30 percentage.
func (r Rate) Partial(percent int) decimal.Decimal {
	switch percent {
	case 15:
		return r.P15
	case 30:
		return r.P30
	}
	return decimal.Zero
}

// FormatValor renders a currency value the way the documents expect:
// two decimal places with a comma separator ("290,55").
func FormatValor(value decimal.Decimal) string {
	return strings.ReplaceAll(value.Round(2).StringFixed(2), ".", ",")
}
