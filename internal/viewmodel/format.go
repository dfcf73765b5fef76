package viewmodel

import (
	"strings"

	"github.com/shopspring/decimal"

	"hydromap/internal/types"
)

var (
	million = decimal.New(1, 6)
	billion = decimal.New(1, 9)
)

var symbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Money is a currency amount pre-scaled for display.
type Money struct {
	Amount  float64 `json:"amount"`
	Scaled  float64 `json:"scaled"`
	Unit    string  `json:"unit"`
	Display string  `json:"display"`
}

// FormatMoney scales v to billions (|v| >= 1e9) or millions, one decimal.
func FormatMoney(v float64, currency string) Money {
	v = types.Finite(v)
	d := decimal.NewFromFloat(v)
	unit, div := "M", million
	if d.Abs().GreaterThanOrEqual(billion) {
		unit, div = "B", billion
	}
	scaled := d.Div(div).Round(1)

	sym, ok := symbols[strings.ToUpper(currency)]
	if !ok {
		sym = strings.ToUpper(currency) + " "
	}
	sign := ""
	if scaled.IsNegative() {
		sign = "-"
	}
	return Money{
		Amount:  v,
		Scaled:  scaled.InexactFloat64(),
		Unit:    unit,
		Display: sign + sym + scaled.Abs().StringFixed(1) + unit,
	}
}

// Millions converts v to millions rounded to one decimal.
func Millions(v float64) float64 {
	return decimal.NewFromFloat(types.Finite(v)).Div(million).Round(1).InexactFloat64()
}

// Round1 rounds half away from zero to one decimal; percentages and
// capacities go through it before they reach the presentation layer.
func Round1(v float64) float64 {
	return decimal.NewFromFloat(types.Finite(v)).Round(1).InexactFloat64()
}
