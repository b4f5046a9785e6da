package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultHomeCurrency is the currency balances are reported in when nothing else is configured.
const DefaultHomeCurrency = "INR"

// Static rates, expressed as units of INR per one unit of the keyed currency.
// These are fixed display approximations, not live FX quotes.
var inrRates = map[string]decimal.Decimal{
	"INR": decimal.NewFromInt(1),
	"USD": decimal.RequireFromString("83.5"),
	"EUR": decimal.NewFromInt(93),
	"GBP": decimal.NewFromInt(105),
	"JPY": decimal.RequireFromString("0.56"),
	"AUD": decimal.NewFromInt(55),
	"CAD": decimal.NewFromInt(61),
}

// Converter expresses amounts in a single home currency using a static rate table.
type Converter struct {
	home  string
	rates map[string]decimal.Decimal
}

// NewConverter builds a converter for the given home currency. An empty code selects INR.
// When the home currency is not INR, rates are derived by crossing through INR.
func NewConverter(home string) *Converter {
	home = normalize(home)
	if home == "" {
		home = DefaultHomeCurrency
	}

	rates := make(map[string]decimal.Decimal, len(inrRates))
	homeInINR, known := inrRates[home]
	for code, inr := range inrRates {
		if !known {
			// Unknown home currency: nothing can be crossed, every factor stays 1.
			rates[code] = decimal.NewFromInt(1)
			continue
		}
		rates[code] = inr.Div(homeInINR)
	}
	rates[home] = decimal.NewFromInt(1)

	return &Converter{home: home, rates: rates}
}

// Home returns the ISO-like code of the home currency.
func (c *Converter) Home() string {
	return c.home
}

// Rate returns how many home-currency units one unit of code is worth.
// Codes missing from the table are treated as already being home currency.
func (c *Converter) Rate(code string) decimal.Decimal {
	if r, ok := c.rates[normalize(code)]; ok {
		return r
	}
	return decimal.NewFromInt(1)
}

// ToHome converts amount from code into the home currency.
func (c *Converter) ToHome(amount decimal.Decimal, code string) decimal.Decimal {
	return amount.Mul(c.Rate(code))
}

// Known reports whether code has an entry in the rate table.
func (c *Converter) Known(code string) bool {
	_, ok := c.rates[normalize(code)]
	return ok
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
