package currency_test

import (
	"testing"

	"github.com/SscSPs/finance_tracker/internal/utils/currency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConverter_ToHome(t *testing.T) {
	c := currency.NewConverter("INR")

	tests := []struct {
		name     string
		amount   string
		code     string
		expected string
	}{
		{"usd to inr", "500", "USD", "41750"},
		{"eur to inr", "10", "EUR", "930"},
		{"home stays put", "123.45", "INR", "123.45"},
		{"lowercase code", "2", "usd", "167"},
		{"unknown code defaults to factor one", "500", "XYZ", "500"},
		{"empty code defaults to factor one", "42", "", "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ToHome(decimal.RequireFromString(tt.amount), tt.code)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestConverter_DefaultsAndCrossRates(t *testing.T) {
	assert.Equal(t, "INR", currency.NewConverter("").Home())

	usd := currency.NewConverter("usd")
	assert.Equal(t, "USD", usd.Home())
	assert.Equal(t, "1", usd.Rate("USD").String())
	assert.Equal(t, "1.00", usd.ToHome(decimal.RequireFromString("83.5"), "INR").StringFixed(2))
	assert.True(t, usd.Known("EUR"))
	assert.False(t, usd.Known("XYZ"))

	unknownHome := currency.NewConverter("XYZ")
	assert.Equal(t, "1", unknownHome.Rate("USD").String())
}

func TestFormatter_Format(t *testing.T) {
	f := currency.NewFormatter("en")

	assert.Equal(t, "$1,234.50", f.Format(decimal.RequireFromString("1234.5"), "USD", false))
	assert.Equal(t, "₹41,750.00", f.Format(decimal.NewFromInt(41750), "INR", false))
	assert.Equal(t, "-€12.35", f.Format(decimal.RequireFromString("-12.345"), "EUR", false))
	assert.Equal(t, "XYZ 5.00", f.Format(decimal.NewFromInt(5), "XYZ", false))
}

func TestFormatter_HiddenDoesNotTouchValue(t *testing.T) {
	f := currency.NewFormatter("not a locale")
	amount := decimal.RequireFromString("987654.32")

	assert.Equal(t, currency.HiddenMask, f.Format(amount, "USD", true))
	assert.Equal(t, "987654.32", amount.String())
	assert.Equal(t, "987,654.32", f.Number(amount))
}
