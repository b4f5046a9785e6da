package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// HiddenMask replaces every rendered amount while balances are hidden.
const HiddenMask = "••••••"

var symbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"AUD": "A$",
	"CAD": "C$",
}

// Symbol returns the display symbol for code, or the code followed by a space when unknown.
func Symbol(code string) string {
	code = normalize(code)
	if s, ok := symbols[code]; ok {
		return s
	}
	return code + " "
}

// Formatter renders amounts with a currency symbol and locale-aware digit grouping.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a formatter for the given BCP 47 locale tag. Invalid tags fall back
// to English.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Format renders amount in code with two fraction digits, e.g. "$1,234.50".
// Negative amounts carry the sign before the symbol. hidden returns the mask and leaves
// amount untouched.
func (f *Formatter) Format(amount decimal.Decimal, code string, hidden bool) string {
	if hidden {
		return HiddenMask
	}
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	return sign + Symbol(code) + f.Number(amount)
}

// Number renders amount with grouping separators and exactly two fraction digits.
func (f *Formatter) Number(amount decimal.Decimal) string {
	v := amount.Round(2).InexactFloat64()
	return f.printer.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
