// Package format renders amounts and durations for display.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// numberFormats maps a base language to its humanize.FormatFloat pattern.
var numberFormats = map[string]string{
	"en": "#,###.##",
	"ru": "# ###,##",
}

// Number formats amount with two decimals and locale-appropriate separators.
func Number(amount decimal.Decimal, lang string) string {
	pattern, ok := numberFormats[baseLanguage(lang)]
	if !ok {
		pattern = numberFormats["en"]
	}
	return humanize.FormatFloat(pattern, amount.Round(2).InexactFloat64())
}

// Money formats amount in the given ISO 4217 currency. Unknown codes are
// printed verbatim after the number.
func Money(amount decimal.Decimal, code, lang string) string {
	number := Number(amount, lang)
	unit, err := currency.ParseISO(code)
	if err != nil {
		return strings.TrimSpace(number + " " + strings.ToUpper(code))
	}

	tag := language.Make(lang)
	symbol := message.NewPrinter(tag).Sprint(currency.NarrowSymbol(unit))
	if symbol == "" {
		symbol = unit.String()
	}
	if baseLanguage(lang) == "ru" {
		return number + " " + symbol
	}
	return symbol + number
}

// Symbol returns the narrow display symbol for an ISO 4217 code, or the code
// itself when it is not recognized.
func Symbol(code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	return fmt.Sprint(currency.NarrowSymbol(unit))
}

// Days formats a fractional day count with one decimal.
func Days(days decimal.Decimal) string {
	return days.StringFixed(1)
}

// Ago renders t relative to now, e.g. "3 hours ago".
func Ago(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// Count formats an integer with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

func baseLanguage(lang string) string {
	if lang == "" {
		return "en"
	}
	base, _ := language.Make(lang).Base()
	return base.String()
}
