// Package currencyutils parses the amount formats found in SII exports and
// pasted manual entries, and formats amounts for report output.
package currencyutils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// symbolsRe strips currency symbols, spaces and apostrophes before parsing.
var symbolsRe = regexp.MustCompile(`[$€£¥\sCLP']`)

// ParseAmount parses an amount in the Chilean export convention: "." as
// thousands separator, "," as decimal separator. "1.234,50" yields 1234.50.
// Empty input yields zero. Anything that survives cleanup but still does not
// parse is an error; callers in the row loops degrade that to zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	cleaned := symbolsRe.ReplaceAllString(amountStr, "")
	if cleaned == "" {
		return decimal.Zero, nil
	}

	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// ParseFlexibleAmount parses an amount without assuming which separator
// convention the text uses. Pasted manual entries mix both: "$151,077" is
// one hundred fifty-one thousand, "1.234,50" has decimals.
//
// Rules: with both separators present, the right-most one is the decimal
// mark. With a single separator kind, one occurrence followed by one or two
// digits is a decimal mark; anything else is a thousands separator.
func ParseFlexibleAmount(amountStr string) (decimal.Decimal, error) {
	cleaned := symbolsRe.ReplaceAllString(amountStr, "")
	if cleaned == "" {
		return decimal.Zero, errors.New("empty amount")
	}

	hasDot := strings.Contains(cleaned, ".")
	hasComma := strings.Contains(cleaned, ",")

	switch {
	case hasDot && hasComma:
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasComma:
		cleaned = normalizeSingleSeparator(cleaned, ",")
	case hasDot:
		cleaned = normalizeSingleSeparator(cleaned, ".")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// normalizeSingleSeparator decides whether the only separator present acts
// as a decimal mark or a thousands separator.
func normalizeSingleSeparator(s, sep string) string {
	parts := strings.Split(s, sep)
	if len(parts) == 2 && len(parts[1]) >= 1 && len(parts[1]) <= 2 {
		return parts[0] + "." + parts[1]
	}
	return strings.Join(parts, "")
}

// FormatAmount renders an amount in the given ISO currency using that
// currency's display convention. CLP has no decimal places, so
// FormatAmount(1234567, "CLP") returns "$1.234.567".
func FormatAmount(amount decimal.Decimal, currencyCode string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	currency := money.GetCurrency(code)
	if currency == nil {
		return amount.StringFixed(2)
	}
	minor := amount.Shift(int32(currency.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}

// IsZero checks if an amount is zero
func IsZero(amount decimal.Decimal) bool {
	return amount.Equal(decimal.Zero)
}
