package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/rmuktader/ccparse/internal/statement"
)

// amountNoise strips everything that is not part of the decimal numeral:
// sign characters, the currency symbol, digit separators, the CR marker and
// whitespace. Applied after uppercasing.
var amountNoise = regexp.MustCompile(`[+\-$,CR\s]`)

// parseAmount converts a raw currency token such as "$1,516.49CR" or
// "+$365.47" into an exact decimal. A case-insensitive CR marker flags a
// credit and negates the magnitude. The sign of a literal leading minus is
// handled by the caller, which knows whether the token came from a
// credit-capable column.
func parseAmount(raw string) (decimal.Decimal, error) {
	upper := strings.ToUpper(raw)
	isCredit := strings.Contains(upper, "CR")

	cleaned := amountNoise.ReplaceAllString(upper, "")
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, &statement.DataIntegrityError{Field: "amount", Raw: raw}
	}
	if isCredit {
		return value.Neg(), nil
	}
	return value, nil
}

// parseShortDate parses a transaction date token in compact ("Jul07") or
// spaced ("Jul 07") form against a resolved year. Invalid day-in-month
// surfaces as the underlying time.Parse error, which is fatal for the
// document; the token pattern check upstream does not validate day ranges.
func parseShortDate(raw string, year int) (civil.Date, error) {
	if len(raw) > 3 && raw[3] >= '0' && raw[3] <= '9' {
		raw = raw[:3] + " " + raw[3:]
	}
	t, err := time.Parse("Jan 2 2006", fmt.Sprintf("%s %d", raw, year))
	if err != nil {
		return civil.Date{}, fmt.Errorf("parseShortDate: %w", err)
	}
	return civil.DateOf(t), nil
}

// parseBillingDate parses one side of the header's billing period, which
// uses the full month name with all spaces already stripped ("July4,2024").
func parseBillingDate(raw string) (civil.Date, error) {
	t, err := time.Parse("January2,2006", raw)
	if err != nil {
		return civil.Date{}, fmt.Errorf("parseBillingDate: %w", err)
	}
	return civil.DateOf(t), nil
}
