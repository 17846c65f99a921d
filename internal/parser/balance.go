package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rmuktader/ccparse/internal/statement"
)

// balanceFields maps balance-box label substrings to summary field keys.
// Declared as an ordered table rather than nested conditionals so each label
// is one declarative row walked per page row; the order also makes the
// missing-field error stable.
var balanceFields = []struct {
	label string
	key   string
}{
	{"PreviousBalance", "previous_balance"},
	{"Purchases", "purchases"},
	{"OtherCredits", "credits"},
	{"FeesCharged", "fees"},
	{"InterestCharged", "interest"},
	{"NewBalance", "new_balance"},
	{"Available", "available_credit"},
	{"MinimumPaymentDue", "minimum_payment"},
}

// extractBalanceSummary scans the rows for each balance label and takes the
// leftmost currency token to the right of the label on the same row. The
// to-the-right rule disambiguates the two-column page layout, where a second
// label/value pair sits further right on the same visual line. A raw token
// with a literal leading minus is forced negative even without a CR marker.
func extractBalanceSummary(rows []Row) (statement.BalanceSummary, error) {
	found := make(map[string]decimal.Decimal, len(balanceFields))

	for _, row := range rows {
		joined := row.joined()
		for _, f := range balanceFields {
			if _, ok := found[f.key]; ok {
				continue
			}
			if !strings.Contains(joined, f.label) {
				continue
			}

			labelLeft := 0.0
			for _, tok := range row {
				if strings.Contains(tok.Text, f.label) {
					labelLeft = tok.Left
					break
				}
			}

			best := -1
			for i, tok := range row {
				if tok.Left <= labelLeft || !reCurrency.MatchString(tok.Text) {
					continue
				}
				if best == -1 || tok.Left < row[best].Left {
					best = i
				}
			}
			if best == -1 {
				continue
			}

			raw := row[best].Text
			amount, err := parseAmount(raw)
			if err != nil {
				return statement.BalanceSummary{}, err
			}
			if strings.HasPrefix(raw, "-") {
				amount = amount.Abs().Neg()
			}
			found[f.key] = amount
		}
	}

	var missing []string
	for _, f := range balanceFields {
		if _, ok := found[f.key]; !ok {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		return statement.BalanceSummary{}, &statement.DataIntegrityError{
			Field: "balance summary (" + strings.Join(missing, ", ") + ")",
		}
	}

	return statement.BalanceSummary{
		PreviousBalance: found["previous_balance"],
		Purchases:       found["purchases"],
		Credits:         found["credits"],
		Fees:            found["fees"],
		Interest:        found["interest"],
		NewBalance:      found["new_balance"],
		AvailableCredit: found["available_credit"],
		MinimumPayment:  found["minimum_payment"],
	}, nil
}
