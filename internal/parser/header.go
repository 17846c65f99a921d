package parser

import "strings"

// headerFields holds the raw values pulled from page 1's header region.
// Fields left empty here are not an error by themselves; the assembler
// surfaces a data-integrity failure only when a downstream lookup needs a
// value that was never found.
type headerFields struct {
	cardholder   string
	entity       string
	suffix       string
	billingStart string // raw form, e.g. "July4,2024"
	billingEnd   string
}

// extractHeader scans page-1 rows for the cardholder and entity names (first
// token of right-margin rows in two vertical bands), the masked account
// suffix, and the billing period. First match wins for every field.
func extractHeader(rows []Row) headerFields {
	var h headerFields
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		joined := row.joined()
		top := row[0].Top
		left := row[0].Left

		if h.cardholder == "" && left > headerRightMargin && top < cardholderMaxTop {
			h.cardholder = row[0].Text
		}
		if h.entity == "" && left > headerRightMargin && top > cardholderMaxTop && top < entityMaxTop {
			h.entity = row[0].Text
		}
		if h.suffix == "" && strings.Contains(joined, accountSuffixLabel) {
			if m := reSuffix.FindStringSubmatch(joined); m != nil {
				h.suffix = m[1]
			}
		}
		if h.billingStart == "" && top < billingMaxTop {
			cleaned := strings.ReplaceAll(joined, " ", "")
			if m := reBilling.FindStringSubmatch(cleaned); m != nil {
				h.billingStart, h.billingEnd = m[1], m[2]
			}
		}
	}
	return h
}
