package statement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnsupportedFormat is reserved for documents whose layout does not match
// the calibrated column bands and labels. The scanning logic does not raise
// it today; it is part of the public error surface so callers can branch on
// it when additional layouts are calibrated.
var ErrUnsupportedFormat = errors.New("statement: unsupported document layout")

// DataIntegrityError reports a required field that could not be located in
// the document, or a located token that could not be parsed into its
// expected type. Raw carries the offending token text when one exists.
type DataIntegrityError struct {
	Field string
	Raw   string
}

func (e *DataIntegrityError) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("statement: cannot parse %s from %q", e.Field, e.Raw)
	}
	return fmt.Sprintf("statement: missing required field %s", e.Field)
}

// BalanceMismatchError reports a balance summary whose components do not add
// up to the stated new balance.
type BalanceMismatchError struct {
	Computed decimal.Decimal
	Stated   decimal.Decimal
}

func (e *BalanceMismatchError) Error() string {
	return fmt.Sprintf("statement: balance mismatch: computed=%s, stated=%s",
		e.Computed, e.Stated)
}
