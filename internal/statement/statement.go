// Package statement defines the domain model for a parsed credit-card
// statement: the transaction ledger, the balance summary with its
// consistency rule, and the error taxonomy surfaced by the parser.
package statement

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Transaction is one ledger entry from the statement's transaction section.
// Values are immutable once extracted; continuation lines in the source
// document are folded into Description before the transaction is final.
type Transaction struct {
	ActivityDate    civil.Date      // date the charge occurred
	PostDate        civil.Date      // date the charge posted to the account
	ReferenceNumber string          // issuer-assigned, not unique across statements
	Description     string          // free text, may span multiple source lines
	Amount          decimal.Decimal // positive = spend, negative = payment/credit
}

// BalanceSummary holds the eight amounts from the statement's balance box.
// All values are signed exact decimals; credits appear as negative amounts.
type BalanceSummary struct {
	PreviousBalance decimal.Decimal
	Purchases       decimal.Decimal
	Credits         decimal.Decimal
	Fees            decimal.Decimal
	Interest        decimal.Decimal
	NewBalance      decimal.Decimal
	AvailableCredit decimal.Decimal
	MinimumPayment  decimal.Decimal
}

// Validate recomputes the stated new balance from its components and checks
// it for exact equality. Inputs are exact fixed-point currency values, so no
// tolerance is applied.
func (b BalanceSummary) Validate() error {
	computed := b.PreviousBalance.
		Add(b.Purchases).
		Sub(b.Credits).
		Add(b.Fees).
		Add(b.Interest)
	if !computed.Equal(b.NewBalance) {
		return &BalanceMismatchError{Computed: computed, Stated: b.NewBalance}
	}
	return nil
}

// Statement is the assembled result of parsing one statement document.
type Statement struct {
	EntityName        string // issuer/entity printed in the header
	PrimaryCardholder string
	AccountSuffix     string // last 4 digits of the account number
	BillingStart      civil.Date
	BillingEnd        civil.Date
	Balance           BalanceSummary
	CurrentPoints     int // reward points balance, non-negative

	// Transactions in document appearance order, which approximates
	// chronological order.
	Transactions []Transaction
}

// PurchaseTotal sums the transaction amounts. On a statement whose only
// activity is purchases this equals Balance.Purchases exactly.
func (s *Statement) PurchaseTotal() decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.Transactions {
		total = total.Add(t.Amount)
	}
	return total
}
