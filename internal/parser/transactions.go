package parser

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rmuktader/ccparse/internal/statement"
)

// scanState drives the transaction section scan. The explicit enum keeps the
// section-boundary contract auditable and testable without page I/O.
type scanState int

const (
	scanBeforeSection scanState = iota // waiting for the section start row
	scanInSection                      // accumulating transactions
	scanDone                           // section end label seen, terminal
)

// transactionScanner accumulates the ledger across all pages' rows. It owns
// its growing transaction slice; continuation lines replace the last element
// with an amended copy rather than rebuilding history.
type transactionScanner struct {
	year     int        // billing period end year
	endMonth time.Month // billing period end month, for the January bump
	state    scanState
	txns     []statement.Transaction
	log      zerolog.Logger
}

func newTransactionScanner(year int, endMonth time.Month, log zerolog.Logger) *transactionScanner {
	return &transactionScanner{year: year, endMonth: endMonth, log: log}
}

func (s *transactionScanner) done() bool { return s.state == scanDone }

func (s *transactionScanner) transactions() []statement.Transaction { return s.txns }

// scanRow feeds one visual row through the state machine.
func (s *transactionScanner) scanRow(row Row) error {
	joined := row.joined()

	switch s.state {
	case scanDone:
		return nil
	case scanBeforeSection:
		if strings.TrimSpace(joined) == sectionStartLabel {
			s.state = scanInSection
		}
		return nil
	}

	for _, label := range sectionEndLabels {
		if strings.Contains(joined, label) {
			s.state = scanDone
			return nil
		}
	}

	// Column header and card-number separator rows repeat on every page.
	if strings.Contains(joined, columnHeaderLabel) || strings.Contains(joined, cardNumberLabel) {
		return nil
	}

	var dateTok *Token
	for i := range row {
		if colActivity.contains(row[i].Left) && reTxnDate.MatchString(row[i].Text) {
			dateTok = &row[i]
			break
		}
	}

	if dateTok == nil {
		// No activity date: a description-only row continues the previous
		// transaction's description.
		if extra := row.bandText(colDesc); extra != "" && len(s.txns) > 0 {
			last := s.txns[len(s.txns)-1]
			last.Description = last.Description + " " + extra
			s.txns[len(s.txns)-1] = last
		}
		return nil
	}

	post := row.bandTokens(colPost)
	ref := row.bandTokens(colRef)
	amt := row.bandTokens(colAmount)
	if len(post) == 0 || len(ref) == 0 || len(amt) == 0 {
		// Partial row: dropped, not an error. Logged so unexpectedly short
		// ledgers can be traced back to the rows that were skipped.
		s.log.Debug().Str("row", joined).Msg("skipping partial transaction row")
		return nil
	}

	// Statements spanning a calendar-year boundary print January activity
	// with no year; it belongs to the year after the billing end year.
	txnYear := s.year
	if strings.HasPrefix(dateTok.Text, "Jan") && s.endMonth == time.December {
		txnYear++
	}

	activity, err := parseShortDate(dateTok.Text, txnYear)
	if err != nil {
		return err
	}
	posted, err := parseShortDate(post[0].Text, txnYear)
	if err != nil {
		return err
	}
	amount, err := parseAmount(amt[0].Text)
	if err != nil {
		return err
	}

	s.txns = append(s.txns, statement.Transaction{
		ActivityDate:    activity,
		PostDate:        posted,
		ReferenceNumber: ref[0].Text,
		Description:     row.bandText(colDesc),
		Amount:          amount,
	})
	return nil
}
