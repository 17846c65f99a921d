// Package parser turns one issuer's credit-card statement PDFs into
// structured statement records. Extraction is layout-driven: positioned word
// tokens are grouped into visual rows, scanned against calibrated column
// bands and label constants, and cross-validated against the statement's own
// balance equation. A single malformed document aborts the whole parse; no
// step retries or recovers locally.
package parser

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rmuktader/ccparse/internal/statement"
)

// Parser is the statement assembler. It owns the construction sequence; the
// extractors it calls receive read-only row data and return fresh values.
// A Parser holds no per-document state and is safe for use across
// independent parse calls.
type Parser struct {
	src DocumentSource
	log zerolog.Logger
}

// New returns a Parser reading real PDF files, with logging disabled.
func New() *Parser {
	return NewWithSource(NewPDFSource(), zerolog.Nop())
}

// NewWithLogger returns a Parser reading real PDF files that logs extraction
// progress to the given logger.
func NewWithLogger(log zerolog.Logger) *Parser {
	return NewWithSource(NewPDFSource(), log)
}

// NewWithSource wires an explicit document source, used by tests to drive
// the assembler from in-memory token pages.
func NewWithSource(src DocumentSource, log zerolog.Logger) *Parser {
	return &Parser{src: src, log: log}
}

// Parse opens the document at path and assembles a Statement from it.
// Errors from the taxonomy in the statement package (DataIntegrityError,
// BalanceMismatchError) propagate unmodified; lower-level date and read
// failures are wrapped with call context only.
func (p *Parser) Parse(path string) (*statement.Statement, error) {
	doc, err := p.src.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Parse: %w", err)
	}
	defer doc.Close()

	if doc.PageCount() == 0 {
		return nil, &statement.DataIntegrityError{Field: "document pages"}
	}

	pageTokens, err := doc.PageTokens(0)
	if err != nil {
		return nil, fmt.Errorf("Parse: page 1 tokens: %w", err)
	}
	page1 := groupRows(pageTokens)
	p.log.Debug().Int("rows", len(page1)).Msg("grouped page 1 rows")

	header := extractHeader(page1)
	balance, err := extractBalanceSummary(page1)
	if err != nil {
		return nil, err
	}
	points, err := extractPoints(page1)
	if err != nil {
		return nil, err
	}

	if header.billingStart == "" || header.billingEnd == "" {
		return nil, &statement.DataIntegrityError{Field: "billing period"}
	}
	billingStart, err := parseBillingDate(header.billingStart)
	if err != nil {
		return nil, fmt.Errorf("Parse: billing start: %w", err)
	}
	billingEnd, err := parseBillingDate(header.billingEnd)
	if err != nil {
		return nil, fmt.Errorf("Parse: billing end: %w", err)
	}

	scanner := newTransactionScanner(billingEnd.Year, billingEnd.Month, p.log)
	for i := 0; i < doc.PageCount() && !scanner.done(); i++ {
		tokens, err := doc.PageTokens(i)
		if err != nil {
			return nil, fmt.Errorf("Parse: page %d tokens: %w", i+1, err)
		}
		for _, row := range groupRows(tokens) {
			if err := scanner.scanRow(row); err != nil {
				return nil, err
			}
			if scanner.done() {
				break
			}
		}
	}
	txns := scanner.transactions()

	if err := balance.Validate(); err != nil {
		return nil, err
	}

	p.log.Debug().
		Str("account_suffix", header.suffix).
		Int("transactions", len(txns)).
		Int("points", points).
		Msg("statement assembled")

	return &statement.Statement{
		EntityName:        header.entity,
		PrimaryCardholder: header.cardholder,
		AccountSuffix:     header.suffix,
		BillingStart:      billingStart,
		BillingEnd:        billingEnd,
		Balance:           balance,
		CurrentPoints:     points,
		Transactions:      txns,
	}, nil
}
