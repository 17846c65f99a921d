package parser_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/rmuktader/ccparse/internal/parser"
	"github.com/rmuktader/ccparse/internal/statement"
)

// mockDocument serves pre-built token pages and records Close calls.
type mockDocument struct {
	pages      [][]parser.Token
	closeCalls int
}

func (d *mockDocument) PageCount() int { return len(d.pages) }

func (d *mockDocument) PageTokens(n int) ([]parser.Token, error) {
	if n < 0 || n >= len(d.pages) {
		return nil, fmt.Errorf("no page %d", n)
	}
	return d.pages[n], nil
}

func (d *mockDocument) Close() error {
	d.closeCalls++
	return nil
}

// mockSource hands out a fresh document per Open so repeated parses cannot
// share state through the fixture.
type mockSource struct {
	OpenFunc func(path string) (parser.Document, error)
}

func (m *mockSource) Open(path string) (parser.Document, error) {
	return m.OpenFunc(path)
}

func tok(text string, left, top float64) parser.Token {
	return parser.Token{Text: text, Left: left, Top: top}
}

// samplePages reproduces the calibrated sample statement's token geometry:
// account ending 5679, billing period 2024-07-04..2024-08-03, two purchases
// summing to the Purchases field, 6050 reward points.
func samplePages() [][]parser.Token {
	page1 := []parser.Token{
		tok("JOHNQSAMPLE", 420, 30),
		tok("TDBANKUSA", 420, 42),
		tok("July 4, 2024 - August 3, 2024", 57, 60),
		tok("AccountNumberEndingin:", 57, 90), tok("5679", 210, 90),
		tok("PreviousBalance", 57, 120), tok("$1,516.49CR", 160, 120),
		tok("MinimumPaymentDue", 320, 120), tok("$0.00", 480, 120),
		tok("Purchases", 57, 132), tok("+$365.47", 160, 132),
		tok("Available", 320, 132), tok("$20,000.00", 480, 132),
		tok("OtherCredits", 57, 144), tok("$0.00", 160, 144),
		tok("FeesCharged", 57, 156), tok("$0.00", 160, 156),
		tok("InterestCharged", 57, 168), tok("$0.00", 160, 168),
		tok("NewBalance", 57, 180), tok("$1,151.02CR", 160, 180),
		tok("NewPointsBalance", 57, 200), tok("6,050", 250, 200),
	}
	page2 := []parser.Token{
		tok("Transactions", 57, 40),
		tok("ActivityDate", 82, 60), tok("PostDate", 138, 60), tok("Amount", 520, 60),
		tok("CardNumberEnding", 57, 70), tok("5679", 200, 70),
		tok("Jul07", 82, 90), tok("Jul08", 138, 90), tok("39053938", 197, 90),
		tok("PAYPAL", 265, 90), tok("*SPOTIFY", 320, 90), tok("$32.53", 520, 90),
		tok("MUSICSUBSCRIPTION", 265, 100),
		tok("Jul20", 82, 120), tok("Jul22", 138, 120), tok("85474265", 197, 120),
		tok("AMAZON", 265, 120), tok("$332.94", 520, 120),
		tok("Fees", 57, 150),
	}
	return [][]parser.Token{page1, page2}
}

func sampleParser(doc *mockDocument) *parser.Parser {
	src := &mockSource{
		OpenFunc: func(path string) (parser.Document, error) { return doc, nil },
	}
	return parser.NewWithSource(src, zerolog.Nop())
}

func TestParse_SampleStatement(t *testing.T) {
	doc := &mockDocument{pages: samplePages()}
	st, err := sampleParser(doc).Parse("statement.pdf")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}

	if st.AccountSuffix != "5679" {
		t.Errorf("AccountSuffix = %q, want 5679", st.AccountSuffix)
	}
	if st.PrimaryCardholder != "JOHNQSAMPLE" {
		t.Errorf("PrimaryCardholder = %q", st.PrimaryCardholder)
	}
	if st.EntityName != "TDBANKUSA" {
		t.Errorf("EntityName = %q", st.EntityName)
	}
	if st.BillingStart != (civil.Date{Year: 2024, Month: time.July, Day: 4}) {
		t.Errorf("BillingStart = %v", st.BillingStart)
	}
	if st.BillingEnd != (civil.Date{Year: 2024, Month: time.August, Day: 3}) {
		t.Errorf("BillingEnd = %v", st.BillingEnd)
	}
	if st.CurrentPoints != 6050 {
		t.Errorf("CurrentPoints = %d, want 6050", st.CurrentPoints)
	}

	if len(st.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(st.Transactions))
	}
	first := st.Transactions[0]
	if first.ActivityDate != (civil.Date{Year: 2024, Month: time.July, Day: 7}) ||
		first.PostDate != (civil.Date{Year: 2024, Month: time.July, Day: 8}) {
		t.Errorf("first transaction dates = %v/%v", first.ActivityDate, first.PostDate)
	}
	if first.ReferenceNumber != "39053938" {
		t.Errorf("first.ReferenceNumber = %q", first.ReferenceNumber)
	}
	if first.Amount.String() != "32.53" {
		t.Errorf("first.Amount = %s", first.Amount)
	}
	if first.Description != "PAYPAL *SPOTIFY MUSICSUBSCRIPTION" {
		t.Errorf("first.Description = %q (continuation line not stitched?)", first.Description)
	}
	second := st.Transactions[1]
	if second.ReferenceNumber != "85474265" || second.Amount.String() != "332.94" {
		t.Errorf("second transaction = %+v", second)
	}

	// The ledger must reconcile with the balance box exactly.
	if !st.PurchaseTotal().Equal(st.Balance.Purchases) {
		t.Errorf("PurchaseTotal %s != Purchases %s", st.PurchaseTotal(), st.Balance.Purchases)
	}

	if doc.closeCalls != 1 {
		t.Errorf("document closed %d times, want 1", doc.closeCalls)
	}
}

func TestParse_Idempotent(t *testing.T) {
	src := &mockSource{
		OpenFunc: func(path string) (parser.Document, error) {
			return &mockDocument{pages: samplePages()}, nil
		},
	}
	p := parser.NewWithSource(src, zerolog.Nop())

	first, err := p.Parse("statement.pdf")
	if err != nil {
		t.Fatalf("first Parse error = %v", err)
	}
	second, err := p.Parse("statement.pdf")
	if err != nil {
		t.Fatalf("second Parse error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated parses differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestParse_BalanceMismatch(t *testing.T) {
	pages := samplePages()
	// Corrupt the stated new balance; everything still parses, but the
	// consistency check must reject the document.
	for i, token := range pages[0] {
		if token.Text == "$1,151.02CR" {
			pages[0][i].Text = "$9,999.99CR"
		}
	}

	doc := &mockDocument{pages: pages}
	_, err := sampleParser(doc).Parse("statement.pdf")

	var mismatch *statement.BalanceMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error = %v, want *BalanceMismatchError", err)
	}
	if mismatch.Computed.String() != "-1151.02" {
		t.Errorf("Computed = %s, want -1151.02", mismatch.Computed)
	}
	if mismatch.Stated.String() != "-9999.99" {
		t.Errorf("Stated = %s, want -9999.99", mismatch.Stated)
	}
	if doc.closeCalls != 1 {
		t.Errorf("document closed %d times on failure path, want 1", doc.closeCalls)
	}
}

func TestParse_MissingBillingPeriod(t *testing.T) {
	pages := samplePages()
	// Drop the billing period row from page 1.
	var trimmed []parser.Token
	for _, token := range pages[0] {
		if token.Top == 60 {
			continue
		}
		trimmed = append(trimmed, token)
	}
	pages[0] = trimmed

	doc := &mockDocument{pages: pages}
	_, err := sampleParser(doc).Parse("statement.pdf")

	var integrity *statement.DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("error = %v, want *DataIntegrityError", err)
	}
	if doc.closeCalls != 1 {
		t.Errorf("document closed %d times on failure path, want 1", doc.closeCalls)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	doc := &mockDocument{}
	_, err := sampleParser(doc).Parse("statement.pdf")

	var integrity *statement.DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("error = %v, want *DataIntegrityError", err)
	}
}

func TestParse_OpenFailure(t *testing.T) {
	src := &mockSource{
		OpenFunc: func(path string) (parser.Document, error) {
			return nil, errors.New("no such file")
		},
	}
	p := parser.NewWithSource(src, zerolog.Nop())

	if _, err := p.Parse("missing.pdf"); err == nil {
		t.Fatal("Parse expected error for unopenable document")
	}
}
