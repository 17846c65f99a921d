package parser

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DocumentSource opens statement documents by path. The parser depends on
// this interface rather than on a PDF library directly, which lets tests
// feed synthetic token pages through the full assembly path.
type DocumentSource interface {
	Open(path string) (Document, error)
}

// Document is one open statement document. PageTokens returns the positioned
// word tokens of page n (0-based) with Top measured from the page's top
// edge. Close must be safe to defer on every exit path.
type Document interface {
	PageCount() int
	PageTokens(n int) ([]Token, error)
	Close() error
}

// wordTolerance is the merge distance for tokenization: text items within
// this horizontal gap on the same line fuse into one word, and items within
// this vertical distance count as the same line.
const wordTolerance = 3.0

// letterHeight is the US Letter page height in points, used when a page
// carries no usable MediaBox.
const letterHeight = 792.0

type pdfSource struct{}

// NewPDFSource returns the production DocumentSource backed by ledongthuc/pdf.
func NewPDFSource() DocumentSource { return pdfSource{} }

func (pdfSource) Open(path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Open: pdf %q: %w", path, err)
	}
	return &pdfDocument{f: f, r: r}, nil
}

type pdfDocument struct {
	f *os.File
	r *pdf.Reader
}

func (d *pdfDocument) PageCount() int { return d.r.NumPage() }

func (d *pdfDocument) PageTokens(n int) ([]Token, error) {
	p := d.r.Page(n + 1)
	if p.V.IsNull() {
		return nil, nil
	}
	return mergeWords(p.Content().Text, pageHeight(p)), nil
}

func (d *pdfDocument) Close() error { return d.f.Close() }

func pageHeight(p pdf.Page) float64 {
	mb := p.V.Key("MediaBox")
	if mb.Kind() == pdf.Array && mb.Len() == 4 {
		if h := mb.Index(3).Float64() - mb.Index(1).Float64(); h > 0 {
			return h
		}
	}
	return letterHeight
}

// mergeWords fuses the library's per-glyph text items into word tokens and
// flips the PDF bottom-origin Y into a top coordinate. Items are ordered
// top-to-bottom then left-to-right; an item starts a new word when it sits
// on a different line, follows a gap wider than the tolerance, or follows an
// explicit space glyph.
func mergeWords(texts []pdf.Text, height float64) []Token {
	if len(texts) == 0 {
		return nil
	}

	items := make([]pdf.Text, len(texts))
	copy(items, texts)
	sort.SliceStable(items, func(i, j int) bool {
		if math.Abs(items[i].Y-items[j].Y) > wordTolerance {
			return items[i].Y > items[j].Y
		}
		return items[i].X < items[j].X
	})

	var tokens []Token
	var cur *Token
	var curY, curEnd float64

	flush := func() {
		if cur != nil && strings.TrimSpace(cur.Text) != "" {
			cur.Text = strings.TrimSpace(cur.Text)
			tokens = append(tokens, *cur)
		}
		cur = nil
	}

	for _, it := range items {
		if strings.TrimSpace(it.S) == "" {
			flush()
			continue
		}
		sameLine := cur != nil && math.Abs(it.Y-curY) <= wordTolerance
		if !sameLine || it.X-curEnd > wordTolerance {
			flush()
			cur = &Token{Text: it.S, Left: it.X, Top: height - it.Y}
			curY = it.Y
		} else {
			cur.Text += it.S
		}
		curEnd = it.X + it.W
	}
	flush()

	return tokens
}
