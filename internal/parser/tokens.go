package parser

import (
	"math"
	"sort"
	"strings"
)

// Token is one positioned word extracted from a PDF page. Left is the x
// coordinate of the word's left edge; Top is measured down from the top of
// the page. Tokens are ephemeral: produced per page and consumed by row
// grouping.
type Token struct {
	Text string
	Left float64
	Top  float64
}

// Row is a visual line of tokens sharing a rounded Top value, ordered
// left-to-right.
type Row []Token

// joined concatenates the row's token text without separators. Label
// matching runs against this form so that word splits inside a label do not
// matter.
func (r Row) joined() string {
	var b strings.Builder
	for _, t := range r {
		b.WriteString(t.Text)
	}
	return b.String()
}

// bandTokens returns the row's tokens whose left edge falls inside the band.
func (r Row) bandTokens(b band) []Token {
	var out []Token
	for _, t := range r {
		if b.contains(t.Left) {
			out = append(out, t)
		}
	}
	return out
}

// bandText space-joins the text of the row's tokens inside the band.
func (r Row) bandText(b band) string {
	parts := r.bandTokens(b)
	texts := make([]string, len(parts))
	for i, t := range parts {
		texts[i] = t.Text
	}
	return strings.Join(texts, " ")
}

// groupRows groups a page's tokens into rows by vertical position. Top
// values are rounded to the nearest integer to absorb sub-pixel jitter;
// tokens sharing a rounded Top form one row, sorted by Left ascending. Rows
// come back in top-to-bottom reading order. An empty token list yields nil.
func groupRows(tokens []Token) []Row {
	if len(tokens) == 0 {
		return nil
	}

	byTop := make(map[int]Row)
	for _, t := range tokens {
		k := int(math.Round(t.Top))
		byTop[k] = append(byTop[k], t)
	}

	tops := make([]int, 0, len(byTop))
	for k := range byTop {
		tops = append(tops, k)
	}
	sort.Ints(tops)

	rows := make([]Row, 0, len(tops))
	for _, k := range tops {
		row := byTop[k]
		sort.SliceStable(row, func(i, j int) bool { return row[i].Left < row[j].Left })
		rows = append(rows, row)
	}
	return rows
}
