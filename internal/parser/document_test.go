package parser

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestMergeWords(t *testing.T) {
	// Glyph-level items for "Jul07  $32.53" on one line of a 792pt page.
	items := []pdf.Text{
		{S: "J", X: 82, Y: 702, W: 6},
		{S: "u", X: 88, Y: 702, W: 6},
		{S: "l", X: 94, Y: 702, W: 3},
		{S: "0", X: 97, Y: 702, W: 6},
		{S: "7", X: 103, Y: 702, W: 6},
		// Wide gap: a separate word.
		{S: "$32.53", X: 520, Y: 702, W: 30},
	}

	tokens := mergeWords(items, 792)
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2: %+v", len(tokens), tokens)
	}
	if tokens[0].Text != "Jul07" || tokens[0].Left != 82 {
		t.Errorf("first token = %+v", tokens[0])
	}
	if tokens[1].Text != "$32.53" || tokens[1].Left != 520 {
		t.Errorf("second token = %+v", tokens[1])
	}
	if tokens[0].Top != 90 {
		t.Errorf("Top = %v, want 90 (792 - 702)", tokens[0].Top)
	}
}

func TestMergeWords_SpaceGlyphSplits(t *testing.T) {
	items := []pdf.Text{
		{S: "Jul", X: 82, Y: 702, W: 15},
		{S: " ", X: 97, Y: 702, W: 3},
		{S: "07", X: 100, Y: 702, W: 12},
	}

	tokens := mergeWords(items, 792)
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2: %+v", len(tokens), tokens)
	}
	if tokens[0].Text != "Jul" || tokens[1].Text != "07" {
		t.Errorf("tokens = %+v", tokens)
	}
}

func TestMergeWords_LineSeparation(t *testing.T) {
	// Same X, different lines: never merged, ordered top first.
	items := []pdf.Text{
		{S: "lower", X: 82, Y: 600, W: 25},
		{S: "upper", X: 82, Y: 702, W: 25},
	}

	tokens := mergeWords(items, 792)
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2: %+v", len(tokens), tokens)
	}
	if tokens[0].Text != "upper" || tokens[1].Text != "lower" {
		t.Errorf("token order = %+v", tokens)
	}
}

func TestMergeWords_Empty(t *testing.T) {
	if tokens := mergeWords(nil, 792); tokens != nil {
		t.Errorf("mergeWords(nil) = %v, want nil", tokens)
	}
}
