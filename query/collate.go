package query

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kbukum/streamkit/pipeline"
)

type foldedText struct {
	key  string
	text string
}

// sortFolded orders text by its Unicode case-folded form. Ties keep input
// order. A Caser is stateful, so each call gets its own.
func sortFolded(p *pipeline.Pipeline[string], descending bool) *pipeline.Pipeline[string] {
	folder := cases.Fold()
	keyed := pipeline.Map(p, func(_ context.Context, s string) (foldedText, error) {
		return foldedText{key: folder.String(s), text: s}, nil
	})

	compare := func(a, b foldedText) int { return strings.Compare(a.key, b.key) }
	if descending {
		compare = pipeline.Reverse(compare)
	}

	return pipeline.Map(pipeline.Sorted(keyed, compare), func(_ context.Context, f foldedText) (string, error) {
		return f.text, nil
	})
}

// upper maps text to its language-neutral uppercase form.
func upper(p *pipeline.Pipeline[string]) *pipeline.Pipeline[string] {
	caser := cases.Upper(language.Und)
	return pipeline.Map(p, func(_ context.Context, s string) (string, error) {
		return caser.String(s), nil
	})
}

// FoldCompare compares a and b by their case-folded forms.
func FoldCompare(a, b string) int {
	folder := cases.Fold()
	return strings.Compare(folder.String(a), folder.String(b))
}
