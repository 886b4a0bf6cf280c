// Package aggregate folds classification decisions into a single cleaned
// corpus with summary statistics.
package aggregate

import (
	"strings"
	"unicode/utf8"

	"github.com/hyperifyio/edulang/internal/classify"
	"github.com/hyperifyio/edulang/internal/langfile"
)

// SampleRunes bounds the length of each kept sample snippet.
const SampleRunes = 160

// DefaultSamples is the number of accepted and rejected samples kept when
// the Aggregator is created with a non-positive limit.
const DefaultSamples = 5

// Sample is a short display snippet of one classified entry.
type Sample struct {
	Key      string            `json:"key"`
	Category classify.Category `json:"category"`
	Text     string            `json:"text"`
}

// Corpus is the aggregated result of one analysis.
type Corpus struct {
	Text     string  `json:"-"`
	Seen     int     `json:"seen"`
	Accepted int     `json:"accepted"`
	Rejected int     `json:"rejected"`
	Words    int     `json:"words"`
	Chars    int     `json:"chars"`
	Ratio    float64 `json:"ratio"`

	AcceptedByCategory map[classify.Category]int `json:"accepted_by_category"`
	RejectedByCategory map[classify.Category]int `json:"rejected_by_category"`

	AcceptedSamples []Sample `json:"accepted_samples,omitempty"`
	RejectedSamples []Sample `json:"rejected_samples,omitempty"`
}

// Aggregator accumulates decisions in file order. The zero value is not
// usable; construct with New.
type Aggregator struct {
	samples int
	parts   []string
	c       Corpus
}

// New returns an Aggregator keeping up to samples accepted and samples
// rejected snippets.
func New(samples int) *Aggregator {
	if samples <= 0 {
		samples = DefaultSamples
	}
	return &Aggregator{
		samples: samples,
		c: Corpus{
			AcceptedByCategory: map[classify.Category]int{},
			RejectedByCategory: map[classify.Category]int{},
		},
	}
}

// Add folds one decision for entry e.
func (a *Aggregator) Add(e langfile.Entry, d classify.Decision) {
	a.c.Seen++
	if d.Accepted && d.Cleaned != "" {
		a.c.Accepted++
		a.c.AcceptedByCategory[d.Category]++
		a.parts = append(a.parts, d.Cleaned)
		if len(a.c.AcceptedSamples) < a.samples {
			a.c.AcceptedSamples = append(a.c.AcceptedSamples, Sample{Key: e.Key, Category: d.Category, Text: Truncate(d.Cleaned, SampleRunes)})
		}
		return
	}
	a.c.Rejected++
	a.c.RejectedByCategory[d.Category]++
	if len(a.c.RejectedSamples) < a.samples {
		a.c.RejectedSamples = append(a.c.RejectedSamples, Sample{Key: e.Key, Category: d.Category, Text: Truncate(e.Value, SampleRunes)})
	}
}

// Corpus returns the aggregate so far. The returned value is a snapshot;
// further Adds do not change it.
func (a *Aggregator) Corpus() Corpus {
	c := a.c
	c.Text = strings.Join(a.parts, "\n")
	c.Words = len(strings.Fields(c.Text))
	c.Chars = utf8.RuneCountInString(c.Text)
	if c.Seen > 0 {
		c.Ratio = float64(c.Accepted) / float64(c.Seen)
	}
	c.AcceptedByCategory = copyCounts(a.c.AcceptedByCategory)
	c.RejectedByCategory = copyCounts(a.c.RejectedByCategory)
	c.AcceptedSamples = append([]Sample(nil), a.c.AcceptedSamples...)
	c.RejectedSamples = append([]Sample(nil), a.c.RejectedSamples...)
	return c
}

// Build classifies every entry with cfg and returns the resulting corpus.
func Build(entries []langfile.Entry, cfg *classify.Config, samples int) Corpus {
	a := New(samples)
	for _, e := range entries {
		a.Add(e, classify.Classify(e, cfg))
	}
	return a.Corpus()
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n <= 1 {
		return string(r[:n])
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}

func copyCounts(m map[classify.Category]int) map[classify.Category]int {
	out := make(map[classify.Category]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
