package aggregate

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/hyperifyio/edulang/internal/classify"
	"github.com/hyperifyio/edulang/internal/langfile"
)

func TestBuild_MixedEntries(t *testing.T) {
	entries := []langfile.Entry{
		{Key: "commands.generic.notFound", Value: "Unknown command"},
		{Key: "item.diamond_sword.name", Value: "Diamond Sword"},
		{Key: "sign.text.1", Value: "§aWelcome! Explore the %s to learn about photosynthesis."},
	}
	c := Build(entries, classify.DefaultConfig(), 0)
	if c.Seen != 3 || c.Accepted != 1 || c.Rejected != 2 {
		t.Fatalf("unexpected counts: %+v", c)
	}
	if c.Text != "Welcome! Explore the something to learn about photosynthesis." {
		t.Fatalf("unexpected corpus text %q", c.Text)
	}
	if c.Ratio < 0.333 || c.Ratio > 0.334 {
		t.Fatalf("unexpected ratio %v", c.Ratio)
	}
	if c.Words != 8 {
		t.Fatalf("expected 8 words, got %d", c.Words)
	}
	if c.AcceptedByCategory[classify.CategoryNarrative] != 1 {
		t.Fatalf("expected narrative count, got %+v", c.AcceptedByCategory)
	}
	if c.RejectedByCategory[classify.CategorySystemMessage] != 1 || c.RejectedByCategory[classify.CategoryIdentifier] != 1 {
		t.Fatalf("unexpected rejected categories %+v", c.RejectedByCategory)
	}
}

func TestAggregator_JoinsInFileOrder(t *testing.T) {
	a := New(1)
	a.Add(langfile.Entry{Key: "npc.a"}, classify.Decision{Accepted: true, Category: classify.CategoryDialogue, Cleaned: "First line here."})
	a.Add(langfile.Entry{Key: "npc.b"}, classify.Decision{Accepted: true, Category: classify.CategoryDialogue, Cleaned: "Second line here."})
	c := a.Corpus()
	if c.Text != "First line here.\nSecond line here." {
		t.Fatalf("unexpected text %q", c.Text)
	}
	if c.Chars != utf8.RuneCountInString(c.Text) {
		t.Fatalf("chars mismatch: %d", c.Chars)
	}
	if len(c.AcceptedSamples) != 1 || c.AcceptedSamples[0].Key != "npc.a" {
		t.Fatalf("sample limit not honored: %+v", c.AcceptedSamples)
	}
}

func TestCorpus_EmptyHasZeroRatio(t *testing.T) {
	c := New(0).Corpus()
	if c.Ratio != 0 || c.Seen != 0 || c.Text != "" || c.Words != 0 {
		t.Fatalf("unexpected empty corpus %+v", c)
	}
}

func TestCorpus_SnapshotIsIndependent(t *testing.T) {
	a := New(2)
	a.Add(langfile.Entry{Key: "x"}, classify.Decision{Category: classify.CategoryFragment})
	first := a.Corpus()
	a.Add(langfile.Entry{Key: "y"}, classify.Decision{Category: classify.CategoryFragment})
	if first.RejectedByCategory[classify.CategoryFragment] != 1 || first.Seen != 1 {
		t.Fatalf("snapshot mutated: %+v", first)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("ä", 200)
	got := Truncate(long, SampleRunes)
	if utf8.RuneCountInString(got) != SampleRunes || !strings.HasSuffix(got, "…") {
		t.Fatalf("unexpected truncation length %d", utf8.RuneCountInString(got))
	}
	if Truncate("short", 10) != "short" {
		t.Fatalf("short strings must be unchanged")
	}
}
