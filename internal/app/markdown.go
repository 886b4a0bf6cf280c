package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/hyperifyio/edulang/internal/aggregate"
	"github.com/hyperifyio/edulang/internal/classify"
)

// reportOutline lists the H2 sections every Markdown report carries, in order.
var reportOutline = []string{"Summary", "Analyzed file", "Classification", "Readability scores", "Text statistics", "Sample text"}

// renderMarkdown renders a scored report.
func renderMarkdown(r *Report) string {
	var b strings.Builder
	m := r.Metrics

	fmt.Fprintf(&b, "# Educational content analysis: %s\n\n", oneLine(r.World))
	b.WriteString(r.GeneratedAt.UTC().Format("2006-01-02"))
	b.WriteString("\n\n")

	b.WriteString("## Summary\n\n")
	if m != nil {
		fmt.Fprintf(&b, "- Reading level: %s\n", m.ReadingLevel)
		fmt.Fprintf(&b, "- Target age: %d years\n", m.TargetAge)
		fmt.Fprintf(&b, "- Flesch reading ease: %.2f (%s)\n", m.FleschReadingEase, m.EaseInterpretation)
		fmt.Fprintf(&b, "- Flesch-Kincaid grade: %.2f\n", m.FleschKincaidGrade)
		fmt.Fprintf(&b, "- Reading time: %.1f minutes\n", m.ReadingTimeMinutes)
	}
	fmt.Fprintf(&b, "- Educational words analyzed: %s\n", humanize.Comma(int64(r.Corpus.Words)))
	b.WriteString("\n")

	if len(r.Warnings) > 0 {
		b.WriteString("### Warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "- **%s**: %s\n", w.Code, oneLine(w.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Analyzed file\n\n")
	fmt.Fprintf(&b, "- Name: %s\n", r.File.Name)
	fmt.Fprintf(&b, "- Path: %s\n", r.File.RelPath)
	fmt.Fprintf(&b, "- Size: %s (%s bytes)\n", humanize.Bytes(uint64(r.File.SizeBytes)), humanize.Comma(r.File.SizeBytes))
	fmt.Fprintf(&b, "- Encoding: %s\n", r.File.Encoding)
	fmt.Fprintf(&b, "- Language: %s (English: %s)\n", r.File.Language, yesNo(r.File.IsEnglish))
	fmt.Fprintf(&b, "- Language files found: %d (%d English, %d other)\n", r.Selection.Total, r.Selection.English, r.Selection.Other)
	fmt.Fprintf(&b, "- Entries: %s; malformed lines skipped: %d\n\n", humanize.Comma(int64(r.File.Entries)), r.File.MalformedLines)

	b.WriteString("## Classification\n\n")
	fmt.Fprintf(&b, "- Entries seen: %d\n- Educational (accepted): %d\n- Technical or unusable (rejected): %d\n- Acceptance ratio: %.1f%%\n\n",
		r.Corpus.Seen, r.Corpus.Accepted, r.Corpus.Rejected, r.Corpus.Ratio*100)
	writeCategoryTable(&b, "Accepted by category", r.Corpus.AcceptedByCategory)
	writeCategoryTable(&b, "Rejected by category", r.Corpus.RejectedByCategory)

	b.WriteString("## Readability scores\n\n")
	if m != nil {
		b.WriteString("| Metric | Value |\n|---|---|\n")
		rows := []struct {
			name string
			v    float64
		}{
			{"Flesch reading ease", m.FleschReadingEase},
			{"Flesch-Kincaid grade", m.FleschKincaidGrade},
			{"Gunning fog", m.GunningFog},
			{"SMOG index", m.SMOGIndex},
			{"Automated readability index", m.AutomatedReadabilityIndex},
			{"Coleman-Liau index", m.ColemanLiauIndex},
			{"Linsear write", m.LinsearWrite},
			{"Dale-Chall", m.DaleChall},
		}
		for _, row := range rows {
			fmt.Fprintf(&b, "| %s | %.2f |\n", row.name, row.v)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Text statistics\n\n")
	if m != nil {
		fmt.Fprintf(&b, "- Words: %s\n", humanize.Comma(int64(m.WordCount)))
		fmt.Fprintf(&b, "- Characters: %s\n", humanize.Comma(int64(m.CharCount)))
		fmt.Fprintf(&b, "- Sentences: %s\n", humanize.Comma(int64(m.SentenceCount)))
		fmt.Fprintf(&b, "- Syllables: %s\n", humanize.Comma(int64(m.SyllableCount)))
		fmt.Fprintf(&b, "- Difficult words (3+ syllables): %s\n", humanize.Comma(int64(m.DifficultWords)))
		fmt.Fprintf(&b, "- Unfamiliar words (Dale-Chall): %s\n", humanize.Comma(int64(m.UnfamiliarWords)))
		fmt.Fprintf(&b, "- Average sentence length: %.2f words\n", m.AvgSentenceLength)
		fmt.Fprintf(&b, "- Average syllables per word: %.2f\n", m.AvgSyllablesPerWord)
	}
	b.WriteString("\n")

	b.WriteString("## Sample text\n\n")
	for _, line := range strings.Split(r.SampleText, "\n") {
		b.WriteString("> ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(r.Corpus.AcceptedSamples) > 0 || len(r.Corpus.RejectedSamples) > 0 {
		b.WriteString("## Sample entries\n\n")
		writeSamples(&b, "Accepted", r.Corpus.AcceptedSamples)
		writeSamples(&b, "Rejected", r.Corpus.RejectedSamples)
	}
	return b.String()
}

func writeCategoryTable(b *strings.Builder, title string, counts map[classify.Category]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n| Category | Entries |\n|---|---|\n", title)
	for _, c := range sortedCategories(counts) {
		fmt.Fprintf(b, "| %s | %d |\n", c, counts[c])
	}
	b.WriteString("\n")
}

// sortedCategories orders categories by count descending, then name.
func sortedCategories(counts map[classify.Category]int) []classify.Category {
	out := make([]classify.Category, 0, len(counts))
	for c := range counts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

func writeSamples(b *strings.Builder, title string, samples []aggregate.Sample) {
	if len(samples) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	for _, s := range samples {
		fmt.Fprintf(b, "- `%s` (%s): %s\n", strings.ReplaceAll(s.Key, "`", "'"), s.Category, oneLine(s.Text))
	}
	b.WriteString("\n")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
