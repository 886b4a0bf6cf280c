package app

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hyperifyio/edulang/internal/classify"
)

const reportCSS = `body{font-family:sans-serif;max-width:48rem;margin:2rem auto;line-height:1.5}
table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:.2rem .6rem;text-align:left}
blockquote{color:#444;border-left:3px solid #ccc;margin-left:0;padding-left:1rem}
.warning{color:#a40}`

// elem creates an element node with optional attributes given as key/value
// pairs.
func elem(a atom.Atom, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// add appends children to parent and returns parent.
func add(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

func textElem(a atom.Atom, s string) *html.Node {
	return add(elem(a), text(s))
}

func listOf(items ...string) *html.Node {
	ul := elem(atom.Ul)
	for _, it := range items {
		add(ul, textElem(atom.Li, it))
	}
	return ul
}

func tableOf(header []string, rows [][]string) *html.Node {
	t := elem(atom.Table)
	tr := elem(atom.Tr)
	for _, h := range header {
		add(tr, textElem(atom.Th, h))
	}
	add(t, tr)
	for _, row := range rows {
		tr := elem(atom.Tr)
		for _, c := range row {
			add(tr, textElem(atom.Td, c))
		}
		add(t, tr)
	}
	return t
}

// renderReportHTML renders a scored report as a standalone HTML page. All
// text is escaped by the renderer.
func renderReportHTML(r *Report) ([]byte, error) {
	title := "Educational content analysis: " + r.World
	doc := &html.Node{Type: html.DocumentNode}
	add(doc, &html.Node{Type: html.DoctypeNode, Data: "html"})
	root := add(elem(atom.Html, "lang", "en"))
	head := add(elem(atom.Head),
		elem(atom.Meta, "charset", "utf-8"),
		textElem(atom.Title, title),
		textElem(atom.Style, reportCSS),
	)
	body := elem(atom.Body)
	add(doc, add(root, head, body))

	add(body, textElem(atom.H1, title), textElem(atom.P, r.GeneratedAt.UTC().Format("2006-01-02")))

	add(body, textElem(atom.H2, "Summary"))
	var summary []string
	m := r.Metrics
	if m != nil {
		summary = append(summary,
			"Reading level: "+m.ReadingLevel,
			fmt.Sprintf("Target age: %d years", m.TargetAge),
			fmt.Sprintf("Flesch reading ease: %.2f (%s)", m.FleschReadingEase, m.EaseInterpretation),
			fmt.Sprintf("Flesch-Kincaid grade: %.2f", m.FleschKincaidGrade),
			fmt.Sprintf("Reading time: %.1f minutes", m.ReadingTimeMinutes),
		)
	}
	summary = append(summary, "Educational words analyzed: "+humanize.Comma(int64(r.Corpus.Words)))
	add(body, listOf(summary...))
	for _, w := range r.Warnings {
		add(body, add(elem(atom.P, "class", "warning"), textElem(atom.Strong, w.Code+": "), text(w.Message)))
	}

	add(body, textElem(atom.H2, "Analyzed file"), listOf(
		"Name: "+r.File.Name,
		"Path: "+r.File.RelPath,
		"Size: "+humanize.Bytes(uint64(r.File.SizeBytes)),
		"Encoding: "+r.File.Encoding,
		fmt.Sprintf("Language: %s (English: %s)", r.File.Language, yesNo(r.File.IsEnglish)),
	))

	add(body, textElem(atom.H2, "Classification"), listOf(
		fmt.Sprintf("Entries seen: %d", r.Corpus.Seen),
		fmt.Sprintf("Educational (accepted): %d", r.Corpus.Accepted),
		fmt.Sprintf("Technical or unusable (rejected): %d", r.Corpus.Rejected),
		fmt.Sprintf("Acceptance ratio: %.1f%%", r.Corpus.Ratio*100),
	))
	for _, part := range []struct {
		title  string
		counts map[classify.Category]int
	}{
		{"Accepted by category", r.Corpus.AcceptedByCategory},
		{"Rejected by category", r.Corpus.RejectedByCategory},
	} {
		if len(part.counts) == 0 {
			continue
		}
		var rows [][]string
		for _, c := range sortedCategories(part.counts) {
			rows = append(rows, []string{string(c), fmt.Sprint(part.counts[c])})
		}
		add(body, textElem(atom.H3, part.title), tableOf([]string{"Category", "Entries"}, rows))
	}

	add(body, textElem(atom.H2, "Readability scores"))
	if m != nil {
		add(body, tableOf([]string{"Metric", "Value"}, [][]string{
			{"Flesch reading ease", fmt.Sprintf("%.2f", m.FleschReadingEase)},
			{"Flesch-Kincaid grade", fmt.Sprintf("%.2f", m.FleschKincaidGrade)},
			{"Gunning fog", fmt.Sprintf("%.2f", m.GunningFog)},
			{"SMOG index", fmt.Sprintf("%.2f", m.SMOGIndex)},
			{"Automated readability index", fmt.Sprintf("%.2f", m.AutomatedReadabilityIndex)},
			{"Coleman-Liau index", fmt.Sprintf("%.2f", m.ColemanLiauIndex)},
			{"Linsear write", fmt.Sprintf("%.2f", m.LinsearWrite)},
			{"Dale-Chall", fmt.Sprintf("%.2f", m.DaleChall)},
		}))
		add(body, textElem(atom.H2, "Text statistics"), listOf(
			"Words: "+humanize.Comma(int64(m.WordCount)),
			"Sentences: "+humanize.Comma(int64(m.SentenceCount)),
			"Syllables: "+humanize.Comma(int64(m.SyllableCount)),
			"Difficult words (3+ syllables): "+humanize.Comma(int64(m.DifficultWords)),
		))
	}

	add(body, textElem(atom.H2, "Sample text"), textElem(atom.Blockquote, r.SampleText))
	add(body, textElem(atom.P, "Generated by edulang "+VersionString()))

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
