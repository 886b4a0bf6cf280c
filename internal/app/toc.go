package app

import (
    "strings"

    "github.com/gosimple/slug"
)

// appendAutoToC inserts a Markdown table of contents after the title and date
// lines when the document has at least minHeadings H2/H3 headings. Documents
// that already carry a table of contents are returned unchanged.
func appendAutoToC(markdown string, minHeadings int) string {
    if minHeadings <= 0 { minHeadings = 6 }
    if containsHeadingCase(markdown, "table of contents") {
        return markdown
    }
    lines := strings.Split(markdown, "\n")

    type item struct{ level int; text string }
    var items []item
    h1Seen := false
    for _, raw := range lines {
        s := strings.TrimSpace(raw)
        level := countPrefix(s, '#')
        if level == 0 || level > 6 || len(s) <= level || s[level] != ' ' { continue }
        t := strings.TrimSpace(s[level:])
        if !h1Seen && level == 1 {
            h1Seen = true
            continue
        }
        if level == 2 || level == 3 {
            if strings.EqualFold(t, "manifest") { continue }
            items = append(items, item{level: level, text: t})
        }
    }
    if len(items) < minHeadings { return markdown }

    var b strings.Builder
    b.WriteString("## Table of contents\n\n")
    for _, it := range items {
        anchor := slug.Make(it.text)
        if anchor == "" { continue }
        if it.level == 3 { b.WriteString("  ") }
        b.WriteString("- [")
        b.WriteString(it.text)
        b.WriteString("](#")
        b.WriteString(anchor)
        b.WriteString(")\n")
    }

    at := indexAfterHeader(lines)
    out := make([]string, 0, len(lines)+len(items)+4)
    out = append(out, lines[:at]...)
    if at > 0 && strings.TrimSpace(lines[at-1]) != "" {
        out = append(out, "")
    }
    out = append(out, b.String())
    out = append(out, lines[at:]...)
    return strings.Join(out, "\n")
}

// indexAfterHeader returns the line index after the first H1 and the next
// non-empty line (the date).
func indexAfterHeader(lines []string) int {
    first := -1
    for i, raw := range lines {
        s := strings.TrimSpace(raw)
        if strings.HasPrefix(s, "# ") { first = i; break }
        if s != "" { break }
    }
    if first == -1 { return 0 }
    for i := first + 1; i < len(lines); i++ {
        if strings.TrimSpace(lines[i]) != "" { return i + 1 }
    }
    return first + 1
}

func countPrefix(s string, r byte) int {
    n := 0
    for i := 0; i < len(s) && s[i] == r; i++ { n++ }
    return n
}

func containsHeadingCase(markdown, title string) bool {
    for _, line := range strings.Split(markdown, "\n") {
        s := strings.TrimSpace(line)
        if !strings.HasPrefix(s, "#") { continue }
        s = strings.TrimSpace(strings.TrimLeft(s, "#"))
        if strings.EqualFold(s, title) { return true }
    }
    return false
}
