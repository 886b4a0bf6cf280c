// Package validate holds the checks applied around an analysis: the
// minimum-content gate on the cleaned corpus and structural checks on the
// rendered Markdown report.
package validate

import (
    "fmt"
    "regexp"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateStructure checks the rendered Markdown report:
// - the first non-empty line is a single '# ' H1 title
// - the second non-empty line is an ISO date (YYYY-MM-DD)
// - every outline heading is present, in order (case-insensitive)
// - there are no further H1 headings
func ValidateStructure(markdown string, outline []string) error {
    lines := splitLines(markdown)
    firstIdx, secondIdx := -1, -1
    for i := 0; i < len(lines); i++ {
        if trimSpace(lines[i]) == "" {
            continue
        }
        if firstIdx == -1 {
            firstIdx = i
            continue
        }
        secondIdx = i
        break
    }
    if firstIdx == -1 {
        return fmt.Errorf("document is empty; missing title")
    }
    if headingLevel(trimSpace(lines[firstIdx])) != 1 {
        return fmt.Errorf("title must be a single '# ' H1 heading")
    }
    if secondIdx == -1 || !dateRe.MatchString(trimSpace(lines[secondIdx])) {
        return fmt.Errorf("date line must be YYYY-MM-DD below title")
    }

    type hd struct {
        level int
        text  string
    }
    var heads []hd
    for i := secondIdx + 1; i < len(lines); i++ {
        line := trimSpace(lines[i])
        if !isHeading(line) {
            continue
        }
        heads = append(heads, hd{level: headingLevel(line), text: stripHeading(line)})
    }

    pos := 0
    for idx, want := range outline {
        found := false
        wanted := trimSpace(want)
        for ; pos < len(heads); pos++ {
            if equalsIgnoreCase(trimSpace(heads[pos].text), wanted) {
                found = true
                pos++
                break
            }
        }
        if !found {
            return fmt.Errorf("missing or out-of-order report section: %q (index %d)", want, idx)
        }
    }

    for _, h := range heads {
        if h.level == 1 {
            return fmt.Errorf("document must not contain additional H1 headings beyond the title")
        }
    }
    return nil
}

func splitLines(s string) []string {
    var out []string
    start := 0
    for i := 0; i < len(s); i++ {
        if s[i] == '\n' {
            out = append(out, s[start:i])
            start = i + 1
        }
    }
    out = append(out, s[start:])
    return out
}

func trimSpace(s string) string {
    i := 0
    j := len(s)
    for i < j && (s[i] == ' ' || s[i] == '\t' || s[i] == '\r') {
        i++
    }
    for j > i && (s[j-1] == ' ' || s[j-1] == '\t' || s[j-1] == '\r') {
        j--
    }
    return s[i:j]
}

func isHeading(s string) bool {
    lvl := headingLevel(s)
    return lvl > 0 && lvl <= 6
}

// headingLevel returns the number of leading '#' when followed by a space,
// else 0.
func headingLevel(s string) int {
    i := 0
    for i < len(s) && s[i] == '#' {
        i++
    }
    if i == 0 || i >= len(s) || s[i] != ' ' {
        return 0
    }
    return i
}

func stripHeading(s string) string {
    i := 0
    for i < len(s) && s[i] == '#' {
        i++
    }
    if i < len(s) && s[i] == ' ' {
        i++
    }
    return trimSpace(s[i:])
}

func equalsIgnoreCase(a, b string) bool {
    if len(a) != len(b) {
        return false
    }
    for i := 0; i < len(a); i++ {
        ca := a[i]
        cb := b[i]
        if 'A' <= ca && ca <= 'Z' {
            ca = ca - 'A' + 'a'
        }
        if 'A' <= cb && cb <= 'Z' {
            cb = cb - 'A' + 'a'
        }
        if ca != cb {
            return false
        }
    }
    return true
}
