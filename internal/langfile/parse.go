package langfile

import "strings"

// Parse splits decoded `.lang` text into entries. Blank lines and `#` comments
// are skipped; trailing tab-prefixed `##` comments are removed from values.
// Lines without a `=` or with an empty key are counted as malformed. When a key
// repeats, the last occurrence wins and keeps its own position.
func Parse(text string) ([]Entry, int) {
    lines := strings.Split(text, "\n")
    entries := make([]Entry, 0, len(lines))
    index := make(map[string]int, len(lines))
    malformed := 0
    for i, raw := range lines {
        line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
        if line == "" || strings.HasPrefix(line, "#") {
            continue
        }
        eq := strings.IndexByte(line, '=')
        if eq <= 0 {
            malformed++
            continue
        }
        key := strings.TrimSpace(line[:eq])
        if key == "" {
            malformed++
            continue
        }
        value := stripInlineComment(line[eq+1:])
        if prev, ok := index[key]; ok {
            entries[prev].Key = ""
        }
        index[key] = len(entries)
        entries = append(entries, Entry{Key: key, Value: value, Line: i + 1})
    }
    out := entries[:0]
    for _, e := range entries {
        if e.Key != "" {
            out = append(out, e)
        }
    }
    return out, malformed
}

// stripInlineComment drops a Bedrock-style "\t##" trailing comment.
func stripInlineComment(v string) string {
    if i := strings.Index(v, "\t##"); i >= 0 {
        v = v[:i]
    }
    return strings.TrimSpace(v)
}
