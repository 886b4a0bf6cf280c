package app

import (
    "strconv"
    "strings"
)

// appendReproFooter appends a deterministic footer recording the tool
// version, the analyzed file, entry counts and whether the cache answered.
func appendReproFooter(markdown string, r *Report) string {
    var b strings.Builder
    b.WriteString(markdown)
    b.WriteString("\n\n---\n")
    b.WriteString("Reproducibility: ")
    b.WriteString("version=")
    b.WriteString(strings.TrimSpace(r.Version))
    b.WriteString("; commit=")
    b.WriteString(strings.TrimSpace(BuildCommit))
    b.WriteString("; file=")
    b.WriteString(r.File.RelPath)
    b.WriteString("; entries_seen=")
    b.WriteString(strconv.Itoa(r.Corpus.Seen))
    b.WriteString("; cache=")
    b.WriteString(boolToString(r.CacheHit))
    b.WriteString("\n")
    return b.String()
}
