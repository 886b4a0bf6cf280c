package validate

import (
    "fmt"
    "strings"

    "github.com/hyperifyio/edulang/internal/aggregate"
)

// Thresholds are the minimum-content requirements a corpus must meet before
// readability scoring.
type Thresholds struct {
    MinWords        int  `json:"min_words"`
    MinChars        int  `json:"min_chars"`
    RequireTerminal bool `json:"require_terminal"`
}

// DefaultThresholds: 15 words, 50 characters, and at least one of . ! ?
func DefaultThresholds() Thresholds {
    return Thresholds{MinWords: 15, MinChars: 50, RequireTerminal: true}
}

// InsufficientContentError is returned by Gate when a corpus is too thin to
// score. It carries the measured values.
type InsufficientContentError struct {
    Words       int
    Chars       int
    HasTerminal bool
    Thresholds  Thresholds
}

func (e *InsufficientContentError) Error() string {
    var missing []string
    if e.Words < e.Thresholds.MinWords {
        missing = append(missing, fmt.Sprintf("%d words (need at least %d)", e.Words, e.Thresholds.MinWords))
    }
    if e.Chars < e.Thresholds.MinChars {
        missing = append(missing, fmt.Sprintf("%d characters (need at least %d)", e.Chars, e.Thresholds.MinChars))
    }
    if e.Thresholds.RequireTerminal && !e.HasTerminal {
        missing = append(missing, "no complete sentence (need at least one '.', '!' or '?')")
    }
    return "insufficient educational content for readability analysis: found " + strings.Join(missing, ", ")
}

// Gate checks c against t and returns *InsufficientContentError when any
// threshold is not met. Zero-valued limits are not enforced.
func Gate(c aggregate.Corpus, t Thresholds) error {
    terminal := strings.ContainsAny(c.Text, ".!?")
    if c.Words >= t.MinWords && c.Chars >= t.MinChars && (!t.RequireTerminal || terminal) {
        return nil
    }
    return &InsufficientContentError{Words: c.Words, Chars: c.Chars, HasTerminal: terminal, Thresholds: t}
}
