// Package classify decides whether a localization entry is educational,
// learner-facing text or a technical/system string.
//
// Classification is an ordered rule table evaluated top to bottom; the first
// matching rule decides. Technical key rules come first, so a key matching
// both an educational and a technical pattern is excluded.
package classify

import (
    "errors"
    "strings"
    "unicode/utf8"

    "github.com/hyperifyio/edulang/internal/extract"
    "github.com/hyperifyio/edulang/internal/langfile"
)

// Category labels the rule that decided an entry.
type Category string

const (
    // technical
    CategoryIdentifier    Category = "identifier"
    CategorySystemMessage Category = "system-message"
    CategoryAchievement   Category = "achievement"
    CategoryUILabel       Category = "ui-label"
    CategoryTechnical     Category = "technical"
    CategoryMalformed     Category = "malformed"
    CategoryFragment      Category = "fragment"
    CategoryUnclassified  Category = "unclassified"

    // educational
    CategoryDialogue      Category = "dialogue"
    CategoryInstructional Category = "instructional"
    CategoryNarrative     Category = "narrative"
    CategoryCustom        Category = "custom"
    CategoryProse         Category = "prose"
)

// Rejection reasons reported alongside rejected decisions.
const (
    ReasonTechnicalKey = "technical-key"
    ReasonMalformed    = "malformed"
    ReasonEmpty        = "empty"
    ReasonTooShort     = "too-short"
    ReasonNotProse     = "not-prose"
)

// ProseMinChars is the length above which a multi-word value without a
// sentence terminator still reads as prose.
const ProseMinChars = 20

// Decision is the outcome for a single entry.
type Decision struct {
    Accepted bool     `json:"accepted"`
    Category Category `json:"category"`
    Rule     string   `json:"rule"`
    Reason   string   `json:"reason,omitempty"`
    // Cleaned is the cleaned value for accepted entries.
    Cleaned string `json:"cleaned,omitempty"`
    // Err is set for malformed values.
    Err error `json:"-"`
}

// subject is what rules look at: the entry plus cleaning results computed once.
type subject struct {
    key      string
    raw      string
    stripped string
    cleaned  string
    cleanErr error
}

// Classify evaluates cfg's rules against e. It is a pure function of its inputs.
func Classify(e langfile.Entry, cfg *Config) Decision {
    if cfg == nil {
        cfg = DefaultConfig()
    }
    s := subject{key: strings.ToLower(strings.TrimSpace(e.Key)), raw: e.Value}
    s.cleaned, s.cleanErr = extract.Clean(e.Value)
    if !errors.Is(s.cleanErr, extract.ErrMalformed) {
        s.stripped = extract.CollapseWhitespace(extract.StripFormatting(e.Value))
    }
    for _, r := range cfg.rules {
        if !r.match(&s) {
            continue
        }
        d := Decision{Accepted: r.Verdict == Accept, Category: r.Category, Rule: r.Name, Reason: r.Reason}
        if d.Accepted {
            d.Cleaned = s.cleaned
        }
        if r.Category == CategoryMalformed {
            d.Err = s.cleanErr
        }
        return d
    }
    return Decision{Category: CategoryUnclassified, Rule: "default", Reason: ReasonNotProse}
}

// IsProse reports whether cleaned text reads like prose: at least two words
// and either a sentence terminator or more than ProseMinChars characters.
func IsProse(cleaned string) bool {
    if len(strings.Fields(cleaned)) < 2 {
        return false
    }
    if HasTerminal(cleaned) {
        return true
    }
    return utf8.RuneCountInString(cleaned) >= ProseMinChars
}

// HasTerminal reports whether s contains '.', '!' or '?'.
func HasTerminal(s string) bool {
    return strings.ContainsAny(s, ".!?")
}
