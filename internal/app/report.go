package app

import (
	"time"
	"unicode/utf8"

	"github.com/hyperifyio/edulang/internal/aggregate"
	"github.com/hyperifyio/edulang/internal/readability"
	selecter "github.com/hyperifyio/edulang/internal/select"
)

// Report outcomes.
const (
	OutcomeScored       = "scored"
	OutcomeInsufficient = "insufficient_content"
)

// Warning codes.
const (
	WarnNonEnglish       = "non_english_content"
	WarnMalformedLines   = "malformed_lines"
	WarnMalformedEntries = "malformed_entries"
)

// SampleTextChars is how much of the corpus is quoted in the report.
const SampleTextChars = 500

// Warning is a non-fatal finding attached to a report.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AnalyzedFile describes the language file the report was computed from.
type AnalyzedFile struct {
	Name           string `json:"name"`
	RelPath        string `json:"relative_path"`
	SizeBytes      int64  `json:"size_bytes"`
	Encoding       string `json:"encoding"`
	Language       string `json:"language"`
	IsEnglish      bool   `json:"is_english"`
	Entries        int    `json:"entries"`
	MalformedLines int    `json:"malformed_lines"`
	SHA256         string `json:"sha256"`
}

// Settings are the analysis inputs that influence a report. They are part of
// the cache key.
type Settings struct {
	MinWords          int      `json:"min_words"`
	MinChars          int      `json:"min_chars"`
	RequireTerminal   bool     `json:"require_terminal"`
	MinFileBytes      int64    `json:"min_file_bytes"`
	SampleCount       int      `json:"sample_count"`
	CustomPrefixes    []string `json:"custom_prefixes,omitempty"`
	TechnicalPrefixes []string `json:"technical_prefixes,omitempty"`
}

// Report is the result of analyzing one world.
type Report struct {
	World          string               `json:"world"`
	WorldDir       string               `json:"world_dir"`
	GeneratedAt    time.Time            `json:"generated_at"`
	Outcome        string               `json:"outcome"`
	File           AnalyzedFile         `json:"analyzed_file"`
	Selection      selecter.Selection   `json:"selection"`
	Corpus         aggregate.Corpus     `json:"classification"`
	CorpusSHA256   string               `json:"corpus_sha256"`
	SampleText     string               `json:"sample_text"`
	FullTextLength int                  `json:"full_text_length"`
	Metrics        *readability.Metrics `json:"metrics,omitempty"`
	Refusal        string               `json:"refusal,omitempty"`
	Warnings       []Warning            `json:"warnings,omitempty"`
	Settings       Settings             `json:"settings"`
	CacheHit       bool                 `json:"cache_hit"`
	Version        string               `json:"version"`
}

// HasWarning reports whether r carries a warning with code.
func (r *Report) HasWarning(code string) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// sampleText returns the first SampleTextChars characters of text, marking a
// cut with "...".
func sampleText(text string) string {
	if utf8.RuneCountInString(text) <= SampleTextChars {
		return text
	}
	return string([]rune(text)[:SampleTextChars]) + "..."
}
