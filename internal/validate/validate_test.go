package validate

import (
    "errors"
    "strings"
    "testing"

    "github.com/hyperifyio/edulang/internal/aggregate"
)

func corpus(text string) aggregate.Corpus {
    return aggregate.Corpus{Text: text, Words: len(strings.Fields(text)), Chars: len([]rune(text))}
}

func TestGate_FifteenWordsPasses(t *testing.T) {
    c := corpus("Plants use light from the sun to make food and they grow tall in the spring.")
    if c.Words != 16 {
        t.Fatalf("fixture has %d words", c.Words)
    }
    c = corpus("Plants use light from the sun to make food and they grow tall in spring.")
    if c.Words != 15 {
        t.Fatalf("fixture has %d words", c.Words)
    }
    if err := Gate(c, DefaultThresholds()); err != nil {
        t.Fatalf("expected pass at 15 words, got %v", err)
    }
}

func TestGate_FourteenWordsRefused(t *testing.T) {
    c := corpus("Plants use light from the sun to make food and they grow in spring.")
    if c.Words != 14 {
        t.Fatalf("fixture has %d words", c.Words)
    }
    err := Gate(c, DefaultThresholds())
    var ice *InsufficientContentError
    if !errors.As(err, &ice) {
        t.Fatalf("expected InsufficientContentError, got %v", err)
    }
    if ice.Words != 14 || !ice.HasTerminal {
        t.Fatalf("unexpected measurements %+v", ice)
    }
    if !strings.Contains(err.Error(), "14 words (need at least 15)") {
        t.Fatalf("message should state found and required: %q", err.Error())
    }
}

func TestGate_RequiresTerminal(t *testing.T) {
    c := corpus("plants use light from the sun to make food and they grow tall in the spring")
    err := Gate(c, DefaultThresholds())
    var ice *InsufficientContentError
    if !errors.As(err, &ice) || ice.HasTerminal {
        t.Fatalf("expected terminal refusal, got %v", err)
    }
    if !strings.Contains(err.Error(), "no complete sentence") {
        t.Fatalf("unexpected message %q", err.Error())
    }
    if err := Gate(c, Thresholds{MinWords: 15, MinChars: 50}); err != nil {
        t.Fatalf("terminal not required should pass: %v", err)
    }
}

func TestGate_TooFewChars(t *testing.T) {
    c := corpus("A b c d e f g h i j k l m n o p.")
    err := Gate(c, DefaultThresholds())
    if err == nil || !strings.Contains(err.Error(), "characters (need at least 50)") {
        t.Fatalf("expected char refusal, got %v", err)
    }
}

func TestGate_EmptyCorpus(t *testing.T) {
    if err := Gate(aggregate.Corpus{}, DefaultThresholds()); err == nil {
        t.Fatalf("empty corpus must be refused")
    }
}

func TestValidateStructure_OK(t *testing.T) {
    md := "# Educational content analysis: Demo\n\n2026-01-02\n\n## Summary\ntext\n\n## Readability\n### Scores\n"
    if err := ValidateStructure(md, []string{"Summary", "Readability"}); err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
}

func TestValidateStructure_Failures(t *testing.T) {
    cases := map[string]string{
        "":                                "empty",
        "## Not a title\n2026-01-02\n":    "H1",
        "# Title\nyesterday\n":            "date line",
        "# Title\n2026-01-02\n## Readability\n## Summary\n": "out-of-order",
        "# Title\n2026-01-02\n## Summary\n## Readability\n# Again\n": "additional H1",
    }
    for md, want := range cases {
        err := ValidateStructure(md, []string{"Summary", "Readability"})
        if err == nil || !strings.Contains(err.Error(), want) {
            t.Fatalf("%q: expected error containing %q, got %v", md, want, err)
        }
    }
}
