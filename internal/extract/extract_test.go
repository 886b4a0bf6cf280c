package extract

import (
    "errors"
    "strings"
    "testing"
)

func TestClean_EndToEndSignText(t *testing.T) {
    raw := "§6Welcome!§r Explore the %1$s to learn about §lphotosynthesis§r."
    got, err := Clean(raw)
    if err != nil {
        t.Fatalf("clean: %v", err)
    }
    want := "Welcome! Explore the something to learn about photosynthesis."
    if got != want {
        t.Fatalf("got %q, want %q", got, want)
    }
}

func TestStripFormatting_InsertsSpaceOnlyBetweenAlnumRuns(t *testing.T) {
    cases := map[string]string{
        "§aGreen§r text":  "Green text",
        "red§cblue":       "red blue",
        "end.§r":          "end.",
        "§l§nBold":        "Bold",
        "plain":           "plain",
        "§§a":             "a",
    }
    for in, want := range cases {
        if got := CollapseWhitespace(StripFormatting(in)); got != want {
            t.Fatalf("StripFormatting(%q)=%q, want %q", in, got, want)
        }
    }
}

func TestReplacePlaceholders(t *testing.T) {
    cases := map[string]string{
        "Give %s to %s":           "Give something to something",
        "You found %d gems":       "You found several gems",
        "Hello {0}, meet {1}.":    "Hello something, meet something.",
        "Use %2$s then %1$d":      "Use something then several",
        "100%% sure":              "100%% sure",
        "100%%s":                  "100%%s",
        "50% of the class":        "50% of the class",
        "{{0}}":                   "{something}",
        "{0}{1}":                  "something something",
        "Level%d reached":         "Level several reached",
        "%sville":                 "something ville",
        "%d%%":                    "several%%",
    }
    for in, want := range cases {
        if got := ReplacePlaceholders(in); got != want {
            t.Fatalf("ReplacePlaceholders(%q)=%q, want %q", in, got, want)
        }
    }
}

func TestClean_AdjacentPlaceholdersStaySeparateWords(t *testing.T) {
    got, err := Clean("Bring {0}{1} to the lab.")
    if err != nil {
        t.Fatalf("clean: %v", err)
    }
    if got != "Bring something something to the lab." {
        t.Fatalf("got %q", got)
    }
    if len(strings.Fields(got)) != 6 {
        t.Fatalf("expected 6 words, got %q", got)
    }
}

func TestExpandEscapes(t *testing.T) {
    if got := CollapseWhitespace(ExpandEscapes(`Line one.\nLine two.`)); got != "Line one. Line two." {
        t.Fatalf("got %q", got)
    }
}

func TestClean_IsIdempotent(t *testing.T) {
    inputs := []string{
        "§6Welcome!§r Explore the %1$s to learn about §lphotosynthesis§r.",
        "  Spaces\tand   tabs \\n everywhere  ",
        "100%%s of {{0}} and %s",
        "red§cblue and §§§a green",
        `back\\n slash`,
    }
    for _, in := range inputs {
        once := Default.Apply(in)
        twice := Default.Apply(once)
        if once != twice {
            t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
        }
        for i, pass := range Default {
            if a, b := pass(once), pass(pass(once)); a != b {
                t.Fatalf("pass %d not idempotent on %q: %q vs %q", i, once, a, b)
            }
        }
    }
}

func TestClean_FormattingOnlyValueIsFragment(t *testing.T) {
    got, err := Clean("§a§l§r")
    if !errors.Is(err, ErrFragment) {
        t.Fatalf("expected ErrFragment, got %v", err)
    }
    if got != "" {
        t.Fatalf("expected empty text, got %q", got)
    }
}

func TestClean_FragmentRules(t *testing.T) {
    for _, in := range []string{"Hi", "12345", "3.14 - 2", "  ok "} {
        if _, err := Clean(in); !errors.Is(err, ErrFragment) {
            t.Fatalf("%q: expected ErrFragment, got %v", in, err)
        }
    }
    if _, err := Clean("Oak!"); err != nil {
        t.Fatalf("four letters should pass, got %v", err)
    }
}

func TestClean_Malformed(t *testing.T) {
    for _, in := range []string{"Dangling code §", "bad\x00byte", string([]byte{'o', 'k', 0xff})} {
        if _, err := Clean(in); !errors.Is(err, ErrMalformed) {
            t.Fatalf("%q: expected ErrMalformed, got %v", in, err)
        }
    }
}

func BenchmarkClean(b *testing.B) {
    raw := "§6Welcome!§r Explore the %1$s to learn about §lphotosynthesis§r. {0} students found %d leaves.\\nWell done!"
    for i := 0; i < b.N; i++ {
        _, _ = Clean(raw)
    }
}
