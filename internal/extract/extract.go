package extract

import (
    "errors"
    "fmt"
    "regexp"
    "strings"
    "unicode"
    "unicode/utf8"
)

// FormattingMarker introduces a Minecraft formatting code; the rune after it
// is the code character (color, bold, reset, ...).
const FormattingMarker = '§'

// MinFragmentChars is the shortest cleaned value kept as text.
const MinFragmentChars = 4

var (
    // ErrMalformed marks a value that cannot be cleaned safely.
    ErrMalformed = errors.New("malformed value")
    // ErrFragment marks a value that is too short or has no letters once cleaned.
    ErrFragment = errors.New("value below minimum fragment length")
)

// Pass is a single string-to-string cleaning step.
type Pass func(string) string

// Pipeline applies passes in order, each output feeding the next.
type Pipeline []Pass

// Default is the cleaning pipeline used for accepted localization values.
var Default = Pipeline{StripFormatting, ExpandEscapes, ReplacePlaceholders, CollapseWhitespace}

// Apply runs every pass without validation or the fragment check.
func (p Pipeline) Apply(s string) string {
    for _, pass := range p {
        s = pass(s)
    }
    return s
}

// Clean validates raw, applies the pipeline and reports ErrFragment when the
// result is too short to count as text. The cleaned string is returned even
// alongside ErrFragment so callers can report it.
func (p Pipeline) Clean(raw string) (string, error) {
    if err := Validate(raw); err != nil {
        return "", err
    }
    out := p.Apply(raw)
    if IsFragment(out) {
        return out, ErrFragment
    }
    return out, nil
}

// Clean runs the Default pipeline.
func Clean(raw string) (string, error) {
    return Default.Clean(raw)
}

// Validate rejects values with invalid UTF-8, non-whitespace control
// characters, or a formatting marker with no code character after it.
func Validate(raw string) error {
    if !utf8.ValidString(raw) {
        return fmt.Errorf("%w: invalid UTF-8", ErrMalformed)
    }
    runes := []rune(raw)
    for i := 0; i < len(runes); i++ {
        r := runes[i]
        if r == FormattingMarker {
            if i+1 >= len(runes) {
                return fmt.Errorf("%w: dangling formatting code at end of value", ErrMalformed)
            }
            i++
            continue
        }
        if unicode.IsControl(r) && !unicode.IsSpace(r) {
            return fmt.Errorf("%w: control character %U", ErrMalformed, r)
        }
    }
    return nil
}

// StripFormatting removes every marker plus its code character. A single
// space is inserted where the removal would otherwise glue two alphanumeric
// runs together.
func StripFormatting(s string) string {
    if !strings.ContainsRune(s, FormattingMarker) {
        return s
    }
    runes := []rune(s)
    var b strings.Builder
    b.Grow(len(s))
    var prev rune
    removed := false
    for i := 0; i < len(runes); i++ {
        r := runes[i]
        if r == FormattingMarker {
            i++
            removed = true
            continue
        }
        if removed && isAlnum(prev) && isAlnum(r) {
            b.WriteByte(' ')
        }
        removed = false
        b.WriteRune(r)
        prev = r
    }
    return b.String()
}

var escapeReplacer = strings.NewReplacer(`\n`, " ", `\t`, " ", `\r`, " ")

// ExpandEscapes turns literal \n, \t and \r escape sequences into spaces.
func ExpandEscapes(s string) string {
    if !strings.Contains(s, `\`) {
        return s
    }
    return escapeReplacer.Replace(s)
}

// placeholderRe matches printf-style and indexed placeholders. A literal "%%"
// is matched first so that it is never split into a new placeholder.
var placeholderRe = regexp.MustCompile(`%%|%(?:\d+\$)?(?:\.\d+)?[sdif]|\{\d+\}`)

// Stand-in words keep sentence grammar and word count roughly intact.
const (
    StandInText   = "something"
    StandInNumber = "several"
)

// ReplacePlaceholders swaps placeholders for readable stand-in words instead
// of deleting them. A stand-in touching a letter, digit or another
// placeholder is padded with a space so it stays a separate word.
func ReplacePlaceholders(s string) string {
    if !strings.ContainsAny(s, "%{") {
        return s
    }
    matches := placeholderRe.FindAllStringIndex(s, -1)
    if len(matches) == 0 {
        return s
    }
    var b strings.Builder
    b.Grow(len(s) + 16*len(matches))
    pos := 0
    for i, m := range matches {
        b.WriteString(s[pos:m[0]])
        pos = m[1]
        word := standIn(s[m[0]:m[1]])
        if word == "" {
            b.WriteString(s[m[0]:m[1]])
            continue
        }
        if r, _ := utf8.DecodeLastRuneInString(b.String()); isWordRune(r) {
            b.WriteByte(' ')
        }
        b.WriteString(word)
        nextIsPlaceholder := i+1 < len(matches) && matches[i+1][0] == m[1] && standIn(s[matches[i+1][0]:matches[i+1][1]]) != ""
        if r, _ := utf8.DecodeRuneInString(s[m[1]:]); isWordRune(r) || nextIsPlaceholder {
            b.WriteByte(' ')
        }
    }
    b.WriteString(s[pos:])
    return b.String()
}

// standIn returns the word replacing placeholder m, or "" for "%%".
func standIn(m string) string {
    switch {
    case m == "%%":
        return ""
    case strings.HasPrefix(m, "{"):
        return StandInText
    }
    switch m[len(m)-1] {
    case 'd', 'i', 'f':
        return StandInNumber
    default:
        return StandInText
    }
}

func isWordRune(r rune) bool {
    return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// CollapseWhitespace collapses whitespace runs to one space and trims the ends.
func CollapseWhitespace(s string) string {
    return strings.TrimSpace(collapseSpaces(s))
}

func collapseSpaces(s string) string {
    var b strings.Builder
    b.Grow(len(s))
    lastSpace := false
    for _, r := range s {
        if unicode.IsSpace(r) {
            if !lastSpace {
                b.WriteByte(' ')
                lastSpace = true
            }
            continue
        }
        b.WriteRune(r)
        lastSpace = false
    }
    return b.String()
}

// IsFragment reports whether cleaned text is shorter than MinFragmentChars
// or carries no letters at all (numbers, symbols).
func IsFragment(s string) bool {
    if utf8.RuneCountInString(s) < MinFragmentChars {
        return true
    }
    return strings.IndexFunc(s, unicode.IsLetter) < 0
}

func isAlnum(r rune) bool {
    return unicode.IsLetter(r) || unicode.IsDigit(r)
}
