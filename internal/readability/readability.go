// Package readability scores an English text corpus with the classic
// readability formulas and maps the Flesch-Kincaid grade onto a reading
// level and target age.
package readability

import (
    "errors"
    "math"
    "regexp"
    "strings"
    "unicode"
    "unicode/utf8"
)

// WordsPerMinute is the reading speed used for ReadingTimeMinutes.
const WordsPerMinute = 200

// MinTextChars is the shortest trimmed text Analyze will score.
const MinTextChars = 10

// ErrTooShort is returned for texts shorter than MinTextChars.
var ErrTooShort = errors.New("text too short to score")

// Metrics is the readability profile of a text.
type Metrics struct {
    WordCount      int `json:"word_count"`
    CharCount      int `json:"char_count"`
    SentenceCount  int `json:"sentence_count"`
    ParagraphCount int `json:"paragraph_count"`
    SyllableCount  int `json:"syllable_count"`
    DifficultWords int `json:"difficult_words"`

    FleschReadingEase         float64 `json:"flesch_reading_ease"`
    FleschKincaidGrade        float64 `json:"flesch_kincaid_grade"`
    GunningFog                float64 `json:"gunning_fog"`
    SMOGIndex                 float64 `json:"smog_index"`
    AutomatedReadabilityIndex float64 `json:"automated_readability_index"`
    ColemanLiauIndex          float64 `json:"coleman_liau_index"`
    LinsearWrite              float64 `json:"linsear_write_formula"`
    DaleChall                 float64 `json:"dale_chall_readability_score"`
    UnfamiliarWords           int     `json:"dale_chall_unfamiliar_words"`

    AvgSentenceLength   float64 `json:"avg_sentence_length"`
    AvgSyllablesPerWord float64 `json:"avg_syllables_per_word"`
    ReadingTimeMinutes  float64 `json:"reading_time_minutes"`

    ReadingLevel       string `json:"reading_level"`
    TargetAge          int    `json:"target_age"`
    EaseInterpretation string `json:"ease_interpretation"`
}

var (
    wordRe     = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}]+)*`)
    sentenceRe = regexp.MustCompile(`[.!?]+`)
)

// Analyze computes Metrics for text.
func Analyze(text string) (Metrics, error) {
    if utf8.RuneCountInString(strings.TrimSpace(text)) < MinTextChars {
        return Metrics{}, ErrTooShort
    }
    words := lexicon(text)
    m := Metrics{
        WordCount:      len(strings.Fields(text)),
        CharCount:      utf8.RuneCountInString(text),
        SentenceCount:  CountSentences(text),
        ParagraphCount: countParagraphs(text),
    }
    w := float64(len(words))
    if w == 0 {
        return Metrics{}, ErrTooShort
    }
    s := float64(m.SentenceCount)

    letters := 0
    for _, word := range words {
        syl := CountSyllables(word)
        m.SyllableCount += syl
        if syl >= 3 {
            m.DifficultWords++
        }
        letters += utf8.RuneCountInString(word)
    }
    wps := w / s
    spw := float64(m.SyllableCount) / w

    m.FleschReadingEase = round2(206.835 - 1.015*wps - 84.6*spw)
    m.FleschKincaidGrade = round2(0.39*wps + 11.8*spw - 15.59)
    m.GunningFog = round2(0.4 * (wps + 100*float64(m.DifficultWords)/w))
    if m.SentenceCount >= 3 {
        m.SMOGIndex = round2(1.043*math.Sqrt(float64(m.DifficultWords)*30/s) + 3.1291)
    }
    m.AutomatedReadabilityIndex = round2(4.71*float64(letters)/w + 0.5*wps - 21.43)
    m.ColemanLiauIndex = round2(0.0588*(float64(letters)/w*100) - 0.296*(s/w*100) - 15.8)
    m.LinsearWrite = round2(linsearWrite(text))
    dc, unfamiliar := daleChall(words, m.SentenceCount)
    m.DaleChall, m.UnfamiliarWords = round2(dc), unfamiliar
    m.AvgSentenceLength = round2(wps)
    m.AvgSyllablesPerWord = round2(spw)
    m.ReadingTimeMinutes = math.Round(float64(m.WordCount)/WordsPerMinute*10) / 10

    m.ReadingLevel = ReadingLevel(m.FleschKincaidGrade)
    m.TargetAge = TargetAge(m.FleschKincaidGrade)
    m.EaseInterpretation = EaseInterpretation(m.FleschReadingEase)
    return m, nil
}

// CountSentences counts runs of text terminated by '.', '!' or '?', plus a
// trailing unterminated run. It never returns less than 1.
func CountSentences(text string) int {
    n := 0
    for _, part := range sentenceRe.Split(text, -1) {
        if wordRe.MatchString(part) {
            n++
        }
    }
    if n == 0 {
        return 1
    }
    return n
}

// CountSyllables estimates English syllables in a single word by counting
// vowel groups, dropping a silent trailing 'e'.
func CountSyllables(word string) int {
    w := strings.ToLower(word)
    w = strings.Map(func(r rune) rune {
        if r >= 'a' && r <= 'z' {
            return r
        }
        return -1
    }, w)
    if w == "" {
        return 0
    }
    count := 0
    prevVowel := false
    for i := 0; i < len(w); i++ {
        v := isVowel(w[i])
        if v && !prevVowel {
            count++
        }
        prevVowel = v
    }
    if count > 1 && strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && !strings.HasSuffix(w, "ee") {
        count--
    }
    if count > 1 && strings.HasSuffix(w, "le") && len(w) > 2 && isVowel(w[len(w)-3]) {
        count--
    }
    if count == 0 {
        count = 1
    }
    return count
}

// TargetAge maps a Flesch-Kincaid grade to a learner age in years.
func TargetAge(grade float64) int {
    switch {
    case grade <= 1:
        return 6
    case grade <= 12:
        return int(math.RoundToEven(grade + 5))
    case grade <= 16:
        return 18
    default:
        return 22
    }
}

// ReadingLevel buckets a Flesch-Kincaid grade.
func ReadingLevel(grade float64) string {
    switch {
    case grade <= 6:
        return "Elementary (Grades 1-6)"
    case grade <= 8:
        return "Middle School (Grades 6-8)"
    case grade <= 12:
        return "High School (Grades 9-12)"
    case grade <= 16:
        return "College Level"
    default:
        return "Graduate Level"
    }
}

// EaseInterpretation describes a Flesch reading ease score.
func EaseInterpretation(ease float64) string {
    switch {
    case ease >= 90:
        return "Very Easy (5th grade)"
    case ease >= 80:
        return "Easy (6th grade)"
    case ease >= 70:
        return "Fairly Easy (7th grade)"
    case ease >= 60:
        return "Standard (8th-9th grade)"
    case ease >= 50:
        return "Fairly Difficult (10th-12th grade)"
    case ease >= 30:
        return "Difficult (College level)"
    default:
        return "Very Difficult (Graduate level)"
    }
}

// linsearWrite scores the first 100 words: easy words (<3 syllables) count 1,
// hard words 3.
func linsearWrite(text string) float64 {
    words := lexicon(text)
    if len(words) > 100 {
        words = words[:100]
    }
    total := 0
    for _, w := range words {
        if CountSyllables(w) < 3 {
            total++
        } else {
            total += 3
        }
    }
    sample := strings.Join(words, " ")
    end := wordRe.FindAllStringIndex(text, 100)
    if len(end) > 0 {
        sample = text[:end[len(end)-1][1]]
    }
    r := float64(total) / float64(CountSentences(sample))
    if r > 20 {
        return r / 2
    }
    return r/2 - 1
}

func lexicon(text string) []string {
    return wordRe.FindAllString(text, -1)
}

func countParagraphs(text string) int {
    n := 0
    for _, p := range strings.Split(text, "\n\n") {
        if strings.TrimFunc(p, unicode.IsSpace) != "" {
            n++
        }
    }
    return n
}

func isVowel(b byte) bool {
    switch b {
    case 'a', 'e', 'i', 'o', 'u', 'y':
        return true
    }
    return false
}

func round2(x float64) float64 {
    return math.Round(x*100) / 100
}
