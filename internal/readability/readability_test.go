package readability

import (
    "errors"
    "math"
    "strings"
    "testing"
)

func TestCountSyllables(t *testing.T) {
    cases := map[string]int{
        "cat":            1,
        "the":            1,
        "make":           1,
        "tree":           1,
        "whale":          1,
        "table":          2,
        "beautiful":      3,
        "education":      4,
        "photosynthesis": 5,
        "Explore!":       2,
        "":               0,
    }
    for w, want := range cases {
        if got := CountSyllables(w); got != want {
            t.Fatalf("CountSyllables(%q)=%d want %d", w, got, want)
        }
    }
}

func TestCountSentences(t *testing.T) {
    if n := CountSentences("One. Two! Three? four"); n != 4 {
        t.Fatalf("expected 4 sentences, got %d", n)
    }
    if n := CountSentences("no terminal at all"); n != 1 {
        t.Fatalf("expected 1 sentence, got %d", n)
    }
    if n := CountSentences("Wait... what?!"); n != 2 {
        t.Fatalf("expected runs of terminals to count once, got %d", n)
    }
}

func TestAnalyze_SimpleText(t *testing.T) {
    m, err := Analyze("The cat sat on the mat. The dog ran.")
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if m.WordCount != 9 || m.SentenceCount != 2 || m.SyllableCount != 9 {
        t.Fatalf("unexpected counts %+v", m)
    }
    if math.Abs(m.FleschReadingEase-117.67) > 0.011 {
        t.Fatalf("unexpected reading ease %v", m.FleschReadingEase)
    }
    if m.FleschKincaidGrade > 1 || m.TargetAge != 6 || m.ReadingLevel != "Elementary (Grades 1-6)" {
        t.Fatalf("unexpected grade mapping %+v", m)
    }
    if m.EaseInterpretation != "Very Easy (5th grade)" {
        t.Fatalf("unexpected ease interpretation %q", m.EaseInterpretation)
    }
    if m.AvgSentenceLength != 4.5 || m.AvgSyllablesPerWord != 1 {
        t.Fatalf("unexpected averages %+v", m)
    }
    if m.UnfamiliarWords != 0 || m.DaleChall != 0.22 {
        t.Fatalf("unexpected Dale-Chall %v (unfamiliar %d)", m.DaleChall, m.UnfamiliarWords)
    }
    if m.SMOGIndex != 0 {
        t.Fatalf("SMOG needs three sentences, got %v", m.SMOGIndex)
    }
    if m.ReadingTimeMinutes != 0 {
        t.Fatalf("9 words should round to 0.0 minutes, got %v", m.ReadingTimeMinutes)
    }
}

func TestAnalyze_HarderTextScoresHigherGrade(t *testing.T) {
    easy, err := Analyze("The sun is hot. Plants need light. We can grow food.")
    if err != nil {
        t.Fatal(err)
    }
    hard, err := Analyze("Photosynthesis transforms electromagnetic radiation into biochemical energy. Chlorophyll molecules facilitate the absorption of particular wavelengths. Consequently, agricultural productivity depends on environmental illumination.")
    if err != nil {
        t.Fatal(err)
    }
    if hard.FleschKincaidGrade <= easy.FleschKincaidGrade {
        t.Fatalf("expected higher grade for harder text: easy=%v hard=%v", easy.FleschKincaidGrade, hard.FleschKincaidGrade)
    }
    if hard.DifficultWords == 0 || hard.SMOGIndex == 0 {
        t.Fatalf("expected difficult words and SMOG on hard text: %+v", hard)
    }
    if hard.FleschReadingEase >= easy.FleschReadingEase {
        t.Fatalf("expected lower ease for harder text")
    }
    if hard.DaleChall <= easy.DaleChall || hard.DaleChall < 9 {
        t.Fatalf("expected a high Dale-Chall score for harder text: easy=%v hard=%v", easy.DaleChall, hard.DaleChall)
    }
}

func TestIsFamiliarWord(t *testing.T) {
    familiar := []string{"cat", "Animal", "animals", "rivers", "happier", "cherries", "beginning", "teacher", "because", "strong"}
    for _, w := range familiar {
        if !IsFamiliarWord(w) {
            t.Fatalf("%q should be familiar", w)
        }
    }
    unfamiliar := []string{"photosynthesis", "chlorophyll", "electromagnetic", "ecosystem", "molecules"}
    for _, w := range unfamiliar {
        if IsFamiliarWord(w) {
            t.Fatalf("%q should be unfamiliar", w)
        }
    }
}

func TestAnalyze_ReadingTime(t *testing.T) {
    text := strings.Repeat("word ", 300) + "end."
    m, err := Analyze(text)
    if err != nil {
        t.Fatal(err)
    }
    if m.ReadingTimeMinutes != 1.5 {
        t.Fatalf("expected 1.5 minutes, got %v", m.ReadingTimeMinutes)
    }
}

func TestAnalyze_TooShort(t *testing.T) {
    if _, err := Analyze("  Hi.  "); !errors.Is(err, ErrTooShort) {
        t.Fatalf("expected ErrTooShort, got %v", err)
    }
}

func TestTargetAge(t *testing.T) {
    cases := []struct {
        grade float64
        want  int
    }{
        {-3, 6}, {1, 6}, {1.2, 6}, {7.4, 12}, {12, 17}, {12.5, 18}, {16, 18}, {16.01, 22},
    }
    for _, c := range cases {
        if got := TargetAge(c.grade); got != c.want {
            t.Fatalf("TargetAge(%v)=%d want %d", c.grade, got, c.want)
        }
    }
}

func TestReadingLevelAndEase(t *testing.T) {
    if ReadingLevel(6) != "Elementary (Grades 1-6)" || ReadingLevel(6.1) != "Middle School (Grades 6-8)" ||
        ReadingLevel(12) != "High School (Grades 9-12)" || ReadingLevel(16) != "College Level" || ReadingLevel(17) != "Graduate Level" {
        t.Fatalf("reading level buckets are off")
    }
    if EaseInterpretation(90) != "Very Easy (5th grade)" || EaseInterpretation(59.9) != "Fairly Difficult (10th-12th grade)" ||
        EaseInterpretation(30) != "Difficult (College level)" || EaseInterpretation(-10) != "Very Difficult (Graduate level)" {
        t.Fatalf("ease buckets are off")
    }
}
