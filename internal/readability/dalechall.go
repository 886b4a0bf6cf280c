package readability

import (
    _ "embed"
    "strings"
    "sync"
)

//go:embed easywords.txt
var easyWordsText string

var easyWords = sync.OnceValue(func() map[string]struct{} {
    set := make(map[string]struct{}, 1024)
    for _, line := range strings.Split(easyWordsText, "\n") {
        if strings.HasPrefix(strings.TrimSpace(line), "#") {
            continue
        }
        for _, w := range strings.Fields(line) {
            set[w] = struct{}{}
        }
    }
    return set
})

// inflections are stripped, longest first, to find a familiar base word.
var inflections = []string{"ing", "est", "ies", "es", "ed", "er", "ly", "s", "d"}

// IsFamiliarWord reports whether word counts as familiar for the Dale-Chall
// score: one-syllable words, listed words, and regular inflections of either.
func IsFamiliarWord(word string) bool {
    w := strings.ToLower(strings.Trim(word, "'’"))
    if CountSyllables(w) < 2 {
        return true
    }
    set := easyWords()
    if _, ok := set[w]; ok {
        return true
    }
    for _, suf := range inflections {
        base, ok := strings.CutSuffix(w, suf)
        if !ok || len(base) < 2 {
            continue
        }
        cands := []string{base, base + "e"}
        if suf == "ies" {
            cands = append(cands, base+"y")
        }
        if strings.HasSuffix(base, "i") {
            cands = append(cands, base[:len(base)-1]+"y")
        }
        if n := len(base); n >= 2 && base[n-1] == base[n-2] {
            cands = append(cands, base[:n-1])
        }
        for _, c := range cands {
            if _, ok := set[c]; ok {
                return true
            }
            if CountSyllables(c) < 2 && len(c) >= 3 {
                return true
            }
        }
    }
    return false
}

// daleChall computes the new Dale-Chall score: 0.1579 times the percentage of
// unfamiliar words plus 0.0496 times the average sentence length, adjusted by
// 3.6365 when more than 5% of the words are unfamiliar.
func daleChall(words []string, sentences int) (score float64, unfamiliar int) {
    for _, w := range words {
        if !IsFamiliarWord(w) {
            unfamiliar++
        }
    }
    if len(words) == 0 || sentences == 0 {
        return 0, unfamiliar
    }
    pct := float64(unfamiliar) / float64(len(words)) * 100
    score = 0.1579*pct + 0.0496*float64(len(words))/float64(sentences)
    if pct > 5 {
        score += 3.6365
    }
    return score, unfamiliar
}
