package langfile

import (
    "path/filepath"
    "regexp"
    "strings"
)

// Detection is the language detected from a localization file name.
type Detection struct {
    // Code is the matched English token (e.g. "en_US"), the locale-looking
    // token found in the name (e.g. "fr_FR"), or "unknown".
    Code    string `json:"code"`
    English bool   `json:"is_english"`
}

// LanguageUnknown is reported when the file name carries no locale token.
const LanguageUnknown = "unknown"

var (
    // Name parts are separated by '.', '_', '-', '/' or whitespace.
    sepRe    = regexp.MustCompile(`[._\-\s/]+`)
    langRe   = regexp.MustCompile(`^[A-Za-z]{2,3}$`)
    regionRe = regexp.MustCompile(`^[A-Za-z]{2}$`)

    englishCanonical = map[string]string{
        "en_us":   "en_US",
        "en_gb":   "en_GB",
        "en_ca":   "en_CA",
        "en_au":   "en_AU",
        "english": "english",
        "en":      "en",
    }
)

// DetectLanguage classifies a file name as English when one of en_US, en_GB,
// en_CA, en_AU, en or english appears as a whole part of the name
// (case-insensitive). A bare "en" followed by another region, as in en_IN,
// is not English. Everything else is "other", reported with the first
// locale-looking part when there is one.
func DetectLanguage(name string) Detection {
    base := filepath.Base(name)
    base = strings.TrimSuffix(base, filepath.Ext(base))
    parts := sepRe.Split(strings.TrimSpace(base), -1)
    if len(parts) > 0 && parts[0] == "" {
        parts = parts[1:]
    }

    isPair := func(i int) bool {
        return i+1 < len(parts) && langRe.MatchString(parts[i]) && regionRe.MatchString(parts[i+1])
    }
    for i := range parts {
        if i+1 < len(parts) {
            if c, ok := englishCanonical[strings.ToLower(parts[i]+"_"+parts[i+1])]; ok {
                return Detection{Code: c, English: true}
            }
        }
    }
    for i, p := range parts {
        switch strings.ToLower(p) {
        case "english":
            return Detection{Code: "english", English: true}
        case "en":
            if !isPair(i) {
                return Detection{Code: "en", English: true}
            }
        }
    }

    pair := -1
    for i := range parts {
        if !isPair(i) {
            continue
        }
        if pair < 0 {
            pair = i
        }
        // Prefer a conventionally cased pair such as fr_FR.
        if parts[i+1] == strings.ToUpper(parts[i+1]) && parts[i] == strings.ToLower(parts[i]) {
            pair = i
            break
        }
    }
    if pair >= 0 {
        return Detection{Code: parts[pair] + "_" + parts[pair+1]}
    }
    if len(parts) == 1 && langRe.MatchString(parts[0]) {
        return Detection{Code: strings.ToLower(parts[0])}
    }
    return Detection{Code: LanguageUnknown}
}
