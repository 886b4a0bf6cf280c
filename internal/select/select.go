package selecter

import (
    "errors"
    "fmt"
    "sort"

    "github.com/dustin/go-humanize"

    "github.com/hyperifyio/edulang/internal/langfile"
)

// ErrNoLanguageFiles is returned when a world contains no .lang files.
var ErrNoLanguageFiles = errors.New("world contains no .lang files")

// Options configures selection constraints.
type Options struct {
    // MinBytes refuses a chosen file smaller than this many bytes. Zero
    // disables the check.
    MinBytes int64
}

// Selection is the chosen file plus what was seen while choosing it.
type Selection struct {
    Chosen             langfile.Candidate `json:"chosen"`
    Language           langfile.Detection `json:"language"`
    IsEnglish          bool               `json:"is_english"`
    NonEnglishFallback bool               `json:"non_english_fallback"`
    Total              int                `json:"total_files"`
    English            int                `json:"english_files"`
    Other              int                `json:"other_files"`
}

// TooSmallError reports a chosen file below Options.MinBytes.
type TooSmallError struct {
    File     langfile.Candidate
    MinBytes int64
}

func (e *TooSmallError) Error() string {
    return fmt.Sprintf("language file %s is too small to analyze (%s, need at least %s)",
        e.File.RelPath, humanize.Bytes(uint64(e.File.Size)), humanize.Bytes(uint64(e.MinBytes)))
}

// Select picks the largest English file, or the largest file overall with
// NonEnglishFallback set when no English file exists. Ties on size break on
// relative path.
func Select(files []langfile.Candidate, opt Options) (Selection, error) {
    if len(files) == 0 {
        return Selection{}, ErrNoLanguageFiles
    }
    sorted := make([]langfile.Candidate, len(files))
    copy(sorted, files)
    sort.SliceStable(sorted, func(i, j int) bool {
        if sorted[i].Size != sorted[j].Size {
            return sorted[i].Size > sorted[j].Size
        }
        return sorted[i].RelPath < sorted[j].RelPath
    })

    sel := Selection{Total: len(sorted)}
    found := false
    for _, f := range sorted {
        d := langfile.DetectLanguage(f.Name)
        if d.English {
            sel.English++
            if !found {
                sel.Chosen, sel.Language, sel.IsEnglish = f, d, true
                found = true
            }
        } else {
            sel.Other++
        }
    }
    if !found {
        sel.Chosen = sorted[0]
        sel.Language = langfile.DetectLanguage(sorted[0].Name)
        sel.NonEnglishFallback = true
    }
    if opt.MinBytes > 0 && sel.Chosen.Size < opt.MinBytes {
        return sel, &TooSmallError{File: sel.Chosen, MinBytes: opt.MinBytes}
    }
    return sel, nil
}
