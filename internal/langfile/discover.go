package langfile

import (
    "fmt"
    "io/fs"
    "os"
    "path/filepath"
    "sort"
    "strings"

    "github.com/bmatcuk/doublestar/v4"
)

// Pattern matches localization files relative to a world root.
const Pattern = "**/*.lang"

// IsLangPath reports whether a slash-separated relative path names a `.lang`
// file; the comparison is case-insensitive.
func IsLangPath(rel string) bool {
    ok, _ := doublestar.Match(Pattern, strings.ToLower(filepath.ToSlash(rel)))
    return ok
}

// Discover walks root and returns every `.lang` file below it, largest first.
func Discover(root string) ([]Candidate, error) {
    info, err := os.Stat(root)
    if err != nil {
        return nil, fmt.Errorf("world directory: %w", err)
    }
    if !info.IsDir() {
        return nil, fmt.Errorf("world directory: %s is not a directory", root)
    }
    var out []Candidate
    err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
        if err != nil {
            return err
        }
        if d.IsDir() {
            return nil
        }
        rel, err := filepath.Rel(root, path)
        if err != nil {
            return err
        }
        if !IsLangPath(rel) {
            return nil
        }
        fi, err := d.Info()
        if err != nil {
            return err
        }
        out = append(out, Candidate{
            Name:    d.Name(),
            RelPath: filepath.ToSlash(rel),
            Path:    path,
            Size:    fi.Size(),
        })
        return nil
    })
    if err != nil {
        return nil, err
    }
    sort.SliceStable(out, func(i, j int) bool {
        if out[i].Size != out[j].Size {
            return out[i].Size > out[j].Size
        }
        return out[i].RelPath < out[j].RelPath
    })
    return out, nil
}
