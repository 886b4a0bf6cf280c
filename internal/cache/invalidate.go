package cache

import (
    "errors"
    "io/fs"
    "os"
    "path/filepath"
    "sort"
    "strings"
    "time"
)

// ClearDir removes the directory and all contents. It recreates the directory
// afterwards to leave a valid empty cache location.
func ClearDir(dir string) error {
    if strings.TrimSpace(dir) == "" {
        return errors.New("empty dir")
    }
    if err := os.RemoveAll(dir); err != nil {
        return err
    }
    return os.MkdirAll(dir, 0o755)
}

type entryInfo struct {
    path string
    size int64
    mod  time.Time
}

func listEntries(dir string) ([]entryInfo, error) {
    var out []entryInfo
    err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
        if err != nil {
            if errors.Is(err, fs.ErrNotExist) {
                return nil
            }
            return err
        }
        if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
            return nil
        }
        info, err := d.Info()
        if err != nil {
            return nil
        }
        out = append(out, entryInfo{path: path, size: info.Size(), mod: info.ModTime().UTC()})
        return nil
    })
    return out, err
}

// PurgeByAge removes report entries whose modification time is older than
// maxAge. A non-positive maxAge is a no-op.
func PurgeByAge(dir string, maxAge time.Duration) (int, error) {
    if maxAge <= 0 {
        return 0, nil
    }
    entries, err := listEntries(dir)
    if err != nil {
        return 0, err
    }
    now := time.Now().UTC()
    removed := 0
    for _, e := range entries {
        if now.Sub(e.mod) <= maxAge {
            continue
        }
        if os.Remove(e.path) == nil {
            removed++
        }
    }
    return removed, nil
}

// EnforceLimits evicts least recently used entries until the cache holds at
// most maxCount entries and maxBytes bytes. Zero disables a limit.
func EnforceLimits(dir string, maxBytes int64, maxCount int) (int, error) {
    if maxBytes <= 0 && maxCount <= 0 {
        return 0, nil
    }
    entries, err := listEntries(dir)
    if err != nil {
        return 0, err
    }
    sort.Slice(entries, func(i, j int) bool { return entries[i].mod.Before(entries[j].mod) })
    var total int64
    for _, e := range entries {
        total += e.size
    }
    removed := 0
    for _, e := range entries {
        overCount := maxCount > 0 && len(entries)-removed > maxCount
        overBytes := maxBytes > 0 && total > maxBytes
        if !overCount && !overBytes {
            break
        }
        if err := os.Remove(e.path); err != nil {
            continue
        }
        removed++
        total -= e.size
    }
    return removed, nil
}
