// Package langfile discovers, decodes and parses Minecraft `.lang` localization
// files: one `key=value` pair per line, `#` comments, one language per file.
package langfile

import (
    "errors"
    "fmt"
    "os"
    "strings"
)

// ErrEmptyFile is returned when a localization file has no content.
var ErrEmptyFile = errors.New("language file is empty")

// Entry is a single key/value pair from a localization file.
type Entry struct {
    Key   string
    Value string
    // Line is the 1-based line number the entry was read from.
    Line int
}

// Candidate is a discovered localization file that has not been read yet.
type Candidate struct {
    Name    string `json:"name"`
    RelPath string `json:"relative_path"`
    Path    string `json:"-"`
    Size    int64  `json:"size_bytes"`
}

// File is a parsed localization file.
type File struct {
    Name     string
    RelPath  string
    Path     string
    Size     int64
    Encoding string
    Language Detection
    Entries  []Entry
    // Malformed counts non-comment lines that could not be split into a key and value.
    Malformed int
}

// Load reads, decodes and parses the candidate from disk. A missing file is
// reported as a wrapped fs.ErrNotExist and an empty file as ErrEmptyFile.
func Load(c Candidate) (*File, error) {
    data, err := os.ReadFile(c.Path)
    if err != nil {
        return nil, fmt.Errorf("read %s: %w", c.RelPath, err)
    }
    return FromBytes(c, data)
}

// FromBytes decodes and parses data already read for c.
func FromBytes(c Candidate, data []byte) (*File, error) {
    text, enc, err := Decode(data)
    if err != nil {
        return nil, fmt.Errorf("decode %s: %w", c.RelPath, err)
    }
    if strings.TrimSpace(text) == "" {
        return nil, fmt.Errorf("%s: %w", c.RelPath, ErrEmptyFile)
    }
    entries, malformed := Parse(text)
    return &File{
        Name:      c.Name,
        RelPath:   c.RelPath,
        Path:      c.Path,
        Size:      int64(len(data)),
        Encoding:  enc,
        Language:  DetectLanguage(c.Name),
        Entries:   entries,
        Malformed: malformed,
    }, nil
}
