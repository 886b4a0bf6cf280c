package app

import (
    "crypto/sha256"
    "encoding/hex"
    "os"
    "path/filepath"
    "strings"

    "github.com/gosimple/slug"
)

// levelNameFile holds the display name of a Bedrock world.
const levelNameFile = "levelname.txt"

// worldLabel returns the configured label, the world's levelname.txt, or the
// directory name, in that order.
func worldLabel(cfg Config) string {
    if s := strings.TrimSpace(cfg.WorldLabel); s != "" { return s }
    if b, err := os.ReadFile(filepath.Join(cfg.WorldDir, levelNameFile)); err == nil {
        if s := strings.TrimSpace(string(b)); s != "" { return s }
    }
    abs, err := filepath.Abs(cfg.WorldDir)
    if err != nil { abs = cfg.WorldDir }
    return filepath.Base(abs)
}

// deriveReportsOutputPath returns a stable Markdown output path under the
// reports directory for the given world. The filename uses a slugified label
// and a short hash of the absolute world path to avoid collisions.
func deriveReportsOutputPath(cfg Config, label string) string {
    root := strings.TrimSpace(cfg.ReportsDir)
    if root == "" { root = DefaultReportsDir }
    name := slug.Make(label)
    if name == "" { name = "world" }
    abs, err := filepath.Abs(cfg.WorldDir)
    if err != nil { abs = cfg.WorldDir }
    h := sha256.Sum256([]byte(abs))
    short := hex.EncodeToString(h[:])[:12]
    return filepath.Join(root, name+"-"+short+".md")
}

// deriveSidecarPath replaces the extension of outputPath with ext.
func deriveSidecarPath(outputPath, ext string) string {
    return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ext
}
