package app

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

// manifestMeta captures run details that aid reproducibility.
type manifestMeta struct {
	Version      string    `json:"version"`
	File         string    `json:"file"`
	FileSHA256   string    `json:"file_sha256"`
	CorpusSHA256 string    `json:"corpus_sha256"`
	Settings     Settings  `json:"settings"`
	CacheHit     bool      `json:"cache_hit"`
	GeneratedAt  time.Time `json:"generated_at"`
}

func manifestFor(r *Report) manifestMeta {
	return manifestMeta{
		Version:      r.Version,
		File:         r.File.RelPath,
		FileSHA256:   r.File.SHA256,
		CorpusSHA256: r.CorpusSHA256,
		Settings:     r.Settings,
		CacheHit:     r.CacheHit,
		GeneratedAt:  r.GeneratedAt,
	}
}

// computeSHA256Hex returns a lowercase hex-encoded SHA-256 of the given text.
func computeSHA256Hex(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// appendEmbeddedManifest appends a compact Markdown manifest section with the
// digests of the analyzed file and corpus and the settings used.
func appendEmbeddedManifest(markdown string, meta manifestMeta) string {
	var b strings.Builder
	b.WriteString(markdown)
	b.WriteString("\n\n## Manifest\n\n")
	b.WriteString("- File: ")
	b.WriteString(strings.TrimSpace(meta.File))
	b.WriteString("\n- File sha256: ")
	b.WriteString(meta.FileSHA256)
	b.WriteString("\n- Corpus sha256: ")
	b.WriteString(meta.CorpusSHA256)
	if s, err := json.Marshal(meta.Settings); err == nil {
		b.WriteString("\n- Settings: `")
		b.WriteString(string(s))
		b.WriteString("`")
	}
	b.WriteString("\n- Cached: ")
	b.WriteString(boolToString(meta.CacheHit))
	b.WriteString("\n- Generated: ")
	b.WriteString(meta.GeneratedAt.UTC().Format(time.RFC3339))
	b.WriteString("\n")
	return b.String()
}

// marshalReportJSON encodes the machine-readable sidecar.
func marshalReportJSON(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func boolToString(bv bool) string {
	if bv {
		return "true"
	}
	return "false"
}
