package app

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestComputeSHA256Hex_KnownDigest(t *testing.T) {
	if got := computeSHA256Hex("hello"); got != "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824" {
		t.Fatalf("unexpected digest %s", got)
	}
}

func TestAppendEmbeddedManifest_AppendsReadableSection(t *testing.T) {
	base := "# Doc\n\nBody\n"
	meta := manifestMeta{
		Version:      "v1.2.3",
		File:         " texts/en_US.lang ",
		FileSHA256:   "abcd",
		CorpusSHA256: "ef01",
		Settings:     Settings{MinWords: 15, MinChars: 50, RequireTerminal: true},
		CacheHit:     true,
		GeneratedAt:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	out := appendEmbeddedManifest(base, meta)
	if !strings.HasPrefix(out, base) {
		t.Fatalf("expected original body preserved")
	}
	for _, want := range []string{
		"## Manifest",
		"- File: texts/en_US.lang\n",
		"- File sha256: abcd",
		"- Corpus sha256: ef01",
		`"min_words":15`,
		"- Cached: true",
		"- Generated: 2024-01-01T12:00:00Z",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestManifestFor_CopiesReportFields(t *testing.T) {
	r := &Report{
		Version:      "dev",
		File:         AnalyzedFile{RelPath: "texts/en_US.lang", SHA256: "aa"},
		CorpusSHA256: "bb",
		Settings:     Settings{SampleCount: 3},
	}
	m := manifestFor(r)
	if m.File != "texts/en_US.lang" || m.FileSHA256 != "aa" || m.CorpusSHA256 != "bb" || m.Settings.SampleCount != 3 {
		t.Fatalf("unexpected manifest %+v", m)
	}
}

func TestMarshalReportJSON_OmitsCorpusText(t *testing.T) {
	r := &Report{World: "W", Outcome: OutcomeScored}
	r.Corpus.Text = "secret corpus body"
	b, err := marshalReportJSON(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "secret corpus body") {
		t.Fatalf("corpus text must not be serialized: %s", b)
	}
	var back map[string]any
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back["outcome"] != "scored" {
		t.Fatalf("outcome=%v", back["outcome"])
	}
	if _, ok := back["classification"]; !ok {
		t.Fatalf("expected classification object")
	}
}
