package app

import (
    "os"
    "path/filepath"
    "reflect"
    "testing"
    "time"
)

// LoadEnvFiles reads KEY=VALUE pairs and populates the process environment.
func TestLoadEnvFiles_LoadsKeyValues(t *testing.T) {
    t.Setenv("FOO", "")
    t.Setenv("BAR", "")
    t.Setenv("BAZ", "")

    dir := t.TempDir()
    envPath := filepath.Join(dir, ".env.test")
    content := "\n# sample dotenv file\nFOO=alpha\nexport BAR=\"beta gamma\"\nBAZ='x=y'\nnot a pair\n"
    if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
        t.Fatalf("write dotenv: %v", err)
    }

    if err := LoadEnvFiles(envPath); err != nil {
        t.Fatalf("LoadEnvFiles error: %v", err)
    }

    if got := os.Getenv("FOO"); got != "alpha" {
        t.Fatalf("FOO=%q, want alpha", got)
    }
    if got := os.Getenv("BAR"); got != "beta gamma" {
        t.Fatalf("BAR=%q, want quoted value unwrapped", got)
    }
    if got := os.Getenv("BAZ"); got != "x=y" {
        t.Fatalf("BAZ=%q, want x=y", got)
    }
}

func TestLoadEnvFiles_MissingFileIgnored(t *testing.T) {
    if err := LoadEnvFiles(filepath.Join(t.TempDir(), "nope.env"), ""); err != nil {
        t.Fatalf("missing files should be skipped: %v", err)
    }
}

// Later files override earlier ones.
func TestLoadEnvFiles_OrderOverrides(t *testing.T) {
    t.Setenv("K", "")
    dir := t.TempDir()
    a := filepath.Join(dir, "a.env")
    b := filepath.Join(dir, "b.env")
    if err := os.WriteFile(a, []byte("K=first\n"), 0o600); err != nil { t.Fatalf("write a: %v", err) }
    if err := os.WriteFile(b, []byte("K=second\n"), 0o600); err != nil { t.Fatalf("write b: %v", err) }

    if err := LoadEnvFiles(a, b); err != nil {
        t.Fatalf("LoadEnvFiles error: %v", err)
    }
    if got := os.Getenv("K"); got != "second" {
        t.Fatalf("override order failed: got %q, want second", got)
    }
}

func TestApplyEnvToConfig_FillsUnsetFields(t *testing.T) {
    t.Setenv(EnvWorld, "/worlds/forest")
    t.Setenv(EnvCacheDir, "/tmp/edulang-cache")
    t.Setenv(EnvCustomPrefixes, "lesson., quest.")
    t.Setenv(EnvMinWords, "30")
    t.Setenv(EnvCacheMaxAge, "48h")
    t.Setenv(EnvVerbose, "yes")

    cfg := Config{MinWords: 10}
    ApplyEnvToConfig(&cfg)
    if cfg.WorldDir != "/worlds/forest" || cfg.CacheDir != "/tmp/edulang-cache" {
        t.Fatalf("unexpected dirs: %+v", cfg)
    }
    if !reflect.DeepEqual(cfg.CustomPrefixes, []string{"lesson.", "quest."}) {
        t.Fatalf("CustomPrefixes=%v", cfg.CustomPrefixes)
    }
    if cfg.MinWords != 10 {
        t.Fatalf("explicit MinWords should win, got %d", cfg.MinWords)
    }
    if cfg.CacheMaxAge != 48*time.Hour {
        t.Fatalf("CacheMaxAge=%v", cfg.CacheMaxAge)
    }
    if !cfg.Verbose {
        t.Fatalf("expected Verbose from env")
    }
}

func TestApplyEnvOverrides_EnvBeatsFileValues(t *testing.T) {
    t.Setenv(EnvMinWords, "25")
    t.Setenv(EnvWatch, "off")
    t.Setenv(EnvMinChars, "not-a-number")
    cfg := Config{MinWords: 15, MinChars: 50, Watch: true}
    ApplyEnvOverrides(&cfg)
    if cfg.MinWords != 25 {
        t.Fatalf("MinWords=%d, want 25", cfg.MinWords)
    }
    if cfg.MinChars != 50 {
        t.Fatalf("invalid env value should be ignored, got %d", cfg.MinChars)
    }
    if cfg.Watch {
        t.Fatalf("EDULANG_WATCH=off should disable watch")
    }
}

func TestSplitList_DropsBlanks(t *testing.T) {
    if got := SplitList(" a, ,b ,"); !reflect.DeepEqual(got, []string{"a", "b"}) {
        t.Fatalf("SplitList=%v", got)
    }
    if SplitList("  ") != nil {
        t.Fatalf("expected nil for blank input")
    }
}
