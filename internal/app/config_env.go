package app

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// Environment variable names.
const (
    EnvWorld          = "EDULANG_WORLD"
    EnvCacheDir       = "EDULANG_CACHE_DIR"
    EnvHistoryDB      = "EDULANG_HISTORY_DB"
    EnvCustomPrefixes = "EDULANG_CUSTOM_PREFIXES"
    EnvMinWords       = "EDULANG_MIN_WORDS"
    EnvMinChars       = "EDULANG_MIN_CHARS"
    EnvCacheMaxAge    = "EDULANG_CACHE_MAX_AGE"
    EnvVerbose        = "EDULANG_VERBOSE"
    EnvWatch          = "EDULANG_WATCH"
    EnvConfig         = "EDULANG_CONFIG"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
    if cfg == nil { return }

    if cfg.WorldDir == "" {
        cfg.WorldDir = os.Getenv(EnvWorld)
    }
    if cfg.CacheDir == "" {
        cfg.CacheDir = os.Getenv(EnvCacheDir)
    }
    if cfg.HistoryDB == "" {
        cfg.HistoryDB = os.Getenv(EnvHistoryDB)
    }
    if len(cfg.CustomPrefixes) == 0 {
        cfg.CustomPrefixes = SplitList(os.Getenv(EnvCustomPrefixes))
    }
    if cfg.MinWords == 0 {
        if n, ok := envInt(EnvMinWords); ok { cfg.MinWords = n }
    }
    if cfg.MinChars == 0 {
        if n, ok := envInt(EnvMinChars); ok { cfg.MinChars = n }
    }
    if cfg.CacheMaxAge == 0 {
        if d, ok := envDuration(EnvCacheMaxAge); ok { cfg.CacheMaxAge = d }
    }

    setBool := func(dst *bool, envKey string) {
        if *dst { return }
        if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
            if s == "1" || s == "true" || s == "yes" || s == "on" {
                *dst = true
            }
        }
    }
    setBool(&cfg.Verbose, EnvVerbose)
    setBool(&cfg.Watch, EnvWatch)
}

// ApplyEnvOverrides forcefully overrides cfg fields with environment variables
// when the corresponding env vars are set. This lets env take precedence over
// a config file while flags remain highest precedence.
func ApplyEnvOverrides(cfg *Config) {
    if cfg == nil { return }

    if v := os.Getenv(EnvWorld); v != "" { cfg.WorldDir = v }
    if v := os.Getenv(EnvCacheDir); v != "" { cfg.CacheDir = v }
    if v := os.Getenv(EnvHistoryDB); v != "" { cfg.HistoryDB = v }
    if v := SplitList(os.Getenv(EnvCustomPrefixes)); len(v) > 0 { cfg.CustomPrefixes = v }
    if n, ok := envInt(EnvMinWords); ok { cfg.MinWords = n }
    if n, ok := envInt(EnvMinChars); ok { cfg.MinChars = n }
    if d, ok := envDuration(EnvCacheMaxAge); ok { cfg.CacheMaxAge = d }

    // Booleans override when env present and truthy/falsey
    setBool := func(dst *bool, envKey string) {
        if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
            switch s {
            case "1", "true", "yes", "on":
                *dst = true
            case "0", "false", "no", "off":
                *dst = false
            }
        }
    }
    setBool(&cfg.Verbose, EnvVerbose)
    setBool(&cfg.Watch, EnvWatch)
}

// SplitList splits a comma-separated list, dropping blanks.
func SplitList(s string) []string {
    if strings.TrimSpace(s) == "" { return nil }
    parts := strings.Split(s, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        if v := strings.TrimSpace(p); v != "" { out = append(out, v) }
    }
    return out
}

func envInt(key string) (int, bool) {
    s := strings.TrimSpace(os.Getenv(key))
    if s == "" { return 0, false }
    n, err := strconv.Atoi(s)
    if err != nil || n < 0 { return 0, false }
    return n, true
}

func envDuration(key string) (time.Duration, bool) {
    s := strings.TrimSpace(os.Getenv(key))
    if s == "" { return 0, false }
    d, err := time.ParseDuration(s)
    if err != nil { return 0, false }
    return d, true
}
