package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	// World
	WorldDir   string
	WorldLabel string

	// Outputs. Empty OutputPath derives a path under ReportsDir.
	OutputPath     string
	OutputJSONPath string
	OutputPDFPath  string
	OutputHTMLPath string
	ReportsDir     string
	EnablePDF      bool
	EnableHTML     bool

	// Selection / gate
	MinWords        int
	MinChars        int
	NoTerminalCheck bool
	MinFileBytes    int64
	SampleCount     int

	// Classification
	CustomPrefixes    []string
	TechnicalPrefixes []string

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheMaxEntries  int
	CacheClear       bool
	CacheStrictPerms bool

	// History
	HistoryDB string

	// Behavior
	Watch         bool
	WatchDebounce time.Duration
	Verbose       bool
}

// Defaults used by flags and by ApplyFileConfig to detect unset values.
const (
	DefaultReportsDir  = "reports"
	DefaultCacheDir    = ".edulang-cache"
	DefaultMinWords    = 15
	DefaultMinChars    = 50
	DefaultSampleCount = 5
)

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() Config {
	return Config{
		ReportsDir:  DefaultReportsDir,
		CacheDir:    DefaultCacheDir,
		MinWords:    DefaultMinWords,
		MinChars:    DefaultMinChars,
		SampleCount: DefaultSampleCount,
	}
}
