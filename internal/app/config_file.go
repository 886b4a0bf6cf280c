package app

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
// Nested sections map naturally to flags/env.
type FileConfig struct {
    World struct {
        Dir   string `yaml:"dir" json:"dir"`
        Label string `yaml:"label" json:"label"`
    } `yaml:"world" json:"world"`

    Output     string `yaml:"output" json:"output"`
    OutputJSON string `yaml:"outputJSON" json:"outputJSON"`
    OutputPDF  string `yaml:"outputPDF" json:"outputPDF"`
    OutputHTML string `yaml:"outputHTML" json:"outputHTML"`
    ReportsDir string `yaml:"reportsDir" json:"reportsDir"`
    EnablePDF  bool   `yaml:"enablePDF" json:"enablePDF"`
    EnableHTML bool   `yaml:"enableHTML" json:"enableHTML"`

    Min struct {
        Words     int   `yaml:"words" json:"words"`
        Chars     int   `yaml:"chars" json:"chars"`
        FileBytes int64 `yaml:"fileBytes" json:"fileBytes"`
    } `yaml:"min" json:"min"`
    NoTerminalCheck bool `yaml:"noTerminalCheck" json:"noTerminalCheck"`
    Samples         int  `yaml:"samples" json:"samples"`

    Classify struct {
        CustomPrefixes    []string `yaml:"customPrefixes" json:"customPrefixes"`
        TechnicalPrefixes []string `yaml:"technicalPrefixes" json:"technicalPrefixes"`
    } `yaml:"classify" json:"classify"`

    Cache struct {
        Dir         string        `yaml:"dir" json:"dir"`
        MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
        MaxEntries  int           `yaml:"maxEntries" json:"maxEntries"`
        Clear       bool          `yaml:"clear" json:"clear"`
        StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
    } `yaml:"cache" json:"cache"`

    History struct {
        DB string `yaml:"db" json:"db"`
    } `yaml:"history" json:"history"`

    Watch struct {
        Enable   bool          `yaml:"enable" json:"enable"`
        Debounce time.Duration `yaml:"debounce" json:"debounce"`
    } `yaml:"watch" json:"watch"`

    Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch ext := filepath.Ext(path); ext {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        // Try YAML then JSON
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset or still at their default. Explicit flags win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil { return }

    if cfg.WorldDir == "" && fc.World.Dir != "" { cfg.WorldDir = fc.World.Dir }
    if cfg.WorldLabel == "" && fc.World.Label != "" { cfg.WorldLabel = fc.World.Label }

    if cfg.OutputPath == "" && fc.Output != "" { cfg.OutputPath = fc.Output }
    if cfg.OutputJSONPath == "" && fc.OutputJSON != "" { cfg.OutputJSONPath = fc.OutputJSON }
    if cfg.OutputPDFPath == "" && fc.OutputPDF != "" { cfg.OutputPDFPath = fc.OutputPDF }
    if cfg.OutputHTMLPath == "" && fc.OutputHTML != "" { cfg.OutputHTMLPath = fc.OutputHTML }
    if (cfg.ReportsDir == "" || cfg.ReportsDir == DefaultReportsDir) && fc.ReportsDir != "" { cfg.ReportsDir = fc.ReportsDir }
    if !cfg.EnablePDF && fc.EnablePDF { cfg.EnablePDF = true }
    if !cfg.EnableHTML && fc.EnableHTML { cfg.EnableHTML = true }

    if (cfg.MinWords == 0 || cfg.MinWords == DefaultMinWords) && fc.Min.Words > 0 { cfg.MinWords = fc.Min.Words }
    if (cfg.MinChars == 0 || cfg.MinChars == DefaultMinChars) && fc.Min.Chars > 0 { cfg.MinChars = fc.Min.Chars }
    if cfg.MinFileBytes == 0 && fc.Min.FileBytes > 0 { cfg.MinFileBytes = fc.Min.FileBytes }
    if !cfg.NoTerminalCheck && fc.NoTerminalCheck { cfg.NoTerminalCheck = true }
    if (cfg.SampleCount == 0 || cfg.SampleCount == DefaultSampleCount) && fc.Samples > 0 { cfg.SampleCount = fc.Samples }

    if len(cfg.CustomPrefixes) == 0 && len(fc.Classify.CustomPrefixes) > 0 { cfg.CustomPrefixes = append([]string{}, fc.Classify.CustomPrefixes...) }
    if len(cfg.TechnicalPrefixes) == 0 && len(fc.Classify.TechnicalPrefixes) > 0 { cfg.TechnicalPrefixes = append([]string{}, fc.Classify.TechnicalPrefixes...) }

    if (cfg.CacheDir == "" || cfg.CacheDir == DefaultCacheDir) && fc.Cache.Dir != "" { cfg.CacheDir = fc.Cache.Dir }
    if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 { cfg.CacheMaxAge = fc.Cache.MaxAge }
    if cfg.CacheMaxEntries == 0 && fc.Cache.MaxEntries > 0 { cfg.CacheMaxEntries = fc.Cache.MaxEntries }
    if !cfg.CacheClear && fc.Cache.Clear { cfg.CacheClear = true }
    if !cfg.CacheStrictPerms && fc.Cache.StrictPerms { cfg.CacheStrictPerms = true }

    if cfg.HistoryDB == "" && fc.History.DB != "" { cfg.HistoryDB = fc.History.DB }

    if !cfg.Watch && fc.Watch.Enable { cfg.Watch = true }
    if cfg.WatchDebounce == 0 && fc.Watch.Debounce > 0 { cfg.WatchDebounce = fc.Watch.Debounce }
    if !cfg.Verbose && fc.Verbose { cfg.Verbose = true }
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
    if trim(cfg.WorldDir) == "" {
        return errors.New("config: world directory is required (or set EDULANG_WORLD)")
    }
    info, err := os.Stat(cfg.WorldDir)
    if err != nil {
        return fmt.Errorf("config: world directory: %w", err)
    }
    if !info.IsDir() {
        return fmt.Errorf("config: world path %s is not a directory", cfg.WorldDir)
    }
    if cfg.MinWords < 0 || cfg.MinChars < 0 || cfg.MinFileBytes < 0 || cfg.SampleCount < 0 || cfg.CacheMaxEntries < 0 {
        return errors.New("config: negative limits are not allowed")
    }
    if cfg.CacheMaxAge < 0 || cfg.WatchDebounce < 0 {
        return errors.New("config: negative durations are not allowed")
    }
    return nil
}

func trim(s string) string {
    i := 0
    j := len(s)
    for i < j && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') { i++ }
    for j > i && (s[j-1] == ' ' || s[j-1] == '\t' || s[j-1] == '\n' || s[j-1] == '\r') { j-- }
    return s[i:j]
}
