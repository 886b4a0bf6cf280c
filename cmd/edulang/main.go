package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/edulang/internal/app"
)

// options are the CLI modes that sit outside app.Config.
type options struct {
	cfg         app.Config
	list        bool
	history     bool
	historyN    int
	historyID   string
	jsonOut     bool
	showVersion bool
}

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Error().Err(err).Msg("invalid arguments")
		os.Exit(1)
	}
	if opts.showVersion {
		fmt.Println(app.VersionString())
		return
	}
	if opts.cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, opts, os.Stdout)
	if err != nil {
		if app.IsRefusal(err) {
			log.Error().Err(err).Msg("analysis refused")
		} else {
			log.Error().Err(err).Msg("run failed")
		}
	}
	os.Exit(exitCode(err))
}

// exitCode maps run errors to the process exit status: 0 on success, 2 when
// the world cannot be analyzed (no language files, too little content), 1 for
// anything else.
func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return 0
	case app.IsRefusal(err):
		return 2
	default:
		return 1
	}
}

// parseFlags builds the configuration with precedence flags > env > config
// file > defaults. Dotenv files are loaded before env is consulted.
func parseFlags(args []string) (options, error) {
	var (
		o          options
		configPath string
		envFiles   string
		custom     string
		technical  string
	)
	def := app.DefaultConfig()
	fs := flag.NewFlagSet("edulang", flag.ContinueOnError)
	c := &o.cfg

	fs.StringVar(&c.WorldDir, "world", "", "Path to the Minecraft Education world directory")
	fs.StringVar(&c.WorldLabel, "label", "", "Display name of the world (default: levelname.txt or directory name)")
	fs.StringVar(&c.OutputPath, "output", "", "Path to write the Markdown report (default: derived under -reports.dir)")
	fs.StringVar(&c.OutputJSONPath, "json", "", "Path to write the JSON report (default: next to the Markdown report)")
	fs.StringVar(&c.OutputPDFPath, "pdf", "", "Path to write a PDF rendering of the report")
	fs.StringVar(&c.OutputHTMLPath, "html", "", "Path to write an HTML rendering of the report")
	fs.StringVar(&c.ReportsDir, "reports.dir", def.ReportsDir, "Directory for derived report paths")
	fs.BoolVar(&c.EnablePDF, "enable.pdf", false, "Write a PDF next to the Markdown report")
	fs.BoolVar(&c.EnableHTML, "enable.html", false, "Write an HTML page next to the Markdown report")
	fs.IntVar(&c.MinWords, "min.words", def.MinWords, "Minimum educational words required for scoring")
	fs.IntVar(&c.MinChars, "min.chars", def.MinChars, "Minimum educational characters required for scoring")
	fs.Int64Var(&c.MinFileBytes, "min.fileBytes", 0, "Refuse language files smaller than this many bytes (0 disables)")
	fs.BoolVar(&c.NoTerminalCheck, "no-terminal", false, "Do not require a sentence terminator in the corpus")
	fs.IntVar(&c.SampleCount, "samples", def.SampleCount, "Accepted and rejected sample entries kept per report")
	fs.StringVar(&custom, "custom.prefixes", "", "Comma-separated key prefixes of world-specific educational strings")
	fs.StringVar(&technical, "technical.prefixes", "", "Comma-separated key prefixes to always exclude")
	fs.StringVar(&c.CacheDir, "cache.dir", def.CacheDir, "Report cache directory (empty disables)")
	fs.DurationVar(&c.CacheMaxAge, "cache.maxAge", 0, "Max age for cached reports before purge (e.g. 24h); 0 disables")
	fs.IntVar(&c.CacheMaxEntries, "cache.maxEntries", 0, "Maximum cached reports kept (0 disables)")
	fs.BoolVar(&c.CacheClear, "cache.clear", false, "Clear cache directory before run")
	fs.BoolVar(&c.CacheStrictPerms, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	fs.StringVar(&c.HistoryDB, "history.db", "", "SQLite database recording every run (empty disables)")
	fs.BoolVar(&c.Watch, "watch", false, "Re-analyze whenever a language file changes")
	fs.DurationVar(&c.WatchDebounce, "watch.debounce", 0, "Quiet period before re-analyzing in watch mode")
	fs.BoolVar(&c.Verbose, "v", false, "Verbose logging")
	fs.BoolVar(&o.list, "list", false, "List the world's language files and exit")
	fs.BoolVar(&o.history, "history", false, "Print recent runs from -history.db and exit")
	fs.IntVar(&o.historyN, "history.limit", 20, "Number of runs printed by -history")
	fs.StringVar(&o.historyID, "history.show", "", "Print one recorded run from -history.db by id and exit")
	fs.BoolVar(&o.jsonOut, "print.json", false, "Print -list and -history output as JSON")
	fs.StringVar(&configPath, "config", "", "Path to YAML or JSON config file (or set EDULANG_CONFIG)")
	fs.StringVar(&envFiles, "env", ".env", "Comma-separated dotenv files to load")
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if c.WorldDir == "" && fs.NArg() > 0 {
		c.WorldDir = fs.Arg(0)
	}
	c.CustomPrefixes = app.SplitList(custom)
	c.TechnicalPrefixes = app.SplitList(technical)

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if c.WorldDir != "" {
		set["world"] = true
	}

	if err := app.LoadEnvFiles(app.SplitList(envFiles)...); err != nil {
		return o, fmt.Errorf("load env: %w", err)
	}
	if !set["config"] {
		configPath = os.Getenv(app.EnvConfig)
	}
	layered := def
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return o, fmt.Errorf("load config: %w", err)
		}
		app.ApplyFileConfig(&layered, fc)
	}
	app.ApplyEnvOverrides(&layered)
	mergeUnset(c, layered, set)
	return o, nil
}

// mergeUnset copies fields from layered into cfg for every flag the user did
// not set explicitly.
func mergeUnset(cfg *app.Config, layered app.Config, set map[string]bool) {
	pick := func(name string, apply func()) {
		if !set[name] {
			apply()
		}
	}
	pick("world", func() { cfg.WorldDir = layered.WorldDir })
	pick("label", func() { cfg.WorldLabel = layered.WorldLabel })
	pick("output", func() { cfg.OutputPath = layered.OutputPath })
	pick("json", func() { cfg.OutputJSONPath = layered.OutputJSONPath })
	pick("pdf", func() { cfg.OutputPDFPath = layered.OutputPDFPath })
	pick("html", func() { cfg.OutputHTMLPath = layered.OutputHTMLPath })
	pick("reports.dir", func() { cfg.ReportsDir = layered.ReportsDir })
	pick("enable.pdf", func() { cfg.EnablePDF = layered.EnablePDF })
	pick("enable.html", func() { cfg.EnableHTML = layered.EnableHTML })
	pick("min.words", func() { cfg.MinWords = layered.MinWords })
	pick("min.chars", func() { cfg.MinChars = layered.MinChars })
	pick("min.fileBytes", func() { cfg.MinFileBytes = layered.MinFileBytes })
	pick("no-terminal", func() { cfg.NoTerminalCheck = layered.NoTerminalCheck })
	pick("samples", func() { cfg.SampleCount = layered.SampleCount })
	pick("custom.prefixes", func() { cfg.CustomPrefixes = layered.CustomPrefixes })
	pick("technical.prefixes", func() { cfg.TechnicalPrefixes = layered.TechnicalPrefixes })
	pick("cache.dir", func() { cfg.CacheDir = layered.CacheDir })
	pick("cache.maxAge", func() { cfg.CacheMaxAge = layered.CacheMaxAge })
	pick("cache.maxEntries", func() { cfg.CacheMaxEntries = layered.CacheMaxEntries })
	pick("cache.clear", func() { cfg.CacheClear = layered.CacheClear })
	pick("cache.strictPerms", func() { cfg.CacheStrictPerms = layered.CacheStrictPerms })
	pick("history.db", func() { cfg.HistoryDB = layered.HistoryDB })
	pick("watch", func() { cfg.Watch = layered.Watch })
	pick("watch.debounce", func() { cfg.WatchDebounce = layered.WatchDebounce })
	pick("v", func() { cfg.Verbose = layered.Verbose })
}

func run(ctx context.Context, o options, stdout io.Writer) error {
	cfg := o.cfg
	if !o.history && o.historyID == "" {
		if err := app.ValidateConfig(cfg); err != nil {
			return err
		}
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	switch {
	case o.list:
		return printFiles(ctx, a, stdout, o.jsonOut)
	case o.historyID != "":
		return printRecord(ctx, a, stdout, o.historyID, o.jsonOut)
	case o.history:
		return printHistory(ctx, a, stdout, o.historyN, o.jsonOut)
	case cfg.Watch:
		return a.Watch(ctx)
	default:
		return a.Run(ctx)
	}
}

func printFiles(ctx context.Context, a *app.App, w io.Writer, asJSON bool) error {
	files, err := a.ListFiles(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "no language files found")
		return nil
	}
	for _, f := range files {
		marker := " "
		if f.IsEnglish {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-10s %9s  %s\n", marker, f.Language, f.SizeHuman, f.RelPath)
	}
	return nil
}

func printHistory(ctx context.Context, a *app.App, w io.Writer, limit int, asJSON bool) error {
	recs, err := a.History(ctx, limit)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
	for _, r := range recs {
		grade := "-"
		if r.Grade != 0 {
			grade = fmt.Sprintf("%.1f", r.Grade)
		}
		fmt.Fprintf(w, "%s  %-14s  %-20s  %s  words=%d grade=%s  %s\n",
			r.ID[:8], humanize.Time(r.CreatedAt), r.Outcome, r.World, r.Words, grade, r.File)
	}
	return nil
}

func printRecord(ctx context.Context, a *app.App, w io.Writer, id string, asJSON bool) error {
	r, err := a.HistoryRecord(ctx, id)
	if err != nil {
		return fmt.Errorf("history %s: %w", id, err)
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	fmt.Fprintf(w, "id:        %s\n", r.ID)
	fmt.Fprintf(w, "created:   %s (%s)\n", r.CreatedAt.Format(time.RFC3339), humanize.Time(r.CreatedAt))
	fmt.Fprintf(w, "world:     %s\n", r.World)
	fmt.Fprintf(w, "file:      %s (%s)\n", r.File, r.Language)
	fmt.Fprintf(w, "outcome:   %s\n", r.Outcome)
	fmt.Fprintf(w, "entries:   %d accepted, %d rejected\n", r.Accepted, r.Rejected)
	fmt.Fprintf(w, "words:     %s\n", humanize.Comma(int64(r.Words)))
	fmt.Fprintf(w, "grade:     %.2f\n", r.Grade)
	return nil
}
