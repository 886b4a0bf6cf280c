package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/edulang/internal/aggregate"
	"github.com/hyperifyio/edulang/internal/cache"
	"github.com/hyperifyio/edulang/internal/classify"
	"github.com/hyperifyio/edulang/internal/history"
	"github.com/hyperifyio/edulang/internal/langfile"
	"github.com/hyperifyio/edulang/internal/readability"
	selecter "github.com/hyperifyio/edulang/internal/select"
	"github.com/hyperifyio/edulang/internal/validate"
	"github.com/hyperifyio/edulang/internal/watch"
)

// reportSchema is bumped whenever Report changes shape, invalidating cached
// reports.
const reportSchema = "1"

type App struct {
	cfg     Config
	rules   *classify.Config
	cache   *cache.ReportCache
	history *history.Store
}

// IsRefusal reports whether err is one of the blocking analysis refusals:
// no language files, a too-small or empty file, or insufficient content.
// The CLI maps these to exit code 2.
func IsRefusal(err error) bool {
	if err == nil {
		return false
	}
	var ice *validate.InsufficientContentError
	var tse *selecter.TooSmallError
	return errors.Is(err, selecter.ErrNoLanguageFiles) ||
		errors.Is(err, langfile.ErrEmptyFile) ||
		errors.As(err, &ice) ||
		errors.As(err, &tse)
}

func New(ctx context.Context, cfg Config) (*App, error) {
	a := &App{
		cfg: cfg,
		rules: classify.NewConfig(classify.Options{
			CustomPrefixes:    cfg.CustomPrefixes,
			TechnicalPrefixes: cfg.TechnicalPrefixes,
		}),
	}
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			if n, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge); err != nil {
				log.Warn().Err(err).Msg("cache purge failed")
			} else if n > 0 {
				log.Info().Int("removed", n).Msg("purged expired cached reports")
			}
		}
		a.cache = &cache.ReportCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}
	if cfg.HistoryDB != "" {
		st, err := history.Open(ctx, cfg.HistoryDB)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		a.history = st
	}
	return a, nil
}

func (a *App) Close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			log.Warn().Err(err).Msg("close history")
		}
	}
}

func (a *App) settings() Settings {
	return Settings{
		MinWords:          a.cfg.MinWords,
		MinChars:          a.cfg.MinChars,
		RequireTerminal:   !a.cfg.NoTerminalCheck,
		MinFileBytes:      a.cfg.MinFileBytes,
		SampleCount:       a.cfg.SampleCount,
		CustomPrefixes:    a.cfg.CustomPrefixes,
		TechnicalPrefixes: a.cfg.TechnicalPrefixes,
	}
}

func (a *App) thresholds() validate.Thresholds {
	return validate.Thresholds{MinWords: a.cfg.MinWords, MinChars: a.cfg.MinChars, RequireTerminal: !a.cfg.NoTerminalCheck}
}

// ListFiles returns every language file in the world, largest first.
func (a *App) ListFiles(_ context.Context) ([]FileListing, error) {
	cands, err := langfile.Discover(a.cfg.WorldDir)
	if err != nil {
		return nil, err
	}
	out := make([]FileListing, 0, len(cands))
	for _, c := range cands {
		d := langfile.DetectLanguage(c.Name)
		out = append(out, FileListing{Candidate: c, Language: d.Code, IsEnglish: d.English, SizeHuman: humanize.Bytes(uint64(c.Size))})
	}
	return out, nil
}

// FileListing is one row of ListFiles.
type FileListing struct {
	langfile.Candidate
	Language  string `json:"language"`
	IsEnglish bool   `json:"is_english"`
	SizeHuman string `json:"size"`
}

// Analyze runs discovery, selection, classification, the content gate and
// readability scoring for the configured world. On a refusal after selection
// the partially filled report is returned together with the error.
func (a *App) Analyze(ctx context.Context) (*Report, error) {
	world := worldLabel(a.cfg)
	cands, err := langfile.Discover(a.cfg.WorldDir)
	if err != nil {
		return nil, fmt.Errorf("discover language files: %w", err)
	}
	sel, err := selecter.Select(cands, selecter.Options{MinBytes: a.cfg.MinFileBytes})
	if err != nil {
		if errors.Is(err, selecter.ErrNoLanguageFiles) {
			return nil, err
		}
		return &Report{World: world, WorldDir: a.cfg.WorldDir, Selection: sel, GeneratedAt: time.Now().UTC(), Version: BuildVersion}, err
	}
	log.Info().Str("file", sel.Chosen.RelPath).Str("language", sel.Language.Code).Int("candidates", sel.Total).Bool("fallback", sel.NonEnglishFallback).Msg("selected language file")

	data, err := os.ReadFile(sel.Chosen.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sel.Chosen.RelPath, err)
	}
	settings := a.settings()
	key := ""
	if a.cache != nil {
		key = cacheKey(data, settings)
		if r, ok := a.cachedReport(ctx, key); ok {
			refreshCached(r, world, a.cfg.WorldDir, sel)
			log.Info().Str("file", sel.Chosen.RelPath).Msg("using cached report")
			return r, nil
		}
	}

	f, err := langfile.FromBytes(sel.Chosen, data)
	if err != nil {
		return &Report{World: world, WorldDir: a.cfg.WorldDir, Selection: sel, GeneratedAt: time.Now().UTC(), Version: BuildVersion}, err
	}

	agg := aggregate.New(a.cfg.SampleCount)
	malformed := 0
	for _, e := range f.Entries {
		d := classify.Classify(e, a.rules)
		if d.Category == classify.CategoryMalformed {
			malformed++
			log.Debug().Str("key", e.Key).Int("line", e.Line).Err(d.Err).Msg("malformed entry")
		}
		agg.Add(e, d)
	}
	corpus := agg.Corpus()
	log.Info().Int("seen", corpus.Seen).Int("accepted", corpus.Accepted).Int("rejected", corpus.Rejected).Int("words", corpus.Words).Msg("classified entries")

	r := &Report{
		World:    world,
		WorldDir: a.cfg.WorldDir,
		File: AnalyzedFile{
			Name:           f.Name,
			RelPath:        f.RelPath,
			SizeBytes:      f.Size,
			Encoding:       f.Encoding,
			Language:       f.Language.Code,
			IsEnglish:      f.Language.English,
			Entries:        len(f.Entries),
			MalformedLines: f.Malformed,
			SHA256:         computeSHA256Hex(string(data)),
		},
		Selection:      sel,
		Corpus:         corpus,
		CorpusSHA256:   computeSHA256Hex(corpus.Text),
		SampleText:     sampleText(corpus.Text),
		FullTextLength: corpus.Chars,
		Settings:       settings,
		GeneratedAt:    time.Now().UTC(),
		Version:        BuildVersion,
	}
	if w, ok := nonEnglishWarning(sel); ok {
		r.Warnings = append(r.Warnings, w)
	}
	if f.Malformed > 0 {
		r.Warnings = append(r.Warnings, Warning{Code: WarnMalformedLines, Message: fmt.Sprintf("%d lines without a key=value pair were skipped", f.Malformed)})
	}
	if malformed > 0 {
		r.Warnings = append(r.Warnings, Warning{Code: WarnMalformedEntries, Message: fmt.Sprintf("%d entries had malformed values and were excluded", malformed)})
	}
	for _, w := range r.Warnings {
		log.Warn().Str("code", w.Code).Msg(w.Message)
	}

	if err := validate.Gate(corpus, a.thresholds()); err != nil {
		r.Outcome = OutcomeInsufficient
		r.Refusal = err.Error()
		return r, err
	}
	m, err := readability.Analyze(corpus.Text)
	if err != nil {
		// Configured thresholds were below what scoring needs.
		t := a.thresholds()
		t.MinWords = max(t.MinWords, 1)
		t.MinChars = max(t.MinChars, readability.MinTextChars)
		gateErr := validate.Gate(corpus, t)
		if gateErr == nil {
			gateErr = fmt.Errorf("score corpus: %w", err)
		}
		r.Outcome = OutcomeInsufficient
		r.Refusal = gateErr.Error()
		return r, gateErr
	}
	r.Metrics = &m
	r.Outcome = OutcomeScored
	if a.cache != nil {
		a.storeReport(ctx, key, r)
	}
	return r, nil
}

func nonEnglishWarning(sel selecter.Selection) (Warning, bool) {
	if !sel.NonEnglishFallback {
		return Warning{}, false
	}
	return Warning{
		Code:    WarnNonEnglish,
		Message: fmt.Sprintf("no English language file found; analyzed %s (%s). Readability formulas are calibrated for English.", sel.Chosen.Name, sel.Language.Code),
	}, true
}

// refreshCached replaces the parts of a cached report that depend on the
// world rather than on the selected file's bytes: the selection, the file's
// name and path, the timestamp and the language warning.
func refreshCached(r *Report, world, worldDir string, sel selecter.Selection) {
	r.World, r.WorldDir, r.CacheHit = world, worldDir, true
	r.Selection = sel
	r.File.Name = sel.Chosen.Name
	r.File.RelPath = sel.Chosen.RelPath
	r.File.SizeBytes = sel.Chosen.Size
	r.File.Language = sel.Language.Code
	r.File.IsEnglish = sel.Language.English
	r.GeneratedAt = time.Now().UTC()
	r.Version = BuildVersion

	warnings := r.Warnings[:0]
	for _, w := range r.Warnings {
		if w.Code != WarnNonEnglish {
			warnings = append(warnings, w)
		}
	}
	if w, ok := nonEnglishWarning(sel); ok {
		warnings = append([]Warning{w}, warnings...)
	}
	r.Warnings = warnings
}

func cacheKey(data []byte, s Settings) string {
	b, _ := json.Marshal(s)
	return cache.KeyFrom(data, reportSchema+"\n"+string(b))
}

func (a *App) cachedReport(ctx context.Context, key string) (*Report, bool) {
	b, ok, err := a.cache.Get(ctx, key)
	if err != nil || !ok {
		if err != nil {
			log.Warn().Err(err).Msg("cache read failed")
		}
		return nil, false
	}
	var r Report
	if err := json.Unmarshal(b, &r); err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable cached report")
		return nil, false
	}
	return &r, true
}

func (a *App) storeReport(ctx context.Context, key string, r *Report) {
	b, err := json.Marshal(r)
	if err != nil {
		log.Warn().Err(err).Msg("encode report for cache")
		return
	}
	if err := a.cache.Save(ctx, key, b); err != nil {
		log.Warn().Err(err).Msg("cache write failed")
		return
	}
	if a.cfg.CacheMaxEntries > 0 {
		if n, err := cache.EnforceLimits(a.cfg.CacheDir, 0, a.cfg.CacheMaxEntries); err == nil && n > 0 {
			log.Debug().Int("evicted", n).Msg("cache limits enforced")
		}
	}
}

// Run analyzes the world, writes the configured outputs and records the run
// in history. Refusals are recorded and returned.
func (a *App) Run(ctx context.Context) error {
	r, err := a.Analyze(ctx)
	a.record(ctx, r, err)
	if err != nil {
		return err
	}

	out := strings.TrimSpace(a.cfg.OutputPath)
	if out == "" {
		out = deriveReportsOutputPath(a.cfg, r.World)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	md := renderMarkdown(r)
	if err := validate.ValidateStructure(md, reportOutline); err != nil {
		log.Warn().Err(err).Msg("report structure issues")
		md += "\n\n> WARNING: Structure issues: " + err.Error() + "\n"
	}
	md = appendAutoToC(md, 6)
	md = appendEmbeddedManifest(md, manifestFor(r))
	md = appendReproFooter(md, r)
	if err := os.WriteFile(out, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Str("out", out).Msg("wrote report")

	jsonPath := a.cfg.OutputJSONPath
	if jsonPath == "" {
		jsonPath = deriveSidecarPath(out, ".json")
	}
	data, err := marshalReportJSON(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}

	if pdfPath := a.cfg.OutputPDFPath; pdfPath != "" || a.cfg.EnablePDF {
		if pdfPath == "" {
			pdfPath = deriveSidecarPath(out, ".pdf")
		}
		if err := writeReportPDF(md, pdfPath); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("out", pdfPath).Msg("wrote PDF report")
	}
	if htmlPath := a.cfg.OutputHTMLPath; htmlPath != "" || a.cfg.EnableHTML {
		if htmlPath == "" {
			htmlPath = deriveSidecarPath(out, ".html")
		}
		page, err := renderReportHTML(r)
		if err != nil {
			return fmt.Errorf("render html: %w", err)
		}
		if err := os.WriteFile(htmlPath, page, 0o644); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
		log.Info().Str("out", htmlPath).Msg("wrote HTML report")
	}
	return nil
}

// record stores the outcome of one run in history when configured.
func (a *App) record(ctx context.Context, r *Report, runErr error) {
	if a.history == nil {
		return
	}
	rec := history.Record{World: worldLabel(a.cfg)}
	if r != nil {
		rec.File = r.Selection.Chosen.RelPath
		rec.Language = r.Selection.Language.Code
		rec.Words = r.Corpus.Words
		rec.Accepted = r.Corpus.Accepted
		rec.Rejected = r.Corpus.Rejected
		if r.Metrics != nil {
			rec.Grade = r.Metrics.FleschKincaidGrade
		}
	}
	var ice *validate.InsufficientContentError
	var tse *selecter.TooSmallError
	switch {
	case runErr == nil:
		rec.Outcome = history.OutcomeScored
	case errors.Is(runErr, selecter.ErrNoLanguageFiles):
		rec.Outcome = history.OutcomeNoFiles
	case errors.As(runErr, &tse):
		rec.Outcome = history.OutcomeTooSmall
	case errors.As(runErr, &ice), errors.Is(runErr, langfile.ErrEmptyFile):
		rec.Outcome = history.OutcomeInsufficient
	default:
		rec.Outcome = history.OutcomeFailed
	}
	if _, err := a.history.Add(ctx, rec); err != nil {
		log.Warn().Err(err).Msg("history write failed")
	}
}

// History returns the most recent recorded runs.
func (a *App) History(ctx context.Context, limit int) ([]history.Record, error) {
	if a.history == nil {
		return nil, errors.New("history database not configured")
	}
	return a.history.Recent(ctx, limit)
}

// HistoryRecord returns one recorded run by id.
func (a *App) HistoryRecord(ctx context.Context, id string) (history.Record, error) {
	if a.history == nil {
		return history.Record{}, errors.New("history database not configured")
	}
	return a.history.Get(ctx, strings.TrimSpace(id))
}

// Watch runs once and then again whenever a language file under the world
// changes, until ctx is done. Refusals during watching are logged.
func (a *App) Watch(ctx context.Context) error {
	if err := a.Run(ctx); err != nil {
		if !IsRefusal(err) {
			return err
		}
		log.Error().Err(err).Msg("analysis refused")
	}
	return watch.Run(ctx, a.cfg.WorldDir, watch.Options{Debounce: a.cfg.WatchDebounce}, func(ctx context.Context, changed []string) error {
		log.Info().Strs("changed", changed).Msg("re-analyzing world")
		return a.Run(ctx)
	})
}
