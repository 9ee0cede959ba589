package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dgallion1/docfreq/internal/freq"
	"github.com/dgallion1/docfreq/internal/metrics"
	"github.com/dgallion1/docfreq/internal/parser"
	"github.com/dgallion1/docfreq/internal/tokenize"
)

// Result is one analysis of one document.
type Result struct {
	ID          string       `json:"analysis_id"`
	ContentHash string       `json:"content_hash"`
	Filename    string       `json:"filename"`
	Title       string       `json:"title"`
	Format      string       `json:"format"`
	Pages       int          `json:"pages"`
	Characters  int          `json:"characters"`
	Tokens      int          `json:"tokens"`
	Distinct    int          `json:"distinct_words"`
	TopN        int          `json:"top_n"`
	Top         []freq.Entry `json:"top"`
	Table       []freq.Entry `json:"table,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Options configures an Analyzer.
type Options struct {
	Parser      parser.Options
	DefaultTopN int
}

// Analyzer runs extract, tokenize and count over a single upload.
type Analyzer struct {
	opts  Options
	stats *StageStats
	log   *slog.Logger
}

func NewAnalyzer(opts Options, stats *StageStats, log *slog.Logger) *Analyzer {
	if stats == nil {
		stats = NewStageStats(time.Hour)
	}
	if log == nil {
		log = slog.Default()
	}
	opts.DefaultTopN = freq.ClampTopN(opts.DefaultTopN)
	return &Analyzer{opts: opts, stats: stats, log: log}
}

// Stats exposes the rolling stage latencies.
func (a *Analyzer) Stats() *StageStats {
	return a.stats
}

// DefaultTopN is the N used when a caller passes 0.
func (a *Analyzer) DefaultTopN() int {
	return a.opts.DefaultTopN
}

// Analyze parses data as the format implied by filename and counts its
// words. topN is clamped to [freq.MinTopN, freq.MaxTopN]; 0 selects the
// configured default. Errors wrap parser.ErrUnsupportedFormat,
// parser.ErrMalformedDocument or the context error.
func (a *Analyzer) Analyze(ctx context.Context, data []byte, filename string, topN int) (*Result, error) {
	if topN == 0 {
		topN = a.opts.DefaultTopN
	}
	res := &Result{
		ID:          uuid.NewString(),
		ContentHash: ContentHashHex(data),
		Filename:    filename,
		Format:      formatOf(filename),
		TopN:        freq.ClampTopN(topN),
		CreatedAt:   time.Now().UTC(),
	}
	log := a.log.With("analysis_id", res.ID, "filename", filename, "format", res.Format)
	start := time.Now()

	p, err := parser.ForFile(filename, a.opts.Parser)
	if err != nil {
		return nil, a.fail(log, res.Format, err)
	}

	// Stage 1: extract
	stageStart := time.Now()
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, a.fail(log, res.Format, fmt.Errorf("extract %s: %w", filename, err))
	}
	text := doc.Text()
	a.observe(log, StageExtract, time.Since(stageStart), "sections", len(doc.Sections))
	res.Title = doc.Title
	res.Pages = doc.Pages()
	res.Characters = utf8.RuneCountInString(text)

	if err := ctx.Err(); err != nil {
		return nil, a.fail(log, res.Format, err)
	}

	// Stage 2: tokenize and filter
	stageStart = time.Now()
	tokens := tokenize.New().Tokenize(text)
	a.observe(log, StageTokenize, time.Since(stageStart), "tokens", len(tokens))

	if err := ctx.Err(); err != nil {
		return nil, a.fail(log, res.Format, err)
	}

	// Stage 3: count
	stageStart = time.Now()
	f := freq.Count(tokens)
	res.Tokens = f.Total()
	res.Distinct = f.Len()
	res.Top = f.MostCommon(res.TopN)
	res.Table = f.Entries()
	a.observe(log, StageCount, time.Since(stageStart), "distinct", res.Distinct)

	total := time.Since(start)
	a.stats.Record(StageTotal, total)
	metrics.ObserveStage(StageTotal, total)
	metrics.ObserveTokens(res.Tokens)
	metrics.ObserveDocument(res.Format, metrics.OutcomeOK)

	log.Info("analysis complete",
		"pages", res.Pages,
		"characters", res.Characters,
		"tokens", res.Tokens,
		"distinct", res.Distinct,
		"duration_ms", total.Milliseconds(),
	)
	return res, nil
}

func (a *Analyzer) observe(log *slog.Logger, stage string, d time.Duration, attrs ...any) {
	a.stats.Record(stage, d)
	metrics.ObserveStage(stage, d)
	log.Debug("stage done", append([]any{"stage", stage, "duration_ms", d.Milliseconds()}, attrs...)...)
}

func (a *Analyzer) fail(log *slog.Logger, format string, err error) error {
	outcome := outcomeOf(err)
	metrics.ObserveDocument(format, outcome)
	if outcome == metrics.OutcomeCanceled {
		log.Info("analysis canceled", "error", err)
	} else {
		log.Warn("analysis failed", "outcome", outcome, "error", err)
	}
	return err
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, parser.ErrUnsupportedFormat):
		return metrics.OutcomeUnsupported
	case errors.Is(err, parser.ErrMalformedDocument):
		return metrics.OutcomeMalformed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeError
	}
}

func formatOf(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch ext {
	case "":
		return "unknown"
	case "markdown":
		return "md"
	case "htm":
		return "html"
	}
	if !parser.IsSupportedExtension(filename) {
		return "other"
	}
	return ext
}
