package convert

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"layout-converter/internal/calc"
	"layout-converter/internal/coerce"
	"layout-converter/internal/diagnostic"
	"layout-converter/internal/ingest"
	"layout-converter/internal/layout"
	"layout-converter/internal/mapping"
)

// DefaultWarningLimit is the number of warnings kept per run.
const DefaultWarningLimit = 500

// Metrics receives the outcome of every conversion.
type Metrics interface {
	ConversionCompleted(format mapping.Format, rows int, warnings map[string]int, elapsed time.Duration)
	ConversionRejected(format mapping.Format, codes []string)
}

type nopMetrics struct{}

func (nopMetrics) ConversionCompleted(mapping.Format, int, map[string]int, time.Duration) {}
func (nopMetrics) ConversionRejected(mapping.Format, []string)                           {}

// Engine converts tables. It holds no per-run state and may be shared.
type Engine struct {
	logger       *zap.Logger
	registry     *calc.Registry
	policy       coerce.MaskPolicy
	encoder      layout.Encoder
	names        func(id string) string
	now          func() time.Time
	metrics      Metrics
	warningLimit int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRegistry sets the calculated field algorithms.
func WithRegistry(r *calc.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithMaskPolicy sets the per data type mask removal policy.
func WithMaskPolicy(p coerce.MaskPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithEncoder sets the output encoder.
func WithEncoder(enc layout.Encoder) Option {
	return func(e *Engine) { e.encoder = enc }
}

// WithFieldNames sets the resolver of catalog display names used in header
// lines, usually (*catalog.Catalog).Name.
func WithFieldNames(names func(id string) string) Option {
	return func(e *Engine) { e.names = names }
}

// WithClock sets the source of "today" for calculated fields.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithWarningLimit caps the warnings kept per run. Zero or less keeps all.
func WithWarningLimit(n int) Option {
	return func(e *Engine) { e.warningLimit = n }
}

// NewEngine creates an engine with the built-in algorithms, the default mask
// policy and the charmap encoder.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:       zap.NewNop(),
		registry:     calc.DefaultRegistry(),
		policy:       coerce.DefaultMaskPolicy(),
		encoder:      layout.CharmapEncoder{},
		now:          time.Now,
		metrics:      nopMetrics{},
		warningLimit: DefaultWarningLimit,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Input is one conversion request.
type Input struct {
	Table   *ingest.Table
	Mapping *mapping.Table
	Config  mapping.OutputConfig
	// SourceName is the input file name, used for the proposed filename.
	SourceName string
}

// Result is a finished conversion.
type Result struct {
	Data     []byte
	Filename string
	// Rows is the number of records written, excluding the header line.
	Rows int
	// Replaced counts characters the output charset could not represent.
	Replaced    int
	Diagnostics diagnostic.Diagnostics
}

// Convert validates the config and converts every row of the input table.
// A config with errors returns a *ValidationError and no result.
func (e *Engine) Convert(in Input) (*Result, error) {
	start := e.now()

	if in.Table == nil {
		return nil, ErrNoInput
	}

	cfg := in.Config.Clone()
	slices.SortStableFunc(cfg.Fields, func(a, b mapping.OutputField) int { return a.Order - b.Order })

	diags := mapping.Validate(cfg, in.Mapping)
	if diags.HasErrors() {
		e.logger.Warn("output config rejected",
			zap.String("config", cfg.Name),
			zap.Strings("codes", diags.Codes()))
		e.metrics.ConversionRejected(cfg.Format, diags.Codes())

		return nil, &ValidationError{Diagnostics: *diags}
	}

	r := newRun(e, cfg, in.Mapping, diags)
	lines := make([]string, 0, len(in.Table.Rows)+1)

	if cfg.Format == mapping.FormatDelimited && cfg.IncludeHeader {
		lines = append(lines, r.headerLine())
	}

	for i, row := range in.Table.Rows {
		lines = append(lines, r.line(i+1, row))
	}

	data, replaced, err := e.encoder.Encode(layout.Join(lines), cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}

	if replaced > 0 {
		r.warn(diagnostic.ClassValueCoercion, CodeUnencodable,
			fmt.Sprintf("%d characters could not be represented in %s", replaced, cfg.Encoding), "", 0)
	}

	r.finish()
	diags.Merge(r.diags)

	elapsed := e.now().Sub(start)
	counts := r.codes

	if r.total > 0 {
		e.logger.Warn("conversion finished with warnings",
			zap.String("config", cfg.Name),
			zap.Int("rows", len(in.Table.Rows)),
			zap.Int("warnings", r.total),
			zap.Any("codes", counts))
	} else {
		e.logger.Info("conversion finished",
			zap.String("config", cfg.Name),
			zap.Int("rows", len(in.Table.Rows)),
			zap.Duration("elapsed", elapsed))
	}

	e.metrics.ConversionCompleted(cfg.Format, len(in.Table.Rows), counts, elapsed)

	return &Result{
		Data:        data,
		Filename:    ProposedFilename(cfg.Name, in.SourceName, cfg.Format),
		Rows:        len(in.Table.Rows),
		Replaced:    replaced,
		Diagnostics: *diags,
	}, nil
}
