// Package pipeline orchestrates resume rendering: migrating a document, resolving
// settings, composing Typst markup and optionally compiling it through the engine.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/engine"
	"github.com/jonathan/resume-builder/internal/i18n"
	"github.com/jonathan/resume-builder/internal/migrate"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/pipeline/steps"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// ErrNoEngine is returned when a compiled format is requested from a runner without an engine.
var ErrNoEngine = errors.New("no typst engine configured")

// ProgressEvent represents a progress update during a render run
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RenderID string `json:"render_id,omitempty"`
}

// ProgressCallback is called when render progress occurs
type ProgressCallback func(event ProgressEvent)

// Renderer compiles markup. *engine.Loader satisfies it.
type Renderer interface {
	Initialize(ctx context.Context) error
	Render(ctx context.Context, markup string, format engine.Format) ([]byte, error)
}

// ArtifactStore persists render results. *db.DB satisfies it.
type ArtifactStore interface {
	SaveRenderArtifact(ctx context.Context, a *db.RenderArtifact) error
}

// Options configures a Runner. Only Catalog is loaded automatically when nil.
type Options struct {
	Catalog  *i18n.Catalog
	Engine   Renderer
	Store    ArtifactStore
	Logger   *log.Logger
	Printer  *observability.Printer
	Defaults types.Settings

	// StrictTemplates rejects unknown template ids instead of using the default template.
	StrictTemplates bool
	// Concurrency bounds GenerateBatch; zero means runtime.NumCPU().
	Concurrency int
	OnProgress  ProgressCallback
}

// Runner executes render runs. It is safe for concurrent use.
type Runner struct {
	opts   Options
	logger *log.Logger
}

// NewRunner creates a runner, loading the embedded translation catalog when none is given.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Catalog == nil {
		catalog, err := i18n.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load translations: %w", err)
		}
		opts.Catalog = catalog
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	opts.Defaults = mergeSettings(opts.Defaults, types.DefaultSettings())

	return &Runner{opts: opts, logger: opts.Logger}, nil
}

// Request is a single render run
type Request struct {
	ResumeID *uuid.UUID
	Data     types.ResumeData
	Settings types.Settings
	Format   Format

	// OnProgress receives this request's events in addition to Options.OnProgress.
	OnProgress ProgressCallback
}

// Result is the outcome of a render run
type Result struct {
	ID          uuid.UUID      `json:"id"`
	Markup      string         `json:"markup"`
	Output      []byte         `json:"-"`
	Format      Format         `json:"format"`
	Filename    string         `json:"filename"`
	ContentType string         `json:"contentType"`
	Settings    types.Settings `json:"settings"`
	Locale      string         `json:"locale"`
	Plan        rendering.Plan `json:"plan"`
	Migrations  []string       `json:"migrations,omitempty"`
	Duration    time.Duration  `json:"duration"`
}

// Generate returns the Typst markup for data.
func (r *Runner) Generate(ctx context.Context, data types.ResumeData, settings types.Settings) (string, error) {
	res, err := r.Export(ctx, Request{Data: data, Settings: settings, Format: FormatTypst})
	if err != nil {
		return "", err
	}
	return res.Markup, nil
}

// Export runs every step the requested format needs. The caller's document is not modified.
func (r *Runner) Export(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	if req.Format == "" {
		req.Format = FormatTypst
	}
	if !req.Format.Valid() {
		return nil, fmt.Errorf("unsupported format %q", req.Format)
	}

	res := &Result{ID: uuid.New(), Format: req.Format}
	rn := &run{runner: r, res: res, completed: map[string]bool{}, onProgress: req.OnProgress}
	doc := cloneDocument(req.Data)

	plan := steps.Plan(req.Format.Compiled(), r.opts.Store != nil)
	for _, step := range plan {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := steps.ValidateDependencies(rn.completed, step); err != nil {
			return nil, err
		}

		var err error
		switch step {
		case steps.StepMigrate:
			err = rn.migrate(&doc)
		case steps.StepSettings:
			err = rn.resolveSettings(req.Settings, &doc)
		case steps.StepCompose:
			err = rn.compose(&doc)
		case steps.StepCompile:
			err = rn.compile(ctx)
		case steps.StepPersist:
			rn.persist(ctx, req.ResumeID)
		}
		if err != nil {
			return nil, err
		}
		rn.completed[step] = true
	}

	if !req.Format.Compiled() {
		res.Output = []byte(res.Markup)
	}
	res.Filename = ExportFilename(&doc, req.Format.Extension())
	res.ContentType = req.Format.ContentType()
	res.Duration = time.Since(start)

	r.logger.Debug("render complete",
		"id", res.ID,
		"template", res.Settings.TemplateID,
		"locale", res.Locale,
		"format", res.Format,
		"bytes", len(res.Output),
		"duration", res.Duration.Round(time.Millisecond))
	if r.opts.Printer != nil {
		r.opts.Printer.PrintArtifact(res.Filename, string(res.Format), len(res.Output), res.Duration)
	}
	return res, nil
}

// GenerateBatch exports every request concurrently. Results keep the order of reqs;
// the first failure cancels the remaining runs.
func (r *Runner) GenerateBatch(ctx context.Context, reqs []Request) ([]*Result, error) {
	results := make([]*Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)
	for i := range reqs {
		g.Go(func() error {
			res, err := r.Export(gctx, reqs[i])
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info("batch rendered", "count", len(results))
	return results, nil
}

// run carries the state of a single Export call between steps.
type run struct {
	runner     *Runner
	res        *Result
	completed  map[string]bool
	template   *rendering.Template
	translate  rendering.Translator
	onProgress ProgressCallback
}

func (rn *run) emit(step, message string) {
	if rn.runner.opts.OnProgress == nil && rn.onProgress == nil {
		return
	}
	event := ProgressEvent{
		Step:     step,
		Category: steps.StepRegistry[step].Category,
		Message:  message,
		RenderID: rn.res.ID.String(),
	}
	if rn.runner.opts.OnProgress != nil {
		rn.runner.opts.OnProgress(event)
	}
	if rn.onProgress != nil {
		rn.onProgress(event)
	}
}

func (rn *run) migrate(doc *types.ResumeData) error {
	applied, err := migrate.Upgrade(doc)
	if err != nil {
		return fmt.Errorf("migrating resume failed: %w", err)
	}
	rn.res.Migrations = applied
	if len(applied) > 0 {
		rn.runner.logger.Info("upgraded resume document", "steps", applied, "version", doc.Version)
		if rn.runner.opts.Printer != nil {
			rn.runner.opts.Printer.PrintMigrations(applied)
		}
	}
	rn.emit(steps.StepMigrate, fmt.Sprintf("Document at version %s", doc.Version))
	return nil
}

func (rn *run) resolveSettings(requested types.Settings, doc *types.ResumeData) error {
	defaults := rn.runner.opts.Defaults
	if strings.TrimSpace(requested.Locale) == "" && strings.TrimSpace(doc.Language) != "" {
		defaults.Locale = doc.Language
	}
	settings := mergeSettings(requested, defaults)
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	tmpl := rendering.GetTemplate(settings.TemplateID)
	if rn.runner.opts.StrictTemplates {
		var err error
		if tmpl, err = rendering.LookupTemplate(settings.TemplateID); err != nil {
			return err
		}
	}
	settings.TemplateID = tmpl.ID

	catalog := rn.runner.opts.Catalog
	rn.res.Locale = catalog.Negotiate(settings.Locale)
	if !catalog.Has(settings.Locale) {
		rn.runner.logger.Warn("no translations for locale", "locale", settings.Locale, "using", rn.res.Locale)
	}
	rn.res.Settings = settings
	rn.template = tmpl
	rn.translate = catalog.Translator(rn.res.Locale)

	rn.emit(steps.StepSettings, fmt.Sprintf("Using template %s, locale %s", tmpl.ID, rn.res.Locale))
	return nil
}

func (rn *run) compose(doc *types.ResumeData) error {
	s := rn.res.Settings
	rn.res.Plan = rn.template.Plan(doc)
	if rn.runner.opts.Printer != nil {
		rn.runner.opts.Printer.PrintDocumentSummary(doc)
		rn.runner.opts.Printer.PrintRenderPlan(rn.res.Plan)
	}

	rn.res.Markup = rn.template.Parse(doc, s.Font, s.FontSize, s.Locale, rn.translate)
	rn.emit(steps.StepCompose, fmt.Sprintf("Composed %d bytes of markup", len(rn.res.Markup)))
	return nil
}

func (rn *run) compile(ctx context.Context) error {
	eng := rn.runner.opts.Engine
	if eng == nil {
		return ErrNoEngine
	}
	if err := eng.Initialize(ctx); err != nil {
		return fmt.Errorf("typst initialization failed: %w", err)
	}

	out, err := eng.Render(ctx, rn.res.Markup, engine.Format(rn.res.Format))
	if err != nil {
		return fmt.Errorf("rendering %s failed: %w", rn.res.Format, err)
	}
	rn.res.Output = out
	rn.emit(steps.StepCompile, fmt.Sprintf("Compiled %s (%d bytes)", rn.res.Format, len(out)))
	return nil
}

// persist stores the result. Storage failures are logged and do not fail the run.
func (rn *run) persist(ctx context.Context, resumeID *uuid.UUID) {
	artifact := &db.RenderArtifact{
		ID:         rn.res.ID,
		ResumeID:   resumeID,
		TemplateID: rn.res.Settings.TemplateID,
		Locale:     rn.res.Locale,
		Format:     string(rn.res.Format),
		Markup:     rn.res.Markup,
	}
	if rn.res.Format.Compiled() {
		artifact.Output = rn.res.Output
	}
	if err := rn.runner.opts.Store.SaveRenderArtifact(ctx, artifact); err != nil {
		rn.runner.logger.Warn("failed to save render artifact", "id", rn.res.ID, "err", err)
		return
	}
	rn.emit(steps.StepPersist, "Saved render artifact")
}

// mergeSettings fills blank fields of s from defaults.
func mergeSettings(s, defaults types.Settings) types.Settings {
	if strings.TrimSpace(s.Font) == "" {
		s.Font = defaults.Font
	}
	if s.FontSize == 0 {
		s.FontSize = defaults.FontSize
	}
	if strings.TrimSpace(s.Locale) == "" {
		s.Locale = defaults.Locale
	}
	if strings.TrimSpace(s.TemplateID) == "" {
		s.TemplateID = defaults.TemplateID
	}
	return s
}

// cloneDocument copies the maps an upgrade may write to.
func cloneDocument(d types.ResumeData) types.ResumeData {
	d.SectionOrder = maps.Clone(d.SectionOrder)
	d.SectionHeaders = maps.Clone(d.SectionHeaders)
	d.SectionPlacement = maps.Clone(d.SectionPlacement)
	return d
}
