package wizard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonathan/resume-wizard/internal/customize"
	"github.com/jonathan/resume-wizard/internal/logging"
	"github.com/jonathan/resume-wizard/internal/resume"
	"github.com/jonathan/resume-wizard/internal/types"
)

// Step names a wizard screen.
type Step string

// Wizard steps in navigation order. StepEdit may be visited at any point.
const (
	StepCreate    Step = "create"
	StepTemplates Step = "templates"
	StepEdit      Step = "edit"
	StepCustomize Step = "customize"
	StepPreview   Step = "preview"
	StepFinalize  Step = "finalize"
	StepDone      Step = "done"
)

// Result is the outcome of a step. When Errors or Rejection is set the step was
// blocked, Next equals Step and the carrier was not written.
type Result struct {
	Step      Step                      `json:"step"`
	Next      Step                      `json:"next"`
	Errors    types.FieldErrors         `json:"errors,omitempty"`
	Rejection *customize.RejectionError `json:"rejection,omitempty"`
	Document  *types.ResumeDocument     `json:"document,omitempty"`
	Config    *types.StyleConfiguration `json:"config,omitempty"`
	Style     *types.ResolvedStyle      `json:"style,omitempty"`
}

// OK reports whether the step succeeded.
func (r *Result) OK() bool {
	return !r.Errors.HasErrors() && r.Rejection == nil
}

func blocked(step Step, errs types.FieldErrors) *Result {
	return &Result{Step: step, Next: step, Errors: errs}
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

// WithIDGenerator overrides the id source for new documents and entries.
func WithIDGenerator(newID func() string) Option {
	return func(w *Wizard) { w.newID = newID }
}

// WithLogger sets the logger for step outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(w *Wizard) { w.logger = l }
}

// Wizard runs the steps for one session. Each step reads only the keys it needs and
// re-saves the whole object it owns.
type Wizard struct {
	carrier *Carrier
	engine  *customize.Engine
	now     func() time.Time
	newID   func() string
	logger  *slog.Logger
}

// New creates a wizard over carrier.
func New(carrier *Carrier, engine *customize.Engine, opts ...Option) *Wizard {
	w := &Wizard{
		carrier: carrier,
		engine:  engine,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   resume.NewID,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.OrDiscard(w.logger).With("session", carrier.SessionID())
	return w
}

// Create validates the creation subset of doc and stores it as currentResume. It also
// replaces the working copy, so returning to this step and submitting again is what later
// steps read. A template chosen earlier is kept when doc names none, as are the id and
// creation time of the document being replaced.
func (w *Wizard) Create(ctx context.Context, doc types.ResumeDocument) (*Result, error) {
	doc = resume.Normalize(doc)
	if errs := resume.ValidateCreation(&doc); errs.HasErrors() {
		w.logBlocked(StepCreate, errs)
		return blocked(StepCreate, errs), nil
	}

	prev, found, err := w.workingCopy(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		if doc.TemplateID == "" {
			doc.TemplateID = prev.TemplateID
		}
		if doc.ID == "" {
			doc.ID = prev.ID
		}
		if doc.CreatedAt.IsZero() {
			doc.CreatedAt = prev.CreatedAt
		}
	}

	doc = resume.EnsureIDs(doc, w.newID)
	now := w.now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.LastModified = now

	if err := w.carrier.Save(ctx, KeyCurrentResume, doc); err != nil {
		return nil, err
	}
	if err := w.carrier.Save(ctx, KeyResumeData, doc); err != nil {
		return nil, err
	}
	w.logger.Info("step completed", "step", StepCreate, "resume", doc.ID)
	return &Result{Step: StepCreate, Next: StepTemplates, Document: &doc}, nil
}

// ChooseTemplate sets the template of the working copy and stores it as resumeData.
// Without any stored document it starts from an empty one.
func (w *Wizard) ChooseTemplate(ctx context.Context, templateID string) (*Result, error) {
	errs := types.FieldErrors{}
	switch {
	case templateID == "":
		errs.Add("templateId", "Template is required")
	default:
		if _, ok := w.engine.Catalog().Get(templateID); !ok {
			errs.Add("templateId", "Template is invalid")
		}
	}
	if errs.HasErrors() {
		w.logBlocked(StepTemplates, errs)
		return blocked(StepTemplates, errs), nil
	}

	doc, found, err := w.workingCopy(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		doc = types.ResumeDocument{CreatedAt: w.now()}
	}
	doc = resume.EnsureIDs(doc, w.newID)
	doc.TemplateID = templateID
	doc.LastModified = w.now()

	if err := w.carrier.Save(ctx, KeyResumeData, doc); err != nil {
		return nil, err
	}
	w.logger.Info("step completed", "step", StepTemplates, "template", templateID)
	return &Result{Step: StepTemplates, Next: StepCustomize, Document: &doc}, nil
}

// Edit merges patch into the working copy, normalizes and validates the result, and
// stores it as resumeData.
func (w *Wizard) Edit(ctx context.Context, patch resume.Patch) (*Result, error) {
	doc, found, err := w.workingCopy(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		doc = types.ResumeDocument{CreatedAt: w.now()}
	}

	merged, err := resume.Merge(doc, patch)
	if err != nil {
		var pathErr *resume.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
		errs := types.FieldErrors{}
		errs.Add(pathErr.Path, pathErr.Message)
		w.logBlocked(StepEdit, errs)
		return blocked(StepEdit, errs), nil
	}

	merged = resume.EnsureIDs(resume.Normalize(merged), w.newID)
	if errs := resume.Validate(&merged); errs.HasErrors() {
		w.logBlocked(StepEdit, errs)
		return blocked(StepEdit, errs), nil
	}
	merged.LastModified = w.now()

	if err := w.carrier.Save(ctx, KeyResumeData, merged); err != nil {
		return nil, err
	}
	w.logger.Info("step completed", "step", StepEdit, "paths", len(patch))

	next := StepCustomize
	if merged.TemplateID == "" {
		next = StepTemplates
	}
	return &Result{Step: StepEdit, Next: next, Document: &merged}, nil
}

// Customize resolves cfg against the working copy's template and stores the clamped
// configuration as templateCustomizations. A rejection blocks the step.
func (w *Wizard) Customize(ctx context.Context, cfg types.StyleConfiguration) (*Result, error) {
	doc, found, err := w.workingCopy(ctx)
	if err != nil {
		return nil, err
	}
	var docPtr *types.ResumeDocument
	if found {
		docPtr = &doc
	}

	style, err := w.engine.Resolve(docPtr, cfg, "")
	if err != nil {
		if res := w.resolveFailure(StepCustomize, err); res != nil {
			return res, nil
		}
		return nil, err
	}

	clamped := customize.Clamp(cfg)
	if err := w.carrier.Save(ctx, KeyTemplateCustomizations, clamped); err != nil {
		return nil, err
	}
	w.logger.Info("step completed", "step", StepCustomize, "template", style.TemplateID)
	return &Result{
		Step:     StepCustomize,
		Next:     StepFinalize,
		Document: docPtr,
		Config:   &clamped,
		Style:    &style,
	}, nil
}

// Preview returns the working copy and its resolved style. A missing document yields
// a nil Document, which renders as a placeholder; missing customizations resolve to
// the defaults. A stored configuration the current template rejects falls back to the
// template defaults and is reported in Rejection. Preview never writes.
func (w *Wizard) Preview(ctx context.Context) (*Result, error) {
	doc, found, err := w.workingCopy(ctx)
	if err != nil {
		return nil, err
	}
	var docPtr *types.ResumeDocument
	if found {
		docPtr = &doc
	}

	cfg, err := w.styleConfig(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{Step: StepPreview, Next: StepFinalize, Document: docPtr, Config: &cfg}
	style, err := w.engine.Resolve(docPtr, cfg, "")
	if err != nil {
		var rej *customize.RejectionError
		var cfgErr *customize.ConfigError
		switch {
		case errors.As(err, &rej):
			res.Rejection = rej
		case errors.As(err, &cfgErr):
			res.Errors = cfgErr.Errors
		default:
			return nil, err
		}
		templateID := ""
		if docPtr != nil {
			templateID = docPtr.TemplateID
		}
		style = w.engine.Default(templateID)
	}
	res.Style = &style
	return res, nil
}

// Finalize runs full validation and the renderability check, resolves the final style
// and tears the session down. On failure the carrier is left untouched.
func (w *Wizard) Finalize(ctx context.Context) (*Result, error) {
	doc, _, err := w.workingCopy(ctx)
	if err != nil {
		return nil, err
	}

	errs := resume.Validate(&doc)
	errs.Merge(resume.ValidateRenderable(&doc))
	if errs.HasErrors() {
		w.logBlocked(StepFinalize, errs)
		return blocked(StepFinalize, errs), nil
	}

	cfg, err := w.styleConfig(ctx)
	if err != nil {
		return nil, err
	}
	style, err := w.engine.Resolve(&doc, cfg, "")
	if err != nil {
		if res := w.resolveFailure(StepFinalize, err); res != nil {
			return res, nil
		}
		return nil, err
	}

	if err := w.carrier.Clear(ctx); err != nil {
		return nil, err
	}
	w.logger.Info("step completed", "step", StepFinalize, "resume", doc.ID)
	return &Result{Step: StepFinalize, Next: StepDone, Document: &doc, Config: &cfg, Style: &style}, nil
}

// Reset discards every key of the session.
func (w *Wizard) Reset(ctx context.Context) error {
	return w.carrier.Clear(ctx)
}

// workingCopy loads resumeData, falling back to currentResume.
func (w *Wizard) workingCopy(ctx context.Context) (types.ResumeDocument, bool, error) {
	for _, key := range []Key{KeyResumeData, KeyCurrentResume} {
		var doc types.ResumeDocument
		found, err := w.carrier.Load(ctx, key, &doc)
		if err != nil {
			return types.ResumeDocument{}, false, err
		}
		if found {
			return doc, true, nil
		}
	}
	return types.ResumeDocument{}, false, nil
}

func (w *Wizard) styleConfig(ctx context.Context) (types.StyleConfiguration, error) {
	var cfg types.StyleConfiguration
	found, err := w.carrier.Load(ctx, KeyTemplateCustomizations, &cfg)
	if err != nil {
		return types.StyleConfiguration{}, err
	}
	if !found {
		return types.DefaultStyleConfiguration(), nil
	}
	return cfg, nil
}

// resolveFailure turns engine errors a user can correct into a blocked result. It
// returns nil for errors the caller must propagate.
func (w *Wizard) resolveFailure(step Step, err error) *Result {
	var rej *customize.RejectionError
	if errors.As(err, &rej) {
		errs := types.FieldErrors{}
		errs.Add(rej.Field, rej.Message)
		w.logBlocked(step, errs)
		res := blocked(step, errs)
		res.Rejection = rej
		return res
	}
	var cfgErr *customize.ConfigError
	if errors.As(err, &cfgErr) {
		w.logBlocked(step, cfgErr.Errors)
		return blocked(step, cfgErr.Errors)
	}
	return nil
}

func (w *Wizard) logBlocked(step Step, errs types.FieldErrors) {
	w.logger.Info("step blocked", "step", step, "fields", errs.Paths())
}
