// Package customize maps a style configuration onto concrete presentation values for
// a chosen template.
package customize

import (
	"github.com/jonathan/resume-wizard/internal/templates"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/validation"
)

// Fixed presentation constants that are not user-configurable.
const (
	BannerSizeOffset = 8
	BannerTextColor  = "#ffffff"

	ItemBorderWidth  = 1
	ItemBorderColor  = "#e2e8f0"
	ItemBorderRadius = 4
	ItemPadding      = 12
)

// Engine resolves style configurations against a template catalog.
type Engine struct {
	catalog *templates.Catalog
}

// NewEngine creates an engine over catalog.
func NewEngine(catalog *templates.Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Catalog returns the catalog the engine resolves against.
func (e *Engine) Catalog() *templates.Catalog {
	return e.catalog
}

// Resolve computes the ResolvedStyle for cfg on a template. The template is templateID
// when set, else doc.TemplateID, else the catalog default. doc may be nil.
//
// A syntactically invalid cfg returns a *ConfigError. A column count the template does
// not support, or an unknown template, returns a *RejectionError. In every other case
// the numeric fields are clamped and a complete style is returned. Neither input is
// modified.
func (e *Engine) Resolve(doc *types.ResumeDocument, cfg types.StyleConfiguration, templateID string) (types.ResolvedStyle, error) {
	if errs := validation.Struct(cfg); errs.HasErrors() {
		return types.ResolvedStyle{}, &ConfigError{Errors: errs}
	}

	tmpl, err := e.template(doc, templateID)
	if err != nil {
		return types.ResolvedStyle{}, err
	}
	if !tmpl.SupportsColumns(cfg.Layout.Columns) {
		return types.ResolvedStyle{}, &RejectionError{
			Field:      "layout.columns",
			Value:      cfg.Layout.Columns,
			TemplateID: tmpl.ID,
			Supported:  tmpl.Columns,
			Message:    "column count is not supported by this template",
		}
	}

	return build(tmpl.ID, Clamp(cfg)), nil
}

// Default resolves the default configuration for templateID, falling back to the
// catalog default when the template is unknown.
func (e *Engine) Default(templateID string) types.ResolvedStyle {
	tmpl, ok := e.catalog.Get(templateID)
	if !ok {
		tmpl = e.catalog.Default()
	}
	return build(tmpl.ID, types.DefaultStyleConfiguration())
}

func (e *Engine) template(doc *types.ResumeDocument, templateID string) (types.TemplateDescriptor, error) {
	id := templateID
	if id == "" && doc != nil {
		id = doc.TemplateID
	}
	if id == "" {
		return e.catalog.Default(), nil
	}
	tmpl, ok := e.catalog.Get(id)
	if !ok {
		return types.TemplateDescriptor{}, &RejectionError{
			Field:      "templateId",
			Value:      id,
			TemplateID: id,
			Message:    "unknown template",
		}
	}
	return tmpl, nil
}

// build derives every slot from an already clamped configuration.
func build(templateID string, cfg types.StyleConfiguration) types.ResolvedStyle {
	c, t, s := cfg.Colors, cfg.Typography, cfg.Spacing

	item := types.ContainerStyle{MarginBottom: s.ItemSpacing}
	if cfg.Layout.SectionStyle == types.SectionBoxed {
		item.Bordered = true
		item.BorderWidth = ItemBorderWidth
		item.BorderColor = ItemBorderColor
		item.BorderRadius = ItemBorderRadius
		item.Padding = ItemPadding
	}

	return types.ResolvedStyle{
		TemplateID:   templateID,
		Columns:      cfg.Layout.Columns,
		HeaderStyle:  cfg.Layout.HeaderStyle,
		SectionStyle: cfg.Layout.SectionStyle,

		Page: types.TextStyle{
			Color:      c.Text,
			Background: c.Secondary,
			FontFamily: t.BodyFont,
			FontSize:   t.BodySize,
			LineHeight: t.LineHeight,
			Padding:    s.Padding,
		},
		Banner: types.TextStyle{
			Color:        BannerTextColor,
			Background:   c.Primary,
			FontFamily:   t.HeadingFont,
			FontSize:     t.HeadingSize + BannerSizeOffset,
			LineHeight:   t.LineHeight,
			Padding:      s.Padding / 2,
			MarginBottom: s.SectionSpacing,
		},
		Heading: types.TextStyle{
			Color:        c.Primary,
			FontFamily:   t.HeadingFont,
			FontSize:     t.HeadingSize,
			LineHeight:   t.LineHeight,
			MarginBottom: s.ItemSpacing,
		},
		Body: types.TextStyle{
			Color:      c.Text,
			FontFamily: t.BodyFont,
			FontSize:   t.BodySize,
			LineHeight: t.LineHeight,
		},
		Accent: types.TextStyle{
			Color:      c.Accent,
			FontFamily: t.BodyFont,
			FontSize:   t.BodySize,
			LineHeight: t.LineHeight,
		},
		Section: types.ContainerStyle{MarginBottom: s.SectionSpacing},
		Item:    item,
	}
}
