package server

import (
	"net/http"

	"github.com/jonathan/resume-wizard/internal/rendering"
	"github.com/jonathan/resume-wizard/internal/resume"
	"github.com/jonathan/resume-wizard/internal/server/middleware"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

// Finalize output formats.
const (
	FormatJSON  = "json"
	FormatHTML  = "html"
	FormatLaTeX = "latex"
)

// templateRequest selects a catalog template.
type templateRequest struct {
	TemplateID string `json:"templateId"`
}

// wizardFor binds a wizard to the request's session.
func (s *Server) wizardFor(r *http.Request) (*wizard.Wizard, error) {
	sessionID, err := middleware.GetSessionID(r)
	if err != nil {
		return nil, &ErrUnauthorized{}
	}
	carrier := wizard.NewCarrier(s.store, sessionID, s.logger)
	return wizard.New(carrier, s.engine, wizard.WithLogger(s.logger)), nil
}

// stepResponse writes a step result: 200 on success, 422 when the step was blocked.
func (s *Server) stepResponse(w http.ResponseWriter, res *wizard.Result) {
	if !res.OK() {
		s.jsonResponse(w, http.StatusUnprocessableEntity, res)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	wz, err := s.wizardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	var doc types.ResumeDocument
	if err := decodeJSON(w, r, &doc); err != nil {
		s.failure(w, r, err)
		return
	}
	res, err := wz.Create(r.Context(), doc)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.stepResponse(w, res)
}

func (s *Server) handleChooseTemplate(w http.ResponseWriter, r *http.Request) {
	wz, err := s.wizardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	var req templateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	res, err := wz.ChooseTemplate(r.Context(), req.TemplateID)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.stepResponse(w, res)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	wz, err := s.wizardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	var patch resume.Patch
	if err := decodeJSON(w, r, &patch); err != nil {
		s.failure(w, r, err)
		return
	}
	res, err := wz.Edit(r.Context(), patch)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.stepResponse(w, res)
}

// handleCustomize decodes the body over the default configuration, so omitted
// sections keep their defaults.
func (s *Server) handleCustomize(w http.ResponseWriter, r *http.Request) {
	wz, err := s.wizardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	cfg := types.DefaultStyleConfiguration()
	if err := decodeJSON(w, r, &cfg); err != nil {
		s.failure(w, r, err)
		return
	}
	res, err := wz.Customize(r.Context(), cfg)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.stepResponse(w, res)
}

// handlePreview always answers 200; a fallback style is reported in the result.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	wz, err := s.wizardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	res, err := wz.Preview(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

func (s *Server) handlePreviewHTML(w http.ResponseWriter, r *http.Request) {
	wz, err := s.wizardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	res, err := wz.Preview(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	html, err := rendering.RenderHTML(res.Document, *res.Style)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.textResponse(w, "text/html; charset=utf-8", html)
}

// handleFinalize validates and tears down the session, answering in the format given
// by the format query parameter. The format is checked before anything is cleared.
func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatHTML && format != FormatLaTeX {
		s.failure(w, r, &ErrValidation{Field: "format", Message: "must be one of json, html, latex"})
		return
	}

	wz, err := s.wizardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	res, err := wz.Finalize(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if !res.OK() {
		s.stepResponse(w, res)
		return
	}

	switch format {
	case FormatHTML:
		html, err := rendering.RenderHTML(res.Document, *res.Style)
		if err != nil {
			s.failure(w, r, err)
			return
		}
		s.textResponse(w, "text/html; charset=utf-8", html)
	case FormatLaTeX:
		tex, err := rendering.RenderLaTeX(res.Document, *res.Style, s.latexTemplate)
		if err != nil {
			s.failure(w, r, err)
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="resume.tex"`)
		s.textResponse(w, "application/x-tex; charset=utf-8", tex)
	default:
		s.jsonResponse(w, http.StatusOK, res)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	wz, err := s.wizardFor(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if err := wz.Reset(r.Context()); err != nil {
		s.failure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
