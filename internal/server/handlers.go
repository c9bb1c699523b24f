package server

import (
	"net/http"
	"time"

	"github.com/jonathan/resume-wizard/internal/customize"
	"github.com/jonathan/resume-wizard/internal/resume"
	"github.com/jonathan/resume-wizard/internal/types"
)

// sessionResponse is returned when a wizard session starts.
type sessionResponse struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// validateResponse reports full validation and renderability of a document.
type validateResponse struct {
	Valid      bool              `json:"valid"`
	Renderable bool              `json:"renderable"`
	Errors     types.FieldErrors `json:"errors,omitempty"`
}

// resolveRequest is the body of POST /style/resolve. Config is decoded over the
// defaults; Document and TemplateID are optional.
type resolveRequest struct {
	Config     types.StyleConfiguration `json:"config"`
	TemplateID string                   `json:"templateId,omitempty"`
	Document   *types.ResumeDocument    `json:"document,omitempty"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": s.engine.Catalog().List(),
		"default":   s.engine.Catalog().Default().ID,
	})
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tmpl, ok := s.engine.Catalog().Get(id)
	if !ok {
		s.failure(w, r, &ErrNotFound{Resource: "template", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, tmpl)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID, token, expiresAt, err := s.sessions.NewSession()
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.logger.Info("session started", "session", sessionID)
	s.jsonResponse(w, http.StatusCreated, sessionResponse{SessionID: sessionID, Token: token, ExpiresAt: expiresAt})
}

// handleValidateResume runs full validation on a normalized copy of the body.
func (s *Server) handleValidateResume(w http.ResponseWriter, r *http.Request) {
	var doc types.ResumeDocument
	if err := decodeJSON(w, r, &doc); err != nil {
		s.failure(w, r, err)
		return
	}
	doc = resume.Normalize(doc)
	errs := resume.Validate(&doc)

	resp := validateResponse{
		Valid:      !errs.HasErrors(),
		Renderable: resume.IsRenderable(&doc),
		Errors:     errs,
	}
	status := http.StatusOK
	if !resp.Valid {
		status = http.StatusUnprocessableEntity
	}
	s.jsonResponse(w, status, resp)
}

func (s *Server) handleNormalizeResume(w http.ResponseWriter, r *http.Request) {
	var doc types.ResumeDocument
	if err := decodeJSON(w, r, &doc); err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume.Normalize(doc))
}

func (s *Server) handleResolveStyle(w http.ResponseWriter, r *http.Request) {
	req := resolveRequest{Config: types.DefaultStyleConfiguration()}
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	style, err := s.engine.Resolve(req.Document, req.Config, req.TemplateID)
	if err != nil {
		s.resolveFailure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, style)
}

// resolveFailure answers engine errors a client can correct with 422.
func (s *Server) resolveFailure(w http.ResponseWriter, r *http.Request, err error) {
	if rej, ok := err.(*customize.RejectionError); ok {
		s.jsonResponse(w, http.StatusUnprocessableEntity, map[string]any{"rejection": rej})
		return
	}
	if cfgErr, ok := err.(*customize.ConfigError); ok {
		s.jsonResponse(w, http.StatusUnprocessableEntity, map[string]any{"errors": cfgErr.Errors})
		return
	}
	s.failure(w, r, err)
}
