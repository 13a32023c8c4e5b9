package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-composer/internal/export"
	"github.com/jonathan/resume-composer/internal/pagination"
	"github.com/jonathan/resume-composer/internal/pipeline"
	"github.com/jonathan/resume-composer/internal/schemas"
	"github.com/jonathan/resume-composer/internal/templates"
	"github.com/jonathan/resume-composer/internal/types"
)

// maxBodyBytes caps the size of a posted resume.
const maxBodyBytes = 1 << 20

// ComposeResponse is the body returned by POST /compose
type ComposeResponse struct {
	TemplateID string            `json:"templateId"`
	PageCount  int               `json:"pageCount"`
	Pages      []pagination.Page `json:"pages"`
	Warnings   []string          `json:"warnings"`
	Violations *types.Violations `json:"violations"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"exportsInFlight": s.exports.InFlight(),
	})
}

// handleTemplates lists the template gallery, optionally filtered by category.
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	list := s.resolver.ByCategory(r.URL.Query().Get("category"))
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": list,
		"count":     len(list),
		"default":   s.settings.Template,
	})
}

// handleCompose lays out the posted resume and returns its pages.
func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	c, err := s.compose(w, r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ComposeResponse{
		TemplateID: c.TemplateID,
		PageCount:  len(c.Pages),
		Pages:      c.Pages,
		Warnings:   c.WarningMessages(),
		Violations: c.Violations(s.settings.MaxPages, nil),
	})
}

// handlePreview renders the posted resume as the HTML preview surface.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	c, err := s.compose(w, r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	html, err := s.preview.RenderString(c.Layout, c.Pages)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Page-Count", strconv.Itoa(len(c.Pages)))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, html); err != nil {
		log.Printf("[preview] Error writing response: %v", err)
	}
}

// handleExport renders the posted resume as a PDF download. The optional
// key query parameter identifies the resume: a newer export with the same
// key cancels an older one still running.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	modeName := q.Get("mode")
	if modeName == "" {
		modeName = s.settings.Mode
	}
	mode, err := export.ParseMode(modeName)
	if err != nil {
		s.failResponse(w, &ErrValidation{Field: "mode", Message: err.Error()})
		return
	}

	c, err := s.compose(w, r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	ctx := r.Context()
	if s.settings.ExportTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settings.ExportTimeout)
		defer cancel()
	}

	doc, err := s.exports.Export(ctx, q.Get("key"), c, mode)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.Header().Set("X-Page-Count", strconv.Itoa(doc.PageCount))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		log.Printf("[export] Error writing response: %v", err)
	}
}

// compose reads the resume body and the layout query parameters and lays
// the resume out.
func (s *Server) compose(w http.ResponseWriter, r *http.Request) (*pipeline.Composition, error) {
	opts, templateID, err := s.composeOptions(r)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	resume, err := schemas.ParseResume(data)
	if err != nil {
		return nil, err
	}

	c := pipeline.Compose(*resume, templateID, opts)
	for _, warning := range c.WarningMessages() {
		log.Printf("[compose] Warning: %s", warning)
	}
	return c, nil
}

func (s *Server) composeOptions(r *http.Request) (*pipeline.Options, string, error) {
	q := r.URL.Query()

	templateID := q.Get("template")
	if templateID == "" {
		templateID = s.settings.Template
	}

	sizeName := q.Get("page_size")
	if sizeName == "" {
		sizeName = s.settings.PageSize
	}
	size, err := templates.PageSizeByName(sizeName)
	if err != nil {
		return nil, "", err
	}

	atsSafe := s.settings.ATSSafe
	if v := q.Get("ats_safe"); v != "" {
		atsSafe, err = strconv.ParseBool(v)
		if err != nil {
			return nil, "", &ErrValidation{Field: "ats_safe", Message: "must be a boolean"}
		}
	}

	return &pipeline.Options{
		Resolver: s.resolver,
		PageSize: size,
		ATSSafe:  atsSafe,
	}, templateID, nil
}
