package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/engine"
	"github.com/jonathan/resume-builder/internal/pipeline"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// maxRequestBytes bounds render request bodies.
const maxRequestBytes = 2 << 20

// TemplatesResponse represents the response for /templates
type TemplatesResponse struct {
	Templates []*rendering.Template `json:"templates"`
}

// EngineStatusResponse represents the response for /engine/status
type EngineStatusResponse struct {
	Available bool         `json:"available"`
	Version   string       `json:"version,omitempty"`
	State     engine.State `json:"state"`
}

// ResumeListResponse represents the response for /resumes
type ResumeListResponse struct {
	Resumes []db.ResumeSummary `json:"resumes"`
	Count   int                `json:"count"`
}

// ArtifactListResponse represents the response for /resumes/{id}/artifacts
type ArtifactListResponse struct {
	ResumeID  string              `json:"resume_id"`
	Artifacts []db.RenderArtifact `json:"artifacts"`
	Count     int                 `json:"count"`
}

// handleTemplates lists the registered templates
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, TemplatesResponse{Templates: rendering.Templates()})
}

// handleEngineStatus reports the typesetting engine state
func (s *Server) handleEngineStatus(w http.ResponseWriter, _ *http.Request) {
	if s.engine == nil {
		s.jsonResponse(w, http.StatusOK, EngineStatusResponse{})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.engineStatus())
}

// handleEngineInitialize starts the engine, or retries after a failure with ?retry=true
func (s *Server) handleEngineInitialize(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "typst engine not configured")
		return
	}

	var err error
	if retry, _ := strconv.ParseBool(r.URL.Query().Get("retry")); retry {
		err = s.engine.Retry(r.Context())
	} else {
		err = s.engine.Initialize(r.Context())
	}
	if err != nil {
		s.logger.Warn("engine initialization failed", "err", err)
		s.jsonResponse(w, http.StatusServiceUnavailable, s.engineStatus())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.engineStatus())
}

func (s *Server) engineStatus() EngineStatusResponse {
	return EngineStatusResponse{
		Available: true,
		Version:   s.engine.Version(),
		State:     s.engine.State(),
	}
}

// decodeRenderRequest reads and validates a render request body. The format
// query parameter overrides the body's format.
func (s *Server) decodeRenderRequest(w http.ResponseWriter, r *http.Request) (pipeline.Request, error) {
	var body types.RenderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&body); err != nil {
		if errBodyTooLarge(err) {
			return pipeline.Request{}, &ErrValidation{Field: "body", Message: "request body too large"}
		}
		return pipeline.Request{}, &ErrValidation{Field: "body", Message: err.Error()}
	}
	if f := r.URL.Query().Get("format"); f != "" {
		body.Format = f
	}
	body.Format = strings.ToLower(strings.TrimSpace(body.Format))
	if err := body.Validate(); err != nil {
		return pipeline.Request{}, &ErrValidation{Field: "format", Message: fmt.Sprintf("unsupported format %q", body.Format)}
	}

	format, err := pipeline.ParseFormat(body.Format)
	if err != nil {
		return pipeline.Request{}, &ErrValidation{Field: "format", Message: err.Error()}
	}
	return pipeline.Request{Data: body.Data, Settings: body.Settings, Format: format}, nil
}

// handleRender renders a resume posted in the request body
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRenderRequest(w, r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	res, err := s.renderer.Export(r.Context(), req)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.writeResult(w, r, res)
}

// handleRenderStream renders a resume and streams progress via SSE
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRenderRequest(w, r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	req.OnProgress = func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			s.logger.Warn("error writing SSE event", "err", err)
		}
	}

	res, err := s.renderer.Export(r.Context(), req)
	if err != nil {
		if werr := sse.WriteError(req, err); werr != nil {
			s.logger.Warn("error writing SSE error", "err", werr)
		}
		return
	}
	if err := sse.WriteEvent("result", res); err != nil {
		s.logger.Warn("error writing SSE result", "err", err)
		return
	}
	if err := sse.WriteComplete(res); err != nil {
		s.logger.Warn("error writing SSE completion", "err", err)
	}
}

// handleListResumes lists persisted resumes
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failResponse(w, ErrStoreUnavailable)
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	resumes, err := s.store.ListResumes(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if resumes == nil {
		resumes = []db.ResumeSummary{}
	}
	s.jsonResponse(w, http.StatusOK, ResumeListResponse{Resumes: resumes, Count: len(resumes)})
}

// handleResumeRender renders a persisted resume. Settings come from the
// font, fontSize, locale and template query parameters.
func (s *Server) handleResumeRender(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failResponse(w, ErrStoreUnavailable)
		return
	}

	id, err := parseResumeID(r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	q := r.URL.Query()
	format, err := pipeline.ParseFormat(q.Get("format"))
	if err != nil {
		s.failResponse(w, &ErrValidation{Field: "format", Message: err.Error()})
		return
	}
	settings := types.Settings{
		Font:       q.Get("font"),
		Locale:     q.Get("locale"),
		TemplateID: q.Get("template"),
	}
	if v := q.Get("fontSize"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			s.failResponse(w, &ErrValidation{Field: "fontSize", Message: "must be an integer"})
			return
		}
		settings.FontSize = size
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if resume == nil {
		s.failResponse(w, &ErrNotFound{Resource: "resume", ID: id.String()})
		return
	}

	res, err := s.renderer.Export(r.Context(), pipeline.Request{
		ResumeID: &resume.ID,
		Data:     resume.Data,
		Settings: settings,
		Format:   format,
	})
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.writeResult(w, r, res)
}

// handleResumeArtifacts lists stored renders of a resume
func (s *Server) handleResumeArtifacts(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failResponse(w, ErrStoreUnavailable)
		return
	}

	id, err := parseResumeID(r)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	artifacts, err := s.store.ListRenderArtifacts(r.Context(), id, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if artifacts == nil {
		artifacts = []db.RenderArtifact{}
	}
	s.jsonResponse(w, http.StatusOK, ArtifactListResponse{
		ResumeID:  id.String(),
		Artifacts: artifacts,
		Count:     len(artifacts),
	})
}

// writeResult writes a render result. Clients asking for application/json get
// the result metadata and markup; everyone else gets the document itself.
func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, res *pipeline.Result) {
	w.Header().Set("X-Render-ID", res.ID.String())
	w.Header().Set("X-Render-Locale", res.Locale)

	if wantsJSON(r) {
		s.jsonResponse(w, http.StatusOK, res)
		return
	}

	disposition := "attachment"
	if res.Format == pipeline.FormatSVG {
		disposition = "inline"
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": res.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Output)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Output); err != nil {
		s.logger.Warn("error writing render output", "err", err)
	}
}

func wantsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == "application/json" {
			return true
		}
	}
	return false
}

func parseResumeID(r *http.Request) (uuid.UUID, error) {
	idStr := r.PathValue("id")
	if idStr == "" {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "resume ID is required"}
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid resume ID format"}
	}
	return id, nil
}

func parseLimit(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return db.DefaultListLimit, nil
	}
	limit, err := strconv.Atoi(v)
	if err != nil || limit <= 0 {
		return 0, &ErrValidation{Field: "limit", Message: "must be a positive integer"}
	}
	return limit, nil
}

// errBodyTooLarge reports whether err came from MaxBytesReader.
func errBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
