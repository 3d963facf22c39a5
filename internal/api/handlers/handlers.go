// Package handlers implements the HTTP endpoints of the coaching API.
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/sthama121-del/ai-financial-coach/internal/api/middleware"
	"github.com/sthama121-del/ai-financial-coach/internal/domain"
	"github.com/sthama121-del/ai-financial-coach/internal/ingest"
	"github.com/sthama121-del/ai-financial-coach/internal/report"
)

// maxUploadBytes caps an uploaded document. Bank exports are small; anything
// bigger is almost certainly not one.
const maxUploadBytes = 20 << 20

// AnalyzeHandler handles analysis endpoints. The server holds no state
// between requests: every upload produces one report and nothing is kept.
type AnalyzeHandler struct {
	orch *report.Orchestrator
	log  zerolog.Logger
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(orch *report.Orchestrator, log zerolog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{orch: orch, log: log}
}

// Analyze handles POST /api/analyze. The document arrives as multipart form
// field "file"; the format is detected from the uploaded filename.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Multipart field 'file' is required")
		return
	}
	defer file.Close()

	format, err := ingest.DetectFormat(header.Filename)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	payload, err := io.ReadAll(file)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	rep, err := h.orch.Analyze(ctx, payload, format)
	if err != nil {
		h.writeAnalysisError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, rep)
}

// Sample handles GET /api/sample: it analyzes the bundled example dataset so
// the API can be exercised without a real bank export.
func (h *AnalyzeHandler) Sample(w http.ResponseWriter, r *http.Request) {
	rep := h.orch.AnalyzeTransactions(r.Context(), domain.SampleTransactions())
	middleware.WriteJSON(w, http.StatusOK, rep)
}

// writeAnalysisError maps pipeline failures onto HTTP statuses: undecodable
// payloads are 400, content rejections 422. Nothing else can fail.
func (h *AnalyzeHandler) writeAnalysisError(w http.ResponseWriter, err error) {
	var perr *domain.ParseError
	if errors.As(err, &perr) {
		middleware.WriteError(w, http.StatusBadRequest, perr.Error())
		return
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		middleware.WriteError(w, http.StatusUnprocessableEntity, verr.Error())
		return
	}
	h.log.Error().Err(err).Msg("Unexpected analysis failure")
	middleware.WriteError(w, http.StatusInternalServerError, "Analysis failed")
}
