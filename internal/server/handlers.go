package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-optimizer/internal/pipeline"
)

// requestValidator validates request payload structs.
var requestValidator = validator.New()

// OptimizeRequest is the request body for POST /optimize.
type OptimizeRequest struct {
	Document         json.RawMessage `json:"document" validate:"required"`
	JobContext       string          `json:"job_context" validate:"required"`
	MaxUnitsPerEntry int             `json:"max_units_per_entry,omitempty" validate:"gte=0"`
}

// ScoreRequest is the request body for POST /score.
type ScoreRequest struct {
	Document   json.RawMessage `json:"document" validate:"required"`
	JobContext string          `json:"job_context"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// handleOptimize runs the full optimization pipeline on one document.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := requestValidator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := pipeline.ParseDocument(req.Document)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.pipeline.Run(r.Context(), pipeline.Options{
		Document:         doc,
		JobContext:       req.JobContext,
		MaxUnitsPerEntry: req.MaxUnitsPerEntry,
	})
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleScore scores a document without fitting it.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := requestValidator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := pipeline.ParseDocument(req.Document)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.pipeline.Score(r.Context(), doc, req.JobContext)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writePipelineError maps pipeline errors to HTTP statuses.
func writePipelineError(w http.ResponseWriter, err error) {
	var invalidDoc *pipeline.InvalidDocumentError
	if errors.As(err, &invalidDoc) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}
