package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/leapstack-labs/st4conv/internal/convert"
	"github.com/leapstack-labs/st4conv/internal/export"
	"github.com/leapstack-labs/st4conv/pkg/core"
	"github.com/leapstack-labs/st4conv/pkg/st4"
)

// Response headers set on conversions.
const (
	HeaderDiagnostics  = "X-St4-Diagnostics"
	HeaderConversionID = "X-Conversion-ID"
)

type errorResponse struct {
	Error       string           `json:"error"`
	Diagnostics []st4.Diagnostic `json:"diagnostics,omitempty"`
}

type inspectResponse struct {
	FileName    string            `json:"fileName"`
	Title       string            `json:"projectTitle"`
	Lines       int               `json:"lines"`
	Stats       core.Stats        `json:"stats"`
	Floors      []core.FloorStats `json:"floors"`
	Diagnostics []st4.Diagnostic  `json:"diagnostics"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	format := export.FormatJSON
	if v := r.URL.Query().Get("format"); v != "" {
		f, err := export.ParseFormat(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err, nil)
			return
		}
		format = f
	}

	res, ok := s.convert(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, res.Project, format, s.cfg.Export); err != nil {
		s.writeError(w, http.StatusInternalServerError, err, nil)
		return
	}

	if s.cfg.Store != nil {
		id, err := s.cfg.Store.SaveProject(r.Context(), res.Project, len(res.Diagnostics))
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err, nil)
			return
		}
		w.Header().Set(HeaderConversionID, id)
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set(HeaderDiagnostics, strconv.Itoa(len(res.Diagnostics)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	res, ok := s.convert(w, r)
	if !ok {
		return
	}

	diags := res.Diagnostics
	if diags == nil {
		diags = []st4.Diagnostic{}
	}
	s.writeJSON(w, http.StatusOK, inspectResponse{
		FileName:    res.Project.FileName,
		Title:       res.Project.Title,
		Lines:       res.Lines,
		Stats:       res.Project.Stats(),
		Floors:      res.Project.FloorStats(),
		Diagnostics: diags,
	})
}

// convert runs the pipeline on the request body and writes the error
// response itself when it fails.
func (s *Server) convert(w http.ResponseWriter, r *http.Request) (*convert.Result, bool) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload.st4"
	}
	encoding := s.cfg.Encoding
	if v := r.URL.Query().Get("encoding"); v != "" {
		encoding = v
	}

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	res, err := convert.Convert(r.Context(), body, name, convert.Options{
		Encoding: encoding,
		Logger:   s.logger,
	})

	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return res, true
	case errors.As(err, &tooLarge):
		s.writeError(w, http.StatusRequestEntityTooLarge, err, nil)
	case errors.Is(err, convert.ErrEmptyModel):
		s.writeError(w, http.StatusUnprocessableEntity, err, res.Diagnostics)
	default:
		s.writeError(w, http.StatusBadRequest, err, nil)
	}
	return nil, false
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error, diags []st4.Diagnostic) {
	s.logger.Warn("request failed", "status", status, "error", err)
	s.writeJSON(w, status, errorResponse{Error: err.Error(), Diagnostics: diags})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
