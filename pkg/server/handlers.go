package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/treedisplay/pkg/center"
	"github.com/matzehuels/treedisplay/pkg/display"
	"github.com/matzehuels/treedisplay/pkg/displaytree"
	apperrors "github.com/matzehuels/treedisplay/pkg/errors"
	"github.com/matzehuels/treedisplay/pkg/pipeline"
)

// MountRequest is the body of POST /api/diagrams.
type MountRequest struct {
	Pos  display.DocumentPosition `json:"pos"`
	Tree displaytree.DisplayTree  `json:"tree"`
}

// MountResponse is returned for a newly mounted diagram.
type MountResponse struct {
	ID    string `json:"id"`
	Nodes int    `json:"nodes"`
}

// MeasureRequest reports the rendered size of a diagram's container.
type MeasureRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// StatusResponse describes the centering state of a diagram.
type StatusResponse struct {
	ID     string         `json:"id"`
	State  center.State   `json:"state"`
	Offset *center.Offset `json:"offset"`
}

type errorResponse struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code"`
}

func (s *Server) handleMount(w http.ResponseWriter, r *http.Request) {
	var req MountRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	d := display.Mount(req.Tree, req.Pos, display.WithLogger(s.logger))
	datum, err := d.Datum(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Mount(d)
	s.logger.Debug("mounted diagram", "id", d.ID(), "nodes", datum.Count(), "uri", req.Pos.URI)

	writeJSON(w, http.StatusCreated, MountResponse{ID: d.ID(), Nodes: datum.Count()})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	d, err := s.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status(d))
}

func (s *Server) handleUnmount(w http.ResponseWriter, r *http.Request) {
	if err := s.Unmount(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDatum(w http.ResponseWriter, r *http.Request) {
	d, err := s.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	datum, err := d.Datum(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, datum)
}

func (s *Server) handleMeasure(w http.ResponseWriter, r *http.Request) {
	d, err := s.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req MeasureRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := apperrors.ValidateContainerSize(req.Width, req.Height); err != nil {
		s.writeError(w, r, err)
		return
	}

	d.Measure(center.Box{Width: req.Width, Height: req.Height})
	writeJSON(w, http.StatusOK, status(d))
}

var contentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	d, err := s.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := chi.URLParam(r, "format")

	result, err := s.runner.Execute(r.Context(), d, pipeline.Options{
		Formats: []string{format},
		Refresh: r.URL.Query().Get("refresh") == "1",
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "no-store")
	if result.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.Write(result.Artifacts[format])
}

func status(d *display.Diagram) StatusResponse {
	resp := StatusResponse{ID: d.ID(), State: d.State()}
	if off, ok := d.Offset(); ok {
		resp.Offset = &off
	}
	return resp
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: apperrors.UserMessage(err), Code: code})
}
