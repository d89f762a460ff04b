package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sceneforge/sceneport/pkg/buildinfo"
	"github.com/sceneforge/sceneport/pkg/download"
	"github.com/sceneforge/sceneport/pkg/errors"
	"github.com/sceneforge/sceneport/pkg/export"
	"github.com/sceneforge/sceneport/pkg/scene/sceneio"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/formats", s.handleFormats)
	r.Post("/api/export/{format}", s.handleExport)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// formatDescriptor is the wire shape of one supported format.
type formatDescriptor struct {
	Name        string `json:"name"`
	Extension   string `json:"extension"`
	ContentType string `json:"content_type"`
	Binary      bool   `json:"binary"`
}

func (s *Server) handleFormats(w http.ResponseWriter, _ *http.Request) {
	descriptors := make([]formatDescriptor, 0, len(export.AllFormats()))
	for _, f := range export.AllFormats() {
		descriptors = append(descriptors, formatDescriptor{
			Name:        string(f),
			Extension:   f.Extension(),
			ContentType: f.ContentType(),
			Binary:      f.Binary(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"formats": descriptors})
}

// handleExport serializes the posted scene and returns the payload as a
// file attachment. The filename query parameter sets the base name.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodySize())
	root, err := sceneio.ReadJSON(body)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode scene document"))
		return
	}

	var buf bytes.Buffer
	sink := &download.WriterSink{W: &buf}
	ctrl := export.NewController(sink,
		export.WithLogger(s.logger),
		export.WithWarnSize(s.export.WarnSize()))

	start := time.Now()
	if err := ctrl.Export(r.Context(), root, format, r.URL.Query().Get("filename")); err != nil {
		writeError(w, err)
		return
	}
	s.logger.Info("Export served",
		"format", string(format),
		"bytes", buf.Len(),
		"duration", time.Since(start).Round(time.Millisecond))

	delivered := sink.Delivered
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		w.Header().Set("X-Request-Id", reqID)
	}
	w.Header().Set("Content-Type", delivered.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", delivered.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// errorResponse is the wire shape of an API failure.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	var resp errorResponse
	resp.Error.Code = string(errors.GetCode(err))
	resp.Error.Message = errors.UserMessage(err)
	if resp.Error.Code == "" {
		resp.Error.Code = string(errors.ErrCodeInternal)
	}
	writeJSON(w, statusFor(errors.GetCode(err)), resp)
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidScene, errors.ErrCodeInvalidFilename:
		return http.StatusBadRequest
	case errors.ErrCodeExportBusy:
		return http.StatusConflict
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
