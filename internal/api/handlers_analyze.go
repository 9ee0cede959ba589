package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/docfreq/internal/parser"
	"github.com/dgallion1/docfreq/internal/pipeline"
	"github.com/dgallion1/docfreq/internal/render"
	"github.com/dgallion1/docfreq/internal/report"
)

// httpError carries the status an upload or analysis failure maps to.
type httpError struct {
	code int
	msg  string
}

func (e *httpError) Error() string { return e.msg }

// analyzeUpload reads the multipart upload and runs the pipeline over it.
func (s *Server) analyzeUpload(w http.ResponseWriter, r *http.Request) (*pipeline.Result, *httpError) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &httpError{http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)}
		}
		return nil, &httpError{http.StatusBadRequest, "invalid multipart form: " + err.Error()}
	}
	defer r.MultipartForm.RemoveAll()

	topN := 0
	if v := strings.TrimSpace(r.FormValue("top_n")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, &httpError{http.StatusBadRequest, "top_n must be an integer"}
		}
		topN = n
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, &httpError{http.StatusBadRequest, "file is required: " + err.Error()}
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		return nil, &httpError{http.StatusUnsupportedMediaType, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename))}
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, &httpError{http.StatusInternalServerError, "failed to read file"}
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, &httpError{http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)}
	}

	res, err := s.analyzer.Analyze(r.Context(), data, filename, topN)
	if err != nil {
		return nil, analysisError(err)
	}
	return res, nil
}

func analysisError(err error) *httpError {
	switch {
	case errors.Is(err, parser.ErrUnsupportedFormat):
		return &httpError{http.StatusUnsupportedMediaType, err.Error()}
	case errors.Is(err, parser.ErrMalformedDocument):
		return &httpError{http.StatusUnprocessableEntity, err.Error()}
	case errors.Is(err, render.ErrNoWords):
		return &httpError{http.StatusUnprocessableEntity, "document has no countable words"}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &httpError{http.StatusServiceUnavailable, "analysis canceled"}
	default:
		return &httpError{http.StatusInternalServerError, err.Error()}
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	res, herr := s.analyzeUpload(w, r)
	if herr != nil {
		jsonError(w, herr.msg, herr.code)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := report.WriteJSON(w, res, true, false); err != nil {
		s.log.Error("write analysis", "analysis_id", res.ID, "error", err)
	}
}

func (s *Server) handleWordCloud(w http.ResponseWriter, r *http.Request) {
	res, herr := s.analyzeUpload(w, r)
	if herr != nil {
		jsonError(w, herr.msg, herr.code)
		return
	}
	png, err := report.CloudPNG(res, s.cloudOptions())
	if err != nil {
		herr := analysisError(err)
		jsonError(w, herr.msg, herr.code)
		return
	}
	writePNG(w, res, png)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	res, herr := s.analyzeUpload(w, r)
	if herr != nil {
		jsonError(w, herr.msg, herr.code)
		return
	}
	png, err := report.ChartPNG(res, s.chartOptions())
	if err != nil {
		herr := analysisError(err)
		jsonError(w, herr.msg, herr.code)
		return
	}
	writePNG(w, res, png)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	res, herr := s.analyzeUpload(w, r)
	if herr != nil {
		jsonError(w, herr.msg, herr.code)
		return
	}
	full := r.FormValue("full") != "false"
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("X-Analysis-ID", res.ID)
	if err := report.WriteMarkdown(w, res, report.Options{FullTable: full}); err != nil {
		s.log.Error("write report", "analysis_id", res.ID, "error", err)
	}
}

func writePNG(w http.ResponseWriter, res *pipeline.Result, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("X-Analysis-ID", res.ID)
	w.Write(png)
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
