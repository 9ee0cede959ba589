package api

import (
	"net/http"

	"github.com/dgallion1/docfreq/internal/report"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, http.StatusOK, report.NewPage(s.analyzer.DefaultTopN()))
}

// handleUploadPage analyzes the form upload and renders the HTML report
// below the form: bar chart, word cloud and full frequency table.
func (s *Server) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	page := report.NewPage(s.analyzer.DefaultTopN())

	res, herr := s.analyzeUpload(w, r)
	if herr != nil {
		page.Error = herr.msg
		s.writePage(w, herr.code, page)
		return
	}
	page = report.NewPage(res.TopN)

	imgs, err := report.RenderImages(res, s.cloudOptions(), s.chartOptions())
	if err != nil {
		s.log.Error("render images", "analysis_id", res.ID, "error", err)
		page.Error = "failed to render images"
		s.writePage(w, http.StatusInternalServerError, page)
		return
	}
	frag, err := report.HTMLFragment(res, imgs.DataURIs(true))
	if err != nil {
		s.log.Error("render report", "analysis_id", res.ID, "error", err)
		page.Error = "failed to render report"
		s.writePage(w, http.StatusInternalServerError, page)
		return
	}
	page.Report = frag
	s.writePage(w, http.StatusOK, page)
}

func (s *Server) writePage(w http.ResponseWriter, code int, page report.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := report.WritePage(w, page); err != nil {
		s.log.Error("write page", "error", err)
	}
}
