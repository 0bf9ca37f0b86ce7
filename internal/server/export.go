package server

import (
	"net/http"
)

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	selector := r.URL.Query().Get("session")
	if selector == "" {
		http.Error(w, "session required", http.StatusBadRequest)
		return
	}
	csv, err := s.svc.BuildSessionCSV(r.Context(), selector)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="registrations.csv"`)
	_, _ = w.Write([]byte(csv))
}
