package web

import (
	"net/http"

	"github.com/vbonduro/gardenlog/internal/stats"
)

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := stats.Filter{
		CultureID: q.Get("cultureId"),
		From:      q.Get("from"),
		To:        q.Get("to"),
	}

	report, err := s.services.Statistics.Statistics(r.Context(), filter)
	if err != nil {
		handleError(w, r, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, report, s.logger)
}
