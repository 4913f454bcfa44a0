package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/gardenlog/internal/domain"
)

func (s *Server) handleListCultures(w http.ResponseWriter, r *http.Request) {
	cultures, err := s.services.Cultures.ListCultures(r.Context())
	if err != nil {
		handleError(w, r, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, cultures, s.logger)
}

func (s *Server) handleCreateCulture(w http.ResponseWriter, r *http.Request) {
	var fields domain.CultureFields
	if err := decodeJSON(w, r, &fields); err != nil {
		handleError(w, r, err, s.logger)
		return
	}

	culture, err := s.services.Cultures.CreateCulture(r.Context(), &fields)
	if err != nil {
		handleError(w, r, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, culture, s.logger)
}

func (s *Server) handleGetCulture(w http.ResponseWriter, r *http.Request) {
	culture, err := s.services.Cultures.GetCulture(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, culture, s.logger)
}

// handleUpdateCulture accepts either a partial document or a whole culture
// sent back by the client. Identity fields in the body are ignored.
func (s *Server) handleUpdateCulture(w http.ResponseWriter, r *http.Request) {
	var fields domain.CultureFields
	if err := decodeJSON(w, r, &fields); err != nil {
		handleError(w, r, err, s.logger)
		return
	}

	if err := s.services.Cultures.UpdateCulture(r.Context(), chi.URLParam(r, "id"), &fields); err != nil {
		handleError(w, r, err, s.logger)
		return
	}
	writeSuccess(w, s.logger)
}

func (s *Server) handleDeleteCulture(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Cultures.DeleteCulture(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err, s.logger)
		return
	}
	writeSuccess(w, s.logger)
}
