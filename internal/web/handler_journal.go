package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/gardenlog/internal/domain"
)

func (s *Server) handleListCultureNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.services.Journal.ListNotesForCulture(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, notes, s.logger)
}

type recordedHarvest struct {
	Harvest *domain.Harvest `json:"harvest"`
	Note    *domain.Note    `json:"note"`
}

func (s *Server) handleRecordHarvest(w http.ResponseWriter, r *http.Request) {
	var fields domain.HarvestFields
	if err := decodeJSON(w, r, &fields); err != nil {
		handleError(w, r, err, s.logger)
		return
	}

	harvest, note, err := s.services.Journal.RecordHarvest(r.Context(), chi.URLParam(r, "id"), &fields)
	if err != nil {
		handleError(w, r, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, recordedHarvest{Harvest: harvest, Note: note}, s.logger)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var fields domain.NoteFields
	if err := decodeJSON(w, r, &fields); err != nil {
		handleError(w, r, err, s.logger)
		return
	}

	note, err := s.services.Journal.CreateNote(r.Context(), &fields)
	if err != nil {
		handleError(w, r, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, note, s.logger)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var fields domain.NoteFields
	if err := decodeJSON(w, r, &fields); err != nil {
		handleError(w, r, err, s.logger)
		return
	}

	if err := s.services.Journal.UpdateNote(r.Context(), chi.URLParam(r, "id"), &fields); err != nil {
		handleError(w, r, err, s.logger)
		return
	}
	writeSuccess(w, s.logger)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Journal.DeleteNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err, s.logger)
		return
	}
	writeSuccess(w, s.logger)
}

func (s *Server) handleListHarvests(w http.ResponseWriter, r *http.Request) {
	harvests, err := s.services.Journal.ListHarvests(r.Context())
	if err != nil {
		handleError(w, r, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, harvests, s.logger)
}

func (s *Server) handleCreateHarvest(w http.ResponseWriter, r *http.Request) {
	var fields domain.HarvestFields
	if err := decodeJSON(w, r, &fields); err != nil {
		handleError(w, r, err, s.logger)
		return
	}

	harvest, err := s.services.Journal.CreateHarvest(r.Context(), &fields)
	if err != nil {
		handleError(w, r, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, harvest, s.logger)
}

func (s *Server) handleUpdateHarvest(w http.ResponseWriter, r *http.Request) {
	var fields domain.HarvestFields
	if err := decodeJSON(w, r, &fields); err != nil {
		handleError(w, r, err, s.logger)
		return
	}

	if err := s.services.Journal.UpdateHarvest(r.Context(), chi.URLParam(r, "id"), &fields); err != nil {
		handleError(w, r, err, s.logger)
		return
	}
	writeSuccess(w, s.logger)
}

func (s *Server) handleDeleteHarvest(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Journal.DeleteHarvest(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err, s.logger)
		return
	}
	writeSuccess(w, s.logger)
}
