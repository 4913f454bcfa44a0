package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vbonduro/gardenlog/internal/domain"
	"github.com/vbonduro/gardenlog/internal/id"
	"github.com/vbonduro/gardenlog/internal/store"
	"github.com/vbonduro/gardenlog/internal/validation"
)

// HarvestNoteTitle is the title given to the diary entry written alongside a
// recorded harvest.
const HarvestNoteTitle = "Harvest"

// JournalService manages the notes and harvests that hang off a culture.
// Notes and harvests are independent documents: deleting one never touches
// the other, even when a note was derived from a harvest.
type JournalService struct {
	cultures repository[domain.Culture]
	notes    repository[domain.Note]
	harvests repository[domain.Harvest]
	validate *validation.Validator
	logger   *slog.Logger
	now      func() time.Time
}

func NewJournalService(
	cultures repository[domain.Culture],
	notes repository[domain.Note],
	harvests repository[domain.Harvest],
	validate *validation.Validator,
	logger *slog.Logger,
) *JournalService {
	return &JournalService{
		cultures: cultures,
		notes:    notes,
		harvests: harvests,
		validate: validate,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *JournalService) ListNotesForCulture(ctx context.Context, cultureID string) ([]*domain.Note, error) {
	return s.notes.Find(ctx, store.ByCulture(cultureID))
}

// CreateNote writes a note. Type defaults to history, and the culture name
// is copied from the live culture when the caller did not supply one.
func (s *JournalService) CreateNote(ctx context.Context, fields *domain.NoteFields) (*domain.Note, error) {
	if err := s.validate.Struct(fields); err != nil {
		return nil, err
	}
	cultureID, err := s.requireCultureID(fields.CultureID)
	if err != nil {
		return nil, err
	}

	noteID, err := id.Generate(id.NotePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate note id: %w", err)
	}

	note := &domain.Note{ID: noteID, Type: domain.NoteHistory, CreatedAt: s.now().UTC()}
	fields.Apply(note)
	note.CultureID = cultureID
	if note.Type == "" {
		note.Type = domain.NoteHistory
	}
	if note.CultureName == "" {
		note.CultureName = s.cultureName(ctx, cultureID)
	}

	if err := s.notes.Insert(ctx, note.ID, note); err != nil {
		return nil, err
	}
	s.logger.Debug("note created", "note_id", note.ID, "culture_id", cultureID, "type", note.Type)
	return note, nil
}

// UpdateNote merges the supplied fields. A missing note is not an error.
func (s *JournalService) UpdateNote(ctx context.Context, noteID string, fields *domain.NoteFields) error {
	if err := s.validate.Struct(fields); err != nil {
		return err
	}
	n, err := s.notes.Update(ctx, store.ByID(noteID), fields.Patch())
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	s.logger.Debug("note updated", "note_id", noteID, "matched", n)
	return nil
}

func (s *JournalService) DeleteNote(ctx context.Context, noteID string) error {
	n, err := s.notes.RemoveMany(ctx, store.ByID(noteID))
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	s.logger.Debug("note deleted", "note_id", noteID, "removed", n)
	return nil
}

func (s *JournalService) ListHarvests(ctx context.Context) ([]*domain.Harvest, error) {
	return s.harvests.Find(ctx, nil)
}

// CreateHarvest writes a bare harvest record. The date defaults to today and
// the culture name is filled in as for notes.
func (s *JournalService) CreateHarvest(ctx context.Context, fields *domain.HarvestFields) (*domain.Harvest, error) {
	if err := s.validate.Struct(fields); err != nil {
		return nil, err
	}
	cultureID, err := s.requireCultureID(fields.CultureID)
	if err != nil {
		return nil, err
	}
	return s.insertHarvest(ctx, cultureID, fields)
}

// RecordHarvest writes a harvest and the harvest note that goes with it. If
// the note cannot be written the harvest is removed again.
func (s *JournalService) RecordHarvest(ctx context.Context, cultureID string, fields *domain.HarvestFields) (*domain.Harvest, *domain.Note, error) {
	if err := s.validate.Struct(fields); err != nil {
		return nil, nil, err
	}
	cultureID, err := s.requireCultureID(&cultureID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("record harvest started", "culture_id", cultureID)

	harvest, err := s.insertHarvest(ctx, cultureID, fields)
	if err != nil {
		return nil, nil, err
	}

	noteID, err := id.Generate(id.NotePrefix)
	if err != nil {
		s.rollbackHarvest(ctx, harvest)
		return nil, nil, fmt.Errorf("failed to generate note id: %w", err)
	}
	note := &domain.Note{
		ID:          noteID,
		CultureID:   harvest.CultureID,
		CultureName: harvest.CultureName,
		Type:        domain.NoteHarvest,
		Title:       HarvestNoteTitle,
		Content:     fmt.Sprintf("Harvested: %d pcs.", harvest.Count.Int()),
		Count:       harvest.Count,
		Notes:       harvest.Notes,
		Date:        harvest.Date,
		CreatedAt:   harvest.CreatedAt,
	}
	if err := s.notes.Insert(ctx, note.ID, note); err != nil {
		s.rollbackHarvest(ctx, harvest)
		return nil, nil, fmt.Errorf("failed to write harvest note: %w", err)
	}

	s.logger.Info("record harvest complete", "culture_id", cultureID, "harvest_id", harvest.ID, "note_id", note.ID, "count", harvest.Count.Int())
	return harvest, note, nil
}

// UpdateHarvest merges the supplied fields. A missing harvest is not an error.
func (s *JournalService) UpdateHarvest(ctx context.Context, harvestID string, fields *domain.HarvestFields) error {
	if err := s.validate.Struct(fields); err != nil {
		return err
	}
	n, err := s.harvests.Update(ctx, store.ByID(harvestID), fields.Patch())
	if err != nil {
		return fmt.Errorf("failed to update harvest: %w", err)
	}
	s.logger.Debug("harvest updated", "harvest_id", harvestID, "matched", n)
	return nil
}

func (s *JournalService) DeleteHarvest(ctx context.Context, harvestID string) error {
	n, err := s.harvests.RemoveMany(ctx, store.ByID(harvestID))
	if err != nil {
		return fmt.Errorf("failed to delete harvest: %w", err)
	}
	s.logger.Debug("harvest deleted", "harvest_id", harvestID, "removed", n)
	return nil
}

func (s *JournalService) insertHarvest(ctx context.Context, cultureID string, fields *domain.HarvestFields) (*domain.Harvest, error) {
	harvestID, err := id.Generate(id.HarvestPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate harvest id: %w", err)
	}

	now := s.now()
	harvest := &domain.Harvest{ID: harvestID, CreatedAt: now.UTC()}
	fields.Apply(harvest)
	harvest.CultureID = cultureID
	if harvest.Date == "" {
		harvest.Date = now.Format(domain.DateLayout)
	}
	if harvest.CultureName == "" {
		harvest.CultureName = s.cultureName(ctx, cultureID)
	}

	if err := s.harvests.Insert(ctx, harvest.ID, harvest); err != nil {
		return nil, err
	}
	s.logger.Debug("harvest created", "harvest_id", harvest.ID, "culture_id", cultureID, "count", harvest.Count.Int())
	return harvest, nil
}

func (s *JournalService) rollbackHarvest(ctx context.Context, harvest *domain.Harvest) {
	if _, err := s.harvests.RemoveMany(ctx, store.ByID(harvest.ID)); err != nil {
		s.logger.Error("failed to roll back harvest", "harvest_id", harvest.ID, "error", err)
	}
}

func (s *JournalService) requireCultureID(cultureID *string) (string, error) {
	var v string
	if cultureID != nil {
		v = strings.TrimSpace(*cultureID)
	}
	if err := s.validate.Var("cultureId", v, "required"); err != nil {
		return "", err
	}
	return v, nil
}

// cultureName looks up the current name of a culture. Orphaned references
// are allowed, so a missing culture yields an empty name.
func (s *JournalService) cultureName(ctx context.Context, cultureID string) string {
	c, err := s.cultures.Get(ctx, cultureID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("culture lookup failed", "culture_id", cultureID, "error", err)
		}
		return ""
	}
	return c.Name
}
