package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vbonduro/gardenlog/internal/domain"
	"github.com/vbonduro/gardenlog/internal/id"
	"github.com/vbonduro/gardenlog/internal/store"
	"github.com/vbonduro/gardenlog/internal/validation"
)

// repository is the subset of store.Collection that the services require.
type repository[T any] interface {
	Insert(ctx context.Context, id string, doc *T) error
	Find(ctx context.Context, filter store.Filter) ([]*T, error)
	Get(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, filter store.Filter, patch map[string]any) (int, error)
	RemoveMany(ctx context.Context, filter store.Filter) (int, error)
}

type CultureService struct {
	cultures repository[domain.Culture]
	notes    repository[domain.Note]
	harvests repository[domain.Harvest]
	validate *validation.Validator
	logger   *slog.Logger
	now      func() time.Time
}

func NewCultureService(
	cultures repository[domain.Culture],
	notes repository[domain.Note],
	harvests repository[domain.Harvest],
	validate *validation.Validator,
	logger *slog.Logger,
) *CultureService {
	return &CultureService{
		cultures: cultures,
		notes:    notes,
		harvests: harvests,
		validate: validate,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *CultureService) ListCultures(ctx context.Context) ([]*domain.Culture, error) {
	return s.cultures.Find(ctx, nil)
}

// GetCulture returns store.ErrNotFound when no culture has the id.
func (s *CultureService) GetCulture(ctx context.Context, cultureID string) (*domain.Culture, error) {
	return s.cultures.Get(ctx, cultureID)
}

func (s *CultureService) CreateCulture(ctx context.Context, fields *domain.CultureFields) (*domain.Culture, error) {
	if err := s.validate.Struct(fields); err != nil {
		return nil, err
	}
	var name string
	if fields.Name != nil {
		name = strings.TrimSpace(*fields.Name)
	}
	if err := s.validate.Var("name", name, "required"); err != nil {
		return nil, err
	}

	cultureID, err := id.Generate(id.CulturePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate culture id: %w", err)
	}

	culture := &domain.Culture{ID: cultureID, CreatedAt: s.now().UTC()}
	fields.Apply(culture)
	culture.Name = name

	if err := s.cultures.Insert(ctx, culture.ID, culture); err != nil {
		return nil, err
	}
	s.logger.Debug("culture created", "culture_id", culture.ID, "name", culture.Name)
	return culture, nil
}

// UpdateCulture merges the supplied fields into the stored culture. Updating
// a culture that does not exist succeeds without effect. Notes and harvests
// keep the culture name they were written with.
func (s *CultureService) UpdateCulture(ctx context.Context, cultureID string, fields *domain.CultureFields) error {
	if err := s.validate.Struct(fields); err != nil {
		return err
	}
	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		if err := s.validate.Var("name", name, "required"); err != nil {
			return err
		}
		fields.Name = &name
	}

	n, err := s.cultures.Update(ctx, store.ByID(cultureID), fields.Patch())
	if err != nil {
		return fmt.Errorf("failed to update culture: %w", err)
	}
	s.logger.Debug("culture updated", "culture_id", cultureID, "matched", n)
	return nil
}

// DeleteCulture removes the culture, then its notes, then its harvests. Each
// step completes before the next starts and the first failure is returned.
// Repeating the call after a failure finishes the remaining steps.
func (s *CultureService) DeleteCulture(ctx context.Context, cultureID string) error {
	s.logger.Info("delete culture started", "culture_id", cultureID)

	n, err := s.cultures.RemoveMany(ctx, store.ByID(cultureID))
	if err != nil {
		return fmt.Errorf("failed to delete culture: %w", err)
	}
	s.logger.Debug("culture removed", "culture_id", cultureID, "removed", n)

	notes, err := s.notes.RemoveMany(ctx, store.ByCulture(cultureID))
	if err != nil {
		s.logger.Error("cascade to notes failed", "culture_id", cultureID, "error", err)
		return fmt.Errorf("failed to delete notes for culture %s: %w", cultureID, err)
	}
	s.logger.Debug("culture notes removed", "culture_id", cultureID, "removed", notes)

	harvests, err := s.harvests.RemoveMany(ctx, store.ByCulture(cultureID))
	if err != nil {
		s.logger.Error("cascade to harvests failed", "culture_id", cultureID, "error", err)
		return fmt.Errorf("failed to delete harvests for culture %s: %w", cultureID, err)
	}

	s.logger.Info("delete culture complete", "culture_id", cultureID, "notes_removed", notes, "harvests_removed", harvests)
	return nil
}
