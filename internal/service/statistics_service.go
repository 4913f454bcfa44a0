package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/gardenlog/internal/domain"
	"github.com/vbonduro/gardenlog/internal/stats"
	"github.com/vbonduro/gardenlog/internal/validation"
)

type StatisticsService struct {
	cultures repository[domain.Culture]
	harvests repository[domain.Harvest]
	logger   *slog.Logger
}

func NewStatisticsService(
	cultures repository[domain.Culture],
	harvests repository[domain.Harvest],
	logger *slog.Logger,
) *StatisticsService {
	return &StatisticsService{cultures: cultures, harvests: harvests, logger: logger}
}

// Statistics loads all harvests and cultures and aggregates them under f. An
// invalid date bound is reported as a *validation.Error.
func (s *StatisticsService) Statistics(ctx context.Context, f stats.Filter) (*stats.Report, error) {
	if err := f.Validate(); err != nil {
		return nil, &validation.Error{
			Message: "invalid statistics filter",
			Fields:  map[string]string{"date": err.Error()},
		}
	}

	harvests, err := s.harvests.Find(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load harvests: %w", err)
	}
	cultures, err := s.cultures.Find(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load cultures: %w", err)
	}

	report := stats.Compute(harvests, cultures, f)
	s.logger.Debug("statistics computed",
		"culture_id", f.CultureID,
		"from", f.From,
		"to", f.To,
		"harvests", report.HarvestCount,
		"total", report.TotalHarvest,
	)
	return report, nil
}
