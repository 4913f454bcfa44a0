package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/gardenlog/internal/domain"
	"github.com/vbonduro/gardenlog/internal/stats"
	"github.com/vbonduro/gardenlog/internal/validation"
)

func TestStatisticsServiceAggregates(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	a, err := svc.cultures.CreateCulture(ctx, &domain.CultureFields{Name: domain.String("A"), PlantCount: domain.Qty(4)})
	require.NoError(t, err)
	b, err := svc.cultures.CreateCulture(ctx, &domain.CultureFields{Name: domain.String("B"), PlantCount: domain.Qty(2)})
	require.NoError(t, err)

	record := func(c *domain.Culture, n int, date string) {
		_, _, err := svc.journal.RecordHarvest(ctx, c.ID, &domain.HarvestFields{Count: domain.Qty(n), Date: domain.String(date)})
		require.NoError(t, err)
	}
	record(a, 5, "2024-07-01")
	record(a, 3, "2024-07-15")
	record(b, 10, "2024-07-01")

	report, err := svc.stats.Statistics(ctx, stats.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 18, report.TotalHarvest)
	assert.Equal(t, 9, report.AveragePerCulture)
	require.Len(t, report.ByCulture, 2)
	assert.Equal(t, stats.CultureTotal{Name: "A", Harvest: 8, PlantCount: 4}, report.ByCulture[0])
	assert.Equal(t, stats.CultureTotal{Name: "B", Harvest: 10, PlantCount: 2}, report.ByCulture[1])

	report, err = svc.stats.Statistics(ctx, stats.Filter{From: "2024-07-01", To: "2024-07-10"})
	require.NoError(t, err)
	assert.Equal(t, 15, report.TotalHarvest)

	report, err = svc.stats.Statistics(ctx, stats.Filter{CultureID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, 10, report.TotalHarvest)
	assert.Len(t, report.Harvests, 1)
}

func TestStatisticsServiceRejectsBadRange(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.stats.Statistics(context.Background(), stats.Filter{From: "2024-08-01", To: "2024-07-01"})
	assert.True(t, validation.IsValidationError(err))
}
