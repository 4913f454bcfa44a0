package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/gardenlog/internal/archive"
	"github.com/vbonduro/gardenlog/internal/stats"
)

func TestLoadConfigFlagOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Cleanup(func() { dbPath, backend = "", "" })

	dbPath = "/tmp/garden.db"
	cfg := loadConfig()
	assert.Equal(t, "/tmp/garden.db", cfg.DBPath)

	backend, dbPath = "badger", "/tmp/badger"
	cfg = loadConfig()
	assert.Equal(t, "badger", cfg.StoreBackend)
	assert.Equal(t, "/tmp/badger", cfg.BadgerDir)
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, &stats.Report{
		TotalHarvest:      18,
		HarvestCount:      3,
		AveragePerCulture: 9,
		ByCulture: []stats.CultureTotal{
			{Name: "Tomato", Harvest: 8, PlantCount: 4},
			{Name: "Bean", Harvest: 10, PlantCount: 2},
		},
	}))

	out := buf.String()
	assert.Contains(t, out, "Total harvested:      18")
	assert.Contains(t, out, "Average per culture:  9")
	assert.Contains(t, out, "Tomato")
	assert.Contains(t, out, "Bean")
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	printResults(&buf, []archive.Result{
		{Collection: "cultures", Imported: 2, Skipped: 1},
		{Collection: "notes", Missing: true},
	}, false)

	assert.Contains(t, buf.String(), "cultures   2 imported, 1 skipped")
	assert.Contains(t, buf.String(), "notes      no data file")
}
