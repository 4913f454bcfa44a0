package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/gardenlog/internal/domain"
	"github.com/vbonduro/gardenlog/internal/validation"
)

func createCulture(t *testing.T, svc *testServices, name string) *domain.Culture {
	t.Helper()
	c, err := svc.cultures.CreateCulture(context.Background(), &domain.CultureFields{Name: domain.String(name)})
	require.NoError(t, err)
	return c
}

func TestJournalServiceCreateNoteDefaults(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	c := createCulture(t, svc, "Pepper")

	n, err := svc.journal.CreateNote(ctx, &domain.NoteFields{
		CultureID: &c.ID,
		Title:     domain.String("Day 1"),
		Content:   domain.String("Planted out"),
		Date:      domain.String("2024-05-01"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(n.ID, "note-"))
	assert.Equal(t, domain.NoteHistory, n.Type)
	assert.Equal(t, "Pepper", n.CultureName)
	assert.False(t, n.CreatedAt.IsZero())

	notes, err := svc.journal.ListNotesForCulture(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Planted out", notes[0].Content)
	assert.Equal(t, "2024-05-01", notes[0].Date)
}

func TestJournalServiceCreateNoteKeepsSuppliedName(t *testing.T) {
	svc := newTestServices(t)
	c := createCulture(t, svc, "Pepper")

	n, err := svc.journal.CreateNote(context.Background(), &domain.NoteFields{
		CultureID:   &c.ID,
		CultureName: domain.String("Sweet Pepper"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Sweet Pepper", n.CultureName)
}

func TestJournalServiceCreateNoteForOrphan(t *testing.T) {
	svc := newTestServices(t)

	n, err := svc.journal.CreateNote(context.Background(), &domain.NoteFields{CultureID: domain.String("cult-gone")})
	require.NoError(t, err)
	assert.Empty(t, n.CultureName)
}

func TestJournalServiceCreateNoteValidation(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.journal.CreateNote(ctx, &domain.NoteFields{Title: domain.String("no culture")})
	assert.True(t, validation.IsValidationError(err))

	bad := domain.NoteType("todo")
	_, err = svc.journal.CreateNote(ctx, &domain.NoteFields{CultureID: domain.String("c"), Type: &bad})
	assert.True(t, validation.IsValidationError(err))
}

func TestJournalServiceUpdateAndDeleteNote(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	c := createCulture(t, svc, "Pepper")

	n, err := svc.journal.CreateNote(ctx, &domain.NoteFields{CultureID: &c.ID, Title: domain.String("Old"), Content: domain.String("Body")})
	require.NoError(t, err)

	require.NoError(t, svc.journal.UpdateNote(ctx, n.ID, &domain.NoteFields{Title: domain.String("New")}))
	notes, err := svc.journal.ListNotesForCulture(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "New", notes[0].Title)
	assert.Equal(t, "Body", notes[0].Content)

	require.NoError(t, svc.journal.DeleteNote(ctx, n.ID))
	notes, err = svc.journal.ListNotesForCulture(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	assert.NoError(t, svc.journal.DeleteNote(ctx, n.ID))
	assert.NoError(t, svc.journal.UpdateNote(ctx, n.ID, &domain.NoteFields{Title: domain.String("Ghost")}))
}

func TestJournalServiceRecordHarvest(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	c := createCulture(t, svc, "Tomato")

	h, n, err := svc.journal.RecordHarvest(ctx, c.ID, &domain.HarvestFields{
		Count: domain.Qty(15),
		Date:  domain.String("2024-08-02"),
		Notes: domain.String("first truss"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(h.ID, "harv-"))
	assert.Equal(t, 15, h.Count.Int())
	assert.Equal(t, "Tomato", h.CultureName)

	assert.Equal(t, domain.NoteHarvest, n.Type)
	assert.Equal(t, HarvestNoteTitle, n.Title)
	assert.Equal(t, "Harvested: 15 pcs.", n.Content)
	assert.Equal(t, 15, n.Count.Int())
	assert.Equal(t, "2024-08-02", n.Date)

	harvests, err := svc.journal.ListHarvests(ctx)
	require.NoError(t, err)
	require.Len(t, harvests, 1)
	assert.Equal(t, 15, harvests[0].Count.Int())

	notes, err := svc.journal.ListNotesForCulture(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NoteHarvest, notes[0].Type)
}

func TestJournalServiceRecordHarvestDefaultsDate(t *testing.T) {
	svc := newTestServices(t)
	c := createCulture(t, svc, "Tomato")
	fixed := time.Date(2024, 9, 3, 10, 0, 0, 0, time.Local)
	svc.journal.now = func() time.Time { return fixed }

	h, n, err := svc.journal.RecordHarvest(context.Background(), c.ID, &domain.HarvestFields{Count: domain.Qty(1)})
	require.NoError(t, err)
	assert.Equal(t, "2024-09-03", h.Date)
	assert.Equal(t, "2024-09-03", n.Date)
}

func TestJournalServiceRecordHarvestRollsBack(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	notes := &failing[domain.Note]{repository: st.Notes, failInsert: true}
	svc := NewJournalService(st.Cultures, notes, st.Harvests, validation.New(), testLogger())

	_, _, err := svc.RecordHarvest(ctx, "cult-1", &domain.HarvestFields{Count: domain.Qty(3)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInjected))

	harvests, err := st.Harvests.Find(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, harvests)
}

func TestJournalServiceRecordHarvestRequiresCulture(t *testing.T) {
	svc := newTestServices(t)

	_, _, err := svc.journal.RecordHarvest(context.Background(), " ", &domain.HarvestFields{Count: domain.Qty(3)})
	assert.True(t, validation.IsValidationError(err))
}

func TestJournalServiceDeleteNoteLeavesHarvest(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	c := createCulture(t, svc, "Tomato")

	_, n, err := svc.journal.RecordHarvest(ctx, c.ID, &domain.HarvestFields{Count: domain.Qty(5)})
	require.NoError(t, err)

	require.NoError(t, svc.journal.DeleteNote(ctx, n.ID))

	harvests, err := svc.journal.ListHarvests(ctx)
	require.NoError(t, err)
	assert.Len(t, harvests, 1)
}

func TestJournalServiceHarvestCRUD(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	c := createCulture(t, svc, "Bean")

	h, err := svc.journal.CreateHarvest(ctx, &domain.HarvestFields{CultureID: &c.ID, Count: domain.Qty(7), Date: domain.String("2024-07-01")})
	require.NoError(t, err)
	assert.Equal(t, "Bean", h.CultureName)

	require.NoError(t, svc.journal.UpdateHarvest(ctx, h.ID, &domain.HarvestFields{Count: domain.Qty(9)}))
	harvests, err := svc.journal.ListHarvests(ctx)
	require.NoError(t, err)
	require.Len(t, harvests, 1)
	assert.Equal(t, 9, harvests[0].Count.Int())
	assert.Equal(t, "2024-07-01", harvests[0].Date)

	require.NoError(t, svc.journal.DeleteHarvest(ctx, h.ID))
	harvests, err = svc.journal.ListHarvests(ctx)
	require.NoError(t, err)
	assert.Empty(t, harvests)

	_, err = svc.journal.CreateHarvest(ctx, &domain.HarvestFields{Count: domain.Qty(1)})
	assert.True(t, validation.IsValidationError(err))
}
