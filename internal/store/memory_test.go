package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/errs"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
)

func TestCoolingProcessDuplicateRejected(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	first := models.CoolingProcess{
		ID: "cp-1", Product: "Kyllinggryte", Date: "2025-03-03",
		InitialTemp: 85, TempAt2h: 15, TempAt6h: 6, Verdict: models.StatusSafe,
	}
	require.NoError(t, m.InsertCoolingProcess(ctx, first))

	dup := first
	dup.ID = "cp-2"
	dup.TempAt2h = 30
	err := m.InsertCoolingProcess(ctx, dup)
	require.ErrorIs(t, err, errs.ErrConflict)

	// The existing record is unchanged.
	got, err := m.GetCoolingProcess(ctx, "Kyllinggryte", "2025-03-03")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "cp-1", got.ID)
	assert.Equal(t, 15.0, got.TempAt2h)

	// Same product on another day is fine.
	other := first
	other.ID = "cp-3"
	other.Date = "2025-03-04"
	require.NoError(t, m.InsertCoolingProcess(ctx, other))
}

func TestHygieneCheckDuplicateRejected(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	h := models.HygieneCheck{ID: "h-1", Date: "2025-03-03", EmployeeID: "emp-1", Status: models.StatusSafe}
	require.NoError(t, m.InsertHygieneCheck(ctx, h))
	h.ID = "h-2"
	assert.ErrorIs(t, m.InsertHygieneCheck(ctx, h), errs.ErrConflict)
}

func TestReadingLastWriteWins(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	morning := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

	first := models.TemperatureReading{
		ID: "r-1", EquipmentID: "eq-1", Date: "2025-03-03",
		Value: 3.5, Status: models.StatusSafe, RecordedAt: morning,
	}
	require.NoError(t, m.UpsertReading(ctx, first))

	// A later reading for the same equipment/day supersedes the first.
	second := first
	second.ID = "r-2"
	second.Value = 4.5
	second.Status = models.StatusWarning
	second.RecordedAt = morning.Add(6 * time.Hour)
	require.NoError(t, m.UpsertReading(ctx, second))

	// An out-of-order earlier write does not.
	stale := first
	stale.ID = "r-3"
	stale.Value = 2.0
	stale.RecordedAt = morning.Add(-time.Hour)
	require.NoError(t, m.UpsertReading(ctx, stale))

	readings, err := m.GetReadingsForDate(ctx, "2025-03-03")
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, "r-2", readings[0].ID)
	assert.Equal(t, 4.5, readings[0].Value)
}

func TestDeleteDetailRecordsForDate(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.UpsertReading(ctx, models.TemperatureReading{ID: "r", EquipmentID: "eq", Date: "2025-03-03"}))
	require.NoError(t, m.InsertCoolingProcess(ctx, models.CoolingProcess{ID: "c", Product: "Suppe", Date: "2025-03-03"}))
	require.NoError(t, m.InsertHygieneCheck(ctx, models.HygieneCheck{ID: "h", Date: "2025-03-03", EmployeeID: "emp"}))
	require.NoError(t, m.InsertCompletion(ctx, models.TaskCompletion{ID: "k", TaskID: "t", Date: "2025-03-03"}))
	require.NoError(t, m.UpsertReading(ctx, models.TemperatureReading{ID: "keep", EquipmentID: "eq", Date: "2025-03-04"}))

	require.NoError(t, m.DeleteDetailRecordsForDate(ctx, "2025-03-03"))

	readings, err := m.GetReadingsForDate(ctx, "2025-03-03")
	require.NoError(t, err)
	assert.Empty(t, readings)
	cooling, err := m.GetCoolingProcessesForDate(ctx, "2025-03-03")
	require.NoError(t, err)
	assert.Empty(t, cooling)
	checks, err := m.GetHygieneChecksForDate(ctx, "2025-03-03")
	require.NoError(t, err)
	assert.Empty(t, checks)
	comps, err := m.GetCompletionsForDate(ctx, "2025-03-03")
	require.NoError(t, err)
	assert.Empty(t, comps)

	// Other dates untouched.
	kept, err := m.GetReadingsForDate(ctx, "2025-03-04")
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestRoutineReportPrune(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	for i := 1; i <= 16; i++ {
		r := models.RoutineReport{
			ID:        fmt.Sprintf("rr-%d", i),
			Date:      fmt.Sprintf("2025-03-%02d", i),
			CreatedAt: time.Date(2025, 3, i, 20, 0, 0, 0, time.UTC),
		}
		require.NoError(t, m.InsertRoutineReport(ctx, r))
	}
	require.NoError(t, m.PruneRoutineReports(ctx, 15))

	reports, err := m.ListRoutineReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 15)
	assert.Equal(t, "rr-2", reports[0].ID)
	assert.Equal(t, "rr-16", reports[14].ID)
}

func TestRoutineReportDuplicateRejected(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.InsertRoutineReport(ctx, models.RoutineReport{ID: "a", Date: "2025-03-03"}))
	assert.ErrorIs(t, m.InsertRoutineReport(ctx, models.RoutineReport{ID: "b", Date: "2025-03-03"}), errs.ErrConflict)
}
