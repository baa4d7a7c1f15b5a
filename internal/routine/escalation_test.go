package routine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/notify"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/store"
)

type captureNotifier struct {
	mu     sync.Mutex
	alerts []notify.Alert
}

func (c *captureNotifier) Notify(_ context.Context, a notify.Alert) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts = append(c.alerts, a)
	return nil
}

func (c *captureNotifier) all() []notify.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]notify.Alert(nil), c.alerts...)
}

var testEscalation = EscalationConfig{
	WarningAt:  MustClockTime("09:00"),
	DangerAt:   MustClockTime("12:00"),
	CriticalAt: MustClockTime("15:00"),
}

func TestZoneAt(t *testing.T) {
	t.Parallel()

	day := func(hour, min int) time.Time {
		return time.Date(2025, 3, 3, hour, min, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		at         time.Time
		incomplete int
		want       Zone
	}{
		{name: "before warning hour", at: day(8, 59), incomplete: 3, want: ZoneNone},
		{name: "warning hour start", at: day(9, 0), incomplete: 3, want: ZoneWarning},
		{name: "late morning", at: day(11, 59), incomplete: 3, want: ZoneWarning},
		{name: "danger hour start", at: day(12, 0), incomplete: 3, want: ZoneDanger},
		{name: "critical hour start", at: day(15, 0), incomplete: 3, want: ZoneCritical},
		{name: "evening", at: day(22, 30), incomplete: 1, want: ZoneCritical},
		{name: "all done morning", at: day(9, 30), incomplete: 0, want: ZoneNone},
		{name: "all done afternoon", at: day(16, 0), incomplete: 0, want: ZoneNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, testEscalation.ZoneAt(tt.at, tt.incomplete))
		})
	}
}

func TestEscalationConfigValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, testEscalation.Validate())

	bad := EscalationConfig{
		WarningAt:  MustClockTime("12:00"),
		DangerAt:   MustClockTime("09:00"),
		CriticalAt: MustClockTime("15:00"),
	}
	assert.Error(t, bad.Validate())
}

func TestEscalatorTick(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	m.AddTasks(fiveTasks()[:3]...)
	now := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewController(m, testLogger(), Config{Now: clock})
	sink := &captureNotifier{}
	e := NewEscalator(c, testEscalation, sink, testLogger(), clock)
	ctx := context.Background()

	// Before the warning hour nothing fires.
	require.NoError(t, e.Tick(ctx))
	assert.Empty(t, sink.all())

	// Entering the warning zone fires exactly once, silently.
	now = time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC)
	require.NoError(t, e.Tick(ctx))
	require.NoError(t, e.Tick(ctx))
	alerts := sink.all()
	require.Len(t, alerts, 1)
	assert.Equal(t, "warning", alerts[0].Zone)
	assert.False(t, alerts[0].Audible)
	assert.Equal(t, 3, alerts[0].Incomplete)

	// Danger zone entry is audible.
	now = time.Date(2025, 3, 3, 12, 5, 0, 0, time.UTC)
	require.NoError(t, e.Tick(ctx))
	alerts = sink.all()
	require.Len(t, alerts, 2)
	assert.Equal(t, "danger", alerts[1].Zone)
	assert.True(t, alerts[1].Audible)

	// Critical zone, same day: third and last alert.
	now = time.Date(2025, 3, 3, 16, 0, 0, 0, time.UTC)
	require.NoError(t, e.Tick(ctx))
	require.NoError(t, e.Tick(ctx))
	alerts = sink.all()
	require.Len(t, alerts, 3)
	assert.Equal(t, "critical", alerts[2].Zone)

	// A new day starts the cycle over.
	now = time.Date(2025, 3, 4, 12, 30, 0, 0, time.UTC)
	require.NoError(t, e.Tick(ctx))
	alerts = sink.all()
	require.Len(t, alerts, 4)
	assert.Equal(t, "danger", alerts[3].Zone)
	assert.Equal(t, "2025-03-04", alerts[3].Date)
}

func TestEscalatorQuietWhenDone(t *testing.T) {
	t.Parallel()

	m := store.NewMemory()
	m.AddTasks(fiveTasks()[:3]...)
	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewController(m, testLogger(), Config{Now: clock})
	sink := &captureNotifier{}
	e := NewEscalator(c, testEscalation, sink, testLogger(), clock)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, c.Complete(ctx, fmt.Sprintf("task-%d", i), "emp-1", models.OutcomeCompleted, ""))
	}

	for _, hour := range []int{10, 12, 16, 23} {
		now = time.Date(2025, 3, 3, hour, 30, 0, 0, time.UTC)
		require.NoError(t, e.Tick(ctx))
	}
	assert.Empty(t, sink.all())
}
