package haccp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/errs"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
)

func TestEvaluateCooling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		initial  float64
		at2h     float64
		at6h     float64
		want     models.Status
		wantNote string
	}{
		{name: "textbook pass", initial: 85, at2h: 15, at6h: 6, want: models.StatusSafe, wantNote: NoteCoolingOK},
		{name: "exact boundaries pass", initial: 60, at2h: 20, at6h: 10, want: models.StatusSafe, wantNote: NoteCoolingOK},
		{name: "stage one missed", initial: 85, at2h: 20.5, at6h: 6, want: models.StatusDanger, wantNote: NoteStage1Missed},
		{name: "stage two missed", initial: 85, at2h: 18, at6h: 10.5, want: models.StatusDanger, wantNote: NoteStage2Missed},
		{name: "cold start only", initial: 55, at2h: 15, at6h: 6, want: models.StatusWarning, wantNote: NoteColdStart},
		{name: "cold start does not mask stage one", initial: 55, at2h: 25, at6h: 6, want: models.StatusDanger, wantNote: NoteStage1Missed},
		{name: "cold start does not mask stage two", initial: 55, at2h: 18, at6h: 12, want: models.StatusDanger, wantNote: NoteStage2Missed},
		{name: "both stages missed reports stage one", initial: 85, at2h: 30, at6h: 25, want: models.StatusDanger, wantNote: NoteStage1Missed},
		{name: "just below start threshold", initial: 59.9, at2h: 20, at6h: 10, want: models.StatusWarning, wantNote: NoteColdStart},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, note, err := EvaluateCooling(tt.initial, tt.at2h, tt.at6h)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantNote, note)
		})
	}
}

// Deadline misses must dominate regardless of the start temperature.
func TestEvaluateCoolingDangerDominates(t *testing.T) {
	t.Parallel()

	for _, initial := range []float64{40, 59.9, 60, 75, 100} {
		got, _, err := EvaluateCooling(initial, 21, 5)
		require.NoError(t, err)
		assert.Equal(t, models.StatusDanger, got, "initial %v", initial)

		got, _, err = EvaluateCooling(initial, 18, 11)
		require.NoError(t, err)
		assert.Equal(t, models.StatusDanger, got, "initial %v", initial)
	}
}

func TestEvaluateCoolingInvalidInput(t *testing.T) {
	t.Parallel()

	_, _, err := EvaluateCooling(math.NaN(), 15, 6)
	require.Error(t, err)
	var verr *errs.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, _, err = EvaluateCooling(85, math.Inf(-1), 6)
	require.Error(t, err)
}
