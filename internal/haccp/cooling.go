package haccp

import (
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/errs"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
)

// Regulatory two-stage cooling curve: cooked food must be at or below 20°C
// two hours in and at or below 10°C six hours in, starting from at least
// 60°C. Checkpoint values sitting exactly on a bound pass.
const (
	CoolingStartMin  = 60.0
	CoolingStage1Max = 20.0
	CoolingStage2Max = 10.0
)

// Fixed verdict notes written to cooling records.
const (
	NoteStage1Missed = "Over 20°C etter 2 timer – maten skal kastes"
	NoteStage2Missed = "Over 10°C etter 6 timer – maten skal kastes"
	NoteColdStart    = "Starttemperatur under 60°C – kontroller prosessen"
	NoteCoolingOK    = "Nedkjøling innenfor kravene"
)

// EvaluateCooling returns the verdict for a three-checkpoint cooling
// process plus the note explaining it. A missed stage deadline is an
// automatic discard even when the start temperature was also too low; an
// under-temperature start only downgrades an otherwise passing curve.
func EvaluateCooling(initial, at2h, at6h float64) (models.Status, string, error) {
	for _, c := range []struct {
		field string
		v     float64
	}{
		{"initial temperature", initial},
		{"2h temperature", at2h},
		{"6h temperature", at6h},
	} {
		if !finite(c.v) {
			return "", "", &errs.ValidationError{Field: c.field, Reason: "not a finite number"}
		}
	}

	switch {
	case at2h > CoolingStage1Max:
		return models.StatusDanger, NoteStage1Missed, nil
	case at6h > CoolingStage2Max:
		return models.StatusDanger, NoteStage2Missed, nil
	case initial < CoolingStartMin:
		return models.StatusWarning, NoteColdStart, nil
	default:
		return models.StatusSafe, NoteCoolingOK, nil
	}
}
