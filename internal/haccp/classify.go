// Package haccp holds the pure decision rules of the compliance core:
// temperature threshold classification and cooling-curve evaluation.
package haccp

import (
	"math"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/errs"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
)

// DefaultToleranceBand is how far (in °C) a value may sit outside the
// allowed range and still count as a warning rather than danger.
const DefaultToleranceBand = 2.0

// Fixed dishwasher bands. Wash and dry are checked independently.
const (
	WashTempMin = 55.0
	WashTempMax = 70.0
	DryTempMin  = 75.0
	DryTempMax  = 90.0
)

// Classifier maps measured values against allowed ranges. Band is the
// warning tolerance outside the range; the default matches house policy.
type Classifier struct {
	Band float64
}

func NewClassifier() *Classifier {
	return &Classifier{Band: DefaultToleranceBand}
}

// Classify returns the status tier for a measured value against the
// inclusive range [min, max]:
//
//	safe     min ≤ value ≤ max
//	warning  outside the range but within Band of the nearest bound
//	danger   further out than Band on either side
func (c *Classifier) Classify(value, min, max float64) (models.Status, error) {
	if !finite(value) {
		return "", &errs.ValidationError{Field: "value", Reason: "not a finite number"}
	}
	if !finite(min) || !finite(max) {
		return "", &errs.ValidationError{Field: "range", Reason: "bounds must be finite"}
	}
	if min > max {
		return "", &errs.ValidationError{Field: "range", Reason: "min exceeds max"}
	}
	switch {
	case value >= min && value <= max:
		return models.StatusSafe, nil
	case value >= min-c.Band && value <= max+c.Band:
		return models.StatusWarning, nil
	default:
		return models.StatusDanger, nil
	}
}

// ClassifyDishwasher combines the two fixed-band dishwasher checks:
// both bands satisfied is OK, one violated is Advarsel, both violated is
// Kritisk. There is no tolerance band on either check.
func (c *Classifier) ClassifyDishwasher(wash, dry float64) (models.Status, error) {
	if !finite(wash) {
		return "", &errs.ValidationError{Field: "wash temperature", Reason: "not a finite number"}
	}
	if !finite(dry) {
		return "", &errs.ValidationError{Field: "dry temperature", Reason: "not a finite number"}
	}
	washOK := wash >= WashTempMin && wash <= WashTempMax
	dryOK := dry >= DryTempMin && dry <= DryTempMax
	switch {
	case washOK && dryOK:
		return models.StatusSafe, nil
	case !washOK && !dryOK:
		return models.StatusDanger, nil
	default:
		return models.StatusWarning, nil
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
