package models

// Status is the three-tier food-safety verdict used for temperature
// readings, dishwasher checks, cooling processes and daily reports.
type Status string

const (
	StatusSafe    Status = "safe"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

// Severity orders statuses so the worst verdict can be selected:
// danger > warning > safe.
func (s Status) Severity() int {
	switch s {
	case StatusDanger:
		return 2
	case StatusWarning:
		return 1
	default:
		return 0
	}
}

// Label returns the display label used on printed reports.
func (s Status) Label() string {
	switch s {
	case StatusDanger:
		return "Kritisk"
	case StatusWarning:
		return "Advarsel"
	default:
		return "OK"
	}
}

// WorstStatus returns the most severe status among the given ones,
// or StatusSafe when called with none.
func WorstStatus(statuses ...Status) Status {
	worst := StatusSafe
	for _, s := range statuses {
		if s.Severity() > worst.Severity() {
			worst = s
		}
	}
	return worst
}
