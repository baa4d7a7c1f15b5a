package models

import "time"

// DateLayout is the calendar-day key format used for all per-day records.
const DateLayout = "2006-01-02"

// DateKey formats t as a calendar-day key in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// EquipmentSpec describes a monitored piece of equipment and its allowed
// temperature range [MinTemp, MaxTemp], both bounds inclusive.
type EquipmentSpec struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MinTemp   float64   `json:"min_temp"`
	MaxTemp   float64   `json:"max_temp"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// TemperatureReading is one logical reading per equipment per day.
// Status is always recomputed from Value and the equipment range at write
// time; a stored reading never diverges from its classification.
type TemperatureReading struct {
	ID          string    `json:"id"`
	EquipmentID string    `json:"equipment_id"`
	Value       float64   `json:"value"`
	Status      Status    `json:"status"`
	Date        string    `json:"date"`
	RecordedAt  time.Time `json:"recorded_at"`
	RecordedBy  string    `json:"recorded_by"`
	Note        string    `json:"note,omitempty"`
}

// CoolingProcess captures the three-checkpoint cooling curve for one
// product on one day. At most one process exists per product per day.
type CoolingProcess struct {
	ID              string  `json:"id"`
	Product         string  `json:"product"`
	Date            string  `json:"date"`
	InitialTemp     float64 `json:"initial_temp"`
	TempAt2h        float64 `json:"temp_at_2h"`
	TempAt6h        float64 `json:"temp_at_6h"`
	DurationMinutes int     `json:"duration_minutes"`
	Verdict         Status  `json:"verdict"`
	Note            string  `json:"note,omitempty"`
	RecordedBy      string  `json:"recorded_by"`
}

// HygieneCheck is a supervisor's personal-hygiene review for one day.
type HygieneCheck struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	EmployeeID string `json:"employee_id"`
	Status     Status `json:"status"`
	Note       string `json:"note,omitempty"`
}

// DailyReport is the aggregated compliance verdict for one calendar date.
type DailyReport struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Status      Status    `json:"status"`
	GeneratedBy string    `json:"generated_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Employee roles. Supervisors are the only staff tier that files hygiene checks.
const (
	RoleStaff      = "staff"
	RoleSupervisor = "supervisor"
)

// Employee is a staff member readings and completions are attributed to.
type Employee struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// Supervisors filters employees down to the supervisor tier.
func Supervisors(staff []Employee) []Employee {
	var out []Employee
	for _, e := range staff {
		if e.Role == RoleSupervisor {
			out = append(out, e)
		}
	}
	return out
}
