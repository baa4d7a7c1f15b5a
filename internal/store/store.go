// Package store defines the data-access capability set the compliance core
// runs against. Implementations must surface duplicate-key inserts as
// errs.ErrConflict (an atomic insert-if-absent, not a check-then-act read)
// and must keep delete-then-insert batches logically transactional.
package store

import (
	"context"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
)

type EquipmentStore interface {
	GetEquipment(ctx context.Context, activeOnly bool) ([]models.EquipmentSpec, error)
}

type ReadingStore interface {
	GetReadingsForDate(ctx context.Context, date string) ([]models.TemperatureReading, error)
	// UpsertReading keeps one logical reading per equipment per day;
	// later writes supersede earlier ones by recording timestamp.
	UpsertReading(ctx context.Context, r models.TemperatureReading) error
}

type CoolingStore interface {
	// GetCoolingProcess returns nil when no process exists for the key.
	GetCoolingProcess(ctx context.Context, product, date string) (*models.CoolingProcess, error)
	// InsertCoolingProcess fails with errs.ErrConflict when a process
	// already exists for the product+date key; the existing record is
	// left untouched.
	InsertCoolingProcess(ctx context.Context, p models.CoolingProcess) error
	GetCoolingProcessesForDate(ctx context.Context, date string) ([]models.CoolingProcess, error)
}

type HygieneStore interface {
	// InsertHygieneCheck fails with errs.ErrConflict per employee+date.
	InsertHygieneCheck(ctx context.Context, h models.HygieneCheck) error
	GetHygieneChecksForDate(ctx context.Context, date string) ([]models.HygieneCheck, error)
}

type TaskStore interface {
	GetTasks(ctx context.Context, activeOnly bool) ([]models.RoutineTask, error)
	GetCompletionsForDate(ctx context.Context, date string) ([]models.TaskCompletion, error)
	// InsertCompletion fails with errs.ErrConflict per task+date.
	InsertCompletion(ctx context.Context, c models.TaskCompletion) error
	DeleteCompletionsForDate(ctx context.Context, date string) error
}

type StaffStore interface {
	GetStaff(ctx context.Context, activeOnly bool) ([]models.Employee, error)
}

type ReportStore interface {
	GetReportCount(ctx context.Context) (int, error)
	// GetReport returns nil when no report exists for the date.
	GetReport(ctx context.Context, date string) (*models.DailyReport, error)
	UpsertReport(ctx context.Context, r models.DailyReport) error
	// DeleteDetailRecordsForDate removes the date's temperature, cleaning,
	// hygiene and cooling detail rows as one logical operation.
	DeleteDetailRecordsForDate(ctx context.Context, date string) error
}

type RoutineReportStore interface {
	// InsertRoutineReport persists the aggregate and its per-task details
	// together; errs.ErrConflict when the date already has one.
	InsertRoutineReport(ctx context.Context, r models.RoutineReport) error
	GetRoutineReport(ctx context.Context, date string) (*models.RoutineReport, error)
	// ListRoutineReports returns aggregates ordered oldest first.
	ListRoutineReports(ctx context.Context) ([]models.RoutineReport, error)
	// PruneRoutineReports deletes the oldest aggregates beyond keep.
	PruneRoutineReports(ctx context.Context, keep int) error
	DeleteRoutineReport(ctx context.Context, date string) error
}

// Store is the full capability set.
type Store interface {
	EquipmentStore
	ReadingStore
	CoolingStore
	HygieneStore
	TaskStore
	StaffStore
	ReportStore
	RoutineReportStore
}
