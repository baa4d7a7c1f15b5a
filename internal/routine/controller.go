package routine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/errs"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/store"
)

// DefaultUnlockAt is when a closed day's task list reopens the next morning.
var DefaultUnlockAt = MustClockTime("11:00")

// DefaultRetention is how many aggregate routine reports are kept.
const DefaultRetention = 15

// Store is the persistence surface the controller needs.
type Store interface {
	store.TaskStore
	store.RoutineReportStore
}

// Config carries the controller's clock settings. Now is overridable so
// tests can pin virtual time; nil means time.Now.
type Config struct {
	UnlockAt  ClockTime
	Retention int
	Now       func() time.Time
}

// Controller runs the per-day routine state machine: Open until every due
// task has a completion, then Closed until the unlock time next day.
type Controller struct {
	store     Store
	logger    *logrus.Logger
	unlockAt  ClockTime
	retention int
	now       func() time.Time
}

func NewController(st Store, logger *logrus.Logger, cfg Config) *Controller {
	if cfg.UnlockAt == 0 {
		cfg.UnlockAt = DefaultUnlockAt
	}
	if cfg.Retention == 0 {
		cfg.Retention = DefaultRetention
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Controller{
		store:     st,
		logger:    logger,
		unlockAt:  cfg.UnlockAt,
		retention: cfg.Retention,
		now:       cfg.Now,
	}
}

// DayStatus is the current state of today's task list.
type DayStatus struct {
	Date        string                  `json:"date"`
	Tasks       []models.RoutineTask    `json:"tasks"`
	Completions []models.TaskCompletion `json:"completions"`
	Incomplete  int                     `json:"incomplete"`
	Closed      bool                    `json:"closed"`
	UnlocksAt   time.Time               `json:"unlocks_at,omitempty"`
}

// Status reports today's due tasks, their completions and the lock state.
func (c *Controller) Status(ctx context.Context) (DayStatus, error) {
	now := c.now()
	day := models.DateKey(now)

	tasks, err := c.dueTasks(ctx, now)
	if err != nil {
		return DayStatus{}, err
	}
	completions, err := c.store.GetCompletionsForDate(ctx, day)
	if err != nil {
		return DayStatus{}, errs.Persistence("load completions", err)
	}

	decided := make(map[string]bool, len(completions))
	for _, comp := range completions {
		decided[comp.TaskID] = true
	}
	incomplete := 0
	for _, t := range tasks {
		if !decided[t.ID] {
			incomplete++
		}
	}

	st := DayStatus{
		Date:        day,
		Tasks:       tasks,
		Completions: completions,
		Incomplete:  incomplete,
	}
	if until, locked, err := c.lockedUntil(ctx, now); err != nil {
		return DayStatus{}, err
	} else if locked {
		st.Closed = true
		st.UnlocksAt = until
	}
	return st, nil
}

// Complete records the outcome for one due task today. Each task can be
// decided exactly once per day; while the day is closed all completions
// are rejected with errs.ErrDayLocked.
func (c *Controller) Complete(ctx context.Context, taskID, employeeID, outcome, note string) error {
	if outcome != models.OutcomeCompleted && outcome != models.OutcomeNotCompleted {
		return &errs.ValidationError{Field: "outcome", Reason: "must be completed or not_completed"}
	}

	now := c.now()
	day := models.DateKey(now)

	if _, locked, err := c.lockedUntil(ctx, now); err != nil {
		return err
	} else if locked {
		return errs.ErrDayLocked
	}

	tasks, err := c.dueTasks(ctx, now)
	if err != nil {
		return err
	}
	var task *models.RoutineTask
	for i := range tasks {
		if tasks[i].ID == taskID {
			task = &tasks[i]
			break
		}
	}
	if task == nil {
		return errs.ErrNotFound
	}

	comp := models.TaskCompletion{
		ID:         uuid.NewString(),
		TaskID:     taskID,
		Date:       day,
		EmployeeID: employeeID,
		Outcome:    outcome,
		Note:       note,
		CreatedAt:  now,
	}
	if err := c.store.InsertCompletion(ctx, comp); err != nil {
		return errs.Persistence("save completion", err)
	}
	c.logger.Infof("task %s marked %s by %s", taskID, outcome, employeeID)

	return c.maybeCloseDay(ctx, now, tasks)
}

// maybeCloseDay closes the day once every due task is decided: it persists
// the aggregate report with its per-task snapshot and prunes aggregates
// beyond the retention window.
func (c *Controller) maybeCloseDay(ctx context.Context, now time.Time, tasks []models.RoutineTask) error {
	day := models.DateKey(now)
	completions, err := c.store.GetCompletionsForDate(ctx, day)
	if err != nil {
		return errs.Persistence("load completions", err)
	}
	byTask := make(map[string]models.TaskCompletion, len(completions))
	for _, comp := range completions {
		byTask[comp.TaskID] = comp
	}
	for _, t := range tasks {
		if _, ok := byTask[t.ID]; !ok {
			return nil // still open
		}
	}

	rep := models.RoutineReport{
		ID:        uuid.NewString(),
		Date:      day,
		Total:     len(tasks),
		CreatedAt: now,
	}
	for _, t := range tasks {
		comp := byTask[t.ID]
		if comp.Outcome == models.OutcomeCompleted {
			rep.Completed++
		} else {
			rep.NotCompleted++
		}
		rep.Details = append(rep.Details, models.RoutineReportDetail{
			TaskID:     t.ID,
			TaskName:   t.NameNo,
			Outcome:    comp.Outcome,
			EmployeeID: comp.EmployeeID,
			Note:       comp.Note,
		})
	}
	if rep.Total > 0 {
		rep.Percentage = float64(rep.Completed) / float64(rep.Total) * 100
	}

	if err := c.store.InsertRoutineReport(ctx, rep); err != nil {
		return errs.Persistence("save routine report", err)
	}
	if err := c.store.PruneRoutineReports(ctx, c.retention); err != nil {
		return errs.Persistence("prune routine reports", err)
	}

	c.logger.Infof("routine day %s closed: %d/%d completed (%.0f%%), locked until %s",
		day, rep.Completed, rep.Total, rep.Percentage, c.unlockAt.On(now.AddDate(0, 0, 1)))
	return nil
}

// Reset is the operator escape hatch: it deletes the day's completions and
// aggregate report and reopens the day.
func (c *Controller) Reset(ctx context.Context, date string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return &errs.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if err := c.store.DeleteCompletionsForDate(ctx, date); err != nil {
		return errs.Persistence("delete completions", err)
	}
	if err := c.store.DeleteRoutineReport(ctx, date); err != nil {
		return errs.Persistence("delete routine report", err)
	}
	c.logger.Warnf("routine day %s manually reset", date)
	return nil
}

// lockedUntil reports whether completions are currently rejected: from the
// moment a day closes until the unlock time of the following day.
func (c *Controller) lockedUntil(ctx context.Context, now time.Time) (time.Time, bool, error) {
	day := models.DateKey(now)
	rep, err := c.store.GetRoutineReport(ctx, day)
	if err != nil {
		return time.Time{}, false, errs.Persistence("load routine report", err)
	}
	if rep != nil {
		return c.unlockAt.On(now.AddDate(0, 0, 1)), true, nil
	}

	if minutesOfDay(now) < c.unlockAt {
		yesterday := models.DateKey(now.AddDate(0, 0, -1))
		rep, err := c.store.GetRoutineReport(ctx, yesterday)
		if err != nil {
			return time.Time{}, false, errs.Persistence("load routine report", err)
		}
		if rep != nil {
			return c.unlockAt.On(now), true, nil
		}
	}
	return time.Time{}, false, nil
}

func (c *Controller) dueTasks(ctx context.Context, now time.Time) ([]models.RoutineTask, error) {
	tasks, err := c.store.GetTasks(ctx, true)
	if err != nil {
		return nil, errs.Persistence("load tasks", err)
	}
	return models.DueTasks(tasks, now), nil
}
