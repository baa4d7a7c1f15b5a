package routine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/errs"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/notify"
)

// Zone is the alert severity derived from time of day and how many tasks
// remain incomplete.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneWarning
	ZoneDanger
	ZoneCritical
)

func (z Zone) String() string {
	switch z {
	case ZoneWarning:
		return "warning"
	case ZoneDanger:
		return "danger"
	case ZoneCritical:
		return "critical"
	default:
		return "none"
	}
}

// Audible zones additionally trigger sound/vibration on receiving devices.
func (z Zone) Audible() bool { return z >= ZoneDanger }

// EscalationConfig partitions the day into four alert zones.
type EscalationConfig struct {
	WarningAt  ClockTime
	DangerAt   ClockTime
	CriticalAt ClockTime
}

// DefaultEscalation matches house policy: warn from 09:00, escalate at
// 12:00 and 15:00.
var DefaultEscalation = EscalationConfig{
	WarningAt:  MustClockTime("09:00"),
	DangerAt:   MustClockTime("12:00"),
	CriticalAt: MustClockTime("15:00"),
}

func (c EscalationConfig) Validate() error {
	if !(c.WarningAt < c.DangerAt && c.DangerAt < c.CriticalAt) {
		return &errs.ValidationError{
			Field:  "escalation hours",
			Reason: "must satisfy warning < danger < critical",
		}
	}
	return nil
}

// ZoneAt classifies the given moment. With nothing left incomplete the
// zone is always none.
func (c EscalationConfig) ZoneAt(now time.Time, incomplete int) Zone {
	if incomplete <= 0 {
		return ZoneNone
	}
	m := minutesOfDay(now)
	switch {
	case m >= c.CriticalAt:
		return ZoneCritical
	case m >= c.DangerAt:
		return ZoneDanger
	case m >= c.WarningAt:
		return ZoneWarning
	default:
		return ZoneNone
	}
}

// Escalator polls the task list on a wall-clock tick and emits at most one
// alert per zone per day. Ticks are idempotent and safe to re-run.
type Escalator struct {
	controller *Controller
	cfg        EscalationConfig
	notifier   notify.Notifier
	logger     *logrus.Logger
	now        func() time.Time

	mu    sync.Mutex
	day   string
	fired map[Zone]bool
}

// NewEscalator wires the escalation check. now may be nil (time.Now);
// tests pass the same pinned clock the controller uses.
func NewEscalator(c *Controller, cfg EscalationConfig, n notify.Notifier, logger *logrus.Logger, now func() time.Time) *Escalator {
	if now == nil {
		now = time.Now
	}
	return &Escalator{
		controller: c,
		cfg:        cfg,
		notifier:   n,
		logger:     logger,
		now:        now,
		fired:      make(map[Zone]bool),
	}
}

// Tick evaluates the current moment and dispatches a zone-entry alert if
// one is due.
func (e *Escalator) Tick(ctx context.Context) error {
	now := e.now()
	st, err := e.controller.Status(ctx)
	if err != nil {
		return err
	}

	zone := e.cfg.ZoneAt(now, st.Incomplete)
	if zone == ZoneNone {
		return nil
	}

	day := models.DateKey(now)
	e.mu.Lock()
	if e.day != day {
		e.day = day
		e.fired = make(map[Zone]bool)
	}
	if e.fired[zone] {
		e.mu.Unlock()
		return nil
	}
	e.fired[zone] = true
	e.mu.Unlock()

	alert := notify.Alert{
		Zone:       zone.String(),
		Message:    fmt.Sprintf("%d rutineoppgaver gjenstår", st.Incomplete),
		Audible:    zone.Audible(),
		Date:       day,
		Incomplete: st.Incomplete,
		At:         now,
	}
	e.logger.Infof("escalation %s for %s (%d incomplete)", zone, day, st.Incomplete)
	return e.notifier.Notify(ctx, alert)
}
