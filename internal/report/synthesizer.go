package report

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/errs"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/haccp"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/store"
)

// Aggregate verdict thresholds: a day is Kritisk when this many readings or
// more are non-safe, Advarsel from the lower threshold up.
const (
	dangerReadingCount  = 5
	warningReadingCount = 3
)

// Fixed note phrase sets for synthesized records.
var (
	cleaningDoneNotes = []string{
		"Utført uten avvik",
		"Rengjort og kontrollert",
		"Utført som planlagt",
	}
	cleaningMissedNotes = []string{
		"Ikke rukket, følges opp i morgen",
		"Utstyr i bruk, utsatt til neste vakt",
	}
	hygieneNote     = "Personlig hygiene kontrollert"
	deviationNote   = "Avvik registrert, tiltak iverksatt"
	coolingProducts = []string{"Kyllinggryte", "Kjøttsaus", "Tomatsuppe", "Risgrøt", "Lasagne"}
)

// Synthesizer generates a full day's plausible temperature, cleaning,
// hygiene and cooling records, steering a quota-bounded number of them into
// violation territory. Values are always classified through the haccp
// rules; the synthesizer biases values, never statuses.
type Synthesizer struct {
	store      store.Store
	classifier *haccp.Classifier
	logger     *logrus.Logger
	rng        *rand.Rand
	now        func() time.Time
}

// NewSynthesizer constructs a Synthesizer. rng may be nil, in which case a
// time-seeded source is used; tests inject a pinned one.
func NewSynthesizer(st store.Store, logger *logrus.Logger, rng *rand.Rand) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{
		store:      st,
		classifier: haccp.NewClassifier(),
		logger:     logger,
		rng:        rng,
		now:        time.Now,
	}
}

// Generate rebuilds the given date's records and daily report. Existing
// detail rows for the date are deleted first; an existing report record is
// updated in place. The report sequence number is taken before any write.
func (s *Synthesizer) Generate(ctx context.Context, date time.Time) (models.DailyReport, error) {
	day := models.DateKey(date)

	equipment, err := s.store.GetEquipment(ctx, true)
	if err != nil {
		return models.DailyReport{}, errs.Persistence("load equipment", err)
	}
	if len(equipment) == 0 {
		return models.DailyReport{}, &errs.PrerequisiteError{Resource: "equipment"}
	}
	tasks, err := s.store.GetTasks(ctx, true)
	if err != nil {
		return models.DailyReport{}, errs.Persistence("load tasks", err)
	}
	if len(tasks) == 0 {
		return models.DailyReport{}, &errs.PrerequisiteError{Resource: "tasks"}
	}
	staff, err := s.store.GetStaff(ctx, true)
	if err != nil {
		return models.DailyReport{}, errs.Persistence("load staff", err)
	}
	if len(staff) == 0 {
		return models.DailyReport{}, &errs.PrerequisiteError{Resource: "staff"}
	}

	count, err := s.store.GetReportCount(ctx)
	if err != nil {
		return models.DailyReport{}, errs.Persistence("count reports", err)
	}
	n := count + 1
	plan := PlanQuota(n, s.rng)
	s.logger.Infof("generating report %d for %s (critical=%d warning=%d cooling=%d)",
		n, day, plan.Critical, plan.Warning, plan.Cooling)

	existing, err := s.store.GetReport(ctx, day)
	if err != nil {
		return models.DailyReport{}, errs.Persistence("load report", err)
	}

	if err := s.store.DeleteDetailRecordsForDate(ctx, day); err != nil {
		return models.DailyReport{}, errs.Persistence("clear day", err)
	}

	readings, err := s.writeReadings(ctx, date, equipment, staff, &plan)
	if err != nil {
		return models.DailyReport{}, err
	}
	if err := s.writeCleaning(ctx, date, tasks, staff); err != nil {
		return models.DailyReport{}, err
	}
	if err := s.writeCooling(ctx, date, staff, &plan); err != nil {
		return models.DailyReport{}, err
	}
	if err := s.writeHygiene(ctx, date, staff); err != nil {
		return models.DailyReport{}, err
	}

	nonSafe := 0
	for _, r := range readings {
		if r.Status != models.StatusSafe {
			nonSafe++
		}
	}

	rep := models.DailyReport{
		Date:        day,
		Status:      aggregateStatus(nonSafe),
		GeneratedBy: "synthesizer",
		UpdatedAt:   s.now(),
	}
	if existing != nil {
		rep.ID = existing.ID
		rep.CreatedAt = existing.CreatedAt
		rep.GeneratedBy = existing.GeneratedBy
	} else {
		rep.ID = uuid.NewString()
		rep.CreatedAt = rep.UpdatedAt
	}
	if err := s.store.UpsertReport(ctx, rep); err != nil {
		return models.DailyReport{}, errs.Persistence("save report", err)
	}

	s.logger.Infof("report %s for %s: %s (%d non-safe readings)", rep.ID, day, rep.Status, nonSafe)
	return rep, nil
}

func aggregateStatus(nonSafe int) models.Status {
	switch {
	case nonSafe >= dangerReadingCount:
		return models.StatusDanger
	case nonSafe >= warningReadingCount:
		return models.StatusWarning
	default:
		return models.StatusSafe
	}
}

// writeReadings draws one value per equipment item. While the critical
// quota is open a coin flip may push the value beyond the tolerance band;
// while the warning quota is open, into it. Safe values sit at 15%–85% of
// the range width to stay clear of the bounds. Every value goes through
// the classifier so stored value and status cannot diverge.
func (s *Synthesizer) writeReadings(ctx context.Context, date time.Time, equipment []models.EquipmentSpec, staff []models.Employee, plan *QuotaPlan) ([]models.TemperatureReading, error) {
	day := models.DateKey(date)
	readings := make([]models.TemperatureReading, 0, len(equipment))

	for _, eq := range equipment {
		band := s.classifier.Band
		var value float64
		switch {
		case plan.Critical > 0 && s.rng.Float64() < 0.5:
			offset := band + 1 + s.rng.Float64()*4
			value = eq.MaxTemp + offset
			if s.rng.Float64() < 0.5 {
				value = eq.MinTemp - offset
			}
			plan.Critical--
		case plan.Warning > 0 && s.rng.Float64() < 0.5:
			offset := 0.1 + s.rng.Float64()*(band-0.2)
			value = eq.MaxTemp + offset
			if s.rng.Float64() < 0.5 {
				value = eq.MinTemp - offset
			}
			plan.Warning--
		default:
			width := eq.MaxTemp - eq.MinTemp
			value = eq.MinTemp + width*(0.15+0.70*s.rng.Float64())
		}
		value = math.Round(value*10) / 10

		status, err := s.classifier.Classify(value, eq.MinTemp, eq.MaxTemp)
		if err != nil {
			return nil, err
		}
		note := ""
		if status != models.StatusSafe {
			note = deviationNote
		}

		r := models.TemperatureReading{
			ID:          uuid.NewString(),
			EquipmentID: eq.ID,
			Value:       value,
			Status:      status,
			Date:        day,
			RecordedAt:  s.timeOfDay(date, 8, 16),
			RecordedBy:  s.pick(staff).ID,
			Note:        note,
		}
		if err := s.store.UpsertReading(ctx, r); err != nil {
			return nil, errs.Persistence("save reading", err)
		}
		readings = append(readings, r)
	}
	return readings, nil
}

// writeCleaning records one outcome per task with roughly 90% completion.
func (s *Synthesizer) writeCleaning(ctx context.Context, date time.Time, tasks []models.RoutineTask, staff []models.Employee) error {
	day := models.DateKey(date)
	for _, task := range tasks {
		outcome := models.OutcomeCompleted
		note := cleaningDoneNotes[s.rng.Intn(len(cleaningDoneNotes))]
		if s.rng.Float64() >= 0.9 {
			outcome = models.OutcomeNotCompleted
			note = cleaningMissedNotes[s.rng.Intn(len(cleaningMissedNotes))]
		}
		c := models.TaskCompletion{
			ID:         uuid.NewString(),
			TaskID:     task.ID,
			Date:       day,
			EmployeeID: s.pick(staff).ID,
			Outcome:    outcome,
			Note:       note,
			CreatedAt:  s.timeOfDay(date, 9, 20),
		}
		if err := s.store.InsertCompletion(ctx, c); err != nil {
			return errs.Persistence("save cleaning record", err)
		}
	}
	return nil
}

// writeCooling synthesizes 2–3 product curves. While the cooling quota is
// open a failing curve is generated, alternating between a missed stage-1
// deadline and a must-discard stage-2 miss; the verdict and note always
// come from the curve evaluation.
func (s *Synthesizer) writeCooling(ctx context.Context, date time.Time, staff []models.Employee, plan *QuotaPlan) error {
	day := models.DateKey(date)

	products := append([]string(nil), coolingProducts...)
	s.rng.Shuffle(len(products), func(i, j int) { products[i], products[j] = products[j], products[i] })
	n := 2 + s.rng.Intn(2)

	for _, product := range products[:n] {
		var initial, at2h, at6h float64
		if plan.Cooling > 0 {
			initial = 75 + s.rng.Float64()*15
			if s.rng.Float64() < 0.5 {
				at2h = 21 + s.rng.Float64()*9 // stage-1 deadline missed
				at6h = 6 + s.rng.Float64()*4
			} else {
				at2h = 12 + s.rng.Float64()*8
				at6h = 10.5 + s.rng.Float64()*5 // still too warm at 6h
			}
			plan.Cooling--
		} else {
			initial = 65 + s.rng.Float64()*25
			at2h = 12 + s.rng.Float64()*8
			at6h = 4 + s.rng.Float64()*6
		}
		initial = math.Round(initial*10) / 10
		at2h = math.Round(at2h*10) / 10
		at6h = math.Round(at6h*10) / 10

		verdict, note, err := haccp.EvaluateCooling(initial, at2h, at6h)
		if err != nil {
			return err
		}
		p := models.CoolingProcess{
			ID:              uuid.NewString(),
			Product:         product,
			Date:            day,
			InitialTemp:     initial,
			TempAt2h:        at2h,
			TempAt6h:        at6h,
			DurationMinutes: 360,
			Verdict:         verdict,
			Note:            note,
			RecordedBy:      s.pick(staff).ID,
		}
		if err := s.store.InsertCoolingProcess(ctx, p); err != nil {
			return errs.Persistence("save cooling process", err)
		}
	}
	return nil
}

// writeHygiene files checks for supervisor-tier staff only: two reviewers
// Monday–Thursday, three or four Friday–Sunday (capped by head count).
func (s *Synthesizer) writeHygiene(ctx context.Context, date time.Time, staff []models.Employee) error {
	supervisors := models.Supervisors(staff)
	if len(supervisors) == 0 {
		return nil
	}

	want := 2
	switch date.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		want = 3 + s.rng.Intn(2)
	}
	if want > len(supervisors) {
		want = len(supervisors)
	}

	s.rng.Shuffle(len(supervisors), func(i, j int) {
		supervisors[i], supervisors[j] = supervisors[j], supervisors[i]
	})

	day := models.DateKey(date)
	for _, sup := range supervisors[:want] {
		h := models.HygieneCheck{
			ID:         uuid.NewString(),
			Date:       day,
			EmployeeID: sup.ID,
			Status:     models.StatusSafe,
			Note:       hygieneNote,
		}
		if err := s.store.InsertHygieneCheck(ctx, h); err != nil {
			return errs.Persistence("save hygiene check", err)
		}
	}
	return nil
}

func (s *Synthesizer) pick(staff []models.Employee) models.Employee {
	return staff[s.rng.Intn(len(staff))]
}

func (s *Synthesizer) timeOfDay(date time.Time, fromHour, toHour int) time.Time {
	minute := s.rng.Intn((toHour - fromHour) * 60)
	base := time.Date(date.Year(), date.Month(), date.Day(), fromHour, 0, 0, 0, date.Location())
	return base.Add(time.Duration(minute) * time.Minute)
}
