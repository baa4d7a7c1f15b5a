package store

import (
	"context"
	"sort"
	"sync"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/errs"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
)

// Memory is an in-process Store used in demo mode (no DB_DSN configured)
// and by the test suites. Uniqueness checks run under one lock, so inserts
// are atomic the same way the database constraints are.
type Memory struct {
	mu sync.Mutex

	equipment []models.EquipmentSpec
	staff     []models.Employee
	tasks     []models.RoutineTask

	readings    map[string]map[string]models.TemperatureReading // date -> equipment
	cooling     map[string]map[string]models.CoolingProcess     // date -> product
	hygiene     map[string]map[string]models.HygieneCheck       // date -> employee
	completions map[string]map[string]models.TaskCompletion     // date -> task
	reports     map[string]models.DailyReport                   // date

	routineReports []models.RoutineReport // creation order
}

func NewMemory() *Memory {
	return &Memory{
		readings:    make(map[string]map[string]models.TemperatureReading),
		cooling:     make(map[string]map[string]models.CoolingProcess),
		hygiene:     make(map[string]map[string]models.HygieneCheck),
		completions: make(map[string]map[string]models.TaskCompletion),
		reports:     make(map[string]models.DailyReport),
	}
}

// Seed helpers for demo mode and tests.

func (m *Memory) AddEquipment(e ...models.EquipmentSpec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.equipment = append(m.equipment, e...)
}

func (m *Memory) AddStaff(e ...models.Employee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staff = append(m.staff, e...)
}

func (m *Memory) AddTasks(t ...models.RoutineTask) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, t...)
}

func (m *Memory) GetEquipment(_ context.Context, activeOnly bool) ([]models.EquipmentSpec, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.EquipmentSpec
	for _, e := range m.equipment {
		if !activeOnly || e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Memory) GetStaff(_ context.Context, activeOnly bool) ([]models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Employee
	for _, e := range m.staff {
		if !activeOnly || e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Memory) GetTasks(_ context.Context, activeOnly bool) ([]models.RoutineTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.RoutineTask
	for _, t := range m.tasks {
		if !activeOnly || t.Active {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *Memory) GetReadingsForDate(_ context.Context, date string) ([]models.TemperatureReading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.TemperatureReading
	for _, r := range m.readings[date] {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EquipmentID < out[j].EquipmentID })
	return out, nil
}

func (m *Memory) UpsertReading(_ context.Context, r models.TemperatureReading) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := m.readings[r.Date]
	if day == nil {
		day = make(map[string]models.TemperatureReading)
		m.readings[r.Date] = day
	}
	if prev, ok := day[r.EquipmentID]; ok && prev.RecordedAt.After(r.RecordedAt) {
		return nil // last write wins by timestamp
	}
	day[r.EquipmentID] = r
	return nil
}

func (m *Memory) GetCoolingProcess(_ context.Context, product, date string) (*models.CoolingProcess, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.cooling[date][product]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *Memory) InsertCoolingProcess(_ context.Context, p models.CoolingProcess) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := m.cooling[p.Date]
	if day == nil {
		day = make(map[string]models.CoolingProcess)
		m.cooling[p.Date] = day
	}
	if _, ok := day[p.Product]; ok {
		return errs.ErrConflict
	}
	day[p.Product] = p
	return nil
}

func (m *Memory) GetCoolingProcessesForDate(_ context.Context, date string) ([]models.CoolingProcess, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.CoolingProcess
	for _, p := range m.cooling[date] {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product < out[j].Product })
	return out, nil
}

func (m *Memory) InsertHygieneCheck(_ context.Context, h models.HygieneCheck) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := m.hygiene[h.Date]
	if day == nil {
		day = make(map[string]models.HygieneCheck)
		m.hygiene[h.Date] = day
	}
	if _, ok := day[h.EmployeeID]; ok {
		return errs.ErrConflict
	}
	day[h.EmployeeID] = h
	return nil
}

func (m *Memory) GetHygieneChecksForDate(_ context.Context, date string) ([]models.HygieneCheck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.HygieneCheck
	for _, h := range m.hygiene[date] {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (m *Memory) GetCompletionsForDate(_ context.Context, date string) ([]models.TaskCompletion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.TaskCompletion
	for _, c := range m.completions[date] {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaskID < out[j].TaskID })
	return out, nil
}

func (m *Memory) InsertCompletion(_ context.Context, c models.TaskCompletion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := m.completions[c.Date]
	if day == nil {
		day = make(map[string]models.TaskCompletion)
		m.completions[c.Date] = day
	}
	if _, ok := day[c.TaskID]; ok {
		return errs.ErrConflict
	}
	day[c.TaskID] = c
	return nil
}

func (m *Memory) DeleteCompletionsForDate(_ context.Context, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.completions, date)
	return nil
}

func (m *Memory) GetReportCount(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reports), nil
}

func (m *Memory) GetReport(_ context.Context, date string) (*models.DailyReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reports[date]; ok {
		return &r, nil
	}
	return nil, nil
}

func (m *Memory) UpsertReport(_ context.Context, r models.DailyReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[r.Date] = r
	return nil
}

func (m *Memory) DeleteDetailRecordsForDate(_ context.Context, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.readings, date)
	delete(m.cooling, date)
	delete(m.hygiene, date)
	delete(m.completions, date)
	return nil
}

func (m *Memory) InsertRoutineReport(_ context.Context, r models.RoutineReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.routineReports {
		if existing.Date == r.Date {
			return errs.ErrConflict
		}
	}
	m.routineReports = append(m.routineReports, r)
	return nil
}

func (m *Memory) GetRoutineReport(_ context.Context, date string) (*models.RoutineReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.routineReports {
		if r.Date == date {
			rr := r
			return &rr, nil
		}
	}
	return nil, nil
}

func (m *Memory) ListRoutineReports(_ context.Context) ([]models.RoutineReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.RoutineReport, len(m.routineReports))
	copy(out, m.routineReports)
	return out, nil
}

func (m *Memory) PruneRoutineReports(_ context.Context, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if keep >= 0 && len(m.routineReports) > keep {
		m.routineReports = append([]models.RoutineReport(nil), m.routineReports[len(m.routineReports)-keep:]...)
	}
	return nil
}

func (m *Memory) DeleteRoutineReport(_ context.Context, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.routineReports {
		if r.Date == date {
			m.routineReports = append(m.routineReports[:i], m.routineReports[i+1:]...)
			return nil
		}
	}
	return nil
}

var _ Store = (*Memory)(nil)
