package api

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/notify"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/report"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/routine"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/store"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestRouter(t *testing.T) (*gin.Engine, *store.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := store.NewMemory()
	m.AddEquipment(
		models.EquipmentSpec{ID: "eq-1", Name: "Kjøleskap 1", MinTemp: 0, MaxTemp: 4, Active: true},
		models.EquipmentSpec{ID: "eq-2", Name: "Fryser 1", MinTemp: -22, MaxTemp: -18, Active: true},
	)
	m.AddStaff(
		models.Employee{ID: "emp-1", Name: "Maria", Role: models.RoleSupervisor, Active: true},
		models.Employee{ID: "emp-2", Name: "Jonas", Role: models.RoleSupervisor, Active: true},
	)
	m.AddTasks(
		models.RoutineTask{ID: "task-1", NameNo: "Vask benker", SortOrder: 1, Active: true, Recurrence: models.RecurDaily},
		models.RoutineTask{ID: "task-2", NameNo: "Tøm søppel", SortOrder: 2, Active: true, Recurrence: models.RecurDaily},
	)

	logger := testLogger()
	synth := report.NewSynthesizer(m, logger, rand.New(rand.NewSource(7)))
	noon := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	ctrl := routine.NewController(m, logger, routine.Config{Now: func() time.Time { return noon }})
	hub := notify.NewHub(logger)

	return NewRouter(m, synth, ctrl, hub, logger, "/api/v1"), m
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	t.Parallel()
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateAndGetReport(t *testing.T) {
	t.Parallel()
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/reports/generate", gin.H{"date": "2025-03-03"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var rep models.DailyReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, "2025-03-03", rep.Date)
	assert.NotEmpty(t, rep.ID)

	w = doJSON(r, http.MethodGet, "/api/v1/reports/2025-03-03", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Report   models.DailyReport          `json:"report"`
		Readings []models.TemperatureReading `json:"readings"`
		Cooling  []models.CoolingProcess     `json:"cooling"`
		Hygiene  []models.HygieneCheck       `json:"hygiene"`
		Cleaning []models.TaskCompletion     `json:"cleaning"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, rep.ID, payload.Report.ID)
	assert.Len(t, payload.Readings, 2)
	assert.NotEmpty(t, payload.Cooling)
	assert.Len(t, payload.Hygiene, 2)
	assert.Len(t, payload.Cleaning, 2)
}

func TestGenerateReportValidation(t *testing.T) {
	t.Parallel()
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/reports/generate", gin.H{"date": "03.03.2025"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/reports/generate", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateReportMissingPrerequisites(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	m := store.NewMemory() // no equipment, staff or tasks
	logger := testLogger()
	synth := report.NewSynthesizer(m, logger, rand.New(rand.NewSource(7)))
	ctrl := routine.NewController(m, logger, routine.Config{})
	r := NewRouter(m, synth, ctrl, notify.NewHub(logger), logger, "/api/v1")

	w := doJSON(r, http.MethodPost, "/api/v1/reports/generate", gin.H{"date": "2025-03-03"})
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
}

func TestGetReportNotFound(t *testing.T) {
	t.Parallel()
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/reports/2025-03-03", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutineFlow(t *testing.T) {
	t.Parallel()
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/routine/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var st routine.DayStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, 2, st.Incomplete)
	assert.False(t, st.Closed)

	complete := func(taskID string) *httptest.ResponseRecorder {
		return doJSON(r, http.MethodPost, "/api/v1/routine/complete", gin.H{
			"task_id":     taskID,
			"employee_id": "emp-1",
			"outcome":     models.OutcomeCompleted,
		})
	}

	require.Equal(t, http.StatusCreated, complete("task-1").Code)

	// Remarking the same task conflicts.
	assert.Equal(t, http.StatusConflict, complete("task-1").Code)

	// Unknown task is rejected.
	assert.Equal(t, http.StatusNotFound, complete("task-99").Code)

	// Last task closes the day and locks further completions out.
	require.Equal(t, http.StatusCreated, complete("task-2").Code)
	assert.Equal(t, http.StatusLocked, complete("task-1").Code)

	w = doJSON(r, http.MethodGet, "/api/v1/routine/reports/2025-03-03", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rep models.RoutineReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, 2, rep.Completed)
	assert.Equal(t, 100.0, rep.Percentage)
	assert.Len(t, rep.Details, 2)

	// Reset reopens the day.
	w = doJSON(r, http.MethodPost, "/api/v1/routine/reset/2025-03-03", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusCreated, complete("task-1").Code)
}

func TestClassifyEndpoints(t *testing.T) {
	t.Parallel()
	r, _ := newTestRouter(t)

	tests := []struct {
		name string
		path string
		body gin.H
		want string
	}{
		{name: "in range", path: "/api/v1/classify", body: gin.H{"value": 3.0, "min": 0.0, "max": 4.0}, want: "safe"},
		{name: "zero value in range", path: "/api/v1/classify", body: gin.H{"value": 0.0, "min": 0.0, "max": 4.0}, want: "safe"},
		{name: "within band", path: "/api/v1/classify", body: gin.H{"value": 5.5, "min": 0.0, "max": 4.0}, want: "warning"},
		{name: "beyond band", path: "/api/v1/classify", body: gin.H{"value": 9.0, "min": 0.0, "max": 4.0}, want: "danger"},
		{name: "dishwasher both ok", path: "/api/v1/classify/dishwasher", body: gin.H{"wash": 62.0, "dry": 82.0}, want: "safe"},
		{name: "dishwasher one off", path: "/api/v1/classify/dishwasher", body: gin.H{"wash": 50.0, "dry": 82.0}, want: "warning"},
		{name: "dishwasher both off", path: "/api/v1/classify/dishwasher", body: gin.H{"wash": 50.0, "dry": 95.0}, want: "danger"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var resp struct {
				Status string `json:"status"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Status)
		})
	}

	// Inverted range is a validation error.
	w := doJSON(r, http.MethodPost, "/api/v1/classify", gin.H{"value": 3.0, "min": 10.0, "max": 4.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteTaskValidation(t *testing.T) {
	t.Parallel()
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/routine/complete", gin.H{
		"task_id":     "task-1",
		"employee_id": "emp-1",
		"outcome":     "done",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
