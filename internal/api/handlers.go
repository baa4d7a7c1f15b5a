package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/errs"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/haccp"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/notify"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/report"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/routine"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/store"
)

type Handler struct {
	store      store.Store
	synth      *report.Synthesizer
	ctrl       *routine.Controller
	hub        *notify.Hub
	classifier *haccp.Classifier
	logger     *logrus.Logger
}

func NewHandler(st store.Store, synth *report.Synthesizer, ctrl *routine.Controller, hub *notify.Hub, logger *logrus.Logger) *Handler {
	return &Handler{
		store:      st,
		synth:      synth,
		ctrl:       ctrl,
		hub:        hub,
		classifier: haccp.NewClassifier(),
		logger:     logger,
	}
}

// fail translates domain errors to HTTP status codes.
func (h *Handler) fail(c *gin.Context, err error) {
	var verr *errs.ValidationError
	var perr *errs.PrerequisiteError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.As(err, &perr):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": perr.Error()})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, errs.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already recorded"})
	case errors.Is(err, errs.ErrDayLocked):
		c.JSON(http.StatusLocked, gin.H{"error": "task list is closed for the day"})
	default:
		h.logger.Errorf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseDate(raw string) (time.Time, error) {
	day, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, &errs.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return day, nil
}

func (h *Handler) GenerateReport(c *gin.Context) {
	var req struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	day, err := parseDate(req.Date)
	if err != nil {
		h.fail(c, err)
		return
	}

	rep, err := h.synth.Generate(c.Request.Context(), day)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Infof("Generated report for %s: %s", rep.Date, rep.Status)
	c.JSON(http.StatusCreated, rep)
}

func (h *Handler) GetReport(c *gin.Context) {
	date := c.Param("date")
	if _, err := parseDate(date); err != nil {
		h.fail(c, err)
		return
	}
	ctx := c.Request.Context()

	rep, err := h.store.GetReport(ctx, date)
	if err != nil {
		h.fail(c, err)
		return
	}
	if rep == nil {
		h.fail(c, errs.ErrNotFound)
		return
	}

	readings, err := h.store.GetReadingsForDate(ctx, date)
	if err != nil {
		h.fail(c, err)
		return
	}
	cooling, err := h.store.GetCoolingProcessesForDate(ctx, date)
	if err != nil {
		h.fail(c, err)
		return
	}
	hygiene, err := h.store.GetHygieneChecksForDate(ctx, date)
	if err != nil {
		h.fail(c, err)
		return
	}
	cleaning, err := h.store.GetCompletionsForDate(ctx, date)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":   rep,
		"readings": readings,
		"cooling":  cooling,
		"hygiene":  hygiene,
		"cleaning": cleaning,
	})
}

func (h *Handler) RoutineStatus(c *gin.Context) {
	st, err := h.ctrl.Status(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) CompleteTask(c *gin.Context) {
	var req struct {
		TaskID     string `json:"task_id" binding:"required"`
		EmployeeID string `json:"employee_id" binding:"required"`
		Outcome    string `json:"outcome" binding:"required"`
		Note       string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.ctrl.Complete(c.Request.Context(), req.TaskID, req.EmployeeID, req.Outcome, req.Note); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "recorded"})
}

func (h *Handler) ResetRoutineDay(c *gin.Context) {
	if err := h.ctrl.Reset(c.Request.Context(), c.Param("date")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reset"})
}

func (h *Handler) ListRoutineReports(c *gin.Context) {
	reports, err := h.store.ListRoutineReports(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *Handler) GetRoutineReport(c *gin.Context) {
	date := c.Param("date")
	if _, err := parseDate(date); err != nil {
		h.fail(c, err)
		return
	}
	rep, err := h.store.GetRoutineReport(c.Request.Context(), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	if rep == nil {
		h.fail(c, errs.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// Classify evaluates an ad-hoc measurement against an equipment range,
// for hand-held probe checks that are not tied to a stored reading.
func (h *Handler) Classify(c *gin.Context) {
	var req struct {
		// Pointers so zero-degree values pass required validation.
		Value *float64 `json:"value" binding:"required"`
		Min   *float64 `json:"min" binding:"required"`
		Max   *float64 `json:"max" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, err := h.classifier.Classify(*req.Value, *req.Min, *req.Max)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "label": status.Label()})
}

// ClassifyDishwasher evaluates a wash/dry temperature pair against the
// fixed dishwasher bands.
func (h *Handler) ClassifyDishwasher(c *gin.Context) {
	var req struct {
		Wash *float64 `json:"wash" binding:"required"`
		Dry  *float64 `json:"dry" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, err := h.classifier.ClassifyDishwasher(*req.Wash, *req.Dry)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "label": status.Label()})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Displays live on the kitchen LAN; no origin restriction.
	CheckOrigin: func(*http.Request) bool { return true },
}

// AlertsWebSocket upgrades the connection and registers it with the alert
// hub. The connection is read-drained so pings and closes are handled.
func (h *Handler) AlertsWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("websocket upgrade failed: %v", err)
		return
	}
	h.hub.Add(conn)

	go func() {
		defer func() {
			h.hub.Remove(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
