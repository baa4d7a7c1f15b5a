package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/notify"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/report"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/routine"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/store"
)

func NewRouter(st store.Store, synth *report.Synthesizer, ctrl *routine.Controller, hub *notify.Hub, logger *logrus.Logger, basePath string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	h := NewHandler(st, synth, ctrl, hub, logger)
	api := r.Group(basePath)
	{
		// Daily compliance reports
		api.POST("/reports/generate", h.GenerateReport)
		api.GET("/reports/:date", h.GetReport)

		// Ad-hoc classification
		api.POST("/classify", h.Classify)
		api.POST("/classify/dishwasher", h.ClassifyDishwasher)

		// Routine task list
		api.GET("/routine/status", h.RoutineStatus)
		api.POST("/routine/complete", h.CompleteTask)
		api.POST("/routine/reset/:date", h.ResetRoutineDay)
		api.GET("/routine/reports", h.ListRoutineReports)
		api.GET("/routine/reports/:date", h.GetRoutineReport)
	}

	// Kitchen displays subscribe here for escalation alerts.
	r.GET("/ws/alerts", h.AlertsWebSocket)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
