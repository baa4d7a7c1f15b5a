package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/api"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/config"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/db"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/logging"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/notify"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/report"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/routine"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/scheduler"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/store"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Config load failed:", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Log.Dir, cfg.Log.Level)
	if err != nil {
		log.Fatal("Logger init failed:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Pick the store: PostgreSQL when a DSN is configured, otherwise the
	// seeded in-memory store for demo runs.
	var st store.Store
	if cfg.DB.DSN != "" {
		dbConn, err := db.New(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatalf("DB connect failed: %v", err)
		}
		defer dbConn.Close()
		st = dbConn
		logger.Info("connected to PostgreSQL")
	} else {
		mem := store.NewMemory()
		seedDemoData(mem)
		st = mem
		logger.Warn("DB_DSN not set, running on the in-memory store with demo data")
	}

	// Routine clock settings
	unlockAt, err := routine.ParseClockTime(cfg.Routine.UnlockAt)
	if err != nil {
		logger.Fatalf("Invalid ROUTINE_UNLOCK_AT: %v", err)
	}
	escCfg, err := escalationConfig(cfg)
	if err != nil {
		logger.Fatalf("Invalid escalation hours: %v", err)
	}

	synth := report.NewSynthesizer(st, logger, nil)
	ctrl := routine.NewController(st, logger, routine.Config{
		UnlockAt:  unlockAt,
		Retention: cfg.Routine.Retention,
	})

	// Alert channels
	hub := notify.NewHub(logger)
	channels := []notify.Notifier{hub}
	if cfg.Telegram.BotToken != "" {
		tg, err := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.RatePerSecond, logger)
		if err != nil {
			logger.Fatalf("Telegram init failed: %v", err)
		}
		channels = append(channels, tg)
	}
	if cfg.Email.SMTPServer != "" {
		mail, err := notify.NewEmail(notify.EmailConfig{
			SMTPServer: cfg.Email.SMTPServer,
			SMTPPort:   cfg.Email.SMTPPort,
			Username:   cfg.Email.Username,
			Password:   cfg.Email.Password,
			To:         cfg.Email.To,
		}, logger)
		if err != nil {
			logger.Fatalf("Email init failed: %v", err)
		}
		channels = append(channels, mail)
	}
	if cfg.Kafka.Broker != "" {
		kw := notify.NewKafka(cfg.Kafka.Broker, cfg.Kafka.Topic, logger)
		defer kw.Close()
		channels = append(channels, kw)
	}
	fanout := notify.NewFanout(logger, channels...)

	// Escalation tick
	esc := routine.NewEscalator(ctrl, escCfg, fanout, logger, nil)
	sched, err := scheduler.Start(esc, logger)
	if err != nil {
		logger.Fatalf("Scheduler start failed: %v", err)
	}

	// Start API server
	r := api.NewRouter(st, synth, ctrl, hub, logger, cfg.API.BasePath)
	go func() {
		logger.Infof("API started on %s", cfg.API.Port)
		if err := r.Run(cfg.API.Port); err != nil {
			logger.Errorf("API run failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Info("Shutting down...")
	cancel()
	if err := sched.Shutdown(); err != nil {
		logger.Errorf("Scheduler shutdown failed: %v", err)
	}
	logger.Info("Service stopped")
}

func escalationConfig(cfg config.Config) (routine.EscalationConfig, error) {
	warn, err := routine.ParseClockTime(cfg.Routine.WarningAt)
	if err != nil {
		return routine.EscalationConfig{}, err
	}
	danger, err := routine.ParseClockTime(cfg.Routine.DangerAt)
	if err != nil {
		return routine.EscalationConfig{}, err
	}
	critical, err := routine.ParseClockTime(cfg.Routine.CriticalAt)
	if err != nil {
		return routine.EscalationConfig{}, err
	}
	ec := routine.EscalationConfig{WarningAt: warn, DangerAt: danger, CriticalAt: critical}
	return ec, ec.Validate()
}
