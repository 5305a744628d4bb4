package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/config"
	httpHandler "github.com/saifullah-max/pegahcm-backend-sub000/internal/handler/http"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/cron"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/database"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/jwt"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/sse"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/repository/postgresql"
	attendanceService "github.com/saifullah-max/pegahcm-backend-sub000/internal/service/attendance"
	fixrequestService "github.com/saifullah-max/pegahcm-backend-sub000/internal/service/fixrequest"
	leaveService "github.com/saifullah-max/pegahcm-backend-sub000/internal/service/leave"
	notificationService "github.com/saifullah-max/pegahcm-backend-sub000/internal/service/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "pegahcm"),
		slog.String("env", cfg.App.Env),
	)

	loc, err := time.LoadLocation(cfg.AutoCheckout.Timezone)
	if err != nil {
		logger.Error("failed to load timezone", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	recordRepo := postgresql.NewAttendanceRecordRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	breakTypeRepo := postgresql.NewBreakTypeRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	fixRequestRepo := postgresql.NewFixRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	// Services
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	notifSvc := notificationService.NewNotificationService(notificationRepo, userRepo, hub, logger)
	defer notifSvc.Stop()

	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo, notifSvc, logger, loc)
	attendanceSvc := attendanceService.NewAttendanceService(
		recordRepo, breakRepo, breakTypeRepo, employeeRepo, leaveSvc, loc)
	gate := fixrequestService.NewHierarchyGate(userRepo)
	fixRequestSvc := fixrequestService.NewFixRequestService(
		db, fixRequestRepo, recordRepo, breakRepo, employeeRepo, userRepo,
		gate, leaveSvc, notifSvc, logger, loc)

	// Daily auto-checkout pass
	locker := postgresql.NewAdvisoryLock(db)
	attendanceJobs := cron.NewAttendanceJobs(
		recordRepo, breakRepo, shiftRepo, employeeRepo, userRepo,
		locker, postgresql.AutoCheckoutLockKey, notifSvc, logger)
	scheduler := cron.NewScheduler(cfg.AutoCheckout.Time, loc, logger)
	scheduler.Register("auto-checkout", func(ctx context.Context) error {
		_, err := attendanceJobs.RunAutoCheckout(ctx, time.Now(), loc)
		return err
	})
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP surface
	router := httpHandler.NewRouter(
		logger,
		jwtService,
		httpHandler.NewAttendanceHandler(attendanceSvc),
		httpHandler.NewFixRequestHandler(fixRequestSvc),
		httpHandler.NewLeaveHandler(leaveSvc),
		httpHandler.NewNotificationHandler(notifSvc, hub),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.Int("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", slog.Any("error", err))
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
