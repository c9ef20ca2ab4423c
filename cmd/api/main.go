package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vtab-hr/hr-backend-go/internal/config"
	attendanceDomain "github.com/vtab-hr/hr-backend-go/internal/domain/attendance"
	appHTTP "github.com/vtab-hr/hr-backend-go/internal/handler/http"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/cron"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/database"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/dataverse"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/email"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/jwt"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/realtime"
	dataverseRepo "github.com/vtab-hr/hr-backend-go/internal/repository/dataverse"
	"github.com/vtab-hr/hr-backend-go/internal/repository/postgresql"
	assetService "github.com/vtab-hr/hr-backend-go/internal/service/asset"
	attendanceService "github.com/vtab-hr/hr-backend-go/internal/service/attendance"
	authService "github.com/vtab-hr/hr-backend-go/internal/service/auth"
	employeeService "github.com/vtab-hr/hr-backend-go/internal/service/employee"
	leaveService "github.com/vtab-hr/hr-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	setupLogger(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to prepare database schema: ", err)
	}

	dvClient := dataverse.NewClient(cfg.Dataverse)
	binding := dataverse.Resolve(ctx, dvClient, cfg.Dataverse.EmployeeEntity)

	attendanceRepo := dataverseRepo.NewAttendanceRepository(dvClient)
	activityRepo := dataverseRepo.NewLoginActivityRepository(dvClient)
	leaveRepo := dataverseRepo.NewLeaveRepository(dvClient)
	balanceRepo := dataverseRepo.NewBalanceRepository(dvClient, binding.LeaveBalance)
	employeeRepo := dataverseRepo.NewEmployeeRepository(dvClient, binding)
	loginRepo := dataverseRepo.NewLoginRepository(dvClient)
	assetRepo := dataverseRepo.NewAssetRepository(dvClient)
	sessionStore := postgresql.NewSessionStore(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	emitter := realtime.NewHTTPEmitter(cfg.Realtime.SocketServerURL, cfg.Realtime.EmitTimeout)
	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		activityRepo,
		sessionStore,
		leaveRepo,
		employeeRepo,
		emitter,
		thresholdsFromConfig(cfg.Attendance),
	)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, balanceRepo, employeeRepo, emailSvc, emitter)
	authSvc := authService.NewAuthService(loginRepo, employeeRepo, jwtSvc)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	assetSvc := assetService.NewAssetService(assetRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	assetHandler := appHTTP.NewAssetHandler(assetSvc)
	adminHandler := appHTTP.NewAdminHandler(attendanceSvc)

	router := appHTTP.NewRouter(
		jwtSvc,
		authHandler,
		attendanceHandler,
		leaveHandler,
		employeeHandler,
		assetHandler,
		adminHandler,
		[]string{cfg.App.FrontendURL},
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

func thresholdsFromConfig(cfg config.AttendanceConfig) attendanceDomain.Thresholds {
	return attendanceDomain.Thresholds{
		HalfDaySeconds: int64(cfg.HalfDaySeconds),
		FullDaySeconds: int64(cfg.FullDaySeconds),
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
