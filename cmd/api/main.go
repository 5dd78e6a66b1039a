package main

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hrms-api/internal/auth"
	"github.com/hrms-api/internal/calendar"
	"github.com/hrms-api/internal/config"
	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/handler"
	"github.com/hrms-api/internal/repository"
	"github.com/hrms-api/internal/repository/memory"
	"github.com/hrms-api/internal/service"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// repositories is the storage backend selected by STORAGE_DRIVER.
type repositories struct {
	employees  repository.EmployeeRepository
	attendance repository.AttendanceRepository
	leaves     repository.LeaveRepository
	payroll    repository.PayrollRepository
	close      func() error
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	repos, err := openStorage(cfg)
	if err != nil {
		logger.Error("failed to open storage", slog.String("driver", cfg.Storage.Driver), slog.Any("error", err))
		os.Exit(1)
	}
	defer repos.close()

	loc := calendar.LoadLocation(cfg.App.Timezone)
	if loc.String() != cfg.App.Timezone {
		logger.Warn("unknown timezone, using UTC", slog.String("timezone", cfg.App.Timezone))
	}
	clock := calendar.NewClock(loc)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)

	empService := service.NewEmployeeService(repos.employees, tokens, clock, service.LeaveDefaults{
		Paid: cfg.App.DefaultPaidLeave,
		Sick: cfg.App.DefaultSickLeave,
	}, logger)
	attendanceService := service.NewAttendanceService(repos.attendance, repos.employees, clock)
	leaveService := service.NewLeaveService(repos.leaves, repos.employees, clock)
	payrollService := service.NewPayrollService(repos.payroll, repos.employees, clock, cfg.App.OrgName)
	dashboardService := service.NewDashboardService(repos.employees, repos.attendance, repos.leaves, clock)

	if cfg.Admin.Email != "" {
		if err := empService.EnsureAdmin(context.Background(), cfg.Admin.Code, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			logger.Error("failed to create bootstrap admin", slog.Any("error", err))
			os.Exit(1)
		}
	}

	router := handler.NewRouter(handler.Handlers{
		Auth:       handler.NewAuthHandler(empService, dashboardService, logger),
		Employee:   handler.NewEmployeeHandler(empService, logger),
		Attendance: handler.NewAttendanceHandler(attendanceService, logger),
		Leave:      handler.NewLeaveHandler(leaveService, logger),
		Payroll:    handler.NewPayrollHandler(payrollService, logger),
	}, empService, cfg.Server.AllowedOrigins, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info("server is starting",
		slog.String("port", cfg.Server.Port),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("timezone", loc.String()),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}

func openStorage(cfg *config.Config) (*repositories, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		return &repositories{
			employees:  store.Employees(),
			attendance: store.Attendance(),
			leaves:     store.Leaves(),
			payroll:    store.Payroll(),
			close:      func() error { return nil },
		}, nil

	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.Storage.SQLitePath+"?_foreign_keys=on&_busy_timeout=5000"), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := db.AutoMigrate(&domain.Employee{}, &domain.AttendanceRecord{}, &domain.LeaveRequest{}, &domain.PayrollRecord{}); err != nil {
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return gormRepositories(db)

	default:
		db, err := connectDB(cfg.Database)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := runMigrations(sqlDB); err != nil {
			return nil, err
		}
		return gormRepositories(db)
	}
}

func gormRepositories(db *gorm.DB) (*repositories, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return &repositories{
		employees:  repository.NewEmployeeRepository(db),
		attendance: repository.NewAttendanceRepository(db),
		leaves:     repository.NewLeaveRepository(db),
		payroll:    repository.NewPayrollRepository(db),
		close:      sqlDB.Close,
	}, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for range 30 {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig())
		if err == nil {
			sqlDB, _ := db.DB()
			if sqlDB.Ping() == nil {
				return db, nil
			}
		}
		time.Sleep(time.Second)
	}

	return nil, fmt.Errorf("failed to connect to database after 30 attempts: %w", err)
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
