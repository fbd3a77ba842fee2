package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/avdmitr/BCA-BookingChecker/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/avdmitr/BCA-BookingChecker/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/avdmitr/BCA-BookingChecker/internal/api/handlers/get_booking"
	getConflictReportHandler "github.com/avdmitr/BCA-BookingChecker/internal/api/handlers/get_conflict_report"
	getStatisticsHandler "github.com/avdmitr/BCA-BookingChecker/internal/api/handlers/get_statistics"
	listBookingsHandler "github.com/avdmitr/BCA-BookingChecker/internal/api/handlers/list_bookings"
	updateBookingHandler "github.com/avdmitr/BCA-BookingChecker/internal/api/handlers/update_booking"
	validateBookingHandler "github.com/avdmitr/BCA-BookingChecker/internal/api/handlers/validate_booking"
	"github.com/avdmitr/BCA-BookingChecker/internal/api/middleware"
	"github.com/avdmitr/BCA-BookingChecker/internal/config"
	bookingRepo "github.com/avdmitr/BCA-BookingChecker/internal/infra/storage/booking"
	userRepo "github.com/avdmitr/BCA-BookingChecker/internal/infra/storage/user"
	bookingsService "github.com/avdmitr/BCA-BookingChecker/internal/service/bookings"
	conflictcheckService "github.com/avdmitr/BCA-BookingChecker/internal/service/conflictcheck"
	statisticsService "github.com/avdmitr/BCA-BookingChecker/internal/service/statistics"
	createBookingUC "github.com/avdmitr/BCA-BookingChecker/internal/usecase/create_booking"
	updateBookingUC "github.com/avdmitr/BCA-BookingChecker/internal/usecase/update_booking"
	"github.com/avdmitr/BCA-BookingChecker/pkg/dbmetrics"
	"github.com/avdmitr/BCA-BookingChecker/pkg/logger"
	"github.com/avdmitr/BCA-BookingChecker/pkg/metrics"
	"github.com/avdmitr/BCA-BookingChecker/pkg/simpletxmanager"
	"github.com/avdmitr/BCA-BookingChecker/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting BCA-BookingChecker...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		userRepository    *userRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	conflictSvc := conflictcheckService.NewService(bookingRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, userRepository, conflictSvc, log)
	statisticsSvc := statisticsService.NewService(bookingRepository, userRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		userRepository,
		conflictSvc,
		txMgr,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		userRepository,
		conflictSvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	validateBooking := validateBookingHandler.NewHandler(bookingSvc, log)
	getConflictReport := getConflictReportHandler.NewHandler(conflictSvc, log)
	getStatistics := getStatisticsHandler.NewHandler(statisticsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// Проверка конкретного бронирования на конфликты
	protected.HandleFunc("/bookings/{bookingId}/validate", validateBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют is_admin)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly(userRepository, log))

	// Полный отчет по конфликтам
	admin.HandleFunc("/conflicts", getConflictReport.Handle).Methods(http.MethodGet)

	// Статистика по бронированиям и регистрациям
	admin.HandleFunc("/statistics", getStatistics.Handle).Methods(http.MethodGet)

	// Фоновая очистка старых бронирований
	stopRetentionCh := make(chan struct{})
	if cfg.Retention.Enabled {
		go runRetentionJob(bookingSvc, cfg.Retention, log, stopRetentionCh)
		log.Info("Retention job started (days=%d, interval=%dh)",
			cfg.Retention.Days, cfg.Retention.IntervalHours)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи
	if cfg.Retention.Enabled {
		close(stopRetentionCh)
		log.Info("Retention job stopped")
	}
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// runRetentionJob периодически удаляет бронирования старше retention.Days дней.
// Первый проход выполняется сразу при старте.
func runRetentionJob(svc *bookingsService.Service, retention config.RetentionConfig,
	log *logger.Logger, stopCh <-chan struct{}) {
	ticker := time.NewTicker(time.Duration(retention.IntervalHours) * time.Hour)
	defer ticker.Stop()

	purge := func() {
		deleted, err := svc.DeleteOldBookings(context.Background(), retention.Days)
		if err != nil {
			log.Error("Retention job failed: %v", err)
			return
		}
		if deleted > 0 {
			log.Info("Retention job deleted %d old bookings", deleted)
		}
	}

	purge()

	for {
		select {
		case <-ticker.C:
			purge()
		case <-stopCh:
			return
		}
	}
}
