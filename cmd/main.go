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

	cancelBookingHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/cancel_booking"
	checkConflictHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/check_conflict"
	createBookingHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/create_booking"
	freezeSlotHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/freeze_slot"
	getBookedSlotsHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/get_booked_slots"
	getBookingHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/get_booking"
	getFrozenSlotsHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/get_frozen_slots"
	getGroundBookingsHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/get_ground_bookings"
	unfreezeSlotHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/unfreeze_slot"
	updateBookingStatusHandler "github.com/m04kA/SMC-GroundBookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-GroundBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroundBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/booking"
	frozenSlotRepo "github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/frozenslot"
	bookingsService "github.com/m04kA/SMC-GroundBookingService/internal/service/bookings"
	frozenSlotsService "github.com/m04kA/SMC-GroundBookingService/internal/service/frozenslots"
	checkConflictUC "github.com/m04kA/SMC-GroundBookingService/internal/usecase/check_conflict"
	getDayScheduleUC "github.com/m04kA/SMC-GroundBookingService/internal/usecase/get_day_schedule"
	reserveSlotsUC "github.com/m04kA/SMC-GroundBookingService/internal/usecase/reserve_slots"
	"github.com/m04kA/SMC-GroundBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroundBookingService/pkg/logger"
	"github.com/m04kA/SMC-GroundBookingService/pkg/metrics"
	"github.com/m04kA/SMC-GroundBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-GroundBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-GroundBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Оборачиваем БД: с метриками или без
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	frozenSlotRepository := frozenSlotRepo.NewRepository(wrappedDB)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	// Выбираем путь координатора: транзакционный или деградированный.
	// В деградированном режиме гонки между проверкой и вставкой ловит
	// только уникальный индекс booking_slots.
	if cfg.Database.TransactionsEnabled {
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Transactional reservation path enabled (SERIALIZABLE)")
	} else {
		txMgr = simpletxmanager.NewTransactionManager()
		log.Warn("Transactions disabled: running degraded reservation path")
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)
	frozenSlotSvc := frozenSlotsService.NewService(frozenSlotRepository, log)

	// Инициализируем use cases
	reserveSlotsUseCase := reserveSlotsUC.NewUseCase(
		bookingRepository,
		frozenSlotRepository,
		txMgr,
		log,
	)

	checkConflictUseCase := checkConflictUC.NewUseCase(
		bookingRepository,
		frozenSlotRepository,
		txMgr,
		log,
	)

	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		bookingRepository,
		frozenSlotRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(reserveSlotsUseCase, log)
	checkConflict := checkConflictHandler.NewHandler(checkConflictUseCase, log)
	getBookedSlots := getBookedSlotsHandler.NewHandler(getDayScheduleUseCase, log)
	getFrozenSlots := getFrozenSlotsHandler.NewHandler(getDayScheduleUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getGroundBookings := getGroundBookingsHandler.NewHandler(bookingSvc, log)
	freezeSlot := freezeSlotHandler.NewHandler(frozenSlotSvc, log)
	unfreezeSlot := unfreezeSlotHandler.NewHandler(frozenSlotSvc, log)

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
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Занятые слоты поля на дату (все виды спорта)
	api.HandleFunc("/grounds/{ground}/booked-slots", getBookedSlots.Handle).Methods(http.MethodGet)

	// Административные блокировки поля на дату
	api.HandleFunc("/grounds/{ground}/frozen-slots", getFrozenSlots.Handle).Methods(http.MethodGet)

	// Проверка слотов без резервирования
	api.HandleFunc("/bookings/check", checkConflict.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Атомарное резервирование слотов
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Управление полем (для менеджеров) ---
	// Список бронирований поля с фильтрацией
	protected.HandleFunc("/grounds/{ground}/bookings", getGroundBookings.Handle).Methods(http.MethodGet)

	// Административная блокировка слота
	protected.HandleFunc("/frozen-slots", freezeSlot.Handle).Methods(http.MethodPost)

	// Снятие блокировки
	protected.HandleFunc("/frozen-slots/{frozenSlotId}/deactivate", unfreezeSlot.Handle).Methods(http.MethodPatch)

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

	// Останавливаем сбор метрик connection pool
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
