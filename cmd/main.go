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

	cancelEventHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_event"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	createEventHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_event"
	createEventTypeHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_event_type"
	deleteEventTypeHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_event_type"
	getEventHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_event"
	getEventTypeHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_event_type"
	getHostAvailabilityHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_host_availability"
	getPublicAvailabilityHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_public_availability"
	getPublicBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_public_booking"
	getPublicEventTypeHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_public_event_type"
	getSettingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_settings"
	listEventTypesHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_event_types"
	listEventsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_events"
	updateEventHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_event"
	updateEventTypeHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_event_type"
	updateSettingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
	eventTypeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/eventtype"
	outboxRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/outbox"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	mailerClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/mailer"
	smsClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/smsgateway"
	"github.com/m04kA/SMC-SchedulingService/internal/notify"
	eventsService "github.com/m04kA/SMC-SchedulingService/internal/service/events"
	eventTypesService "github.com/m04kA/SMC-SchedulingService/internal/service/eventtypes"
	userSettingsService "github.com/m04kA/SMC-SchedulingService/internal/service/usersettings"
	cancelEventUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_event"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
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

	log.Info("Starting SMC-SchedulingService...")
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

	// Инициализируем интеграционных клиентов
	mailer := mailerClient.NewClient(
		cfg.Mailer.URL,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		cfg.Mailer.FromEmail,
		cfg.Mailer.FromName,
		log,
	)
	sms := smsClient.NewClient(
		cfg.SMSGateway.URL,
		time.Duration(cfg.SMSGateway.Timeout)*time.Second,
		cfg.SMSGateway.FromNumber,
		log,
	)
	log.Info("Integration clients initialized (Mailer=%s timeout=%ds, SMSGateway=%s timeout=%ds)",
		cfg.Mailer.URL, cfg.Mailer.Timeout, cfg.SMSGateway.URL, cfg.SMSGateway.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		eventRepository     *eventRepo.Repository
		eventTypeRepository *eventTypeRepo.Repository
		settingsRepository  *settingsRepo.Repository
		outboxRepository    *outboxRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		eventRepository = eventRepo.NewRepository(wrappedDB)
		eventTypeRepository = eventTypeRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		outboxRepository = outboxRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		eventRepository = eventRepo.NewRepository(db)
		eventTypeRepository = eventTypeRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		outboxRepository = outboxRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	eventTypesSvc := eventTypesService.NewService(eventTypeRepository, log)
	settingsSvc := userSettingsService.NewService(settingsRepository, log)
	eventsSvc := eventsService.NewService(
		eventRepository,
		txMgr,
		eventsService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		eventTypeRepository,
		eventRepository,
		settingsSvc,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		eventTypeRepository,
		eventRepository,
		outboxRepository,
		settingsSvc,
		txMgr,
		log,
	)
	cancelEventUseCase := cancelEventUC.NewUseCase(
		eventRepository,
		outboxRepository,
		settingsSvc,
		txMgr,
		log,
	)

	// Фоновый воркер доставки уведомлений
	notifyWorker := notify.NewWorker(
		outboxRepository,
		mailer,
		sms,
		txMgr,
		notify.Config{
			Interval:       time.Duration(cfg.Notifications.WorkerInterval) * time.Second,
			BatchSize:      cfg.Notifications.BatchSize,
			MaxAttempts:    cfg.Notifications.MaxAttempts,
			RetryBaseDelay: time.Duration(cfg.Notifications.RetryBaseDelay) * time.Millisecond,
		},
		log,
	)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	go notifyWorker.Run(workerCtx)

	// Инициализируем handlers
	getPublicEventType := getPublicEventTypeHandler.NewHandler(eventTypesSvc, settingsSvc, log)
	getPublicAvailability := getPublicAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getPublicBooking := getPublicBookingHandler.NewHandler(eventsSvc, log)

	createEventType := createEventTypeHandler.NewHandler(eventTypesSvc, log)
	listEventTypes := listEventTypesHandler.NewHandler(eventTypesSvc, log)
	getEventType := getEventTypeHandler.NewHandler(eventTypesSvc, log)
	updateEventType := updateEventTypeHandler.NewHandler(eventTypesSvc, log)
	deleteEventType := deleteEventTypeHandler.NewHandler(eventTypesSvc, log)
	getHostAvailability := getHostAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)

	listEvents := listEventsHandler.NewHandler(eventsSvc, log)
	getEvent := getEventHandler.NewHandler(eventsSvc, log)
	createEvent := createEventHandler.NewHandler(eventsSvc, log)
	updateEvent := updateEventHandler.NewHandler(eventsSvc, log)
	cancelEvent := cancelEventHandler.NewHandler(cancelEventUseCase, log)

	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

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

	// Страница бронирования: тип события по slug или ID
	api.HandleFunc("/public/event-types/{identifier}",
		getPublicEventType.Handle).Methods(http.MethodGet)

	// Свободные слоты типа события
	api.HandleFunc("/public/event-types/{eventTypeId:[0-9]+}/availability",
		getPublicAvailability.Handle).Methods(http.MethodGet)

	// Запись на встречу
	api.HandleFunc("/public/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Страница подтверждения бронирования
	api.HandleFunc("/public/bookings/{bookingId}", getPublicBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Типы событий ---
	protected.HandleFunc("/event-types", createEventType.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/event-types", listEventTypes.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/event-types/{eventTypeId}", getEventType.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/event-types/{eventTypeId}", updateEventType.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/event-types/{eventTypeId}", deleteEventType.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/event-types/{eventTypeId}/availability", getHostAvailability.Handle).Methods(http.MethodGet)

	// --- Календарь событий ---
	protected.HandleFunc("/events", listEvents.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/events", createEvent.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/events/{eventId}", getEvent.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/events/{eventId}", updateEvent.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/events/{eventId}/cancel", cancelEvent.Handle).Methods(http.MethodDelete)

	// --- Настройки ---
	protected.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

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

	// Останавливаем воркер уведомлений
	stopWorker()

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
