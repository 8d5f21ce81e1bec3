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
	"github.com/redis/go-redis/v9"

	bookSlotHandler "github.com/m04kA/SMC-EventSlots/internal/api/handlers/book_slot"
	cancelBookingHandler "github.com/m04kA/SMC-EventSlots/internal/api/handlers/cancel_booking"
	createEventHandler "github.com/m04kA/SMC-EventSlots/internal/api/handlers/create_event"
	createSlotHandler "github.com/m04kA/SMC-EventSlots/internal/api/handlers/create_slot"
	deleteEventHandler "github.com/m04kA/SMC-EventSlots/internal/api/handlers/delete_event"
	deleteSlotHandler "github.com/m04kA/SMC-EventSlots/internal/api/handlers/delete_slot"
	getEventHandler "github.com/m04kA/SMC-EventSlots/internal/api/handlers/get_event"
	getEventsHandler "github.com/m04kA/SMC-EventSlots/internal/api/handlers/get_events"
	getSlotHandler "github.com/m04kA/SMC-EventSlots/internal/api/handlers/get_slot"
	getSlotsHandler "github.com/m04kA/SMC-EventSlots/internal/api/handlers/get_slots"
	getStatusHandler "github.com/m04kA/SMC-EventSlots/internal/api/handlers/get_status"
	updateEventHandler "github.com/m04kA/SMC-EventSlots/internal/api/handlers/update_event"
	updateSlotHandler "github.com/m04kA/SMC-EventSlots/internal/api/handlers/update_slot"
	"github.com/m04kA/SMC-EventSlots/internal/api/middleware"
	"github.com/m04kA/SMC-EventSlots/internal/config"
	eventRepo "github.com/m04kA/SMC-EventSlots/internal/infra/storage/event"
	slotRepo "github.com/m04kA/SMC-EventSlots/internal/infra/storage/slot"
	eventsService "github.com/m04kA/SMC-EventSlots/internal/service/events"
	slotsService "github.com/m04kA/SMC-EventSlots/internal/service/slots"
	bookSlotUC "github.com/m04kA/SMC-EventSlots/internal/usecase/book_slot"
	cancelBookingUC "github.com/m04kA/SMC-EventSlots/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-EventSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-EventSlots/pkg/jwtauth"
	"github.com/m04kA/SMC-EventSlots/pkg/keylock"
	"github.com/m04kA/SMC-EventSlots/pkg/logger"
	"github.com/m04kA/SMC-EventSlots/pkg/metrics"
	"github.com/m04kA/SMC-EventSlots/pkg/txmanager"
)

// idRoute числовой идентификатор в пути
const idRoute = "{id:[0-9]+}"

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

	log.Info("Starting SMC-EventSlots (environment=%s)...", cfg.App.Environment)

	// Метрики (если включены)
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Блокировка слотов: в памяти процесса или в Redis для нескольких инстансов
	var slotLocker keylock.Locker
	var redisClient *redis.Client

	switch cfg.Lock.Backend {
	case config.LockBackendRedis:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr(), err)
		}
		slotLocker = keylock.NewRedis(redisClient, keylock.RedisOptions{
			Prefix: cfg.Metrics.ServiceName + ":lock:",
			TTL:    time.Duration(cfg.Lock.TTLSeconds) * time.Second,
		})
		log.Info("Slot locks backed by redis at %s", cfg.Redis.Addr())
	default:
		slotLocker = keylock.NewLocal()
		log.Info("Slot locks kept in process memory")
	}
	slotLocker = keylock.WithAcquireTimeout(slotLocker, time.Duration(cfg.Lock.AcquireTimeoutMs)*time.Millisecond)
	log.Debug("Slot lock settings: backend=%s, acquire_timeout=%dms, ttl=%ds",
		cfg.Lock.Backend, cfg.Lock.AcquireTimeoutMs, cfg.Lock.TTLSeconds)

	issuer := jwtauth.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	// Репозитории
	eventRepository := eventRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)

	// Сервисы
	eventSvc := eventsService.NewService(eventRepository, slotRepository, txMgr, log)
	slotSvc := slotsService.NewService(slotRepository, eventRepository, txMgr, slotLocker, log)

	// Use cases
	bookSlotUseCase := bookSlotUC.NewUseCase(slotRepository, txMgr, slotLocker, metricsCollector, log)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(slotRepository, txMgr, slotLocker, metricsCollector, log)

	// Handlers
	getStatus := getStatusHandler.NewHandler(cfg.App.Environment)
	createEvent := createEventHandler.NewHandler(eventSvc, log)
	updateEvent := updateEventHandler.NewHandler(eventSvc, log)
	deleteEvent := deleteEventHandler.NewHandler(eventSvc, log)
	getEvents := getEventsHandler.NewHandler(eventSvc, log)
	getEvent := getEventHandler.NewHandler(eventSvc, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	getSlots := getSlotsHandler.NewHandler(slotSvc, log)
	getSlot := getSlotHandler.NewHandler(slotSvc, log)
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log), middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/status", getStatus.Handle).Methods(http.MethodGet)

	api.HandleFunc("/events", getEvents.Handle).Methods(http.MethodGet)
	api.HandleFunc("/events/"+idRoute, getEvent.Handle).Methods(http.MethodGet)

	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/event/{eventId:[0-9]+}", getSlots.HandleByEvent).Methods(http.MethodGet)
	api.HandleFunc("/slots/"+idRoute, getSlot.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/"+idRoute+"/book", bookSlot.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (x-auth-token с isAdmin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth(issuer, log), middleware.AdminOnly(log))

	admin.HandleFunc("/events/admin", getEvents.HandleAdmin).Methods(http.MethodGet)
	admin.HandleFunc("/events", createEvent.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/events/"+idRoute, updateEvent.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/events/"+idRoute, deleteEvent.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/"+idRoute, updateSlot.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/slots/"+idRoute, deleteSlot.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/slots/"+idRoute+"/cancel", cancelBooking.Handle).Methods(http.MethodPut)

	// HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	close(stopMetricsCh)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
