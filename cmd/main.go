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

	createBookingHandler "github.com/barberx/BarberX-BookingService/internal/api/handlers/create_booking"
	createServiceHandler "github.com/barberx/BarberX-BookingService/internal/api/handlers/create_service"
	deleteBookingHandler "github.com/barberx/BarberX-BookingService/internal/api/handlers/delete_booking"
	deleteServiceHandler "github.com/barberx/BarberX-BookingService/internal/api/handlers/delete_service"
	exportBookingsHandler "github.com/barberx/BarberX-BookingService/internal/api/handlers/export_bookings"
	getBookingHandler "github.com/barberx/BarberX-BookingService/internal/api/handlers/get_booking"
	getServiceHandler "github.com/barberx/BarberX-BookingService/internal/api/handlers/get_service"
	listBookingsHandler "github.com/barberx/BarberX-BookingService/internal/api/handlers/list_bookings"
	listServicesHandler "github.com/barberx/BarberX-BookingService/internal/api/handlers/list_services"
	loginHandler "github.com/barberx/BarberX-BookingService/internal/api/handlers/login"
	updateBookingStatusHandler "github.com/barberx/BarberX-BookingService/internal/api/handlers/update_booking_status"
	updateServiceHandler "github.com/barberx/BarberX-BookingService/internal/api/handlers/update_service"
	"github.com/barberx/BarberX-BookingService/internal/api/middleware"
	"github.com/barberx/BarberX-BookingService/internal/config"
	"github.com/barberx/BarberX-BookingService/internal/infra/cache"
	"github.com/barberx/BarberX-BookingService/internal/infra/events"
	adminRepo "github.com/barberx/BarberX-BookingService/internal/infra/storage/admin"
	bookingRepo "github.com/barberx/BarberX-BookingService/internal/infra/storage/booking"
	serviceRepo "github.com/barberx/BarberX-BookingService/internal/infra/storage/service"
	authService "github.com/barberx/BarberX-BookingService/internal/service/auth"
	bookingsService "github.com/barberx/BarberX-BookingService/internal/service/bookings"
	catalogService "github.com/barberx/BarberX-BookingService/internal/service/catalog"
	createBookingUC "github.com/barberx/BarberX-BookingService/internal/usecase/create_booking"
	"github.com/barberx/BarberX-BookingService/pkg/dbmetrics"
	"github.com/barberx/BarberX-BookingService/pkg/logger"
	"github.com/barberx/BarberX-BookingService/pkg/metrics"
	"github.com/barberx/BarberX-BookingService/pkg/simpletxmanager"
	"github.com/barberx/BarberX-BookingService/pkg/txmanager"
)

const serviceCacheSize = 128

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

	log.Info("Starting BarberX-BookingService...")
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

	// Подключаемся к брокеру событий (опционально)
	var publisher *events.Publisher
	if cfg.Events.URL != "" {
		publisher, err = events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to event broker: %v", err)
		}
		defer publisher.Close()
		log.Info("Event publisher connected (exchange=%s)", cfg.Events.Exchange)
	} else {
		log.Warn("Event broker URL is empty, events are disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		serviceRepository *serviceRepo.Repository
		adminRepository   *adminRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		adminRepository = adminRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		adminRepository = adminRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// LRU кеш каталога услуг поверх репозитория
	serviceCache, err := cache.NewServiceCache(serviceRepository, serviceCacheSize, log)
	if err != nil {
		log.Fatal("Failed to initialize service cache: %v", err)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, publisher, log)
	catalogSvc := catalogService.NewService(serviceRepository, serviceCache, log)
	authSvc := authService.NewService(
		adminRepository,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		serviceCache,
		txMgr,
		publisher,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(bookingSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	login := loginHandler.NewHandler(authSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins, cfg.CORS.MaxAgeSeconds))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}", getService.Handle).Methods(http.MethodGet)

	// Создание бронирования и просмотр расписания
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)

	// Вход администратора
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют Bearer токен)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(authSvc))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/export", exportBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/status", updateBookingStatus.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{id}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Каталог услуг ---
	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", updateService.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", deleteService.Handle).Methods(http.MethodDelete)

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
