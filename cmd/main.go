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

	"github.com/glossline/detailing-booking-service/internal/api/handlers"
	cancelBookingHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/create_booking"
	createServiceHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/create_service"
	createTimeWindowHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/create_time_window"
	deleteTimeWindowHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/delete_time_window"
	getAdminBookingsHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/get_admin_bookings"
	getAvailableSlotsHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/get_customer_bookings"
	listCustomersHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/list_customers"
	listServicesHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/list_services"
	listTimeWindowsHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/list_time_windows"
	rescheduleBookingHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/update_booking_status"
	updateServiceHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/update_service"
	updateTimeWindowHandler "github.com/glossline/detailing-booking-service/internal/api/handlers/update_time_window"
	"github.com/glossline/detailing-booking-service/internal/api/middleware"
	"github.com/glossline/detailing-booking-service/internal/config"
	"github.com/glossline/detailing-booking-service/internal/infra/slotlock"
	bookingRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/booking"
	catalogRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/catalog"
	timewindowRepo "github.com/glossline/detailing-booking-service/internal/infra/storage/timewindow"
	customerClient "github.com/glossline/detailing-booking-service/internal/integrations/customerservice"
	bookingsService "github.com/glossline/detailing-booking-service/internal/service/bookings"
	catalogService "github.com/glossline/detailing-booking-service/internal/service/catalog"
	scheduleService "github.com/glossline/detailing-booking-service/internal/service/schedule"
	createBookingUC "github.com/glossline/detailing-booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/glossline/detailing-booking-service/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/glossline/detailing-booking-service/internal/usecase/reschedule_booking"
	"github.com/glossline/detailing-booking-service/pkg/dbmetrics"
	"github.com/glossline/detailing-booking-service/pkg/logger"
	"github.com/glossline/detailing-booking-service/pkg/metrics"
	"github.com/glossline/detailing-booking-service/pkg/simpletxmanager"
	"github.com/glossline/detailing-booking-service/pkg/txmanager"
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

	log.Info("Starting detailing-booking-service...")
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

	// Клиент сервиса клиентов (профили, роли, гаражи)
	customers := customerClient.NewClient(
		cfg.CustomerService.URL,
		time.Duration(cfg.CustomerService.Timeout)*time.Second,
		log,
	)
	log.Info("CustomerService client initialized (url=%s, timeout=%ds)",
		cfg.CustomerService.URL, cfg.CustomerService.Timeout)

	// Блокировщик слотов: Redis снижает конкуренцию за один слот,
	// при выключенном Redis корректность обеспечивает serializable транзакция
	slotLocker := slotlock.NewNoopLocker()
	if cfg.Redis.Enabled {
		redisClient, err := slotlock.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		slotLocker = slotlock.NewRedisLocker(redisClient, time.Duration(cfg.Redis.LockTTL)*time.Second)
		log.Info("Redis slot locker enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.LockTTL)
	} else {
		log.Info("Redis disabled, slot locking relies on serializable transactions only")
	}

	// Репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository    *bookingRepo.Repository
		catalogRepository    *catalogRepo.Repository
		timewindowRepository *timewindowRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		timewindowRepository = timewindowRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		timewindowRepository = timewindowRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, customers, log)
	catalogSvc := catalogService.NewService(catalogRepository, customers, log)
	scheduleSvc := scheduleService.NewService(timewindowRepository, customers, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		timewindowRepository,
		bookingRepository,
		catalogRepository,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		timewindowRepository,
		catalogRepository,
		customers,
		txMgr,
		slotLocker,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		timewindowRepository,
		customers,
		txMgr,
		slotLocker,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	listCustomers := listCustomersHandler.NewHandler(bookingSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	listTimeWindows := listTimeWindowsHandler.NewHandler(scheduleSvc, log)
	createTimeWindow := createTimeWindowHandler.NewHandler(scheduleSvc, log)
	updateTimeWindow := updateTimeWindowHandler.NewHandler(scheduleSvc, log)
	deleteTimeWindow := deleteTimeWindowHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			log.Error("Health check failed: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, handlers.CodeServerError,
				"база данных недоступна")
			return
		}
		handlers.RespondData(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог активных услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Доступные окна для записи
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Перенос бронирования на другое время
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование студии ---
	// Список бронирований с фильтрами
	protected.HandleFunc("/admin/bookings", getAdminBookings.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования
	protected.HandleFunc("/admin/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Список клиентов студии
	protected.HandleFunc("/admin/customers", listCustomers.Handle).Methods(http.MethodGet)

	// Управление каталогом услуг
	protected.HandleFunc("/admin/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/services/{serviceId}", updateService.Handle).Methods(http.MethodPatch)

	// Управление окнами расписания
	protected.HandleFunc("/admin/time-windows", listTimeWindows.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/time-windows", createTimeWindow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/time-windows/{windowId}", updateTimeWindow.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/admin/time-windows/{windowId}", deleteTimeWindow.Handle).Methods(http.MethodDelete)

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
