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

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SanitationBookingService/internal/api"
	assignTechnicianHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/assign_technician"
	cancelBookingHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/create_booking"
	decidePaymentHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/decide_payment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/get_client_bookings"
	listPendingPaymentsHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/list_pending_payments"
	listServicesHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/list_services"
	rescheduleBookingHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/reschedule_booking"
	"github.com/m04kA/SMC-SanitationBookingService/internal/config"
	"github.com/m04kA/SMC-SanitationBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/booking"
	clientRepo "github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/memory"
	serviceRepo "github.com/m04kA/SMC-SanitationBookingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SanitationBookingService/internal/integrations/events"
	bookingsService "github.com/m04kA/SMC-SanitationBookingService/internal/service/bookings"
	confirmBookingUC "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/confirm_booking"
	createBookingUC "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/create_booking"
	decidePaymentUC "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/decide_payment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/get_available_slots"
	listEligibleServicesUC "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/list_eligible_services"
	rescheduleBookingUC "github.com/m04kA/SMC-SanitationBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/logger"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/slotlock"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/txmanager"
)

const configPath = "config.toml"

// Интерфейсы хранилища, общие для драйверов postgres и memory
type (
	bookingRepository interface {
		Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
		GetByID(ctx context.Context, id int64) (*domain.Booking, error)
		List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
		Update(ctx context.Context, booking *domain.Booking) error
	}
	serviceRepository interface {
		GetByID(ctx context.Context, id int64) (*domain.Service, error)
		List(ctx context.Context, country string) ([]*domain.Service, error)
	}
	clientRepository interface {
		GetByID(ctx context.Context, id int64) (*domain.Client, error)
	}
	transactionManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	eventPublisher interface {
		Publish(ctx context.Context, event events.BookingEvent) error
		Close() error
	}
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SanitationBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Расписание и тарифы
	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Invalid schedule timezone %q: %v", cfg.Schedule.Timezone, err)
	}
	schedule := domain.Schedule{
		OpenHour:         cfg.Schedule.OpenHour,
		CloseHour:        cfg.Schedule.CloseHour,
		LookaheadDays:    cfg.Schedule.LookaheadDays,
		MaxLookaheadDays: cfg.Schedule.MaxLookaheadDays,
		Location:         location,
	}
	pricing, err := cfg.Pricing.Pricing()
	if err != nil {
		log.Fatal("Invalid pricing config: %v", err)
	}

	// Инициализируем хранилище
	var (
		bookings  bookingRepository
		services  serviceRepository
		clients   clientRepository
		txManager transactionManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		if cfg.Storage.SeedFile != "" {
			if err := store.LoadSeed(cfg.Storage.SeedFile); err != nil {
				log.Fatal("Failed to load seed file %s: %v", cfg.Storage.SeedFile, err)
			}
		}
		bookings, services, clients, txManager = store.Bookings(), store.Services(), store.Clients(), store.TxManager()
		log.Warn("Using in-memory storage (seed=%s), data is lost on restart", cfg.Storage.SeedFile)

	default:
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

		// Обёртка замеряет запросы; без метрик она только передаёт вызовы
		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
		}

		bookings = bookingRepo.NewRepository(wrappedDB)
		services = serviceRepo.NewRepository(wrappedDB)
		clients = clientRepo.NewRepository(wrappedDB)
		txManager = txmanager.NewTransactionManager(wrappedDB).WithMaxRetries(cfg.Database.MaxTxRetries)
	}

	// Блокировки слотов
	var locker slotlock.Locker
	switch cfg.SlotLock.Driver {
	case config.SlotLockDriverRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.SlotLock.RedisAddr,
			Password: cfg.SlotLock.RedisPassword,
			DB:       cfg.SlotLock.RedisDB,
		})
		defer redisClient.Close()

		redisLocker := slotlock.NewRedis(redisClient, time.Duration(cfg.SlotLock.TTL)*time.Second)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisLocker.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.SlotLock.RedisAddr, err)
		}
		locker = redisLocker
		log.Info("Redis slot locks enabled (addr=%s, ttl=%ds)", cfg.SlotLock.RedisAddr, cfg.SlotLock.TTL)
	default:
		locker = slotlock.NewLocal()
		log.Info("In-process slot locks enabled")
	}
	locker = slotlock.WithWaitTimeout(locker, time.Duration(cfg.SlotLock.WaitTimeout)*time.Second)

	// События бронирований
	var publisher eventPublisher = events.Noop{}
	if cfg.Events.Enabled {
		amqpPublisher, err := events.NewPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Booking events are published to exchange %s", cfg.Events.Exchange)
	}
	defer publisher.Close()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookings, txManager, publisher, log)

	// Инициализируем use cases
	listServicesUseCase := listEligibleServicesUC.NewUseCase(services, clients, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookings, services, schedule, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookings,
		services,
		clients,
		txManager,
		locker,
		publisher,
		metricsCollector,
		schedule,
		pricing,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookings,
		services,
		txManager,
		locker,
		publisher,
		metricsCollector,
		schedule,
		log,
	)
	decidePaymentUseCase := decidePaymentUC.NewUseCase(bookings, txManager, publisher, metricsCollector, log)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(bookings, txManager, publisher, log)

	// Инициализируем handlers и роутер
	routerCfg := api.RouterConfig{
		AdminAPIKey: cfg.Admin.APIKey,
		MetricsPath: cfg.Metrics.Path,
		ServiceName: cfg.Metrics.ServiceName,
	}
	if cfg.Metrics.Enabled {
		routerCfg.Metrics = metricsCollector
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r := api.NewRouter(api.Handlers{
		ListServices:        listServicesHandler.NewHandler(listServicesUseCase, log),
		GetAvailableSlots:   getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log),
		CreateBooking:       createBookingHandler.NewHandler(createBookingUseCase, log),
		GetBooking:          getBookingHandler.NewHandler(bookingSvc, log),
		CancelBooking:       cancelBookingHandler.NewHandler(bookingSvc, log),
		RescheduleBooking:   rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log),
		GetClientBookings:   getClientBookingsHandler.NewHandler(bookingSvc, log),
		DecidePayment:       decidePaymentHandler.NewHandler(decidePaymentUseCase, log),
		ConfirmBooking:      confirmBookingHandler.NewHandler(confirmBookingUseCase, log),
		AssignTechnician:    assignTechnicianHandler.NewHandler(bookingSvc, log),
		ListPendingPayments: listPendingPaymentsHandler.NewHandler(bookingSvc, log),
	}, routerCfg, log)

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
	close(stopMetricsCh)

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
