package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-TherapyBookingService/internal/api"
	cancelBookingHandler "github.com/m04kA/SMC-TherapyBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-TherapyBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TherapyBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TherapyBookingService/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/SMC-TherapyBookingService/internal/api/handlers/list_bookings"
	rescheduleBookingHandler "github.com/m04kA/SMC-TherapyBookingService/internal/api/handlers/reschedule_booking"
	"github.com/m04kA/SMC-TherapyBookingService/internal/config"
	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/memory"
	paymentRepo "github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/payment"
	slotRepo "github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/slot"
	bookingsService "github.com/m04kA/SMC-TherapyBookingService/internal/service/bookings"
	cancelBookingUC "github.com/m04kA/SMC-TherapyBookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-TherapyBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TherapyBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TherapyBookingService/internal/usecase/release_slot"
	rescheduleBookingUC "github.com/m04kA/SMC-TherapyBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/logger"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/metrics"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/txmanager"
)

// Хранилище, общее для драйверов postgres и memory
type slotStore interface {
	GetByID(ctx context.Context, id string) (*domain.Slot, error)
	FindByTherapistAndWindow(ctx context.Context, therapistID string, start, end time.Time) (*domain.Slot, error)
	SetBooked(ctx context.Context, id string, booked bool) (*domain.Slot, error)
	ListFree(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error)
}

type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, id string, upd domain.BookingUpdate) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

type paymentStore interface {
	Record(ctx context.Context, payment *domain.Payment) error
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type storage struct {
	slots     slotStore
	bookings  bookingStore
	payments  paymentStore
	txManager txManager
	close     func()
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-TherapyBookingService...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	store, err := newStorage(cfg, log, metricsCollector, stopMetricsCh)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Учет платежей опционален
	var payments createBookingUC.PaymentRecorder
	if cfg.Engine.RecordPayments {
		payments = store.payments
		log.Info("Payment recording enabled")
	}

	// Метрики операций движка (nil-интерфейс, если метрики выключены)
	var engineMetrics interface {
		ObserveBookingOperation(operation, result string)
		ObservePaymentRecordFailure()
	}
	if metricsCollector != nil {
		engineMetrics = metricsCollector
	}

	// Инициализируем use cases и сервисы
	releaser := release_slot.NewReleaser(store.slots, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		store.slots,
		store.bookings,
		payments,
		store.txManager,
		engineMetrics,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		store.bookings,
		releaser,
		store.txManager,
		engineMetrics,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		store.bookings,
		store.slots,
		releaser,
		store.txManager,
		engineMetrics,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(store.slots, log)
	bookingSvc := bookingsService.NewService(store.bookings, log)

	// Настраиваем роутер
	router := api.NewRouter(api.Handlers{
		CreateBooking:     createBookingHandler.NewHandler(createBookingUseCase, log),
		CancelBooking:     cancelBookingHandler.NewHandler(cancelBookingUseCase, log),
		RescheduleBooking: rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log),
		GetBooking:        getBookingHandler.NewHandler(bookingSvc, log),
		ListBookings:      listBookingsHandler.NewHandler(bookingSvc, log),
		GetAvailableSlots: getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log),
	}, api.MetricsOptions{
		Collector: metricsCollector,
		Path:      cfg.Metrics.Path,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
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

// newStorage создает хранилище по database.driver
func newStorage(cfg *config.Config, log *logger.Logger, m *metrics.Metrics, stopCh <-chan struct{}) (*storage, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore(memory.WithTxTimeout(cfg.Engine.TxTimeout()))
		if cfg.Database.SeedFile != "" {
			n, err := store.Slots().LoadSeed(context.Background(), cfg.Database.SeedFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load seed: %w", err)
			}
			log.Info("Loaded %d slots from %s", n, cfg.Database.SeedFile)
		}
		log.Info("Using in-memory storage")

		return &storage{
			slots:     store.Slots(),
			bookings:  store.Bookings(),
			payments:  store.Payments(),
			txManager: store,
			close:     func() {},
		}, nil

	default:
		// Подключаемся к базе данных
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		wrappedDB := dbmetrics.WrapWithDefault(db, m, stopCh)

		return &storage{
			slots:    slotRepo.NewRepository(wrappedDB),
			bookings: bookingRepo.NewRepository(wrappedDB),
			payments: paymentRepo.NewRepository(wrappedDB),
			txManager: txmanager.NewTransactionManager(wrappedDB,
				txmanager.WithTimeout(cfg.Engine.TxTimeout()),
			),
			close: func() { db.Close() },
		}, nil
	}
}
