package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	addBlockedDateHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/add_blocked_date"
	cancelBookingHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/get_booking"
	getFacilityPolicyHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/get_facility_policy"
	getUserBookingsHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/get_user_bookings"
	listBlockedDatesHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/list_blocked_dates"
	listBookingsHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/list_bookings"
	listBundlesHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/list_bundles"
	listSpacesHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/list_spaces"
	removeBlockedDateHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/remove_blocked_date"
	retryPaymentHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/retry_payment"
	updateFacilityPolicyHandler "github.com/m04kA/SMC-FacilityBooking/internal/api/handlers/update_facility_policy"
	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/availability"
	"github.com/m04kA/SMC-FacilityBooking/internal/config"
	paymentConsumer "github.com/m04kA/SMC-FacilityBooking/internal/consumer/payment"
	bookingRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/catalog"
	facilityRepo "github.com/m04kA/SMC-FacilityBooking/internal/infra/storage/facility"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/notification"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/payment"
	userServiceClient "github.com/m04kA/SMC-FacilityBooking/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-FacilityBooking/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-FacilityBooking/internal/service/catalog"
	facilityService "github.com/m04kA/SMC-FacilityBooking/internal/service/facility"
	checkSlotUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/check_slot"
	createBookingUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/get_available_slots"
	sendRemindersUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/send_reminders"
	"github.com/m04kA/SMC-FacilityBooking/internal/usecase/snapshot"
	sweepBookingsUC "github.com/m04kA/SMC-FacilityBooking/internal/usecase/sweep_bookings"
	"github.com/m04kA/SMC-FacilityBooking/internal/worker"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
	"github.com/m04kA/SMC-FacilityBooking/pkg/metrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/mq"
	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
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

	log.Info("Starting SMC-FacilityBooking...")
	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.Facility.Location()
	if err != nil {
		log.Fatal("Failed to load facility timezone: %v", err)
	}
	log.Info("Facility timezone: %s", loc)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbCollector      dbmetrics.Collector
		jobMetrics       worker.Metrics
		signalMetrics    paymentConsumer.Metrics
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
		jobMetrics = metricsCollector
		signalMetrics = metricsCollector
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка только передает транзакцию через контекст
	wrappedDB := dbmetrics.WrapWithDefault(db, dbCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	facilityRepository := facilityRepo.NewRepository(wrappedDB)

	// Интеграции
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)

	var payments interface {
		CreateCharge(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeResult, error)
	} = payment.Disabled{}
	if cfg.Payment.Enabled {
		omiseClient, err := payment.NewClient(cfg.Payment.PublicKey, cfg.Payment.SecretKey, cfg.Payment.Currency, log)
		if err != nil {
			log.Fatal("Failed to initialize payment client: %v", err)
		}
		payments = omiseClient
		log.Info("Card payments enabled (currency=%s)", cfg.Payment.Currency)
	} else {
		log.Warn("Card payments disabled: only staff cash/comp bookings can be created")
	}

	var publisher notification.Publisher = notification.LogPublisher{Logger: log}
	if cfg.RabbitMQ.Enabled {
		mqPublisher, err := mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.NotificationExchange)
		if err != nil {
			log.Fatal("Failed to initialize notification publisher: %v", err)
		}
		defer mqPublisher.Close()
		publisher = mqPublisher
		log.Info("Notifications published to exchange %s", cfg.RabbitMQ.NotificationExchange)
	}
	notifier := notification.NewNotifier(publisher, userClient, loc, log)

	// Ядро: движок доступности и загрузчик состояния дня общие для чтения и записи
	engine := availability.NewEngine(loc)
	snapshots := snapshot.NewLoader(facilityRepository, bookingRepository, loc)

	// Сервисы
	catalogSvc := catalogService.NewService(catalogRepository, log)
	facilitySvc := facilityService.NewService(facilityRepository, loc, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		snapshots,
		engine,
		payments,
		notifier,
		txMgr,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogSvc,
		snapshots,
		engine,
		payments,
		bookingSvc,
		notifier,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(catalogSvc, snapshots, engine, txMgr, log)
	checkSlotUseCase := checkSlotUC.NewUseCase(catalogSvc, snapshots, engine, txMgr, log)
	sendRemindersUseCase := sendRemindersUC.NewUseCase(bookingRepository, notifier, log)
	sweepBookingsUseCase := sweepBookingsUC.NewUseCase(bookingRepository, cfg.Booking.PendingTimeout(), log)

	// Handlers
	listSpaces := listSpacesHandler.NewHandler(catalogSvc, log)
	listBundles := listBundlesHandler.NewHandler(catalogSvc, log)
	listAllSpaces := listSpacesHandler.NewAdminHandler(catalogSvc, log)
	listAllBundles := listBundlesHandler.NewAdminHandler(catalogSvc, log)
	getFacilityPolicy := getFacilityPolicyHandler.NewHandler(facilitySvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkSlotUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, loc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	retryPayment := retryPaymentHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, loc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	updateFacilityPolicy := updateFacilityPolicyHandler.NewHandler(facilitySvc, log)
	listBlockedDates := listBlockedDatesHandler.NewHandler(facilitySvc, log)
	addBlockedDate := addBlockedDateHandler.NewHandler(facilitySvc, log)
	removeBlockedDate := removeBlockedDateHandler.NewHandler(facilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/spaces", listSpaces.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bundles", listBundles.Handle).Methods(http.MethodGet)
	api.HandleFunc("/facility/policy", getFacilityPolicy.Handle).Methods(http.MethodGet)

	// Расписание ресурса на день и проверка конкретного слота
	api.HandleFunc("/resources/{kind}/{id}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{kind}/{id}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payment/retry", retryPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (role=admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(cfg.Auth.JWTSecret), middleware.RequireAdmin)

	admin.HandleFunc("/spaces", listAllSpaces.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bundles", listAllBundles.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/facility/policy", updateFacilityPolicy.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/blocked-dates", listBlockedDates.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-dates", addBlockedDate.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-dates/{date}", removeBlockedDate.Handle).Methods(http.MethodDelete)

	// Фоновые задачи и потребитель платежных сигналов живут до отмены bgCtx
	bgCtx, stopBackground := context.WithCancel(context.Background())
	var bgWG sync.WaitGroup

	runner := worker.NewRunner(jobMetrics, log,
		worker.RemindersJob(sendRemindersUseCase, time.Duration(cfg.Worker.ReminderInterval)*time.Second),
		worker.SweepJob(sweepBookingsUseCase, time.Duration(cfg.Worker.SweepInterval)*time.Second),
	)
	runner.Start(bgCtx)

	if cfg.RabbitMQ.Enabled {
		source, err := mq.NewConsumer(
			cfg.RabbitMQ.URL,
			cfg.RabbitMQ.PaymentExchange,
			cfg.RabbitMQ.PaymentQueue,
			[]string{paymentConsumer.KeyPaid, paymentConsumer.KeyFailed},
			10,
		)
		if err != nil {
			log.Fatal("Failed to initialize payment consumer: %v", err)
		}
		defer source.Close()

		consumer := paymentConsumer.NewConsumer(source, bookingSvc, signalMetrics, log)
		bgWG.Add(1)
		go func() {
			defer bgWG.Done()
			if err := consumer.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("Payment consumer stopped: %v", err)
			}
		}()
		log.Info("Payment consumer started (queue=%s)", cfg.RabbitMQ.PaymentQueue)
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopBackground()
	runner.Wait()
	bgWG.Wait()
	log.Info("Background jobs stopped")

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
