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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	confirmHoldHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/confirm_hold"
	countExpiredHoldsHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/count_expired_holds"
	createHoldHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/create_hold"
	createPaymentOrderHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/create_payment_order"
	createWalkInHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/create_walk_in"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/get_booking"
	getShopBookingsHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/get_shop_bookings"
	getWorkingHoursHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/get_working_hours"
	paymentWebhookHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/payment_webhook"
	reapExpiredHoldsHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/reap_expired_holds"
	replaceWorkingHoursHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/replace_working_hours"
	updateBookingStatusHandler "github.com/m04kA/SMC-ShopBooking/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-ShopBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ShopBooking/internal/config"
	"github.com/m04kA/SMC-ShopBooking/internal/infra/broker"
	bookingRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/payment"
	shopRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/shop"
	workingHoursRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-ShopBooking/internal/integrations/paymentprovider"
	"github.com/m04kA/SMC-ShopBooking/internal/integrations/subscription"
	"github.com/m04kA/SMC-ShopBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ShopBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ShopBooking/internal/service/reservation"
	workingHoursService "github.com/m04kA/SMC-ShopBooking/internal/service/workinghours"
	confirmHoldUC "github.com/m04kA/SMC-ShopBooking/internal/usecase/confirm_hold"
	createHoldUC "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_hold"
	createPaymentOrderUC "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_payment_order"
	createWalkInUC "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_walk_in"
	getAvailableSlotsUC "github.com/m04kA/SMC-ShopBooking/internal/usecase/get_available_slots"
	handleWebhookUC "github.com/m04kA/SMC-ShopBooking/internal/usecase/handle_payment_webhook"
	reapExpiredHoldsUC "github.com/m04kA/SMC-ShopBooking/internal/usecase/reap_expired_holds"
	"github.com/m04kA/SMC-ShopBooking/internal/worker/reaper"
	"github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
	"github.com/m04kA/SMC-ShopBooking/pkg/metrics"
	"github.com/m04kA/SMC-ShopBooking/pkg/txmanager"
)

// EventPublisher публикация событий бронирования
type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, payload any) error
}

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

	log.Info("Starting SMC-ShopBooking...")

	// Метрики нужны use case'ам всегда, при выключенных пишем в отдельный реестр без эндпоинта
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegisterer(cfg.Metrics.ServiceName, prometheus.NewRegistry())
	}
	stopMetricsCh := make(chan struct{})

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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Subscription Gate, решения кэшируются в Redis если он настроен
	var subscriptionGate subscription.Checker = subscription.NewClient(
		cfg.SubscriptionService.URL,
		time.Duration(cfg.SubscriptionService.Timeout)*time.Second,
		log,
	)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		subscriptionGate = subscription.NewCachedChecker(
			subscriptionGate, rdb, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log,
		)
		log.Info("Subscription cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// События бронирований
	var publisher EventPublisher = broker.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		amqpPublisher, err := broker.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		log.Info("Booking events published to exchange %s", cfg.RabbitMQ.Exchange)
	}

	paymentClient := paymentprovider.NewClient(
		cfg.PaymentProvider.URL,
		cfg.PaymentProvider.KeyID,
		cfg.PaymentProvider.WebhookSecret,
		time.Duration(cfg.PaymentProvider.Timeout)*time.Second,
	)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	shopRepository := shopRepo.NewRepository(wrappedDB)
	hoursRepository := workingHoursRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)

	// Сервисы
	checker := availability.NewChecker(bookingRepository, log)
	reservations := reservation.NewService(
		bookingRepository,
		shopRepository,
		hoursRepository,
		subscriptionGate,
		checker,
		txMgr,
		log,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, subscriptionGate, publisher, metricsCollector, log)
	hoursSvc := workingHoursService.NewService(hoursRepository, shopRepository, txMgr, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(reservations, checker, log)
	createHoldUseCase := createHoldUC.NewUseCase(bookingRepository, reservations, publisher, metricsCollector, log)
	confirmHoldUseCase := confirmHoldUC.NewUseCase(bookingRepository, paymentRepository, publisher, metricsCollector, log)
	createWalkInUseCase := createWalkInUC.NewUseCase(reservations, publisher, metricsCollector, log)
	createPaymentOrderUseCase := createPaymentOrderUC.NewUseCase(
		bookingRepository, paymentRepository, paymentClient, cfg.PaymentProvider.Currency, log,
	)
	handleWebhookUseCase := handleWebhookUC.NewUseCase(
		paymentClient, paymentRepository, bookingRepository, confirmHoldUseCase, log,
	)
	reapUseCase := reapExpiredHoldsUC.NewUseCase(bookingRepository, publisher, metricsCollector, log)

	// Фоновая очистка просроченных холдов
	var reaperWorker *reaper.Worker
	if cfg.Reaper.Enabled {
		reaperWorker, err = reaper.New(reapUseCase, time.Duration(cfg.Reaper.IntervalSeconds)*time.Second, log)
		if err != nil {
			log.Fatal("Failed to create reaper: %v", err)
		}
		reaperWorker.Start()
		log.Info("Expiry reaper started (interval=%ds)", cfg.Reaper.IntervalSeconds)
	}

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createHold := createHoldHandler.NewHandler(createHoldUseCase, log)
	confirmHold := confirmHoldHandler.NewHandler(confirmHoldUseCase, log)
	createPaymentOrder := createPaymentOrderHandler.NewHandler(createPaymentOrderUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(handleWebhookUseCase, log)
	createWalkIn := createWalkInHandler.NewHandler(createWalkInUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getShopBookings := getShopBookingsHandler.NewHandler(bookingSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(hoursSvc, log)
	replaceWorkingHours := replaceWorkingHoursHandler.NewHandler(hoursSvc, log)
	reapExpiredHolds := reapExpiredHoldsHandler.NewHandler(reapUseCase, log)
	countExpiredHolds := countExpiredHoldsHandler.NewHandler(reapUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (клиенты магазина)
	// ============================================================

	api.HandleFunc("/shops/{shopId}/staff/{staffId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/holds", createHold.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/confirm", confirmHold.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/orders", createPaymentOrder.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// INTERNAL ROUTES (закрыты на уровне сети)
	// ============================================================

	api.HandleFunc("/internal/holds/reap", reapExpiredHolds.Handle).Methods(http.MethodPost)
	api.HandleFunc("/internal/holds/expired/count", countExpiredHolds.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (персонал, требуют X-Shop-ID header)
	// ============================================================

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth)

	// walk-in регистрируется раньше /bookings/{bookingId}
	protected.HandleFunc("/bookings/walk-in", createWalkIn.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/shops/{shopId}/bookings", getShopBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopId}/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopId}/working-hours", replaceWorkingHours.Handle).Methods(http.MethodPut)

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

	if reaperWorker != nil {
		if err := reaperWorker.Stop(); err != nil {
			log.Error("Failed to stop reaper: %v", err)
		}
	}

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
