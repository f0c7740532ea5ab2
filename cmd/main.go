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

	checkAvailabilityHandler "github.com/m04kA/TMS-InventoryService/internal/api/handlers/check_availability"
	deleteSlotsHandler "github.com/m04kA/TMS-InventoryService/internal/api/handlers/delete_slots"
	generateSlotsHandler "github.com/m04kA/TMS-InventoryService/internal/api/handlers/generate_slots"
	getSummaryHandler "github.com/m04kA/TMS-InventoryService/internal/api/handlers/get_summary"
	resizeSlotsHandler "github.com/m04kA/TMS-InventoryService/internal/api/handlers/resize_slots"
	toggleSlotHandler "github.com/m04kA/TMS-InventoryService/internal/api/handlers/toggle_slot"
	updateOccupancyHandler "github.com/m04kA/TMS-InventoryService/internal/api/handlers/update_occupancy"
	"github.com/m04kA/TMS-InventoryService/internal/api/middleware"
	"github.com/m04kA/TMS-InventoryService/internal/config"
	genstateRepo "github.com/m04kA/TMS-InventoryService/internal/infra/storage/genstate"
	sheetRepo "github.com/m04kA/TMS-InventoryService/internal/infra/storage/sheet"
	catalogServiceClient "github.com/m04kA/TMS-InventoryService/internal/integrations/catalogservice"
	"github.com/m04kA/TMS-InventoryService/internal/maintainer"
	inventoryService "github.com/m04kA/TMS-InventoryService/internal/service/inventory"
	checkAvailabilityUC "github.com/m04kA/TMS-InventoryService/internal/usecase/check_availability"
	updateOccupancyUC "github.com/m04kA/TMS-InventoryService/internal/usecase/update_occupancy"
	"github.com/m04kA/TMS-InventoryService/pkg/dbmetrics"
	"github.com/m04kA/TMS-InventoryService/pkg/logger"
	"github.com/m04kA/TMS-InventoryService/pkg/metrics"
	"github.com/m04kA/TMS-InventoryService/pkg/simpletxmanager"
	"github.com/m04kA/TMS-InventoryService/pkg/txmanager"
)

// noopOccupancyMetrics заглушка для выключенных метрик
type noopOccupancyMetrics struct{}

func (noopOccupancyMetrics) ObserveOccupancyChange(string, string) {}

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

	log.Info("Starting TMS-InventoryService...")
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

	// Инициализируем клиент каталога
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		sheetRepository    *sheetRepo.Repository
		genStateRepository *genstateRepo.Repository
		txMgr              TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		sheetRepository = sheetRepo.NewRepository(wrappedDB)
		genStateRepository = genstateRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		sheetRepository = sheetRepo.NewRepository(db)
		genStateRepository = genstateRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис инвентаря
	inventorySvc := inventoryService.NewService(
		sheetRepository,
		genStateRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		sheetRepository,
		catalogClient,
		log,
	)

	var occupancyMetrics updateOccupancyUC.Metrics = noopOccupancyMetrics{}
	if cfg.Metrics.Enabled {
		occupancyMetrics = metricsCollector
	}
	updateOccupancyUseCase := updateOccupancyUC.NewUseCase(
		sheetRepository,
		catalogClient,
		txMgr,
		occupancyMetrics,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	updateOccupancy := updateOccupancyHandler.NewHandler(updateOccupancyUseCase, log)
	generateSlots := generateSlotsHandler.NewHandler(inventorySvc, catalogClient, log)
	resizeSlots := resizeSlotsHandler.NewHandler(inventorySvc, catalogClient, log)
	deleteSlots := deleteSlotsHandler.NewHandler(inventorySvc, log)
	getSummary := getSummaryHandler.NewHandler(inventorySvc, log)
	toggleSlot := toggleSlotHandler.NewHandler(inventorySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

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
	// PUBLIC ROUTES (без аутентификации, с rate limit)
	// ============================================================

	public := api.PathPrefix("").Subrouter()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		rateLimiter := middleware.NewRateLimiter(
			redisClient,
			cfg.Redis.RateLimit,
			time.Duration(cfg.Redis.RateLimitWindow)*time.Second,
			log,
		)
		public.Use(rateLimiter.Middleware)
		log.Info("Rate limiting enabled: %d requests per %ds (redis=%s)",
			cfg.Redis.RateLimit, cfg.Redis.RateLimitWindow, cfg.Redis.Addr)
	}

	// Проверка доступности слота (дергается витриной на каждый просмотр)
	public.HandleFunc("/packages/{packageType}/{packageId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Занятость (вызывается подсистемой бронирований) ---
	protected.HandleFunc("/occupancy", updateOccupancy.Handle).Methods(http.MethodPost)

	// --- Управление инвентарем пакета ---
	// Принудительная генерация горизонта
	protected.HandleFunc("/packages/{packageType}/{packageId}/slots/generate",
		generateSlots.Handle).Methods(http.MethodPost)

	// Пересборка слотов под новое расписание и вместимость
	protected.HandleFunc("/packages/{packageType}/{packageId}/slots",
		resizeSlots.Handle).Methods(http.MethodPut)

	// Удаление всего инвентаря пакета
	protected.HandleFunc("/packages/{packageType}/{packageId}/slots",
		deleteSlots.Handle).Methods(http.MethodDelete)

	// Ручное открытие/закрытие слота
	protected.HandleFunc("/packages/{packageType}/{packageId}/slots/availability",
		toggleSlot.Handle).Methods(http.MethodPatch)

	// Сводка занятости по датам для админ-панели
	protected.HandleFunc("/packages/{packageType}/{packageId}/slots/summary",
		getSummary.Handle).Methods(http.MethodGet)

	// Запускаем фоновое сопровождение горизонта
	maintainerCtx, stopMaintainer := context.WithCancel(context.Background())
	defer stopMaintainer()

	if cfg.Maintainer.Enabled {
		worker := maintainer.NewWorker(
			catalogClient,
			inventorySvc,
			genStateRepository,
			time.Duration(cfg.Maintainer.Interval)*time.Second,
			time.Duration(cfg.Maintainer.FreshFor)*time.Second,
			log,
		)
		go worker.Run(maintainerCtx)
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

	// Останавливаем фоновое сопровождение
	stopMaintainer()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
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
