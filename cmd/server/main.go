package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxel-builder/internal/api"
	"github.com/annel0/voxel-builder/internal/config"
	"github.com/annel0/voxel-builder/internal/eventbus"
	"github.com/annel0/voxel-builder/internal/game"
	"github.com/annel0/voxel-builder/internal/logging"
	"github.com/annel0/voxel-builder/internal/observability"
	"github.com/annel0/voxel-builder/internal/persist"
	"github.com/annel0/voxel-builder/internal/storage"
	"github.com/annel0/voxel-builder/internal/world"

	// Регистрация стандартных типов блоков
	_ "github.com/annel0/voxel-builder/internal/world/block/implementations"
)

func main() {
	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🧱 Запуск Voxel Builder — сервер сессии строительства...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load("")
	if err != nil {
		logging.Error("❌ Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{} // дефолты
	}

	restAddr := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	metricsAddr := fmt.Sprintf(":%d", cfg.Server.GetMetricsPort())
	logging.Info("📡 Конфигурация: REST=%s, metrics=%s, storage=%s",
		restAddr, metricsAddr, cfg.Storage.GetBackend())

	// === OBSERVABILITY ===
	ctx := context.Background()
	telemetryShutdown, err := observability.InitTelemetry(ctx, "voxel-builder")
	if err != nil {
		// Трассировка опциональна: без коллектора сервер всё равно работает.
		logging.Warn("⚠️  OpenTelemetry недоступен: %v", err)
		telemetryShutdown = func(context.Context) error { return nil }
	}

	// === ШИНА СОБЫТИЙ ===
	bus := buildEventBus(cfg)
	eventbus.Init(bus)
	if err := eventbus.StartLoggingListener(bus); err != nil {
		logging.Warn("⚠️  Не удалось запустить LoggingListener: %v", err)
	}
	busMetrics := eventbus.NewMetricsExporter(bus)
	busMetrics.StartHTTP(metricsAddr)

	// === ХРАНИЛИЩЕ СЛОТА СОХРАНЕНИЯ ===
	slotStorage, err := buildSlotStorage(cfg)
	if err != nil {
		logging.Error("❌ Ошибка инициализации хранилища: %v", err)
		log.Fatalf("❌ Ошибка инициализации хранилища: %v", err)
	}
	defer slotStorage.Close()

	// === ЯДРО СЕССИИ ===
	// Контекст сессии собирается явно: владение сеткой, сценой и камерой
	// принадлежит редактору, а не глобальным переменным.
	grid := world.NewGridStore()
	scene := game.NewScene()
	camera := game.NewOrbitCamera()
	adapter := persist.NewAdapter(slotStorage, cfg.Save.GetSlotKey(), cfg.Save.UseGzipCompr)
	editor := game.NewEditor(grid, scene, camera, adapter)

	// === REST API ===
	restServer := api.NewRestServer(api.Config{
		Port:   restAddr,
		Editor: editor,
	})
	if err := restServer.Start(); err != nil {
		logging.Error("❌ Ошибка запуска REST API: %v", err)
		log.Fatalf("❌ Ошибка запуска REST API: %v", err)
	}

	logging.Info("✅ Сервер готов принимать команды редактирования")
	logging.Info("   🌐 REST API: http://localhost%s", restAddr)
	logging.Info("   ❤️  Health check: http://localhost%s/health", restAddr)
	logging.Info("   📈 Метрики: http://localhost%s/metrics", metricsAddr)
	logging.Info("💡 Примеры:")
	logging.Info("   curl http://localhost%s/api/session/stats", restAddr)
	logging.Info("   curl -X POST http://localhost%s/api/session/pointer -d '{\"x\":0,\"y\":0,\"button\":\"primary\"}'", restAddr)

	// Ждем сигнала для завершения
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logging.Info("📡 Получен сигнал %v, завершение работы...", sig)

	// === GRACEFUL SHUTDOWN ===
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := restServer.Stop(shutdownCtx); err != nil {
		logging.Error("Ошибка остановки REST сервера: %v", err)
	}
	busMetrics.Stop()
	if err := telemetryShutdown(shutdownCtx); err != nil {
		logging.Error("Ошибка остановки телеметрии: %v", err)
	}

	logging.Info("👋 Сервер остановлен")
}

// buildEventBus выбирает реализацию шины: NATS JetStream при заданном URL,
// иначе in-memory.
func buildEventBus(cfg *config.Config) eventbus.EventBus {
	if cfg.EventBus.URL != "" {
		retention := time.Duration(cfg.EventBus.Retention) * time.Hour
		if retention == 0 {
			retention = 24 * time.Hour
		}
		bus, err := eventbus.NewJetStreamBus(cfg.EventBus.URL, cfg.EventBus.Stream, retention)
		if err == nil {
			logging.Info("🚌 Шина событий: NATS JetStream (%s)", cfg.EventBus.URL)
			return bus
		}
		logging.Warn("⚠️  NATS недоступен (%v), используется in-memory шина", err)
	}
	return eventbus.NewMemoryBus(1024)
}

// buildSlotStorage создаёт бэкенд слота сохранения по конфигурации
func buildSlotStorage(cfg *config.Config) (storage.SlotStorage, error) {
	switch backend := cfg.Storage.GetBackend(); backend {
	case "memory":
		return storage.NewMemorySlotStorage(), nil
	case "file":
		return storage.NewFileSlotStorage(cfg.Storage.GetPath())
	case "badger":
		return storage.NewBadgerSlotStorage(cfg.Storage.GetPath())
	case "redis":
		return storage.NewRedisSlotStorage(
			cfg.Storage.Redis.Addr, cfg.Storage.Redis.Password, cfg.Storage.Redis.DB)
	case "maria":
		return storage.NewMariaSlotStorage(storage.MariaConfig{
			Host:     cfg.Storage.Maria.Host,
			Port:     cfg.Storage.Maria.Port,
			Database: cfg.Storage.Maria.Database,
			Username: cfg.Storage.Maria.Username,
			Password: cfg.Storage.Maria.Password,
		})
	case "mongo":
		return storage.NewMongoSlotStorage(storage.MongoSlotConfig{
			URI:        cfg.Storage.Mongo.URI,
			Database:   cfg.Storage.Mongo.Database,
			Collection: cfg.Storage.Mongo.Collection,
		})
	default:
		return nil, fmt.Errorf("неизвестный бэкенд хранилища: %q", backend)
	}
}
