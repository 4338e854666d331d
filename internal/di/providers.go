package di

import (
	"context"
	"fmt"
	"time"

	drepo "FXLens/internal/domain/repository"
	dservice "FXLens/internal/domain/service"
	"FXLens/internal/handler/api"
	"FXLens/internal/handler/ws"
	internalrepo "FXLens/internal/repository"
	"FXLens/internal/service/exchangerate"
	"FXLens/internal/service/fred"
	"FXLens/internal/usecase"
	"FXLens/pkg/cache"
	pkgch "FXLens/pkg/clickhouse"
	"FXLens/pkg/config"
	xhttp "FXLens/pkg/http"
	pkgkafka "FXLens/pkg/kafka"
	"FXLens/pkg/logger"
	"FXLens/pkg/metrics"
	"FXLens/pkg/server"

	"github.com/labstack/echo/v4"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	level := "info"
	format := "console"
	if cfg.Environment == "production" {
		format = "json"
	}
	return logger.New(&logger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client and initializes
// the schema. Returns nil for the memory backend.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Backend.Type != "clickhouse" {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.SchemaStatements(cfg.ClickHouse.Database)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer when enabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideCache selects the snapshot cache: layered memory+Redis when
// Redis is configured, plain in-process memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvidePolicyProvider creates the FRED policy-rate client.
func ProvidePolicyProvider(cfg *config.Config) dservice.PolicyRateProvider {
	return fred.New(
		cfg.FRED.APIKey,
		cfg.FRED.BaseURL,
		cfg.FRED.ObservationStart,
		cfg.FRED.Timeout,
		cfg.FRED.MaxRPS,
	)
}

// ProvideSpotProvider creates the exchangerate.host spot client.
func ProvideSpotProvider(cfg *config.Config) dservice.SpotRateProvider {
	return exchangerate.New(
		cfg.SpotProvider.BaseURL,
		cfg.SpotProvider.LatestTimeout,
		cfg.SpotProvider.HistoryTimeout,
	)
}

// ProvideSnapshotStore creates the ClickHouse snapshot store, or nil
// for the memory backend.
func ProvideSnapshotStore(chClient *pkgch.Client, cfg *config.Config) drepo.SnapshotStore {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseSnapshotStore(chClient.DB(), cfg.ClickHouse.Database)
}

// ProvideSnapshotPublisher creates the Kafka snapshot publisher, or
// nil when Kafka is disabled.
func ProvideSnapshotPublisher(producer *pkgkafka.Producer, cfg *config.Config) usecase.SnapshotPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSnapshotPublisher(producer, cfg.Kafka.Topic)
}

// ProvideAssembler creates the snapshot assembler.
func ProvideAssembler(
	policy dservice.PolicyRateProvider,
	spot dservice.SpotRateProvider,
	m drepo.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.Assembler {
	return usecase.NewAssembler(policy, spot, m, log, usecase.AssemblerConfig{
		ReferenceSeries: cfg.Fetch.ReferenceSeries,
		HistoryDays:     cfg.Fetch.HistoryDays,
	})
}

// ProvideHub creates the WebSocket broadcast hub.
func ProvideHub(log *logger.Logger) *ws.Hub {
	return ws.NewHub(log)
}

// ProvideRefresher creates the snapshot refresher.
func ProvideRefresher(
	assembler *usecase.Assembler,
	store drepo.SnapshotStore,
	cacheSvc cache.Service,
	publisher usecase.SnapshotPublisher,
	hub *ws.Hub,
	m drepo.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.Refresher {
	return usecase.NewRefresher(assembler, store, cacheSvc, publisher, hub, m, log, usecase.RefresherConfig{
		Interval: cfg.Fetch.Interval,
		CacheTTL: cfg.Backend.CacheTTL,
	})
}

// routes composes the API handler and the WebSocket hub into one
// route registrar.
type routes struct {
	api *api.SnapshotsEchoHandler
	hub *ws.Hub
}

func (r *routes) RegisterRoutes(e *echo.Echo) {
	r.api.RegisterRoutes(e)
	r.hub.RegisterRoutes(e)
}

// ProvideHTTPHandler composes all route registrars.
func ProvideHTTPHandler(
	log *logger.Logger,
	refresher *usecase.Refresher,
	store drepo.SnapshotStore,
	hub *ws.Hub,
) xhttp.Handler {
	return &routes{
		api: api.NewSnapshotsEchoHandler(log, refresher, store),
		hub: hub,
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	refresher *usecase.Refresher,
	handler xhttp.Handler,
	hub *ws.Hub,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
) *server.App {
	return server.New(cfg, log, refresher, handler, hub, chClient, producer)
}
