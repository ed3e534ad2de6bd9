package di

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/repository"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/handler/api"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/mockdata"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/recorder"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/scheduler"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/service/cache"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/service/ratelimit"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/usecase"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/config"
	xhttp "github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/http"
	applogger "github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/logger"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/metrics"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/queue"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/server"
)

const defaultCacheTTL = 30 * time.Second

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMarketSource creates the synthetic data generator. Seed 0 keeps
// wall-clock seeding.
func ProvideMarketSource(cfg *config.Config) repository.MarketSource {
	if cfg.Generator.Seed != 0 {
		return mockdata.New(mockdata.WithSeed(cfg.Generator.Seed))
	}
	return mockdata.New()
}

// ProvideRedisClient creates a shared redis client, or nil when no address
// is configured.
func ProvideRedisClient(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// ProvideCache selects the cache backend.
func ProvideCache(cfg *config.Config, cli *redis.Client) cache.BytesCache {
	if cfg.Cache.Backend == "redis" && cli != nil {
		return cache.NewRedisCacheFromClient(cli)
	}
	return cache.NewTTLCache()
}

// ProvideSnapshotStore opens the sqlite store when the recorder is enabled,
// a noop store otherwise. The constructor runs the schema migration.
func ProvideSnapshotStore(cfg *config.Config, logger *applogger.Logger) (repository.SnapshotStore, error) {
	if !cfg.Recorder.Enabled {
		return recorder.NewNoopStore(), nil
	}

	store, err := recorder.NewSQLiteStore(cfg.Recorder.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("snapshot store: %w", err)
	}
	return store, nil
}

// ProvideMarketUseCase creates the market data use case.
func ProvideMarketUseCase(
	cfg *config.Config,
	source repository.MarketSource,
	c cache.BytesCache,
	m repository.Metrics,
) *usecase.MarketUseCase {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return usecase.NewMarketUseCase(source, c, m, ttl)
}

// ProvideSnapshotsUseCase creates the snapshot capture/history use case.
func ProvideSnapshotsUseCase(source repository.MarketSource, store repository.SnapshotStore) *usecase.SnapshotsUseCase {
	return usecase.NewSnapshotsUseCase(source, store)
}

// ProvideMarketHandler creates the HTTP handler.
func ProvideMarketHandler(
	cfg *config.Config,
	logger *applogger.Logger,
	market *usecase.MarketUseCase,
	snaps *usecase.SnapshotsUseCase,
	source repository.MarketSource,
) xhttp.Handler {
	return api.NewMarketHandler(logger, market, snaps, source, cfg.Stream.Interval, cfg.Stream.PingInterval)
}

// ProvideSnapshotJob creates the queued capture job.
func ProvideSnapshotJob(snaps *usecase.SnapshotsUseCase, logger *applogger.Logger) *scheduler.SnapshotJob {
	return scheduler.NewSnapshotJob(snaps, logger)
}

// ProvideQueue creates the redis-backed task queue with the capture handler
// registered, or nil when redis is not configured.
func ProvideQueue(
	cfg *config.Config,
	logger *applogger.Logger,
	cli *redis.Client,
	job *scheduler.SnapshotJob,
) *queue.RedisQueue {
	if cli == nil {
		return nil
	}
	q := queue.NewRedisQueue(logger, queue.Config{
		Workers:    cfg.Queue.Workers,
		RetryLimit: cfg.Queue.RetryLimit,
		RetryDelay: cfg.Queue.RetryDelay,
	}, cli)
	q.Register(job)
	return q
}

// ProvidePublisher exposes the queue as a publisher. The nil check keeps
// a missing queue from becoming a non-nil interface around a nil pointer.
func ProvidePublisher(q *queue.RedisQueue) queue.Publisher {
	if q == nil {
		return nil
	}
	return q
}

// ProvideScheduler creates the capture scheduler. The capture task is only
// registered when the recorder is enabled.
func ProvideScheduler(
	cfg *config.Config,
	snaps *usecase.SnapshotsUseCase,
	pub queue.Publisher,
	logger *applogger.Logger,
) (*scheduler.Scheduler, error) {
	s := scheduler.New(snaps, pub, logger)
	if cfg.Recorder.Enabled {
		if err := s.Register(cfg.Recorder.Schedule); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ProvideRateLimiter creates the per-client token bucket.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.PerClient {
	burst := cfg.RateLimit.Burst
	if burst <= 0 {
		burst = 20
	}
	perSec := cfg.RateLimit.PerSecond
	if perSec <= 0 {
		perSec = 10
	}
	return ratelimit.NewPerClient(burst, perSec)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	sched *scheduler.Scheduler,
	consumer *queue.RedisQueue,
	store repository.SnapshotStore,
	limiter *ratelimit.PerClient,
) *server.App {
	return server.New(cfg, logger, handler, sched, consumer, store, limiter)
}
