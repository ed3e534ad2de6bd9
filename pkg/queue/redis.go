package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/logger"
)

const (
	defaultPrefix = "nsesuite:queue"
	popTimeout    = time.Second
	sweepInterval = 5 * time.Second
)

// RedisQueue is a redis-backed task queue. Live tasks sit on a list,
// failed tasks wait in a sorted set scored by their retry time, and
// tasks that exhaust their retries land on a dead letter list for
// manual inspection.
type RedisQueue struct {
	log    *logger.Logger
	cfg    Config
	client *redis.Client
	prefix string

	mu       sync.RWMutex
	handlers map[string]Handler
	running  bool

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a RedisQueue.
type Option func(*RedisQueue)

// WithPrefix overrides the redis key prefix.
func WithPrefix(prefix string) Option {
	return func(q *RedisQueue) {
		q.prefix = prefix
	}
}

// NewRedisQueue creates a queue on the given client. Zero config fields
// fall back to a single worker and a ten second retry delay.
func NewRedisQueue(log *logger.Logger, cfg Config, client *redis.Client, opts ...Option) *RedisQueue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 10 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	q := &RedisQueue{
		log:      log,
		cfg:      cfg,
		client:   client,
		prefix:   defaultPrefix,
		handlers: make(map[string]Handler),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Register adds a handler for one task kind. A second registration for
// the same kind is ignored.
func (q *RedisQueue) Register(h Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.handlers[h.Kind()]; ok {
		q.log.Warn("task handler already registered", logger.String("kind", h.Kind()))
		return
	}
	q.handlers[h.Kind()] = h
	q.log.Info("task handler registered", logger.String("kind", h.Kind()))
}

// Start verifies the redis connection and launches the worker pool and
// the retry sweeper.
func (q *RedisQueue) Start() error {
	q.mu.Lock()
	if q.running {
		q.mu.Unlock()
		return errors.New("queue already running")
	}
	q.running = true
	q.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := q.client.Ping(ctx).Err(); err != nil {
		q.mu.Lock()
		q.running = false
		q.mu.Unlock()
		return fmt.Errorf("redis ping: %w", err)
	}

	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
	q.wg.Add(1)
	go q.retrySweeper()

	q.log.Info("queue started",
		logger.Int("workers", q.cfg.Workers),
		logger.String("addr", q.client.Options().Addr))
	return nil
}

// Stop cancels the workers and waits for them up to the context deadline.
func (q *RedisQueue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return nil
	}
	q.running = false
	q.mu.Unlock()

	q.cancel()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		q.log.Warn("queue workers still busy at shutdown", logger.Error(ctx.Err()))
		return ctx.Err()
	case <-done:
		q.log.Info("queue stopped")
		return nil
	}
}

// Publish marshals the payload and pushes a task onto the live list.
func (q *RedisQueue) Publish(ctx context.Context, kind string, payload interface{}) error {
	q.mu.RLock()
	running := q.running
	q.mu.RUnlock()
	if !running {
		return errors.New("queue not running")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := Task{
		ID:       uuid.NewString(),
		Kind:     kind,
		Payload:  body,
		Enqueued: time.Now(),
	}
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	if err := q.client.LPush(ctx, q.key("tasks"), data).Err(); err != nil {
		return fmt.Errorf("lpush: %w", err)
	}
	return nil
}

func (q *RedisQueue) worker(id int) {
	defer q.wg.Done()
	q.log.Info("queue worker started", logger.Int("worker", id))

	for {
		select {
		case <-q.ctx.Done():
			q.log.Info("queue worker stopped", logger.Int("worker", id))
			return
		default:
			q.popAndRun()
		}
	}
}

func (q *RedisQueue) popAndRun() {
	res, err := q.client.BRPop(q.ctx, popTimeout, q.key("tasks")).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		q.log.Error("queue pop", logger.Error(err))
		time.Sleep(popTimeout)
		return
	}
	if len(res) < 2 {
		return
	}

	var task Task
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		q.log.Error("queue task decode", logger.Error(err))
		return
	}
	q.run(task)
}

func (q *RedisQueue) run(task Task) {
	q.mu.RLock()
	h, ok := q.handlers[task.Kind]
	q.mu.RUnlock()
	if !ok {
		q.log.Error("no handler for task",
			logger.String("kind", task.Kind),
			logger.String("id", task.ID))
		return
	}

	start := time.Now()
	err := h.Handle(q.ctx, task.Payload)
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		q.log.Warn("task cancelled",
			logger.String("id", task.ID),
			logger.String("kind", task.Kind),
			logger.Int64("elapsed_ms", time.Since(start).Milliseconds()))
		return
	}

	q.log.Error("task failed",
		logger.String("id", task.ID),
		logger.String("kind", task.Kind),
		logger.Int("attempt", task.Attempts+1),
		logger.Error(err))

	if task.Attempts < q.cfg.RetryLimit {
		task.Attempts++
		q.scheduleRetry(task)
	} else {
		q.bury(task)
	}
}

func (q *RedisQueue) scheduleRetry(task Task) {
	data, err := json.Marshal(task)
	if err != nil {
		q.log.Error("queue retry encode", logger.Error(err))
		return
	}

	due := time.Now().Add(q.cfg.RetryDelay)
	err = q.client.ZAdd(context.Background(), q.key("retry"), redis.Z{
		Score:  float64(due.Unix()),
		Member: data,
	}).Err()
	if err != nil {
		q.log.Error("queue retry push", logger.Error(err))
		return
	}

	q.log.Info("task retry scheduled",
		logger.String("id", task.ID),
		logger.Int("attempt", task.Attempts),
		logger.String("due", due.Format(time.RFC3339)))
}

func (q *RedisQueue) bury(task Task) {
	data, err := json.Marshal(task)
	if err != nil {
		q.log.Error("queue dead letter encode", logger.Error(err))
		return
	}
	if err := q.client.LPush(context.Background(), q.key("dead"), data).Err(); err != nil {
		q.log.Error("queue dead letter push", logger.Error(err))
		return
	}

	q.log.Error("task moved to dead letter list",
		logger.String("id", task.ID),
		logger.String("kind", task.Kind))
}

func (q *RedisQueue) retrySweeper() {
	defer q.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-q.ctx.Done():
			return
		case <-ticker.C:
			q.sweepRetries()
		}
	}
}

// sweepRetries moves tasks whose retry time has passed back onto the
// live list. Only the sweeper that wins the ZRem requeues a task, so
// several processes can sweep concurrently without duplicating work.
func (q *RedisQueue) sweepRetries() {
	max := strconv.FormatInt(time.Now().Unix(), 10)
	due, err := q.client.ZRangeByScore(q.ctx, q.key("retry"), &redis.ZRangeBy{
		Min: "0",
		Max: max,
	}).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		q.log.Error("queue retry sweep", logger.Error(err))
		return
	}

	for _, member := range due {
		removed, err := q.client.ZRem(q.ctx, q.key("retry"), member).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			q.log.Error("queue retry claim", logger.Error(err))
			continue
		}
		if removed == 0 {
			continue
		}
		if err := q.client.LPush(q.ctx, q.key("tasks"), member).Err(); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			q.log.Error("queue retry requeue", logger.Error(err))
		}
	}
}

func (q *RedisQueue) key(suffix string) string {
	return q.prefix + ":" + suffix
}
