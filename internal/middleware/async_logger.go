package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chasecee/cut-calc/internal/domain/model"
	"github.com/chasecee/cut-calc/internal/logger"
	"github.com/chasecee/cut-calc/internal/service"
)

// AsyncLoggerConfig holds configuration for the async logger.
type AsyncLoggerConfig struct {
	// BufferSize is the capacity of the pending-entry queue.
	BufferSize int
	// NumWorkers is how many goroutines drain the queue.
	NumWorkers int
	// WriteTimeout caps a single MongoDB write.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig buffers a thousand entries across four workers.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:   1000,
		NumWorkers:   4,
		WriteTimeout: 5 * time.Second,
	}
}

// AsyncLogger persists request and audit log entries through a bounded queue
// and a fixed worker pool, so a burst of calculation traffic cannot spawn a
// goroutine per log write. When the queue is full entries are dropped rather
// than blocking the request path.
type AsyncLogger struct {
	loggingService service.LoggingService
	queue          chan *model.LogEntry
	wg             sync.WaitGroup
	stopCh         chan struct{}
	writeTimeout   time.Duration

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	errors   atomic.Int64
}

// NewAsyncLogger starts the worker pool. A nil logging service yields a nil
// logger, which callers must treat as "log synchronously or not at all".
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if loggingService == nil {
		return nil
	}

	al := &AsyncLogger{
		loggingService: loggingService,
		queue:          make(chan *model.LogEntry, cfg.BufferSize),
		stopCh:         make(chan struct{}),
		writeTimeout:   cfg.WriteTimeout,
	}

	for i := 0; i < cfg.NumWorkers; i++ {
		al.wg.Add(1)
		go al.drainLoop()
	}

	return al
}

func (al *AsyncLogger) drainLoop() {
	defer al.wg.Done()

	for {
		select {
		case entry, ok := <-al.queue:
			if !ok {
				return
			}
			al.persist(entry)
		case <-al.stopCh:
			// Flush whatever is still queued, then exit.
			for {
				select {
				case entry := <-al.queue:
					al.persist(entry)
				default:
					return
				}
			}
		}
	}
}

func (al *AsyncLogger) persist(entry *model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.writeTimeout)
	defer cancel()

	if err := al.loggingService.CreateLog(ctx, entry); err != nil {
		al.errors.Add(1)
		log := logger.Logger()
		log.Warn().Err(err).Msg("Failed to write async log entry")
		return
	}
	al.written.Add(1)
}

// Log enqueues an entry. It never blocks; a full queue drops the entry and
// returns false.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	select {
	case al.queue <- entry:
		al.enqueued.Add(1)
		return true
	default:
		al.dropped.Add(1)
		return false
	}
}

// Stop shuts the pool down after flushing queued entries.
func (al *AsyncLogger) Stop() {
	close(al.stopCh)
	al.wg.Wait()
	close(al.queue)
}

// Stats reports queue counters since startup.
func (al *AsyncLogger) Stats() (enqueued, dropped, written, errors int64) {
	return al.enqueued.Load(), al.dropped.Load(), al.written.Load(), al.errors.Load()
}

var (
	globalAsyncLogger   *AsyncLogger
	globalAsyncLoggerMu sync.RWMutex
)

// InitAsyncLogger installs the shared async logger, stopping any previous
// one. Called once at startup when MongoDB persistence is enabled.
func InitAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
	}
	globalAsyncLogger = NewAsyncLogger(loggingService, cfg)
}

// GetAsyncLogger returns the shared async logger, or nil when persistence
// is disabled.
func GetAsyncLogger() *AsyncLogger {
	globalAsyncLoggerMu.RLock()
	defer globalAsyncLoggerMu.RUnlock()
	return globalAsyncLogger
}

// StopAsyncLogger flushes and clears the shared async logger.
func StopAsyncLogger() {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
		globalAsyncLogger = nil
	}
}
