// Package activity journals game events to the repository asynchronously.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ashureev/arctic-quest/internal/domain"
	"github.com/ashureev/arctic-quest/internal/shared"
)

// Writer is the subset of the repository the recorder needs.
type Writer interface {
	RecordActivity(ctx context.Context, activity domain.Activity) error
}

// Recorder queues events and writes them on a background goroutine so the
// game never waits on SQLite.
type Recorder struct {
	writer  Writer
	queue   chan domain.Event
	logger  *slog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
}

// NewRecorder starts a recorder with a queue of queueSize events.
func NewRecorder(writer Writer, queueSize int, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	if queueSize <= 0 {
		queueSize = 256
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Recorder{
		writer: writer,
		queue:  make(chan domain.Event, queueSize),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	r.wg.Add(1)
	go r.run()
	return r
}

// Publish queues an event. It never blocks; events are dropped when the queue is full.
func (r *Recorder) Publish(e domain.Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}

	select {
	case r.queue <- e:
	default:
		r.dropped.Add(1)
		r.logger.Warn("Activity queue full, dropping event",
			"user_id", e.UserID,
			"kind", e.Kind,
			"queue_len", len(r.queue),
		)
	}
}

// Dropped returns how many events were discarded because the queue was full.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

func (r *Recorder) run() {
	defer r.wg.Done()
	for e := range r.queue {
		if err := r.write(e); err != nil {
			r.logger.Error("Failed to record activity", "user_id", e.UserID, "kind", e.Kind, "error", err)
		}
	}
}

// write stores one event, retrying with exponential backoff on SQLITE_BUSY.
func (r *Recorder) write(e domain.Event) error {
	maxRetries := 3
	baseDelay := 50 * time.Millisecond
	activity := domain.ActivityFromEvent(e)

	for i := 0; i < maxRetries; i++ {
		err := r.writer.RecordActivity(r.ctx, activity)
		if err == nil {
			return nil
		}
		if shared.IsSQLiteConflictError(err) && i < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<i)
			r.logger.Debug("Activity write hit a locked database, retrying",
				"user_id", e.UserID,
				"attempt", i+1,
				"delay", delay)
			time.Sleep(delay)
			continue
		}
		return fmt.Errorf("record activity %s after %d attempts: %w", e.ID, i+1, err)
	}
	return nil
}

// Close stops accepting events and waits for the queue to drain.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	r.wg.Wait()
	r.cancel()
	return nil
}
