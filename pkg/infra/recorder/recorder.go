package recorder

import (
	"context"
	"sync"
	"time"

	"github.com/codemend/codemend/pkg/domain/outcome"
	"github.com/codemend/codemend/pkg/fix"
	"github.com/codemend/codemend/pkg/infra/prometheus"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Recorder persists fix outcomes for later analytics. Writes are serialized
// through a single worker goroutine so concurrent fix requests never contend
// on the repository; a full buffer drops the record with a warning instead
// of blocking the request path.
type Recorder interface {
	Record(category fix.Category, strategy fix.Strategy, engine string, success bool)
	Shutdown()
}

type recorder struct {
	logger   *logrus.Logger
	repo     outcome.Repository
	taskChan chan func()
	done     chan struct{}

	// mu orders enqueues against close: Record holds the read lock while
	// sending, Shutdown takes the write lock before closing the channel.
	mu     sync.RWMutex
	closed bool
}

func NewRecorder(logger *logrus.Logger, repo outcome.Repository) Recorder {
	r := &recorder{
		logger:   logger,
		repo:     repo,
		taskChan: make(chan func(), 1000),
		done:     make(chan struct{}),
	}
	go r.processTasks()
	return r
}

func (r *recorder) Record(category fix.Category, strategy fix.Strategy, engine string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	prometheus.FixesTotal.WithLabelValues(string(category), string(strategy), status).Inc()

	r.enqueueTask(func() {
		r.persist(category, strategy, engine, success)
	})
}

// Shutdown closes the queue and waits for the worker to drain it. Records
// arriving afterwards are dropped silently.
func (r *recorder) Shutdown() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.logger.Info("shutting down outcome recorder")
	close(r.taskChan)
	<-r.done
}

func (r *recorder) persist(category fix.Category, strategy fix.Strategy, engine string, success bool) {
	if r.repo == nil {
		return
	}
	id, err := uuid.NewV6()
	if err != nil {
		id = uuid.New()
	}
	record := &outcome.Outcome{
		ID:        id,
		Category:  string(category),
		Strategy:  string(strategy),
		Engine:    engine,
		Success:   success,
		CreatedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.repo.Create(ctx, record); err != nil {
		r.logger.WithError(err).Error("failed to record fix outcome")
	}
}

func (r *recorder) processTasks() {
	defer close(r.done)
	for task := range r.taskChan {
		task()
	}
}

func (r *recorder) enqueueTask(task func()) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.taskChan <- task:
	default:
		r.logger.Warn("recorder queue is full, dropping outcome record")
	}
}
