// Package job runs work on a fixed pool of worker goroutines. A hook that
// needs parallel work schedules it here and blocks on the returned Handle.
package job

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrClosed is returned by Schedule after Close.
var ErrClosed = errors.New("job: scheduler closed")

// Handle tracks one scheduled job.
type Handle struct {
	done chan struct{}
	err  error
}

// Wait blocks until the job has run and returns the panic it raised, if any.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Done is closed once the job has run.
func (h *Handle) Done() <-chan struct{} { return h.done }

type task struct {
	fn     func()
	handle *Handle
}

// Scheduler feeds a bounded queue to its workers.
type Scheduler struct {
	mu     sync.RWMutex
	closed bool
	queue  chan task
	group  errgroup.Group
	log    *zap.Logger
}

// NewScheduler starts workers goroutines (at least one) reading a queue of queueSize.
func NewScheduler(workers, queueSize int, log *zap.Logger) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scheduler{
		queue: make(chan task, queueSize),
		log:   log,
	}
	for i := 0; i < workers; i++ {
		s.group.Go(s.work)
	}
	log.Debug("job scheduler started", zap.Int("workers", workers), zap.Int("queue", queueSize))
	return s
}

// Schedule queues fn, blocking while the queue is full.
func (s *Scheduler) Schedule(fn func()) (*Handle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	h := &Handle{done: make(chan struct{})}
	s.queue <- task{fn: fn, handle: h}
	return h, nil
}

// WaitAll waits on every handle and combines their errors.
func WaitAll(handles ...*Handle) error {
	var errs error
	for _, h := range handles {
		errs = multierr.Append(errs, h.Wait())
	}
	return errs
}

// Close stops accepting work, drains the queue and waits for the workers.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()
	return s.group.Wait()
}

func (s *Scheduler) work() error {
	for t := range s.queue {
		s.run(t)
	}
	return nil
}

func (s *Scheduler) run(t task) {
	defer close(t.handle.done)
	defer func() {
		if r := recover(); r != nil {
			t.handle.err = fmt.Errorf("job panicked: %v", r)
			s.log.Error("job panicked", zap.Any("panic", r))
		}
	}()
	t.fn()
}
