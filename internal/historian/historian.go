// internal/historian/historian.go is an asynchronous historian that pops match actions from the
// journal queue and persists them in batches.
package historian

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cinquillo/internal/cache"
	"github.com/jason-s-yu/cinquillo/internal/game"
	"github.com/sirupsen/logrus"
)

// Queue yields journal records. Pop returns nil, nil when timeout passes with nothing queued.
type Queue interface {
	Pop(ctx context.Context, timeout time.Duration) (*cache.MatchActionRecord, error)
}

// ActionStore persists a batch of records. It must tolerate a batch being written twice.
type ActionStore interface {
	InsertActions(ctx context.Context, records []cache.MatchActionRecord) error
}

// Settings tunes batching. Zero values fall back to the defaults below.
type Settings struct {
	BatchSize  int
	FlushDelay time.Duration
	// Inactivity is how long a match may go without actions before it is reported abandoned.
	Inactivity time.Duration
}

const (
	defaultBatchSize  = 20
	defaultFlushDelay = 500 * time.Millisecond
	defaultInactivity = 10 * time.Minute
	shutdownTimeout   = 5 * time.Second
)

// Service drains a Queue into an ActionStore. It is driven by a single goroutine in Run.
type Service struct {
	queue  Queue
	store  ActionStore
	logger logrus.FieldLogger
	now    func() time.Time

	batchSize  int
	flushDelay time.Duration
	inactivity time.Duration

	batch        []cache.MatchActionRecord
	lastFlush    time.Time
	lastActivity map[uuid.UUID]time.Time
}

// New builds a Service. A nil logger discards output.
func New(queue Queue, store ActionStore, logger logrus.FieldLogger, settings Settings) *Service {
	if logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		logger = l
	}
	if settings.BatchSize <= 0 {
		settings.BatchSize = defaultBatchSize
	}
	if settings.FlushDelay <= 0 {
		settings.FlushDelay = defaultFlushDelay
	}
	if settings.Inactivity <= 0 {
		settings.Inactivity = defaultInactivity
	}
	return &Service{
		queue:        queue,
		store:        store,
		logger:       logger,
		now:          time.Now,
		batchSize:    settings.BatchSize,
		flushDelay:   settings.FlushDelay,
		inactivity:   settings.Inactivity,
		batch:        make([]cache.MatchActionRecord, 0, settings.BatchSize),
		lastActivity: make(map[uuid.UUID]time.Time),
	}
}

// Run pops records until ctx is cancelled, then flushes what is left and returns.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("historian started")
	s.lastFlush = s.now()

	for ctx.Err() == nil {
		// Pop waits at most one flush interval so the timers below keep ticking.
		rec, err := s.queue.Pop(ctx, s.flushDelay)
		switch {
		case errors.Is(err, cache.ErrInvalidRecord):
			s.logger.WithError(err).Warn("skipping queued entry")
		case err != nil && ctx.Err() == nil:
			s.logger.WithError(err).Error("popping from queue")
			wait(ctx, s.flushDelay)
		case rec != nil:
			s.append(ctx, *rec)
		}

		if s.now().Sub(s.lastFlush) >= s.flushDelay {
			s.flush(ctx)
		}
		s.reapIdle()
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.flush(flushCtx)
	s.logger.Info("historian shutting down")
	return nil
}

func (s *Service) append(ctx context.Context, rec cache.MatchActionRecord) {
	switch game.EventType(rec.ActionType) {
	case game.EventMatchEnd, game.EventMatchTie:
		delete(s.lastActivity, rec.MatchID)
	default:
		s.lastActivity[rec.MatchID] = s.now()
	}

	s.batch = append(s.batch, rec)
	if len(s.batch) >= s.batchSize {
		s.flush(ctx)
	}
}

// flush writes the pending batch. On failure the batch is kept and retried on the next flush.
func (s *Service) flush(ctx context.Context) {
	s.lastFlush = s.now()
	if len(s.batch) == 0 {
		return
	}

	if err := s.store.InsertActions(ctx, s.batch); err != nil {
		s.logger.WithError(err).WithField("pending", len(s.batch)).Error("flushing actions")
		return
	}
	s.logger.WithField("count", len(s.batch)).Debug("flushed actions")
	s.batch = make([]cache.MatchActionRecord, 0, s.batchSize)
}

// reapIdle reports matches that stopped producing actions without finishing.
func (s *Service) reapIdle() {
	now := s.now()
	for id, last := range s.lastActivity {
		if now.Sub(last) > s.inactivity {
			s.logger.WithFields(logrus.Fields{
				"match_id":    id,
				"last_action": last,
			}).Warn("match abandoned")
			delete(s.lastActivity, id)
		}
	}
}

// Pending returns the number of records popped but not yet stored.
func (s *Service) Pending() int {
	return len(s.batch)
}

func wait(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
