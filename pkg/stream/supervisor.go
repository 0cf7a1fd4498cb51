package stream

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/modoterra/kubedig/pkg/cluster"
	"github.com/modoterra/kubedig/pkg/core"
)

// Supervisor owns the workers of one tailing session.
type Supervisor struct {
	client  cluster.Client
	timeout time.Duration
	logger  *slog.Logger

	records chan core.Record
	done    chan struct{}
	joinErr error
	spawned int
}

// NewSupervisor creates a supervisor. timeout is the per-read poll timeout
// applied by every worker.
func NewSupervisor(client cluster.Client, timeout time.Duration, logger *slog.Logger) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Supervisor{client: client, timeout: timeout, logger: logger}
}

// Start spawns one worker per source and returns the shared record channel.
// The channel has capacity one: a slow consumer stalls every worker's send,
// which stalls their reads. The upstream log stream is the buffer of last
// resort; nothing here queues unread lines.
//
// The channel is closed once every spawned worker has finished. If ctx is
// already cancelled when a worker would be spawned, spawning stops early.
func (s *Supervisor) Start(ctx context.Context, sources []core.Source) <-chan core.Record {
	s.records = make(chan core.Record, 1)
	s.done = make(chan struct{})

	var group errgroup.Group
	for _, src := range sources {
		if ctx.Err() != nil {
			break
		}
		w := &worker{
			source:  src,
			client:  s.client,
			timeout: s.timeout,
			out:     s.records,
		}
		s.spawned++
		group.Go(func() error {
			err := w.run(ctx)
			if err != nil {
				s.logger.Warn("log stream worker terminated",
					"source", w.source.Key(), "err", err)
			}
			return err
		})
	}

	go func() {
		s.joinErr = group.Wait()
		close(s.records)
		close(s.done)
	}()
	return s.records
}

// Wait blocks until every spawned worker has finished. It returns the first
// worker error for reporting; a failing worker never blocks teardown of the
// others, so callers treat the error as advisory.
func (s *Supervisor) Wait() error {
	<-s.done
	return s.joinErr
}

// Spawned returns the number of workers started by Start.
func (s *Supervisor) Spawned() int {
	return s.spawned
}
