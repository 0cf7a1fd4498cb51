// Package stream runs one tailing worker per matched source and fans
// their records into a single bounded channel.
package stream

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/modoterra/kubedig/pkg/cluster"
	"github.com/modoterra/kubedig/pkg/core"
)

// worker tails the log stream of a single source.
type worker struct {
	source  core.Source
	client  cluster.Client
	timeout time.Duration
	out     chan<- core.Record
}

// run streams lines until cancellation, end of stream, or a read error.
// Failures are local to this worker; siblings keep running.
func (w *worker) run(ctx context.Context) error {
	stream, err := w.client.StreamLogs(ctx, w.source.Pod, w.source.Container)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()

	lines := make(chan string)
	var readErr error
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(stream)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr = scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(w.timeout):
			// Read timed out. Not an error: loop again so cancellation
			// is observed within one timeout interval.
			continue
		case line, ok := <-lines:
			if !ok {
				if readErr != nil && ctx.Err() == nil {
					return fmt.Errorf("read stream: %w", readErr)
				}
				return nil
			}
			rec := core.NewRecord(w.source, line)
			select {
			case w.out <- rec:
			case <-ctx.Done():
				// Aggregator is gone; drop the record and exit.
				return nil
			}
		}
	}
}
