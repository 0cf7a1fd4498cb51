// Package search implements the full-buffer substring scan behind dig
// mode: filter a frozen history snapshot by the current query, keeping
// arrival order, with the work spread across available cores.
package search

import (
	"runtime"
	"strings"
	"sync"

	"github.com/modoterra/kubedig/pkg/core"
)

// Match is one record admitted by a query, with the byte offsets of every
// occurrence of the query inside the record body.
type Match struct {
	Record core.Record
	Spans  [][2]int
}

// Filter scans the snapshot and returns the records whose body contains
// query, in their original order. An empty query admits every record with
// no spans. Filter is a pure function of its inputs.
func Filter(snapshot []core.Record, query string) []Match {
	if query == "" {
		out := make([]Match, len(snapshot))
		for i, r := range snapshot {
			out[i] = Match{Record: r}
		}
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(snapshot) {
		workers = len(snapshot)
	}
	if workers <= 1 {
		return scan(snapshot, query)
	}

	// Each worker scans a contiguous chunk; chunk results concatenate
	// back into arrival order. Rounding up the chunk size can leave the
	// tail workers without records, so the loop walks offsets rather
	// than worker indices.
	chunkSize := (len(snapshot) + workers - 1) / workers
	chunks := make([][]Match, workers)
	var wg sync.WaitGroup
	for i, lo := 0, 0; lo < len(snapshot); i, lo = i+1, lo+chunkSize {
		hi := lo + chunkSize
		if hi > len(snapshot) {
			hi = len(snapshot)
		}
		wg.Add(1)
		go func(i, lo, hi int) {
			defer wg.Done()
			chunks[i] = scan(snapshot[lo:hi], query)
		}(i, lo, hi)
	}
	wg.Wait()

	var out []Match
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

func scan(records []core.Record, query string) []Match {
	var out []Match
	for _, r := range records {
		spans := findSpans(r.Body, query)
		if spans == nil {
			continue
		}
		out = append(out, Match{Record: r, Spans: spans})
	}
	return out
}

// findSpans returns the non-overlapping occurrences of query in body,
// or nil if there are none.
func findSpans(body, query string) [][2]int {
	var spans [][2]int
	for start := 0; ; {
		idx := strings.Index(body[start:], query)
		if idx < 0 {
			return spans
		}
		lo := start + idx
		hi := lo + len(query)
		spans = append(spans, [2]int{lo, hi})
		start = hi
	}
}
