package search

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/modoterra/kubedig/pkg/core"
)

func rec(body string) core.Record {
	return core.Record{SourceKey: "pod app", Body: body}
}

func bodies(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Record.Body
	}
	return out
}

func TestFilterSubstring(t *testing.T) {
	snapshot := []core.Record{
		rec("request timeout after 30s"),
		rec("no problems here"),
		rec("upstream timeout talking to db"),
		rec("all good"),
		rec("done"),
	}

	got := Filter(snapshot, "timeout")
	want := []string{"request timeout after 30s", "upstream timeout talking to db"}
	if len(got) != len(want) {
		t.Fatalf("got %d matches, want %d: %v", len(got), len(want), bodies(got))
	}
	for i, w := range want {
		if got[i].Record.Body != w {
			t.Errorf("matches[%d] = %q, want %q", i, got[i].Record.Body, w)
		}
		if len(got[i].Spans) != 1 {
			t.Errorf("matches[%d] has %d spans, want 1", i, len(got[i].Spans))
			continue
		}
		span := got[i].Spans[0]
		if got[i].Record.Body[span[0]:span[1]] != "timeout" {
			t.Errorf("matches[%d] span covers %q, want %q",
				i, got[i].Record.Body[span[0]:span[1]], "timeout")
		}
	}
}

func TestFilterEmptyQueryKeepsEverything(t *testing.T) {
	snapshot := []core.Record{rec("a"), rec("b"), rec("c")}
	got := Filter(snapshot, "")
	if len(got) != 3 {
		t.Fatalf("got %d matches, want 3", len(got))
	}
	for i, m := range got {
		if m.Record.Body != snapshot[i].Body {
			t.Errorf("matches[%d] = %q, want %q", i, m.Record.Body, snapshot[i].Body)
		}
		if m.Spans != nil {
			t.Errorf("matches[%d] has spans for empty query", i)
		}
	}
}

func TestFilterPreservesOrderOnLargeSnapshots(t *testing.T) {
	// Enough records to force the parallel path on any core count.
	var snapshot []core.Record
	for i := 0; i < 5000; i++ {
		if i%3 == 0 {
			snapshot = append(snapshot, rec(fmt.Sprintf("match %06d", i)))
		} else {
			snapshot = append(snapshot, rec(fmt.Sprintf("other %06d", i)))
		}
	}

	got := Filter(snapshot, "match")
	prev := -1
	for _, m := range got {
		var n int
		if _, err := fmt.Sscanf(m.Record.Body, "match %d", &n); err != nil {
			t.Fatalf("unexpected body %q", m.Record.Body)
		}
		if n <= prev {
			t.Fatalf("order not preserved: %d after %d", n, prev)
		}
		prev = n
	}
	if len(got) != 1667 {
		t.Errorf("got %d matches, want 1667", len(got))
	}
}

func TestFilterSmallSnapshotManyCores(t *testing.T) {
	// With more cores than fit the rounded-up chunk size, the tail chunks
	// are empty. 5 records on 4 cores gives chunks of 2 and only 3 of
	// them; the partition must not reach past the snapshot.
	prev := runtime.GOMAXPROCS(4)
	defer runtime.GOMAXPROCS(prev)

	for n := 1; n <= 20; n++ {
		var snapshot []core.Record
		for i := 0; i < n; i++ {
			if i%2 == 0 {
				snapshot = append(snapshot, rec(fmt.Sprintf("timeout %d", i)))
			} else {
				snapshot = append(snapshot, rec(fmt.Sprintf("fine %d", i)))
			}
		}
		got := Filter(snapshot, "timeout")
		want := (n + 1) / 2
		if len(got) != want {
			t.Errorf("n=%d: got %d matches, want %d", n, len(got), want)
		}
		for i, m := range got {
			if wantBody := fmt.Sprintf("timeout %d", i*2); m.Record.Body != wantBody {
				t.Errorf("n=%d: matches[%d] = %q, want %q", n, i, m.Record.Body, wantBody)
			}
		}
	}
}

func TestFilterIsPure(t *testing.T) {
	var snapshot []core.Record
	for i := 0; i < 500; i++ {
		snapshot = append(snapshot, rec(fmt.Sprintf("line %d mod %d", i, i%7)))
	}
	first := Filter(snapshot, "mod 3")
	second := Filter(snapshot, "mod 3")
	if len(first) != len(second) {
		t.Fatalf("runs disagree: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Record.Body != second[i].Record.Body {
			t.Errorf("runs disagree at %d: %q vs %q", i, first[i].Record.Body, second[i].Record.Body)
		}
	}
}

func TestFilterResultIsSubsequence(t *testing.T) {
	snapshot := []core.Record{
		rec("x1 hit"), rec("x2"), rec("x3 hit"), rec("x4 hit"), rec("x5"),
	}
	got := Filter(snapshot, "hit")

	i := 0
	for _, m := range got {
		for i < len(snapshot) && snapshot[i].Body != m.Record.Body {
			i++
		}
		if i == len(snapshot) {
			t.Fatalf("result %v is not a subsequence of the snapshot", bodies(got))
		}
		i++
	}
}

func TestFindSpansMultipleOccurrences(t *testing.T) {
	spans := findSpans("ab ab ab", "ab")
	want := [][2]int{{0, 2}, {3, 5}, {6, 8}}
	if len(spans) != len(want) {
		t.Fatalf("got %d spans, want %d", len(spans), len(want))
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("spans[%d] = %v, want %v", i, spans[i], want[i])
		}
	}
}

func TestHighlight(t *testing.T) {
	got, ok := Highlight("fatal error occurred", "error")
	if !ok {
		t.Fatal("expected a highlight")
	}
	// The styled output must still read as the original text. Whether
	// escape codes appear depends on the terminal profile, so only the
	// text content is asserted here.
	if !strings.Contains(got, "error") || !strings.HasPrefix(got, "fatal ") {
		t.Errorf("highlighted body %q lost the matched text", got)
	}

	if out, ok := Highlight("no problems here", "error"); ok || out != "no problems here" {
		t.Error("non-matching body must come back unchanged")
	}
	if out, ok := Highlight("anything", ""); ok || out != "anything" {
		t.Error("empty query must return the body unchanged")
	}
}
