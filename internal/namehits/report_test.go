package namehits

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	input := []Result{
		{Name: "Euler", Hits: 3},
		{Name: "Gauss", Hits: 10},
		{Name: "Noether", Hits: NoResult},
		{Name: "Fermat", Hits: 3},
		{Name: "Riemann", Hits: 0},
		{Name: "Abel", Hits: 3},
	}

	want := []Result{
		{Name: "Gauss", Hits: 10},
		{Name: "Euler", Hits: 3},
		{Name: "Fermat", Hits: 3},
		{Name: "Abel", Hits: 3},
		{Name: "Riemann", Hits: 0},
		{Name: "Noether", Hits: NoResult},
	}

	got := Rank(input)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rank() mismatch (-want +got):\n%s", diff)
	}

	if input[0].Name != "Euler" {
		t.Error("Rank must not modify its input")
	}
}

func TestTop(t *testing.T) {
	ranked := []Result{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	tests := []struct {
		n    int
		want int
	}{
		{n: 5, want: 3},
		{n: 2, want: 2},
		{n: 0, want: 0},
		{n: -1, want: 0},
	}

	for _, tt := range tests {
		if got := len(Top(ranked, tt.n)); got != tt.want {
			t.Errorf("Top(%d) returned %d results, want %d", tt.n, got, tt.want)
		}
	}
}

func TestCountMissing(t *testing.T) {
	results := []Result{{Hits: NoResult}, {Hits: 0}, {Hits: NoResult}, {Hits: 7}}
	if got := CountMissing(results); got != 2 {
		t.Errorf("CountMissing() = %d, want 2", got)
	}
}

func TestSummary(t *testing.T) {
	ranked := Rank([]Result{{Name: "Gauss", Hits: 10}, {Name: "Noether", Hits: NoResult}})

	summary := Summary(ranked, 5)
	if !strings.Contains(summary, "Gauss with 10 results") {
		t.Errorf("summary misses leader line: %q", summary)
	}
	if !strings.HasSuffix(summary, "No results for 1 of 2 names") {
		t.Errorf("summary misses missing count: %q", summary)
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, []Result{{Name: "Gauss", Hits: 40}, {Name: "Euler", Hits: 12}, {Name: "Abel", Hits: NoResult}}, 5)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "The most popular names\n"))
	assert.Contains(t, out, "Gauss")
	assert.Contains(t, out, "40")
	assert.Contains(t, out, "Euler")
	assert.Less(t, strings.Index(out, "Gauss"), strings.Index(out, "Euler"))
	assert.Contains(t, out, "did not find results for 1 names")
}
