package review

import (
	"testing"

	"scrapekit/internal/discovery"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestURLs(t *testing.T) {
	records := []discovery.Record{
		{Search: "a", Found: "A", Link: "https://x/1", Page: 0},
		discovery.NotFound("b"),
		{Search: "c", Found: "A", Link: "https://x/1", Page: 0},
		{Search: "a", Found: "A", Link: "https://x/2", Page: 1},
	}

	assert.Equal(t, []string{"https://x/1", "https://x/2"}, URLs(records))
	assert.Empty(t, URLs(nil))
}

func TestJoin(t *testing.T) {
	records := []discovery.Record{
		{Search: "a", Found: "A", Link: "https://x/1", Page: 0},
		{Search: "c", Found: "A", Link: "https://x/1", Page: 0},
		{Search: "a", Found: "A", Link: "https://x/2", Page: 1},
		{Search: "d", Found: "D", Link: "https://x/3", Page: 0},
		discovery.NotFound("b"),
	}
	r1 := Review{URL: "https://x/1", Overall: "4"}
	r2 := Review{URL: "https://x/2", Overall: "3"}
	orphan := Placeholder("https://x/9")

	got := Join([]Review{r1, r2, orphan}, records)

	want := []Row{
		{Review: r1, Search: "a", Found: "A", Link: "https://x/1", Page: "0"},
		{Review: r1, Search: "c", Found: "A", Link: "https://x/1", Page: "0"},
		{Review: r2, Search: "a", Found: "A", Link: "https://x/2", Page: "1"},
		{Review: orphan},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Join() mismatch (-want +got):\n%s", diff)
	}
}
