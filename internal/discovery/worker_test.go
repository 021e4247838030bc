package discovery

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSearch  = "https://beer.test/search/"
	testProfile = "https://beer.test/beer/profile"
)

func testConfig() Config {
	return Config{
		Workers:       1,
		SearchURL:     testSearch,
		ProfilePrefix: testProfile,
		PageStride:    25,
	}
}

func newTestSite() *fakeSite {
	return &fakeSite{
		redirects: map[string]string{},
		results:   map[string][]string{},
		titles:    map[string]string{},
		last:      map[string]string{},
		timeouts:  map[string]int{},
		failures:  map[string]bool{},
	}
}

func TestWorker_ProfilePageSingle(t *testing.T) {
	site := newTestSite()
	search := SearchURL(testSearch, "Heineken Pilsener")
	site.redirects[search] = testProfile + "/1/2/"
	site.titles[testProfile+"/1/2/"] = " Heineken Lager Beer "

	worker := NewWorker(0, newFakePage(site), testConfig(), nil, zap.NewNop())
	records := worker.Discover("Heineken Pilsener")

	want := []Record{{Search: "Heineken Pilsener", Found: "Heineken Lager Beer", Link: testProfile + "/1/2/", Page: 0}}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
	}
}

func TestWorker_ListingMultiPage(t *testing.T) {
	site := newTestSite()
	search := SearchURL(testSearch, "Grolsch")
	target := testProfile + "/3/4/"
	site.results[search] = []string{"", "/beer/profile/3/4/", "/beer/profile/9/9/"}
	site.titles[target] = "Grolsch Premium Pilsner"
	site.last[target] = "/beer/profile/3/4/?view=beer&sort=&start=75"

	page := newFakePage(site)
	records := NewWorker(0, page, testConfig(), nil, zap.NewNop()).Discover("Grolsch")

	require.Len(t, records, 3)
	for i, r := range records {
		assert.Equal(t, "Grolsch", r.Search)
		assert.Equal(t, "Grolsch Premium Pilsner", r.Found)
		assert.Equal(t, i, r.Page)
	}
	assert.Equal(t, "https://beer.test/beer/profile/3/4/?view=beer&sort=&start=0", records[0].Link)
	assert.Equal(t, "https://beer.test/beer/profile/3/4/?view=beer&sort=&start=50", records[2].Link)
	assert.Equal(t, []string{search, "https://beer.test/beer/profile/3/4/"}, page.visits)
}

func TestWorker_NoResults(t *testing.T) {
	site := newTestSite()

	records := NewWorker(0, newFakePage(site), testConfig(), nil, zap.NewNop()).Discover("XYZQ-nonexistent-term")

	require.Len(t, records, 1)
	assert.Equal(t, NotAvailable, records[0].Link)
	assert.Equal(t, 1, records[0].Page)
	assert.True(t, records[0].IsNotFound())
}

func TestWorker_TimeoutRetry(t *testing.T) {
	t.Run("single timeout is retried", func(t *testing.T) {
		site := newTestSite()
		search := SearchURL(testSearch, "Bavaria")
		site.redirects[search] = testProfile + "/5/6/"
		site.titles[testProfile+"/5/6/"] = "Bavaria Premium"
		site.timeouts[search] = 1

		page := newFakePage(site)
		records := NewWorker(0, page, testConfig(), nil, zap.NewNop()).Discover("Bavaria")

		require.Len(t, records, 1)
		assert.Equal(t, testProfile+"/5/6/", records[0].Link)
		assert.Len(t, page.visits, 2)
	})

	t.Run("second timeout gives sentinel", func(t *testing.T) {
		site := newTestSite()
		search := SearchURL(testSearch, "Bavaria")
		site.timeouts[search] = 2

		page := newFakePage(site)
		records := NewWorker(0, page, testConfig(), nil, zap.NewNop()).Discover("Bavaria")

		assert.Equal(t, []Record{NotFound("Bavaria")}, records)
		assert.Len(t, page.visits, 2)
	})

	t.Run("other errors are not retried", func(t *testing.T) {
		site := newTestSite()
		search := SearchURL(testSearch, "Bavaria")
		site.failures[search] = true

		page := newFakePage(site)
		records := NewWorker(0, page, testConfig(), nil, zap.NewNop()).Discover("Bavaria")

		assert.Equal(t, []Record{NotFound("Bavaria")}, records)
		assert.Len(t, page.visits, 1)
	})
}

func TestWorker_MissingTitle(t *testing.T) {
	site := newTestSite()
	search := SearchURL(testSearch, "Amstel")
	site.redirects[search] = testProfile + "/7/8/"

	records := NewWorker(0, newFakePage(site), testConfig(), nil, zap.NewNop()).Discover("Amstel")

	require.Len(t, records, 1)
	assert.Equal(t, NotAvailable, records[0].Found)
	assert.Equal(t, testProfile+"/7/8/", records[0].Link)
}

func TestWorker_RunNeverDropsTerms(t *testing.T) {
	site := newTestSite()
	found := SearchURL(testSearch, "Found")
	site.redirects[found] = testProfile + "/1/1/"
	site.titles[testProfile+"/1/1/"] = "Found"
	site.last[testProfile+"/1/1/"] = testProfile + "/1/1/?view=beer&sort=&start=0"

	terms := []string{"Found", "Missing", "Found"}
	records := NewWorker(0, newFakePage(site), testConfig(), nil, zap.NewNop()).Run(terms)

	require.Len(t, records, 3)
	for i, term := range terms {
		assert.Equal(t, term, records[i].Search)
	}
	assert.True(t, records[1].IsNotFound())
	// start=0 на последней странице дает пустой список ссылок, остается одна запись
	assert.Equal(t, testProfile+"/1/1/", records[0].Link)
}

func TestPageLinks(t *testing.T) {
	tests := []struct {
		name    string
		href    string
		stride  int
		want    []string
		wantErr bool
	}{
		{
			name:   "two pages",
			href:   "https://b.test/beer/profile/1/2/?view=beer&sort=&start=50",
			stride: 25,
			want: []string{
				"https://b.test/beer/profile/1/2/?view=beer&sort=&start=0",
				"https://b.test/beer/profile/1/2/?view=beer&sort=&start=25",
			},
		},
		{
			name:   "offset not multiple of stride",
			href:   "https://b.test/p/?view=beer&sort=&start=30",
			stride: 25,
			want: []string{
				"https://b.test/p/?view=beer&sort=&start=0",
				"https://b.test/p/?view=beer&sort=&start=25",
			},
		},
		{name: "zero offset", href: "https://b.test/p/?view=beer&start=0", stride: 25, want: []string{}},
		{name: "no equals sign", href: "https://b.test/p/", stride: 25, wantErr: true},
		{name: "non numeric offset", href: "https://b.test/p/?view=beer&start=abc", stride: 25, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PageLinks(tt.href, tt.stride)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchURL(t *testing.T) {
	assert.Equal(t, "https://beer.test/search/?q=Hertog+Jan&qt=beer", SearchURL(testSearch, "Hertog Jan"))
}
