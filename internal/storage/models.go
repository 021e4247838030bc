package storage

import (
	"time"

	"scrapekit/internal/discovery"
	"scrapekit/internal/namehits"
	"scrapekit/internal/review"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DiscoveredURL строка таблицы найденных ссылок
type DiscoveredURL struct {
	bun.BaseModel `bun:"table:discovered_urls"`

	ID        int64     `bun:"id,pk,autoincrement"`
	RunID     uuid.UUID `bun:"run_id,type:uuid,notnull"`
	Search    string    `bun:"search,notnull"`
	Found     string    `bun:"found,notnull"`
	Link      string    `bun:"link,notnull"`
	Page      int       `bun:"page,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// ReviewRow строка итоговой таблицы отзывов
type ReviewRow struct {
	bun.BaseModel `bun:"table:review_rows"`

	ID        int64     `bun:"id,pk,autoincrement"`
	RunID     uuid.UUID `bun:"run_id,type:uuid,notnull"`
	URL       string    `bun:"url,notnull"`
	Overall   string    `bun:"overall"`
	RDev      string    `bun:"rdev"`
	Text      string    `bun:"text"`
	Look      string    `bun:"look"`
	Smell     string    `bun:"smell"`
	Taste     string    `bun:"taste"`
	Feel      string    `bun:"feel"`
	Date      string    `bun:"date"`
	Search    string    `bun:"search"`
	Found     string    `bun:"found"`
	Link      string    `bun:"link"`
	Page      string    `bun:"page"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// HitCount результат подсчета упоминаний имени
type HitCount struct {
	bun.BaseModel `bun:"table:hit_counts"`

	ID        int64     `bun:"id,pk,autoincrement"`
	RunID     uuid.UUID `bun:"run_id,type:uuid,notnull"`
	Name      string    `bun:"name,notnull"`
	Hits      int       `bun:"hits,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// FromRecords переводит записи поиска в строки архива
func FromRecords(runID uuid.UUID, records []discovery.Record) []DiscoveredURL {
	out := make([]DiscoveredURL, len(records))
	for i, r := range records {
		out[i] = DiscoveredURL{RunID: runID, Search: r.Search, Found: r.Found, Link: r.Link, Page: r.Page}
	}
	return out
}

// FromRows переводит строки отзывов в строки архива
func FromRows(runID uuid.UUID, rows []review.Row) []ReviewRow {
	out := make([]ReviewRow, len(rows))
	for i, r := range rows {
		out[i] = ReviewRow{
			RunID:   runID,
			URL:     r.URL,
			Overall: r.Overall,
			RDev:    r.RDev,
			Text:    r.Text,
			Look:    r.Look,
			Smell:   r.Smell,
			Taste:   r.Taste,
			Feel:    r.Feel,
			Date:    r.Date,
			Search:  r.Search,
			Found:   r.Found,
			Link:    r.Link,
			Page:    r.Page,
		}
	}
	return out
}

// FromResults переводит результаты подсчета в строки архива
func FromResults(runID uuid.UUID, results []namehits.Result) []HitCount {
	out := make([]HitCount, len(results))
	for i, r := range results {
		out[i] = HitCount{RunID: runID, Name: r.Name, Hits: r.Hits}
	}
	return out
}
