package review

import (
	"strconv"

	"scrapekit/internal/discovery"
)

// Row отзыв вместе с данными поиска, по которому найдена страница
type Row struct {
	Review
	Search string
	Found  string
	Link   string
	// Page пустая строка, если отзыв не сопоставлен с поиском
	Page string
}

// URLs уникальные адреса для обхода в порядке появления, без заглушек.
// Повторная ссылка обходится один раз. Join отдает ее отзывы каждой
// записи поиска с этой ссылкой, число строк совпадает с повторным обходом.
func URLs(records []discovery.Record) []string {
	seen := make(map[string]struct{}, len(records))
	urls := make([]string, 0, len(records))
	for _, r := range records {
		if r.IsNotFound() || r.Link == "" {
			continue
		}
		if _, ok := seen[r.Link]; ok {
			continue
		}
		seen[r.Link] = struct{}{}
		urls = append(urls, r.Link)
	}
	return urls
}

// Join присоединяет записи поиска к отзывам по адресу (left join по отзывам).
// Записи поиска без отзывов в результат не попадают.
func Join(reviews []Review, records []discovery.Record) []Row {
	byLink := make(map[string][]discovery.Record, len(records))
	for _, r := range records {
		byLink[r.Link] = append(byLink[r.Link], r)
	}

	rows := make([]Row, 0, len(reviews))
	for _, rv := range reviews {
		matches := byLink[rv.URL]
		if len(matches) == 0 {
			rows = append(rows, Row{Review: rv})
			continue
		}
		for _, m := range matches {
			rows = append(rows, Row{
				Review: rv,
				Search: m.Search,
				Found:  m.Found,
				Link:   m.Link,
				Page:   strconv.Itoa(m.Page),
			})
		}
	}
	return rows
}
