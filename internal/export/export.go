// Package export сохраняет результаты поиска и отзывов в файлы с разделителем.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"scrapekit/internal/discovery"
	"scrapekit/internal/review"

	"go.uber.org/zap"
)

const (
	URLPrefix  = "URL"
	DataPrefix = "DATA"
)

// ErrEmpty возвращается при попытке сохранить пустую таблицу
var ErrEmpty = errors.New("nothing to export")

var (
	recordHeader = []string{"Beer_search", "Beer_found", "Beer_link", "Beer_link_N"}
	rowHeader    = []string{"Overall", "Rdev", "Text", "Look", "Feel", "Smell", "Taste", "Date", "url",
		"Beer_search", "Beer_found", "Beer_link", "Beer_link_N"}
)

// Writer пишет таблицы в каталог вывода
type Writer struct {
	dir       string
	separator rune
	logger    *zap.Logger
}

// NewWriter создает Writer
func NewWriter(dir string, separator rune, logger *zap.Logger) *Writer {
	if separator == 0 {
		separator = ';'
	}
	return &Writer{dir: dir, separator: separator, logger: logger}
}

// FileName имя файла вида "<prefix> - <first> - <last>.csv"
func FileName(prefix, first, last string) string {
	clean := strings.NewReplacer("/", "_", "\\", "_", string(os.PathSeparator), "_")
	return fmt.Sprintf("%s - %s - %s.csv", prefix, clean.Replace(first), clean.Replace(last))
}

// WriteRecords сохраняет таблицу найденных ссылок и возвращает путь к файлу
func (w *Writer) WriteRecords(records []discovery.Record) (string, error) {
	if len(records) == 0 {
		return "", ErrEmpty
	}

	name := FileName(URLPrefix, records[0].Search, records[len(records)-1].Search)
	data := make([][]string, len(records))
	for i, r := range records {
		data[i] = []string{r.Search, r.Found, r.Link, strconv.Itoa(r.Page)}
	}
	return w.write(name, recordHeader, data)
}

// WriteRows сохраняет итоговую таблицу отзывов и возвращает путь к файлу
func (w *Writer) WriteRows(rows []review.Row) (string, error) {
	if len(rows) == 0 {
		return "", ErrEmpty
	}

	searches := make([]string, len(rows))
	data := make([][]string, len(rows))
	for i, r := range rows {
		searches[i] = r.Search
		data[i] = []string{r.Overall, r.RDev, r.Text, r.Look, r.Feel, r.Smell, r.Taste, r.Date, r.URL,
			r.Search, r.Found, r.Link, r.Page}
	}

	first, last := bounds(searches)
	return w.write(FileName(DataPrefix, first, last), rowHeader, data)
}

func (w *Writer) write(name string, header []string, data [][]string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	path := filepath.Join(w.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeCSV(file, w.separator, header, data); err != nil {
		return "", err
	}

	w.logger.Info("Table saved", zap.String("path", path), zap.Int("rows", len(data)))
	return path, nil
}

// writeCSV пишет таблицу и закрывает out, ошибка закрытия тоже возвращается
func writeCSV(out io.WriteCloser, separator rune, header []string, data [][]string) (err error) {
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	writer := csv.NewWriter(out)
	writer.Comma = separator

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(data); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}

// ReadRecords читает таблицу ссылок, сохраненную WriteRecords.
// Колонки ищутся по заголовку, лишние колонки игнорируются.
func ReadRecords(path string, separator rune) ([]discovery.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open records file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = separator
	reader.FieldsPerRecord = -1

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("records file %s is empty", path)
	}

	idx, err := columns(lines[0], recordHeader)
	if err != nil {
		return nil, err
	}

	records := make([]discovery.Record, 0, len(lines)-1)
	for n, line := range lines[1:] {
		if len(line) <= maxIndex(idx) {
			continue
		}
		page, err := strconv.Atoi(strings.TrimSpace(line[idx[3]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid page number %q: %w", n+2, line[idx[3]], err)
		}
		records = append(records, discovery.Record{
			Search: line[idx[0]],
			Found:  line[idx[1]],
			Link:   line[idx[2]],
			Page:   page,
		})
	}
	return records, nil
}

func columns(header, want []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	idx := make([]int, len(want))
	for i, name := range want {
		p, ok := pos[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		idx[i] = p
	}
	return idx, nil
}

func maxIndex(idx []int) int {
	m := 0
	for _, i := range idx {
		if i > m {
			m = i
		}
	}
	return m
}

// bounds первое и последнее непустое значение
func bounds(values []string) (string, string) {
	first, last := "", ""
	for _, v := range values {
		if v != "" {
			first = v
			break
		}
	}
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] != "" {
			last = values[i]
			break
		}
	}
	if first == "" {
		first, last = review.NotAvailable, review.NotAvailable
	}
	return first, last
}
