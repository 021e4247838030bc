// Package input читает список товаров для поиска.
package input

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	BrandColumn   = "Product_MAJOR_BRAND"
	VariantColumn = "Product_VARIANT"
)

// ReadProducts возвращает уникальные отсортированные названия "<бренд> <вариант>".
// Строки, где одна из колонок пустая, пропускаются.
func ReadProducts(path string, separator rune) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = separator
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file is empty or has no data records")
	}

	brand, variant := -1, -1
	for i, h := range records[0] {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case BrandColumn:
			brand = i
		case VariantColumn:
			variant = i
		}
	}
	if brand < 0 || variant < 0 {
		return nil, fmt.Errorf("input must contain %s and %s columns", BrandColumn, VariantColumn)
	}

	seen := make(map[string]struct{}, len(records))
	for _, record := range records[1:] {
		if len(record) <= brand || len(record) <= variant {
			continue
		}
		b, v := strings.TrimSpace(record[brand]), strings.TrimSpace(record[variant])
		if b == "" || v == "" {
			continue
		}
		seen[b+" "+v] = struct{}{}
	}

	products := make([]string, 0, len(seen))
	for name := range seen {
		products = append(products, name)
	}
	sort.Strings(products)
	return products, nil
}

// Select возвращает срез [offset, offset+limit). limit 0 означает "до конца".
func Select(terms []string, offset, limit int) []string {
	if offset >= len(terms) {
		return nil
	}
	if offset < 0 {
		offset = 0
	}
	end := len(terms)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return terms[offset:end]
}
