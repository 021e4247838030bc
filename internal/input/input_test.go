package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "beer_classification.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadProducts(t *testing.T) {
	path := writeInput(t, "Id;Product_MAJOR_BRAND;Product_VARIANT;Size\n"+
		"1;Heineken;Pilsener;33cl\n"+
		"2;Amstel;Lager;50cl\n"+
		"3;Heineken;Pilsener;50cl\n"+
		"4;Grolsch;;33cl\n"+
		"5;;Weizen;33cl\n"+
		"6;Amstel;Radler;33cl\n")

	got, err := ReadProducts(path, ';')
	require.NoError(t, err)
	assert.Equal(t, []string{"Amstel Lager", "Amstel Radler", "Heineken Pilsener"}, got)
}

func TestReadProducts_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "header only", content: "Product_MAJOR_BRAND;Product_VARIANT\n", wantErr: "no data records"},
		{name: "missing column", content: "Product_MAJOR_BRAND;Name\nA;B\n", wantErr: "Product_VARIANT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadProducts(writeInput(t, tt.content), ';')
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	_, err := ReadProducts(filepath.Join(t.TempDir(), "missing.csv"), ';')
	assert.Error(t, err)
}

func TestSelect(t *testing.T) {
	terms := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name          string
		offset, limit int
		want          []string
	}{
		{name: "first two", offset: 0, limit: 2, want: []string{"a", "b"}},
		{name: "middle", offset: 1, limit: 3, want: []string{"b", "c", "d"}},
		{name: "limit past end", offset: 3, limit: 10, want: []string{"d", "e"}},
		{name: "no limit", offset: 2, limit: 0, want: []string{"c", "d", "e"}},
		{name: "offset past end", offset: 5, limit: 2, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Select(terms, tt.offset, tt.limit))
		})
	}
}
