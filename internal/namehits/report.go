package namehits

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Rank возвращает копию результатов, отсортированную по убыванию числа результатов.
// При равенстве сохраняется исходный порядок.
func Rank(results []Result) []Result {
	ranked := make([]Result, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Hits > ranked[j].Hits
	})
	return ranked
}

// Top возвращает первые n результатов ранжированного списка
func Top(ranked []Result, n int) []Result {
	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}

// CountMissing считает имена со значением-заглушкой
func CountMissing(results []Result) int {
	missing := 0
	for _, r := range results {
		if r.Hits == NoResult {
			missing++
		}
	}
	return missing
}

// Report печатает таблицу лидеров и число имен без результатов
func Report(w io.Writer, ranked []Result, topN int) {
	fmt.Fprintln(w, "The most popular names")

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Name", "Results"})

	for i, r := range Top(ranked, topN) {
		t.AppendRow(table.Row{i + 1, r.Name, r.Hits})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Fprintf(w, "\nBut we did not find results for %d names on the list\n", CountMissing(ranked))
}

// Summary краткий текстовый отчет для уведомлений
func Summary(ranked []Result, topN int) string {
	var b strings.Builder
	b.WriteString("The most popular names:\n")
	for _, r := range Top(ranked, topN) {
		fmt.Fprintf(&b, "%s with %d results\n", r.Name, r.Hits)
	}
	fmt.Fprintf(&b, "No results for %d of %d names", CountMissing(ranked), len(ranked))
	return b.String()
}
