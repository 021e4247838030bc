package discovery

// Partition делит термины на k почти равных частей без изменения порядка.
// Первые len(terms)%k частей получают на один элемент больше.
func Partition(terms []string, k int) [][]string {
	if k < 1 {
		k = 1
	}

	parts := make([][]string, k)
	size, extra := len(terms)/k, len(terms)%k

	start := 0
	for i := 0; i < k; i++ {
		end := start + size
		if i < extra {
			end++
		}
		parts[i] = terms[start:end:end]
		start = end
	}

	return parts
}

// Concat склеивает результаты воркеров в порядке их индексов
func Concat(slots [][]Record) []Record {
	total := 0
	for _, slot := range slots {
		total += len(slot)
	}

	out := make([]Record, 0, total)
	for _, slot := range slots {
		out = append(out, slot...)
	}
	return out
}
