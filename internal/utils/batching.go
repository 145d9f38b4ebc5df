package utils

// Chunk splits items into consecutive groups of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		return nil
	}

	var batches [][]T
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end])
	}
	return batches
}
