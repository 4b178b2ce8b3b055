package batch

import (
	"recruitflow/internal/models"
)

// Count returns how many batches of the given size cover n items.
func Count(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Plan partitions items into contiguous batches of the given size. The
// last batch may be shorter. Batches share the backing array of items.
func Plan(items []models.ResumeRef, size int) [][]models.ResumeRef {
	if len(items) == 0 || size <= 0 {
		return nil
	}
	plan := make([][]models.ResumeRef, 0, Count(len(items), size))
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		plan = append(plan, items[start:end])
	}
	return plan
}
