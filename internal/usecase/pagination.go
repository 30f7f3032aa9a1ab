package usecase

// PageItems is the fixed page size shared by every list operation.
const PageItems = 25

func Offset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageItems
}

func TotalPages(totalResults int) int {
	if totalResults <= 0 {
		return 0
	}
	return (totalResults + PageItems - 1) / PageItems
}

// SlicePage cuts a page out of an already-loaded list. Orders for creators are
// collected across stores and paged in memory, so this mirrors Offset.
func SlicePage[T any](items []T, page int) []T {
	start := Offset(page)
	if start > len(items) {
		start = len(items)
	}
	end := start + PageItems
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
