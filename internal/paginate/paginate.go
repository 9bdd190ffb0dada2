// Package paginate slices ordered lists into fixed-size pages.
package paginate

// Page is one view over a list: either a single page or, with ShowAll, the
// whole list.
type Page[T any] struct {
	Items   []T
	Number  int
	Size    int
	Total   int
	Count   int
	ShowAll bool
}

// TotalPages is ceil(n/size). A non-positive size yields a single page.
func TotalPages(n, size int) int {
	if n <= 0 {
		return 0
	}
	if size <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// New returns page number (1-based) of items. Numbers outside [1, total] are
// clamped. ShowAll returns every item but keeps the clamped number so the
// paginated view can be restored.
func New[T any](items []T, number, size int, showAll bool) Page[T] {
	total := TotalPages(len(items), size)

	if number > total {
		number = total
	}
	if number < 1 {
		number = 1
	}

	p := Page[T]{
		Number:  number,
		Size:    size,
		Total:   total,
		Count:   len(items),
		ShowAll: showAll,
	}

	if showAll || size <= 0 {
		p.Items = items
		return p
	}

	start := (number - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	p.Items = items[start:end]
	return p
}

// Numbers lists every page number, for rendering page links.
func (p Page[T]) Numbers() []int {
	out := make([]int, p.Total)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func (p Page[T]) HasPrev() bool { return p.Number > 1 }

func (p Page[T]) HasNext() bool { return p.Number < p.Total }

func (p Page[T]) Prev() int { return p.Number - 1 }

func (p Page[T]) Next() int { return p.Number + 1 }

// Paginated reports whether page controls should be shown.
func (p Page[T]) Paginated() bool { return !p.ShowAll && p.Total > 1 }
