package content

type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
}

func (p Page[T]) HasPrev() bool { return p.Number > 1 }
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }
func (p Page[T]) Prev() int     { return p.Number - 1 }
func (p Page[T]) Next() int     { return p.Number + 1 }

// Paginate returns the 1-based page of items. Pages past either end are empty.
func Paginate[T any](items []T, page, size int) Page[T] {
	p := Page[T]{Number: page, TotalPages: TotalPages(len(items), size)}
	if size <= 0 || page < 1 || page > p.TotalPages {
		p.Items = []T{}
		return p
	}

	start := (page - 1) * size
	end := min(start+size, len(items))
	p.Items = items[start:end]
	return p
}

func TotalPages(n, size int) int {
	if size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage bounds a requested page to [1, totalPages]; zero pages clamp to 1.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}
