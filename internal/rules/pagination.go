package rules

const (
	// DefaultPageSize is the number of players per standings page
	DefaultPageSize = 25

	// DefaultPaginationThreshold is the player count at which paging starts
	DefaultPaginationThreshold = 50
)

// PageOptions configures Paginate. Zero values fall back to the defaults.
type PageOptions struct {
	PageSize  int
	Threshold int
}

func (o PageOptions) withDefaults() PageOptions {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.Threshold <= 0 {
		o.Threshold = DefaultPaginationThreshold
	}
	return o
}

// Page is one window of a sorted list
type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	TotalItems int
	Paginated  bool
}

// HasNext returns true if a later page exists
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrev returns true if an earlier page exists
func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}

// Paginate returns the 1-based page of items. Below the threshold every item is
// returned on a single page. Pages outside [1, TotalPages] are clamped.
func Paginate[T any](items []T, page int, opts PageOptions) Page[T] {
	opts = opts.withDefaults()
	total := len(items)

	if total < opts.Threshold {
		return Page[T]{
			Items:      items,
			Page:       1,
			TotalPages: 1,
			TotalItems: total,
		}
	}

	totalPages := (total + opts.PageSize - 1) / opts.PageSize
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * opts.PageSize
	end := start + opts.PageSize
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
		Paginated:  true,
	}
}
