package listing

import "slices"

// Page sizes used by the member and request views.
const (
	MembersPerPage  = 6
	RequestsPerPage = 5
)

// Controller owns the search, filter and page state of one collection view and
// derives the filtered set and the visible page from it.
//
// The filtered set is recomputed over the whole raw collection whenever the raw
// collection, the search term or the filter value changes, and every such
// recomputation moves the view back to page 1.
type Controller[T any] struct {
	match    Predicate[T]
	pageSize int

	raw         []T
	filtered    []T
	searchTerm  string
	filterValue string
	page        int
}

// NewController creates an empty controller showing page 1 with the "all" filter.
func NewController[T any](pageSize int, match Predicate[T]) *Controller[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Controller[T]{
		match:       match,
		pageSize:    pageSize,
		raw:         []T{},
		filtered:    []T{},
		filterValue: FilterAll,
		page:        1,
	}
}

// NewMemberController creates the controller behind the member directory.
func NewMemberController() *Controller[Member] {
	return NewController(MembersPerPage, MatchMember)
}

// NewRequestController creates the controller behind the incoming request list.
func NewRequestController() *Controller[SwapRequest] {
	return NewController(RequestsPerPage, MatchRequest)
}

// SetRaw replaces the whole collection.
func (c *Controller[T]) SetRaw(items []T) {
	c.raw = slices.Clone(items)
	if c.raw == nil {
		c.raw = []T{}
	}
	c.refilter()
}

// SetSearchTerm changes the search text.
func (c *Controller[T]) SetSearchTerm(term string) {
	c.searchTerm = term
	c.refilter()
}

// SetFilter changes the category filter. An empty value means "all".
func (c *Controller[T]) SetFilter(value string) {
	if value == "" {
		value = FilterAll
	}
	c.filterValue = value
	c.refilter()
}

// GoToPage moves to the requested page, clamped into [1, TotalPages()].
func (c *Controller[T]) GoToPage(page int) {
	c.page = max(1, min(page, c.TotalPages()))
}

// NextPage advances one page; it does nothing on the last page.
func (c *Controller[T]) NextPage() {
	if c.page < c.TotalPages() {
		c.page++
	}
}

// PreviousPage goes back one page; it does nothing on page 1.
func (c *Controller[T]) PreviousPage() {
	if c.page > 1 {
		c.page--
	}
}

// PageItems returns the visible slice of the filtered set.
func (c *Controller[T]) PageItems() []T {
	items, _ := Paginate(c.filtered, c.pageSize, c.page)
	return items
}

func (c *Controller[T]) TotalPages() int {
	_, total := Paginate(c.filtered, c.pageSize, c.page)
	return total
}

func (c *Controller[T]) Page() int             { return c.page }
func (c *Controller[T]) PageSize() int         { return c.pageSize }
func (c *Controller[T]) SearchTerm() string    { return c.searchTerm }
func (c *Controller[T]) FilterValue() string   { return c.filterValue }
func (c *Controller[T]) Raw() []T              { return slices.Clone(c.raw) }
func (c *Controller[T]) Filtered() []T         { return slices.Clone(c.filtered) }
func (c *Controller[T]) FilteredCount() int    { return len(c.filtered) }
func (c *Controller[T]) HasNextPage() bool     { return c.page < c.TotalPages() }
func (c *Controller[T]) HasPreviousPage() bool { return c.page > 1 }

func (c *Controller[T]) refilter() {
	filtered := make([]T, 0, len(c.raw))
	for _, item := range c.raw {
		if c.match(item, c.searchTerm, c.filterValue) {
			filtered = append(filtered, item)
		}
	}
	c.filtered = filtered
	c.page = 1
}
