package view

import (
	"container/list"
	"sync"
)

// DefaultPagerCapacity bounds how many view cursors a pager remembers
const DefaultPagerCapacity = 10000

// Pager remembers the page a viewer is on and goes back to page 1 whenever the
// underlying dataset changes. The least recently used cursor is dropped once
// the pager is full.
type Pager struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	views    map[string]*list.Element
}

type pagerState struct {
	viewID      string
	page        int
	fingerprint string
}

// NewPager creates an empty pager holding at most capacity cursors. A
// capacity below 1 uses DefaultPagerCapacity.
func NewPager(capacity int) *Pager {
	if capacity < 1 {
		capacity = DefaultPagerCapacity
	}
	return &Pager{
		capacity: capacity,
		order:    list.New(),
		views:    make(map[string]*list.Element),
	}
}

// Resolve returns the page to show for a view. A request against a dataset
// whose fingerprint differs from the one last seen for this view is reset to
// page 1; otherwise the requested page (at least 1) is used and remembered.
func (p *Pager) Resolve(viewID, fingerprint string, requested int) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if requested < 1 {
		requested = 1
	}

	if el, ok := p.views[viewID]; ok {
		st := el.Value.(*pagerState)
		if st.fingerprint != fingerprint {
			requested = 1
		}
		st.page = requested
		st.fingerprint = fingerprint
		p.order.MoveToFront(el)
		return requested
	}

	p.views[viewID] = p.order.PushFront(&pagerState{viewID: viewID, page: requested, fingerprint: fingerprint})
	for p.order.Len() > p.capacity {
		oldest := p.order.Back()
		p.order.Remove(oldest)
		delete(p.views, oldest.Value.(*pagerState).viewID)
	}
	return requested
}

// Forget drops a view's cursor
func (p *Pager) Forget(viewID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if el, ok := p.views[viewID]; ok {
		p.order.Remove(el)
		delete(p.views, viewID)
	}
}
