package dashboard

import (
	"fmt"
	"sync"
)

// OrderedRegion holds the order of a fixed set of card ids. The order is always a
// permutation of the defaults: ids are never added or removed, only moved.
type OrderedRegion struct {
	mu       sync.RWMutex
	code     string
	defaults []string
	order    []string
}

// NewOrderedRegion builds a region with the given default order.
func NewOrderedRegion(code string, ids []string) (*OrderedRegion, error) {
	if code == "" {
		return nil, ErrInvalidRegion
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("dashboard: region %s has no cards", code)
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("dashboard: region %s has an empty card id", code)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("dashboard: region %s duplicates card %s", code, id)
		}
		seen[id] = struct{}{}
	}
	return &OrderedRegion{
		code:     code,
		defaults: append([]string(nil), ids...),
		order:    append([]string(nil), ids...),
	}, nil
}

// Code returns the region code.
func (r *OrderedRegion) Code() string {
	return r.code
}

// Order returns a copy of the current order.
func (r *OrderedRegion) Order() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Contains reports whether id belongs to the region.
func (r *OrderedRegion) Contains(id string) bool {
	return indexOf(r.defaults, id) >= 0
}

// Move removes activeID from its slot and reinserts it at overID's slot. Items in
// between shift by one. It reports whether the order changed.
func (r *OrderedRegion) Move(activeID, overID string) bool {
	if activeID == "" || overID == "" || activeID == overID {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	from := indexOf(r.order, activeID)
	to := indexOf(r.order, overID)
	if from < 0 || to < 0 {
		return false
	}
	r.order = moveItem(r.order, from, to)
	return true
}

// Apply replaces the order with the given ids normalized to a permutation of the
// region's card set.
func (r *OrderedRegion) Apply(order []string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = applyOrderOverride(r.defaults, order)
	return append([]string(nil), r.order...)
}

// Reset restores the default order.
func (r *OrderedRegion) Reset() {
	r.mu.Lock()
	r.order = append([]string(nil), r.defaults...)
	r.mu.Unlock()
}

// moveItem returns a new slice with items[from] relocated to index to.
func moveItem(items []string, from, to int) []string {
	out := append([]string(nil), items...)
	if from == to {
		return out
	}
	item := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]string{item}, out[to:]...)...)
	return out
}

// applyOrderOverride orders ids by the override: known ids first in override order,
// unknown and repeated ids dropped, missing ids appended in default order.
func applyOrderOverride(ids []string, order []string) []string {
	if len(order) == 0 {
		return append([]string(nil), ids...)
	}
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	result := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(order))
	for _, id := range order {
		if _, ok := known[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		result = append(result, id)
		seen[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			result = append(result, id)
		}
	}
	return result
}

func indexOf(items []string, id string) int {
	for i, item := range items {
		if item == id {
			return i
		}
	}
	return -1
}
