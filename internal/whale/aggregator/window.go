package aggregator

import (
	"slices"
	"sort"

	"github.com/edwingeng/deque/v2"

	"github.com/shandysiswandi/xrpwhale/internal/whale/entity"
)

// recentWindow keeps the last capacity entries in insertion order.
type recentWindow struct {
	items    *deque.Deque[entity.AggregateEntry]
	capacity int
}

func newRecentWindow(capacity int) *recentWindow {
	return &recentWindow{
		items:    deque.NewDeque[entity.AggregateEntry](),
		capacity: capacity,
	}
}

// pushFIFO appends e and evicts the oldest entries beyond capacity.
// It returns how many entries were evicted.
func (w *recentWindow) pushFIFO(e entity.AggregateEntry) int {
	w.items.PushBack(e)

	evicted := 0
	for w.items.Len() > w.capacity {
		w.items.PopFront()
		evicted++
	}
	return evicted
}

func (w *recentWindow) len() int {
	return w.items.Len()
}

// entries returns a copy, oldest first.
func (w *recentWindow) entries() []entity.AggregateEntry {
	out := w.items.Dump()
	if out == nil {
		return []entity.AggregateEntry{}
	}
	return out
}

// topWindow keeps the capacity highest amounts, descending. Among equal
// amounts the entry inserted first stays ahead.
type topWindow struct {
	items    []entity.AggregateEntry
	capacity int
}

func newTopWindow(capacity int) *topWindow {
	return &topWindow{
		items:    make([]entity.AggregateEntry, 0, capacity+1),
		capacity: capacity,
	}
}

// insertSorted places e after every entry with an amount >= e.Amount, then
// truncates to capacity. It reports whether e was kept.
func (w *topWindow) insertSorted(e entity.AggregateEntry) bool {
	idx := sort.Search(len(w.items), func(i int) bool {
		return w.items[i].Amount < e.Amount
	})
	if idx >= w.capacity {
		return false
	}

	w.items = slices.Insert(w.items, idx, e)
	w.truncate()
	return true
}

func (w *topWindow) truncate() {
	if len(w.items) > w.capacity {
		clear(w.items[w.capacity:])
		w.items = w.items[:w.capacity]
	}
}

func (w *topWindow) len() int {
	return len(w.items)
}

func (w *topWindow) entries() []entity.AggregateEntry {
	return slices.Clone(w.items)
}
