// Package aggregator holds the two rolling whale windows.
package aggregator

import (
	"sync"

	"github.com/shandysiswandi/xrpwhale/internal/whale/entity"
)

const (
	RecentCapacity = 5
	TopCapacity    = 5
)

// Aggregator owns the recent and top windows. One mutex guards both so a
// reader always sees them at the same insert.
type Aggregator struct {
	mu     sync.Mutex
	recent *recentWindow
	top    *topWindow
	total  uint64
}

func New() *Aggregator {
	return &Aggregator{
		recent: newRecentWindow(RecentCapacity),
		top:    newTopWindow(TopCapacity),
	}
}

// Insert adds e to both windows in one critical section.
func (a *Aggregator) Insert(e entity.AggregateEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.recent.pushFIFO(e)
	a.top.insertSorted(e)
	a.total++
}

// Snapshot returns copies of both windows taken under the same lock.
func (a *Aggregator) Snapshot() (recent, top []entity.AggregateEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.recent.entries(), a.top.entries()
}

// Len returns the current window sizes.
func (a *Aggregator) Len() (recent, top int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.recent.len(), a.top.len()
}

// Inserted returns how many entries were inserted since start.
func (a *Aggregator) Inserted() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.total
}
