package search

import (
	"container/heap"

	"github.com/aretw0/pocl/internal/config"
	"github.com/aretw0/pocl/internal/plan"
)

// planHeap is a min-heap of plans ordered by rank — container/heap's
// Pop always returns the smallest, which per computeRank's convention is
// the best plan.
type planHeap []plan.Plan

func (h planHeap) Len() int            { return len(h) }
func (h planHeap) Less(i, j int) bool  { return lessRank(h[i].Rank, h[j].Rank) }
func (h planHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *planHeap) Push(x any)         { *h = append(*h, x.(plan.Plan)) }
func (h *planHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// orderQueue is one flaw order's queue plus its round-robin bookkeeping.
type orderQueue struct {
	name       string
	selector   Selector
	heap       planHeap
	limit      int // 0 means unlimited
	expansions int
	dead       bool
}

// Frontier is the round-robin collection of per-order priority queues
// core spec §4.2 describes: "one priority queue per flaw-selection
// order... hold a current_order, a next_switch counter, and a count of
// orders still alive".
type Frontier struct {
	queues      []*orderQueue
	currentIdx  int
	nextSwitch  int
	cycleLength int
	alive       int
}

// NewFrontier builds a Frontier from the configured flaw orders and
// their per-order expansion limits.
func NewFrontier(p config.Parameters) *Frontier {
	f := &Frontier{nextSwitch: 1}
	for i, name := range p.FlawOrders {
		limit := 0
		if i < len(p.SearchLimits) {
			limit = p.SearchLimits[i]
		}
		sel := Selectors[name]
		if sel == nil {
			sel = Selectors["default"]
		}
		q := &orderQueue{name: name, selector: sel, limit: limit}
		heap.Init(&q.heap)
		f.queues = append(f.queues, q)
	}
	if len(f.queues) == 0 {
		sel := Selectors["default"]
		q := &orderQueue{name: "default", selector: sel}
		heap.Init(&q.heap)
		f.queues = append(f.queues, q)
	}
	f.alive = len(f.queues)
	f.cycleLength = len(f.queues)
	return f
}

// Push adds p to every live order's queue — each order maintains its own
// view of the full frontier, since the choice of which flaw to repair
// (driven by the active order) affects only which flaw is selected, not
// which plans exist.
func (f *Frontier) Push(p plan.Plan) {
	for _, q := range f.queues {
		if q.dead {
			continue
		}
		heap.Push(&q.heap, p)
	}
}

// Len reports the number of plans held in the currently active order's
// queue.
func (f *Frontier) Len() int {
	if len(f.queues) == 0 {
		return 0
	}
	return f.queues[f.currentIdx].heap.Len()
}

// Empty reports whether every live queue is empty.
func (f *Frontier) Empty() bool {
	for _, q := range f.queues {
		if !q.dead && q.heap.Len() > 0 {
			return false
		}
	}
	return true
}

// DrainDead frees up to 4 entries from dead queues per call, amortizing
// destruction the way core spec §4.2's dead-queue cleanup describes.
func (f *Frontier) DrainDead() {
	freed := 0
	for _, q := range f.queues {
		if !q.dead {
			continue
		}
		for freed < 4 && q.heap.Len() > 0 {
			heap.Pop(&q.heap)
			freed++
		}
		if freed >= 4 {
			return
		}
	}
}

// Pop removes and returns the best plan from the currently active
// order's queue, reporting ok=false if the active order's queue (and
// every other live queue) is empty.
func (f *Frontier) Pop() (plan.Plan, bool) {
	if f.alive == 0 {
		return plan.Plan{}, false
	}
	q := f.currentQueue()
	if q == nil {
		return plan.Plan{}, false
	}
	if q.heap.Len() == 0 {
		// The active order ran dry without hitting its limit; rotate to
		// the next live order and try again, unless every live queue is
		// empty.
		if f.Empty() || !f.rotate() {
			return plan.Plan{}, false
		}
		return f.Pop()
	}
	v := heap.Pop(&q.heap).(plan.Plan)
	return v, true
}

// Advance applies the round-robin bookkeeping after one expansion: retire
// the active order if it hit its limit, else rotate if it hit
// next_switch, doubling next_switch on a full cycle.
func (f *Frontier) Advance() {
	q := f.currentQueue()
	if q == nil {
		return
	}
	q.expansions++
	if q.limit > 0 && q.expansions >= q.limit {
		q.dead = true
		f.alive--
		f.rotate()
		return
	}
	if q.expansions >= f.nextSwitch {
		if f.rotate() && f.currentIdx == 0 {
			f.nextSwitch *= 2
		}
	}
}

func (f *Frontier) currentQueue() *orderQueue {
	if len(f.queues) == 0 {
		return nil
	}
	return f.queues[f.currentIdx]
}

// rotate advances currentIdx to the next live order, reporting whether
// any live order remains.
func (f *Frontier) rotate() bool {
	if f.alive == 0 {
		return false
	}
	n := len(f.queues)
	for i := 1; i <= n; i++ {
		next := (f.currentIdx + i) % n
		if !f.queues[next].dead {
			f.currentIdx = next
			return true
		}
	}
	return false
}

// Selector returns the currently active order's flaw-selection policy.
func (f *Frontier) Selector() Selector {
	q := f.currentQueue()
	if q == nil {
		return Selectors["default"]
	}
	return q.selector
}

// TotalSize sums every live queue's length, the quantity
// metrics.FrontierSize reports.
func (f *Frontier) TotalSize() int {
	n := 0
	for _, q := range f.queues {
		if !q.dead {
			n += q.heap.Len()
		}
	}
	return n
}
