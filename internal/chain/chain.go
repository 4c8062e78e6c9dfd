// Package chain implements a persistent cons list used throughout the
// planner to share structure across forked partial plans without
// deep-copying on every refinement.
//
// The original design (§3, §9 of the core spec) describes hand-managed
// reference counts on each cell so that releasing a plan frees only the
// cells unique to it. In Go the garbage collector already gives us that
// for free: a cell becomes unreachable, and is reclaimed, exactly when
// the last Chain referencing it (directly or through a shared tail) is
// dropped. Re-implementing manual refcounting on top of a GC would only
// add bookkeeping a Go program doesn't need — see DESIGN.md. What we do
// keep from the original design is the *shape*: O(1) prepend, structural
// sharing of the tail, and a non-destructive Remove.
package chain

// Chain is an immutable singly-linked list. The zero value is the empty
// chain. Prepending never mutates an existing Chain; it returns a new head
// that shares its tail with every other Chain built from that tail.
type Chain[T any] struct {
	head *cell[T]
	n    int
}

type cell[T any] struct {
	value T
	next  *cell[T]
}

// Empty returns the empty chain.
func Empty[T any]() Chain[T] {
	return Chain[T]{}
}

// Len returns the number of elements.
func (c Chain[T]) Len() int {
	return c.n
}

// IsEmpty reports whether the chain has no elements.
func (c Chain[T]) IsEmpty() bool {
	return c.head == nil
}

// Cons returns a new chain with v prepended, sharing c's cells as its
// tail.
func Cons[T any](v T, c Chain[T]) Chain[T] {
	return Chain[T]{
		head: &cell[T]{value: v, next: c.head},
		n:    c.n + 1,
	}
}

// Head returns the first element and true, or the zero value and false if
// the chain is empty.
func (c Chain[T]) Head() (T, bool) {
	if c.head == nil {
		var zero T
		return zero, false
	}
	return c.head.value, true
}

// Tail returns the chain without its first element. The tail of an empty
// chain is the empty chain.
func (c Chain[T]) Tail() Chain[T] {
	if c.head == nil {
		return c
	}
	return Chain[T]{head: c.head.next, n: c.n - 1}
}

// Each calls f for every element, head to tail, stopping early if f
// returns false.
func (c Chain[T]) Each(f func(T) bool) {
	for n := c.head; n != nil; n = n.next {
		if !f(n.value) {
			return
		}
	}
}

// Slice materializes the chain into a freshly allocated slice, head
// first.
func (c Chain[T]) Slice() []T {
	out := make([]T, 0, c.n)
	c.Each(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// FromSlice builds a chain from a slice, preserving order: xs[0] becomes
// the chain's head.
func FromSlice[T any](xs []T) Chain[T] {
	c := Empty[T]()
	for i := len(xs) - 1; i >= 0; i-- {
		c = Cons(xs[i], c)
	}
	return c
}

// Remove returns a new chain with the first element matching eq omitted,
// and true, preserving structural sharing of the unaffected suffix. If no
// element matches, it returns the original chain unchanged and false.
//
// Cells before the match are rebuilt (O(k) new cells where k is the
// removed element's position); cells after the match are shared verbatim
// with the original chain, which keeps the operation cheap for removals
// near the front — the common case when a flaw just pushed onto the
// chain is the one being repaired.
func (c Chain[T]) Remove(eq func(T) bool) (Chain[T], bool) {
	var prefix []T
	cur := c.head
	for cur != nil {
		if eq(cur.value) {
			result := Chain[T]{head: cur.next, n: c.n - len(prefix) - 1}
			for i := len(prefix) - 1; i >= 0; i-- {
				result = Cons(prefix[i], result)
			}
			return result, true
		}
		prefix = append(prefix, cur.value)
		cur = cur.next
	}
	return c, false
}
