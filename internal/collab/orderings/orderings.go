// Package orderings provides the default in-process Orderings
// collaborator: a directed acyclic graph over (step, timing) endpoints.
// Binary (non-durative) plans only ever add AtStart edges, which makes
// this the same thing as a plain step-precedence DAG; durative plans use
// both AtStart and AtEnd nodes per step, so one structure serves both
// the binary and the temporal case the core spec's §3 Ordering
// distinguishes.
package orderings

import (
	"github.com/aretw0/pocl/internal/collab"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
)

type node struct {
	step model.StepID
	t    formula.Timing
}

type edge struct {
	to     node
	weight float64
}

// Graph is an immutable precedence DAG. The zero value is the empty
// graph (no constraints).
type Graph struct {
	adj map[node][]edge
}

// New returns the empty orderings graph.
func New() *Graph {
	return &Graph{}
}

func (g *Graph) clone() *Graph {
	adj := make(map[node][]edge, len(g.adj))
	for k, v := range g.adj {
		adj[k] = append([]edge(nil), v...)
	}
	return &Graph{adj: adj}
}

// reaches reports whether there is a directed path from -> to of length
// >= 0 (a node always reaches itself).
func (g *Graph) reaches(from, to node) bool {
	if from == to {
		return true
	}
	seen := map[node]bool{from: true}
	stack := []node{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.adj[n] {
			if e.to == to {
				return true
			}
			if !seen[e.to] {
				seen[e.to] = true
				stack = append(stack, e.to)
			}
		}
	}
	return false
}

// PossiblyBefore implements collab.Orderings.
func (g *Graph) PossiblyBefore(before model.StepID, t1 formula.Timing, after model.StepID, t2 formula.Timing) bool {
	a := node{before, t1}
	b := node{after, t2}
	// before-t1 can occur no later than after-t2 unless the graph
	// already forces the reverse (after-t2 precedes before-t1).
	return !g.reaches(b, a) || a == b
}

// PossiblyNotBefore implements collab.Orderings.
func (g *Graph) PossiblyNotBefore(before model.StepID, t1 formula.Timing, after model.StepID, t2 formula.Timing) bool {
	a := node{before, t1}
	b := node{after, t2}
	return !g.reaches(a, b) || a == b
}

// PossiblyNotAfter implements collab.Orderings.
func (g *Graph) PossiblyNotAfter(before model.StepID, t1 formula.Timing, after model.StepID, t2 formula.Timing) bool {
	return g.PossiblyNotBefore(before, t1, after, t2)
}

// PossiblyConcurrent implements collab.Orderings.
func (g *Graph) PossiblyConcurrent(s1, s2 model.StepID) bool {
	if s1 == s2 {
		return false
	}
	a1, a2 := node{s1, formula.AtStart}, node{s2, formula.AtStart}
	e1, e2 := node{s1, formula.AtEnd}, node{s2, formula.AtEnd}
	return !g.reaches(a1, a2) && !g.reaches(a2, a1) && !g.reaches(e1, a2) && !g.reaches(e2, a1)
}

// Refine implements collab.Orderings.
func (g *Graph) Refine(o collab.Ordering) (collab.Orderings, bool) {
	from := node{o.BeforeID, o.T1}
	to := node{o.AfterID, o.T2}
	if from == to {
		return g, true
	}
	if g.reaches(to, from) {
		return g, false
	}
	next := g.clone()
	next.adj[from] = append(next.adj[from], edge{to: to, weight: o.Weight})
	return next, true
}

// Schedule implements collab.Orderings: it computes earliest times as
// longest weighted paths from start's AtStart node, treating every step's
// AtStart node as preceding its own AtEnd node, and reports the earliest
// start and end of the end step. No backward pass is made, so the latest
// times equal the earliest ones. This is a simplification of a full
// temporal CSP solver (see DESIGN.md).
func (g *Graph) Schedule(start, end model.StepID) (collab.Makespan, bool) {
	startNode := node{start, formula.AtStart}
	endNode := node{end, formula.AtEnd}
	h := g.clone()
	for _, n := range append(g.allNodes(), startNode, node{end, formula.AtStart}) {
		if n.t == formula.AtStart {
			h.adj[n] = append(h.adj[n], edge{to: node{n.step, formula.AtEnd}})
		}
	}
	if !h.reaches(startNode, endNode) {
		return collab.Makespan{}, false
	}
	earliest := h.longestPathFrom(startNode)
	ee := earliest[node{end, formula.AtStart}]
	eend := earliest[endNode]
	return collab.Makespan{
		EarliestStart: ee,
		LatestStart:   ee,
		EarliestEnd:   eend,
		LatestEnd:     eend,
	}, true
}

func (g *Graph) longestPathFrom(origin node) map[node]float64 {
	dist := map[node]float64{origin: 0}
	// Simple relaxation over the (acyclic, by invariant) graph; a fixed
	// number of passes bounded by node count suffices since there are no
	// cycles.
	order := g.allNodes()
	for range order {
		changed := false
		for _, n := range order {
			d, ok := dist[n]
			if !ok {
				continue
			}
			for _, e := range g.adj[n] {
				nd := d + maxWeight(e.weight)
				if cur, ok := dist[e.to]; !ok || nd > cur {
					dist[e.to] = nd
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return dist
}

func maxWeight(w float64) float64 {
	if w < 0 {
		return 0
	}
	return w
}

func (g *Graph) allNodes() []node {
	seen := map[node]bool{}
	var out []node
	for n, es := range g.adj {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
		for _, e := range es {
			if !seen[e.to] {
				seen[e.to] = true
				out = append(out, e.to)
			}
		}
	}
	return out
}
