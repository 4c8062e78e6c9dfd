// Package engine bundles the search session's shared, read-mostly
// dependencies into a single Context value, the core spec's §9 design
// note that the driver "should take an explicit search context object
// rather than relying on ambient globals". internal/refine and
// internal/search both depend on engine instead of on each other, which
// keeps the refinement operators (which need Domain/Problem/Graph to
// enumerate achievers and decomposition schemas) decoupled from the
// search driver (which owns the frontier and the expansion loop).
package engine

import (
	"log/slog"
	"math/rand"

	"github.com/aretw0/pocl/internal/collab"
	"github.com/aretw0/pocl/internal/config"
	"github.com/aretw0/pocl/internal/metrics"
	"github.com/aretw0/pocl/internal/problem"
)

// Context is the per-session bundle of everything a refinement operator
// or the search driver needs besides the Plan value itself.
type Context struct {
	Domain  *problem.Domain
	Problem *problem.Problem
	Graph   collab.PlanningGraph

	Logger  *slog.Logger
	Metrics metrics.Recorder
	Params  config.Parameters
	Rand    *rand.Rand

	nextPlanID int64
}

// New builds a Context. rng may be nil, in which case NextPlanID is still
// usable but any refinement operator requiring randomness (random tie
// order, flaw order) must fall back to a deterministic default.
func New(dom *problem.Domain, prob *problem.Problem, graph collab.PlanningGraph, logger *slog.Logger, rec metrics.Recorder, params config.Parameters, rng *rand.Rand) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Context{
		Domain:  dom,
		Problem: prob,
		Graph:   graph,
		Logger:  logger,
		Metrics: rec,
		Params:  params,
		Rand:    rng,
	}
}

// NextPlanID returns a fresh, monotonically increasing plan id. Plan ids
// are session-scoped, not globally unique, so a single Context's counter
// is sufficient; two concurrent sessions never compare ids against each
// other.
func (c *Context) NextPlanID() int64 {
	c.nextPlanID++
	return c.nextPlanID
}

// ObjectsOfType returns the object universe for a named type, the
// closure goal admission's Forall expansion and Bindings.Domain queries
// need but cannot themselves import internal/problem for (it would cycle
// back through internal/plan).
func (c *Context) ObjectsOfType(typ string) []string {
	return c.Domain.Objects[typ]
}
