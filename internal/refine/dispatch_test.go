package refine_test

import (
	"testing"

	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/plan"
	"github.com/aretw0/pocl/internal/refine"
	"github.com/stretchr/testify/assert"
)

func TestRepairDispatchesOpenCondition(t *testing.T) {
	ctx := newTestContext(clearTableAction())
	p := emptyPlan()
	o := plan.OpenCondition{StepID: model.GoalID, Kind: plan.CondLiteral, Literal: lit("clear", formula.Obj("table")), When: formula.AtStart}

	succs := refine.Repair(ctx, p, o)
	assert.NotEmpty(t, succs)
}

