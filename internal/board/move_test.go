package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lanes/internal/model"
	"lanes/internal/rank"
)

func abc() []model.Item {
	return []model.Item{
		item("A", "colA", "a0"),
		item("B", "colA", "a1"),
		item("C", "colA", "a2"),
	}
}

func TestPlanMove_SameColumnAfter(t *testing.T) {
	plan, err := PlanMove(abc(), NewOverlay(), nil, Drop{ItemID: "A", TargetID: "B", Position: After})
	require.NoError(t, err)

	want, err := rank.Generate("a1", "a2")
	require.NoError(t, err)
	assert.Equal(t, want, plan.Key)
	assert.Greater(t, plan.Key, "a1")
	assert.Less(t, plan.Key, "a2")
	assert.False(t, plan.CrossColumn())
	assert.False(t, plan.Rebalanced)
	assert.Equal(t, map[string]string{"A": plan.Key}, plan.Keys)
	assert.Equal(t, []string{"B", "A", "C"}, plan.Lists["colA"])
}

func TestPlanMove_BeforeFirstIsUnboundedBelow(t *testing.T) {
	plan, err := PlanMove(abc(), nil, nil, Drop{ItemID: "C", TargetID: "A", Position: Before})
	require.NoError(t, err)
	assert.Less(t, plan.Key, "a0")
	assert.Equal(t, []string{"C", "A", "B"}, plan.Lists["colA"])
}

func TestPlanMove_AfterLastIsUnboundedAbove(t *testing.T) {
	plan, err := PlanMove(abc(), nil, nil, Drop{ItemID: "A", TargetID: "C", Position: After})
	require.NoError(t, err)
	assert.Greater(t, plan.Key, "a2")
	assert.Equal(t, []string{"B", "C", "A"}, plan.Lists["colA"])
}

func TestPlanMove_AlreadyInPlaceIsNoop(t *testing.T) {
	plan, err := PlanMove(abc(), nil, nil, Drop{ItemID: "A", TargetID: "B", Position: Before})
	require.NoError(t, err)
	assert.True(t, plan.Noop)
	assert.Empty(t, plan.Keys)
	assert.Empty(t, plan.Patches())
}

func TestPlanMove_CrossColumn(t *testing.T) {
	items := append(abc(), item("X", "colB", "m"), item("Y", "colB", "n"))

	plan, err := PlanMove(items, nil, nil, Drop{ItemID: "B", TargetID: "X", Position: After})
	require.NoError(t, err)

	assert.True(t, plan.CrossColumn())
	assert.Equal(t, "colA", plan.From)
	assert.Equal(t, "colB", plan.To)
	assert.Greater(t, plan.Key, "m")
	assert.Less(t, plan.Key, "n")
	assert.Equal(t, []string{"X", "B", "Y"}, plan.Lists["colB"])
	assert.Equal(t, []string{"A", "C"}, plan.Lists["colA"])

	p := plan.Patches()["B"]
	require.NotNil(t, p.ColumnID)
	assert.Equal(t, "colB", *p.ColumnID)
	assert.Equal(t, plan.Key, *p.PositionKey)
	assert.True(t, p.Silent)
}

func TestPlanMove_RejectedDrop(t *testing.T) {
	items := append(abc(), item("X", "colB", "m"))
	deny := func(it model.Item, col string) bool { return col != "colB" }

	_, err := PlanMove(items, nil, deny, Drop{ItemID: "A", TargetID: "X", Position: Before})
	assert.True(t, errors.Is(err, ErrDropRejected))
}

func TestPlanMove_SelfAndUnknown(t *testing.T) {
	_, err := PlanMove(abc(), nil, nil, Drop{ItemID: "A", TargetID: "A"})
	assert.True(t, errors.Is(err, ErrSelfDrop))

	_, err = PlanMove(abc(), nil, nil, Drop{ItemID: "nope", TargetID: "A"})
	assert.True(t, errors.Is(err, ErrUnknownItem))

	_, err = PlanMove(abc(), nil, nil, Drop{ItemID: "A", TargetID: "nope"})
	assert.True(t, errors.Is(err, ErrUnknownItem))
}

func TestPlanMove_EqualLegacyKeysRebalance(t *testing.T) {
	// Legacy items without keys all compare as the default; no key fits between two of them.
	items := []model.Item{
		item("L1", "colA", ""),
		item("L2", "colA", ""),
		item("L3", "colA", ""),
		item("N", "colA", "a"),
	}
	plan, err := PlanMove(items, nil, nil, Drop{ItemID: "N", TargetID: "L2", Position: Before})
	require.NoError(t, err)
	require.True(t, plan.Rebalanced)
	assert.Equal(t, []string{"L1", "N", "L2", "L3"}, plan.Lists["colA"])

	// Applying every planned key yields the intended order.
	for i := range items {
		if k, ok := plan.Keys[items[i].ID]; ok {
			items[i].PositionKey = k
		}
	}
	assert.Equal(t, []string{"L1", "N", "L2", "L3"}, ids(Canonical(items, "colA")))
}

func TestPlanMove_UppercaseLegacyKeysRebalance(t *testing.T) {
	// Uppercase keys sort before every lowercase key and cannot bound a new one.
	items := []model.Item{
		item("U1", "colA", "A"),
		item("U2", "colA", "M"),
		item("X", "colA", "z"),
	}
	plan, err := PlanMove(items, nil, nil, Drop{ItemID: "X", TargetID: "U2", Position: Before})
	require.NoError(t, err)
	require.True(t, plan.Rebalanced)

	for i := range items {
		if k, ok := plan.Keys[items[i].ID]; ok {
			items[i].PositionKey = k
		}
	}
	assert.Equal(t, []string{"U1", "X", "U2"}, ids(Canonical(items, "colA")))
	for _, k := range plan.Keys {
		assert.True(t, rank.Valid(k), k)
	}
}

func TestPlanMove_UsesDisplayedOrderForOverlay(t *testing.T) {
	ov := NewOverlay()
	ov.Apply("colA", []string{"C", "A", "B"})

	plan, err := PlanMove(abc(), ov, nil, Drop{ItemID: "B", TargetID: "C", Position: After})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, plan.Lists["colA"])
}

func TestParsePosition(t *testing.T) {
	p, err := ParsePosition(" After ")
	require.NoError(t, err)
	assert.Equal(t, After, p)
	assert.Equal(t, "after", p.String())

	_, err = ParsePosition("between")
	assert.Error(t, err)
}

func TestPlanMove_ColumnEnd(t *testing.T) {
	items := append(abc(), item("X", "colB", "m"))

	plan, err := PlanMove(items, nil, nil, Drop{ItemID: "A", ColumnID: "colB"})
	require.NoError(t, err)
	assert.Greater(t, plan.Key, "m")
	assert.Equal(t, []string{"X", "A"}, plan.Lists["colB"])
	assert.Equal(t, []string{"B", "C"}, plan.Lists["colA"])

	// Into an empty column.
	plan, err = PlanMove(items, nil, nil, Drop{ItemID: "A", ColumnID: "colC"})
	require.NoError(t, err)
	assert.Equal(t, rank.Default, plan.Key)
	assert.Equal(t, []string{"A"}, plan.Lists["colC"])

	// Last item dropped at the end of its own column.
	plan, err = PlanMove(items, nil, nil, Drop{ItemID: "C", ColumnID: "colA"})
	require.NoError(t, err)
	assert.True(t, plan.Noop)

	_, err = PlanMove(items, nil, nil, Drop{ItemID: "A"})
	assert.ErrorIs(t, err, ErrNoTarget)
}
