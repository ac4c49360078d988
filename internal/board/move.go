package board

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"lanes/internal/model"
	"lanes/internal/rank"
)

var (
	ErrUnknownItem   = errors.New("unknown item")
	ErrSelfDrop      = errors.New("item dropped on itself")
	ErrDropRejected  = errors.New("drop rejected by target column")
	ErrNoTarget      = errors.New("drop has neither target item nor column")
	ErrUnknownColumn = errors.New("unknown column")
)

// Position says on which side of the target item a dragged item lands.
type Position int

const (
	Before Position = iota
	After
)

func (p Position) String() string {
	if p == After {
		return "after"
	}
	return "before"
}

func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "before":
		return Before, nil
	case "after":
		return After, nil
	default:
		return Before, fmt.Errorf("unknown position %q (want before|after)", s)
	}
}

// AcceptFunc decides whether item may enter columnID.
type AcceptFunc func(item model.Item, columnID string) bool

// Drop is a completed drag: ItemID lands on Position of TargetID. With no TargetID the
// item goes to the end of ColumnID, which is how empty columns are reached.
type Drop struct {
	ItemID   string
	TargetID string
	Position Position
	ColumnID string
}

// MovePlan is everything a drop changes. It is computed without side effects.
type MovePlan struct {
	ItemID string `json:"itemId" yaml:"itemId"`
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`

	// Key is the moved item's new position key.
	Key string `json:"positionKey" yaml:"positionKey"`
	// Keys holds every re-keyed item, the moved item included. It has more than one
	// entry only when neighbors could not bound a key and a window was rebalanced.
	Keys       map[string]string `json:"keys" yaml:"keys"`
	Rebalanced bool              `json:"rebalanced" yaml:"rebalanced"`

	// Lists are the overlay lists to store, by column.
	Lists map[string][]string `json:"-" yaml:"-"`

	// Noop is set when the item already sits at the requested spot.
	Noop bool `json:"noop" yaml:"noop"`
}

func (p MovePlan) CrossColumn() bool { return p.From != p.To }

// Patches returns the silent store updates realizing the plan.
func (p MovePlan) Patches() map[string]model.Patch {
	out := make(map[string]model.Patch, len(p.Keys))
	for id, k := range p.Keys {
		patch := model.Patch{PositionKey: model.StringPtr(k), Silent: true}
		if id == p.ItemID && p.CrossColumn() {
			patch.ColumnID = model.StringPtr(p.To)
		}
		out[id] = patch
	}
	return out
}

// PlanMove computes the effect of dropping d over items, the current item set with
// local intent applied. ov may be nil.
func PlanMove(items []model.Item, ov *Overlay, accept AcceptFunc, d Drop) (MovePlan, error) {
	di := indexOf(items, d.ItemID)
	if di < 0 {
		return MovePlan{}, fmt.Errorf("%w: %s", ErrUnknownItem, d.ItemID)
	}
	moved := items[di]
	to := strings.TrimSpace(d.ColumnID)
	if d.TargetID != "" {
		ti := indexOf(items, d.TargetID)
		if ti < 0 {
			return MovePlan{}, fmt.Errorf("%w: %s", ErrUnknownItem, d.TargetID)
		}
		if d.ItemID == d.TargetID {
			return MovePlan{}, ErrSelfDrop
		}
		to = items[ti].ColumnID
	} else if to == "" {
		return MovePlan{}, ErrNoTarget
	}
	if accept != nil && !accept(moved, to) {
		return MovePlan{}, fmt.Errorf("%w: %s into %q", ErrDropRejected, moved.ID, to)
	}

	plan := MovePlan{ItemID: moved.ID, From: moved.ColumnID, To: to}

	// Neighbors come from the target column's canonical order without the moved item.
	canon := Canonical(items, to)
	if i := indexOf(canon, moved.ID); i >= 0 {
		canon = slices.Delete(canon, i, i+1)
	}
	ins := len(canon)
	if d.TargetID != "" {
		ins = indexOf(canon, d.TargetID)
		if d.Position == After {
			ins++
		}
	}
	final := slices.Insert(slices.Clone(canon), ins, moved)

	// Overlay: the displayed order, not the canonical one, is what the user dragged in.
	current := displayOrder(items, to, ov)
	shown := withoutID(current, moved.ID)
	at := len(shown)
	if d.TargetID != "" {
		at = indexOf(shown, d.TargetID)
		if d.Position == After {
			at++
		}
	}
	targetList := slices.Insert(ids(shown), at, moved.ID)
	if !plan.CrossColumn() && slices.Equal(targetList, ids(current)) {
		plan.Noop = true
		return plan, nil
	}

	var lower, upper string
	if ins > 0 {
		lower = boundKey(canon[ins-1])
	}
	if ins < len(canon) {
		upper = boundKey(canon[ins])
	}
	if k, err := rank.Generate(lower, upper); err == nil {
		plan.Key = k
		plan.Keys = map[string]string{moved.ID: k}
	} else {
		keys, err := planRebalance(final, ins, d.Position == Before)
		if err != nil {
			return MovePlan{}, fmt.Errorf("rebalance %q: %w", to, err)
		}
		plan.Key = keys[moved.ID]
		plan.Keys = keys
		plan.Rebalanced = true
	}

	plan.Lists = map[string][]string{to: targetList}
	if plan.CrossColumn() {
		plan.Lists[plan.From] = ids(withoutID(displayOrder(items, plan.From, ov), moved.ID))
	}
	return plan, nil
}

func withoutID(items []model.Item, id string) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}
