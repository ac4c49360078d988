// Package board orders the items of draggable lists and keeps drag-and-drop moves
// visible while the item store catches up.
//
// A Board holds the latest item snapshot, an Overlay of locally intended orders and the
// position/column each moved item was persisted with. Columns reconciles all three on
// every call; Refresh replaces the snapshot and prunes what it made redundant.
package board

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"lanes/internal/model"
)

// Source returns the current full item list.
type Source interface {
	ListItems(ctx context.Context) ([]model.Item, error)
}

// Persister writes a partial item update.
type Persister interface {
	PersistItem(ctx context.Context, id string, patch model.Patch) error
}

type Options struct {
	Columns []model.ColumnDef
	// Include filters the snapshot down to the items this board shows. Nil keeps all.
	Include func(model.Item) bool
	// Accept decides drop validity. Nil accepts every drop.
	Accept    AcceptFunc
	Persister Persister
	Logger    *slog.Logger
	// OnPersistError is called from the persisting goroutine after a failed write.
	OnPersistError func(itemID string, err error)
}

// intent is the latest write a move issued for an item. known lists the placements a
// snapshot may still show while that write is in flight: the one before the first
// move, then each earlier write. Anything else means someone else moved the item.
type intent struct {
	patch model.Patch
	known []model.Item
}

func (in intent) pending(it model.Item) bool {
	for _, k := range in.known {
		if k.PositionKey == it.PositionKey && k.ColumnID == it.ColumnID {
			return true
		}
	}
	return false
}

type Board struct {
	opts Options
	log  *slog.Logger

	mu      sync.RWMutex
	items   []model.Item
	overlay *Overlay
	intents map[string]intent
	// tails holds, per item, a channel closed when its latest queued write finishes.
	// Writes for one item run in the order their moves happened.
	tails map[string]chan struct{}

	inflight sync.WaitGroup
}

func New(opts Options) *Board {
	defs := append([]model.ColumnDef(nil), opts.Columns...)
	SortColumnDefs(defs)
	opts.Columns = defs
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Board{
		opts:    opts,
		log:     log,
		overlay: NewOverlay(),
		intents: map[string]intent{},
		tails:   map[string]chan struct{}{},
	}
}

func (b *Board) ColumnDefs() []model.ColumnDef {
	return append([]model.ColumnDef(nil), b.opts.Columns...)
}

// Refresh replaces the item snapshot. Overlay ids that left the item set are pruned
// and intents the snapshot now confirms or contradicts are dropped.
func (b *Board) Refresh(items []model.Item) {
	snap := make([]model.Item, 0, len(items))
	live := make(map[string]bool, len(items))
	for _, it := range items {
		if b.opts.Include != nil && !b.opts.Include(it) {
			continue
		}
		snap = append(snap, it)
		live[it.ID] = true
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = snap
	b.overlay.Prune(live)

	byID := make(map[string]model.Item, len(snap))
	for _, it := range snap {
		byID[it.ID] = it
	}
	for id, in := range b.intents {
		it, ok := byID[id]
		if !ok {
			delete(b.intents, id)
			continue
		}
		want := in.patch.Apply(it)
		if want.PositionKey == it.PositionKey && want.ColumnID == it.ColumnID {
			delete(b.intents, id)
			continue
		}
		if !in.pending(it) {
			b.log.Debug("move superseded by remote change", "item", id)
			delete(b.intents, id)
		}
	}
	b.log.Debug("board refreshed", "items", len(snap), "overlay_columns", b.overlay.Len(), "pending", len(b.intents))
}

// effective returns the snapshot with pending intents applied. Callers hold mu.
func (b *Board) effective() []model.Item {
	out := make([]model.Item, len(b.items))
	for i, it := range b.items {
		if in, ok := b.intents[it.ID]; ok {
			it = in.patch.Apply(it)
		}
		out[i] = it
	}
	return out
}

// Columns returns the display order of every column of the board.
func (b *Board) Columns() []Column {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Assemble(b.effective(), b.opts.Columns, b.overlay)
}

// Item returns the item as the board currently shows it.
func (b *Board) Item(id string) (model.Item, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, it := range b.effective() {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

// Move applies a drop: the overlay changes before Move returns, the store write happens
// in the background. Rejected drops and drops on self change nothing.
//
// Failed writes are logged and reported to Options.OnPersistError; the overlay is not
// rolled back.
func (b *Board) Move(ctx context.Context, d Drop) (MovePlan, error) {
	if d.TargetID == "" && d.ColumnID != "" && !b.hasColumn(d.ColumnID) {
		return MovePlan{}, fmt.Errorf("%w: %s", ErrUnknownColumn, d.ColumnID)
	}
	b.mu.Lock()
	plan, err := PlanMove(b.effective(), b.overlay, b.opts.Accept, d)
	if err != nil || plan.Noop {
		b.mu.Unlock()
		return plan, err
	}

	b.overlay.Remove(plan.ItemID)
	for col, list := range plan.Lists {
		b.overlay.Apply(col, list)
	}

	ctx = context.WithoutCancel(ctx)
	patches := plan.Patches()
	for id, p := range patches {
		b.remember(id, p)
		b.persist(ctx, id, p)
	}
	b.mu.Unlock()

	if plan.Rebalanced {
		b.log.Warn("rebalanced column keys", "column", plan.To, "items", len(plan.Keys))
	}
	b.log.Debug("item moved", "item", plan.ItemID, "from", plan.From, "to", plan.To, "key", plan.Key)
	return plan, nil
}

// Drop finishes drag with a drop on targetID. The drag returns to idle either way.
func (b *Board) Drop(ctx context.Context, drag *Drag, targetID string, pos Position) (MovePlan, error) {
	if drag.State() != Dragging {
		return MovePlan{}, ErrNotDragging
	}
	plan, err := b.Move(ctx, Drop{ItemID: drag.ItemID(), TargetID: targetID, Position: pos})
	drag.finish(err == nil)
	return plan, err
}

// DropAtEnd finishes drag by appending the item to columnID.
func (b *Board) DropAtEnd(ctx context.Context, drag *Drag, columnID string) (MovePlan, error) {
	if drag.State() != Dragging {
		return MovePlan{}, ErrNotDragging
	}
	plan, err := b.Move(ctx, Drop{ItemID: drag.ItemID(), ColumnID: columnID})
	drag.finish(err == nil)
	return plan, err
}

func (b *Board) hasColumn(id string) bool {
	for _, d := range b.opts.Columns {
		if d.ID == id {
			return true
		}
	}
	return false
}

// remember records p as the latest write for id. Callers hold mu.
func (b *Board) remember(id string, p model.Patch) {
	in, ok := b.intents[id]
	if !ok {
		for _, it := range b.items {
			if it.ID == id {
				in.known = []model.Item{it}
				break
			}
		}
	} else {
		in.known = append(in.known, in.patch.Apply(in.known[0]))
		if p.ColumnID == nil {
			p.ColumnID = in.patch.ColumnID
		}
	}
	in.patch = p
	b.intents[id] = in
}

// persist queues p behind any write still in flight for id. Callers hold mu.
func (b *Board) persist(ctx context.Context, id string, p model.Patch) {
	if b.opts.Persister == nil {
		return
	}
	prev := b.tails[id]
	done := make(chan struct{})
	b.tails[id] = done

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		defer func() {
			close(done)
			b.mu.Lock()
			if b.tails[id] == done {
				delete(b.tails, id)
			}
			b.mu.Unlock()
		}()
		if prev != nil {
			<-prev
		}
		if err := b.opts.Persister.PersistItem(ctx, id, p); err != nil {
			b.log.Error("persist item failed", "item", id, "err", err)
			if b.opts.OnPersistError != nil {
				b.opts.OnPersistError(id, err)
			}
		}
	}()
}

// Wait blocks until every background write started so far has finished.
func (b *Board) Wait() {
	b.inflight.Wait()
}
