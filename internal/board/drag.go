package board

import "errors"

var (
	ErrNotDragging     = errors.New("no drag in progress")
	ErrAlreadyDragging = errors.New("a drag is already in progress")
)

type DragState int

const (
	Idle DragState = iota
	Dragging
	DroppedValid
	DroppedInvalid
)

func (s DragState) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case DroppedValid:
		return "dropped-valid"
	case DroppedInvalid:
		return "dropped-invalid"
	default:
		return "idle"
	}
}

// Drag tracks one drag gesture: idle -> dragging -> dropped-valid|dropped-invalid -> idle.
// The dropped states are transient; Outcome reports the last one.
type Drag struct {
	state   DragState
	itemID  string
	outcome DragState
}

func (d *Drag) Start(itemID string) error {
	if d.state == Dragging {
		return ErrAlreadyDragging
	}
	d.state = Dragging
	d.itemID = itemID
	return nil
}

// Cancel ends a drag without a drop. It has no effect on any board.
func (d *Drag) Cancel() {
	d.state = Idle
	d.itemID = ""
}

func (d *Drag) State() DragState   { return d.state }
func (d *Drag) ItemID() string     { return d.itemID }
func (d *Drag) Outcome() DragState { return d.outcome }

func (d *Drag) finish(valid bool) {
	d.outcome = DroppedInvalid
	if valid {
		d.outcome = DroppedValid
	}
	d.state = Idle
	d.itemID = ""
}
