package board

// Overlay records the locally intended order of columns touched by moves that the
// item store may not reflect yet.
//
// An id appears at most once per column, and Board keeps it in at most one column.
// Overlay is not safe for concurrent use; Board guards it.
type Overlay struct {
	lists map[string][]string
}

func NewOverlay() *Overlay {
	return &Overlay{lists: map[string][]string{}}
}

// Apply replaces the list of columnID. Duplicate ids keep their first occurrence and
// an empty list removes the column.
func (o *Overlay) Apply(columnID string, ids []string) {
	if o.lists == nil {
		o.lists = map[string][]string{}
	}
	list := dedupeIDs(ids)
	if len(list) == 0 {
		delete(o.lists, columnID)
		return
	}
	o.lists[columnID] = list
}

// Prune removes ids that are no longer live and drops emptied columns. Call it once
// per item-set refresh.
func (o *Overlay) Prune(live map[string]bool) {
	for col, list := range o.lists {
		kept := list[:0:0]
		for _, id := range list {
			if live[id] {
				kept = append(kept, id)
			}
		}
		if len(kept) == 0 {
			delete(o.lists, col)
			continue
		}
		o.lists[col] = kept
	}
}

// Remove drops id from every column.
func (o *Overlay) Remove(id string) {
	for col, list := range o.lists {
		i := indexOfID(list, id)
		if i < 0 {
			continue
		}
		next := make([]string, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		o.Apply(col, next)
	}
}

// List returns a copy of the list stored for columnID.
func (o *Overlay) List(columnID string) ([]string, bool) {
	list, ok := o.lists[columnID]
	if !ok {
		return nil, false
	}
	return append([]string(nil), list...), true
}

func (o *Overlay) Columns() []string {
	out := make([]string, 0, len(o.lists))
	for col := range o.lists {
		out = append(out, col)
	}
	return out
}

func (o *Overlay) Len() int { return len(o.lists) }

func dedupeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func indexOfID(list []string, id string) int {
	for i := range list {
		if list[i] == id {
			return i
		}
	}
	return -1
}
