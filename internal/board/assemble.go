package board

import (
	"sort"

	"lanes/internal/model"
)

// Column is one rendered list: its definition and items in display order.
type Column struct {
	Def   model.ColumnDef `json:"column" yaml:"column"`
	Items []model.Item    `json:"items" yaml:"items"`
}

// Assemble builds the display order of every column in defs. ov may be nil.
func Assemble(items []model.Item, defs []model.ColumnDef, ov *Overlay) []Column {
	out := make([]Column, 0, len(defs))
	for _, def := range defs {
		out = append(out, Column{Def: def, Items: displayOrder(items, def.ID, ov)})
	}
	return out
}

func displayOrder(items []model.Item, columnID string, ov *Overlay) []model.Item {
	canon := Canonical(items, columnID)
	if ov == nil {
		return Reconcile(canon, nil)
	}
	list, _ := ov.List(columnID)
	return Reconcile(canon, list)
}

// SortColumnDefs orders column definitions by position, then id.
func SortColumnDefs(defs []model.ColumnDef) {
	sort.SliceStable(defs, func(i, j int) bool {
		if defs[i].Position != defs[j].Position {
			return defs[i].Position < defs[j].Position
		}
		return defs[i].ID < defs[j].ID
	})
}
