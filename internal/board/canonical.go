package board

import (
	"sort"
	"strings"

	"lanes/internal/model"
	"lanes/internal/rank"
)

// Canonical returns the items of columnID ordered purely by persisted position key,
// ties broken by id.
func Canonical(items []model.Item, columnID string) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if it.ColumnID == columnID {
			out = append(out, it)
		}
	}
	sortByKey(out)
	return out
}

func sortByKey(items []model.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return compareItems(items[i], items[j]) < 0
	})
}

func compareItems(a, b model.Item) int {
	if c := rank.Compare(a.PositionKey, b.PositionKey); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

func indexOf(items []model.Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func ids(items []model.Item) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}
