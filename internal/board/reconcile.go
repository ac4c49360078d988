package board

import "lanes/internal/model"

// Reconcile merges a column's canonical order with its overlay list.
//
// Items named by the overlay come first, in overlay order. Items the overlay does not
// mention carry no local intent and follow in canonical order. Overlay ids missing
// from canonical are ignored. The result never repeats an id.
func Reconcile(canonical []model.Item, overlay []string) []model.Item {
	if len(overlay) == 0 {
		return dedupeItems(canonical)
	}

	pos := make(map[string]int, len(overlay))
	for i, id := range overlay {
		if _, ok := pos[id]; !ok {
			pos[id] = i
		}
	}

	// Bucket by overlay index so duplicates in canonical keep their first slot.
	slots := make([][]model.Item, len(overlay))
	rest := make([]model.Item, 0, len(canonical))
	for _, it := range canonical {
		if i, ok := pos[it.ID]; ok {
			slots[i] = append(slots[i], it)
			continue
		}
		rest = append(rest, it)
	}

	out := make([]model.Item, 0, len(canonical))
	for _, s := range slots {
		out = append(out, s...)
	}
	out = append(out, rest...)
	return dedupeItems(out)
}

func dedupeItems(items []model.Item) []model.Item {
	seen := make(map[string]bool, len(items))
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out
}
