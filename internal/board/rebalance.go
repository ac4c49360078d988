package board

import (
	"strings"

	"lanes/internal/model"
	"lanes/internal/rank"
)

// planRebalance assigns fresh keys to the smallest contiguous window of final that
// contains movedIdx and whose outer neighbors leave room for new keys.
//
// final is the intended column order with the moved item already in place. It is used
// when the moved item's immediate neighbors cannot bound a key, e.g. several legacy
// items sharing the default key.
func planRebalance(final []model.Item, movedIdx int, preferRight bool) (map[string]string, error) {
	lo, hi := minimalValidWindow(final, movedIdx, preferRight)
	lower, upper := windowBounds(final, lo, hi)

	existing := map[string]bool{}
	for i, it := range final {
		if i >= lo && i <= hi {
			continue
		}
		if k := normKey(it.PositionKey); k != "" {
			existing[k] = true
		}
	}

	out := make(map[string]string, hi-lo+1)
	cur := lower
	for i := lo; i <= hi; i++ {
		k, err := rank.BetweenUnique(existing, cur, upper)
		if err != nil {
			return nil, err
		}
		existing[k] = true
		out[final[i].ID] = k
		cur = k
	}
	return out, nil
}

// windowBounds returns the keys just outside [lo, hi]; "" means unbounded.
func windowBounds(final []model.Item, lo, hi int) (lower, upper string) {
	if lo > 0 {
		lower = boundKey(final[lo-1])
	}
	if hi+1 < len(final) {
		upper = boundKey(final[hi+1])
	}
	return lower, upper
}

// minimalValidWindow finds the smallest [lo, hi] containing movedIdx whose outer bounds
// admit a key. Among windows of equal size, preferRight tries those extending to the
// right of movedIdx first.
func minimalValidWindow(final []model.Item, movedIdx int, preferRight bool) (lo, hi int) {
	if movedIdx < 0 || movedIdx >= len(final) {
		return 0, len(final) - 1
	}
	valid := func(lo, hi int) bool {
		lower, upper := windowBounds(final, lo, hi)
		_, err := rank.Generate(lower, upper)
		return err == nil
	}

	for size := 1; size <= len(final); size++ {
		startMin := max(movedIdx-(size-1), 0)
		startMax := min(movedIdx, len(final)-size)
		if preferRight {
			for lo := startMax; lo >= startMin; lo-- {
				if valid(lo, lo+size-1) {
					return lo, lo + size - 1
				}
			}
			continue
		}
		for lo := startMin; lo <= startMax; lo++ {
			if valid(lo, lo+size-1) {
				return lo, lo + size - 1
			}
		}
	}
	return 0, len(final) - 1
}

func boundKey(it model.Item) string {
	if k := normKey(it.PositionKey); k != "" {
		return k
	}
	return rank.Default
}

func normKey(k string) string {
	return strings.TrimSpace(k)
}
