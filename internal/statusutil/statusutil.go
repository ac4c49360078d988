package statusutil

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"lanes/internal/model"
)

// NormalizeColumnID trims and lowercases a column id typed by a user ("TODO" => "todo").
func NormalizeColumnID(s string) (string, error) {
	id := strings.ToLower(strings.TrimSpace(s))
	if id == "" {
		return "", fmt.Errorf("invalid column id: empty")
	}
	for _, r := range id {
		if unicode.IsSpace(r) || r == '/' {
			return "", fmt.Errorf("invalid column id %q: no spaces or slashes", s)
		}
	}
	return id, nil
}

// FindColumn returns the column whose id matches s after normalization.
func FindColumn(defs []model.ColumnDef, s string) (model.ColumnDef, bool) {
	id, err := NormalizeColumnID(s)
	if err != nil {
		return model.ColumnDef{}, false
	}
	for _, def := range defs {
		if def.ID == id {
			return def, true
		}
	}
	return model.ColumnDef{}, false
}

// Suggest returns the id of the column closest to s, if it is close enough to be a typo.
func Suggest(defs []model.ColumnDef, s string) (string, bool) {
	id := strings.ToLower(strings.TrimSpace(s))
	if id == "" {
		return "", false
	}
	best, bestDist := "", -1
	for _, def := range defs {
		d := levenshtein.ComputeDistance(id, def.ID)
		if bestDist < 0 || d < bestDist {
			best, bestDist = def.ID, d
		}
	}
	if bestDist < 0 || bestDist == 0 || bestDist > maxTypoDistance(id) {
		return "", false
	}
	return best, true
}

func maxTypoDistance(s string) int {
	if len(s) <= 4 {
		return 1
	}
	return 2
}
