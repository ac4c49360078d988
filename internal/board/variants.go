package board

import (
	"strings"

	"lanes/internal/model"
)

// Board variants differ only in which items they show and which drops they accept.

// DefaultBoard shows every item. Project items may not enter personal-only columns.
func DefaultBoard(defs []model.ColumnDef) Options {
	return Options{
		Columns: defs,
		Accept:  RespectPersonalOnly(defs),
	}
}

// ProjectBoard shows the items of one project and only accepts items of that project.
func ProjectBoard(projectID string, defs []model.ColumnDef) Options {
	projectID = strings.TrimSpace(projectID)
	personal := RespectPersonalOnly(defs)
	return Options{
		Columns: defs,
		Include: func(it model.Item) bool { return it.ProjectID == projectID },
		Accept: func(it model.Item, columnID string) bool {
			return it.ProjectID == projectID && personal(it, columnID)
		},
	}
}

// PersonalBoard shows items without a project and refuses project items.
func PersonalBoard(defs []model.ColumnDef) Options {
	return Options{
		Columns: defs,
		Include: func(it model.Item) bool { return it.ProjectID == "" },
		Accept:  func(it model.Item, _ string) bool { return it.ProjectID == "" },
	}
}

// RespectPersonalOnly rejects project items dropped into PersonalOnly columns.
func RespectPersonalOnly(defs []model.ColumnDef) AcceptFunc {
	personal := map[string]bool{}
	for _, d := range defs {
		if d.PersonalOnly {
			personal[d.ID] = true
		}
	}
	return func(it model.Item, columnID string) bool {
		return !(personal[columnID] && it.ProjectID != "")
	}
}

func AcceptAll(model.Item, string) bool { return true }
