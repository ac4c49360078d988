package model

import "time"

type Project struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	Archived  bool      `json:"archived" yaml:"archived"`
}

// ColumnDef describes one ordered list on a board.
type ColumnDef struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	// PersonalOnly columns refuse items that belong to a project.
	PersonalOnly bool `json:"personalOnly" yaml:"personalOnly"`
	Position     int  `json:"position" yaml:"position"`
}

type Item struct {
	ID        string `json:"id" yaml:"id"`
	ProjectID string `json:"projectId,omitempty" yaml:"projectId,omitempty"`

	// ColumnID is the item's status in the rest of the app.
	ColumnID    string `json:"status" yaml:"status"`
	PositionKey string `json:"positionKey,omitempty" yaml:"positionKey,omitempty"`

	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Patch is a partial item update. Nil fields are left unchanged.
type Patch struct {
	PositionKey *string `json:"positionKey,omitempty" yaml:"positionKey,omitempty"`
	ColumnID    *string `json:"status,omitempty" yaml:"status,omitempty"`

	// Silent suppresses user-facing notifications for this update (drag moves).
	Silent bool `json:"-" yaml:"-"`
}

func (p Patch) Empty() bool {
	return p.PositionKey == nil && p.ColumnID == nil
}

// Apply returns it with the patch applied.
func (p Patch) Apply(it Item) Item {
	if p.PositionKey != nil {
		it.PositionKey = *p.PositionKey
	}
	if p.ColumnID != nil {
		it.ColumnID = *p.ColumnID
	}
	return it
}

func StringPtr(s string) *string { return &s }
