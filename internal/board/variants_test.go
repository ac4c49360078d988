package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lanes/internal/model"
)

func mixedItems() []model.Item {
	p1 := item("p1", "todo", "a")
	p1.ProjectID = "proj-1"
	p2 := item("p2", "todo", "b")
	p2.ProjectID = "proj-2"
	return []model.Item{p1, p2, item("me", "todo", "c"), item("mine", "inbox", "a")}
}

var variantCols = []model.ColumnDef{
	{ID: "inbox", Label: "Inbox", PersonalOnly: true, Position: 0},
	{ID: "todo", Label: "Todo", Position: 1},
}

func TestDefaultBoard_PersonalOnlyColumnRejectsProjectItems(t *testing.T) {
	b := New(DefaultBoard(variantCols))
	b.Refresh(mixedItems())

	_, err := b.Move(context.Background(), Drop{ItemID: "p1", TargetID: "mine", Position: Before})
	assert.ErrorIs(t, err, ErrDropRejected)

	_, err = b.Move(context.Background(), Drop{ItemID: "me", TargetID: "mine", Position: After})
	require.NoError(t, err)
	assert.Equal(t, []string{"mine", "me"}, colIDs(b.Columns(), "inbox"))
}

func TestProjectBoard_ShowsAndAcceptsOnlyItsProject(t *testing.T) {
	b := New(ProjectBoard("proj-1", variantCols))
	b.Refresh(mixedItems())

	assert.Equal(t, []string{"p1"}, colIDs(b.Columns(), "todo"))
	assert.Empty(t, colIDs(b.Columns(), "inbox"))

	_, err := b.Move(context.Background(), Drop{ItemID: "p2", TargetID: "p1", Position: Before})
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestPersonalBoard_HidesProjectItems(t *testing.T) {
	b := New(PersonalBoard(variantCols))
	b.Refresh(mixedItems())

	assert.Equal(t, []string{"me"}, colIDs(b.Columns(), "todo"))
	assert.Equal(t, []string{"mine"}, colIDs(b.Columns(), "inbox"))

	accept := PersonalBoard(variantCols).Accept
	assert.False(t, accept(mixedItems()[0], "todo"))
	assert.True(t, accept(mixedItems()[2], "inbox"))
}

func TestAcceptAll(t *testing.T) {
	assert.True(t, AcceptAll(model.Item{ProjectID: "x"}, "anything"))
}
