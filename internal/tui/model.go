package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lanes/internal/board"
	"lanes/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type refreshedMsg struct{}

type refreshErrMsg struct{ err error }

type persistFailedMsg struct {
	itemID string
	err    error
}

// Failures carries background write errors from the board to the status line.
type Failures chan persistFailedMsg

func NewFailures() Failures { return make(Failures, 32) }

// Report never blocks; when the buffer is full the failure is only logged by the board.
func (f Failures) Report(itemID string, err error) {
	select {
	case f <- persistFailedMsg{itemID: itemID, err: err}:
	default:
	}
}

func (f Failures) wait() tea.Cmd {
	if f == nil {
		return nil
	}
	return func() tea.Msg { return <-f }
}

type selection struct {
	Col  int
	Item int
	// ItemID keeps focus on the same card across refreshes and moves.
	ItemID string
}

type boardModel struct {
	ctx    context.Context
	title  string
	board  *board.Board
	source board.Source
	fails  Failures

	keys keyMap
	help help.Model

	cols       []board.Column
	sel        selection
	drag       board.Drag
	showDetail bool

	status    string
	statusErr bool

	width  int
	height int
}

func newBoardModel(ctx context.Context, opts Options) boardModel {
	m := boardModel{
		ctx:    ctx,
		title:  opts.Title,
		board:  opts.Board,
		source: opts.Source,
		fails:  opts.Failures,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	if m.title == "" {
		m.title = "lanes"
	}
	m.reload()
	return m
}

func (m boardModel) Init() tea.Cmd {
	return m.fails.wait()
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case refreshedMsg:
		m.reload()
		return m, nil

	case refreshErrMsg:
		m.setError(fmt.Sprintf("refresh failed: %v", msg.err))
		return m, nil

	case persistFailedMsg:
		m.setError(fmt.Sprintf("saving %s failed: %v", msg.itemID, msg.err))
		return m, m.fails.wait()

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m boardModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.focusColumn(m.sel.Col - 1)
	case key.Matches(msg, m.keys.Right):
		m.focusColumn(m.sel.Col + 1)
	case key.Matches(msg, m.keys.Up):
		m.focusItem(m.sel.Item - 1)
	case key.Matches(msg, m.keys.Down):
		m.focusItem(m.sel.Item + 1)
	case key.Matches(msg, m.keys.Pick):
		if m.drag.State() == board.Dragging {
			m.drop(board.Before)
		} else {
			m.pickUp()
		}
	case key.Matches(msg, m.keys.DropAfter):
		if m.drag.State() == board.Dragging {
			m.drop(board.After)
		}
	case key.Matches(msg, m.keys.Cancel):
		if m.drag.State() == board.Dragging {
			m.drag.Cancel()
			m.setStatus("move cancelled")
		} else {
			m.showDetail = false
		}
	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m boardModel) refreshCmd() tea.Cmd {
	if m.source == nil {
		return nil
	}
	b, src, ctx := m.board, m.source, m.ctx
	return func() tea.Msg {
		items, err := src.ListItems(ctx)
		if err != nil {
			return refreshErrMsg{err: err}
		}
		b.Refresh(items)
		return refreshedMsg{}
	}
}

func (m *boardModel) reload() {
	m.cols = m.board.Columns()
	m.sel = m.clamp(m.sel)
}

func (m *boardModel) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *boardModel) setError(s string) {
	m.status, m.statusErr = s, true
}

func (m boardModel) indexOfItemID(id string) (int, int, bool) {
	if id == "" {
		return 0, 0, false
	}
	for ci, c := range m.cols {
		for ii, it := range c.Items {
			if it.ID == id {
				return ci, ii, true
			}
		}
	}
	return 0, 0, false
}

// clamp fits sel to the current columns, preferring the card it tracked by id.
func (m boardModel) clamp(sel selection) selection {
	if len(m.cols) == 0 {
		return selection{Item: -1}
	}
	if ci, ii, ok := m.indexOfItemID(sel.ItemID); ok {
		sel.Col, sel.Item = ci, ii
	}
	sel.Col = max(0, min(sel.Col, len(m.cols)-1))
	n := len(m.cols[sel.Col].Items)
	if n == 0 {
		sel.Item, sel.ItemID = -1, ""
		return sel
	}
	sel.Item = max(0, min(sel.Item, n-1))
	sel.ItemID = m.cols[sel.Col].Items[sel.Item].ID
	return sel
}

func (m *boardModel) focusColumn(col int) {
	if col < 0 || col >= len(m.cols) {
		return
	}
	// Keep the row when moving sideways.
	m.sel = m.clamp(selection{Col: col, Item: m.sel.Item})
}

func (m *boardModel) focusItem(i int) {
	if len(m.cols) == 0 || i < 0 || i >= len(m.cols[m.sel.Col].Items) {
		return
	}
	m.sel = m.clamp(selection{Col: m.sel.Col, Item: i})
}

func (m boardModel) focused() (model.Item, bool) {
	if len(m.cols) == 0 || m.sel.Item < 0 {
		return model.Item{}, false
	}
	c := m.cols[m.sel.Col]
	if m.sel.Item >= len(c.Items) {
		return model.Item{}, false
	}
	return c.Items[m.sel.Item], true
}

func (m *boardModel) pickUp() {
	it, ok := m.focused()
	if !ok {
		return
	}
	if err := m.drag.Start(it.ID); err != nil {
		m.setError(err.Error())
		return
	}
	m.setStatus(fmt.Sprintf("moving %q: pick a spot, space drops before, a drops after", it.Title))
}

// drop lands the dragged card next to the focused one, or at the end of an empty column.
func (m *boardModel) drop(pos board.Position) {
	movedID := m.drag.ItemID()
	target, ok := m.focused()
	if ok && target.ID == movedID {
		m.drag.Cancel()
		m.setStatus("move cancelled")
		return
	}

	var plan board.MovePlan
	var err error
	if ok {
		plan, err = m.board.Drop(m.ctx, &m.drag, target.ID, pos)
	} else {
		plan, err = m.board.DropAtEnd(m.ctx, &m.drag, m.cols[m.sel.Col].Def.ID)
	}
	if err != nil {
		if errors.Is(err, board.ErrDropRejected) {
			m.setError(fmt.Sprintf("%s does not accept this card", m.columnLabel(m.sel.Col)))
		} else {
			m.setError(err.Error())
		}
		return
	}

	m.sel.ItemID = movedID
	m.reload()
	switch {
	case plan.Noop:
		m.setStatus("already there")
	case plan.CrossColumn():
		m.setStatus("moved to " + m.columnLabel(m.sel.Col))
	default:
		m.setStatus("moved")
	}
}

func (m boardModel) columnLabel(i int) string {
	if i < 0 || i >= len(m.cols) {
		return ""
	}
	if l := strings.TrimSpace(m.cols[i].Def.Label); l != "" {
		return l
	}
	return m.cols[i].Def.ID
}
