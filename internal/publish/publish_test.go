package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lanes/internal/board"
	"lanes/internal/model"
)

func testColumns() []board.Column {
	now := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	return []board.Column{
		{
			Def: model.ColumnDef{ID: "todo", Label: "Todo"},
			Items: []model.Item{
				{ID: "item-b", Title: "Second [draft]", ColumnID: "todo", ProjectID: "proj-x", CreatedAt: now, UpdatedAt: now},
				{ID: "item-a", Title: "First", ColumnID: "todo", Description: "Some **markdown**.", CreatedAt: now, UpdatedAt: now},
			},
		},
		{Def: model.ColumnDef{ID: "done"}},
	}
}

func TestRenderBoardMarkdown_KeepsBoardOrder(t *testing.T) {
	t.Parallel()

	md := RenderBoardMarkdown("Launch", testColumns(), RenderOptions{Projects: map[string]string{"proj-x": "X"}})
	if !strings.HasPrefix(md, "# Launch\n") {
		t.Fatalf("expected title header, got:\n%s", md)
	}
	second := strings.Index(md, "item-b.md")
	first := strings.Index(md, "item-a.md")
	if second < 0 || first < 0 || second > first {
		t.Fatalf("expected item-b listed before item-a, got:\n%s", md)
	}
	if !strings.Contains(md, `Second \[draft\]`) {
		t.Fatalf("expected escaped link text, got:\n%s", md)
	}
	if !strings.Contains(md, "· X (proj-x)") {
		t.Fatalf("expected project label, got:\n%s", md)
	}
	if !strings.Contains(md, "## done (0)\n\n_empty_") {
		t.Fatalf("expected empty column section, got:\n%s", md)
	}
}

func TestRenderItemMarkdown_IncludesDescription(t *testing.T) {
	t.Parallel()

	cols := testColumns()
	md := RenderItemMarkdown(cols[0].Items[1], cols[0].Def, RenderOptions{})
	if !strings.Contains(md, "# First") || !strings.Contains(md, "- Column: Todo") {
		t.Fatalf("expected title and column, got:\n%s", md)
	}
	if !strings.Contains(md, "## Description") || !strings.Contains(md, "Some **markdown**.") {
		t.Fatalf("expected description section, got:\n%s", md)
	}
	if strings.Contains(md, "Project:") {
		t.Fatalf("personal item should have no project line, got:\n%s", md)
	}
}

func TestWriteBoard_WritesIndexAndItems(t *testing.T) {
	t.Parallel()

	to := t.TempDir()
	res, err := WriteBoard(testColumns(), to, WriteOptions{Title: "Launch"})
	if err != nil {
		t.Fatalf("WriteBoard: %v", err)
	}
	if len(res.Written) != 3 {
		t.Fatalf("expected 3 written files; got %d (%v)", len(res.Written), res.Written)
	}
	for _, p := range []string{"index.md", filepath.Join("items", "item-a.md"), filepath.Join("items", "item-b.md")} {
		if _, err := os.Stat(filepath.Join(to, p)); err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
	}

	if _, err := WriteBoard(testColumns(), to, WriteOptions{}); err == nil {
		t.Fatalf("expected error when files exist without overwrite")
	}
	if _, err := WriteBoard(testColumns(), to, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("WriteBoard overwrite: %v", err)
	}
}

func TestWriteBoard_HTML(t *testing.T) {
	t.Parallel()

	to := t.TempDir()
	if _, err := WriteBoard(testColumns(), to, WriteOptions{Title: "Launch", HTML: true}); err != nil {
		t.Fatalf("WriteBoard: %v", err)
	}
	index, err := os.ReadFile(filepath.Join(to, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if !strings.Contains(string(index), `href="items/item-a.html"`) {
		t.Fatalf("expected html item links, got:\n%s", index)
	}
	page, err := os.ReadFile(filepath.Join(to, "items", "item-a.html"))
	if err != nil {
		t.Fatalf("read item page: %v", err)
	}
	if !strings.Contains(string(page), "<strong>markdown</strong>") {
		t.Fatalf("expected rendered description, got:\n%s", page)
	}
}

func TestRenderHTML_DropsRawHTML(t *testing.T) {
	t.Parallel()

	out, err := RenderHTML("x", "hi <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("raw html passed through:\n%s", out)
	}
}
