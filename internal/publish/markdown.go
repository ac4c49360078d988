package publish

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"lanes/internal/board"
	"lanes/internal/model"
)

type RenderOptions struct {
	// Projects maps project ids to display names.
	Projects map[string]string
	// LinkExt is the extension of item page links in the index (default ".md").
	LinkExt string
}

func (o RenderOptions) linkExt() string {
	if o.LinkExt == "" {
		return ".md"
	}
	return o.LinkExt
}

func (o RenderOptions) projectLabel(id string) string {
	if id == "" {
		return ""
	}
	if name := strings.TrimSpace(o.Projects[id]); name != "" {
		return name + " (" + id + ")"
	}
	return id
}

func RenderItemMarkdown(it model.Item, col model.ColumnDef, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(it.Title)
	if title == "" {
		title = "(untitled)"
	}
	writeLn("# " + title)
	writeLn("")
	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + it.ID)
	writeLn("- Column: " + columnLabel(col))
	if p := opt.projectLabel(it.ProjectID); p != "" {
		writeLn("- Project: " + p)
	}
	writeLn("- Created: " + formatTime(it.CreatedAt))
	writeLn("- Updated: " + formatTime(it.UpdatedAt))

	if desc := strings.TrimSpace(it.Description); desc != "" {
		writeLn("")
		writeLn("## Description")
		writeLn("")
		writeLn(desc)
	}
	return buf.String()
}

// RenderBoardMarkdown renders the index page: one section per column, items in board
// order linking to their pages.
func RenderBoardMarkdown(title string, cols []board.Column, opt RenderOptions) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", strings.TrimSpace(title))
	for _, c := range cols {
		fmt.Fprintf(&buf, "\n## %s (%d)\n\n", columnLabel(c.Def), len(c.Items))
		if len(c.Items) == 0 {
			buf.WriteString("_empty_\n")
			continue
		}
		for _, it := range c.Items {
			line := fmt.Sprintf("- [%s](items/%s%s)", escapeLinkText(it.Title), it.ID, opt.linkExt())
			if p := opt.projectLabel(it.ProjectID); p != "" {
				line += " · " + p
			}
			buf.WriteString(line + "\n")
		}
	}
	return buf.String()
}

func columnLabel(c model.ColumnDef) string {
	if l := strings.TrimSpace(c.Label); l != "" {
		return l
	}
	return c.ID
}

func escapeLinkText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(untitled)"
	}
	return strings.NewReplacer("[", `\[`, "]", `\]`).Replace(s)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
