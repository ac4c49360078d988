package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"lanes/internal/board"
)

type WriteOptions struct {
	Title     string
	Overwrite bool
	// HTML writes .html pages instead of markdown.
	HTML   bool
	Render RenderOptions
}

type WriteResult struct {
	Written []string `json:"written" yaml:"written"`
}

// WriteBoard writes an index page and one items/<id> page per item under toDir.
func WriteBoard(cols []board.Column, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	itemsDir := filepath.Join(toDir, "items")
	if err := os.MkdirAll(itemsDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	title := opt.Title
	if strings.TrimSpace(title) == "" {
		title = "Board"
	}
	ext := ".md"
	if opt.HTML {
		ext = ".html"
	}
	opt.Render.LinkExt = ext
	page := func(title, md string) ([]byte, error) {
		if opt.HTML {
			return RenderHTML(title, md)
		}
		return []byte(md), nil
	}

	indexPath := filepath.Join(toDir, "index"+ext)
	b, err := page(title, RenderBoardMarkdown(title, cols, opt.Render))
	if err != nil {
		return WriteResult{}, err
	}
	if err := writeFile(indexPath, b, opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	// Stop on the first failed page.
	written := []string{indexPath}
	for _, c := range cols {
		for _, it := range c.Items {
			p := filepath.Join(itemsDir, it.ID+ext)
			b, err := page(it.Title, RenderItemMarkdown(it, c.Def, opt.Render))
			if err != nil {
				return WriteResult{}, err
			}
			if err := writeFile(p, b, opt.Overwrite); err != nil {
				return WriteResult{}, err
			}
			written = append(written, p)
		}
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
