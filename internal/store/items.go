package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"lanes/internal/model"
	"lanes/internal/rank"
)

const itemColumns = `id, project_id, status, position_key, title, description, created_at_unixms, updated_at_unixms`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(r rowScanner) (model.Item, error) {
	var it model.Item
	var created, updated int64
	if err := r.Scan(&it.ID, &it.ProjectID, &it.ColumnID, &it.PositionKey, &it.Title, &it.Description, &created, &updated); err != nil {
		return model.Item{}, err
	}
	it.CreatedAt = fromUnixMs(created)
	it.UpdatedAt = fromUnixMs(updated)
	return it, nil
}

// ListItems returns every item. Order is unspecified; boards sort by position key.
func (s *Store) ListItems(ctx context.Context) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *Store) GetItem(ctx context.Context, id string) (model.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, strings.TrimSpace(id))
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Item{}, errNotFound("item", id)
	}
	return it, err
}

type NewItem struct {
	Title       string
	Description string
	ColumnID    string
	ProjectID   string
}

// CreateItem adds an item at the end of its column.
func (s *Store) CreateItem(ctx context.Context, in NewItem) (model.Item, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Item{}, errors.New("missing title")
	}
	col := strings.TrimSpace(in.ColumnID)
	if _, err := s.GetColumn(ctx, col); err != nil {
		return model.Item{}, err
	}
	projectID := strings.TrimSpace(in.ProjectID)
	if projectID != "" {
		if _, err := s.GetProject(ctx, projectID); err != nil {
			return model.Item{}, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Item{}, err
	}
	defer func() { _ = tx.Rollback() }()

	last, err := lastKey(ctx, tx, col)
	if err != nil {
		return model.Item{}, err
	}
	key, err := rank.After(last)
	if err != nil {
		return model.Item{}, fmt.Errorf("key after %q: %w", last, err)
	}

	id, err := newRandomID("item")
	if err != nil {
		return model.Item{}, err
	}
	now := s.now()
	it := model.Item{
		ID:          id,
		ProjectID:   projectID,
		ColumnID:    col,
		PositionKey: key,
		Title:       title,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO items(`+itemColumns+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.ProjectID, it.ColumnID, it.PositionKey, it.Title, it.Description, now.UnixMilli(), now.UnixMilli()); err != nil {
		return model.Item{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Item{}, err
	}
	// Round-trip through the stored precision.
	it.CreatedAt = fromUnixMs(now.UnixMilli())
	it.UpdatedAt = it.CreatedAt
	return it, nil
}

// lastKey returns the greatest key in col, treating blank keys as rank.Default.
func lastKey(ctx context.Context, tx *sql.Tx, col string) (string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT position_key FROM items WHERE status = ?`, col)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	last := ""
	found := false
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return "", err
		}
		if !found || rank.Compare(k, last) > 0 {
			last, found = k, true
		}
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	if found && strings.TrimSpace(last) == "" {
		last = rank.Default
	}
	return last, nil
}

// PersistItem applies a partial update. It is the write side of drag-and-drop moves.
func (s *Store) PersistItem(ctx context.Context, id string, p model.Patch) error {
	if p.Empty() {
		return nil
	}
	sets := []string{}
	args := []any{}
	if p.PositionKey != nil {
		sets = append(sets, "position_key = ?")
		args = append(args, strings.TrimSpace(*p.PositionKey))
	}
	if p.ColumnID != nil {
		col := strings.TrimSpace(*p.ColumnID)
		if _, err := s.GetColumn(ctx, col); err != nil {
			return err
		}
		sets = append(sets, "status = ?")
		args = append(args, col)
	}
	sets = append(sets, "updated_at_unixms = ?")
	args = append(args, s.now().UnixMilli(), strings.TrimSpace(id))

	res, err := s.db.ExecContext(ctx, `UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errNotFound("item", id)
	}
	if !p.Silent {
		s.notify("updated %s", id)
	}
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errNotFound("item", id)
	}
	s.notify("deleted %s", id)
	return nil
}
