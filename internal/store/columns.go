package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"lanes/internal/model"
	"lanes/internal/statusutil"
)

func (s *Store) ListColumns(ctx context.Context) ([]model.ColumnDef, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, label, personal_only, position FROM columns ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ColumnDef{}
	for rows.Next() {
		var c model.ColumnDef
		var personal int
		if err := rows.Scan(&c.ID, &c.Label, &personal, &c.Position); err != nil {
			return nil, err
		}
		c.PersonalOnly = personal != 0
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetColumn(ctx context.Context, id string) (model.ColumnDef, error) {
	var c model.ColumnDef
	var personal int
	err := s.db.QueryRowContext(ctx, `SELECT id, label, personal_only, position FROM columns WHERE id = ?`, strings.TrimSpace(id)).
		Scan(&c.ID, &c.Label, &personal, &c.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ColumnDef{}, errNotFound("column", id)
	}
	if err != nil {
		return model.ColumnDef{}, err
	}
	c.PersonalOnly = personal != 0
	return c, nil
}

// AddColumn creates a column after the existing ones.
func (s *Store) AddColumn(ctx context.Context, c model.ColumnDef) (model.ColumnDef, error) {
	id, err := statusutil.NormalizeColumnID(c.ID)
	if err != nil {
		return model.ColumnDef{}, err
	}
	c.ID = id
	if strings.TrimSpace(c.Label) == "" {
		c.Label = c.ID
	}
	var next int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM columns`).Scan(&next); err != nil {
		return model.ColumnDef{}, err
	}
	c.Position = next
	if _, err := s.db.ExecContext(ctx, `INSERT INTO columns(id, label, personal_only, position) VALUES(?, ?, ?, ?)`,
		c.ID, c.Label, boolToInt(c.PersonalOnly), c.Position); err != nil {
		return model.ColumnDef{}, fmt.Errorf("add column %s: %w", c.ID, err)
	}
	return c, nil
}

// EnsureColumns adds any of ids that do not exist yet, in order.
func (s *Store) EnsureColumns(ctx context.Context, ids []string) error {
	for _, raw := range ids {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		id, err := statusutil.NormalizeColumnID(raw)
		if err != nil {
			return err
		}
		if _, err := s.GetColumn(ctx, id); err == nil {
			continue
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}
		if _, err := s.AddColumn(ctx, model.ColumnDef{ID: id, Label: labelFor(id)}); err != nil {
			return err
		}
	}
	return nil
}

func labelFor(id string) string {
	if id == "" {
		return id
	}
	return strings.ToUpper(id[:1]) + id[1:]
}

func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, archived, created_at_unixms FROM projects ORDER BY created_at_unixms, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Project{}
	for rows.Next() {
		var p model.Project
		var archived int
		var created int64
		if err := rows.Scan(&p.ID, &p.Name, &archived, &created); err != nil {
			return nil, err
		}
		p.Archived = archived != 0
		p.CreatedAt = fromUnixMs(created)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetProject(ctx context.Context, id string) (model.Project, error) {
	var p model.Project
	var archived int
	var created int64
	err := s.db.QueryRowContext(ctx, `SELECT id, name, archived, created_at_unixms FROM projects WHERE id = ?`, strings.TrimSpace(id)).
		Scan(&p.ID, &p.Name, &archived, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, errNotFound("project", id)
	}
	if err != nil {
		return model.Project{}, err
	}
	p.Archived = archived != 0
	p.CreatedAt = fromUnixMs(created)
	return p, nil
}

func (s *Store) AddProject(ctx context.Context, name string) (model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Project{}, errors.New("missing project name")
	}
	id, err := newRandomID("proj")
	if err != nil {
		return model.Project{}, err
	}
	now := s.now().Truncate(time.Millisecond)
	if _, err := s.db.ExecContext(ctx, `INSERT INTO projects(id, name, archived, created_at_unixms) VALUES(?, ?, 0, ?)`,
		id, name, now.UnixMilli()); err != nil {
		return model.Project{}, err
	}
	return model.Project{ID: id, Name: name, CreatedAt: now}, nil
}
