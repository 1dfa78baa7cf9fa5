package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const projectColumns = "id, name, description, audio_url, created_at, updated_at"

// CreateProject inserts a new project and returns the stored record.
func (s *Store) CreateProject(ctx context.Context, name, description string) (*Project, error) {
	id := uuid.NewString()
	timestamp := nowStamp()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO projects (id, name, description, audio_url, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		name,
		nullableString(description),
		nil,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	return s.GetProject(ctx, id)
}

// GetProject returns a project by id, including its scene count.
func (s *Store) GetProject(ctx context.Context, id string) (*Project, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+projectColumns+`, (SELECT COUNT(*) FROM scenes WHERE project_id = projects.id)
         FROM projects WHERE id = ?`,
		id,
	)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

// ListProjects returns all projects ordered by creation time, newest first.
func (s *Store) ListProjects(ctx context.Context) ([]*Project, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+projectColumns+`, (SELECT COUNT(*) FROM scenes WHERE project_id = projects.id)
         FROM projects ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// UpdateProject persists name and description changes.
func (s *Store) UpdateProject(ctx context.Context, id, name, description string) (*Project, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE projects SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		name,
		nullableString(description),
		nowStamp(),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, ErrNotFound
	}
	return s.GetProject(ctx, id)
}

// SetProjectAudio records (or clears) the uploaded audio track URL.
func (s *Store) SetProjectAudio(ctx context.Context, id, audioURL string) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE projects SET audio_url = ?, updated_at = ? WHERE id = ?`,
		nullableString(audioURL),
		nowStamp(),
		id,
	)
	if err != nil {
		return fmt.Errorf("set project audio: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProject removes a project and, via foreign keys, its scenes.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProject(scanner rowScanner) (*Project, error) {
	var (
		id          string
		name        string
		description sql.NullString
		audioURL    sql.NullString
		createdRaw  sql.NullString
		updatedRaw  sql.NullString
		sceneCount  int
	)

	if err := scanner.Scan(&id, &name, &description, &audioURL, &createdRaw, &updatedRaw, &sceneCount); err != nil {
		return nil, err
	}

	project := &Project{
		ID:          id,
		Name:        name,
		Description: description.String,
		AudioURL:    audioURL.String,
		SceneCount:  sceneCount,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		project.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		project.UpdatedAt = updated
	}
	return project, nil
}
