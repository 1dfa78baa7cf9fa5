package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const sceneColumns = "id, project_id, prompt, code, video_url, thumbnail_url, duration_seconds, order_index, status, error_message, created_at, updated_at"

// CreateScene appends a scene to a project at the next free order index.
func (s *Store) CreateScene(ctx context.Context, projectID, prompt string) (*Scene, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	timestamp := nowStamp()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO scenes (
            id, project_id, prompt, code, video_url, thumbnail_url,
            duration_seconds, order_index, status, error_message, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, 0,
            (SELECT COALESCE(MAX(order_index), -1) + 1 FROM scenes WHERE project_id = ?),
            ?, ?, ?, ?)`,
		id,
		projectID,
		prompt,
		nil,
		nil,
		nil,
		projectID,
		ScenePending,
		nil,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert scene: %w", err)
	}

	return s.GetScene(ctx, id)
}

// GetScene returns a scene by id.
func (s *Store) GetScene(ctx context.Context, id string) (*Scene, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sceneColumns+` FROM scenes WHERE id = ?`, id)
	scene, err := scanScene(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get scene: %w", err)
	}
	return scene, nil
}

// ScenesByProject returns a project's scenes in playback order.
func (s *Store) ScenesByProject(ctx context.Context, projectID string) ([]*Scene, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+sceneColumns+` FROM scenes WHERE project_id = ? ORDER BY order_index`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("scenes by project: %w", err)
	}
	defer rows.Close()

	var scenes []*Scene
	for rows.Next() {
		scene, err := scanScene(rows)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, scene)
	}
	return scenes, rows.Err()
}

// UpdateScene persists mutable scene fields.
func (s *Store) UpdateScene(ctx context.Context, scene *Scene) error {
	if scene == nil {
		return errors.New("scene is nil")
	}
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE scenes
         SET prompt = ?, code = ?, video_url = ?, thumbnail_url = ?,
             duration_seconds = ?, status = ?, error_message = ?, updated_at = ?
         WHERE id = ?`,
		scene.Prompt,
		nullableString(scene.Code),
		nullableString(scene.VideoURL),
		nullableString(scene.ThumbnailURL),
		scene.DurationSeconds,
		scene.Status,
		nullableString(scene.ErrorMessage),
		nowStamp(),
		scene.ID,
	)
	if err != nil {
		return fmt.Errorf("update scene: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetSceneStatus moves a scene to a new status, clearing any stale error.
func (s *Store) SetSceneStatus(ctx context.Context, id string, status SceneStatus) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE scenes SET status = ?, error_message = NULL, updated_at = ? WHERE id = ?`,
		status,
		nowStamp(),
		id,
	)
	if err != nil {
		return fmt.Errorf("set scene status: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetSceneArtifact records a successful render's outputs and marks the
// scene completed.
func (s *Store) SetSceneArtifact(ctx context.Context, id, videoURL, thumbnailURL string, duration float64) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE scenes
         SET video_url = ?, thumbnail_url = ?, duration_seconds = ?,
             status = ?, error_message = NULL, updated_at = ?
         WHERE id = ?`,
		videoURL,
		nullableString(thumbnailURL),
		duration,
		SceneCompleted,
		nowStamp(),
		id,
	)
	if err != nil {
		return fmt.Errorf("set scene artifact: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// FailScene marks a scene failed with a diagnostic message.
func (s *Store) FailScene(ctx context.Context, id, message string) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE scenes SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		SceneFailed,
		nullableString(message),
		nowStamp(),
		id,
	)
	if err != nil {
		return fmt.Errorf("fail scene: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteScene removes a scene and compacts the ordering of those after it.
func (s *Store) DeleteScene(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete scene: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var projectID string
	var orderIndex int
	err = tx.QueryRowContext(ctx, `SELECT project_id, order_index FROM scenes WHERE id = ?`, id).
		Scan(&projectID, &orderIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete scene lookup: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM scenes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete scene: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`UPDATE scenes SET order_index = order_index - 1, updated_at = ?
         WHERE project_id = ? AND order_index > ?`,
		nowStamp(),
		projectID,
		orderIndex,
	); err != nil {
		return fmt.Errorf("compact scene order: %w", err)
	}

	return tx.Commit()
}

func scanScene(scanner rowScanner) (*Scene, error) {
	var (
		id           string
		projectID    string
		prompt       string
		code         sql.NullString
		videoURL     sql.NullString
		thumbnailURL sql.NullString
		duration     sql.NullFloat64
		orderIndex   int
		statusStr    string
		errorMessage sql.NullString
		createdRaw   sql.NullString
		updatedRaw   sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&projectID,
		&prompt,
		&code,
		&videoURL,
		&thumbnailURL,
		&duration,
		&orderIndex,
		&statusStr,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	scene := &Scene{
		ID:              id,
		ProjectID:       projectID,
		Prompt:          prompt,
		Code:            code.String,
		VideoURL:        videoURL.String,
		ThumbnailURL:    thumbnailURL.String,
		DurationSeconds: duration.Float64,
		OrderIndex:      orderIndex,
		Status:          SceneStatus(statusStr),
		ErrorMessage:    errorMessage.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		scene.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		scene.UpdatedAt = updated
	}
	return scene, nil
}
