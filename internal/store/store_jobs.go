package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const jobColumns = "id, kind, scene_id, project_id, status, phase, progress, output_url, error_message, created_at, updated_at"

// CreateJob inserts a fresh pending job record for the given pipeline.
func (s *Store) CreateJob(ctx context.Context, kind JobKind, sceneID, projectID string) (*Job, error) {
	id := uuid.NewString()
	timestamp := nowStamp()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO jobs (
            id, kind, scene_id, project_id, status, phase, progress,
            output_url, error_message, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?)`,
		id,
		kind,
		nullableString(sceneID),
		nullableString(projectID),
		JobPending,
		nil,
		nil,
		nil,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	return s.GetJob(ctx, id)
}

// GetJob returns a job by id.
func (s *Store) GetJob(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// ListJobs returns all jobs, newest first.
func (s *Store) ListJobs(ctx context.Context) ([]*Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// StartJob moves a pending job to running with an initial phase label.
func (s *Store) StartJob(ctx context.Context, id, phase string) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE jobs SET status = ?, phase = ?, updated_at = ?
         WHERE id = ? AND status = ?`,
		JobRunning,
		nullableString(phase),
		nowStamp(),
		id,
		JobPending,
	)
	if err != nil {
		return fmt.Errorf("start job: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetJobProgress updates a running job's phase and progress. Progress only
// moves forward; a smaller value than what is already stored is kept as-is.
// Terminal jobs are never modified.
func (s *Store) SetJobProgress(ctx context.Context, id, phase string, progress int) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE jobs
         SET phase = ?,
             progress = CASE WHEN progress >= ? THEN progress ELSE ? END,
             updated_at = ?
         WHERE id = ? AND status = ?`,
		nullableString(phase),
		progress,
		progress,
		nowStamp(),
		id,
		JobRunning,
	)
	if err != nil {
		return fmt.Errorf("set job progress: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CompleteJob marks a job completed at full progress with its output URL.
// A job already in a terminal state is left untouched.
func (s *Store) CompleteJob(ctx context.Context, id, outputURL string) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE jobs
         SET status = ?, phase = NULL, progress = 100, output_url = ?, updated_at = ?
         WHERE id = ? AND status IN (?, ?)`,
		JobCompleted,
		nullableString(outputURL),
		nowStamp(),
		id,
		JobPending,
		JobRunning,
	)
	if err != nil {
		return fmt.Errorf("complete job: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// FailJob marks a job failed, recording the diagnostic message. A job
// already in a terminal state is left untouched.
func (s *Store) FailJob(ctx context.Context, id, message string) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE jobs
         SET status = ?, phase = NULL, error_message = ?, updated_at = ?
         WHERE id = ? AND status IN (?, ?)`,
		JobFailed,
		nullableString(message),
		nowStamp(),
		id,
		JobPending,
		JobRunning,
	)
	if err != nil {
		return fmt.Errorf("fail job: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanJob(scanner rowScanner) (*Job, error) {
	var (
		id           string
		kind         string
		sceneID      sql.NullString
		projectID    sql.NullString
		statusStr    string
		phase        sql.NullString
		progress     int
		outputURL    sql.NullString
		errorMessage sql.NullString
		createdRaw   sql.NullString
		updatedRaw   sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&kind,
		&sceneID,
		&projectID,
		&statusStr,
		&phase,
		&progress,
		&outputURL,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	job := &Job{
		ID:           id,
		Kind:         JobKind(kind),
		SceneID:      sceneID.String,
		ProjectID:    projectID.String,
		Status:       JobStatus(statusStr),
		Phase:        phase.String,
		Progress:     progress,
		OutputURL:    outputURL.String,
		ErrorMessage: errorMessage.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		job.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		job.UpdatedAt = updated
	}
	return job, nil
}
