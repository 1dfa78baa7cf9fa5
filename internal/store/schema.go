package store

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS projects (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT,
    audio_url   TEXT,
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scenes (
    id               TEXT PRIMARY KEY,
    project_id       TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    prompt           TEXT NOT NULL,
    code             TEXT,
    video_url        TEXT,
    thumbnail_url    TEXT,
    duration_seconds REAL NOT NULL DEFAULT 0,
    order_index      INTEGER NOT NULL,
    status           TEXT NOT NULL,
    error_message    TEXT,
    created_at       TEXT NOT NULL,
    updated_at       TEXT NOT NULL,
    UNIQUE (project_id, order_index)
);

CREATE TABLE IF NOT EXISTS jobs (
    id            TEXT PRIMARY KEY,
    kind          TEXT NOT NULL,
    scene_id      TEXT,
    project_id    TEXT,
    status        TEXT NOT NULL,
    phase         TEXT,
    progress      INTEGER NOT NULL DEFAULT 0,
    output_url    TEXT,
    error_message TEXT,
    created_at    TEXT NOT NULL,
    updated_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scenes_project ON scenes(project_id, order_index);
CREATE INDEX IF NOT EXISTS idx_jobs_created ON jobs(created_at);
`

func (s *Store) applySchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
