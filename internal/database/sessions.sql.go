package database

import (
	"context"

	"github.com/google/uuid"
)

const createSession = `-- name: CreateSession :one
INSERT INTO sessions (
id, original_filename, object_key, status)
VALUES ($1, $2, $3, $4)
RETURNING id, original_filename, object_key, status, created_at, updated_at
`

type CreateSessionParams struct {
	ID               uuid.UUID
	OriginalFilename string
	ObjectKey        string
	Status           string
}

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error) {
	row := q.db.QueryRowContext(ctx, createSession,
		arg.ID,
		arg.OriginalFilename,
		arg.ObjectKey,
		arg.Status,
	)
	var i Session
	err := row.Scan(
		&i.ID,
		&i.OriginalFilename,
		&i.ObjectKey,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateSessionStatus = `-- name: UpdateSessionStatus :exec
UPDATE sessions
SET status=$1, updated_at=CURRENT_TIMESTAMP
WHERE id=$2
`

type UpdateSessionStatusParams struct {
	Status string
	ID     uuid.UUID
}

func (q *Queries) UpdateSessionStatus(ctx context.Context, arg UpdateSessionStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateSessionStatus, arg.Status, arg.ID)
	return err
}

const getLatestSession = `-- name: GetLatestSession :one
SELECT id, original_filename, object_key, status, created_at, updated_at FROM sessions ORDER BY created_at DESC LIMIT 1
`

func (q *Queries) GetLatestSession(ctx context.Context) (Session, error) {
	row := q.db.QueryRowContext(ctx, getLatestSession)
	var i Session
	err := row.Scan(
		&i.ID,
		&i.OriginalFilename,
		&i.ObjectKey,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
