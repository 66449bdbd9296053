package database

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

const createOrUpdateAnalysisResult = `-- name: CreateOrUpdateAnalysisResult :exec
INSERT INTO analysis_results (
result, session_id)
VALUES ( $1, $2)
ON CONFLICT (session_id)
DO UPDATE SET
    result = EXCLUDED.result,
    updated_at = CURRENT_TIMESTAMP
`

type CreateOrUpdateAnalysisResultParams struct {
	Result    json.RawMessage
	SessionID uuid.UUID
}

func (q *Queries) CreateOrUpdateAnalysisResult(ctx context.Context, arg CreateOrUpdateAnalysisResultParams) error {
	_, err := q.db.ExecContext(ctx, createOrUpdateAnalysisResult, arg.Result, arg.SessionID)
	return err
}
