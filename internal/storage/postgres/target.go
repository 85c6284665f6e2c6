package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type TargetStore struct {
	db *sqlx.DB
}

func NewTargetStore(db *sqlx.DB) *TargetStore {
	return &TargetStore{db: db}
}

// TouchLastChecked stamps the target after its mapping was processed,
// whether the check succeeded or failed.
func (s *TargetStore) TouchLastChecked(ctx context.Context, targetID int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE targets SET last_checked = NOW(), updated_at = NOW() WHERE id = $1",
		targetID,
	)
	return err
}
