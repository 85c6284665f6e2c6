package postgres

import (
	"context"
	"strconv"

	"github.com/jmoiron/sqlx"

	"manga_tracker/internal/domain"
)

type MappingStore struct {
	db *sqlx.DB
}

func NewMappingStore(db *sqlx.DB) *MappingStore {
	return &MappingStore{db: db}
}

// Eligible returns the mappings a tracking run should visit: manually
// verified, on an active site, optionally narrowed by target and/or site.
// Order is stable so runs process mappings deterministically.
func (s *MappingStore) Eligible(ctx context.Context, targetID, siteID *int64) ([]domain.SourceMapping, error) {
	query := `
		SELECT m.id, m.target_id, m.site_id, m.url, m.verified, m.notes, m.created_at,
		       t.title AS target_title,
		       st.name AS site_name,
		       st.adapter_id AS site_adapter_id
		FROM source_mappings m
		JOIN targets t ON t.id = m.target_id
		JOIN sites st ON st.id = m.site_id
		WHERE m.verified = TRUE AND st.active = TRUE`

	var args []interface{}
	if targetID != nil {
		args = append(args, *targetID)
		query += " AND m.target_id = $" + strconv.Itoa(len(args))
	}
	if siteID != nil {
		args = append(args, *siteID)
		query += " AND m.site_id = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY m.id"

	var mappings []domain.SourceMapping
	if err := s.db.SelectContext(ctx, &mappings, query, args...); err != nil {
		return nil, err
	}
	return mappings, nil
}
