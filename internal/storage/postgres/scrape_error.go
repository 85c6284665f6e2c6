package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"manga_tracker/internal/domain"
)

type ScrapeErrorStore struct {
	db *sqlx.DB
}

func NewScrapeErrorStore(db *sqlx.DB) *ScrapeErrorStore {
	return &ScrapeErrorStore{db: db}
}

// Record appends a scraping error to the audit trail. Never read back by the
// tracking flow itself.
func (s *ScrapeErrorStore) Record(ctx context.Context, e *domain.ScrapingError) error {
	query := `
		INSERT INTO scraping_errors (mapping_id, error_type, message, resolved)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return s.db.QueryRowContext(ctx, query,
		e.MappingID,
		e.ErrorType,
		e.Message,
		e.Resolved,
	).Scan(&e.ID, &e.CreatedAt)
}

// Unresolved lists open errors, oldest first, for the diagnostics surface.
func (s *ScrapeErrorStore) Unresolved(ctx context.Context, limit int) ([]domain.ScrapingError, error) {
	var out []domain.ScrapingError
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, mapping_id, error_type, message, resolved, created_at
		FROM scraping_errors
		WHERE resolved = FALSE
		ORDER BY created_at
		LIMIT $1`, limit)
	return out, err
}
