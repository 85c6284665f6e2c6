package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"manga_tracker/internal/domain"
)

// ErrNotFound is returned when a row the caller addressed does not exist.
var ErrNotFound = errors.New("postgres: not found")

type ChapterStore struct {
	db *sqlx.DB
}

func NewChapterStore(db *sqlx.DB) *ChapterStore {
	return &ChapterStore{db: db}
}

// Exists reports whether a chapter with this (mapping, number) key is already
// persisted. This is an optimization for the common re-run path; the unique
// constraint behind Insert is the actual duplicate guard.
func (s *ChapterStore) Exists(ctx context.Context, mappingID int64, number string) (bool, error) {
	var one int
	err := s.db.GetContext(ctx, &one,
		"SELECT 1 FROM chapters WHERE mapping_id = $1 AND chapter_number = $2",
		mappingID, number,
	)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Insert persists a new chapter. It reports false without error when the
// (mapping, number) uniqueness key is already taken, so a writer losing a
// concurrent race simply observes "chapter already exists".
func (s *ChapterStore) Insert(ctx context.Context, chapter *domain.Chapter) (bool, error) {
	query := `
		INSERT INTO chapters (mapping_id, chapter_number, title, url, published_at, detected_at, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (mapping_id, chapter_number) DO NOTHING
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		chapter.MappingID,
		chapter.Number,
		chapter.Title,
		chapter.URL,
		chapter.PublishedAt,
		chapter.DetectedAt,
		chapter.Read,
	).Scan(&chapter.ID)

	if err == sql.ErrNoRows || isUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Unread lists unread chapters newest first, joined with target and site
// names for display.
func (s *ChapterStore) Unread(ctx context.Context, limit, offset int) ([]domain.Chapter, error) {
	query := `
		SELECT c.id, c.mapping_id, c.chapter_number, c.title, c.url,
		       c.published_at, c.detected_at, c.read, c.created_at, c.updated_at,
		       t.title AS target_title,
		       st.name AS site_name
		FROM chapters c
		JOIN source_mappings m ON m.id = c.mapping_id
		JOIN targets t ON t.id = m.target_id
		JOIN sites st ON st.id = m.site_id
		WHERE c.read = FALSE
		ORDER BY c.detected_at DESC, CAST(c.chapter_number AS FLOAT) DESC
		LIMIT $1 OFFSET $2`

	var chapters []domain.Chapter
	if err := s.db.SelectContext(ctx, &chapters, query, limit, offset); err != nil {
		return nil, err
	}
	return chapters, nil
}

// SetRead flips the read flag. Returns ErrNotFound for an unknown chapter.
func (s *ChapterStore) SetRead(ctx context.Context, id int64, read bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE chapters SET read = $1, updated_at = NOW() WHERE id = $2",
		read, id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
