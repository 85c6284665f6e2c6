package notifier

import (
	"context"

	"manga_tracker/internal/domain"
)

// Noop discards notifications. Used when no delivery channel is configured.
type Noop struct{}

func (Noop) Notify(context.Context, []domain.NewChapterSummary) error { return nil }
