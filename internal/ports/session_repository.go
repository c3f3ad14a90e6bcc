package ports

import (
	"context"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
)

// SessionRepository persists the whole session table as one document. Every
// call loads the full document; writes replace it.
type SessionRepository interface {
	GetByKey(ctx context.Context, key domain.ConversationKey) (domain.SessionRecord, error)
	List(ctx context.Context) ([]domain.SessionRecord, error)
	Save(ctx context.Context, record domain.SessionRecord) error
	// Prune removes every record for which expired returns true and persists
	// the document only when at least one record was removed.
	Prune(ctx context.Context, expired func(domain.SessionRecord) bool) (int, error)
}
