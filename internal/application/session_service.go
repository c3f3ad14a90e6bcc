package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/Dylan-B-D/vps-manager-bot/internal/ports"
)

type SessionOption func(*SessionService)

// WithTTL overrides domain.SessionTTL.
func WithTTL(ttl time.Duration) SessionOption {
	return func(s *SessionService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithStrictTTL hides records older than the TTL from reads. They stay on
// disk until the next sweep.
func WithStrictTTL(strict bool) SessionOption {
	return func(s *SessionService) {
		s.strict = strict
	}
}

func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *SessionService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type SessionService struct {
	repo   ports.SessionRepository
	clock  ports.Clock
	logger *slog.Logger
	ttl    time.Duration
	strict bool
}

func NewSessionService(repo ports.SessionRepository, clock ports.Clock, opts ...SessionOption) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &SessionService{
		repo:   repo,
		clock:  clock,
		logger: slog.Default(),
		ttl:    domain.SessionTTL,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// SaveSession binds key to targetName, replacing any previous binding.
func (s *SessionService) SaveSession(ctx context.Context, key domain.ConversationKey, targetName string) error {
	record := domain.SessionRecord{
		Key:        key,
		TargetName: targetName,
		CreatedAt:  s.clock.Now().UTC(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return fmt.Errorf("save session %s: %w", key, err)
	}

	s.logger.Debug("session_saved", "key", key.String(), "target", targetName)
	return nil
}

// GetActiveTarget returns the target bound to key. Expired records are still
// returned until swept unless strict TTL is enabled.
func (s *SessionService) GetActiveTarget(ctx context.Context, key domain.ConversationKey) (string, bool, error) {
	record, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get session %s: %w", key, err)
	}

	if s.strict && record.Expired(s.clock.Now(), s.ttl) {
		return "", false, nil
	}

	return record.TargetName, true, nil
}

func (s *SessionService) ListSessions(ctx context.Context) ([]domain.SessionRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return records, nil
}

// SweepExpired deletes every record older than the TTL at now.
func (s *SessionService) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	removed, err := s.repo.Prune(ctx, func(record domain.SessionRecord) bool {
		return record.Expired(now, s.ttl)
	})
	if err != nil {
		return 0, fmt.Errorf("sweep expired sessions: %w", err)
	}

	return removed, nil
}

// RunSweeper calls SweepExpired every interval until ctx is done. Failed
// sweeps are logged and retried on the next tick.
func (s *SessionService) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = domain.SweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("sweeper_started", "interval", interval.String(), "ttl", s.ttl.String())
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper_stopped")
			return
		case <-ticker.C:
			removed, err := s.SweepExpired(ctx, s.clock.Now())
			if err != nil {
				s.logger.Error("sweep_failed", "error", err)
				continue
			}
			if removed > 0 {
				s.logger.Info("sessions_expired", "removed", removed)
			}
		}
	}
}
