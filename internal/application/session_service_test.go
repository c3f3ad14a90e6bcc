package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/Dylan-B-D/vps-manager-bot/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type inMemorySessionRepo struct {
	mu       sync.Mutex
	sessions map[domain.ConversationKey]domain.SessionRecord
	writes   int
}

func newInMemorySessionRepo(records ...domain.SessionRecord) *inMemorySessionRepo {
	repo := &inMemorySessionRepo{sessions: map[domain.ConversationKey]domain.SessionRecord{}}
	for _, record := range records {
		repo.sessions[record.Key] = record
	}
	return repo
}

func (r *inMemorySessionRepo) GetByKey(_ context.Context, key domain.ConversationKey) (domain.SessionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.sessions[key]
	if !ok {
		return domain.SessionRecord{}, domain.ErrSessionNotFound
	}
	return record, nil
}

func (r *inMemorySessionRepo) List(_ context.Context) ([]domain.SessionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]domain.SessionRecord, 0, len(r.sessions))
	for _, record := range r.sessions {
		records = append(records, record)
	}
	return records, nil
}

func (r *inMemorySessionRepo) Save(_ context.Context, record domain.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[record.Key] = record
	r.writes++
	return nil
}

func (r *inMemorySessionRepo) Prune(_ context.Context, expired func(domain.SessionRecord) bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, record := range r.sessions {
		if expired(record) {
			delete(r.sessions, key)
			removed++
		}
	}
	if removed > 0 {
		r.writes++
	}
	return removed, nil
}

var (
	sessionKey = domain.NewConversationKey(123, 456)
	sessionNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
)

func TestSaveSessionThenGetActiveTarget(t *testing.T) {
	t.Parallel()

	repo := newInMemorySessionRepo()
	svc := NewSessionService(repo, fixedClock{now: sessionNow})

	require.NoError(t, svc.SaveSession(context.Background(), sessionKey, "web-1"))

	name, ok, err := svc.GetActiveTarget(context.Background(), sessionKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "web-1", name)
	assert.Equal(t, sessionNow, repo.sessions[sessionKey].CreatedAt)
}

func TestSaveSessionOverwritesPreviousBinding(t *testing.T) {
	t.Parallel()

	repo := newInMemorySessionRepo()
	svc := NewSessionService(repo, fixedClock{now: sessionNow})

	require.NoError(t, svc.SaveSession(context.Background(), sessionKey, "web-1"))
	require.NoError(t, svc.SaveSession(context.Background(), sessionKey, "db-1"))

	name, ok, err := svc.GetActiveTarget(context.Background(), sessionKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "db-1", name)
	assert.Len(t, repo.sessions, 1)
}

func TestGetActiveTargetUnknownKey(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(newInMemorySessionRepo(), fixedClock{now: sessionNow})

	name, ok, err := svc.GetActiveTarget(context.Background(), domain.NewConversationKey(1, 2))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, name)
}

func TestGetActiveTargetReturnsStaleRecordUntilSwept(t *testing.T) {
	t.Parallel()

	repo := newInMemorySessionRepo(domain.SessionRecord{Key: sessionKey, TargetName: "web-1", CreatedAt: sessionNow.Add(-time.Hour)})
	svc := NewSessionService(repo, fixedClock{now: sessionNow})

	name, ok, err := svc.GetActiveTarget(context.Background(), sessionKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "web-1", name)
}

func TestGetActiveTargetStrictTTLHidesStaleRecord(t *testing.T) {
	t.Parallel()

	repo := newInMemorySessionRepo(domain.SessionRecord{Key: sessionKey, TargetName: "web-1", CreatedAt: sessionNow.Add(-31 * time.Minute)})
	svc := NewSessionService(repo, fixedClock{now: sessionNow}, WithStrictTTL(true))

	_, ok, err := svc.GetActiveTarget(context.Background(), sessionKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, repo.sessions, 1)
}

func TestGetActiveTargetPropagatesRepositoryErrors(t *testing.T) {
	t.Parallel()

	repo := mocks.NewMockSessionRepository(t)
	decodeErr := &domain.DeserializationError{Path: "/tmp/x", Err: errors.New("bad")}
	repo.EXPECT().GetByKey(mock.Anything, sessionKey).Return(domain.SessionRecord{}, decodeErr)

	svc := NewSessionService(repo, fixedClock{now: sessionNow})
	_, _, err := svc.GetActiveTarget(context.Background(), sessionKey)

	var target *domain.DeserializationError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "/tmp/x", target.Path)
}

func TestSweepExpired(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		age         time.Duration
		wantRemoved int
	}{
		{name: "fresh", age: 10 * time.Minute, wantRemoved: 0},
		{name: "exactly ttl is kept", age: domain.SessionTTL, wantRemoved: 0},
		{name: "older than ttl", age: 31 * time.Minute, wantRemoved: 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := newInMemorySessionRepo(domain.SessionRecord{Key: sessionKey, TargetName: "web-1", CreatedAt: sessionNow.Add(-tc.age)})
			svc := NewSessionService(repo, fixedClock{now: sessionNow})

			removed, err := svc.SweepExpired(context.Background(), sessionNow)
			require.NoError(t, err)
			assert.Equal(t, tc.wantRemoved, removed)
			assert.Len(t, repo.sessions, 1-tc.wantRemoved)
			assert.Equal(t, tc.wantRemoved, repo.writes)
		})
	}
}

func TestSweepExpiredHonoursCustomTTL(t *testing.T) {
	t.Parallel()

	repo := newInMemorySessionRepo(
		domain.SessionRecord{Key: domain.NewConversationKey(1, 1), TargetName: "a", CreatedAt: sessionNow.Add(-2 * time.Minute)},
		domain.SessionRecord{Key: domain.NewConversationKey(1, 2), TargetName: "b", CreatedAt: sessionNow.Add(-30 * time.Second)},
	)
	svc := NewSessionService(repo, fixedClock{now: sessionNow}, WithTTL(time.Minute))

	removed, err := svc.SweepExpired(context.Background(), sessionNow)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	_, stillThere := repo.sessions[domain.NewConversationKey(1, 2)]
	assert.True(t, stillThere)
}

func TestRunSweeperStopsOnCancel(t *testing.T) {
	t.Parallel()

	repo := newInMemorySessionRepo(domain.SessionRecord{Key: sessionKey, TargetName: "web-1", CreatedAt: sessionNow.Add(-time.Hour)})
	svc := NewSessionService(repo, fixedClock{now: sessionNow})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RunSweeper(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		records, err := repo.List(context.Background())
		return err == nil && len(records) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestRunSweeperKeepsRunningAfterFailure(t *testing.T) {
	t.Parallel()

	repo := mocks.NewMockSessionRepository(t)
	calls := make(chan struct{}, 4)
	repo.EXPECT().Prune(mock.Anything, mock.Anything).RunAndReturn(func(context.Context, func(domain.SessionRecord) bool) (int, error) {
		select {
		case calls <- struct{}{}:
		default:
		}
		return 0, errors.New("disk full")
	})

	svc := NewSessionService(repo, fixedClock{now: sessionNow})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RunSweeper(ctx, 2*time.Millisecond)
		close(done)
	}()

	<-calls
	<-calls
	cancel()
	<-done
}

func TestSaveSessionStoresUTCTimestamp(t *testing.T) {
	t.Parallel()

	clock := mocks.NewMockClock(t)
	local := time.Date(2026, 10, 16, 14, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	clock.EXPECT().Now().Return(local).Once()

	repo := newInMemorySessionRepo()
	svc := NewSessionService(repo, clock)

	require.NoError(t, svc.SaveSession(context.Background(), sessionKey, "web-1"))
	assert.Equal(t, time.UTC, repo.sessions[sessionKey].CreatedAt.Location())
	assert.True(t, repo.sessions[sessionKey].CreatedAt.Equal(local))
}
