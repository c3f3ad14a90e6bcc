// Package bson stores the session table in the BSON layout written by the
// first deployment of the bot: one document mapping "{guild}_{channel}" to
// {vps_name, timestamp}.
package bson

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Dylan-B-D/vps-manager-bot/internal/adapters/repo/fsutil"
	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/Dylan-B-D/vps-manager-bot/internal/ports"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	sessionsPathKey  = "sessions.path"
	appConfigDir     = ".vpsbot"
	cacheDir         = "cache"
	sessionsFileName = "login_states.bson"
	tempFilePattern  = ".login_states-*.bson.tmp"
)

type sessionDocument struct {
	VPSName   string    `bson:"vps_name"`
	Timestamp time.Time `bson:"timestamp"`
}

type SessionRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(cfg *viper.Viper) (*SessionRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(sessionsPathKey)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, appConfigDir, cacheDir, sessionsFileName)
	}

	path, err := fsutil.NormalizePath(path)
	if err != nil {
		return nil, err
	}

	return &SessionRepository{path: path, mu: fsutil.LockForPath(path)}, nil
}

func (r *SessionRepository) Path() string {
	return r.path
}

func (r *SessionRepository) GetByKey(ctx context.Context, key domain.ConversationKey) (domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	docs, err := r.load()
	if err != nil {
		return domain.SessionRecord{}, err
	}

	doc, ok := docs[key.String()]
	if !ok {
		return domain.SessionRecord{}, domain.ErrSessionNotFound
	}

	return domain.SessionRecord{Key: key, TargetName: doc.VPSName, CreatedAt: doc.Timestamp.UTC()}, nil
}

func (r *SessionRepository) List(ctx context.Context) ([]domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	docs, err := r.load()
	if err != nil {
		return nil, err
	}

	records := make([]domain.SessionRecord, 0, len(docs))
	for rawKey, doc := range docs {
		record, err := r.toRecord(rawKey, doc)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Key.String() < records[j].Key.String()
	})

	return records, nil
}

func (r *SessionRepository) Save(ctx context.Context, record domain.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.load()
	if err != nil {
		return err
	}

	docs[record.Key.String()] = sessionDocument{VPSName: record.TargetName, Timestamp: record.CreatedAt.UTC()}

	return r.store(docs)
}

func (r *SessionRepository) Prune(ctx context.Context, expired func(domain.SessionRecord) bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.load()
	if err != nil {
		return 0, err
	}

	removed := 0
	for rawKey, doc := range docs {
		record, err := r.toRecord(rawKey, doc)
		if err != nil {
			return 0, err
		}
		if expired(record) {
			delete(docs, rawKey)
			removed++
		}
	}

	if removed == 0 {
		return 0, nil
	}

	if err := r.store(docs); err != nil {
		return 0, err
	}

	return removed, nil
}

func (r *SessionRepository) load() (map[string]sessionDocument, error) {
	data, err := fsutil.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read sessions file: %w", err)
	}

	docs := map[string]sessionDocument{}
	if data == nil {
		return docs, nil
	}

	if err := bson.Unmarshal(data, &docs); err != nil {
		return nil, &domain.DeserializationError{Path: r.path, Err: err}
	}

	return docs, nil
}

func (r *SessionRepository) store(docs map[string]sessionDocument) error {
	data, err := bson.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode sessions file: %w", err)
	}

	if err := fsutil.WriteFileAtomic(r.path, data, tempFilePattern); err != nil {
		return fmt.Errorf("write sessions file: %w", err)
	}

	return nil
}

func (r *SessionRepository) toRecord(rawKey string, doc sessionDocument) (domain.SessionRecord, error) {
	key, err := domain.ParseConversationKey(rawKey)
	if err != nil {
		return domain.SessionRecord{}, &domain.DeserializationError{Path: r.path, Err: err}
	}

	return domain.SessionRecord{Key: key, TargetName: doc.VPSName, CreatedAt: doc.Timestamp.UTC()}, nil
}
