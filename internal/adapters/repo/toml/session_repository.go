package toml

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
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	sessionsPathKey  = "sessions.path"
	appConfigDir     = ".vpsbot"
	cacheDir         = "cache"
	sessionsFileName = "login_states.toml"
	tempFilePattern  = ".login_states-*.toml.tmp"
)

// SessionRepository keeps the session table in a single TOML document. Every
// operation reads the whole file; writes replace it.
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

	file, err := r.readSchema()
	if err != nil {
		return domain.SessionRecord{}, err
	}

	entry, ok := file.Sessions[key.String()]
	if !ok {
		return domain.SessionRecord{}, domain.ErrSessionNotFound
	}

	return r.fromSchema(key.String(), entry)
}

func (r *SessionRepository) List(ctx context.Context) ([]domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]domain.SessionRecord, 0, len(file.Sessions))
	for rawKey, entry := range file.Sessions {
		record, err := r.fromSchema(rawKey, entry)
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

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	file.Sessions[record.Key.String()] = toSchema(record)

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *SessionRepository) Prune(ctx context.Context, expired func(domain.SessionRecord) bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return 0, err
	}

	removed := 0
	for rawKey, entry := range file.Sessions {
		record, err := r.fromSchema(rawKey, entry)
		if err != nil {
			return 0, err
		}
		if expired(record) {
			delete(file.Sessions, rawKey)
			removed++
		}
	}

	if removed == 0 {
		return 0, nil
	}

	if err := r.writeSchema(file); err != nil {
		return 0, err
	}

	return removed, nil
}

func (r *SessionRepository) readSchema() (sessionsFileSchema, error) {
	var file sessionsFileSchema

	data, err := fsutil.ReadFile(r.path)
	if err != nil {
		return file, fmt.Errorf("read sessions file: %w", err)
	}
	if data == nil {
		file.applyDefaults()
		return file, nil
	}

	if err := toml.Unmarshal(data, &file); err != nil {
		return sessionsFileSchema{}, &domain.DeserializationError{Path: r.path, Err: err}
	}
	if err := file.validateVersion(); err != nil {
		return sessionsFileSchema{}, &domain.DeserializationError{Path: r.path, Err: err}
	}
	file.applyDefaults()

	return file, nil
}

func (r *SessionRepository) writeSchema(file sessionsFileSchema) error {
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode sessions file: %w", err)
	}

	if err := fsutil.WriteFileAtomic(r.path, data, tempFilePattern); err != nil {
		return fmt.Errorf("write sessions file: %w", err)
	}

	return nil
}

func (r *SessionRepository) fromSchema(rawKey string, entry sessionSchema) (domain.SessionRecord, error) {
	key, err := domain.ParseConversationKey(rawKey)
	if err != nil {
		return domain.SessionRecord{}, &domain.DeserializationError{Path: r.path, Err: err}
	}

	createdAt, err := time.Parse(time.RFC3339, entry.CreatedAt)
	if err != nil {
		return domain.SessionRecord{}, &domain.DeserializationError{Path: r.path, Err: fmt.Errorf("session %s: created_at: %w", rawKey, err)}
	}

	return domain.SessionRecord{Key: key, TargetName: entry.TargetName, CreatedAt: createdAt.UTC()}, nil
}

func toSchema(record domain.SessionRecord) sessionSchema {
	return sessionSchema{
		TargetName: record.TargetName,
		CreatedAt:  record.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
