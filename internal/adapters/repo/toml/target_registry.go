package toml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Dylan-B-D/vps-manager-bot/internal/adapters/repo/fsutil"
	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/Dylan-B-D/vps-manager-bot/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	targetsPathKey  = "targets.path"
	targetsFileName = "targets.toml"
)

// TargetRegistry reads the configured targets from targets.toml. It is
// read-only; the file is edited by the operator.
type TargetRegistry struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.TargetRegistry = (*TargetRegistry)(nil)

func NewTargetRegistry(cfg *viper.Viper) (*TargetRegistry, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(targetsPathKey)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, appConfigDir, targetsFileName)
	}

	path, err := fsutil.NormalizePath(path)
	if err != nil {
		return nil, err
	}

	return &TargetRegistry{path: path, mu: fsutil.LockForPath(path)}, nil
}

func (r *TargetRegistry) Get(ctx context.Context, name string) (domain.Target, error) {
	targets, err := r.List(ctx)
	if err != nil {
		return domain.Target{}, err
	}

	for _, target := range targets {
		if target.Name == name {
			return target, nil
		}
	}

	return domain.Target{}, fmt.Errorf("%w: %s", domain.ErrTargetNotFound, name)
}

func (r *TargetRegistry) List(ctx context.Context) ([]domain.Target, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := fsutil.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}
	if data == nil {
		return []domain.Target{}, nil
	}

	var file targetsFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode targets file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return nil, err
	}

	targets := make([]domain.Target, 0, len(file.Targets))
	seen := make(map[string]struct{}, len(file.Targets))
	for _, entry := range file.Targets {
		target := fromTargetSchema(entry)
		if err := target.Validate(); err != nil {
			return nil, fmt.Errorf("targets file: %w", err)
		}
		if _, ok := seen[target.Name]; ok {
			return nil, fmt.Errorf("targets file: duplicate target %q", target.Name)
		}
		seen[target.Name] = struct{}{}
		targets = append(targets, target)
	}

	return targets, nil
}

func fromTargetSchema(entry targetSchema) domain.Target {
	return domain.Target{
		Name:        entry.Name,
		Host:        entry.Host,
		Port:        entry.Port,
		Username:    entry.Username,
		Password:    entry.Password,
		PasswordRef: entry.PasswordRef,
	}
}
