package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Dylan-B-D/vps-manager-bot/internal/adapters/repo/fsutil"
	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/Dylan-B-D/vps-manager-bot/internal/ports"
)

const tempFilePattern = ".password-*.tmp"

// Store keeps one target password per file under root. A password_ref of
// "vpsbot/targets/web-1/password" lives at root/vpsbot/targets/web-1/password.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Put(ctx context.Context, ref string, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathFor(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fsutil.WriteFileAtomic(path, []byte(password), tempFilePattern); err != nil {
		return fmt.Errorf("write password file %q: %w", ref, err)
	}

	return nil
}

// Get returns the stored password without the trailing newline an editor
// may have appended.
func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.pathFor(ref)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("password file %q: %w", ref, domain.ErrSecretNotFound)
		}
		return "", fmt.Errorf("read password file %q: %w", ref, err)
	}

	password := strings.TrimSuffix(string(data), "\n")
	password = strings.TrimSuffix(password, "\r")
	if password == "" {
		return "", fmt.Errorf("password file %q is empty: %w", ref, domain.ErrSecretNotFound)
	}

	return password, nil
}

// Delete is idempotent.
func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathFor(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete password file %q: %w", ref, err)
	}

	return nil
}

func (s *Store) pathFor(ref string) (string, error) {
	if err := domain.ValidatePasswordRef(ref); err != nil {
		return "", err
	}

	return filepath.Join(s.root, filepath.FromSlash(ref)), nil
}
