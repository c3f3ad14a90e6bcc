package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/Dylan-B-D/vps-manager-bot/internal/adapters/secrets/file"
	passstore "github.com/Dylan-B-D/vps-manager-bot/internal/adapters/secrets/pass"
	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/Dylan-B-D/vps-manager-bot/internal/ports"
)

// Store resolves target passwords by password_ref, asking the preferred
// backend first and the fallback only when the preferred one has no entry
// or is not installed.
type Store struct {
	preferred ports.SecretStore
	fallback  ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPreferredStore = errors.New("preferred password store is nil")
	errNilFallbackStore  = errors.New("fallback password store is nil")
)

func NewStore(preferred ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if preferred == nil {
		return nil, errNilPreferredStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{preferred: preferred, fallback: fallback}, nil
}

// NewPassFirstWithFileFallback reads from pass and falls back to plain files
// under fileRoot on hosts without pass.
func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot))
}

// Get returns the password stored under ref. When neither backend holds it
// the error is domain.ErrSecretNotFound for ref alone. A preferred backend
// that fails for any other reason is reported as is, so a broken pass setup
// is never masked by a stale file.
func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	if err := domain.ValidatePasswordRef(ref); err != nil {
		return "", err
	}

	password, err := s.preferred.Get(ctx, ref)
	if err == nil {
		return password, nil
	}
	if !absent(err) {
		return "", err
	}

	password, err = s.fallback.Get(ctx, ref)
	if err == nil {
		return password, nil
	}
	if errors.Is(err, domain.ErrSecretNotFound) {
		return "", fmt.Errorf("password %q: %w", ref, domain.ErrSecretNotFound)
	}

	return "", err
}

// Put writes to the preferred backend and only uses the fallback when the
// preferred one is not installed.
func (s *Store) Put(ctx context.Context, ref string, password string) error {
	if err := domain.ValidatePasswordRef(ref); err != nil {
		return err
	}

	err := s.preferred.Put(ctx, ref, password)
	if err == nil || !errors.Is(err, passstore.ErrUnavailable) {
		return err
	}

	return s.fallback.Put(ctx, ref, password)
}

// Delete removes ref from both backends so an older copy in the fallback
// cannot resolve after the preferred entry is gone.
func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := domain.ValidatePasswordRef(ref); err != nil {
		return err
	}

	err := s.preferred.Delete(ctx, ref)
	if isContextErr(err) {
		return err
	}
	if errors.Is(err, passstore.ErrUnavailable) {
		err = nil
	}

	return errors.Join(err, s.fallback.Delete(ctx, ref))
}

func absent(err error) bool {
	return errors.Is(err, domain.ErrSecretNotFound) || errors.Is(err, passstore.ErrUnavailable)
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
