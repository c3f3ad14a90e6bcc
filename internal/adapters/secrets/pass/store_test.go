package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, context.Background(), ctx)
			assert.Equal(t, []string{"insert", "-m", "-f", "vpsbot/targets/web-1/password"}, args)
			assert.Equal(t, "top-secret\n", input)
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), "vpsbot/targets/web-1/password", "top-secret")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStoreGetUsesPassShowAndReturnsFirstLine(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", "vpsbot/targets/web-1/password"}, args)
			assert.Empty(t, input)
			return "top-secret\nurl: https://panel.example.com\nlogin: root\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), "vpsbot/targets/web-1/password")
	require.NoError(t, err)
	assert.Equal(t, "top-secret", value)
}

func TestStoreDeleteUsesPassRemove(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", "vpsbot/targets/web-1/password"}, args)
			assert.Empty(t, input)
			return "", "", nil
		},
	}

	err := store.Delete(context.Background(), "vpsbot/targets/web-1/password")
	require.NoError(t, err)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "entry not found", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "vpsbot/targets/web-1/password")
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass show")
	assert.ErrorContains(t, err, "vpsbot/targets/web-1/password")
	assert.ErrorContains(t, err, "entry not found")
}

func TestStoreGetMapsMissingEntryToSecretNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: vpsbot/targets/web-1/password is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "vpsbot/targets/web-1/password")
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteMissingEntrySucceeds(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: vpsbot/targets/web-1/password is not in the password store.", errors.New("exit status 1")
		},
	}

	require.NoError(t, store.Delete(context.Background(), "vpsbot/targets/web-1/password"))
}

func TestStoreGetEmptyFirstLineIsNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "\nlogin: root\n", "", nil
		},
	}

	_, err := store.Get(context.Background(), "vpsbot/targets/web-1/password")
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreRejectsInvalidRefWithoutRunningPass(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			t.Fatalf("pass must not run for an invalid ref, got %v", args)
			return "", "", nil
		},
	}

	_, err := store.Get(context.Background(), "../outside")
	require.ErrorIs(t, err, domain.ErrInvalidSecretRef)
	require.ErrorIs(t, store.Put(context.Background(), "/abs", "x"), domain.ErrInvalidSecretRef)
	require.ErrorIs(t, store.Delete(context.Background(), ""), domain.ErrInvalidSecretRef)
}

func TestStoreGetPropagatesUnavailable(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "", ErrUnavailable
		},
	}

	_, err := store.Get(context.Background(), "vpsbot/targets/web-1/password")
	assert.ErrorIs(t, err, ErrUnavailable)
}
