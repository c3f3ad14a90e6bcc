package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/Dylan-B-D/vps-manager-bot/internal/ports"
)

// ErrUnavailable is returned when the pass binary is not on PATH.
var ErrUnavailable = errors.New("pass command unavailable")

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

type Store struct {
	run runFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: runPassCommand}
}

func (s *Store) Put(ctx context.Context, ref string, password string) error {
	if err := checkRef(ctx, ref); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, password+"\n", "insert", "-m", "-f", ref)
	if err != nil {
		return formatError("insert", ref, err, stderr)
	}

	return nil
}

// Get returns the first line of the entry, which pass reserves for the
// password. Later lines hold metadata and are ignored.
func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	if err := checkRef(ctx, ref); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, "", "show", ref)
	if err != nil {
		if isMissingEntry(stderr) {
			return "", fmt.Errorf("pass entry %q: %w", ref, domain.ErrSecretNotFound)
		}
		return "", formatError("show", ref, err, stderr)
	}

	password, _, _ := strings.Cut(stdout, "\n")
	password = strings.TrimSuffix(password, "\r")
	if password == "" {
		return "", fmt.Errorf("pass entry %q has an empty first line: %w", ref, domain.ErrSecretNotFound)
	}

	return password, nil
}

// Delete is idempotent: removing an entry pass does not know succeeds.
func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := checkRef(ctx, ref); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "-f", ref)
	if err != nil {
		if isMissingEntry(stderr) {
			return nil
		}
		return formatError("rm", ref, err, stderr)
	}

	return nil
}

func checkRef(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return domain.ValidatePasswordRef(ref)
}

func isMissingEntry(stderr string) bool {
	return strings.Contains(stderr, "is not in the password store")
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(op string, ref string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, ref, err)
	}

	return fmt.Errorf("pass %s %q: %w: %s", op, ref, err, stderr)
}
