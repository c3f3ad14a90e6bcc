// Package ssh implements the remote command transport on top of
// golang.org/x/crypto/ssh. Each Run opens a fresh session on one shared
// client connection.
package ssh

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/Dylan-B-D/vps-manager-bot/internal/ports"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const DefaultDialTimeout = 10 * time.Second

// windowsSemaphoreTimeout is how a timed out TCP connect surfaces on Windows.
const windowsSemaphoreTimeout = "semaphore timeout period has expired"

type Transport struct {
	dialTimeout     time.Duration
	hostKeyCallback ssh.HostKeyCallback
	dialContext     func(ctx context.Context, network, addr string) (net.Conn, error)
}

var _ ports.Transport = (*Transport)(nil)

type Option func(*Transport) error

func WithDialTimeout(timeout time.Duration) Option {
	return func(t *Transport) error {
		if timeout > 0 {
			t.dialTimeout = timeout
		}
		return nil
	}
}

// WithKnownHosts verifies host keys against an OpenSSH known_hosts file.
// Without it host keys are accepted unchecked.
func WithKnownHosts(path string) Option {
	return func(t *Transport) error {
		if strings.TrimSpace(path) == "" {
			return nil
		}
		callback, err := knownhosts.New(path)
		if err != nil {
			return fmt.Errorf("load known hosts %s: %w", path, err)
		}
		t.hostKeyCallback = callback
		return nil
	}
}

func NewTransport(opts ...Option) (*Transport, error) {
	t := &Transport{
		dialTimeout:     DefaultDialTimeout,
		hostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	if t.dialContext == nil {
		dialer := &net.Dialer{Timeout: t.dialTimeout}
		t.dialContext = dialer.DialContext
	}

	return t, nil
}

func (t *Transport) Connect(ctx context.Context, target domain.Target) (ports.Connection, error) {
	addr := target.Address()

	conn, err := t.dialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, connectionError(target, err)
	}

	config := &ssh.ClientConfig{
		User:            target.Username,
		Auth:            passwordAuth(target.Password),
		HostKeyCallback: t.hostKeyCallback,
		Timeout:         t.dialTimeout,
	}

	// Bound the handshake; the deadline is lifted once the client is up.
	_ = conn.SetDeadline(time.Now().Add(t.dialTimeout))
	clientConn, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		_ = conn.Close()
		return nil, connectionError(target, err)
	}
	_ = conn.SetDeadline(time.Time{})

	return &Connection{client: ssh.NewClient(clientConn, chans, reqs)}, nil
}

func passwordAuth(password string) []ssh.AuthMethod {
	return []ssh.AuthMethod{
		ssh.Password(password),
		ssh.KeyboardInteractive(func(_, _ string, questions []string, _ []bool) ([]string, error) {
			answers := make([]string, len(questions))
			for i := range answers {
				answers[i] = password
			}
			return answers, nil
		}),
	}
}

// Connection is an authenticated client. It is safe for sequential use by
// one sampler.
type Connection struct {
	client *ssh.Client
}

var _ ports.Connection = (*Connection)(nil)

// Run executes command in a new session. A non-zero exit status is reported
// in the result, not as an error.
func (c *Connection) Run(ctx context.Context, command string) (ports.CommandResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.CommandResult{}, err
	}

	session, err := c.client.NewSession()
	if err != nil {
		return ports.CommandResult{}, fmt.Errorf("open session: %w", err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	err = session.Run(command)
	if err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			return ports.CommandResult{Stdout: stdout.String(), ExitStatus: exitErr.ExitStatus()}, nil
		}
		if stderr.Len() > 0 {
			return ports.CommandResult{}, fmt.Errorf("run %q: %w: %s", command, err, strings.TrimSpace(stderr.String()))
		}
		return ports.CommandResult{}, fmt.Errorf("run %q: %w", command, err)
	}

	return ports.CommandResult{Stdout: stdout.String()}, nil
}

func (c *Connection) Close() error {
	return c.client.Close()
}

// connectionError tags timeouts with domain.ErrConnectionTimeout so callers
// never need to match on error text.
func connectionError(target domain.Target, err error) error {
	if isTimeout(err) {
		err = fmt.Errorf("%w: %w", domain.ErrConnectionTimeout, err)
	}

	return &domain.ConnectionError{Target: target.Name, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, domain.ErrConnectionTimeout) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return strings.Contains(err.Error(), windowsSemaphoreTimeout)
}
