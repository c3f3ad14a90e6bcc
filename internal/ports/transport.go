package ports

import (
	"context"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
)

type CommandResult struct {
	Stdout     string
	ExitStatus int
}

type CommandExecutor interface {
	Run(ctx context.Context, command string) (CommandResult, error)
}

// Connection is an open executor channel. Close must be called on every exit
// path.
type Connection interface {
	CommandExecutor
	Close() error
}

type Transport interface {
	Connect(ctx context.Context, target domain.Target) (Connection, error)
}
