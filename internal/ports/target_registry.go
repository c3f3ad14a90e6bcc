package ports

import (
	"context"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
)

type TargetRegistry interface {
	Get(ctx context.Context, name string) (domain.Target, error)
	List(ctx context.Context) ([]domain.Target, error)
}
