package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/Dylan-B-D/vps-manager-bot/internal/ports"
)

const motdCommand = "cat /etc/motd"

type LoginResult struct {
	Target domain.Target
	Banner string
	// HasBanner is false when the motd had no ASCII art block.
	HasBanner bool
}

type ResourcesResult struct {
	Target domain.Target
	Report domain.UsageReport
}

type LoginService struct {
	targets   ports.TargetRegistry
	secrets   ports.SecretStore
	transport ports.Transport
	sessions  *SessionService
	logger    *slog.Logger
}

func NewLoginService(targets ports.TargetRegistry, secrets ports.SecretStore, transport ports.Transport, sessions *SessionService, logger *slog.Logger) *LoginService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LoginService{targets: targets, secrets: secrets, transport: transport, sessions: sessions, logger: logger}
}

// Login verifies that targetName is reachable, reads its banner and binds it
// to key. The binding is only saved once the connection is closed.
func (s *LoginService) Login(ctx context.Context, key domain.ConversationKey, targetName string) (LoginResult, error) {
	target, err := resolveTarget(ctx, s.targets, s.secrets, targetName)
	if err != nil {
		return LoginResult{}, err
	}

	banner, found, err := s.readBanner(ctx, target)
	if err != nil {
		return LoginResult{}, err
	}

	if err := s.sessions.SaveSession(ctx, key, target.Name); err != nil {
		return LoginResult{}, err
	}

	s.logger.Info("login_succeeded", "key", key.String(), "target", target.Name)
	return LoginResult{Target: target, Banner: banner, HasBanner: found}, nil
}

func (s *LoginService) readBanner(ctx context.Context, target domain.Target) (banner string, found bool, err error) {
	conn, err := s.transport.Connect(ctx, target)
	if err != nil {
		return "", false, err
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			s.logger.Warn("connection_close_failed", "target", target.Name, "error", closeErr)
		}
	}()

	result, err := conn.Run(ctx, motdCommand)
	if err != nil {
		return "", false, fmt.Errorf("read motd on %s: %w", target.Name, err)
	}
	// A host without /etc/motd is still a successful login.
	if result.ExitStatus != 0 {
		return "", false, nil
	}

	banner, found = domain.ExtractBanner(result.Stdout)
	return banner, found, nil
}

type ResourcesService struct {
	targets   ports.TargetRegistry
	secrets   ports.SecretStore
	transport ports.Transport
	sessions  *SessionService
	sampler   *Sampler
	logger    *slog.Logger
}

func NewResourcesService(targets ports.TargetRegistry, secrets ports.SecretStore, transport ports.Transport, sessions *SessionService, sampler *Sampler, logger *slog.Logger) *ResourcesService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ResourcesService{targets: targets, secrets: secrets, transport: transport, sessions: sessions, sampler: sampler, logger: logger}
}

// ActiveTarget returns the target bound to key or domain.ErrNoActiveSession.
func (s *ResourcesService) ActiveTarget(ctx context.Context, key domain.ConversationKey) (string, error) {
	name, ok, err := s.sessions.GetActiveTarget(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrNoActiveSession
	}

	return name, nil
}

func (s *ResourcesService) Resources(ctx context.Context, key domain.ConversationKey) (ResourcesResult, error) {
	name, err := s.ActiveTarget(ctx, key)
	if err != nil {
		return ResourcesResult{}, err
	}

	target, err := resolveTarget(ctx, s.targets, s.secrets, name)
	if err != nil {
		return ResourcesResult{}, err
	}

	conn, err := s.transport.Connect(ctx, target)
	if err != nil {
		return ResourcesResult{}, err
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			s.logger.Warn("connection_close_failed", "target", target.Name, "error", closeErr)
		}
	}()

	report, err := s.sampler.Sample(ctx, conn)
	if err != nil {
		return ResourcesResult{}, fmt.Errorf("sample %s: %w", target.Name, err)
	}

	s.logger.Debug("resources_sampled", "target", target.Name, "cpu_percent", report.CPU.UtilizationPercent)
	return ResourcesResult{Target: target, Report: report}, nil
}

func resolveTarget(ctx context.Context, targets ports.TargetRegistry, secrets ports.SecretStore, name string) (domain.Target, error) {
	target, err := targets.Get(ctx, name)
	if err != nil {
		return domain.Target{}, err
	}
	if target.Password != "" || target.PasswordRef == "" {
		return target, nil
	}
	if secrets == nil {
		return domain.Target{}, fmt.Errorf("resolve password for %s: %w", name, domain.ErrSecretNotFound)
	}

	password, err := secrets.Get(ctx, target.PasswordRef)
	if err != nil {
		return domain.Target{}, fmt.Errorf("resolve password for %s: %w", name, err)
	}
	target.Password = password

	return target, nil
}
