package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	messagerender "github.com/Dylan-B-D/vps-manager-bot/internal/adapters/render/message"
	bsonrepo "github.com/Dylan-B-D/vps-manager-bot/internal/adapters/repo/bson"
	tomlrepo "github.com/Dylan-B-D/vps-manager-bot/internal/adapters/repo/toml"
	chainstore "github.com/Dylan-B-D/vps-manager-bot/internal/adapters/secrets/chain"
	sshtransport "github.com/Dylan-B-D/vps-manager-bot/internal/adapters/ssh"
	"github.com/Dylan-B-D/vps-manager-bot/internal/application"
	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
	"github.com/Dylan-B-D/vps-manager-bot/internal/logging"
	"github.com/Dylan-B-D/vps-manager-bot/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	sessions       *application.SessionService
	login          *application.LoginService
	resources      *application.ResourcesService
	targets        ports.TargetRegistry
	secretStore    ports.SecretStore
	logger         *slog.Logger
	messageRender  func(domain.Message) (string, error)
	sessionsRender func([]domain.SessionRecord, messagerender.SessionsOptions) (string, error)
	targetsRender  func([]domain.Target) (string, error)
	sweepInterval  time.Duration
	now            func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(os.Stderr, cfg.GetString("log.level"), cfg.GetString("log.format"))
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	repo, err := newSessionRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	targets, err := tomlrepo.NewTargetRegistry(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire target registry: %w", err)
	}

	secretsDir := cfg.GetString("secrets.dir")
	if secretsDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		secretsDir = filepath.Join(homeDir, configDirName, "secrets")
	}
	secretStore, err := chainstore.NewPassFirstWithFileFallback(secretsDir)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	transportOpts := []sshtransport.Option{sshtransport.WithDialTimeout(cfg.GetDuration("ssh.dial_timeout"))}
	if knownHosts := cfg.GetString("ssh.known_hosts"); knownHosts != "" {
		transportOpts = append(transportOpts, sshtransport.WithKnownHosts(knownHosts))
	}
	transport, err := sshtransport.NewTransport(transportOpts...)
	if err != nil {
		return nil, fmt.Errorf("wire ssh transport: %w", err)
	}

	match, err := domain.ParseProcessMatchStrategy(strings.TrimSpace(cfg.GetString("sampler.match")))
	if err != nil {
		return nil, fmt.Errorf("wire sampler: %w", err)
	}

	clock := ports.SystemClock{}
	sessions := application.NewSessionService(repo, clock,
		application.WithTTL(cfg.GetDuration("sessions.ttl")),
		application.WithStrictTTL(cfg.GetBool("sessions.strict_ttl")),
		application.WithSessionLogger(logger),
	)
	sampler := application.NewSampler(clock,
		application.WithSampleInterval(cfg.GetDuration("sampler.interval")),
		application.WithMatchStrategy(match),
	)

	return &app{
		sessions:       sessions,
		login:          application.NewLoginService(targets, secretStore, transport, sessions, logger),
		resources:      application.NewResourcesService(targets, secretStore, transport, sessions, sampler, logger),
		targets:        targets,
		secretStore:    secretStore,
		logger:         logger,
		messageRender:  messagerender.Render,
		sessionsRender: messagerender.RenderSessions,
		targetsRender:  messagerender.RenderTargets,
		sweepInterval:  cfg.GetDuration("sweep.interval"),
		now:            clock.Now,
	}, nil
}

func newSessionRepository(cfg *viper.Viper) (ports.SessionRepository, error) {
	switch format := strings.ToLower(strings.TrimSpace(cfg.GetString("sessions.format"))); format {
	case "", "toml":
		return tomlrepo.NewSessionRepository(cfg)
	case "bson":
		return bsonrepo.NewSessionRepository(cfg)
	default:
		return nil, fmt.Errorf("unsupported sessions.format %q", format)
	}
}
