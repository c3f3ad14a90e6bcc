package toml

import "fmt"

const (
	currentSessionsSchemaVersion = 1
	currentTargetsSchemaVersion  = 1
)

type sessionsFileSchema struct {
	Version  int                      `toml:"version"`
	Sessions map[string]sessionSchema `toml:"sessions"`
}

func (s *sessionsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSessionsSchemaVersion
	}
	if s.Sessions == nil {
		s.Sessions = map[string]sessionSchema{}
	}
}

func (s sessionsFileSchema) validateVersion() error {
	if s.Version > currentSessionsSchemaVersion {
		return fmt.Errorf("unsupported sessions schema version %d (current %d)", s.Version, currentSessionsSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	TargetName string `toml:"target_name"`
	CreatedAt  string `toml:"created_at"`
}

type targetsFileSchema struct {
	Version int            `toml:"version"`
	Targets []targetSchema `toml:"targets"`
}

func (s targetsFileSchema) validateVersion() error {
	if s.Version > currentTargetsSchemaVersion {
		return fmt.Errorf("unsupported targets schema version %d (current %d)", s.Version, currentTargetsSchemaVersion)
	}

	return nil
}

type targetSchema struct {
	Name        string `toml:"name"`
	Host        string `toml:"host"`
	Port        int    `toml:"port,omitempty"`
	Username    string `toml:"username"`
	Password    string `toml:"password,omitempty"`
	PasswordRef string `toml:"password_ref,omitempty"`
}
