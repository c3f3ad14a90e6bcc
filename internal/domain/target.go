package domain

import (
	"fmt"
	"net"
	"path"
	"strconv"
	"strings"
)

const DefaultSSHPort = 22

// Target is a configured remote host a conversation can log in to.
type Target struct {
	Name     string
	Host     string
	Port     int
	Username string
	Password string
	// PasswordRef names a secret-store entry used when Password is empty.
	PasswordRef string
}

func (t Target) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(t.Host) == "" {
		return fmt.Errorf("target %q: host is required", t.Name)
	}
	if strings.TrimSpace(t.Username) == "" {
		return fmt.Errorf("target %q: username is required", t.Name)
	}
	if t.Port < 0 || t.Port > 65535 {
		return fmt.Errorf("target %q: invalid port %d", t.Name, t.Port)
	}
	if t.PasswordRef != "" {
		if err := ValidatePasswordRef(t.PasswordRef); err != nil {
			return fmt.Errorf("target %q: %w", t.Name, err)
		}
	}

	return nil
}

func (t Target) Address() string {
	port := t.Port
	if port == 0 {
		port = DefaultSSHPort
	}

	return net.JoinHostPort(t.Host, strconv.Itoa(port))
}

// ValidatePasswordRef checks that ref names an entry inside a secret store:
// a non-empty slash-separated relative path that stays below the store root.
func ValidatePasswordRef(ref string) error {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSecretRef)
	}
	if trimmed != ref {
		return fmt.Errorf("%w %q: surrounding whitespace", ErrInvalidSecretRef, ref)
	}

	cleaned := path.Clean(strings.ReplaceAll(ref, "\\", "/"))
	if path.IsAbs(cleaned) || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("%w %q: must stay inside the store", ErrInvalidSecretRef, ref)
	}

	return nil
}
