package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrNoActiveSession   = errors.New("no target is currently logged in for this channel")
	ErrTargetNotFound    = errors.New("target not found")
	ErrSecretNotFound    = errors.New("secret not found")
	ErrInvalidSecretRef  = errors.New("invalid password ref")
	ErrConnectionTimeout = errors.New("connection timed out")

	// ErrMetricsUnavailable is returned when the sampling window saw no
	// elapsed CPU ticks.
	ErrMetricsUnavailable = errors.New("metrics unavailable: no elapsed cpu ticks between snapshots")
)

// DeserializationError reports a persisted session store that exists but
// cannot be decoded.
type DeserializationError struct {
	Path string
	Err  error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("decode session store %s: %v", e.Path, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// ParseError reports remote command output that does not have the expected
// shape. Line carries the offending raw text.
type ParseError struct {
	Source string
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s output: %s: %q", e.Source, e.Reason, e.Line)
}

// CommandExecutionError reports a failed step of the sampling battery.
type CommandExecutionError struct {
	Step       string
	Command    string
	ExitStatus int
	Err        error
}

func (e *CommandExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("step %s (%s): %v", e.Step, e.Command, e.Err)
	}

	return fmt.Sprintf("step %s (%s): exit status %d", e.Step, e.Command, e.ExitStatus)
}

func (e *CommandExecutionError) Unwrap() error {
	return e.Err
}

// ConnectionError wraps a transport failure reaching a target.
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to %s: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
