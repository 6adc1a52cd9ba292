package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoQuestions means the question bank produced zero usable entries.
	ErrNoQuestions = errors.New("no questions found in question bank")

	// ErrMissingCredential means publishing was requested without an API key.
	ErrMissingCredential = errors.New("missing MOLTBOOK_API_KEY in environment")

	// ErrNotConfirmed means --post was given without --confirm.
	ErrNotConfirmed = errors.New("refusing to post without --confirm")

	// ErrNotClaimed means the platform reports the agent as unclaimed.
	ErrNotClaimed = errors.New("agent is not claimed")
)

// ConfigurationError is a fatal pre-network setup problem.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// ValidationError aggregates every bad question found in one pass, so a
// single run surfaces all of them.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question validation failed:\n- %s", strings.Join(e.Problems, "\n- "))
}

// TransportError wraps a failed platform call. Any transport failure aborts
// the remainder of the run; there are no retries.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("moltbook %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StateCorruptionError means the persisted state could not be read. It is
// fatal; the operator must fix or delete the state resource.
type StateCorruptionError struct {
	Path string
	Err  error
}

func (e *StateCorruptionError) Error() string {
	return fmt.Sprintf("state file %s is unreadable: %v", e.Path, e.Err)
}

func (e *StateCorruptionError) Unwrap() error { return e.Err }
