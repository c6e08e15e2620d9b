package service

import (
	"errors"
	"fmt"
)

// Leaf components return the most specific error; the orchestrator wraps it
// with the failed stage name and, for missing entities, the call-site alias.
// All of these are recoverable by the caller — none is fatal to the process.
var (
	ErrValueOutOfRange   = errors.New("value out of range")
	ErrEmptyQuestion     = errors.New("question cannot be empty")
	ErrAgentNotFound     = errors.New("agent not found")
	ErrAlreadyRegistered = errors.New("agent already registered")
	ErrInsufficientStake = errors.New("insufficient stake")
	ErrBeliefNotFound    = errors.New("belief not found")
)

// Orchestrator aliases. They wrap the underlying not-found errors so
// errors.Is matches either form.
var (
	ErrUnknownAgent  = fmt.Errorf("unknown agent: %w", ErrAgentNotFound)
	ErrUnknownBelief = fmt.Errorf("unknown belief: %w", ErrBeliefNotFound)
)
