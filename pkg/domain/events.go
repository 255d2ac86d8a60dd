package domain

import (
	"context"
	"time"
)

// Operation names used in events and errors.
const (
	OpSave = "save"
	OpLoad = "load"
)

// PersistEvent describes one completed save or load, successful or not.
type PersistEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Op        string        `json:"op"`
	Path      string        `json:"path"`
	Objects   int           `json:"objects"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// PersistHooks defines callbacks for persistence observability.
type PersistHooks struct {
	OnSave func(context.Context, *PersistEvent)
	OnLoad func(context.Context, *PersistEvent)
}
