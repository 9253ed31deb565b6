package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventActivationStart EventType = "activation_start"
	EventActivationEnd   EventType = "activation_end"
	EventRename          EventType = "rename"
	EventAction          EventType = "action"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ActivationEvent is emitted around an environment activation.
type ActivationEvent struct {
	EventBase
	Environment string        `json:"environment"`
	Report      *RenameReport `json:"report,omitempty"`
	Err         error         `json:"-"`
}

// RenameEvent is emitted after each rename operation.
type RenameEvent struct {
	EventBase
	Environment string       `json:"environment"`
	Result      RenameResult `json:"result"`
}

// ActionEvent is emitted after each generator action.
type ActionEvent struct {
	EventBase
	Result ActionResult `json:"result"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnActivationStart func(context.Context, *ActivationEvent)
	OnActivationEnd   func(context.Context, *ActivationEvent)
	OnRename          func(context.Context, *RenameEvent)
	OnAction          func(context.Context, *ActionEvent)
}

// Merge returns hooks that call h first and then other, for every callback.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnActivationStart: chain(h.OnActivationStart, other.OnActivationStart),
		OnActivationEnd:   chain(h.OnActivationEnd, other.OnActivationEnd),
		OnRename:          chain(h.OnRename, other.OnRename),
		OnAction:          chain(h.OnAction, other.OnAction),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
