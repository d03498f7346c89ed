package events

import "github.com/shuldan/voyage/pkg/errors"

var newEventCode = errors.WithPrefix("EVENTS")

var (
	ErrInvalidListener          = newEventCode().New("listener must be func(context.Context, T) error or have a Handle method of that shape")
	ErrInvalidListenerSignature = newEventCode().New("listener has signature {{.signature}}, want func(context.Context, T) error")
	ErrInvalidEventType         = newEventCode().New("invalid event type: {{.reason}}")
	ErrBusClosed                = newEventCode().New("cannot subscribe: event bus is closed")
	ErrPublishOnClosedBus       = newEventCode().New("cannot publish: event bus is closed")
	ErrEventChannelBlocked      = newEventCode().New("event queue is full")
	ErrListenerPanic            = newEventCode().New("listener {{.listener}} for {{.event}} panicked")
)
