package events

import (
	"fmt"
	"time"

	"github.com/shuldan/voyage/pkg/contracts"
)

type PanicHandler interface {
	Handle(event any, listener string, panicValue any, stack []byte)
}

type ErrorHandler interface {
	Handle(event any, listener string, err error)
}

type Option func(*options)

type options struct {
	panicHandler PanicHandler
	errorHandler ErrorHandler
	workers      int
	sendTimeout  time.Duration
}

func WithPanicHandler(h PanicHandler) Option {
	return func(o *options) {
		o.panicHandler = h
	}
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) {
		o.errorHandler = h
	}
}

// WithWorkers dispatches events on n background workers. Publish then only
// reports queueing failures; listener errors go to the ErrorHandler.
// Zero keeps dispatch synchronous.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = max(n, 0)
	}
}

// WithSendTimeout bounds how long Publish waits for room in the worker
// queue.
func WithSendTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.sendTimeout = d
		}
	}
}

// NewDefaultPanicHandler logs listener panics at critical level. A nil
// logger discards them.
func NewDefaultPanicHandler(logger contracts.Logger) PanicHandler {
	return panicLogHandler{logger: logger}
}

// NewDefaultErrorHandler logs listener errors. A nil logger discards them.
func NewDefaultErrorHandler(logger contracts.Logger) ErrorHandler {
	return errorLogHandler{logger: logger}
}

type panicLogHandler struct {
	logger contracts.Logger
}

func (h panicLogHandler) Handle(event any, listener string, panicValue any, stack []byte) {
	if h.logger == nil {
		return
	}
	h.logger.Critical("event listener panicked",
		"event", eventName(event), "listener", listener,
		"panic", panicValue, "stack", string(stack))
}

type errorLogHandler struct {
	logger contracts.Logger
}

func (h errorLogHandler) Handle(event any, listener string, err error) {
	if h.logger == nil {
		return
	}
	h.logger.Error("event listener failed", "event", eventName(event), "listener", listener, "error", err)
}

func eventName(event any) string {
	if p, ok := event.(Phase); ok {
		return p.Name()
	}
	return fmt.Sprintf("%T", event)
}
