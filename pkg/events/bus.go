package events

import (
	"cmp"
	"context"
	"fmt"
	"reflect"
	"runtime"
	"runtime/debug"
	"slices"
	"sync"
	"time"

	"github.com/shuldan/voyage/pkg/contracts"
)

var _ contracts.Bus = (*Bus)(nil)

var (
	errorType   = reflect.TypeFor[error]()
	contextType = reflect.TypeFor[context.Context]()
)

type listener struct {
	name   string
	accept reflect.Type
	seq    uint64
	call   func(context.Context, any) error
}

// newListener accepts a func(context.Context, T) error or a value whose
// Handle method has that shape.
func newListener(fn any) (*listener, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() {
		return nil, ErrInvalidListener
	}

	var name string
	if v.Kind() == reflect.Func {
		if v.IsNil() {
			return nil, ErrInvalidListener
		}
		name = runtime.FuncForPC(v.Pointer()).Name()
	} else {
		handle := v.MethodByName("Handle")
		if !handle.IsValid() {
			return nil, ErrInvalidListener
		}
		name = v.Type().String()
		v = handle
	}

	t := v.Type()
	if t.NumIn() != 2 || t.NumOut() != 1 || !t.In(0).Implements(contextType) || t.Out(0) != errorType {
		return nil, ErrInvalidListenerSignature.WithDetail("signature", t.String())
	}

	return &listener{
		name:   name,
		accept: t.In(1),
		call: func(ctx context.Context, event any) error {
			out := v.Call([]reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(event)})
			err, _ := out[0].Interface().(error)
			return err
		},
	}, nil
}

type delivery struct {
	ctx       context.Context
	event     any
	listeners []*listener
}

// Bus dispatches events to listeners keyed by the event's struct type.
// Listeners subscribed to an interface receive every event implementing it.
// In the default synchronous mode listeners run in subscription order and
// the first failure stops dispatch and is returned to the publisher.
// Listeners run without the bus lock held, so they may subscribe or
// publish; a listener added during dispatch sees the next event.
type Bus struct {
	mu        sync.RWMutex
	byType    map[reflect.Type][]*listener
	byIface   []*listener
	seq       uint64
	closed    bool
	queue     chan delivery
	done      chan struct{}
	sending   sync.WaitGroup
	workers   sync.WaitGroup
	onPanic   PanicHandler
	onError   ErrorHandler
	queueWait time.Duration
}

func New(opts ...Option) *Bus {
	o := &options{workers: 0, sendTimeout: 5 * time.Second}
	for _, opt := range opts {
		opt(o)
	}

	b := &Bus{
		byType:    make(map[reflect.Type][]*listener),
		done:      make(chan struct{}),
		onPanic:   o.panicHandler,
		onError:   o.errorHandler,
		queueWait: o.sendTimeout,
	}
	if b.onPanic == nil {
		b.onPanic = NewDefaultPanicHandler(nil)
	}
	if b.onError == nil {
		b.onError = NewDefaultErrorHandler(nil)
	}

	if o.workers > 0 {
		b.queue = make(chan delivery, o.workers*10)
		for range o.workers {
			b.workers.Add(1)
			go b.work()
		}
	}
	return b
}

// Subscribe registers fn for the type eventType points to, e.g.
// Subscribe((*Booting)(nil), fn) or Subscribe((*Phase)(nil), fn).
func (b *Bus) Subscribe(eventType any, fn any) error {
	target, err := subscriptionType(eventType)
	if err != nil {
		return err
	}

	l, err := newListener(fn)
	if err != nil {
		return err
	}
	if l.accept != target {
		return ErrInvalidListener.
			WithDetail("expected_type", target.String()).
			WithDetail("actual_type", l.accept.String())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBusClosed
	}

	b.seq++
	l.seq = b.seq
	if target.Kind() == reflect.Interface {
		b.byIface = append(b.byIface, l)
	} else {
		b.byType[target] = append(b.byType[target], l)
	}
	return nil
}

func subscriptionType(eventType any) (reflect.Type, error) {
	t := reflect.TypeOf(eventType)
	if t == nil {
		return nil, ErrInvalidEventType.WithDetail("reason", "eventType is nil")
	}
	if t.Kind() != reflect.Pointer {
		return nil, ErrInvalidEventType.WithDetail("reason", "eventType must be a pointer")
	}
	switch t.Elem().Kind() {
	case reflect.Struct, reflect.Interface:
		return t.Elem(), nil
	default:
		return nil, ErrInvalidEventType.WithDetail("reason", "eventType must point to a struct or an interface")
	}
}

func (b *Bus) Publish(ctx context.Context, event any) error {
	if event == nil {
		return nil
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrPublishOnClosedBus
	}
	targets := b.listenersFor(reflect.TypeOf(event))
	if len(targets) > 0 && b.queue != nil {
		b.sending.Add(1)
	}
	b.mu.RUnlock()

	if len(targets) == 0 {
		return nil
	}
	if b.queue == nil {
		return b.dispatch(ctx, event, targets)
	}
	return b.enqueue(ctx, delivery{ctx: ctx, event: event, listeners: targets})
}

// enqueue hands d to the workers. Close keeps the queue open until every
// enqueue counted in b.sending has returned.
func (b *Bus) enqueue(ctx context.Context, d delivery) error {
	defer b.sending.Done()

	timer := time.NewTimer(b.queueWait)
	defer timer.Stop()

	select {
	case b.queue <- d:
		return nil
	case <-b.done:
		return ErrPublishOnClosedBus
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrEventChannelBlocked
	}
}

// listenersFor must be called with b.mu held.
func (b *Bus) listenersFor(t reflect.Type) []*listener {
	exact := b.byType[t]

	var result []*listener
	for _, l := range b.byIface {
		if t.Implements(l.accept) {
			result = append(result, l)
		}
	}
	if len(result) == 0 {
		return slices.Clone(exact)
	}

	result = append(result, exact...)
	slices.SortFunc(result, func(x, y *listener) int { return cmp.Compare(x.seq, y.seq) })
	return result
}

// Close stops accepting events and waits for queued ones to finish.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)
	b.mu.Unlock()

	if b.queue != nil {
		b.sending.Wait()
		close(b.queue)
	}
	b.workers.Wait()
	return nil
}

func (b *Bus) work() {
	defer b.workers.Done()
	for d := range b.queue {
		_ = b.dispatch(d.ctx, d.event, d.listeners)
	}
}

func (b *Bus) dispatch(ctx context.Context, event any, targets []*listener) error {
	for _, l := range targets {
		if err := b.deliver(ctx, event, l); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bus) deliver(ctx context.Context, event any, l *listener) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.onPanic.Handle(event, l.name, r, debug.Stack())
			err = ErrListenerPanic.
				WithDetail("event", reflect.TypeOf(event).String()).
				WithDetail("listener", l.name).
				WithCause(fmt.Errorf("%v", r))
		}
	}()

	if err = l.call(ctx, event); err != nil {
		b.onError.Handle(event, l.name, err)
	}
	return err
}

// On subscribes a typed listener for events of type T. T may be an
// interface such as Phase.
func On[T any](bus contracts.Bus, fn func(ctx context.Context, event T) error) error {
	return bus.Subscribe((*T)(nil), fn)
}
