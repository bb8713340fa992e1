package event

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Event is anything dispatched over the Bus, identified by a string kind.
type Event interface {
	Kind() string
}

// Listener receives events synchronously during Emit.
type Listener func(Event)

type entry struct {
	id    uint64
	fn    Listener
	owner any
	once  bool
}

// Bus is a synchronous publish/subscribe channel. Listeners for a kind
// run in registration order over a snapshot taken when Emit begins:
// subscribing or unsubscribing from inside a listener takes effect on the
// next Emit, never the current one. All access happens on the host's
// single logical thread.
type Bus struct {
	listeners map[string][]entry
	nextID    uint64
	log       *zap.Logger
}

func NewBus(log *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]entry, 16),
		log:       log,
	}
}

// On registers fn for events of the given kind and returns a handle for
// Off. owner tags the registration for bulk removal with OffOwner;
// components pass themselves so disposal can drop every subscription in
// one call.
func (b *Bus) On(kind string, owner any, fn Listener) uint64 {
	return b.register(kind, owner, fn, false)
}

// Once registers fn like On, but the registration is removed after its
// first delivery.
func (b *Bus) Once(kind string, owner any, fn Listener) uint64 {
	return b.register(kind, owner, fn, true)
}

func (b *Bus) register(kind string, owner any, fn Listener, once bool) uint64 {
	b.nextID++
	b.listeners[kind] = append(b.listeners[kind], entry{
		id:    b.nextID,
		fn:    fn,
		owner: owner,
		once:  once,
	})
	return b.nextID
}

// Off removes the registration identified by handle under kind.
func (b *Bus) Off(kind string, handle uint64) bool {
	bucket, ok := b.listeners[kind]
	if !ok {
		return false
	}
	for i, e := range bucket {
		if e.id == handle {
			// rebuild instead of shifting in place so a snapshot held by a
			// running Emit stays intact.
			next := make([]entry, 0, len(bucket)-1)
			next = append(next, bucket[:i]...)
			next = append(next, bucket[i+1:]...)
			b.listeners[kind] = next
			return true
		}
	}
	return false
}

// OffOwner removes every registration tagged with owner, across all
// kinds, and reports how many were dropped.
func (b *Bus) OffOwner(owner any) int {
	removed := 0
	for kind, bucket := range b.listeners {
		next := make([]entry, 0, len(bucket))
		for _, e := range bucket {
			if e.owner == owner {
				removed++
				continue
			}
			next = append(next, e)
		}
		if len(next) == 0 {
			delete(b.listeners, kind)
		} else {
			b.listeners[kind] = next
		}
	}
	return removed
}

// Emit synchronously delivers ev to every listener registered for its
// kind at the moment the call starts, in registration order. A panicking
// listener never blocks the remaining ones: the panic is recovered,
// logged, and joined into the returned error. Emit returns only after
// every listener ran.
func (b *Bus) Emit(ev Event) error {
	snapshot := b.listeners[ev.Kind()]
	var errs []error
	for _, e := range snapshot {
		if err := b.deliver(e, ev); err != nil {
			errs = append(errs, err)
		}
		if e.once {
			b.Off(ev.Kind(), e.id)
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) deliver(e entry, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener %d for %q panicked: %v", e.id, ev.Kind(), r)
			b.log.Error("event listener panic",
				zap.String("kind", ev.Kind()),
				zap.Uint64("listener", e.id),
				zap.Any("recovered", r))
		}
	}()
	e.fn(ev)
	return nil
}
