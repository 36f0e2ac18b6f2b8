package event

import (
	"reflect"
	"sort"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted during step N are
// dispatched at the start of step N+1, after SwapBuffers.
type Bus struct {
	mu     sync.Mutex // only protects handler registration
	topics map[reflect.Type]*topic
	order  []*topic // first-emit order, keeps dispatch deterministic
}

// topic holds both buffers and the handlers for one event type.
type topic struct {
	name     string
	front    []any
	back     []any
	handlers []func(any)
	emitted  bool
}

func NewBus() *Bus {
	return &Bus{topics: make(map[reflect.Type]*topic)}
}

func topicFor[T any](b *Bus) *topic {
	t := reflect.TypeOf((*T)(nil)).Elem()
	tp, ok := b.topics[t]
	if !ok {
		tp = &topic{name: t.String()}
		b.topics[t] = tp
	}
	return tp
}

// Emit queues an event into the back buffer (delivered next step).
// A nil bus drops the event.
func Emit[T any](b *Bus, event T) {
	if b == nil {
		return
	}
	tp := topicFor[T](b)
	if !tp.emitted {
		tp.emitted = true
		b.order = append(b.order, tp)
	}
	tp.back = append(tp.back, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	tp := topicFor[T](b)
	tp.handlers = append(tp.handlers, func(ev any) { fn(ev.(T)) })
}

// SwapBuffers rotates back→front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	for _, tp := range b.order {
		tp.front, tp.back = tp.back, tp.front[:0]
	}
}

// Pending counts events waiting in the back buffer.
func (b *Bus) Pending() int {
	n := 0
	for _, tp := range b.order {
		n += len(tp.back)
	}
	return n
}

// DispatchAll delivers all front-buffer events to their handlers, event types
// in the order they were first emitted, events of one type in emit order.
func (b *Bus) DispatchAll() {
	for _, tp := range b.order {
		for _, ev := range tp.front {
			for _, h := range tp.handlers {
				h(ev)
			}
		}
	}
}

// Types lists the event types emitted so far, sorted by name.
func (b *Bus) Types() []string {
	names := make([]string, 0, len(b.order))
	for _, tp := range b.order {
		names = append(names, tp.name)
	}
	sort.Strings(names)
	return names
}
