// Package observable provides a small publish/subscribe value holder.
//
// A Value keeps the current state of something the UI reacts to (the
// logged-in user, a sensor's running state) and notifies registered
// listeners whenever that state changes. Listeners are called
// synchronously, in registration order, outside the internal lock, so a
// listener may read or even set the value again.
package observable

import "sync"

// Listener receives the new value after each change.
type Listener[T any] func(T)

// Value is a mutable, observable value. The zero Value holds the zero T
// and is ready to use.
type Value[T comparable] struct {
	mu        sync.Mutex
	current   T
	nextID    int
	listeners map[int]Listener[T]
	order     []int
}

// New returns a Value holding initial.
func New[T comparable](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set stores x and notifies listeners if it differs from the current value.
// It reports whether a change happened.
func (v *Value[T]) Set(x T) bool {
	v.mu.Lock()
	if v.current == x {
		v.mu.Unlock()
		return false
	}
	v.current = x
	ls := v.snapshot()
	v.mu.Unlock()

	for _, l := range ls {
		l(x)
	}
	return true
}

// Reset sets the zero value of T.
func (v *Value[T]) Reset() bool {
	var zero T
	return v.Set(zero)
}

// Subscribe registers fn and immediately calls it with the current value.
// The returned function removes the listener; calling it twice is harmless.
func (v *Value[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	v.mu.Lock()
	if v.listeners == nil {
		v.listeners = make(map[int]Listener[T])
	}
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	v.order = append(v.order, id)
	current := v.current
	v.mu.Unlock()

	fn(current)

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if _, ok := v.listeners[id]; !ok {
			return
		}
		delete(v.listeners, id)
		for i, x := range v.order {
			if x == id {
				v.order = append(v.order[:i:i], v.order[i+1:]...)
				break
			}
		}
	}
}

func (v *Value[T]) snapshot() []Listener[T] {
	ls := make([]Listener[T], 0, len(v.order))
	for _, id := range v.order {
		ls = append(ls, v.listeners[id])
	}
	return ls
}
