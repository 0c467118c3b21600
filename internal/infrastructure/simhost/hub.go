package simhost

type subscriber[T any] struct {
	id int
	fn func(T)
}

// hub dispatches events to subscribers in registration order.
type hub[T any] struct {
	next int
	subs []subscriber[T]
}

func (h *hub[T]) add(fn func(T)) (cancel func()) {
	h.next++
	id := h.next
	h.subs = append(h.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

func (h *hub[T]) emit(v T) {
	snapshot := make([]subscriber[T], len(h.subs))
	copy(snapshot, h.subs)
	for _, s := range snapshot {
		s.fn(v)
	}
}

func (h *hub[T]) len() int {
	return len(h.subs)
}

func voidFn(fn func()) func(struct{}) {
	return func(struct{}) { fn() }
}
