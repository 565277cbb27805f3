package panel

import "github.com/gdamore/tcell/v2"

// UpdateFunc is the shape of before-update, after-update and after-resize
// callbacks. The frame grants grid access without re-acquiring the panel
// lock the dispatcher already holds.
type UpdateFunc func(*Frame)

// KeyFunc receives the captured key press alongside the frame.
type KeyFunc func(*Frame, *tcell.EventKey)

type handler[T any] struct {
	id int
	fn T
}

// handlerList is an ordered multicast registry. It is mutated only while
// holding the panel lock, so a firing callback never observes a
// half-applied mutation.
type handlerList[T any] struct {
	nextID   int
	handlers []handler[T]
}

func (l *handlerList[T]) add(fn T) int {
	l.nextID++
	l.handlers = append(l.handlers, handler[T]{id: l.nextID, fn: fn})
	return l.nextID
}

func (l *handlerList[T]) remove(id int) bool {
	for i, h := range l.handlers {
		if h.id == id {
			l.handlers = append(l.handlers[:i], l.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// snapshot returns the registered functions in registration order. Dispatch
// iterates the snapshot so a callback may register or remove handlers for
// the next cycle without disturbing the current one.
func (l *handlerList[T]) snapshot() []T {
	if len(l.handlers) == 0 {
		return nil
	}
	fns := make([]T, len(l.handlers))
	for i, h := range l.handlers {
		fns[i] = h.fn
	}
	return fns
}
