// Package notify carries user-visible messages (toasts) from services to whichever surface is showing them.
package notify

// Notifier receives user-visible messages
type Notifier interface {
	Notify(message string)
}

// Func adapts a function to a Notifier
type Func func(message string)

// Notify calls f
func (f Func) Notify(message string) {
	if f != nil {
		f(message)
	}
}

// Discard drops every message
var Discard Notifier = Func(nil)

// Queue buffers messages for a consumer such as the TUI.
// Sends never block; when the buffer is full the message is dropped.
type Queue struct {
	ch chan string
}

// NewQueue creates a queue holding up to size pending messages
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan string, size)}
}

// Notify enqueues message without blocking
func (q *Queue) Notify(message string) {
	select {
	case q.ch <- message:
	default:
	}
}

// C returns the receive side of the queue
func (q *Queue) C() <-chan string {
	return q.ch
}

// Drain returns every pending message without waiting
func (q *Queue) Drain() []string {
	var out []string
	for {
		select {
		case m := <-q.ch:
			out = append(out, m)
		default:
			return out
		}
	}
}

// Multi fans a message out to several notifiers
type Multi []Notifier

// Notify forwards message to every notifier
func (m Multi) Notify(message string) {
	for _, n := range m {
		if n != nil {
			n.Notify(message)
		}
	}
}
