package notify

import "testing"

func TestQueueDropsWhenFull(t *testing.T) {
	q := NewQueue(2)
	q.Notify("one")
	q.Notify("two")
	q.Notify("three")

	got := q.Drain()
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("Drain = %v", got)
	}
	if len(q.Drain()) != 0 {
		t.Error("queue should be empty after drain")
	}
}

func TestMultiAndFunc(t *testing.T) {
	var seen []string
	q := NewQueue(4)
	m := Multi{q, Func(func(s string) { seen = append(seen, s) }), nil, Discard}

	m.Notify("hello")

	if len(seen) != 1 || seen[0] != "hello" {
		t.Errorf("func notifier saw %v", seen)
	}
	select {
	case msg := <-q.C():
		if msg != "hello" {
			t.Errorf("queue got %q", msg)
		}
	default:
		t.Error("queue should hold the message")
	}
}
