package hxfrp

import (
	"testing"

	"github.com/a-h/templ"
	"github.com/pthm/hxfrp/lib/stream"
)

// testElem, testText and testFragment are the nodes built by testHost. They
// compare structurally with cmp.
type testElem struct {
	Tag      string
	Attrs    templ.Attributes
	Children []Node
}

type testText string

type testFragment struct {
	current func() []Node
}

// testHost is an in-memory Host. Handlers are numbered from 1 in
// registration order, and wired elements carry the number as their "on"
// attribute.
type testHost struct {
	handlers map[int]func(Event)
	events   map[int][]string
	nextID   int
}

func newTestHost() *testHost {
	return &testHost{
		handlers: make(map[int]func(Event)),
		events:   make(map[int][]string),
	}
}

func (h *testHost) Element(tag string, attrs templ.Attributes, children []Node) Node {
	return testElem{Tag: tag, Attrs: attrs, Children: children}
}

func (h *testHost) Text(s string) Node {
	return testText(s)
}

func (h *testHost) Fragment(current func() []Node) Node {
	return testFragment{current: current}
}

func (h *testHost) On(events []string, fn func(Event)) (templ.Attributes, func()) {
	h.nextID++
	id := h.nextID
	h.handlers[id] = fn
	h.events[id] = events
	return templ.Attributes{"on": id}, func() { delete(h.handlers, id) }
}

func (h *testHost) fire(t *testing.T, id int, ev Event) {
	t.Helper()
	fn, ok := h.handlers[id]
	if !ok {
		t.Fatalf("no handler registered under %d", id)
	}
	fn(ev)
}

func texts(ss ...string) []Node {
	out := make([]Node, len(ss))
	for i, s := range ss {
		out[i] = testText(s)
	}
	return out
}

// nodes is an M that renders whatever src pushes.
func nodes(src stream.Observable[[]Node]) M[struct{}] {
	return M[struct{}]{Fragments: src}
}

// collect subscribes to src and records every value.
func collect[T any](src stream.Observable[T]) (*[]T, stream.Subscription) {
	var got []T
	sub := src.Subscribe(stream.OnNext(func(v T) { got = append(got, v) }))
	return &got, sub
}
