package hxfrp

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pthm/hxfrp/lib/stream"
)

type counterScope struct {
	Count Field[int]
}

func TestRecForwardReference(t *testing.T) {
	src := stream.NewReplaySubject[int](0)

	label := Rec(func(s *counterScope) stream.Observable[string] {
		// Read before anything feeds the field.
		label := stream.Map(s.Count.Stream(), strconv.Itoa)
		s.Count.Feed(src)
		return label
	})

	// Written before the reader subscribes; the source keeps them.
	src.Push(1)
	src.Push(2)

	got, sub := collect(label)
	defer sub.Unsubscribe()
	src.Push(3)

	if diff := cmp.Diff([]string{"1", "2", "3"}, *got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	late, lateSub := collect(label)
	defer lateSub.Unsubscribe()
	if diff := cmp.Diff([]string{"3"}, *late); diff != "" {
		t.Errorf("late subscriber mismatch (-want +got):\n%s", diff)
	}
}

func TestRecClosesCycleThroughTree(t *testing.T) {
	h := newTestHost()

	m := Rec(func(s *counterScope) M[struct{}] {
		return Mdo(func(b *Binder) struct{} {
			Bind(b, DynText(h, stream.Map(s.Count.Stream(), strconv.Itoa)))
			in := Bind(b, TextInput(h, TextInputConfig{}))
			s.Count.Feed(stream.Map(in.Change, func(v string) int { return len(v) }))
			return struct{}{}
		})
	})
	view := Mount(m.Fragments, nil)
	defer view.Unmount()

	if view.Renders() != 0 {
		t.Fatalf("Renders() = %d before the field was written, want 0", view.Renders())
	}
	h.fire(t, 1, Event{Type: EventInput, Value: "abc"})

	got := view.Nodes()
	if len(got) != 2 {
		t.Fatalf("len(Nodes()) = %d, want 2", len(got))
	}
	if got[0] != testText("3") {
		t.Errorf("Nodes()[0] = %v, want %v", got[0], testText("3"))
	}
}

func TestFieldFeedMergesSources(t *testing.T) {
	var f Field[string]
	a := stream.NewSubject[string]()
	b := stream.NewSubject[string]()
	f.Feed(a)
	f.Feed(b)

	got, sub := collect(f.Stream())
	defer sub.Unsubscribe()

	a.Push("a1")
	b.Push("b1")
	a.Complete()
	b.Push("b2")

	if diff := cmp.Diff([]string{"a1", "b1", "b2"}, *got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldConnectsWhileObserved(t *testing.T) {
	var f Field[int]
	src := stream.NewSubject[int]()
	f.Feed(src)
	if src.Observers() != 0 {
		t.Fatalf("src.Observers() = %d before any observer, want 0", src.Observers())
	}

	_, a := collect(f.Stream())
	_, b := collect(f.Stream())
	if src.Observers() != 1 {
		t.Errorf("src.Observers() = %d with two observers, want 1", src.Observers())
	}
	src.Push(1)
	src.Push(2)

	a.Unsubscribe()
	if src.Observers() != 1 {
		t.Errorf("src.Observers() = %d after first unsubscribe, want 1", src.Observers())
	}
	b.Unsubscribe()
	if src.Observers() != 0 {
		t.Errorf("src.Observers() = %d after last unsubscribe, want 0", src.Observers())
	}

	got, sub := collect(f.Stream())
	defer sub.Unsubscribe()
	src.Push(3)
	if diff := cmp.Diff([]int{2, 3}, *got); diff != "" {
		t.Errorf("values after reconnect (-want +got):\n%s", diff)
	}
}

func TestFieldFeedWhileObserved(t *testing.T) {
	var f Field[string]
	got, sub := collect(f.Stream())
	defer sub.Unsubscribe()

	src := stream.NewSubject[string]()
	f.Feed(src)
	if src.Observers() != 1 {
		t.Fatalf("src.Observers() = %d, want 1", src.Observers())
	}
	src.Push("x")
	if diff := cmp.Diff([]string{"x"}, *got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldFeedForwardsError(t *testing.T) {
	var f Field[int]
	boom := errors.New("boom")
	f.Feed(stream.Throw[int](boom))

	var gotErr error
	f.Subscribe(stream.Observer[int]{Error: func(err error) { gotErr = err }})
	if !errors.Is(gotErr, boom) {
		t.Errorf("error = %v, want %v", gotErr, boom)
	}
}

func TestFieldClose(t *testing.T) {
	var f Field[int]
	src := stream.NewSubject[int]()
	f.Feed(src)

	completed := false
	f.Subscribe(stream.Observer[int]{Complete: func() { completed = true }})
	f.Close()

	if !completed {
		t.Error("completed = false after Close, want true")
	}
	if src.Observers() != 0 {
		t.Errorf("src.Observers() = %d after Close, want 0", src.Observers())
	}
}

func TestScopeLookup(t *testing.T) {
	var s Scope
	a := Lookup[int](&s, "a")
	if Lookup[int](&s, "a") != a {
		t.Error("Lookup returned a different field for the same name")
	}

	a.Feed(stream.Of(1, 2))
	got, sub := collect(Lookup[int](&s, "a").Stream())
	defer sub.Unsubscribe()
	if diff := cmp.Diff([]int{1, 2}, *got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrFieldType) {
			t.Fatalf("recover() = %v, want %v", r, ErrFieldType)
		}
	}()
	Lookup[string](&s, "a")
}

func TestScopeClose(t *testing.T) {
	var s Scope
	completed := 0
	for _, name := range []string{"x", "y"} {
		Lookup[int](&s, name).Subscribe(stream.Observer[int]{Complete: func() { completed++ }})
	}
	s.Close()
	if completed != 2 {
		t.Errorf("completed = %d, want 2", completed)
	}
}
