package stream

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recorder collects every signal delivered to an observer.
type recorder[T any] struct {
	values    []T
	err       error
	completed bool
}

func (r *recorder[T]) observer() Observer[T] {
	return Observer[T]{
		Next:     func(v T) { r.values = append(r.values, v) },
		Error:    func(err error) { r.err = err },
		Complete: func() { r.completed = true },
	}
}

func TestOf(t *testing.T) {
	var rec recorder[int]
	sub := Of(1, 2, 3).Subscribe(rec.observer())

	if diff := cmp.Diff([]int{1, 2, 3}, rec.values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if !rec.completed {
		t.Error("completed = false, want true")
	}
	if !sub.Closed() {
		t.Error("Closed() = false after completion, want true")
	}
}

func TestNewTeardownRunsOnce(t *testing.T) {
	teardowns := 0
	src := New(func(o Observer[int]) func() {
		o.Next(1)
		return func() { teardowns++ }
	})

	sub := src.Subscribe(Observer[int]{})
	sub.Unsubscribe()
	sub.Unsubscribe()

	if teardowns != 1 {
		t.Errorf("teardowns = %d, want 1", teardowns)
	}
}

func TestNewTeardownAfterSyncCompletion(t *testing.T) {
	teardowns := 0
	src := New(func(o Observer[int]) func() {
		o.Complete()
		return func() { teardowns++ }
	})

	src.Subscribe(Observer[int]{})

	if teardowns != 1 {
		t.Errorf("teardowns = %d, want 1", teardowns)
	}
}

func TestNoSignalsAfterTermination(t *testing.T) {
	var rec recorder[int]
	New(func(o Observer[int]) func() {
		o.Next(1)
		o.Complete()
		o.Next(2)
		o.Error(errors.New("late"))
		return nil
	}).Subscribe(rec.observer())

	if diff := cmp.Diff([]int{1}, rec.values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if rec.err != nil {
		t.Errorf("err = %v, want nil", rec.err)
	}
}

func TestThrow(t *testing.T) {
	boom := errors.New("boom")
	var rec recorder[string]
	Throw[string](boom).Subscribe(rec.observer())

	if !errors.Is(rec.err, boom) {
		t.Errorf("err = %v, want %v", rec.err, boom)
	}
}

func TestNeverAndEmpty(t *testing.T) {
	var never recorder[int]
	Never[int]().Subscribe(never.observer())
	if never.completed || len(never.values) != 0 {
		t.Error("Never emitted or completed")
	}

	var empty recorder[int]
	Empty[int]().Subscribe(empty.observer())
	if !empty.completed || len(empty.values) != 0 {
		t.Errorf("Empty: completed = %v, values = %v", empty.completed, empty.values)
	}
}

func TestMapFilterScan(t *testing.T) {
	src := Of(1, 2, 3, 4)
	evens := Filter(src, func(n int) bool { return n%2 == 0 })
	labels := Map(evens, func(n int) string { return string(rune('a' + n)) })

	var rec recorder[string]
	labels.Subscribe(rec.observer())
	if diff := cmp.Diff([]string{"c", "e"}, rec.values); diff != "" {
		t.Errorf("Map/Filter mismatch (-want +got):\n%s", diff)
	}

	var sums recorder[int]
	Scan(src, 10, func(acc, n int) int { return acc + n }).Subscribe(sums.observer())
	if diff := cmp.Diff([]int{11, 13, 16, 20}, sums.values); diff != "" {
		t.Errorf("Scan mismatch (-want +got):\n%s", diff)
	}
}

func TestScanStateIsPerSubscription(t *testing.T) {
	counter := Scan(Of(1, 1), 0, func(acc, n int) int { return acc + n })

	var first, second recorder[int]
	counter.Subscribe(first.observer())
	counter.Subscribe(second.observer())

	if diff := cmp.Diff(first.values, second.values); diff != "" {
		t.Errorf("subscriptions shared Scan state (-first +second):\n%s", diff)
	}
}

func TestStartWith(t *testing.T) {
	s := NewSubject[string]()
	var rec recorder[string]
	StartWith[string](s, "seed").Subscribe(rec.observer())
	s.Push("next")

	if diff := cmp.Diff([]string{"seed", "next"}, rec.values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestMapTo(t *testing.T) {
	var rec recorder[string]
	MapTo(Of(1, 2), "x").Subscribe(rec.observer())

	if diff := cmp.Diff([]string{"x", "x"}, rec.values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge(t *testing.T) {
	a := NewSubject[int]()
	b := NewSubject[int]()
	var rec recorder[int]
	Merge[int](a, b).Subscribe(rec.observer())

	a.Push(1)
	b.Push(2)
	a.Push(3)
	a.Complete()
	if rec.completed {
		t.Fatal("completed before every source completed")
	}
	b.Complete()

	if diff := cmp.Diff([]int{1, 2, 3}, rec.values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if !rec.completed {
		t.Error("completed = false, want true")
	}
}

func TestMergeErrorUnsubscribesOthers(t *testing.T) {
	a := NewSubject[int]()
	b := NewSubject[int]()
	var rec recorder[int]
	Merge[int](a, b).Subscribe(rec.observer())

	boom := errors.New("boom")
	a.Error(boom)

	if !errors.Is(rec.err, boom) {
		t.Errorf("err = %v, want %v", rec.err, boom)
	}
	if b.Observers() != 0 {
		t.Errorf("b.Observers() = %d, want 0", b.Observers())
	}
}

func TestDefer(t *testing.T) {
	calls := 0
	src := Defer(func() Observable[int] {
		calls++
		return Of(calls)
	})

	var first, second recorder[int]
	src.Subscribe(first.observer())
	src.Subscribe(second.observer())

	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if diff := cmp.Diff([]int{2}, second.values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}
