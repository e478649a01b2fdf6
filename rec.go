package hxfrp

import (
	"fmt"

	"github.com/pthm/hxfrp/lib/stream"
)

// Field is one forward-writable stream of a recursive scope. The zero value
// is ready to use: the backing channel is created on first read or write.
//
// Reading a field before anything feeds it is legal and yields a stream that
// has not emitted yet. Feed records a source whose values are forwarded into
// the field; feeding several sources merges them. Sources are subscribed
// while the field has observers: the first observer connects every source,
// a source fed later connects at once, and the last observer leaving
// disconnects them. The latest value is replayed to observers that join
// later, across disconnects.
//
// A field nobody feeds, or whose sources never emit, never emits either.
// Nothing reports this; dependents simply wait.
type Field[T any] struct {
	ch      *stream.ReplaySubject[T]
	sources []stream.Observable[T]
	feeds   []stream.Subscription
	refs    int
	closed  bool
}

func (f *Field[T]) channel() *stream.ReplaySubject[T] {
	if f.ch == nil {
		f.ch = stream.NewReplaySubject[T](1)
	}
	return f.ch
}

// Subscribe implements stream.Observable.
func (f *Field[T]) Subscribe(o stream.Observer[T]) stream.Subscription {
	inner := f.channel().Subscribe(o)
	if inner.Closed() {
		return inner
	}
	f.refs++
	if f.refs == 1 {
		for _, src := range f.sources {
			f.connect(src)
		}
	}
	return &fieldSubscription[T]{field: f, inner: inner}
}

// Stream returns f as an Observable.
func (f *Field[T]) Stream() stream.Observable[T] {
	return f
}

// Feed forwards every value src emits into f. An error from src terminates
// f; completion of src does not, since other feeds may still be writing.
func (f *Field[T]) Feed(src stream.Observable[T]) {
	if f.closed {
		return
	}
	f.sources = append(f.sources, src)
	if f.refs > 0 {
		f.connect(src)
	}
}

func (f *Field[T]) connect(src stream.Observable[T]) {
	ch := f.channel()
	f.feeds = append(f.feeds, src.Subscribe(stream.Observer[T]{
		Next:  ch.Push,
		Error: ch.Error,
	}))
}

func (f *Field[T]) disconnect() {
	feeds := f.feeds
	f.feeds = nil
	for _, sub := range feeds {
		sub.Unsubscribe()
	}
}

// Close cancels every feed and completes f.
func (f *Field[T]) Close() {
	f.closed = true
	f.sources = nil
	f.disconnect()
	f.channel().Complete()
}

type fieldSubscription[T any] struct {
	field  *Field[T]
	inner  stream.Subscription
	closed bool
}

func (s *fieldSubscription[T]) Unsubscribe() {
	if s.closed {
		return
	}
	s.closed = true
	s.inner.Unsubscribe()
	s.field.refs--
	if s.field.refs == 0 {
		s.field.disconnect()
	}
}

func (s *fieldSubscription[T]) Closed() bool {
	return s.closed || s.inner.Closed()
}

// Rec allocates a zero S and hands it to handler, returning the handler's
// result unchanged. S is normally a struct of Fields, one per stream that
// has to be referenced before it can be defined:
//
//	type inputScope struct {
//	    HasFocus hxfrp.Field[bool]
//	}
//
//	m := hxfrp.Rec(func(s *inputScope) hxfrp.M[hxfrp.TextInputOutputs] {
//	    in := hxfrp.TextInput(h, hxfrp.TextInputConfig{
//	        Attributes: placeholderWhile(s.HasFocus.Stream()),
//	    })
//	    s.HasFocus.Feed(in.Value.HasFocus)
//	    return in
//	})
//
// The cycle is only closed when values flow, never at construction time.
// Use *Scope as S for fields named at run time.
func Rec[S, R any](handler func(s *S) R) R {
	var scope S
	return handler(&scope)
}

// Scope is a recursive scope keyed by field name.
type Scope struct {
	fields map[string]any
}

// Lookup returns the field called name, creating it on first use. It panics
// with ErrFieldType if name was first used with a different element type.
func Lookup[T any](s *Scope, name string) *Field[T] {
	if s.fields == nil {
		s.fields = make(map[string]any)
	}
	if existing, ok := s.fields[name]; ok {
		f, ok := existing.(*Field[T])
		if !ok {
			panic(fmt.Errorf("%w: %q is %T", ErrFieldType, name, existing))
		}
		return f
	}
	f := &Field[T]{}
	s.fields[name] = f
	return f
}

// Close closes every field created through s.
func (s *Scope) Close() {
	for _, f := range s.fields {
		if c, ok := f.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
