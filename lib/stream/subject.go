package stream

// Subject is a hot stream with an explicit Push. Every value pushed reaches
// the observers subscribed at that moment; late observers miss it.
//
// The zero value is ready to use.
type Subject[T any] struct {
	entries []*subjectEntry[T]
	done    bool
	err     error
}

type subjectEntry[T any] struct {
	obs    Observer[T]
	active bool
}

// NewSubject creates an empty Subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Push delivers v to every current observer.
func (s *Subject[T]) Push(v T) {
	if s.done {
		return
	}
	for _, e := range s.snapshot() {
		if e.active {
			e.obs.next(v)
		}
	}
}

// Error terminates the subject with err.
func (s *Subject[T]) Error(err error) {
	if s.done {
		return
	}
	s.done = true
	s.err = err
	entries := s.snapshot()
	s.entries = nil
	for _, e := range entries {
		if e.active {
			e.active = false
			e.obs.error(err)
		}
	}
}

// Complete terminates the subject normally.
func (s *Subject[T]) Complete() {
	if s.done {
		return
	}
	s.done = true
	entries := s.snapshot()
	s.entries = nil
	for _, e := range entries {
		if e.active {
			e.active = false
			e.obs.complete()
		}
	}
}

// Subscribe registers o. Subscribing to a terminated subject replays the
// terminal signal.
func (s *Subject[T]) Subscribe(o Observer[T]) Subscription {
	if s.done {
		s.terminate(o)
		return closedSubscription
	}
	return s.add(o)
}

// Observers reports how many observers are currently subscribed.
func (s *Subject[T]) Observers() int {
	return len(s.entries)
}

// Done reports whether the subject has terminated.
func (s *Subject[T]) Done() bool {
	return s.done
}

func (s *Subject[T]) add(o Observer[T]) *entrySubscription[T] {
	e := &subjectEntry[T]{obs: o, active: true}
	s.entries = append(s.entries, e)
	return &entrySubscription[T]{subject: s, entry: e}
}

func (s *Subject[T]) remove(e *subjectEntry[T]) {
	e.active = false
	for i, cur := range s.entries {
		if cur == e {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			return
		}
	}
}

func (s *Subject[T]) terminate(o Observer[T]) {
	if s.err != nil {
		o.error(s.err)
		return
	}
	o.complete()
}

// snapshot copies the entry list so observers may subscribe or unsubscribe
// while a signal is being delivered.
func (s *Subject[T]) snapshot() []*subjectEntry[T] {
	return append([]*subjectEntry[T](nil), s.entries...)
}

type entrySubscription[T any] struct {
	subject *Subject[T]
	entry   *subjectEntry[T]
}

func (s *entrySubscription[T]) Unsubscribe() {
	if !s.entry.active {
		return
	}
	s.subject.remove(s.entry)
}

func (s *entrySubscription[T]) Closed() bool {
	return !s.entry.active
}

// ReplaySubject is a Subject that records pushed values and replays them to
// late observers before forwarding live values.
type ReplaySubject[T any] struct {
	Subject[T]
	size   int
	buffer []T
}

// NewReplaySubject creates a ReplaySubject keeping the last size values.
// A size of zero or less keeps every value.
func NewReplaySubject[T any](size int) *ReplaySubject[T] {
	return &ReplaySubject[T]{size: size}
}

// Push records v and delivers it to every current observer.
func (s *ReplaySubject[T]) Push(v T) {
	if s.done {
		return
	}
	s.buffer = append(s.buffer, v)
	if s.size > 0 && len(s.buffer) > s.size {
		s.buffer = append(s.buffer[:0:0], s.buffer[len(s.buffer)-s.size:]...)
	}
	s.Subject.Push(v)
}

// Subscribe replays the buffered values to o, then the terminal signal if
// the subject has terminated.
func (s *ReplaySubject[T]) Subscribe(o Observer[T]) Subscription {
	replay := append([]T(nil), s.buffer...)
	if s.done {
		for _, v := range replay {
			o.next(v)
		}
		s.terminate(o)
		return closedSubscription
	}
	sub := s.add(o)
	for _, v := range replay {
		if !sub.entry.active {
			break
		}
		o.next(v)
	}
	return sub
}

// Values returns a copy of the replay buffer.
func (s *ReplaySubject[T]) Values() []T {
	return append([]T(nil), s.buffer...)
}

// BehaviorSubject holds a current value that every new observer receives
// immediately on subscription.
type BehaviorSubject[T any] struct {
	Subject[T]
	value T
}

// NewBehaviorSubject creates a BehaviorSubject seeded with seed.
func NewBehaviorSubject[T any](seed T) *BehaviorSubject[T] {
	return &BehaviorSubject[T]{value: seed}
}

// Push replaces the current value and delivers it.
func (s *BehaviorSubject[T]) Push(v T) {
	if s.done {
		return
	}
	s.value = v
	s.Subject.Push(v)
}

// Value returns the current value.
func (s *BehaviorSubject[T]) Value() T {
	return s.value
}

func (s *BehaviorSubject[T]) Subscribe(o Observer[T]) Subscription {
	if s.done {
		s.terminate(o)
		return closedSubscription
	}
	sub := s.add(o)
	o.next(s.value)
	return sub
}

// MakeStream returns a push function and the stream it feeds. Pushed values
// are replayed to late observers, and the stream starts with seed when one
// is given.
func MakeStream[T any](seed ...T) (push func(T), s Observable[T]) {
	subject := NewReplaySubject[T](0)
	if len(seed) > 0 {
		return subject.Push, StartWith[T](subject, seed...)
	}
	return subject.Push, subject
}
