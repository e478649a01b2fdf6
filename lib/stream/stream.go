package stream

// Observer receives the signals of a stream. Nil callbacks are ignored.
type Observer[T any] struct {
	Next     func(T)
	Error    func(error)
	Complete func()
}

// OnNext returns an Observer that only handles values.
func OnNext[T any](fn func(T)) Observer[T] {
	return Observer[T]{Next: fn}
}

func (o Observer[T]) next(v T) {
	if o.Next != nil {
		o.Next(v)
	}
}

func (o Observer[T]) error(err error) {
	if o.Error != nil {
		o.Error(err)
	}
}

func (o Observer[T]) complete() {
	if o.Complete != nil {
		o.Complete()
	}
}

// Observable is a stream of values of type T.
type Observable[T any] interface {
	Subscribe(o Observer[T]) Subscription
}

// Subscription is the handle returned by Subscribe. Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
	Closed() bool
}

// Func adapts a subscribe function to Observable.
type Func[T any] func(o Observer[T]) Subscription

// Subscribe calls f(o).
func (f Func[T]) Subscribe(o Observer[T]) Subscription {
	return f(o)
}

// New creates a cold Observable. produce runs once per subscription with an
// observer that drops every signal after termination or unsubscription, and
// returns an optional teardown that runs exactly once when the subscription
// ends for any reason.
func New[T any](produce func(o Observer[T]) func()) Observable[T] {
	return Func[T](func(o Observer[T]) Subscription {
		s := &subscriber[T]{dst: o}
		teardown := produce(Observer[T]{Next: s.onNext, Error: s.onError, Complete: s.onComplete})
		if s.closed {
			if teardown != nil {
				teardown()
			}
		} else {
			s.teardown = teardown
		}
		return s
	})
}

// Defer creates a fresh source for each subscription.
func Defer[T any](factory func() Observable[T]) Observable[T] {
	return Func[T](func(o Observer[T]) Subscription {
		return factory().Subscribe(o)
	})
}

// subscriber guards a downstream observer for one subscription.
type subscriber[T any] struct {
	dst      Observer[T]
	closed   bool
	teardown func()
}

func (s *subscriber[T]) onNext(v T) {
	if s.closed {
		return
	}
	s.dst.next(v)
}

func (s *subscriber[T]) onError(err error) {
	if s.closed {
		return
	}
	s.closed = true
	s.dst.error(err)
	s.runTeardown()
}

func (s *subscriber[T]) onComplete() {
	if s.closed {
		return
	}
	s.closed = true
	s.dst.complete()
	s.runTeardown()
}

func (s *subscriber[T]) Unsubscribe() {
	if s.closed {
		return
	}
	s.closed = true
	s.runTeardown()
}

func (s *subscriber[T]) Closed() bool {
	return s.closed
}

func (s *subscriber[T]) runTeardown() {
	if td := s.teardown; td != nil {
		s.teardown = nil
		td()
	}
}

// SubscriptionFunc returns a Subscription that calls fn on the first
// Unsubscribe.
func SubscriptionFunc(fn func()) Subscription {
	return &funcSubscription{fn: fn}
}

type funcSubscription struct {
	fn     func()
	closed bool
}

func (s *funcSubscription) Unsubscribe() {
	if s.closed {
		return
	}
	s.closed = true
	if s.fn != nil {
		s.fn()
	}
}

func (s *funcSubscription) Closed() bool {
	return s.closed
}

// closedSubscription is returned when subscribing to a terminated subject.
var closedSubscription Subscription = &funcSubscription{closed: true}
