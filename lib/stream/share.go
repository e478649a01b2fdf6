package stream

// relay is the hot subject a shared stream multicasts through.
type relay[T any] interface {
	Observable[T]
	Push(T)
	Error(error)
	Complete()
}

// Share multicasts src. The first observer connects to src, later observers
// join the same connection, and the connection is cancelled when the last
// observer unsubscribes. Values emitted before an observer joined are not
// replayed; use ShareReplay for that. Once src terminates, observers that
// join receive the terminal signal and src is not subscribed again.
func Share[T any](src Observable[T]) Observable[T] {
	return &shared[T]{src: src, newRelay: func() relay[T] { return NewSubject[T]() }}
}

// ShareReplay is Share with the last size values replayed to observers that
// join an existing connection. A size of zero or less replays everything.
func ShareReplay[T any](src Observable[T], size int) Observable[T] {
	return &shared[T]{src: src, newRelay: func() relay[T] { return NewReplaySubject[T](size) }}
}

type shared[T any] struct {
	src      Observable[T]
	newRelay func() relay[T]
	cur      *connection[T]
}

// connection is one period during which src is subscribed. A terminated
// connection stays current: later observers get its replay and the terminal
// signal without src running again. A live connection is dropped when its
// last observer leaves, and the next observer starts a fresh one.
type connection[T any] struct {
	relay      relay[T]
	sub        Subscription
	refs       int
	connected  bool
	terminated bool
}

func (s *shared[T]) Subscribe(o Observer[T]) Subscription {
	c := s.cur
	if c == nil {
		c = &connection[T]{relay: s.newRelay()}
		s.cur = c
	}
	c.refs++
	inner := c.relay.Subscribe(o)
	if !c.connected && s.cur == c {
		c.connected = true
		c.sub = s.src.Subscribe(Observer[T]{
			Next: c.relay.Push,
			Error: func(err error) {
				c.terminated = true
				c.relay.Error(err)
			},
			Complete: func() {
				c.terminated = true
				c.relay.Complete()
			},
		})
		if s.cur != c {
			c.sub.Unsubscribe()
		}
	}
	return &sharedSubscription[T]{owner: s, conn: c, inner: inner}
}

type sharedSubscription[T any] struct {
	owner  *shared[T]
	conn   *connection[T]
	inner  Subscription
	closed bool
}

func (s *sharedSubscription[T]) Unsubscribe() {
	if s.closed {
		return
	}
	s.closed = true
	s.inner.Unsubscribe()
	c := s.conn
	c.refs--
	if c.refs == 0 && !c.terminated && s.owner.cur == c {
		s.owner.cur = nil
		if c.sub != nil {
			c.sub.Unsubscribe()
		}
	}
}

func (s *sharedSubscription[T]) Closed() bool {
	return s.closed || s.inner.Closed()
}
