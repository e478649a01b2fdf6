package stream

// Of emits each value in order, then completes.
func Of[T any](values ...T) Observable[T] {
	return New(func(o Observer[T]) func() {
		for _, v := range values {
			o.Next(v)
		}
		o.Complete()
		return nil
	})
}

// Empty completes immediately without emitting.
func Empty[T any]() Observable[T] {
	return Of[T]()
}

// Never never emits and never terminates.
func Never[T any]() Observable[T] {
	return New(func(Observer[T]) func() { return nil })
}

// Throw terminates immediately with err.
func Throw[T any](err error) Observable[T] {
	return New(func(o Observer[T]) func() {
		o.Error(err)
		return nil
	})
}

// pipe subscribes to src with an observer built from the downstream one and
// forwards termination unless the caller overrides it.
func pipe[T, R any](src Observable[T], next func(o Observer[R], v T)) Observable[R] {
	return New(func(o Observer[R]) func() {
		sub := src.Subscribe(Observer[T]{
			Next:     func(v T) { next(o, v) },
			Error:    o.Error,
			Complete: o.Complete,
		})
		return sub.Unsubscribe
	})
}

// Map transforms every value with fn.
func Map[T, R any](src Observable[T], fn func(T) R) Observable[R] {
	return pipe(src, func(o Observer[R], v T) {
		o.Next(fn(v))
	})
}

// MapTo replaces every value with v.
func MapTo[T, R any](src Observable[T], v R) Observable[R] {
	return pipe(src, func(o Observer[R], _ T) {
		o.Next(v)
	})
}

// Filter forwards the values for which keep returns true.
func Filter[T any](src Observable[T], keep func(T) bool) Observable[T] {
	return pipe(src, func(o Observer[T], v T) {
		if keep(v) {
			o.Next(v)
		}
	})
}

// Tap runs fn for every value before forwarding it. fn runs once per
// subscription, so a Tap under a cold stream counts subscribers as well as
// values.
func Tap[T any](src Observable[T], fn func(T)) Observable[T] {
	return pipe(src, func(o Observer[T], v T) {
		fn(v)
		o.Next(v)
	})
}

// Scan emits the running accumulation of fn over src, starting from seed.
func Scan[T, A any](src Observable[T], seed A, fn func(A, T) A) Observable[A] {
	return Defer(func() Observable[A] {
		acc := seed
		return pipe(src, func(o Observer[A], v T) {
			acc = fn(acc, v)
			o.Next(acc)
		})
	})
}

// StartWith emits values before the values of src.
func StartWith[T any](src Observable[T], values ...T) Observable[T] {
	return New(func(o Observer[T]) func() {
		for _, v := range values {
			o.Next(v)
		}
		sub := src.Subscribe(o)
		return sub.Unsubscribe
	})
}

// Merge forwards the values of every source as they arrive. It completes once
// all sources complete and fails as soon as one of them fails.
func Merge[T any](srcs ...Observable[T]) Observable[T] {
	return New(func(o Observer[T]) func() {
		if len(srcs) == 0 {
			o.Complete()
			return nil
		}
		var (
			subs    []Subscription
			pending = len(srcs)
			done    bool
		)
		for _, src := range srcs {
			if done {
				break
			}
			subs = append(subs, src.Subscribe(Observer[T]{
				Next: o.Next,
				Error: func(err error) {
					done = true
					o.Error(err)
				},
				Complete: func() {
					pending--
					if pending == 0 {
						done = true
						o.Complete()
					}
				},
			}))
		}
		return func() {
			for _, sub := range subs {
				sub.Unsubscribe()
			}
		}
	})
}
