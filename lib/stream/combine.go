package stream

// CombineLatest emits the latest value of every source, in source order,
// each time any source emits once all of them have emitted at least once.
// Each emission is a fresh slice.
//
// A source that completes without emitting completes the result, since it
// can never produce a full combination. With no sources the result completes
// immediately.
func CombineLatest[T any](srcs []Observable[T]) Observable[[]T] {
	return New(func(o Observer[[]T]) func() {
		n := len(srcs)
		if n == 0 {
			o.Complete()
			return nil
		}
		var (
			latest    = make([]T, n)
			has       = make([]bool, n)
			missing   = n
			completed int
			done      bool
			subs      = make([]Subscription, 0, n)
		)
		for i, src := range srcs {
			if done {
				break
			}
			i := i
			subs = append(subs, src.Subscribe(Observer[T]{
				Next: func(v T) {
					latest[i] = v
					if !has[i] {
						has[i] = true
						missing--
					}
					if missing == 0 {
						o.Next(append([]T(nil), latest...))
					}
				},
				Error: func(err error) {
					done = true
					o.Error(err)
				},
				Complete: func() {
					completed++
					if !has[i] || completed == n {
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

// CombineLatest2 combines two sources of different types with fn.
func CombineLatest2[A, B, R any](a Observable[A], b Observable[B], fn func(A, B) R) Observable[R] {
	return Map(CombineLatest([]Observable[any]{boxed(a), boxed(b)}), func(vs []any) R {
		return fn(unbox[A](vs[0]), unbox[B](vs[1]))
	})
}

// CombineLatest3 combines three sources of different types with fn.
func CombineLatest3[A, B, C, R any](a Observable[A], b Observable[B], c Observable[C], fn func(A, B, C) R) Observable[R] {
	return Map(CombineLatest([]Observable[any]{boxed(a), boxed(b), boxed(c)}), func(vs []any) R {
		return fn(unbox[A](vs[0]), unbox[B](vs[1]), unbox[C](vs[2]))
	})
}

func boxed[T any](src Observable[T]) Observable[any] {
	return Map(src, func(v T) any { return v })
}

// unbox tolerates nil interface values, which a plain type assertion would
// reject.
func unbox[T any](v any) T {
	t, _ := v.(T)
	return t
}

// SwitchAll flattens a stream of streams by following only the most recent
// inner stream. When a new inner stream arrives the previous inner
// subscription is cancelled before the new one starts, so nothing from a
// superseded stream is ever forwarded.
//
// The result completes when the outer stream and the current inner stream
// have both completed. An error from either side fails the result.
func SwitchAll[T any](src Observable[Observable[T]]) Observable[T] {
	return New(func(o Observer[T]) func() {
		var (
			inner       Subscription
			gen         int
			innerActive bool
			outerDone   bool
		)
		outer := src.Subscribe(Observer[Observable[T]]{
			Next: func(next Observable[T]) {
				if inner != nil {
					inner.Unsubscribe()
					inner = nil
				}
				gen++
				mine := gen
				innerActive = true
				sub := next.Subscribe(Observer[T]{
					Next: func(v T) {
						if mine == gen {
							o.Next(v)
						}
					},
					Error: func(err error) {
						if mine == gen {
							o.Error(err)
						}
					},
					Complete: func() {
						if mine != gen {
							return
						}
						innerActive = false
						if outerDone {
							o.Complete()
						}
					},
				})
				if mine == gen {
					inner = sub
				} else {
					sub.Unsubscribe()
				}
			},
			Error: o.Error,
			Complete: func() {
				outerDone = true
				if !innerActive {
					o.Complete()
				}
			},
		})
		return func() {
			outer.Unsubscribe()
			if inner != nil {
				inner.Unsubscribe()
			}
		}
	})
}

// SwitchMap maps every value to a stream and follows the latest one.
func SwitchMap[T, R any](src Observable[T], fn func(T) Observable[R]) Observable[R] {
	return SwitchAll(Map(src, fn))
}
