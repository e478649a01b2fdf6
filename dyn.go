package hxfrp

import "github.com/pthm/hxfrp/lib/stream"

// Dyn renders whichever M src emitted most recently.
//
// When a new M arrives, the previous one's fragment subscription is
// cancelled before the new one is subscribed, tearing down everything the
// old subtree held open. Nothing the old subtree emits after that point
// reaches the output.
//
// src is shared, so whatever builds the Ms runs once per emission no matter
// how many observers the resulting fragments and value have. The value
// stream carries the value of each M as it arrives.
func Dyn[T any](src stream.Observable[M[T]]) M[stream.Observable[T]] {
	shared := stream.ShareReplay(src, 1)
	fragments := stream.SwitchMap(shared, func(m M[T]) Fragments {
		if m.Fragments == nil {
			return empty()
		}
		return m.Fragments
	})
	return M[stream.Observable[T]]{
		Fragments: stream.ShareReplay(fragments, 1),
		Value:     stream.Map(shared, func(m M[T]) T { return m.Value }),
	}
}

// List renders one child per element of the latest slice values emitted.
//
// Children are positional and rebuilt from scratch on every emission: fn
// runs for every element each time, and the previous children are torn down
// as a whole through Dyn. Keep fn cheap.
func List[T, R any](values stream.Observable[[]T], fn func(T) M[R]) M[stream.Observable[[]R]] {
	return Dyn(stream.Map(values, func(vs []T) M[[]R] {
		return Mdo(func(b *Binder) []R {
			out := make([]R, 0, len(vs))
			for _, v := range vs {
				out = append(out, Bind(b, fn(v)))
			}
			return out
		})
	}))
}
