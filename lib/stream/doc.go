// Package stream implements the push-based reactive value streams that the
// hxfrp combinators are built on.
//
// Streams are synchronous: a value pushed into a Subject reaches every
// observer, and everything downstream of it, before Push returns. There is no
// scheduler and no goroutine anywhere in this package. Callers that feed
// streams from several goroutines must serialize those calls themselves (the
// hxfrp session registry does this with one mutex per mounted tree).
//
// # Cold and hot streams
//
// An Observable built with New, Of or any operator is cold: each Subscribe
// runs the producer again. Subject, ReplaySubject and BehaviorSubject are hot:
// observers share a single producer. Share and ShareReplay turn a cold stream
// into a hot one with reference counting, connecting to the source on the
// first subscription and disconnecting when the last observer leaves.
//
//	clicks := stream.NewSubject[int]()
//	doubled := stream.Share(stream.Map(clicks, func(n int) int { return n * 2 }))
//	sub := doubled.Subscribe(stream.OnNext(func(n int) { fmt.Println(n) }))
//	clicks.Push(21) // prints 42
//	sub.Unsubscribe()
//
// # Termination
//
// A stream ends with at most one Error or Complete signal. After termination,
// or after Unsubscribe, an observer receives nothing further.
package stream
