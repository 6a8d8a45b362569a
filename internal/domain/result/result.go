// Package result holds the three-state envelope published for every fetch.
//
// A fetch publishes exactly one Loading followed by exactly one terminal
// envelope, either Success or Failure. Consumers read envelopes through Match,
// which takes a handler for every variant.
package result

import "fmt"

// Result is sealed: only the variants in this package implement it.
type Result[T any] interface {
	variant()
}

type Loading[T any] struct{}

type Success[T any] struct {
	Data T
}

type Failure[T any] struct {
	Err error
}

func (Loading[T]) variant() {}
func (Success[T]) variant() {}
func (Failure[T]) variant() {}

// Match dispatches r to the handler of its variant.
func Match[T, R any](r Result[T], onLoading func() R, onSuccess func(T) R, onFailure func(error) R) R {
	switch v := r.(type) {
	case Loading[T]:
		return onLoading()
	case Success[T]:
		return onSuccess(v.Data)
	case Failure[T]:
		return onFailure(v.Err)
	default:
		panic(fmt.Sprintf("result: unknown variant %T", r))
	}
}

// IsTerminal reports whether r is a Success or a Failure.
func IsTerminal[T any](r Result[T]) bool {
	return Match(r,
		func() bool { return false },
		func(T) bool { return true },
		func(error) bool { return true },
	)
}

// Name returns "loading", "success" or "error".
func Name[T any](r Result[T]) string {
	return Match(r,
		func() string { return "loading" },
		func(T) string { return "success" },
		func(error) string { return "error" },
	)
}
