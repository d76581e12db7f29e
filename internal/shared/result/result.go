// Package result carries the success-or-error outcome of a service operation.
package result

// Result holds exactly one of a value or an error.
type Result[T any] struct {
	value T
	err   error
}

// Success wraps a value.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Failure wraps an error. A nil error is not a failure, so callers must pass a real one.
func Failure[T any](err error) Result[T] {
	if err == nil {
		panic("result: Failure called with nil error")
	}
	return Result[T]{err: err}
}

// IsError reports whether the result carries an error.
func (r Result[T]) IsError() bool { return r.err != nil }

// IsSuccess reports whether the result carries a value.
func (r Result[T]) IsSuccess() bool { return r.err == nil }

// Value returns the success value, or the zero value for a failure.
func (r Result[T]) Value() T { return r.value }

// Err returns the error, or nil for a success.
func (r Result[T]) Err() error { return r.err }

// Unwrap converts the result into Go's usual (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}
