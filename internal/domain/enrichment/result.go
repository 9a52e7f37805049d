// Package enrichment holds the typed outcome of a best-effort lookup against
// an external knowledge base.
package enrichment

type Status uint8

const (
	// StatusEmpty means the upstream has no usable value.
	StatusEmpty Status = iota
	StatusFound
	// StatusFailed means the lookup itself did not complete.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusFailed:
		return "failed"
	default:
		return "empty"
	}
}

// Result is what every enrichment getter returns. Callers never receive a
// bare error: a failed lookup is a Result with StatusFailed and Err set.
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

func Found[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: StatusFound}
}

func Empty[T any]() Result[T] {
	return Result[T]{Status: StatusEmpty}
}

func Failed[T any](err error) Result[T] {
	return Result[T]{Status: StatusFailed, Err: err}
}

// Get returns the value and whether it was found.
func (r Result[T]) Get() (T, bool) {
	return r.Value, r.Status == StatusFound
}

func (r Result[T]) Found() bool  { return r.Status == StatusFound }
func (r Result[T]) Failed() bool { return r.Status == StatusFailed }

// Map converts a found value, keeping empty and failed results as they are.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	switch r.Status {
	case StatusFound:
		return Found(fn(r.Value))
	case StatusFailed:
		return Failed[U](r.Err)
	default:
		return Empty[U]()
	}
}

// Bind chains a dependent lookup on a found value.
func Bind[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	switch r.Status {
	case StatusFound:
		return fn(r.Value)
	case StatusFailed:
		return Failed[U](r.Err)
	default:
		return Empty[U]()
	}
}

// Socials are profile URLs; an empty string means no handle is published.
type Socials struct {
	Instagram string
	Facebook  string
	XTwitter  string
}

func (s Socials) IsZero() bool {
	return s.Instagram == "" && s.Facebook == "" && s.XTwitter == ""
}
