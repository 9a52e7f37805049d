package wikidata

import crerr "github.com/cockroachdb/errors"

var (
	// ErrNetwork is a transport failure talking to the API.
	ErrNetwork = crerr.New("wikidata network error")
	// ErrStatus is a non-2xx HTTP response.
	ErrStatus = crerr.New("wikidata unexpected status")
	// ErrParse is a body that could not be decoded.
	ErrParse = crerr.New("wikidata parse error")
	// ErrAPI is an error object returned inside a 200 response.
	ErrAPI = crerr.New("wikidata api error")
)

// errTransient marks failures that should count against the circuit breaker.
var errTransient = crerr.New("wikidata transient failure")

func isTransient(err error) bool {
	return crerr.Is(err, errTransient)
}
