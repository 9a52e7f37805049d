package resilience

import (
	"errors"

	"github.com/sony/gobreaker"

	"github.com/riskibarqy/tennis-players/internal/platform/logging"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker guards calls to an upstream dependency. A nil or disabled
// breaker runs every call directly.
type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewCircuitBreaker trips after FailureThreshold consecutive failures. Only
// errors reported as failures by countsAsFailure move the breaker; a nil
// countsAsFailure counts every error.
func NewCircuitBreaker(name string, cfg CircuitBreakerConfig, countsAsFailure func(error) bool, logger *logging.Logger) *CircuitBreaker {
	if !cfg.Enabled {
		return &CircuitBreaker{}
	}
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = logging.Default()
	}

	threshold := uint32(cfg.FailureThreshold)
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(cfg.HalfOpenMaxReq),
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
	if countsAsFailure != nil {
		settings.IsSuccessful = func(err error) bool {
			return err == nil || !countsAsFailure(err)
		}
	}

	return &CircuitBreaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Execute runs fn through the breaker. While open it returns ErrCircuitOpen
// without calling fn.
func (b *CircuitBreaker) Execute(fn func() (any, error)) (any, error) {
	if b == nil || b.cb == nil {
		return fn()
	}

	out, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrCircuitOpen
	}
	return out, err
}

func (b *CircuitBreaker) State() CircuitState {
	if b == nil || b.cb == nil {
		return CircuitStateClosed
	}

	switch b.cb.State() {
	case gobreaker.StateOpen:
		return CircuitStateOpen
	case gobreaker.StateHalfOpen:
		return CircuitStateHalfOpen
	default:
		return CircuitStateClosed
	}
}
