// Package resilience guards outbound calls with a circuit breaker.
package resilience

import (
	"context"
	"errors"
	"fmt"

	"github.com/abgdnv/storeadmin/pkg/config"
	"github.com/abgdnv/storeadmin/pkg/messaging"
	"github.com/sony/gobreaker/v2"
)

// BreakerPublisher forwards events to the wrapped publisher through a circuit breaker.
// While the breaker is open, Publish fails fast with gobreaker.ErrOpenState.
type BreakerPublisher struct {
	next    messaging.Publisher
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerPublisher(next messaging.Publisher, cfg config.CircuitBreakerConfig) *BreakerPublisher {
	return &BreakerPublisher{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[struct{}](newSettings("publisher-cb", cfg)),
	}
}

func (p *BreakerPublisher) Publish(ctx context.Context, event messaging.Event) error {
	_, err := p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.next.Publish(ctx, event)
	})
	if err != nil {
		return fmt.Errorf("publish %s (breaker %s): %w", event.Subject(), p.breaker.State(), err)
	}
	return nil
}

func newSettings(name string, cfg config.CircuitBreakerConfig) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures ||
				(counts.Requests > cfg.ConsecutiveFailures &&
					float64(counts.TotalFailures)/float64(counts.Requests)*100 > float64(cfg.ErrorRatePercent))
		},
		IsSuccessful: func(err error) bool {
			// A cancelled caller says nothing about the broker's health.
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
}
