package services

import (
	"log"
	"time"

	"github.com/sony/gobreaker/v2"
)

// APIBreaker shields the upstream LLM API. All Gemini calls share one
// breaker, so a dead upstream stops both embeddings and generation.
type APIBreaker struct {
	cb *gobreaker.CircuitBreaker[any]
}

func NewAPIBreaker() *APIBreaker {
	settings := gobreaker.Settings{
		Name:        "gemini-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("⚡ Circuit breaker %s: %s -> %s", name, from.String(), to.String())
		},
	}

	return &APIBreaker{cb: gobreaker.NewCircuitBreaker[any](settings)}
}

func execWithBreaker[T any](b *APIBreaker, fn func() (T, error)) (T, error) {
	if b == nil {
		return fn()
	}

	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}
