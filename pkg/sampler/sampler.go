// Package sampler provides a generic interval sampler with rate
// limiting: a background loop that polls a producer and hands each
// sample to a callback.
package sampler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Sampler polls a producer on a fixed interval and delivers samples to
// a callback. Producer failures are logged and the loop keeps running.
type Sampler[T any] struct {
	produce  func(context.Context) (T, error)
	callback func(T)
	interval time.Duration
	rl       ratelimit.Limiter
	logger   *zap.Logger

	wg   sync.WaitGroup
	stop chan struct{}
	once sync.Once
}

// New constructs a Sampler.
func New[T any](logger *zap.Logger, produce func(context.Context) (T, error), callback func(T), interval time.Duration, rps int) *Sampler[T] {
	if rps <= 0 {
		rps = 1
	}
	return &Sampler[T]{
		logger:   logger,
		produce:  produce,
		callback: callback,
		interval: interval,
		rl:       ratelimit.New(rps),
		stop:     make(chan struct{}),
	}
}

// Start begins the background sampling loop. The first sample is taken
// immediately rather than after the first interval.
func (s *Sampler[T]) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.run(ctx)
}

// Stop stops the background sampling loop and waits for it to exit.
// Safe to call more than once.
func (s *Sampler[T]) Stop() {
	s.once.Do(func() { close(s.stop) })
	s.wg.Wait()
}

func (s *Sampler[T]) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	sample := func() {
		s.rl.Take()
		value, err := s.produce(ctx)
		if err != nil {
			s.logger.Warn("sample not taken", zap.Error(err))
			return
		}
		s.callback(value)
	}

	sample()
	for {
		select {
		case <-ctx.Done():
			return

		case <-s.stop:
			return

		case <-ticker.C:
			sample()
		}
	}
}
