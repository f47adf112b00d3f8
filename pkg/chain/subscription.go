package chain

import (
	"context"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Emitter pushes a value to the consumer of a subscription. It returns false
// once the subscription has been closed, in which case the producer must stop.
type Emitter[T any] func(T) bool

// Producer feeds a subscription until quit is closed or an error occurs. The
// returned error, if any, is delivered through Err.
type Producer[T any] func(quit <-chan struct{}, emit Emitter[T]) error

// Subscription is a stream of values pushed by the chain. The value channel
// is closed when the stream ends, either because of Unsubscribe, because the
// context it was created with is done, or because of an error.
type Subscription[T any] struct {
	id   string
	ch   chan T
	err  chan error
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// NewSubscription starts the given producer in background and returns the
// subscription it feeds.
func NewSubscription[T any](ctx context.Context, produce Producer[T]) *Subscription[T] {
	s := &Subscription[T]{
		id:   uuid.NewString(),
		ch:   make(chan T),
		err:  make(chan error, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}

	emit := func(v T) bool {
		select {
		case s.ch <- v:
			return true
		case <-s.quit:
			return false
		}
	}

	go func() {
		defer close(s.done)
		defer close(s.err)
		defer close(s.ch)

		if err := produce(s.quit, emit); err != nil {
			log.WithError(err).WithField("subscription", s.id).Warn("subscription failed")
			s.err <- err
			return
		}
		log.WithField("subscription", s.id).Debug("subscription closed")
	}()

	go func() {
		select {
		case <-ctx.Done():
			s.Unsubscribe()
		case <-s.done:
		}
	}()

	log.WithField("subscription", s.id).Debug("subscription started")
	return s
}

func (s *Subscription[T]) Id() string {
	return s.id
}

// Chan returns the channel of values.
func (s *Subscription[T]) Chan() <-chan T {
	return s.ch
}

// Err returns a channel that receives the error that ended the subscription,
// if any. It is closed right after Chan.
func (s *Subscription[T]) Err() <-chan error {
	return s.err
}

// Unsubscribe stops the subscription. It can be called multiple times.
func (s *Subscription[T]) Unsubscribe() {
	s.once.Do(func() {
		close(s.quit)
	})
}

// Done is closed once the producer has returned.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// MapSubscription returns a subscription that applies fn to every value of
// src. Values for which fn returns false are skipped. Unsubscribing the
// returned subscription unsubscribes src.
func MapSubscription[In, Out any](
	ctx context.Context, src *Subscription[In], fn func(In) (Out, bool, error),
) *Subscription[Out] {
	return NewSubscription(ctx, func(quit <-chan struct{}, emit Emitter[Out]) error {
		defer src.Unsubscribe()

		for {
			select {
			case <-quit:
				return nil
			case in, ok := <-src.Chan():
				if !ok {
					return <-src.Err()
				}
				out, ok, err := fn(in)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				if !emit(out) {
					return nil
				}
			}
		}
	})
}
