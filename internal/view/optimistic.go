package view

import (
	"errors"
	"sync"

	"github.com/KirkDiggler/lastman/internal/models"
)

// ErrInvalidTransition is returned when an optimistic change is confirmed or
// reverted without being pending, or applied while another is pending.
var ErrInvalidTransition = errors.New("invalid optimistic state transition")

// Optimistic holds a value that may be changed locally ahead of the server.
//
//	clean --Apply--> optimistic_pending --Confirm--> confirmed
//	                                    --Revert---> reverted
//
// confirmed and reverted values may be changed again with Apply.
type Optimistic[T any] struct {
	mu    sync.Mutex
	value T
	prior T
	state models.MutationState
}

// NewOptimistic wraps a server-confirmed value
func NewOptimistic[T any](value T) *Optimistic[T] {
	return &Optimistic[T]{value: value, state: models.MutationStateClean}
}

// Value returns the value currently shown
func (o *Optimistic[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// State returns the current state
func (o *Optimistic[T]) State() models.MutationState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Apply shows next locally and remembers the value it replaced
func (o *Optimistic[T]) Apply(next T) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == models.MutationStatePending {
		return ErrInvalidTransition
	}
	o.prior = o.value
	o.value = next
	o.state = models.MutationStatePending
	return nil
}

// Confirm accepts the pending value
func (o *Optimistic[T]) Confirm() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != models.MutationStatePending {
		return ErrInvalidTransition
	}
	var zero T
	o.prior = zero
	o.state = models.MutationStateConfirmed
	return nil
}

// Revert restores exactly the value shown before Apply and returns it
func (o *Optimistic[T]) Revert() (T, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != models.MutationStatePending {
		return o.value, ErrInvalidTransition
	}
	o.value = o.prior
	var zero T
	o.prior = zero
	o.state = models.MutationStateReverted
	return o.value, nil
}
