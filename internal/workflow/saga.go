package workflow

import (
	"context"
	"errors"
	"fmt"
)

// Saga collects compensating actions for the steps of a multi-step remote
// operation that have already committed. When a later step fails, the
// caller runs Compensate, which executes the registered actions in reverse
// registration order. A compensation that itself fails does not stop the
// remaining ones; all such failures are joined and tagged
// ErrCompensationFailed.
type Saga struct {
	compensations []func(context.Context) error
}

// OnFailure registers the compensating action for a step that just
// committed.
func (s *Saga) OnFailure(fn func(context.Context) error) {
	s.compensations = append(s.compensations, fn)
}

// Compensate undoes committed steps, last one first.
func (s *Saga) Compensate(ctx context.Context) error {
	var errs []error
	for i := len(s.compensations) - 1; i >= 0; i-- {
		if err := s.compensations[i](ctx); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", ErrCompensationFailed, err))
		}
	}
	return errors.Join(errs...)
}
