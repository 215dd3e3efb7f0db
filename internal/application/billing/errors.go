package billing

import (
	"errors"
	"fmt"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/invoice"
)

// TransientError marks a network-class provider fault. It is the only
// failure the retry layer acts on; everything else is terminal for the
// invoice in the current run.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient payment failure: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// UnableToUpdateError reports that a resolved invoice could not be
// written back. Not retried: the provider outcome is already known.
type UnableToUpdateError struct {
	Invoice invoice.Invoice
	Err     error
}

func (e *UnableToUpdateError) Error() string {
	return fmt.Sprintf("unable to update invoice %d: %v", e.Invoice.ID, e.Err)
}

func (e *UnableToUpdateError) Unwrap() error {
	return e.Err
}
