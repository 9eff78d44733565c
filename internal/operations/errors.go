package operations

import "fmt"

// StepError identifies which step of which operation failed.
type StepError struct {
	OperationID string
	StepID      string
	Err         error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("operation %s: step %s: %v", e.OperationID, e.StepID, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
