// Package pipeline provides the high-level orchestration for one
// optimization run: validate, score, classify, select, fit.
package pipeline

import "fmt"

// InvalidDocumentError is a caller contract violation: the input document is
// missing required hard fields or has a malformed section/entry structure.
// It is surfaced to the caller and never retried.
type InvalidDocumentError struct {
	Message string
	Cause   error
}

func (e *InvalidDocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid document: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid document: %s", e.Message)
}

func (e *InvalidDocumentError) Unwrap() error {
	return e.Cause
}
