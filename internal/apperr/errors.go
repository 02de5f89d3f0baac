package apperr

import "fmt"

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// AcquisitionError reports that a dataset's local files are still missing
// after the single fetch attempt. It is always fatal for a benchmark run.
type AcquisitionError struct {
	Dataset string
	Path    string
	Err     error
}

func (e *AcquisitionError) Error() string {
	msg := fmt.Sprintf("acquire dataset %q", e.Dataset)
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

func NewAcquisition(dataset, path string, err error) *AcquisitionError {
	return &AcquisitionError{Dataset: dataset, Path: path, Err: err}
}
