package framework

import "errors"

// Sentinel errors shared across the module. Wrap with fmt.Errorf("%w: ...")
// and classify with errors.Is.
var (
	// ErrModelUnavailable marks a transport or backend fault from the model
	// client. Fatal to the current run; the loop never retries it.
	ErrModelUnavailable = errors.New("model backend unavailable")

	// ErrToolNotFound is returned by Registry.Resolve for an unknown name.
	ErrToolNotFound = errors.New("tool not found")

	// ErrToolAlreadyExists is returned by Registry.Register on a duplicate
	// name.
	ErrToolAlreadyExists = errors.New("tool already registered")
)
