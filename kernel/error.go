package kernel

// Error describes a setup error. Fixed errors are defined as package-level
// pointers to the Error structure so callers can compare them by identity.
type Error struct {
	// The module where the error occurred.
	Module string

	// The error message
	Message string

	// The status reported to the caller of the probe.
	Status Status
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// StatusOf returns the status carried by err. A nil err maps to Success and
// errors that are not a *Error map to Aborted.
func StatusOf(err error) Status {
	if err == nil {
		return Success
	}

	if kerr, ok := err.(*Error); ok {
		return kerr.Status
	}

	return Aborted
}
