package database

// OpError wraps a storage engine failure with the logical operation that hit
// it. Sentinel errors such as a not-found lookup are returned directly by the
// repositories and are never wrapped in an OpError.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return "storage " + e.Op + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}
