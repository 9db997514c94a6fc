package report

import "fmt"

// LocalCompileError is an internal invariant violation raised inside a stage.
// Stages recover it and turn it into an `internal` diagnostic so that analysis
// always completes.
type LocalCompileError struct {
	// The error message.
	Message string

	// The span over which the error occurs.
	Span *TextSpan
}

func (lce *LocalCompileError) Error() string {
	return lce.Message
}

// Raise creates a new local compile error.
func Raise(span *TextSpan, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// CatchInternal recovers a panicking LocalCompileError and records it in the
// collector.  Any other panic is re-raised.
// NB: This function must ALWAYS be deferred.
func CatchInternal(c *Collector) {
	if x := recover(); x != nil {
		if lce, ok := x.(*LocalCompileError); ok {
			c.Error(lce.Span, "internal", Args{"detail": lce.Message})
		} else {
			panic(x)
		}
	}
}
