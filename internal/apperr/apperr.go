// Package apperr defines the closed set of failure kinds that cross component
// boundaries in the question-to-answer loop. Callers branch on Kind instead of
// matching error strings.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// ModelCallFailed indicates the language model could not be reached or returned nothing usable.
	ModelCallFailed Kind = "model_call_failed"
	// ExecutionFailed indicates the database rejected or failed a statement.
	ExecutionFailed Kind = "execution_failed"
	// SchemaUnavailable indicates no schema description is loaded or retrievable.
	SchemaUnavailable Kind = "schema_unavailable"
	// NotFound indicates a missing session, feedback item or training example.
	NotFound Kind = "not_found"
	// InvalidInput indicates a malformed request.
	InvalidInput Kind = "invalid_input"
	// Conflict indicates the request is not allowed in the current state.
	Conflict Kind = "conflict"
	// Unknown is returned by KindOf for errors that carry no kind.
	Unknown Kind = "unknown"
)

// E wraps an error with kind, operation and a human-friendly message.
type E struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *E) Error() string {
	prefix := string(e.Kind)
	if e.Op != "" {
		prefix = e.Op + ": " + prefix
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

// Is matches any *E with the same Kind, so errors.Is(err, apperr.New(apperr.NotFound, ""))
// works as a kind check.
func (e *E) Is(target error) bool {
	t, ok := target.(*E)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }
func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }

// WithOp returns a copy of e tagged with the operation name.
func (e *E) WithOp(op string) *E {
	c := *e
	c.Op = op
	return &c
}

// KindOf returns the kind of the first *E in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *E
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Message returns the human-friendly message of the first *E in err's chain,
// falling back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *E
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
