// Package fault classifies boundary failures and decides, per kind, whether
// a failure degrades to a default value or aborts the run.
package fault

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Kind is the failure taxonomy shared by every boundary operation
type Kind int

const (
	KindUnexpected Kind = iota
	KindElementNotFound
	KindNavigationTimeout
	KindAuthentication
	KindExtraction
)

func (k Kind) String() string {
	switch k {
	case KindElementNotFound:
		return "element_not_found"
	case KindNavigationTimeout:
		return "navigation_timeout"
	case KindAuthentication:
		return "authentication_failure"
	case KindExtraction:
		return "extraction_failure"
	default:
		return "unexpected"
	}
}

// Error is a classified failure of a named operation
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err as a failure of kind for operation op
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// NotFound marks a missing element
func NotFound(op string, err error) error {
	return New(KindElementNotFound, op, err)
}

// KindOf classifies an arbitrary error. Explicit fault errors win; deadline
// errors become navigation timeouts; "not found" messages from the browser
// layer become missing elements.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnexpected
	}

	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindNavigationTimeout
	}

	if strings.Contains(strings.ToLower(err.Error()), "not found") {
		return KindElementNotFound
	}

	return KindUnexpected
}

// Action is what the pipeline does with a failure
type Action int

const (
	Degrade Action = iota // Substitute the default value and keep going
	Abort                 // Stop the run and report to the operator
)

// Policy maps each kind to an action. Kinds missing from the table degrade.
type Policy map[Kind]Action

// DefaultPolicy aborts only on authentication failures
func DefaultPolicy() Policy {
	return Policy{
		KindElementNotFound:   Degrade,
		KindNavigationTimeout: Degrade,
		KindAuthentication:    Abort,
		KindExtraction:        Degrade,
		KindUnexpected:        Degrade,
	}
}

// Action returns the action for err
func (p Policy) Action(err error) Action {
	if a, ok := p[KindOf(err)]; ok {
		return a
	}
	return Degrade
}

// Resolve applies the policy to the outcome of a boundary operation.
// Success passes v through. A degradable failure is logged and replaced by
// fallback with a nil error. An abort-class failure returns fallback and err.
func Resolve[T any](p Policy, logger *zap.Logger, op string, v T, err error, fallback T) (T, error) {
	if err == nil {
		return v, nil
	}

	if p.Action(err) == Abort {
		return fallback, err
	}

	if logger != nil {
		logger.Warn("operation degraded",
			zap.String("op", op),
			zap.String("kind", KindOf(err).String()),
			zap.Error(err))
	}
	return fallback, nil
}
