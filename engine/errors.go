package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Konsultn-Engineering/pagedb/database"
	"github.com/Konsultn-Engineering/pagedb/query"
)

// ErrNotConnected is returned when a statement is executed without a live connection.
var ErrNotConnected = errors.New("not connected")

// Kind classifies a failure by where it has to be reported.
type Kind uint8

const (
	// KindConnection failures are logged only; pages are left untouched.
	KindConnection Kind = iota + 1
	// KindExecution failures come from the server or the driver and are shown on the page.
	KindExecution
	// KindValidation failures are caller contract violations caught before the driver.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindExecution:
		return "execution"
	case KindValidation:
		return "validation"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Error is the normalized form of every failure the engine reports.
type Error struct {
	Kind    Kind
	Op      string
	Code    string // SQLSTATE, when the server reported one
	Message string
	Detail  string
	Hint    string
	Err     error
}

// Error renders the diagnostic shown to users: the message, then DETAIL and HINT lines.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Code != "" {
		sb.WriteString(" (SQLSTATE ")
		sb.WriteString(e.Code)
		sb.WriteString(")")
	}
	if e.Detail != "" {
		sb.WriteString("\nDETAIL: ")
		sb.WriteString(e.Detail)
	}
	if e.Hint != "" {
		sb.WriteString("\nHINT: ")
		sb.WriteString(e.Hint)
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify normalizes err into an *Error. It returns nil for a nil err and err
// itself when it already is an *Error.
func Classify(op string, err error) *Error {
	if err == nil {
		return nil
	}

	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	out := &Error{Kind: KindExecution, Op: op, Message: err.Error(), Err: err}

	var verr *query.ValidationError
	var derr *database.DriverError
	switch {
	case errors.As(err, &verr):
		out.Kind = KindValidation
	case errors.As(err, &derr):
		out.Code = derr.Code
		out.Message = derr.Message
		out.Detail = derr.Detail
		out.Hint = derr.Hint
	case errors.Is(err, ErrNotConnected), errors.Is(err, database.ErrClosed):
		out.Kind = KindConnection
	case errors.Is(err, context.DeadlineExceeded):
		out.Message = "canceling statement: " + err.Error()
	}
	return out
}

// KindOf reports the Kind of err, or 0 when err is not an engine failure.
func KindOf(err error) Kind {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return 0
}
