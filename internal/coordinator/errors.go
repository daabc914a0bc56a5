package coordinator

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// Kind enumerates the six error kinds of the coordinator's error model,
// each with a fixed gRPC status mapping at the wire boundary.
type Kind int

const (
	KindInvalidArgument Kind = iota
	KindFailedPrecondition
	KindAborted
	KindUnavailable
	KindDeadlineExceeded
	KindInternal
)

func (k Kind) Code() codes.Code {
	switch k {
	case KindInvalidArgument:
		return codes.InvalidArgument
	case KindFailedPrecondition:
		return codes.FailedPrecondition
	case KindAborted:
		return codes.Aborted
	case KindUnavailable:
		return codes.Unavailable
	case KindDeadlineExceeded:
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindFailedPrecondition:
		return "FailedPrecondition"
	case KindAborted:
		return "Aborted"
	case KindUnavailable:
		return "Unavailable"
	case KindDeadlineExceeded:
		return "DeadlineExceeded"
	default:
		return "Internal"
	}
}

// Error is the coordinator's typed error: a Kind convertible to a grpc/status
// code, plus the detail needed to build a MissingEventsDetail without a
// second round-trip on a sequence conflict.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Missing *pb.MissingEventsDetail // set only for KindAborted sequence conflicts
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// GRPCStatus lets errors.As/status.FromError recover the coordinator's
// status directly from a returned error, which is what every gRPC handler
// in this module returns at its boundary.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(e.Kind.Code(), e.Message)
}

func invalidArgument(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func failedPrecondition(format string, args ...interface{}) *Error {
	return &Error{Kind: KindFailedPrecondition, Message: fmt.Sprintf(format, args...)}
}

func aborted(missing *pb.MissingEventsDetail) *Error {
	return &Error{
		Kind:    KindAborted,
		Message: fmt.Sprintf("sequence conflict [%d,%d)", missing.GetExpectedSequence(), missing.GetActualSequence()),
		Missing: missing,
	}
}

func unavailable(cause error) *Error {
	return &Error{Kind: KindUnavailable, Message: "downstream unavailable", Cause: cause}
}

func internalErr(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// AsCoordinatorError extracts a coordinator *Error from an error chain.
func AsCoordinatorError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
