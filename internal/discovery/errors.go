package discovery

import "fmt"

// ErrorKind categorizes discovery failures. Discovery never surfaces these
// to its caller - an empty result is a valid outcome - but the closed set
// lets logging and tests distinguish "nothing found" from "something broke".
type ErrorKind int

const (
	// KindTransport indicates a socket or HTTP failure (send, receive,
	// connect, timeout, non-2xx status)
	KindTransport ErrorKind = iota
	// KindParse indicates a malformed response (bad XML, unparseable URL)
	KindParse
	// KindValidation indicates a well-formed descriptor that fails the
	// acceptance rules (wrong manufacturer, missing required fields)
	KindValidation
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is a categorized discovery failure for a single location or source.
type Error struct {
	Kind     ErrorKind // Category of failure
	Location string    // Location URL or source name for context
	Message  string    // Human-readable message
	Err      error     // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%s): %v", e.Kind, e.Message, e.Location, e.Err)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Location)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

func newTransportError(location, message string, err error) *Error {
	return &Error{Kind: KindTransport, Location: location, Message: message, Err: err}
}

func newParseError(location, message string, err error) *Error {
	return &Error{Kind: KindParse, Location: location, Message: message, Err: err}
}

func newValidationError(location, message string) *Error {
	return &Error{Kind: KindValidation, Location: location, Message: message}
}
