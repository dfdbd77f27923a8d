package formatcode

import "fmt"

// ErrorHeader prefixes every message produced by this package.
const ErrorHeader = "<b>Format Code Parse Error</b>"

// ErrorKind classifies an Error.
type ErrorKind int

const (
	// ParseError is a malformed directive in a template.
	ParseError ErrorKind = iota
	// FillCountError means more fills were supplied than there are labels.
	FillCountError
	// FillValueError is a fill that does not suit its label.
	FillValueError
	// LookupError is a fill naming a label the spec does not declare.
	LookupError
)

func (k ErrorKind) String() string {
	switch k {
	case ParseError:
		return "parse error"
	case FillCountError:
		return "fill count error"
	case FillValueError:
		return "fill value error"
	case LookupError:
		return "lookup error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the only error type returned by this package. Its message is
// HTML intended to be shown to the end user as is.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return ErrorHeader + "\n" + e.Msg
}

func newError(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
