package syntacalc

import (
	"errors"
	"strconv"
)

// ErrorKind classifies the errors produced by evaluation and function
// application.
type ErrorKind int8

const (
	// NoError is the kind of a nil error.
	NoError ErrorKind = iota
	// SyntaxError is the kind of malformed or disallowed expression text.
	SyntaxError
	// DivisionByZero is the kind of a division or negative power of zero.
	DivisionByZero
	// UnsupportedExpression is the kind of a syntax tree node or function
	// name outside the approved set.
	UnsupportedExpression
	// InvalidInput is the kind of a bad function operand, an argument outside
	// a function's domain, or an overflow.
	InvalidInput
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "NoError"
	case SyntaxError:
		return "SyntaxError"
	case DivisionByZero:
		return "DivisionByZero"
	case UnsupportedExpression:
		return "UnsupportedExpression"
	case InvalidInput:
		return "InvalidInput"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Sentinels for each error kind. Every error returned by this package matches
// exactly one of them with errors.Is.
var (
	ErrSyntax         = errors.New("syntax error")
	ErrDivisionByZero = errors.New("division by zero")
	ErrUnsupported    = errors.New("unsupported expression")
	ErrInvalidInput   = errors.New("invalid input")
)

// KindOf classifies err. Wrapped errors are unwrapped. Errors which match no
// sentinel are InvalidInput, since they can only come from outside the
// evaluator, e.g. a failing reader.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return NoError
	case errors.Is(err, ErrSyntax):
		return SyntaxError
	case errors.Is(err, ErrDivisionByZero):
		return DivisionByZero
	case errors.Is(err, ErrUnsupported):
		return UnsupportedExpression
	default:
		return InvalidInput
	}
}

// DivisionError is an error from dividing by zero or raising zero to a
// negative power. It matches ErrDivisionByZero.
type DivisionError struct {
	// Op is the operator, either "/" or "^".
	Op string
}

func (err *DivisionError) Error() string {
	if err.Op == "^" {
		return "zero raised to a negative power"
	}
	return "division by zero"
}

func (err *DivisionError) Is(target error) bool {
	return target == ErrDivisionByZero
}

// UnsupportedError is an error from evaluating a syntax tree node that is not
// a literal or one of the approved operators. It matches ErrUnsupported.
type UnsupportedError struct {
	// Node is a description of the rejected node.
	Node string
}

func (err *UnsupportedError) Error() string {
	return "unsupported expression node " + strconv.Quote(err.Node)
}

func (err *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}
