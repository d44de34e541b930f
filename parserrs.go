package syntacalc

import "strconv"

// OperatorError is an error indicating an operator token that is not
// understood by the parser in its position. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unexpected "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating unbalanced parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis, or of the end of the
	// input for an unclosed one.
	Col int
	// Open is true if an open parenthesis was never closed, and false if a
	// close parenthesis had no open one.
	Open bool
}

func (err *BracketError) Error() string {
	if err.Open {
		return errpos(err.Col, "open bracket ( with no close bracket")
	}
	return errpos(err.Col, "close bracket ) with no open bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// NameError is an error indicating a name in the input. Expressions contain
// only numbers and operators, so this covers variables, function calls, and
// keywords. It implements InputError.
type NameError struct {
	// Col is the position of the name.
	Col int
	// Name is the name that was found.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "names are not allowed in expressions: "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

// JuxtapositionError is an error indicating two terms with no operator
// between them, e.g. "2 3" or "2(3)". It implements InputError.
type JuxtapositionError struct {
	// Col is the position of the second term.
	Col int
	// Text is the token that starts the second term.
	Text string
}

func (err *JuxtapositionError) Error() string {
	return errpos(err.Col, "missing operator before "+strconv.Quote(err.Text))
}

func (err *JuxtapositionError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid expression text implements InputError and matches ErrSyntax.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

func (err *OperatorError) Is(target error) bool        { return target == ErrSyntax }
func (err *BracketError) Is(target error) bool         { return target == ErrSyntax }
func (err *NameError) Is(target error) bool            { return target == ErrSyntax }
func (err *JuxtapositionError) Is(target error) bool   { return target == ErrSyntax }
func (err *EmptyExpressionError) Is(target error) bool { return target == ErrSyntax }

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*JuxtapositionError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)
