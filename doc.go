// Package syntacalc implements the evaluator behind a button calculator.
//
// Expressions contain decimal numbers, parentheses, the operators + - * / ^,
// and unary minus. × and ÷ may be written for * and /, and ** for ^. Unary
// minus binds tightest, so "-2^2" is 4 and "2^-1" is 0.5. Anything else,
// including names and function calls, is a syntax error. Parsed expressions
// are checked against the list of approved operators before any arithmetic
// happens, and results are rounded to ten decimal places by default.
//
// The single-operand functions sin, cos, tan (in degrees), log, ln, and sqrt
// are not part of the grammar. Apply evaluates them on one numeric literal.
//
// Every error from this package matches one of ErrSyntax, ErrDivisionByZero,
// ErrUnsupported, or ErrInvalidInput, and KindOf classifies it.
//
package syntacalc
