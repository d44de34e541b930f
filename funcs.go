package syntacalc

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Function is a single-operand function. Functions are not part of the
// expression grammar; they apply to a single numeric literal.
type Function int8

const (
	// FuncNone is the zero Function, which cannot be applied.
	FuncNone Function = iota
	// Sin is the sine of an angle in degrees.
	Sin
	// Cos is the cosine of an angle in degrees.
	Cos
	// Tan is the tangent of an angle in degrees.
	Tan
	// Log10 is the base-10 logarithm.
	Log10
	// Ln is the natural logarithm.
	Ln
	// Sqrt is the square root.
	Sqrt
)

var funcnames = map[string]Function{
	"sin":   Sin,
	"cos":   Cos,
	"tan":   Tan,
	"log":   Log10,
	"log10": Log10,
	"log₁₀": Log10,
	"ln":    Ln,
	"sqrt":  Sqrt,
	"√":     Sqrt,
}

// LookupFunc finds a function by name. Names are case-sensitive. Besides the
// canonical names, "log₁₀" and "log10" are accepted for Log10 and "√" for
// Sqrt.
func LookupFunc(name string) (Function, bool) {
	f, ok := funcnames[name]
	return f, ok
}

func (f Function) String() string {
	switch f {
	case Sin:
		return "sin"
	case Cos:
		return "cos"
	case Tan:
		return "tan"
	case Log10:
		return "log"
	case Ln:
		return "ln"
	case Sqrt:
		return "sqrt"
	default:
		return "Function(" + strconv.Itoa(int(f)) + ")"
	}
}

// Apply applies the named function to a numeric literal and returns the result
// rounded to the context's decimal places. text may have surrounding
// whitespace and a leading sign, but it must otherwise be a single decimal
// literal; it is never evaluated as an expression.
func (ctx *Context) Apply(name, text string) (*big.Float, error) {
	f, ok := LookupFunc(name)
	if !ok {
		return nil, &FuncError{Name: name}
	}
	x, err := ctx.literal(name, text)
	if err != nil {
		return nil, err
	}
	r := new(big.Float).SetPrec(ctx.prec)
	if err := f.call(ctx, r, x); err != nil {
		return nil, err
	}
	return round(r, r, ctx.places), nil
}

// Apply is a shortcut to apply a function in a new context.
func Apply(name, text string, opts ...ContextOption) (*big.Float, error) {
	return NewContext(opts...).Apply(name, text)
}

// literal parses a signed decimal literal.
func (ctx *Context) literal(name, text string) (*big.Float, error) {
	bad := &ArgumentError{Func: name, Text: text}
	scan := lex(strings.NewReader(text))
	tok, err := scan.next()
	if err != nil {
		return nil, bad
	}
	neg := false
	if tok.kind == tokenOp && (tok.text == "-" || tok.text == "+") {
		neg = tok.text == "-"
		if tok, err = scan.next(); err != nil {
			return nil, bad
		}
	}
	if tok.kind != tokenNum {
		return nil, bad
	}
	if end, err := scan.next(); err != nil || end.kind != tokenEOF {
		return nil, bad
	}
	v, err := ctx.num(tok.text)
	if err != nil {
		return nil, err
	}
	x := new(big.Float).Copy(v)
	if neg {
		x.Neg(x)
	}
	return x, nil
}

// call sets r to f(x). Panics with big.ErrNaN become DomainErrors.
func (f Function) call(ctx *Context, r, x *big.Float) (err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		var nan big.ErrNaN
		if e, ok := p.(error); ok && errors.As(e, &nan) {
			err = &DomainError{X: x, Func: f.String()}
			return
		}
		panic(p)
	}()
	switch f {
	case Sin, Cos, Tan:
		// bigfloat has no trigonometry, so convert to radians at full
		// precision and then use package math.
		rad := bigfloat.Pi(new(big.Float).SetPrec(ctx.prec))
		rad.Mul(rad, x)
		rad.Quo(rad, new(big.Float).SetPrec(ctx.prec).SetInt64(180))
		v, _ := rad.Float64()
		var y float64
		switch f {
		case Sin:
			y = math.Sin(v)
		case Cos:
			y = math.Cos(v)
		case Tan:
			y = math.Tan(v)
		}
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return &DomainError{X: x, Func: f.String()}
		}
		r.SetFloat64(y)
	case Log10:
		if x.Sign() <= 0 {
			return &DomainError{X: x, Func: f.String()}
		}
		r.Set(bigfloat.Log(new(big.Float).SetPrec(ctx.prec), x))
		ten := new(big.Float).SetPrec(ctx.prec).SetInt64(10)
		r.Quo(r, bigfloat.Log(new(big.Float).SetPrec(ctx.prec), ten))
	case Ln:
		if x.Sign() <= 0 {
			return &DomainError{X: x, Func: f.String()}
		}
		r.Set(bigfloat.Log(new(big.Float).SetPrec(ctx.prec), x))
	case Sqrt:
		if x.Sign() < 0 {
			return &DomainError{X: x, Func: f.String()}
		}
		r.Sqrt(x)
	default:
		return &FuncError{Name: f.String()}
	}
	if outOfRange(r) {
		return &DomainError{Func: f.String(), Overflow: true}
	}
	return nil
}

// DomainError is an error returned when an operator or function is applied to
// arguments outside its domain, or when its result is out of range. It matches
// ErrInvalidInput.
type DomainError struct {
	// X is the out-of-domain argument. It is nil for overflows.
	X *big.Float
	// Func is a name identifying the function or operator.
	Func string
	// Overflow is true if the result was too large rather than undefined.
	Overflow bool
}

func (err *DomainError) Error() string {
	if err.Overflow {
		return "result out of range in " + err.Func
	}
	if err.X == nil {
		return "undefined result of " + err.Func
	}
	return err.X.Text('g', 10) + " outside domain of " + err.Func
}

func (err *DomainError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ArgumentError is an error returned when the operand of a function is not a
// single numeric literal. It matches ErrInvalidInput.
type ArgumentError struct {
	// Func is the function name.
	Func string
	// Text is the rejected operand.
	Text string
}

func (err *ArgumentError) Error() string {
	return "cannot apply " + err.Func + " to non-number " + strconv.Quote(err.Text)
}

func (err *ArgumentError) Is(target error) bool {
	return target == ErrInvalidInput
}

// FuncError is an error returned when applying a function that does not
// exist. It matches ErrUnsupported.
type FuncError struct {
	// Name is the unknown function name.
	Name string
}

func (err *FuncError) Error() string {
	return "unknown function " + strconv.Quote(err.Name)
}

func (err *FuncError) Is(target error) bool {
	return target == ErrUnsupported
}
