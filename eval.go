package syntacalc

import (
	"errors"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Context is a context for evaluating expressions and applying functions. It
// is not safe to use a Context concurrently.
type Context struct {
	stack  []*big.Float
	nums   map[string]*big.Float
	prec   uint
	places int
	err    error
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is DefaultPrec bits. If no places are given, results are rounded to
// DefaultPlaces decimal places.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{
		nums:   make(map[string]*big.Float),
		prec:   DefaultPrec,
		places: DefaultPlaces,
	}
	ctx.apply(opts)
	return &ctx
}

// Eval evaluates an expression and returns the result rounded to the
// context's decimal places. If an error occurs, e.g. a division by zero, then
// the result is nil and ctx.Err returns the error.
//
// Before any arithmetic happens, Eval checks that every node of the expression
// is a literal or an approved operator. An expression which fails the check is
// rejected with an error matching ErrUnsupported and is never evaluated.
func (ctx *Context) Eval(e *Expr) *big.Float {
	if len(ctx.stack) == 1 {
		// The previous result belongs to the caller now.
		ctx.stack[0] = new(big.Float).SetPrec(ctx.prec)
	}
	ctx.stack = ctx.stack[:0]
	ctx.err = nil
	if e == nil {
		ctx.err = &UnsupportedError{Node: "<nil>"}
		return nil
	}
	if err := e.n.whitelist(); err != nil {
		ctx.err = err
		return nil
	}
	if err := ctx.evalroot(e.n); err != nil {
		ctx.stack = ctx.stack[:0]
		ctx.err = err
		return nil
	}
	r := ctx.Result()
	round(r, r, ctx.places)
	return r
}

// evalroot evaluates a whitelisted tree, converting any NaN panic from package
// big into a DomainError.
func (ctx *Context) evalroot(n *node) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var nan big.ErrNaN
		if e, ok := r.(error); ok && errors.As(e, &nan) {
			err = &DomainError{Func: n.kind.String()}
			return
		}
		panic(r)
	}()
	return n.eval(ctx)
}

// Result returns the result obtained after evaluating an expression. Panics if
// ctx has not been used to evaluate an expression. Returns nil if an error
// occurred during evaluation.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("syntacalc: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("syntacalc: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
}

// Err returns the error that occurred while evaluating the last expression
// with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Places returns the number of decimal places to which results are rounded.
func (ctx *Context) Places() int {
	return ctx.places
}

// Format formats x as a decimal string rounded to the context's places.
func (ctx *Context) Format(x *big.Float) string {
	return Format(x, ctx.places)
}

// Clone creates a copy of a context and applies options to it. The returned
// context has no Result and is safe to use to evaluate an expression.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack:  make([]*big.Float, 0, cap(ctx.stack)),
		nums:   make(map[string]*big.Float, len(ctx.nums)),
		prec:   ctx.prec,
		places: ctx.places,
	}
	n.apply(opts)
	// Cached literals are only valid at the precision they were parsed with.
	if n.prec == ctx.prec {
		for k, v := range ctx.nums {
			n.nums[k] = v
		}
	}
	return &n
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text. Cached numbers must not be
// modified.
func (ctx *Context) num(s string) (*big.Float, error) {
	if r := ctx.nums[s]; r != nil {
		return r, nil
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		return nil, &DomainError{Func: "literal " + s, Overflow: true}
	default:
		// The lexer only produces valid decimal literals.
		panic("syntacalc: invalid number: " + s + " (" + err.Error() + ")")
	}
	if outOfRange(r) {
		return nil, &DomainError{Func: "literal " + s, Overflow: true}
	}
	ctx.nums[s] = r
	return r, nil
}

// eval pushes the node's value to the context's stack. The tree must already
// have passed whitelist.
func (n *node) eval(ctx *Context) error {
	switch n.kind {
	case nodeNum:
		v, err := ctx.num(n.text)
		if err != nil {
			return err
		}
		ctx.push().Set(v)
		return nil
	case nodeNeg:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		v.Neg(v)
		return nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		// Binary operators share operand evaluation; see below.
	default:
		return &UnsupportedError{Node: n.kind.String()}
	}
	if err := n.left.eval(ctx); err != nil {
		return err
	}
	if err := n.right.eval(ctx); err != nil {
		return err
	}
	r := ctx.pop()
	l := ctx.top()
	switch n.kind {
	case nodeAdd:
		l.Add(l, r)
	case nodeSub:
		l.Sub(l, r)
	case nodeMul:
		l.Mul(l, r)
	case nodeDiv:
		if r.Sign() == 0 {
			return &DivisionError{Op: "/"}
		}
		l.Quo(l, r)
	case nodePow:
		if err := pow(l, l, r); err != nil {
			return err
		}
	}
	if outOfRange(l) {
		return &DomainError{Func: n.kind.String(), Overflow: true}
	}
	return nil
}

// maxExp is the largest binary exponent of a result. Anything larger would
// print as tens of thousands of digits.
const maxExp = 1 << 16

// outOfRange reports whether x overflowed or is too large to format.
func outOfRange(x *big.Float) bool {
	return x.IsInf() || x.MantExp(nil) > maxExp
}

// maxSquaring is the largest integer exponent computed by repeated squaring.
// Larger exponents go through bigfloat.Pow.
const maxSquaring = 1 << 16

// pow sets z to x^y. z may alias x.
func pow(z, x, y *big.Float) error {
	switch {
	case y.Sign() == 0:
		z.SetInt64(1)
		return nil
	case x.Sign() == 0:
		if y.Sign() < 0 {
			return &DivisionError{Op: "^"}
		}
		z.SetInt64(0)
		return nil
	}
	if !y.IsInt() && x.Signbit() {
		return &DomainError{X: new(big.Float).Copy(x), Func: "^"}
	}
	if n, acc := y.Int64(); y.IsInt() && acc == big.Exact && -maxSquaring <= n && n <= maxSquaring {
		powi(z, x, n)
		return nil
	}
	// Work on |x| and restore the sign from the parity of an integer exponent.
	odd := false
	if x.Signbit() {
		i, _ := y.Int(nil)
		odd = i.Bit(0) == 1
	}
	a := new(big.Float).SetPrec(z.Prec()).Abs(x)
	if a.Cmp(big.NewFloat(1)) == 0 {
		z.SetInt64(1)
	} else {
		// Estimate the binary exponent of the result so that bigfloat never
		// works on values we would reject or round to zero anyway.
		m := new(big.Float)
		e := x.MantExp(m)
		mf, _ := m.Float64()
		yf, _ := y.Float64()
		switch est := (float64(e) + math.Log2(math.Abs(mf))) * yf; {
		case est > maxExp:
			return &DomainError{Func: "^", Overflow: true}
		case est < -maxExp:
			z.SetInt64(0)
			return nil
		}
		// Pow may return a new value instead of writing to its receiver.
		z.Set(bigfloat.Pow(new(big.Float).SetPrec(z.Prec()), a, y))
	}
	if odd {
		z.Neg(z)
	}
	return nil
}

// powi sets z to x^n by repeated squaring. z may alias x.
func powi(z, x *big.Float, n int64) *big.Float {
	neg := n < 0
	if neg {
		n = -n
	}
	b := new(big.Float).SetPrec(z.Prec()).Set(x)
	z.SetInt64(1)
	for n > 0 {
		if n&1 == 1 {
			z.Mul(z, b)
		}
		n >>= 1
		if n > 0 {
			b.Mul(b, b)
		}
	}
	if neg {
		one := new(big.Float).SetPrec(z.Prec()).SetInt64(1)
		z.Quo(one, z)
	}
	return z
}

// Evaluate is a shortcut to parse an expression and return its result.
func Evaluate(src io.RuneScanner, opts ...ContextOption) (*big.Float, error) {
	ctx := NewContext(opts...)
	a, err := Parse(src)
	if err != nil {
		return nil, err
	}
	ctx.Eval(a)
	return ctx.Result(), ctx.Err()
}

// EvaluateString is a shortcut to parse and evaluate a string expression.
func EvaluateString(src string, opts ...ContextOption) (*big.Float, error) {
	return Evaluate(strings.NewReader(src), opts...)
}
