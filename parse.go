package syntacalc

import (
	"io"
	"strings"
)

// Expr = num | Neg | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Neg = '-' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr
// Div = Expr '/' Expr | Expr '÷' Expr
// Pow = Expr '^' Expr | Expr '**' Expr
//
// Neg binds tighter than Pow, which binds tighter than Mul and Div, which bind
// tighter than Add and Sub. Pow is right-associative; the others are
// left-associative. A Neg may not directly follow another Neg.

// Expr is a parsed expression that can be evaluated with a context. An Expr
// is never modified after parsing, so it may be evaluated any number of times.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse parses an expression so it can be evaluated with a context. Parse
// consumes src to EOF.
func Parse(src io.RuneScanner) (*Expr, error) {
	scan := lex(src)
	n, err := parseterm(scan, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	if n == nil {
		// parselhs only returns no node on a close bracket.
		return nil, &BracketError{Col: tok.pos}
	}
	if tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok)
	}
	return &Expr{n: n}, nil
}

// ParseString is a shortcut to parse a string expression.
func ParseString(src string) (*Expr, error) {
	return Parse(strings.NewReader(src))
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression ended by a close bracket, the result is nil with no error;
// callers must create an error.
func parseterm(scan *lexer, until operator) (*node, error) {
	n, err := parselhs(scan, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum, tokenOpen:
			// Implicit multiplication would be the natural reading, but
			// "2(3)" looks too much like a call to accept.
			return nil, &JuxtapositionError{Col: tok.pos, Text: tok.text}
		case tokenIdent:
			return nil, &NameError{Col: tok.pos, Name: tok.text}
		case tokenOp:
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenClose, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("syntacalc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary,
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		n = &node{kind: nodeNum, text: tok.text}
	case tokenIdent:
		return nil, &NameError{Col: tok.pos, Name: tok.text}
	case tokenOp:
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		// Only one unary operator may lead an operand, so --x and -+x are
		// both rejected here.
		nx, err := scan.next()
		if err != nil {
			return nil, err
		}
		if nx.kind == tokenOp {
			return nil, &OperatorError{Col: nx.pos, Operator: nx.text, Unary: true}
		}
		scan.push(nx)
		rhs, err := parseterm(scan, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := scan.must()
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = &node{kind: prec.op, left: rhs}
	case tokenOpen:
		rhs, err := parseterm(scan, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, &BracketError{Col: tok.pos, Open: true}
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
	case tokenClose:
		// Let the caller decide what to do.
		scan.push(tok)
		return nil, nil
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("syntacalc: unknown token: " + tok.String())
	}
	return n, nil
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of the whole expression.
func itShouldNotHaveEndedThisWay(tok lexToken) error {
	switch tok.kind {
	case tokenClose:
		return &BracketError{Col: tok.pos}
	default:
		panic("syntacalc: it really should not have ended this way: " + tok.String())
	}
}

// String creates a string representation of the parsed expression with every
// term in parentheses. The result parses to the same expression.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone. The lexer has already
// canonicalized × ÷ and **.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "-":
		return operator{20, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
