package syntacalc

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		errs   int
	}{
		// spaces
		{"", []lexToken{{kind: tokenEOF, pos: 1}}, 0},
		{" \t ", []lexToken{{kind: tokenEOF, pos: 4}}, 0},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 2}}, 0},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 11}}, 0},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}, 0},
		{"1.0", []lexToken{{text: "1.0", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 4}}, 0},
		{"-1", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {kind: tokenEOF, pos: 3}}, 0},
		{"1e1", []lexToken{{text: "1e1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 4}}, 0},
		{"1e+1", []lexToken{{text: "1e+1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 5}}, 0},
		{"1e-1", []lexToken{{text: "1e-1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 5}}, 0},
		{"1.0e1", []lexToken{{text: "1.0e1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 6}}, 0},
		{".1", []lexToken{{text: ".1", kind: tokenNum, pos: 1}, {kind: tokenEOF, pos: 3}}, 0},
		{"1e", []lexToken{{pos: 1}, {kind: tokenEOF, pos: 3}}, 1},
		{".", []lexToken{{pos: 1}, {kind: tokenEOF, pos: 2}}, 1},
		{"1a", []lexToken{{pos: 1}, {kind: tokenEOF, pos: 3}}, 1},
		{"1.1.1", []lexToken{{pos: 1}, {text: "1", kind: tokenNum, pos: 5}, {kind: tokenEOF, pos: 6}}, 1},
		// operators
		{"1+0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}, 0},
		{"1*0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "*", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}, 0},
		{"1×0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "*", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}, 0},
		{"1÷0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "/", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}, 0},
		{"1**0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "^", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 4}, {kind: tokenEOF, pos: 5}}, 0},
		{"1*", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "*", kind: tokenOp, pos: 2}, {kind: tokenEOF, pos: 3}}, 0},
		{"2^3", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "^", kind: tokenOp, pos: 2}, {text: "3", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}, 0},
		// brackets
		{"(1)", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {text: ")", kind: tokenClose, pos: 3}, {kind: tokenEOF, pos: 4}}, 0},
		{"[1]", []lexToken{{pos: 1}, {pos: 2}, {kind: tokenEOF, pos: 4}}, 2},
		// names
		{"os", []lexToken{{text: "os", kind: tokenIdent, pos: 1}, {kind: tokenEOF, pos: 3}}, 0},
		{"import os", []lexToken{{text: "import", kind: tokenIdent, pos: 1}, {text: "os", kind: tokenIdent, pos: 8}, {kind: tokenEOF, pos: 10}}, 0},
		{"sin(", []lexToken{{text: "sin", kind: tokenIdent, pos: 1}, {text: "(", kind: tokenOpen, pos: 4}, {kind: tokenEOF, pos: 5}}, 0},
		// erroneous symbols
		{"$", []lexToken{{pos: 1}, {kind: tokenEOF, pos: 2}}, 1},
		{"$$", []lexToken{{pos: 1}, {pos: 2}, {kind: tokenEOF, pos: 3}}, 2},
		{"2%3", []lexToken{{pos: 1}, {text: "3", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}, 1},
		{"a=1", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {pos: 2}, {text: "1", kind: tokenNum, pos: 3}, {kind: tokenEOF, pos: 4}}, 1},
	}
	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		for _, want := range c.tokens {
			got, err := scan.next()
			if err == io.EOF {
				t.Errorf("scanning %q: expected token %v but got EOF", c.src, want)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
			if err != nil {
				if c.errs > 0 {
					c.errs--
					continue
				}
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
			}
		}
		for got, err := scan.next(); err != io.EOF; got, err = scan.next() {
			t.Errorf("scanning %q: extra token %v with error: %v", c.src, got, err)
		}
		if c.errs > 0 {
			t.Errorf("scanning %q: not enough errors", c.src)
		}
	}
}

func TestLexErrorIsSyntax(t *testing.T) {
	scan := lex(strings.NewReader("@"))
	_, err := scan.next()
	if err == nil {
		t.Fatal("no error lexing @")
	}
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("error was %#v, not LexError", err)
	}
	if le.Text != "@" || le.Col != 2 {
		t.Errorf("wrong error details: %+v", le)
	}
	if KindOf(err) != SyntaxError {
		t.Errorf("wrong kind %v", KindOf(err))
	}
}

func TestKindStrings(t *testing.T) {
	cases := []struct {
		k    fmt.Stringer
		want string
	}{
		{tokenNone, "None"},
		{tokenEOF, "EOF"},
		{tokenIdent, "Ident"},
		{tokenClose, "Close"},
		{tokenKind(7), "tokenKind(7)"},
		{nodeNum, "Num"},
		{nodePow, "Pow"},
		{nodeKind(-1), "nodeKind(-1)"},
		{nodeKind(100), "nodeKind(100)"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("wrong name: want %q, got %q", c.want, got)
		}
	}
}
