package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/syntacalc"
	"github.com/zephyrtronium/syntacalc/internal/logger"
	"github.com/zephyrtronium/syntacalc/internal/sheet"
)

func TestRunKeys(t *testing.T) {
	in := strings.NewReader("7 × 6 =\n1 ÷ 0 =\nAC 2 xʸ 8 = History\nClearHistory History\n")
	var out bytes.Buffer
	err := runKeys(in, &out, syntacalc.NewContext(), logger.Discard())
	require.NoError(t, err)
	want := strings.Join([]string{
		"42",
		"Division by Zero",
		"7×6 = 42",
		"2^8 = 256",
		"256",
		"256",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestPrintLines(t *testing.T) {
	lines, err := sheet.Evaluate(strings.NewReader("1+2\n1/0\n"), syntacalc.NewContext())
	require.NoError(t, err)

	var out bytes.Buffer
	failed := printLines(&out, lines, true)
	assert.True(t, failed)
	assert.Equal(t, "((1) + (2)) : 3\n((1) / (0)) : DivisionByZero: division by zero\n", out.String())

	out.Reset()
	failed = printLines(&out, lines[:1], false)
	assert.False(t, failed)
	assert.Equal(t, "3\n", out.String())
}

func TestEvalArgs(t *testing.T) {
	args := []string{"1+2", "# not a comment", "   ", "2^-1"}
	lines := evalArgs(args, syntacalc.NewContext())
	require.Len(t, lines, len(args), "every argument gets one line")

	assert.Equal(t, sheet.Line{No: 1, Expr: "1+2", Value: "3"}, lines[0])
	assert.Equal(t, syntacalc.SyntaxError, syntacalc.KindOf(lines[1].Err))
	assert.Equal(t, syntacalc.SyntaxError, syntacalc.KindOf(lines[2].Err))
	assert.Equal(t, sheet.Line{No: 4, Expr: "2^-1", Value: "0.5"}, lines[3])

	var out bytes.Buffer
	failed := printLines(&out, lines, false)
	assert.True(t, failed)
	assert.Equal(t, 4, strings.Count(out.String(), "\n"))
}
