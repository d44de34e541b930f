package shell

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/syntacalc"
	"github.com/zephyrtronium/syntacalc/internal/history"
	"github.com/zephyrtronium/syntacalc/internal/logger"
)

func newSession(opts ...Option) *Session {
	return New(append([]Option{WithLogger(logger.Discard())}, opts...)...)
}

func press(t *testing.T, s *Session, keys ...string) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, s.Press(k), "pressing %q", k)
	}
}

func TestSession_Keys(t *testing.T) {
	cases := []struct {
		name    string
		keys    []string
		display string
		history []string
	}{
		{"start", nil, "0", nil},
		{"digit-replaces-zero", []string{"7"}, "7", nil},
		{"digits", []string{"1", "2", "3"}, "123", nil},
		{"dot-keeps-zero", []string{".", "5"}, "0.5", nil},
		{"multiply", []string{"7", "×", "6", "="}, "42", []string{"7×6 = 42"}},
		{"multiply-alias", []string{"7", "*", "6", "="}, "42", []string{"7×6 = 42"}},
		{"divide", []string{"9", "÷", "4", "="}, "2.25", []string{"9÷4 = 2.25"}},
		{"power", []string{"2", "xʸ", "1", "0", "="}, "1024", []string{"2^10 = 1024"}},
		{"no-double-operator", []string{"2", "+", "×", "-", "3"}, "2+3", nil},
		{"no-power-after-operator", []string{"2", "+", "xʸ"}, "2+", nil},
		{"no-double-power", []string{"2", "^", "^"}, "2^", nil},
		{"operator-after-power", []string{"2", "^", "-", "1", "="}, "0.5", []string{"2^-1 = 0.5"}},
		{"parens", []string{"(", "1", "+", "2", ")", "×", "3", "="}, "9", []string{"(1+2)×3 = 9"}},
		{"all-clear", []string{"1", "2", "AC"}, "0", nil},
		{"clear-last", []string{"1", "2", "C"}, "1", nil},
		{"clear-one", []string{"5", "C"}, "0", nil},
		{"clear-rune", []string{"2", "÷", "C"}, "2", nil},
		{"sign", []string{"5", "±"}, "-5", nil},
		{"sign-twice", []string{"5", "±", "±"}, "5", nil},
		{"sign-zero", []string{"±"}, "0", nil},
		{"chain", []string{"2", "+", "3", "=", "×", "4", "="}, "20", []string{"2+3 = 5", "5×4 = 20"}},
		{"sin", []string{"3", "0", "sin"}, "0.5", []string{"sin(30) = 0.5"}},
		{"sqrt", []string{"1", "6", "√"}, "4", []string{"√(16) = 4"}},
		{"sqrt-alias", []string{"1", "6", "sqrt"}, "4", []string{"√(16) = 4"}},
		{"log", []string{"1", "0", "0", "0", "log₁₀"}, "3", []string{"log₁₀(1000) = 3"}},
		{"ln-negative", []string{"5", "±", "ln"}, MsgInvalidInput, nil},
		{"func-on-expression", []string{"1", "+", "2", "sin"}, MsgInvalidInput, nil},
		{"division-by-zero", []string{"1", "÷", "0", "="}, MsgDivisionByZero, nil},
		{"syntax-error", []string{"2", "+", "="}, MsgError, nil},
		{"bracket-error", []string{"(", "2", "="}, MsgError, nil},
		{"domain-error", []string{"(", "-", "8", ")", "^", "0", ".", "5", "="}, MsgError, nil},
		{"fresh-after-error", []string{"1", "÷", "0", "=", "5"}, "5", nil},
		{"operator-after-error", []string{"2", "+", "=", "+"}, "0+", nil},
		{"equals-after-error", []string{"1", "÷", "0", "=", "="}, MsgDivisionByZero, nil},
		{"clear-after-error", []string{"2", "+", "=", "C"}, "0", nil},
		{"history-key", []string{"4", "History"}, "4", nil},
		{"clear-history", []string{"1", "+", "1", "=", "Clear History"}, "2", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newSession()
			press(t, s, c.keys...)
			assert.Equal(t, c.display, s.Display())
			if c.history == nil {
				assert.Equal(t, 0, s.History().Len())
			} else {
				assert.Equal(t, c.history, s.History().List())
			}
		})
	}
}

func TestSession_Failed(t *testing.T) {
	s := newSession()
	press(t, s, "1", "÷", "0", "=")
	assert.True(t, s.Failed())
	press(t, s, "AC")
	assert.False(t, s.Failed())
	assert.Equal(t, "0", s.Display())
}

func TestSession_UnknownKey(t *testing.T) {
	s := newSession()
	press(t, s, "4")
	err := s.Press("exp")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKey))
	assert.Contains(t, err.Error(), `"exp"`)
	assert.Equal(t, "4", s.Display(), "an unknown key should not change the display")
}

func TestSession_Options(t *testing.T) {
	h := history.New()
	h.Append("earlier = 1")
	s := newSession(
		WithHistory(h),
		WithContext(syntacalc.NewContext(syntacalc.Places(2))),
	)
	press(t, s, "2", "÷", "3", "=")
	assert.Equal(t, "0.67", s.Display())
	assert.Equal(t, []string{"earlier = 1", "2÷3 = 0.67"}, h.List())
	assert.Same(t, h, s.History())
}
