// Package shell implements the button logic of an interactive calculator.
// A Session holds the display text and the history, and Press applies one
// button at a time the way a pocket calculator does.
package shell

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/ternarybob/arbor"

	"github.com/zephyrtronium/syntacalc"
	"github.com/zephyrtronium/syntacalc/internal/history"
	"github.com/zephyrtronium/syntacalc/internal/logger"
)

// Messages shown on the display in place of a result.
const (
	MsgDivisionByZero = "Division by Zero"
	MsgError          = "Error"
	MsgInvalidInput   = "Invalid Input"
)

// ErrUnknownKey is returned when pressing a key that is not a calculator
// button.
var ErrUnknownKey = errors.New("unknown key")

// Session is one calculator session. It is not safe for concurrent use.
type Session struct {
	display string
	// failed is set while the display shows a message instead of input.
	failed bool

	calc *syntacalc.Context
	hist *history.History
	log  arbor.ILogger
}

// Option configures a Session.
type Option func(*Session)

// WithContext sets the evaluation context. The default is a new context with
// default precision and places.
func WithContext(ctx *syntacalc.Context) Option {
	return func(s *Session) {
		s.calc = ctx
	}
}

// WithHistory sets the history that calculations are recorded in.
func WithHistory(h *history.History) Option {
	return func(s *Session) {
		s.hist = h
	}
}

// WithLogger sets the logger. The default is the global logger.
func WithLogger(l arbor.ILogger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// New creates a session showing 0.
func New(opts ...Option) *Session {
	s := &Session{display: "0"}
	for _, opt := range opts {
		opt(s)
	}
	if s.calc == nil {
		s.calc = syntacalc.NewContext()
	}
	if s.hist == nil {
		s.hist = history.New()
	}
	if s.log == nil {
		s.log = logger.GetLogger()
	}
	return s
}

// Display returns the current display text.
func (s *Session) Display() string {
	return s.display
}

// History returns the session's history.
func (s *Session) History() *history.History {
	return s.hist
}

// Failed reports whether the display shows an error message.
func (s *Session) Failed() bool {
	return s.failed
}

// Press applies a button to the session. Keys are the labels of the buttons:
// digits, ".", "(", ")", "+", "-", "×", "÷", "xʸ", "±", "AC", "C", "=",
// "sin", "cos", "tan", "log₁₀", "ln", "√", "History", and "Clear History".
// "*", "/", "^", "log", "sqrt", and "ClearHistory" are accepted as aliases.
// Calculation failures are shown on the display, not returned; the only
// error is for a key that is not a button.
func (s *Session) Press(key string) error {
	s.log.Debug().Str("key", key).Str("display", s.display).Msg("Key pressed")
	switch key {
	case "History":
		return nil
	case "Clear History", "ClearHistory":
		s.hist.Clear()
		return nil
	case "=":
		if !s.failed {
			s.evaluate()
		}
		return nil
	}

	k, ok := canonicalKey(key)
	if !ok {
		return errors.Wrapf(ErrUnknownKey, "key %q", key)
	}
	if s.failed {
		// Editing starts over once a message is shown.
		s.display = "0"
		s.failed = false
	}
	switch {
	case k == "AC":
		s.display = "0"
	case k == "C":
		if utf8.RuneCountInString(s.display) > 1 {
			_, n := utf8.DecodeLastRuneInString(s.display)
			s.display = s.display[:len(s.display)-n]
		} else {
			s.display = "0"
		}
	case len(k) == 1 && strings.Contains("0123456789.()", k):
		if s.display == "0" && k != "." {
			s.display = k
		} else {
			s.display += k
		}
	case k == "+", k == "-", k == "×", k == "÷":
		if !s.endsWith("+-×÷") {
			s.display += k
		}
	case k == "^":
		if !s.endsWith("+-×÷^") {
			s.display += k
		}
	case k == "±":
		switch {
		case s.display == "0":
		case strings.HasPrefix(s.display, "-"):
			s.display = s.display[1:]
		default:
			s.display = "-" + s.display
		}
	default:
		s.apply(k)
	}
	return nil
}

// canonicalKey maps aliases to button labels and reports whether key is a
// button that edits the display.
func canonicalKey(key string) (string, bool) {
	switch key {
	case "*":
		return "×", true
	case "/":
		return "÷", true
	case "xʸ":
		return "^", true
	case "log", "log10":
		return "log₁₀", true
	case "sqrt":
		return "√", true
	case "AC", "C", "+", "-", "×", "÷", "^", "±",
		"sin", "cos", "tan", "log₁₀", "ln", "√",
		"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".", "(", ")":
		return key, true
	default:
		return "", false
	}
}

func (s *Session) endsWith(runes string) bool {
	r, _ := utf8.DecodeLastRuneInString(s.display)
	return strings.ContainsRune(runes, r)
}

// evaluate replaces the display with the value of the expression on it.
func (s *Session) evaluate() {
	expr := s.display
	r, err := s.eval(expr)
	if err != nil {
		s.log.Warn().Err(err).Str("expr", expr).Str("kind", syntacalc.KindOf(err).String()).Msg("Evaluation failed")
		if syntacalc.KindOf(err) == syntacalc.DivisionByZero {
			s.fail(MsgDivisionByZero)
		} else {
			s.fail(MsgError)
		}
		return
	}
	s.hist.Append(history.Line(expr, r))
	s.display = r
}

func (s *Session) eval(expr string) (string, error) {
	a, err := syntacalc.ParseString(expr)
	if err != nil {
		return "", err
	}
	r := s.calc.Eval(a)
	if err := s.calc.Err(); err != nil {
		return "", err
	}
	return s.calc.Format(r), nil
}

// apply replaces the display with a function of the number on it.
func (s *Session) apply(fn string) {
	arg := s.display
	r, err := s.calc.Apply(fn, arg)
	if err != nil {
		s.log.Warn().Err(err).Str("func", fn).Str("arg", arg).Msg("Function failed")
		s.fail(MsgInvalidInput)
		return
	}
	res := s.calc.Format(r)
	s.hist.Append(history.CallLine(fn, arg, res))
	s.display = res
}

func (s *Session) fail(msg string) {
	s.display = msg
	s.failed = true
}
