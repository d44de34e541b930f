package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/pkg/errors"
	"github.com/ternarybob/arbor"

	"github.com/zephyrtronium/syntacalc"
	"github.com/zephyrtronium/syntacalc/internal/config"
	"github.com/zephyrtronium/syntacalc/internal/logger"
	"github.com/zephyrtronium/syntacalc/internal/sheet"
	"github.com/zephyrtronium/syntacalc/internal/shell"
)

func main() {
	var (
		inname, fn, cfgname string
		keys, watch, echo   bool
		prec                uint
		places              int
	)
	flag.StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	flag.StringVar(&fn, "fn", "", "apply a single-operand function (sin, cos, tan, log, ln, sqrt) to each number")
	flag.StringVar(&cfgname, "config", "", "TOML configuration file")
	flag.BoolVar(&keys, "keys", false, "read calculator key presses from stdin")
	flag.BoolVar(&watch, "watch", false, "evaluate the -in file again whenever it changes")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.UintVar(&prec, "p", 0, "precision of calculations in bits (default from config)")
	flag.IntVar(&places, "places", -1, "decimal places of results (default from config)")
	flag.Parse()

	cfg, err := config.Load(cfgname)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if prec != 0 {
		cfg.Calc.Precision = prec
	}
	if places >= 0 {
		cfg.Calc.Places = places
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.SetupLogger(cfg)
	defer logger.Stop()

	calc := syntacalc.NewContext(cfg.ContextOptions()...)
	var failed bool
	switch {
	case keys:
		err = runKeys(os.Stdin, os.Stdout, calc, log)
	case watch:
		err = runWatch(inname, calc, echo)
	case fn != "":
		failed, err = runFunc(fn, calc)
	default:
		failed, err = runExprs(inname, calc, echo)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed")
		logger.Stop()
		os.Exit(1)
	}
	if failed {
		logger.Stop()
		os.Exit(1)
	}
}

// runExprs evaluates each argument, or each line of the input when there are
// no arguments.
func runExprs(inname string, calc *syntacalc.Context, echo bool) (bool, error) {
	failed := false
	if flag.NArg() == 0 || inname != "" {
		in, closer, err := infile(inname)
		if err != nil {
			return false, err
		}
		defer closer()
		lines, err := sheet.Evaluate(in, calc)
		failed = printLines(os.Stdout, lines, echo)
		if err != nil {
			return failed, err
		}
		if flag.NArg() == 0 {
			return failed, nil
		}
	}
	lines := evalArgs(flag.Args(), calc)
	if printLines(os.Stdout, lines, echo) {
		failed = true
	}
	return failed, nil
}

// evalArgs evaluates each argument as a whole expression, so that every
// argument has exactly one result line.
func evalArgs(args []string, calc *syntacalc.Context) []sheet.Line {
	lines := make([]sheet.Line, len(args))
	for i, arg := range args {
		l := sheet.Line{No: i + 1, Expr: arg}
		a, err := syntacalc.ParseString(arg)
		if err != nil {
			l.Err = err
			lines[i] = l
			continue
		}
		r := calc.Eval(a)
		if err := calc.Err(); err != nil {
			l.Err = err
		} else {
			l.Value = calc.Format(r)
		}
		lines[i] = l
	}
	return lines
}

// printLines prints evaluated lines and reports whether any failed.
func printLines(w io.Writer, lines []sheet.Line, echo bool) bool {
	failed := false
	for _, l := range lines {
		if echo {
			if a, err := syntacalc.ParseString(l.Expr); err == nil {
				fmt.Fprintf(w, "%v : ", a)
			}
		}
		if l.Err != nil {
			failed = true
			fmt.Fprintf(w, "%s: %v\n", syntacalc.KindOf(l.Err), l.Err)
			continue
		}
		fmt.Fprintln(w, l.Value)
	}
	return failed
}

// runFunc applies a function to each argument, or to each line of stdin when
// there are no arguments.
func runFunc(fn string, calc *syntacalc.Context) (bool, error) {
	args := flag.Args()
	if len(args) == 0 {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			if s := strings.TrimSpace(sc.Text()); s != "" {
				args = append(args, s)
			}
		}
		if err := sc.Err(); err != nil {
			return false, errors.Wrap(err, "read stdin")
		}
	}
	failed := false
	for _, arg := range args {
		r, err := calc.Apply(fn, arg)
		if err != nil {
			failed = true
			fmt.Printf("%s: %v\n", syntacalc.KindOf(err), err)
			continue
		}
		fmt.Printf("%s(%s) = %s\n", fn, arg, calc.Format(r))
	}
	return failed, nil
}

// runKeys feeds whitespace-separated key presses to a calculator session and
// prints the display after each line.
func runKeys(in io.Reader, out io.Writer, calc *syntacalc.Context, log arbor.ILogger) error {
	s := shell.New(shell.WithContext(calc), shell.WithLogger(log))
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		for _, k := range strings.Fields(sc.Text()) {
			if err := s.Press(k); err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			if k == "History" {
				if _, err := s.History().WriteTo(out); err != nil {
					return err
				}
			}
		}
		fmt.Fprintln(out, s.Display())
	}
	return errors.Wrap(sc.Err(), "read keys")
}

// runWatch evaluates the input file each time it changes until interrupted.
func runWatch(inname string, calc *syntacalc.Context, echo bool) error {
	if inname == "" || inname == "-" {
		return errors.New("-watch needs an -in file")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := sheet.Watch(ctx, inname, calc, func(lines []sheet.Line, err error) {
		fmt.Printf("--- %s\n", inname)
		if err != nil {
			fmt.Println(err)
			return
		}
		printLines(os.Stdout, lines, echo)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func infile(inname string) (io.Reader, func() error, error) {
	if inname == "" || inname == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(inname)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open input")
	}
	return f, f.Close, nil
}
