// Package sheet evaluates files of expressions, one per line, and can watch
// such a file to evaluate it again whenever it changes.
package sheet

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/zephyrtronium/syntacalc"
	"github.com/zephyrtronium/syntacalc/internal/logger"
)

// Line is the outcome of one expression line.
type Line struct {
	// No is the 1-based line number in the input.
	No int
	// Expr is the expression text without surrounding whitespace.
	Expr string
	// Value is the formatted result. It is empty if Err is not nil.
	Value string
	// Err is the evaluation error, if any.
	Err error
}

// Evaluate evaluates every expression line of r with ctx. Blank lines and
// lines beginning with # are skipped. Evaluation errors are reported in the
// returned lines; the error result is only for failures reading r.
func Evaluate(r io.Reader, ctx *syntacalc.Context) ([]Line, error) {
	var lines []Line
	sc := bufio.NewScanner(r)
	no := 0
	for sc.Scan() {
		no++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		l := Line{No: no, Expr: text}
		a, err := syntacalc.ParseString(text)
		if err != nil {
			l.Err = err
			lines = append(lines, l)
			continue
		}
		v := ctx.Eval(a)
		if err := ctx.Err(); err != nil {
			l.Err = err
		} else {
			l.Value = ctx.Format(v)
		}
		lines = append(lines, l)
	}
	if err := sc.Err(); err != nil {
		return lines, errors.Wrapf(err, "read line %d", no+1)
	}
	return lines, nil
}

// EvaluateFile evaluates the expression lines of the file at path.
func EvaluateFile(path string, ctx *syntacalc.Context) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open sheet")
	}
	defer f.Close()
	lines, err := Evaluate(f, ctx)
	if err != nil {
		return lines, errors.Wrapf(err, "evaluate %s", path)
	}
	return lines, nil
}

// debounce is how long the file must be quiet before it is evaluated again.
const debounce = 50 * time.Millisecond

// Watch evaluates the file at path, passes the results to fn, and does so
// again each time the file is written, created, or renamed, until ctx is
// done. fn is called on the goroutine that called Watch. The parent directory
// is watched rather than the file itself so that editors which replace the
// file on save are followed.
func Watch(ctx context.Context, path string, calc *syntacalc.Context, fn func([]Line, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer w.Close()

	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "watch %s", filepath.Dir(path))
	}
	log := logger.GetLogger()

	fn(EvaluateFile(path, calc))

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug().Str("path", path).Str("op", event.Op.String()).Msg("Sheet changed")
			timer.Reset(debounce)

		case <-timer.C:
			fn(EvaluateFile(path, calc))

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("path", path).Msg("Watcher error")
		}
	}
}
