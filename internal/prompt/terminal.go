// Package prompt answers session requests interactively from a line-based
// reader such as a terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rcliao/nvr/internal/session"
)

// ErrClosed is returned when the input ends before a question is answered.
var ErrClosed = errors.New("input closed")

// Terminal asks questions on w and reads answers line by line from r.
//
// Reads happen on a background goroutine so a pending question can be
// abandoned when the context is cancelled, e.g. on Ctrl-C.
type Terminal struct {
	out   io.Writer
	lines chan string
	errc  chan error
}

// NewTerminal returns a Terminal reading from r and writing to w.
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	t := &Terminal{
		out:   w,
		lines: make(chan string),
		errc:  make(chan error, 1),
	}
	go t.read(r)
	return t
}

func (t *Terminal) read(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		t.lines <- sc.Text()
	}
	if err := sc.Err(); err != nil {
		t.errc <- err
	}
	close(t.lines)
}

// ReadLine prints label and waits for one line of input.
func (t *Terminal) ReadLine(ctx context.Context, label string) (string, error) {
	fmt.Fprint(t.out, label)
	select {
	case <-ctx.Done():
		fmt.Fprintln(t.out)
		return "", ctx.Err()
	case line, ok := <-t.lines:
		if !ok {
			select {
			case err := <-t.errc:
				return "", fmt.Errorf("read input: %w", err)
			default:
				return "", ErrClosed
			}
		}
		return strings.TrimSpace(line), nil
	}
}

// Ask implements session.Asker.
func (t *Terminal) Ask(ctx context.Context, req session.Request) (session.Response, error) {
	switch req.Kind {
	case session.KindNumber:
		n, err := t.Number(ctx, req)
		return session.Response{Number: n}, err
	case session.KindYesNo:
		line, err := t.ReadLine(ctx, req.Label+" (y/n): ")
		return session.Response{Yes: IsYes(line)}, err
	case session.KindChoice:
		fmt.Fprintf(t.out, "\n%s\n", req.Label)
		for i, o := range req.Options {
			fmt.Fprintf(t.out, "  %d. %s - %s\n", i+1, o.Label, o.Desc)
		}
		line, err := t.ReadLine(ctx, fmt.Sprintf("Choose (1-%d): ", len(req.Options)))
		return session.Response{Text: line}, err
	default:
		line, err := t.ReadLine(ctx, req.Label+": ")
		return session.Response{Text: line}, err
	}
}

// Number asks until the answer parses and lies within [req.Min, req.Max].
// A blank answer counts as zero.
func (t *Terminal) Number(ctx context.Context, req session.Request) (float64, error) {
	if req.Hint != "" {
		fmt.Fprintf(t.out, "\n%s\n", req.Label)
	}
	label := fmt.Sprintf("%s (%s-%s): ", labelFor(req), formatBound(req.Min), formatBound(req.Max))
	for {
		line, err := t.ReadLine(ctx, label)
		if err != nil {
			return 0, err
		}
		n, err := ParseNumber(line, req.Min, req.Max)
		if err == nil {
			return n, nil
		}
		fmt.Fprintf(t.out, "⚠️  %v\n", err)
	}
}

func labelFor(req session.Request) string {
	if req.Hint != "" {
		return "   " + req.Hint
	}
	return req.Label
}

// ParseNumber validates one numeric answer. Blank input is zero.
func ParseNumber(s string, min, max float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) {
		return 0, fmt.Errorf("please enter a valid number")
	}
	if n < min || n > max {
		return 0, fmt.Errorf("please enter a number between %s and %s", formatBound(min), formatBound(max))
	}
	return n, nil
}

// IsYes reports whether a yes/no answer is affirmative. Anything other than
// y or yes is no.
func IsYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
