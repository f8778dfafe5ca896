package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"compendia/internal/matching"
)

// ErrAborted is returned when the user quits at a prompt. Nothing is written.
var ErrAborted = errors.New("aborted by user; no output written")

type promptLine struct {
	text string
	err  error
}

// consoleDecider reads answers on a background goroutine so a cancelled
// context unblocks a waiting prompt. Lines typed after cancellation are
// never interpreted.
type consoleDecider struct {
	in    *bufio.Reader
	out   io.Writer
	once  sync.Once
	lines chan promptLine
}

func newConsoleDecider(in io.Reader, out io.Writer) *consoleDecider {
	return &consoleDecider{
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan promptLine, 1),
	}
}

func (d *consoleDecider) readLines() {
	defer close(d.lines)
	for {
		text, err := d.in.ReadString('\n')
		d.lines <- promptLine{text: text, err: err}
		if err != nil {
			return
		}
	}
}

// next waits for one line of input or for ctx to end. ok is false once input
// is exhausted.
func (d *consoleDecider) next(ctx context.Context) (line promptLine, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return promptLine{}, false, err
	}
	d.once.Do(func() { go d.readLines() })
	select {
	case <-ctx.Done():
		return promptLine{}, false, ctx.Err()
	case line, ok = <-d.lines:
		return line, ok, nil
	}
}

// Decide asks "Use this file? y/n/s/q" until it gets a valid answer. An empty
// answer accepts; end of input aborts.
func (d *consoleDecider) Decide(ctx context.Context, prompt matching.Prompt) (matching.Answer, error) {
	fmt.Fprintf(d.out, "Found potential %s (%d) for '%s': %s\n", prompt.Role, prompt.Score, prompt.Entry, prompt.Path)
	fmt.Fprint(d.out, "Use this file? y/n/s/q (s: skip all remaining questions, default: y): ")
	for {
		line, ok, err := d.next(ctx)
		if err != nil {
			fmt.Fprintln(d.out)
			return matching.AnswerReject, err
		}
		if !ok {
			fmt.Fprintln(d.out)
			return matching.AnswerReject, ErrAborted
		}
		if line.err != nil {
			if !errors.Is(line.err, io.EOF) {
				return matching.AnswerReject, fmt.Errorf("read answer: %w", line.err)
			}
			if strings.TrimSpace(line.text) == "" {
				fmt.Fprintln(d.out)
				return matching.AnswerReject, ErrAborted
			}
		}
		choice := strings.ToLower(strings.TrimSpace(line.text))
		switch choice {
		case "", "y", "yes":
			return matching.AnswerAccept, nil
		case "n", "no":
			return matching.AnswerReject, nil
		case "s", "skip":
			return matching.AnswerSkipAll, nil
		case "q", "quit":
			return matching.AnswerReject, ErrAborted
		}
		fmt.Fprintf(d.out, "Invalid input `%s`, please use `y`, `n`, `s` or `q` (default: `y`): ", choice)
	}
}
