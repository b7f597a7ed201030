package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/cwbudde/gema/dsp/effects/stereodelay"
)

var errQuit = errors.New("quit")

const outputPollInterval = 250 * time.Millisecond

// errReporter is the part of the audio output the session watches.
type errReporter interface {
	Err() error
}

// runSession reads commands from in until quit, end of input followed by
// cancellation of ctx, or an output error. The line reader goroutine stays
// blocked on in after the session ends.
func runSession(ctx context.Context, e *stereodelay.Engine, out errReporter, in io.Reader, w io.Writer) error {
	g, ctx := errgroup.WithContext(ctx)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	g.Go(func() error {
		return watchOutput(ctx, out)
	})
	g.Go(func() error {
		return readCommands(ctx, e, lines, w, isTerminal(in))
	})
	return g.Wait()
}

func watchOutput(ctx context.Context, out errReporter) error {
	ticker := time.NewTicker(outputPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := out.Err(); err != nil {
				return fmt.Errorf("audio output: %w", err)
			}
		}
	}
}

func readCommands(ctx context.Context, e *stereodelay.Engine, lines <-chan string, w io.Writer, prompt bool) error {
	for {
		if prompt {
			fmt.Fprint(w, "> ")
		}
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := execute(e, line, w); err != nil {
				if errors.Is(err, errQuit) {
					return err
				}
				fmt.Fprintf(w, "error: %v\n", err)
			}
		}
	}
}

// execute runs one command line against e.
func execute(e *stereodelay.Engine, line string, w io.Writer) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "set":
		if len(fields) != 3 {
			return errors.New("usage: set <param> <value>")
		}
		p, ok := stereodelay.ParseParam(fields[1])
		if !ok {
			return fmt.Errorf("unknown parameter %q", fields[1])
		}
		v, err := parseValue(p, fields[2])
		if err != nil {
			return err
		}
		e.SetParameter(p, v)
		fmt.Fprintf(w, "%s = %s\n", stereodelay.Name(p), e.ParameterDisplay(p))
	case "get":
		if len(fields) != 2 {
			return errors.New("usage: get <param>")
		}
		p, ok := stereodelay.ParseParam(fields[1])
		if !ok {
			return fmt.Errorf("unknown parameter %q", fields[1])
		}
		fmt.Fprintf(w, "%s = %.3f (%s)\n", stereodelay.Name(p), e.Parameter(p), e.ParameterDisplay(p))
	case "list", "ls":
		return printParams(w, e)
	case "help", "?":
		printHelp(w)
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", fields[0])
	}
	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  set <param> <value>   value in [0,1], on/off, 1/8T, 350ms or 40%")
	fmt.Fprintln(w, "  get <param>")
	fmt.Fprintln(w, "  list")
	fmt.Fprintln(w, "  quit")
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
