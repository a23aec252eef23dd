package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/flowave-io/mathflow/internal/eval"
	"github.com/flowave-io/mathflow/internal/expr"
	"github.com/flowave-io/mathflow/pkg/log"
)

// RunREPL runs the interactive prompt until Ctrl-D, exit/quit or ctx is
// done. It uses a raw TTY on Unix to capture TAB and arrows and falls back to
// plain line-by-line evaluation when no terminal is available. A receive on
// refreshed means the completion table changed.
func RunREPL(ctx context.Context, ed *editor, ev eval.Evaluator, refreshed <-chan struct{}) {
	tty, restore, err := acquireTTY()
	if err != nil {
		log.Debug("no terminal, reading lines:", err)
		if err := runLines(ctx, os.Stdin, os.Stdout, ed.hist, ev); err != nil {
			log.Warn("read input:", err)
		}
		return
	}
	if restore != nil {
		defer restore()
	}
	defer tty.Close()

	scr := &screen{out: os.Stdout, width: func() int { return detectTermWidth(tty) }}
	chunks := make(chan []byte)
	go func() {
		defer close(chunks)
		buf := make([]byte, 64)
		for {
			n, err := tty.Read(buf)
			if err != nil || n == 0 {
				return
			}
			chunk := append([]byte(nil), buf[:n]...)
			select {
			case chunks <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()

	scr.render(ed)
	for {
		select {
		case <-ctx.Done():
			scr.clearList()
			scr.write("\r\n")
			return
		case <-refreshed:
			ed.rehint()
			scr.renderList(ed)
			scr.render(ed)
		case chunk, ok := <-chunks:
			if !ok {
				scr.write("\r\n")
				return
			}
			for _, k := range decodeKeys(chunk) {
				if done := handleKey(ctx, scr, ed, ev, k); done {
					return
				}
			}
		}
	}
}

// handleKey applies one key press and redraws. It reports true when the
// session should end.
func handleKey(ctx context.Context, scr *screen, ed *editor, ev eval.Evaluator, k keyEvent) bool {
	switch k.k {
	case keyCtrlC:
		scr.clearList()
		scr.write("\r\n")
		ed.reset()
	case keyCtrlD:
		scr.clearList()
		scr.write("\r\n[exit]\r\n")
		return true
	case keyEnter:
		line, submitted := ed.enter()
		if submitted {
			scr.clearList()
			scr.write("\r\n")
			trimmed := strings.TrimSpace(line)
			if trimmed == "exit" || trimmed == "quit" {
				return true
			}
			if trimmed != "" {
				scr.write(ttyText(evaluate(ctx, ev, line)))
			}
		}
	case keyBackspace:
		ed.backspace()
	case keyTab, keyRight:
		var moved bool
		if k.k == keyTab {
			moved = ed.complete()
		} else {
			moved = ed.right()
		}
		if !moved {
			scr.write("\a")
		}
	case keyShiftTab, keyUp:
		ed.up()
	case keyDown:
		ed.down()
	case keyLeft:
		ed.left()
	case keyRune:
		ed.insert(k.r)
	default:
		return false
	}
	scr.renderList(ed)
	scr.render(ed)
	return false
}

// evaluate turns a submitted line into the text printed under it: the
// processed expression, and for an external evaluator its answer.
func evaluate(ctx context.Context, ev eval.Evaluator, line string) string {
	processed := expr.Process(strings.TrimSpace(line))
	if _, echo := ev.(eval.Echo); echo {
		return processed
	}
	out, err := ev.Evaluate(ctx, processed)
	if err != nil {
		log.Warn("evaluate", processed+":", err)
		return fmt.Sprintf("%s\nerror: %v", processed, err)
	}
	return processed + "\n" + out
}

// runLines evaluates one expression per input line without any terminal
// handling, for piped input.
func runLines(ctx context.Context, in io.Reader, out io.Writer, h *history, ev eval.Evaluator) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		if h != nil {
			h.add(line)
		}
		if _, err := fmt.Fprintln(out, evaluate(ctx, ev, line)); err != nil {
			return err
		}
	}
	return sc.Err()
}
