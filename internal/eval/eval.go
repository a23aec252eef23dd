package eval

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"
)

// ErrTimeout is returned when an external evaluator does not finish in time.
var ErrTimeout = errors.New("evaluation timed out")

// Evaluator computes a result for a processed expression, one where every
// implicit multiplication has been made explicit.
type Evaluator interface {
	Evaluate(ctx context.Context, expr string) (string, error)
}

// Echo returns the expression unchanged.
type Echo struct{}

func (Echo) Evaluate(_ context.Context, expr string) (string, error) { return expr, nil }

// Command pipes each expression to a short-lived external program.
type Command struct {
	argv    []string
	timeout time.Duration
}

// NewCommand parses a shell-style command line such as "bc -l".
func NewCommand(cmdline string, timeout time.Duration) (*Command, error) {
	argv, err := shlex.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("parse evaluator command: %w", err)
	}
	if len(argv) == 0 {
		return nil, errors.New("evaluator command is empty")
	}
	return &Command{argv: argv, timeout: timeout}, nil
}

func (c *Command) Name() string { return c.argv[0] }

// Evaluate runs the command with expr on stdin and returns its trimmed
// stdout. If the command fails and wrote to stderr, that text is returned as
// the result so the user sees the evaluator's own message.
func (c *Command) Evaluate(ctx context.Context, expr string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	var out, errBuf bytes.Buffer
	cmd.Stdin = strings.NewReader(expr + "\n")
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	// children that inherit the pipes must not hold Wait past the deadline
	cmd.WaitDelay = time.Second
	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%s: %w", c.Name(), ErrTimeout)
	}
	if err != nil {
		if errBuf.Len() > 0 {
			return strings.TrimRight(errBuf.String(), "\r\n"), nil
		}
		return "", fmt.Errorf("%s: %w", c.Name(), err)
	}
	return strings.TrimRight(out.String(), "\r\n"), nil
}

// New returns a Command for a non-empty cmdline and Echo otherwise.
func New(cmdline string, timeout time.Duration) (Evaluator, error) {
	if strings.TrimSpace(cmdline) == "" {
		return Echo{}, nil
	}
	return NewCommand(cmdline, timeout)
}
