package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/flowave-io/mathflow/internal/completion"
	"github.com/flowave-io/mathflow/internal/config"
	"github.com/flowave-io/mathflow/internal/eval"
	"github.com/flowave-io/mathflow/internal/monitor"
	"github.com/flowave-io/mathflow/pkg/log"
	"github.com/google/uuid"
)

// RunConsoleCommand starts the interactive console and returns the process
// exit code.
func RunConsoleCommand(args []string) int {
	fs := flag.NewFlagSet("console", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	fs.Usage = printConsoleHelp
	configPath := fs.String("config", "", "Config file or remote address (default ./"+config.DefaultFile+")")
	noWatch := fs.Bool("no-watch", false, "Do not reload the config file when it changes")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Open(ctx, *configPath)
	if err != nil {
		log.Fatal(err)
		return 1
	}
	log.SetLevel(cfg.LogLevel)
	table, err := cfg.Table()
	if err != nil {
		log.Fatal(err)
		return 1
	}
	resolver := completion.NewResolver(table)
	ev, err := eval.New(cfg.Evaluator.Command, cfg.Evaluator.Timeout)
	if err != nil {
		log.Fatal(err)
		return 1
	}
	hist, err := loadHistory(cfg.HistoryFile)
	if err != nil {
		log.Warn("history disabled:", err)
	}
	defer hist.close()

	sessionID := uuid.NewString()
	logFile := redirectLog(cfg.HistoryFile)
	if logFile != nil {
		defer logFile.Close()
		defer log.SetOutput(os.Stderr)
	}
	log.Info("session", sessionID, "started with", len(cfg.Functions), "functions")
	fmt.Println("mathflow console (TAB/Enter/Right accept, Up/Down cycle, Ctrl-D exits)")

	refreshed := make(chan struct{}, 1)
	if !*noWatch && cfg.Path != "" && config.IsLocalSource(*configPath) {
		changes := make(chan struct{}, 1)
		if err := monitor.WatchFile(ctx, cfg.Path, changes); err != nil {
			log.Warn("config watch disabled:", err)
		} else {
			go reloadOnChange(ctx, sessionID, cfg.Path, resolver, changes, refreshed)
		}
	}

	RunREPL(ctx, newEditor(resolver, hist), ev, refreshed)
	log.Info("session", sessionID, "ended")
	return 0
}

// reloadOnChange rebuilds the completion table whenever the config file
// changes and tells the REPL to refresh its hint. A config that fails to load
// keeps the previous table.
func reloadOnChange(ctx context.Context, sessionID, path string, r *completion.Resolver, changes <-chan struct{}, refreshed chan<- struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
		}
		cfg, err := config.Load(path)
		if err != nil {
			log.Warn("session", sessionID, "reload:", err)
			continue
		}
		table, err := cfg.Table()
		if err != nil {
			log.Warn("session", sessionID, "reload:", err)
			continue
		}
		log.SetLevel(cfg.LogLevel)
		r.SetTable(table)
		log.Info("session", sessionID, "reloaded", len(cfg.Functions), "functions from", path)
		select {
		case refreshed <- struct{}{}:
		default:
		}
	}
}

// redirectLog sends log output to a file beside the history file so it does
// not interleave with the prompt.
func redirectLog(historyFile string) io.Closer {
	dir := "."
	if historyFile != "" {
		dir = filepath.Dir(historyFile)
	}
	f, err := os.OpenFile(filepath.Join(dir, ".mathflow.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		log.Warn("logging to stderr:", err)
		return nil
	}
	log.SetOutput(f)
	return f
}

func printConsoleHelp() {
	fmt.Print(`mathflow console: interactive expression prompt with completion

Type an expression such as 2sin(x)cos(x). Function names are completed as you
type: the suggestion is shown dimmed after the cursor.

Keys:
  TAB, Right     accept the suggestion
  Enter          accept a pending suggestion, otherwise submit the line
  Up/Down        cycle multiple suggestions, otherwise browse history
  Shift-TAB      cycle suggestions backwards
  Ctrl-C         clear the line
  Ctrl-D, exit   leave the console

Submitted lines print the expression with explicit multiplication, and the
answer from the configured evaluator if there is one.

Flags:
  -config FILE   config file or remote address (default ./mathflow.hcl)
  -no-watch      do not reload the config when the file changes
`)
}
