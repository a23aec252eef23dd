package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/flowave-io/mathflow/internal/cli"
	"github.com/flowave-io/mathflow/internal/config"
)

func printHelp() {
	fmt.Print(`mathflow splits math expressions into implicitly multiplied terms and
completes function names as you type.

Usage: mathflow [global options] <subcommand> [args]

Available commands:
  help     Show this help output
  version  Show the current mathflow version
  console  Type expressions at an interactive prompt with completion
  split    Split an expression into terms: split [-term] [-json] EXPR
  hint     Show the completion hint for an input: hint [-json] EXPR
  table    Print the completion table: table [-format text|json|go] [-config FILE]
`)
}

func main() {
	flag.Usage = printHelp
	flagHelp := flag.Bool("help", false, "Show help")
	flag.Parse()

	args := flag.Args()

	if *flagHelp || len(args) == 0 || args[0] == "help" {
		printHelp()
		os.Exit(0)
	}

	switch args[0] {
	case "version":
		fmt.Println("mathflow", config.Version)
		os.Exit(0)
	case "console":
		os.Exit(cli.RunConsoleCommand(args[1:]))
	case "split":
		os.Exit(splitCmd(args[1:], os.Stdout, os.Stderr))
	case "hint":
		os.Exit(hintCmd(args[1:], os.Stdout, os.Stderr))
	case "table":
		os.Exit(tableCmd(args[1:], os.Stdout, os.Stderr))
	}

	fmt.Fprintln(os.Stderr, "Unknown command: ", args[0])
	printHelp()
	os.Exit(1)
}
