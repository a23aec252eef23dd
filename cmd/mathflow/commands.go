package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/flowave-io/mathflow/internal/completion"
	"github.com/flowave-io/mathflow/internal/config"
	"github.com/flowave-io/mathflow/internal/encoding/jsonx"
	"github.com/flowave-io/mathflow/internal/expr"
	"github.com/flowave-io/mathflow/pkg/log"
)

type splitResult struct {
	Input     string   `json:"input"`
	Policy    string   `json:"policy"`
	Tokens    []string `json:"tokens"`
	Processed string   `json:"processed"`
}

func splitCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("split", flag.ContinueOnError)
	fs.SetOutput(stderr)
	term := fs.Bool("term", false, "Also split after every opening parenthesis")
	asJSON := fs.Bool("json", false, "Print the result as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	input := strings.Join(fs.Args(), " ")
	policy := expr.SplitMultiplication
	if *term {
		policy = expr.SplitTerm
	}
	tokens := expr.Split(input, policy)
	if *asJSON {
		return writeJSON(stdout, splitResult{
			Input:     input,
			Policy:    policy.String(),
			Tokens:    tokens,
			Processed: expr.Process(input),
		})
	}
	for _, t := range tokens {
		fmt.Fprintln(stdout, t)
	}
	return 0
}

type hintResult struct {
	Input string          `json:"input"`
	Hint  completion.Hint `json:"hint"`
}

func hintCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "Print the hint as JSON")
	configPath := fs.String("config", "", "Config file providing the function vocabulary")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	r, err := resolverFor(*configPath)
	if err != nil {
		log.Fatal(err)
		return 1
	}
	input := strings.Join(fs.Args(), " ")
	h := r.Hint(input)
	if *asJSON {
		return writeJSON(stdout, hintResult{Input: input, Hint: h})
	}
	fmt.Fprintln(stdout, h)
	return 0
}

func tableCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("table", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "text", "Output format: text, json or go")
	pkg := fs.String("package", "completion", "Package name for -format go")
	varName := fs.String("var", "generatedTable", "Variable name for -format go")
	configPath := fs.String("config", "", "Config file providing the function vocabulary")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	r, err := resolverFor(*configPath)
	if err != nil {
		log.Fatal(err)
		return 1
	}
	table := r.Table()
	switch *format {
	case "text":
		err = completion.WriteText(stdout, table)
	case "json":
		err = completion.WriteJSON(stdout, table)
	case "go":
		err = completion.WriteGoSource(stdout, *pkg, *varName, table)
	default:
		fmt.Fprintf(stderr, "unknown format %q (want text, json or go)\n", *format)
		return 2
	}
	if err != nil {
		log.Fatal(err)
		return 1
	}
	return 0
}

// resolverFor uses the default vocabulary unless a config file is named.
func resolverFor(configPath string) (*completion.Resolver, error) {
	if configPath == "" {
		return completion.NewResolver(nil), nil
	}
	cfg, err := config.Open(context.Background(), configPath)
	if err != nil {
		return nil, err
	}
	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}
	return completion.NewResolver(table), nil
}

func writeJSON(w io.Writer, v any) int {
	b, err := jsonx.Marshal(v)
	if err != nil {
		log.Fatal(err)
		return 1
	}
	fmt.Fprintln(w, string(b))
	return 0
}
