package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/flowave-io/mathflow/internal/completion"
	"github.com/flowave-io/mathflow/pkg/log"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	cty "github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// DefaultFile is read from the working directory when no -config is given.
const DefaultFile = "mathflow.hcl"

const defaultEvalTimeout = 5 * time.Second

type Config struct {
	// Path is the file the config was read from, empty for built-in defaults.
	Path            string
	RequiredVersion string
	LogLevel        log.Level
	HistoryFile     string
	// Functions is the completion vocabulary.
	Functions []string
	Evaluator EvaluatorConfig
}

// EvaluatorConfig selects the program submitted expressions are piped to. An
// empty Command echoes the processed expression instead.
type EvaluatorConfig struct {
	Command string
	Timeout time.Duration
}

func Default() *Config {
	return &Config{
		LogLevel:    log.LevelInfo,
		HistoryFile: ".mathflow_history",
		Functions:   append([]string(nil), completion.SupportedFunctions...),
		Evaluator:   EvaluatorConfig{Timeout: defaultEvalTimeout},
	}
}

// Table compiles the completion table for the configured vocabulary.
func (c *Config) Table() (*completion.Table, error) {
	return completion.Compile(c.Functions)
}

var rootSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "required_version"},
		{Name: "log_level"},
		{Name: "history_file"},
		{Name: "functions"},
	},
	Blocks: []hcl.BlockHeaderSchema{{Type: "evaluator"}},
}

var evaluatorSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "command", Required: true},
		{Name: "timeout"},
	},
}

// Load reads the config at path. An empty path tries DefaultFile and falls
// back to Default when it does not exist; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	src, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(src, path)
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes an HCL config. Every problem found is reported in one error.
func Parse(src []byte, filename string) (*Config, error) {
	p := hclparse.NewParser()
	f, diags := p.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %w", filename, diags)
	}
	content, diags := f.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %w", filename, diags)
	}

	cfg := Default()
	ctx := evalContext()
	var result *multierror.Error

	if a, ok := content.Attributes["required_version"]; ok {
		s, err := stringAttr(a, ctx)
		if err == nil {
			cfg.RequiredVersion = s
			err = CheckRequiredVersion(s, Version)
		}
		result = multierror.Append(result, err)
	}
	if a, ok := content.Attributes["log_level"]; ok {
		s, err := stringAttr(a, ctx)
		if err == nil {
			cfg.LogLevel, err = log.ParseLevel(s)
		}
		result = multierror.Append(result, err)
	}
	if a, ok := content.Attributes["history_file"]; ok {
		s, err := stringAttr(a, ctx)
		if err == nil {
			cfg.HistoryFile = strings.TrimSpace(s)
		}
		result = multierror.Append(result, err)
	}
	if a, ok := content.Attributes["functions"]; ok {
		names, err := stringListAttr(a, ctx)
		if err == nil {
			err = completion.ValidateVocabulary(names)
		}
		if err == nil {
			cfg.Functions = names
		}
		result = multierror.Append(result, err)
	}

	for i, b := range content.Blocks {
		if i > 0 {
			result = multierror.Append(result, fmt.Errorf("%s: duplicate evaluator block", b.DefRange))
			continue
		}
		ev, err := decodeEvaluator(b, ctx)
		if err == nil {
			cfg.Evaluator = ev
		}
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return cfg, nil
}

func decodeEvaluator(b *hcl.Block, ctx *hcl.EvalContext) (EvaluatorConfig, error) {
	ev := EvaluatorConfig{Timeout: defaultEvalTimeout}
	content, diags := b.Body.Content(evaluatorSchema)
	if diags.HasErrors() {
		return ev, diags
	}
	var result *multierror.Error
	cmd, err := stringAttr(content.Attributes["command"], ctx)
	if err == nil && strings.TrimSpace(cmd) == "" {
		err = fmt.Errorf("%s: evaluator command is empty", content.Attributes["command"].Range)
	}
	ev.Command = cmd
	result = multierror.Append(result, err)
	if a, ok := content.Attributes["timeout"]; ok {
		s, err := stringAttr(a, ctx)
		if err == nil {
			ev.Timeout, err = time.ParseDuration(s)
			if err == nil && ev.Timeout <= 0 {
				err = fmt.Errorf("%s: timeout must be positive", a.Range)
			}
		}
		result = multierror.Append(result, err)
	}
	return ev, result.ErrorOrNil()
}

func attrValue(a *hcl.Attribute, ctx *hcl.EvalContext, want cty.Type) (cty.Value, error) {
	v, diags := a.Expr.Value(ctx)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	if v.IsNull() || !v.IsWhollyKnown() {
		return cty.NilVal, fmt.Errorf("%s: %s must be a known, non-null value", a.Range, a.Name)
	}
	v, err := convert.Convert(v, want)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%s: %s: %w", a.Range, a.Name, err)
	}
	return v, nil
}

func stringAttr(a *hcl.Attribute, ctx *hcl.EvalContext) (string, error) {
	v, err := attrValue(a, ctx, cty.String)
	if err != nil {
		return "", err
	}
	return v.AsString(), nil
}

func stringListAttr(a *hcl.Attribute, ctx *hcl.EvalContext) ([]string, error) {
	v, err := attrValue(a, ctx, cty.List(cty.String))
	if err != nil {
		return nil, err
	}
	var out []string
	if err := gocty.FromCtyValue(v, &out); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", a.Range, a.Name, err)
	}
	return out, nil
}
