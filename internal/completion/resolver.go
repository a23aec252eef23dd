package completion

import (
	"strings"
	"sync/atomic"

	"github.com/flowave-io/mathflow/internal/expr"
)

// Resolver computes hints against a completion table that can be replaced
// while other goroutines are resolving.
type Resolver struct {
	table atomic.Pointer[Table]
}

// NewResolver returns a resolver over t, or over DefaultTable when t is nil.
func NewResolver(t *Table) *Resolver {
	r := &Resolver{}
	r.SetTable(t)
	return r
}

// SetTable swaps the table used by subsequent Hint calls.
func (r *Resolver) SetTable(t *Table) {
	if t == nil {
		t = DefaultTable()
	}
	r.table.Store(t)
}

func (r *Resolver) Table() *Table { return r.table.Load() }

// Hint returns the suggestion for the current input. Unbalanced parentheses
// take priority over function-name completion; a trailing multiplication
// marker starts a new empty term and yields no hint.
func (r *Resolver) Hint(input string) Hint {
	if input == "" {
		return EmptyHint
	}
	if open, closed := expr.ParenBalance(input); open > closed {
		return CloseParenHint
	}
	if strings.HasSuffix(input, string(expr.MultiplicationMarker)) {
		return None()
	}
	tokens := expr.Split(input, expr.SplitMultiplication)
	if len(tokens) == 0 {
		return None()
	}
	h, ok := r.Table().Lookup(tokens[len(tokens)-1])
	if !ok {
		return None()
	}
	return h
}

var defaultResolver = NewResolver(nil)

// GenerateHint resolves input against the default vocabulary.
func GenerateHint(input string) Hint { return defaultResolver.Hint(input) }
