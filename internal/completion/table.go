package completion

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// SupportedFunctions is the default vocabulary offered for completion.
var SupportedFunctions = []string{
	"abs", "signum", "sin", "cos", "tan", "asin", "acos", "atan", "sinh", "cosh", "tanh",
	"floor", "round", "ceil", "trunc", "fract", "exp", "sqrt", "cbrt", "ln", "log2", "log10",
}

// invocation is appended to every name before its prefixes are enumerated.
const invocation = "("

// Entry is one prefix of the completion table.
type Entry struct {
	Prefix string
	Hint   Hint
}

// Table maps every proper prefix of every vocabulary name (with its
// invocation parenthesis) to a hint. Tables are never modified after
// Compile returns and may be shared freely.
type Table struct {
	vocabulary []string
	entries    map[string]Hint
	order      []string
}

// Lookup returns the hint for an exact prefix.
func (t *Table) Lookup(prefix string) (Hint, bool) {
	if t == nil || prefix == "" {
		return None(), false
	}
	h, ok := t.entries[prefix]
	return h, ok
}

// Len is the number of distinct prefixes.
func (t *Table) Len() int { return len(t.order) }

// Vocabulary returns the names the table was built from.
func (t *Table) Vocabulary() []string { return slices.Clone(t.vocabulary) }

// Entries lists the table in the order prefixes were first produced, which
// is stable for a given vocabulary.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, p := range t.order {
		out = append(out, Entry{Prefix: p, Hint: t.entries[p]})
	}
	return out
}

// ValidateVocabulary reports every name that cannot be completed: empty
// names and names with characters other than ASCII letters and digits.
// Repeated names are allowed; their prefixes are deduplicated by Compile.
func ValidateVocabulary(names []string) error {
	var result *multierror.Error
	for i, name := range names {
		if name == "" {
			result = multierror.Append(result, fmt.Errorf("function %d: empty name", i))
			continue
		}
		for _, r := range name {
			if !isNameRune(r) {
				result = multierror.Append(result, fmt.Errorf("function %q: invalid character %q", name, r))
				break
			}
		}
	}
	return result.ErrorOrNil()
}

func isNameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

type cut struct{ prefix, suffix string }

// Compile builds the completion table for names. The result depends only on
// the names and their order.
func Compile(names []string) (*Table, error) {
	if err := ValidateVocabulary(names); err != nil {
		return nil, fmt.Errorf("invalid vocabulary: %w", err)
	}

	seen := map[cut]struct{}{}
	var cuts []cut
	for _, name := range names {
		cuts = append(cuts, allCuts(name+invocation, seen)...)
	}

	grouped := map[string][]string{}
	var order []string
	for _, s := range cuts {
		if _, ok := grouped[s.prefix]; !ok {
			order = append(order, s.prefix)
		}
		grouped[s.prefix] = append(grouped[s.prefix], s.suffix)
	}

	t := &Table{
		vocabulary: slices.Clone(names),
		entries:    make(map[string]Hint, len(order)),
		order:      order,
	}
	for _, prefix := range order {
		suffixes := grouped[prefix]
		switch len(suffixes) {
		case 0:
			return nil, fmt.Errorf("prefix %q has no completions", prefix)
		case 1:
			t.entries[prefix] = Single(suffixes[0])
		default:
			slices.SortStableFunc(suffixes, compareLenReverseAlpha)
			t.entries[prefix] = Many(suffixes...)
		}
	}
	return t, nil
}

// allCuts enumerates every (prefix, suffix) cut of fn with both sides
// non-empty, skipping pairs already produced by an earlier name.
func allCuts(fn string, seen map[cut]struct{}) []cut {
	out := make([]cut, 0, len(fn)-1)
	for i := 1; i < len(fn); i++ {
		s := cut{prefix: fn[:i], suffix: fn[i:]}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// compareLenReverseAlpha orders shorter completions first and breaks ties
// in reverse lexicographic order.
func compareLenReverseAlpha(a, b string) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return cmp.Compare(b, a)
}

// DefaultTable is the table for SupportedFunctions, compiled on first use.
var DefaultTable = sync.OnceValue(func() *Table {
	t, err := Compile(SupportedFunctions)
	if err != nil {
		panic(fmt.Sprintf("completion: default vocabulary: %v", err))
	}
	return t
})
