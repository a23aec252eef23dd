package completion

import (
	"slices"
	"strconv"
	"strings"

	"github.com/flowave-io/mathflow/internal/encoding/jsonx"
)

// Kind tags the variant held by a Hint.
type Kind int

const (
	KindNone Kind = iota
	KindSingle
	KindMany
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindMany:
		return "many"
	default:
		return "none"
	}
}

// Hint is a suggested completion for the trailing token of an input. A Many
// hint always carries at least two distinct candidates; the candidate slice
// is shared with the table it came from and must not be modified.
type Hint struct {
	kind       Kind
	text       string
	candidates []string
}

var (
	// EmptyHint is shown for an empty input.
	EmptyHint = Single("x^2")
	// CloseParenHint is returned whenever opening parentheses are outstanding.
	CloseParenHint = Single(")")
)

// Single returns a hint with exactly one completion.
func Single(text string) Hint { return Hint{kind: KindSingle, text: text} }

// Many returns a multi-candidate hint in the given order.
func Many(candidates ...string) Hint { return Hint{kind: KindMany, candidates: candidates} }

// None returns the empty hint.
func None() Hint { return Hint{} }

func (h Hint) Kind() Kind { return h.kind }

func (h Hint) IsNone() bool { return h.kind == KindNone }

func (h Hint) IsSome() bool { return !h.IsNone() }

func (h Hint) IsSingle() bool { return h.kind == KindSingle }

func (h Hint) IsMany() bool { return h.kind == KindMany }

// SingleText returns the completion of a Single hint.
func (h Hint) SingleText() (string, bool) {
	if h.kind != KindSingle {
		return "", false
	}
	return h.text, true
}

// Candidates returns a copy of the candidates of a Many hint.
func (h Hint) Candidates() []string {
	if h.kind != KindMany {
		return nil
	}
	return slices.Clone(h.candidates)
}

// Len is the number of completions the hint offers.
func (h Hint) Len() int {
	switch h.kind {
	case KindSingle:
		return 1
	case KindMany:
		return len(h.candidates)
	default:
		return 0
	}
}

// At returns completion i; Single hints only have index 0.
func (h Hint) At(i int) string {
	if h.kind == KindSingle && i == 0 {
		return h.text
	}
	if h.kind == KindMany && i >= 0 && i < len(h.candidates) {
		return h.candidates[i]
	}
	return ""
}

func (h Hint) Equal(o Hint) bool {
	return h.kind == o.kind && h.text == o.text && slices.Equal(h.candidates, o.candidates)
}

// String renders Single as its text, Many as a quoted list and None as "None".
func (h Hint) String() string {
	switch h.kind {
	case KindSingle:
		return h.text
	case KindMany:
		quoted := make([]string, len(h.candidates))
		for i, c := range h.candidates {
			quoted[i] = strconv.Quote(c)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return "None"
	}
}

type hintJSON struct {
	Kind        string   `json:"kind"`
	Completions []string `json:"completions"`
}

// MarshalJSON encodes the hint as {"kind": ..., "completions": [...]}.
func (h Hint) MarshalJSON() ([]byte, error) {
	out := hintJSON{Kind: h.kind.String(), Completions: make([]string, 0, h.Len())}
	for i := 0; i < h.Len(); i++ {
		out.Completions = append(out.Completions, h.At(i))
	}
	return jsonx.Marshal(out)
}
