package expr

import (
	"fmt"
	"strings"
)

// SplitPolicy selects where the splitter is allowed to cut.
type SplitPolicy int

const (
	// SplitMultiplication only breaks on implicit or explicit multiplication.
	SplitMultiplication SplitPolicy = iota
	// SplitTerm additionally breaks after every opening parenthesis.
	SplitTerm
)

func (p SplitPolicy) String() string {
	switch p {
	case SplitMultiplication:
		return "multiplication"
	case SplitTerm:
		return "term"
	default:
		return fmt.Sprintf("SplitPolicy(%d)", int(p))
	}
}

// ParseSplitPolicy maps a flag value onto a policy.
func ParseSplitPolicy(s string) (SplitPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "multiplication", "mul":
		return SplitMultiplication, nil
	case "term":
		return SplitTerm, nil
	default:
		return 0, fmt.Errorf("unknown split policy %q", s)
	}
}

const (
	// MultiplicationMarker is the explicit operator consumed by the splitter.
	MultiplicationMarker = '*'

	// expPlaceholder hides the e/x of exp from the classifier while splitting.
	expPlaceholder = '\U0001FC93'
)

// substitute rewrites alternate spellings before splitting. The replacements
// run one after another, so pi is resolved before exp is protected.
func substitute(input string) string {
	input = strings.ReplaceAll(input, "pi", "π")
	input = strings.ReplaceAll(input, "**", "^")
	return strings.ReplaceAll(input, "exp", string(expPlaceholder))
}

// Split cuts input into implicitly multiplied factors. The spelling pi is
// reported as π and ** as ^; the function name exp survives untouched.
func Split(input string, policy SplitPolicy) []string {
	if input == "" {
		return []string{}
	}
	tokens := SplitRunes([]rune(substitute(input)), policy)
	for i, tok := range tokens {
		tokens[i] = strings.ReplaceAll(tok, string(expPlaceholder), "exp")
	}
	return tokens
}

// Process inserts explicit multiplication operators between the factors of
// input, producing the string handed to an evaluator.
func Process(input string) string {
	if input == "" {
		return ""
	}
	return strings.Join(Split(input, SplitMultiplication), string(MultiplicationMarker))
}

// LastTerm returns the trailing token of input under SplitTerm, i.e. the
// text typed since the last opening parenthesis or factor boundary.
func LastTerm(input string) string {
	tokens := Split(input, SplitTerm)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

// ParenBalance counts opening and closing parentheses in input.
func ParenBalance(input string) (open, closed int) {
	for _, r := range input {
		switch r {
		case '(':
			open++
		case ')':
			closed++
		}
	}
	return open, closed
}

// SplitRunes runs the boundary automaton over runes without any spelling
// substitution. Multiplication markers are dropped and never leave an empty
// token behind.
func SplitRunes(runes []rune, policy SplitPolicy) []string {
	tokens := make([]string, 0, 4)
	if len(runes) == 0 {
		return tokens
	}

	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	prev := Classify(runes[0], false, false)
	if runes[0] != MultiplicationMarker {
		cur.WriteRune(runes[0])
	}
	for _, r := range runes[1:] {
		c := Classify(r, prev.MaskedDigit, prev.MaskedVariable)
		c.PropagateMask(prev)

		if splitsBefore(r, c, prev, policy) {
			flush()
		}
		if r != MultiplicationMarker {
			cur.WriteRune(r)
		}
		prev = c
	}
	flush()
	return tokens
}

// splitsBefore decides whether a token boundary precedes r. The rules are
// ordered and the first one that applies decides.
func splitsBefore(r rune, c, prev CharClass, policy SplitPolicy) bool {
	switch {
	case r == MultiplicationMarker || (policy == SplitTerm && prev.OpenParen):
		return true
	case prev.CloseParen:
		// )x  )2  )(
		return r == '(' ||
			(c.Letter && !c.UnmaskedVariable()) ||
			c.UnmaskedVariable() ||
			c.UnmaskedDigit()
	case r == '(':
		// x(  2(  but not log(
		return (prev.UnmaskedVariable() || prev.UnmaskedDigit()) && !prev.Letter
	case prev.UnmaskedDigit():
		// 2x  2sin(x)
		return c.UnmaskedVariable() || c.Letter
	case c.UnmaskedVariable() || c.Letter:
		// e2  xx
		return prev.UnmaskedDigit() ||
			(prev.UnmaskedVariable() && c.UnmaskedVariable()) ||
			prev.UnmaskedVariable()
	case c.literal() && (prev.UnmaskedDigit() || prev.Letter):
		return true
	default:
		return c.UnmaskedDigit() && prev.UnmaskedVariable()
	}
}
