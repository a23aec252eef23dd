package expr

// CharClass describes a single character during a scan. The two masked
// flags carry identifier context from the immediately preceding character so
// digits and variable symbols inside names like log2 or ceil are not read as
// standalone literals.
type CharClass struct {
	CloseParen     bool
	OpenParen      bool
	Digit          bool
	Letter         bool
	Variable       bool
	MaskedDigit    bool
	MaskedVariable bool
}

// IsVariable reports whether r is one of the implicit variable symbols
// x, e or π. ASCII letters match case-insensitively.
func IsVariable(r rune) bool {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return r == 'x' || r == 'e' || r == 'π'
}

func isASCIIDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isASCIILetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

// Classify builds the class of r. A masked flag from the previous character
// only survives when r is itself a digit (resp. a variable symbol).
func Classify(r rune, prevMaskedDigit, prevMaskedVariable bool) CharClass {
	digit := isASCIIDigit(r)
	variable := IsVariable(r)
	return CharClass{
		CloseParen:     r == ')',
		OpenParen:      r == '(',
		Digit:          digit,
		Letter:         isASCIILetter(r),
		Variable:       variable,
		MaskedDigit:    digit && prevMaskedDigit,
		MaskedVariable: variable && prevMaskedVariable,
	}
}

// UnmaskedVariable reports a variable symbol that stands on its own.
func (c CharClass) UnmaskedVariable() bool { return c.Variable && !c.MaskedVariable }

// UnmaskedDigit reports a digit that belongs to a numeric literal.
func (c CharClass) UnmaskedDigit() bool { return c.Digit && !c.MaskedDigit }

// literal reports a character that may start or continue a factor.
func (c CharClass) literal() bool {
	return c.UnmaskedDigit() || c.Letter || c.UnmaskedVariable()
}

// PropagateMask strengthens masking using the previous character. A masked
// run continues through further digits (or variables); a plain letter that is
// not a standalone variable absorbs the current character into its
// identifier.
func (c *CharClass) PropagateMask(prev CharClass) {
	switch {
	case prev.MaskedDigit && c.Digit:
		c.MaskedDigit = true
	case prev.MaskedVariable && c.Variable:
		c.MaskedVariable = true
	case prev.Letter && !prev.UnmaskedVariable():
		c.MaskedDigit = c.Digit
		c.MaskedVariable = c.Variable
	}
}
