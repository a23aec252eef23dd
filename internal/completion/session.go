package completion

// Movement is a navigation command applied to an AutoComplete session.
type Movement int

const (
	MovementNone Movement = iota
	MovementUp
	MovementDown
	MovementComplete
)

func (m Movement) String() string {
	switch m {
	case MovementUp:
		return "up"
	case MovementDown:
		return "down"
	case MovementComplete:
		return "complete"
	default:
		return "none"
	}
}

// AutoComplete is the completion state of one input field: the text, the
// hint resolved for it and the selected candidate of a Many hint. It is not
// safe for concurrent use.
type AutoComplete struct {
	i        int
	hint     Hint
	text     string
	resolver *Resolver
}

// NewAutoComplete returns an empty session resolving hints with r. A nil r
// uses the default vocabulary.
func NewAutoComplete(r *Resolver) *AutoComplete {
	if r == nil {
		r = defaultResolver
	}
	return &AutoComplete{hint: EmptyHint, resolver: r}
}

func (a *AutoComplete) Index() int { return a.i }

func (a *AutoComplete) Hint() Hint { return a.hint }

func (a *AutoComplete) Text() string { return a.text }

// Selected is the completion Complete would append, if any.
func (a *AutoComplete) Selected() (string, bool) {
	if a.hint.IsNone() {
		return "", false
	}
	return a.hint.At(a.i), true
}

// UpdateString replaces the text. An unchanged text keeps the cursor; an
// empty text resets the session.
func (a *AutoComplete) UpdateString(text string) {
	if text == a.text {
		return
	}
	if text == "" {
		*a = AutoComplete{hint: EmptyHint, resolver: a.resolver}
		return
	}
	a.text = text
	a.refresh()
}

// RegisterMovement applies m to the active hint. Up and Down only move the
// cursor of a Many hint and wrap at either end.
func (a *AutoComplete) RegisterMovement(m Movement) {
	if m == MovementNone || a.hint.IsNone() {
		return
	}
	switch a.hint.Kind() {
	case KindMany:
		n := a.hint.Len()
		switch m {
		case MovementUp:
			if a.i == 0 {
				a.i = n - 1
			} else {
				a.i--
			}
		case MovementDown:
			a.i++
			if a.i > n-1 {
				a.i = 0
			}
		case MovementComplete:
			a.ApplyHint(a.hint.At(a.i))
		}
	case KindSingle:
		if m == MovementComplete {
			a.ApplyHint(a.hint.text)
		}
	}
}

// ApplyHint appends completion to the text and resolves a fresh hint.
func (a *AutoComplete) ApplyHint(completion string) {
	a.text += completion
	a.refresh()
}

func (a *AutoComplete) refresh() {
	a.i = 0
	a.hint = a.resolver.Hint(a.text)
}
