package cli

import (
	"strings"

	"github.com/flowave-io/mathflow/internal/completion"
	"github.com/flowave-io/mathflow/internal/expr"
)

// editor is the line being typed at the prompt: the buffer, the cursor,
// history navigation and the completion session for the buffer. It does no
// I/O; the REPL feeds it keys and renders its state.
type editor struct {
	buf     []rune
	cursor  int
	ac      *completion.AutoComplete
	hist    *history
	histIdx int // -1 when not navigating
}

func newEditor(r *completion.Resolver, h *history) *editor {
	if h == nil {
		h = &history{}
	}
	return &editor{ac: completion.NewAutoComplete(r), hist: h, histIdx: -1}
}

func (e *editor) line() string { return string(e.buf) }

func (e *editor) atEOL() bool { return e.cursor == len(e.buf) }

// hint is the active completion, which only applies at the end of the line.
func (e *editor) hint() completion.Hint {
	if !e.atEOL() {
		return completion.None()
	}
	return e.ac.Hint()
}

// ghost is the completion Complete would insert, drawn dimmed after the text.
func (e *editor) ghost() string {
	if !e.atEOL() {
		return ""
	}
	s, _ := e.ac.Selected()
	return s
}

// candidates lists the full words offered by a Many hint and the selected
// index.
func (e *editor) candidates() ([]string, int) {
	h := e.hint()
	if !h.IsMany() {
		return nil, -1
	}
	tok := ""
	if tokens := expr.Split(e.line(), expr.SplitMultiplication); len(tokens) > 0 {
		tok = tokens[len(tokens)-1]
	}
	out := h.Candidates()
	for i, c := range out {
		out[i] = tok + c
	}
	return out, e.ac.Index()
}

func (e *editor) edited() {
	e.histIdx = -1
	e.ac.UpdateString(e.line())
}

func (e *editor) setLine(s string) {
	e.buf = []rune(s)
	e.cursor = len(e.buf)
	e.ac.UpdateString(s)
}

func (e *editor) insert(r rune) {
	e.buf = append(e.buf[:e.cursor], append([]rune{r}, e.buf[e.cursor:]...)...)
	e.cursor++
	e.edited()
}

func (e *editor) backspace() bool {
	if e.cursor == 0 {
		return false
	}
	e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
	e.cursor--
	e.edited()
	return true
}

func (e *editor) left() {
	if e.cursor > 0 {
		e.cursor--
	}
}

// right moves the cursor, or accepts the hint when already at the end.
func (e *editor) right() bool {
	if e.cursor < len(e.buf) {
		e.cursor++
		return true
	}
	return e.complete()
}

// complete appends the selected completion. It reports false when there is
// nothing to complete.
func (e *editor) complete() bool {
	if e.hint().IsNone() {
		return false
	}
	e.ac.RegisterMovement(completion.MovementComplete)
	e.buf = []rune(e.ac.Text())
	e.cursor = len(e.buf)
	e.histIdx = -1
	return true
}

// up cycles a Many hint backwards, otherwise recalls older history.
func (e *editor) up() {
	if e.hint().IsMany() {
		e.ac.RegisterMovement(completion.MovementUp)
		return
	}
	if e.hist.len() == 0 {
		return
	}
	if e.histIdx == -1 {
		e.histIdx = e.hist.len()
	}
	if e.histIdx > 0 {
		e.histIdx--
	}
	e.setLine(e.hist.at(e.histIdx))
}

// down cycles a Many hint forwards, otherwise recalls newer history and
// finally an empty line.
func (e *editor) down() {
	if e.hint().IsMany() {
		e.ac.RegisterMovement(completion.MovementDown)
		return
	}
	if e.histIdx < 0 {
		return
	}
	e.histIdx++
	if e.histIdx >= e.hist.len() {
		e.histIdx = -1
		e.setLine("")
		return
	}
	e.setLine(e.hist.at(e.histIdx))
}

// enter accepts a pending completion, or else submits the line and returns
// it with submitted set.
func (e *editor) enter() (line string, submitted bool) {
	if e.complete() {
		return "", false
	}
	line = e.line()
	e.reset()
	if strings.TrimSpace(line) != "" {
		e.hist.add(line)
	}
	return line, true
}

func (e *editor) reset() {
	e.buf = e.buf[:0]
	e.cursor = 0
	e.histIdx = -1
	e.ac.UpdateString("")
}

// rehint recomputes the hint after the resolver's table was replaced.
func (e *editor) rehint() {
	text := e.ac.Text()
	e.ac.UpdateString("")
	e.ac.UpdateString(text)
}
