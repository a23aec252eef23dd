package cli

import (
	"fmt"
	"io"
	"strings"
)

const (
	prompt    = ">> "
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

// screen draws the prompt line and the candidate overlay below it on a raw
// terminal.
type screen struct {
	out      io.Writer
	width    func() int
	listRows int
}

func (s *screen) write(str string) { _, _ = io.WriteString(s.out, str) }

// render redraws the prompt line with the ghost completion dimmed after the
// text, then puts the cursor back where the editor has it.
func (s *screen) render(e *editor) {
	s.write("\r\x1b[2K")
	s.write(prompt)
	s.write(e.line())
	ghost := e.ghost()
	if ghost != "" {
		s.write(ansiDim + ghost + ansiReset)
	}
	back := len([]rune(ghost)) + len(e.buf) - e.cursor
	if back > 0 {
		s.write(fmt.Sprintf("\x1b[%dD", back))
	}
}

// renderList shows the candidates of a Many hint under the prompt, or clears
// the overlay when there are none.
func (s *screen) renderList(e *editor) {
	cands, sel := e.candidates()
	if len(cands) == 0 {
		s.clearList()
		return
	}
	s.listRows = s.printCandidates(cands, sel, s.listRows)
}

func (s *screen) clearList() {
	if s.listRows == 0 {
		return
	}
	s.write("\x1b[1B")
	for r := 0; r < s.listRows; r++ {
		s.write("\r\x1b[2K")
		if r < s.listRows-1 {
			s.write("\x1b[1B")
		}
	}
	s.write(fmt.Sprintf("\x1b[%dA", s.listRows))
	s.listRows = 0
}

// printCandidates lays cands out in columns below the prompt, overwriting the
// previous overlay of prevRows lines. The selected entry is drawn normally
// and the rest dimmed. It returns the number of rows used.
func (s *screen) printCandidates(cands []string, selected, prevRows int) int {
	w := 0
	if s.width != nil {
		w = s.width()
	}
	if w <= 0 {
		w = 80
	}
	maxLen := 0
	for _, c := range cands {
		if l := len(c); l > maxLen {
			maxLen = l
		}
	}
	colW := maxLen + 2
	cols := w / colW
	rows := len(cands)
	if cols > 1 {
		rows = (len(cands) + cols - 1) / cols
	} else {
		cols = 1
	}
	if rows > prevRows {
		delta := rows - prevRows
		s.write(strings.Repeat("\r\n", delta))
		s.write(fmt.Sprintf("\x1b[%dA", delta))
	}
	s.write("\x1b[1B")
	total := max(prevRows, rows)
	for r := 0; r < total; r++ {
		s.write("\r\x1b[2K")
		if r < rows {
			for c := 0; c < cols; c++ {
				idx := r + c*rows
				if idx >= len(cands) {
					break
				}
				item := cands[idx]
				if idx != selected {
					item = ansiDim + item + ansiReset
				}
				s.write(item)
				if c < cols-1 {
					if sp := colW - len(cands[idx]); sp > 0 {
						s.write(strings.Repeat(" ", sp))
					}
				}
			}
		}
		if r < total-1 {
			s.write("\x1b[1B")
		}
	}
	s.write(fmt.Sprintf("\x1b[%dA", total))
	return rows
}

// ttyText maps lone \n to \r\n so output lines up in raw mode.
func ttyText(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	prev := byte(0)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '\n' && prev != '\r' {
			b.WriteString("\r\n")
		} else {
			b.WriteByte(ch)
		}
		prev = ch
	}
	if !strings.HasSuffix(s, "\n") {
		b.WriteString("\r\n")
	}
	return b.String()
}
