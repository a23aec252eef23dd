package cli

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// history is the list of submitted lines, optionally persisted to a file
// that is appended to as lines are added.
type history struct {
	entries []string
	file    *os.File
}

// loadHistory reads path (if it exists) and opens it for appending. An empty
// path keeps history in memory only.
func loadHistory(path string) (*history, error) {
	h := &history{}
	if path == "" {
		return h, nil
	}
	if b, err := os.ReadFile(path); err == nil {
		for _, ln := range strings.Split(string(b), "\n") {
			ln = strings.TrimRight(ln, "\r")
			if strings.TrimSpace(ln) == "" {
				continue
			}
			h.entries = append(h.entries, ln)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return h, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return h, err
	}
	h.file = f
	return h, nil
}

// add records line unless it is blank or repeats the latest entry.
func (h *history) add(line string) {
	line = normalizeForHistory(line)
	if line == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if h.file != nil {
		_, _ = h.file.WriteString(line + "\n")
	}
}

func (h *history) len() int { return len(h.entries) }

func (h *history) at(i int) string { return h.entries[i] }

func (h *history) close() error {
	if h.file == nil {
		return nil
	}
	return h.file.Close()
}

// normalizeForHistory compacts input to one line: line breaks and runs of
// blanks become a single space, and blanks just inside parentheses are
// dropped.
func normalizeForHistory(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	joined := []rune(strings.Join(fields, " "))
	out := make([]rune, 0, len(joined))
	for i, r := range joined {
		if r == ' ' {
			if len(out) > 0 && out[len(out)-1] == '(' {
				continue
			}
			if i+1 < len(joined) && joined[i+1] == ')' {
				continue
			}
		}
		out = append(out, r)
	}
	return string(out)
}
