package completion

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/flowave-io/mathflow/internal/encoding/jsonx"
)

// WriteText writes one "prefix => hint" line per table entry.
func WriteText(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	for _, e := range t.Entries() {
		if _, err := fmt.Fprintf(bw, "%-8s => %s\n", e.Prefix, e.Hint); err != nil {
			return err
		}
	}
	return bw.Flush()
}

type tableJSON struct {
	Vocabulary []string    `json:"vocabulary"`
	Entries    []entryJSON `json:"entries"`
}

type entryJSON struct {
	Prefix string `json:"prefix"`
	Hint   Hint   `json:"hint"`
}

// WriteJSON writes the vocabulary and entries as an indented JSON document.
func WriteJSON(w io.Writer, t *Table) error {
	doc := tableJSON{Vocabulary: t.Vocabulary()}
	for _, e := range t.Entries() {
		doc.Entries = append(doc.Entries, entryJSON{Prefix: e.Prefix, Hint: e.Hint})
	}
	b, err := jsonx.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// WriteGoSource renders t as a Go file declaring varName as a static map
// from prefix to Hint in package pkg. Output is byte-for-byte identical for
// the same vocabulary, so it can be checked into a repository and diffed
// when the vocabulary changes.
func WriteGoSource(w io.Writer, pkg, varName string, t *Table) error {
	var b strings.Builder
	b.WriteString("// Code generated by mathflow table; DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	if pkg != "completion" {
		b.WriteString("import . \"github.com/flowave-io/mathflow/internal/completion\"\n\n")
	}
	b.WriteString("// Vocabulary:")
	for _, name := range t.Vocabulary() {
		b.WriteString(" " + name)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "var %s = map[string]Hint{\n", varName)
	for _, e := range t.Entries() {
		fmt.Fprintf(&b, "\t%s: %s,\n", strconv.Quote(e.Prefix), goLiteral(e.Hint))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func goLiteral(h Hint) string {
	switch h.Kind() {
	case KindSingle:
		return "Single(" + strconv.Quote(h.text) + ")"
	case KindMany:
		quoted := make([]string, len(h.candidates))
		for i, c := range h.candidates {
			quoted[i] = strconv.Quote(c)
		}
		return "Many(" + strings.Join(quoted, ", ") + ")"
	default:
		return "None()"
	}
}
