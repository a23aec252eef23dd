package completion

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompile_Fixture(t *testing.T) {
	table, err := Compile([]string{"time", "text", "test"})
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	want := []Entry{
		{"t", Many("ime(", "ext(", "est(")},
		{"ti", Single("me(")},
		{"tim", Single("e(")},
		{"time", Single("(")},
		{"te", Many("xt(", "st(")},
		{"tex", Single("t(")},
		{"text", Single("(")},
		{"tes", Single("t(")},
		{"test", Single("(")},
	}
	if diff := cmp.Diff(want, table.Entries()); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_ManySortedByLengthThenReverse(t *testing.T) {
	table, err := Compile([]string{"ab", "ac", "abcd", "ad"})
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	h, ok := table.Lookup("a")
	if !ok {
		t.Fatalf("missing prefix a")
	}
	want := []string{"d(", "c(", "b(", "bcd("}
	if diff := cmp.Diff(want, h.Candidates()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_RepeatedNamesDeduplicated(t *testing.T) {
	table, err := Compile([]string{"sin", "sin"})
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if h, _ := table.Lookup("s"); !h.Equal(Single("in(")) {
		t.Fatalf("expected deduplicated single hint, got %v", h)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 prefixes, got %d", table.Len())
	}
}

func TestCompile_ManyHasNoDuplicatesOrSingletons(t *testing.T) {
	for _, e := range DefaultTable().Entries() {
		if !e.Hint.IsMany() {
			continue
		}
		c := e.Hint.Candidates()
		if len(c) < 2 {
			t.Fatalf("prefix %q: Many with %d candidates", e.Prefix, len(c))
		}
		seen := map[string]bool{}
		for _, s := range c {
			if seen[s] {
				t.Fatalf("prefix %q: duplicate candidate %q", e.Prefix, s)
			}
			seen[s] = true
		}
	}
}

func TestCompile_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	t1, err := Compile(SupportedFunctions)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	t2, err := Compile(SupportedFunctions)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if err := WriteGoSource(&a, "completion", "table", t1); err != nil {
		t.Fatalf("WriteGoSource: %v", err)
	}
	if err := WriteGoSource(&b, "completion", "table", t2); err != nil {
		t.Fatalf("WriteGoSource: %v", err)
	}
	if a.String() != b.String() {
		t.Fatalf("two compiles rendered different sources")
	}
}

func TestValidateVocabulary(t *testing.T) {
	if err := ValidateVocabulary(SupportedFunctions); err != nil {
		t.Fatalf("default vocabulary rejected: %v", err)
	}
	err := ValidateVocabulary([]string{"", "sin(", "ok", "a b"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"empty name", `"sin("`, `"a b"`} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q does not mention %s", msg, want)
		}
	}
	if strings.Contains(msg, `"ok"`) {
		t.Fatalf("valid name reported: %q", msg)
	}
	if _, err := Compile([]string{"cos", ""}); err == nil {
		t.Fatalf("Compile accepted an empty name")
	}
}

func TestTable_LookupNil(t *testing.T) {
	var table *Table
	if h, ok := table.Lookup("s"); ok || !h.IsNone() {
		t.Fatalf("nil table lookup = %v, %v", h, ok)
	}
	if h, ok := DefaultTable().Lookup(""); ok || !h.IsNone() {
		t.Fatalf("empty prefix lookup = %v, %v", h, ok)
	}
}
