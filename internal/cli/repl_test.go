package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/flowave-io/mathflow/internal/eval"
)

type stubEvaluator struct {
	got []string
	err error
}

func (s *stubEvaluator) Evaluate(_ context.Context, expr string) (string, error) {
	s.got = append(s.got, expr)
	return "42", s.err
}

func TestRunLines_Echo(t *testing.T) {
	var out bytes.Buffer
	h := &history{}
	in := strings.NewReader("2x\n\n sin(x)cos(x) \nexit\n3x\n")
	if err := runLines(context.Background(), in, &out, h, eval.Echo{}); err != nil {
		t.Fatalf("runLines: %v", err)
	}
	if out.String() != "2*x\nsin(x)*cos(x)\n" {
		t.Fatalf("output = %q", out.String())
	}
	if h.len() != 2 {
		t.Fatalf("history entries %#v", h.entries)
	}
}

func TestEvaluate_ExternalEvaluator(t *testing.T) {
	ev := &stubEvaluator{}
	got := evaluate(context.Background(), ev, "2pi")
	if got != "2*π\n42" {
		t.Fatalf("evaluate = %q", got)
	}
	if len(ev.got) != 1 || ev.got[0] != "2*π" {
		t.Fatalf("evaluator received %#v", ev.got)
	}
	ev.err = errors.New("boom")
	if got := evaluate(context.Background(), ev, "x"); !strings.Contains(got, "error: boom") {
		t.Fatalf("error not shown: %q", got)
	}
}

func TestHandleKey_RendersGhostAndSubmits(t *testing.T) {
	var out bytes.Buffer
	scr := &screen{out: &out, width: func() int { return 40 }}
	e := newEditor(nil, nil)
	for _, k := range decodeKeys([]byte("2si")) {
		if handleKey(context.Background(), scr, e, eval.Echo{}, k) {
			t.Fatalf("unexpected exit")
		}
	}
	if !strings.Contains(out.String(), ">> 2si"+ansiDim+"n("+ansiReset) {
		t.Fatalf("ghost not rendered: %q", out.String())
	}
	if !strings.Contains(out.String(), "sinh(") || scr.listRows == 0 {
		t.Fatalf("candidate list not rendered: %q", out.String())
	}
	out.Reset()
	for _, k := range decodeKeys([]byte("\r" + "x)\r")) {
		handleKey(context.Background(), scr, e, eval.Echo{}, k)
	}
	if !strings.Contains(out.String(), "2*sin(x)\r\n") {
		t.Fatalf("processed expression not printed: %q", out.String())
	}
	if handleKey(context.Background(), scr, e, eval.Echo{}, keyEvent{k: keyCtrlD}) != true {
		t.Fatalf("Ctrl-D should end the session")
	}
}

func TestTTYText(t *testing.T) {
	if got := ttyText("a\nb"); got != "a\r\nb\r\n" {
		t.Fatalf("ttyText = %q", got)
	}
	if got := ttyText("a\r\n"); got != "a\r\n" {
		t.Fatalf("ttyText = %q", got)
	}
}
