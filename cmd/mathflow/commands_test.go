package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitCmd(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := splitCmd([]string{"2sin(x)cos(x)"}, &out, &errOut); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	if out.String() != "2\nsin(x)\ncos(x)\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestSplitCmd_TermJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := splitCmd([]string{"-term", "-json", "cos(sin(x)cos(x))"}, &out, &errOut); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	want := `{"input":"cos(sin(x)cos(x))","policy":"term","tokens":["cos(","sin(","x)","cos(","x))"],"processed":"cos(sin(x)*cos(x))"}` + "\n"
	if out.String() != want {
		t.Fatalf("output = %q", out.String())
	}
}

func TestSplitCmd_EmptyJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := splitCmd([]string{"-json"}, &out, &errOut); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out.String(), `"tokens":[]`) {
		t.Fatalf("empty input should give an empty token list: %q", out.String())
	}
}

func TestHintCmd(t *testing.T) {
	cases := map[string]string{
		"si":    `["n(", "nh(", "gnum("]` + "\n",
		"sin(":  ")\n",
		"ln(x)": "None\n",
	}
	for in, want := range cases {
		var out, errOut bytes.Buffer
		if code := hintCmd([]string{in}, &out, &errOut); code != 0 {
			t.Fatalf("exit %d: %s", code, errOut.String())
		}
		if out.String() != want {
			t.Fatalf("hint %q = %q, want %q", in, out.String(), want)
		}
	}
}

func TestHintCmd_JSON(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := hintCmd([]string{"-json", "cos"}, &out, &errOut); code != 0 {
		t.Fatalf("exit %d", code)
	}
	want := `{"input":"cos","hint":{"kind":"many","completions":["(","h("]}}` + "\n"
	if out.String() != want {
		t.Fatalf("output = %q", out.String())
	}
}

func TestTableCmd_Formats(t *testing.T) {
	for _, format := range []string{"text", "json", "go"} {
		var out, errOut bytes.Buffer
		if code := tableCmd([]string{"-format", format}, &out, &errOut); code != 0 {
			t.Fatalf("%s: exit %d: %s", format, code, errOut.String())
		}
		if !strings.Contains(out.String(), "gnum(") {
			t.Fatalf("%s output missing signum completion", format)
		}
	}
	var out, errOut bytes.Buffer
	if code := tableCmd([]string{"-format", "yaml"}, &out, &errOut); code != 2 {
		t.Fatalf("unknown format should exit 2, got %d", code)
	}
}

func TestTableCmd_Config(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mathflow.hcl")
	if err := os.WriteFile(path, []byte(`functions = ["max"]`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out, errOut bytes.Buffer
	if code := tableCmd([]string{"-config", path}, &out, &errOut); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	if out.String() != "m        => ax(\nma       => x(\nmax      => (\n" {
		t.Fatalf("output = %q", out.String())
	}
}
