package jsonx

import "testing"

func TestRoundTrip(t *testing.T) {
	in := map[string][]string{"tokens": {"2", "sin(x)"}}
	b, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"tokens":["2","sin(x)"]}` {
		t.Fatalf("unexpected encoding %s", b)
	}
	var out map[string][]string
	if err := Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(out["tokens"]) != 2 || out["tokens"][1] != "sin(x)" {
		t.Fatalf("unexpected decode %#v", out)
	}
}

func TestMarshalIndent(t *testing.T) {
	b, err := MarshalIndent([]int{1}, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent: %v", err)
	}
	if string(b) != "[\n  1\n]" {
		t.Fatalf("unexpected indent %q", b)
	}
}
