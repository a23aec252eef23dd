package completion

import "testing"

// step is one scripted action against an AutoComplete session.
type step struct {
	set    *string
	move   Movement
	index  int
	text   string
	hint   string
	assert bool
}

func set(s string) step { return step{set: &s} }

func move(m Movement) step { return step{move: m} }

func expect(i int, text, hint string) step {
	return step{assert: true, index: i, text: text, hint: hint}
}

// runScript checks the selected completion after every assertion step; an
// empty hint stands for None.
func runScript(t *testing.T, steps []step) {
	t.Helper()
	ac := NewAutoComplete(nil)
	for n, s := range steps {
		switch {
		case s.set != nil:
			ac.UpdateString(*s.set)
		case s.assert:
			if ac.Index() != s.index {
				t.Fatalf("step %d: index = %d, want %d", n, ac.Index(), s.index)
			}
			if ac.Text() != s.text {
				t.Fatalf("step %d: text = %q, want %q", n, ac.Text(), s.text)
			}
			got, _ := ac.Selected()
			if got != s.hint {
				t.Fatalf("step %d: hint = %q (%v), want %q", n, got, ac.Hint(), s.hint)
			}
		default:
			ac.RegisterMovement(s.move)
		}
	}
}

func TestAutoComplete_Single(t *testing.T) {
	runScript(t, []step{
		set(""),
		expect(0, "", "x^2"),
		move(MovementUp),
		expect(0, "", "x^2"),
		move(MovementDown),
		expect(0, "", "x^2"),
		move(MovementComplete),
		expect(0, "x^2", ""),
	})
}

func TestAutoComplete_Multi(t *testing.T) {
	runScript(t, []step{
		set("s"),
		expect(0, "s", "in("),
		move(MovementUp),
		expect(3, "s", "ignum("),
		move(MovementDown),
		expect(0, "s", "in("),
		move(MovementDown),
		expect(1, "s", "qrt("),
		move(MovementUp),
		expect(0, "s", "in("),
		move(MovementComplete),
		expect(0, "sin(", ")"),
	})
}

func TestAutoComplete_Parens(t *testing.T) {
	runScript(t, []step{
		set("sin(x"),
		expect(0, "sin(x", ")"),
		move(MovementUp),
		expect(0, "sin(x", ")"),
		move(MovementDown),
		expect(0, "sin(x", ")"),
		move(MovementComplete),
		expect(0, "sin(x)", ""),
	})
}

func TestAutoComplete_CycleReturnsToStart(t *testing.T) {
	ac := NewAutoComplete(nil)
	ac.UpdateString("a")
	n := ac.Hint().Len()
	if n < 2 {
		t.Fatalf("expected a Many hint for %q, got %v", "a", ac.Hint())
	}
	for _, m := range []Movement{MovementUp, MovementDown} {
		for i := 0; i < n; i++ {
			ac.RegisterMovement(m)
		}
		if ac.Index() != 0 {
			t.Fatalf("%s x%d: index = %d, want 0", m, n, ac.Index())
		}
	}
}

func TestAutoComplete_UpdateResetsCursor(t *testing.T) {
	ac := NewAutoComplete(nil)
	ac.UpdateString("s")
	ac.RegisterMovement(MovementDown)
	ac.UpdateString("s")
	if ac.Index() != 1 {
		t.Fatalf("unchanged text must keep the cursor, got %d", ac.Index())
	}
	ac.UpdateString("si")
	if ac.Index() != 0 || !ac.Hint().Equal(Many("n(", "nh(", "gnum(")) {
		t.Fatalf("text change must reset: index=%d hint=%v", ac.Index(), ac.Hint())
	}
	ac.UpdateString("")
	if ac.Text() != "" || !ac.Hint().Equal(EmptyHint) || ac.Index() != 0 {
		t.Fatalf("empty text must reset the session: %+v", ac)
	}
}

func TestAutoComplete_NoneIgnoresMovement(t *testing.T) {
	ac := NewAutoComplete(nil)
	ac.UpdateString("ln(x)")
	for _, m := range []Movement{MovementUp, MovementDown, MovementComplete, MovementNone} {
		ac.RegisterMovement(m)
	}
	if ac.Text() != "ln(x)" || ac.Index() != 0 || !ac.Hint().IsNone() {
		t.Fatalf("None hint should ignore movements: text=%q index=%d", ac.Text(), ac.Index())
	}
	if _, ok := ac.Selected(); ok {
		t.Fatalf("None hint has no selection")
	}
}

func TestAutoComplete_CustomResolver(t *testing.T) {
	table, err := Compile([]string{"max", "min"})
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	ac := NewAutoComplete(NewResolver(table))
	ac.UpdateString("m")
	ac.RegisterMovement(MovementDown)
	ac.RegisterMovement(MovementComplete)
	if ac.Text() != "max(" {
		t.Fatalf("text = %q, want max(", ac.Text())
	}
}
