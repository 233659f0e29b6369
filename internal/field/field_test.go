package field

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// stubEvaluator resolves the handful of expressions the tests use and fails
// everything else, standing in for the external evaluator capability.
var stubEvaluator = EvaluatorFunc(func(expression string) (float64, error) {
	switch expression {
	case "2+3":
		return 5, nil
	case "2*(3+4)":
		return 14, nil
	}
	return 0, fmt.Errorf("cannot evaluate %q", expression)
})

func newTestField(cfg Config) *Field {
	f := New("field-1", cfg, stubEvaluator)
	return &f
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeText(f *Field, s string) {
	for _, r := range s {
		f.Update(keyRune(r))
	}
}

func TestCommitEmptyBufferIsNoOp(t *testing.T) {
	f := newTestField(DefaultConfig())
	fired := false
	f.OnChange(func(string, string) { fired = true })

	if err := f.Commit(); err != nil {
		t.Fatalf("Commit() on empty buffer error = %v, want nil", err)
	}
	if f.HasError() {
		t.Error("HasError() = true after empty commit, want false")
	}
	if fired {
		t.Error("change callback fired on empty commit")
	}
}

func TestCommitFormatsValue(t *testing.T) {
	f := newTestField(DefaultConfig())
	f.Focus()

	var got string
	f.OnChange(func(_, formatted string) { got = formatted })

	typeText(f, "1234,5")
	f.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if f.Value() != "1 234.50" {
		t.Errorf("buffer = %q after commit, want %q", f.Value(), "1 234.50")
	}
	if got != "1 234.50" {
		t.Errorf("change callback got %q, want %q", got, "1 234.50")
	}
	if f.HasError() {
		t.Error("HasError() = true, want false")
	}
}

func TestCommitRangeViolation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Min = BoundAt(10)
	cfg.Max = BoundAt(20)
	f := newTestField(cfg)

	var got string
	f.OnChange(func(_, formatted string) { got = formatted })
	f.SetText("5")

	err := f.Commit()
	if !errors.Is(err, ErrRange) {
		t.Fatalf("Commit() error = %v, want ErrRange", err)
	}
	if !f.HasError() {
		t.Error("HasError() = false, want true")
	}
	// The violating value is still written back formatted.
	if f.Value() != "5.00" {
		t.Errorf("buffer = %q, want %q", f.Value(), "5.00")
	}
	if got != "5.00" {
		t.Errorf("change callback got %q, want %q", got, "5.00")
	}
	if RetainsFocus(err) {
		t.Error("RetainsFocus(ErrRange) = true, want false")
	}
}

func TestCommitFormula(t *testing.T) {
	f := newTestField(DefaultConfig())

	var got string
	f.OnChange(func(_, formatted string) { got = formatted })
	f.SetText("=2+3")

	if err := f.Commit(); err != nil {
		t.Fatalf("Commit() error = %v, want nil", err)
	}
	if f.Value() != "5.00" {
		t.Errorf("buffer = %q, want %q", f.Value(), "5.00")
	}
	if got != "5.00" {
		t.Errorf("change callback got %q, want %q", got, "5.00")
	}
	if f.HasError() {
		t.Error("HasError() = true, want false")
	}
}

func TestCommitFormulaFailure(t *testing.T) {
	f := newTestField(DefaultConfig())

	fired := false
	f.OnChange(func(string, string) { fired = true })
	f.SetText("=2+")

	err := f.Commit()
	if !errors.Is(err, ErrFormula) {
		t.Fatalf("Commit() error = %v, want ErrFormula", err)
	}
	if !f.HasError() {
		t.Error("HasError() = false, want true")
	}
	if !RetainsFocus(err) {
		t.Error("RetainsFocus(ErrFormula) = false, want true")
	}
	if fired {
		t.Error("change callback fired on failed commit")
	}
	// The raw buffer stays put for the user to correct.
	if f.Value() != "=2+" {
		t.Errorf("buffer = %q, want %q", f.Value(), "=2+")
	}
}

func TestCommitParseFailure(t *testing.T) {
	f := newTestField(DefaultConfig())
	f.SetText("1.2.3")

	err := f.Commit()
	if !errors.Is(err, ErrParse) {
		t.Fatalf("Commit() error = %v, want ErrParse", err)
	}
	if !RetainsFocus(err) {
		t.Error("RetainsFocus(ErrParse) = false, want true")
	}
}

func TestCommitRejectsNonFiniteInput(t *testing.T) {
	// The key filter blocks letters, so these spellings only arrive via
	// paste; ParseFloat would otherwise accept them.
	for _, text := range []string{"NaN", "nan", "Inf", "+Inf", "-inf", "Infinity"} {
		t.Run(text, func(t *testing.T) {
			f := newTestField(DefaultConfig())
			f.SetText(text)

			err := f.Commit()
			if !errors.Is(err, ErrParse) {
				t.Fatalf("Commit() error = %v, want ErrParse", err)
			}
			if !f.HasError() {
				t.Error("HasError() = false after non-finite commit")
			}
		})
	}
}

func TestWheelAdjustNonFiniteBufferStepsFromZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Step = BoundAt(5)
	f := newTestField(cfg)
	f.SetText("NaN")

	if err := f.WheelAdjust(1); err != nil {
		t.Fatalf("WheelAdjust() error = %v", err)
	}
	if got := f.Value(); got != "5.00" {
		t.Errorf("Value() = %q, want %q", got, "5.00")
	}
}

func TestErrorFlagRecomputedOnCommit(t *testing.T) {
	f := newTestField(DefaultConfig())

	f.SetText("1.2.3")
	if err := f.Commit(); err == nil {
		t.Fatal("Commit() of bad text succeeded unexpectedly")
	}
	if !f.HasError() {
		t.Fatal("HasError() = false after bad commit")
	}

	f.SetText("7")
	if err := f.Commit(); err != nil {
		t.Fatalf("Commit() error = %v, want nil", err)
	}
	if f.HasError() {
		t.Error("HasError() = true after good commit, want false")
	}
}

func TestFocusStripsSeparatorsAndHomesCursor(t *testing.T) {
	f := newTestField(DefaultConfig())
	f.SetText("1 200.5")

	f.Focus()
	if f.Value() != "1200.5" {
		t.Errorf("buffer after focus = %q, want %q", f.Value(), "1200.5")
	}
	if pos := f.input.Position(); pos != 0 {
		t.Errorf("cursor position after focus = %d, want 0", pos)
	}

	if err := f.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if f.Value() != "1 200.50" {
		t.Errorf("buffer after commit = %q, want %q", f.Value(), "1 200.50")
	}
}

func TestWheelAdjust(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Step = BoundAt(5)
	f := newTestField(cfg)

	var got string
	f.OnChange(func(_, formatted string) { got = formatted })

	f.SetText("10")
	if err := f.WheelAdjust(-1); err != nil {
		t.Fatalf("WheelAdjust(-1) error = %v", err)
	}
	if f.Value() != "5.00" || got != "5.00" {
		t.Errorf("wheel down: buffer = %q, callback = %q, want both %q", f.Value(), got, "5.00")
	}

	if err := f.WheelAdjust(1); err != nil {
		t.Fatalf("WheelAdjust(1) error = %v", err)
	}
	if f.Value() != "10.00" {
		t.Errorf("wheel up: buffer = %q, want %q", f.Value(), "10.00")
	}
}

func TestWheelAdjustUnparsableStepsFromZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Step = BoundAt(5)
	f := newTestField(cfg)
	f.SetText("=oops")

	if err := f.WheelAdjust(1); err != nil {
		t.Fatalf("WheelAdjust(1) error = %v", err)
	}
	if f.Value() != "5.00" {
		t.Errorf("buffer = %q, want %q", f.Value(), "5.00")
	}
}

func TestWheelAdjustInactiveWithoutStep(t *testing.T) {
	f := newTestField(DefaultConfig())
	fired := false
	f.OnChange(func(string, string) { fired = true })
	f.SetText("10")

	if err := f.WheelAdjust(1); err != nil {
		t.Fatalf("WheelAdjust(1) error = %v", err)
	}
	if f.Value() != "10" {
		t.Errorf("buffer = %q, want untouched %q", f.Value(), "10")
	}
	if fired {
		t.Error("change callback fired with unbounded step")
	}
}

func TestWheelValidatesRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Min = BoundAt(10)
	cfg.Step = BoundAt(5)
	f := newTestField(cfg)
	f.SetText("10")

	err := f.WheelAdjust(-1)
	if !errors.Is(err, ErrRange) {
		t.Fatalf("WheelAdjust(-1) error = %v, want ErrRange", err)
	}
	if f.Value() != "5.00" {
		t.Errorf("buffer = %q, want %q", f.Value(), "5.00")
	}
	if !f.HasError() {
		t.Error("HasError() = false, want true")
	}
}

func TestKeyFilterRejectsOutsideSet(t *testing.T) {
	f := newTestField(DefaultConfig())
	f.Focus()

	typeText(f, "1a%x2")
	if f.Value() != "12" {
		t.Errorf("buffer = %q, want %q", f.Value(), "12")
	}
}

func TestCommaRewrittenToDot(t *testing.T) {
	f := newTestField(DefaultConfig())
	f.Focus()

	typeText(f, "1,5")
	if f.Value() != "1.5" {
		t.Errorf("buffer = %q, want %q", f.Value(), "1.5")
	}
}

func TestEqualsOnlyAtBufferStart(t *testing.T) {
	f := newTestField(DefaultConfig())
	f.Focus()

	typeText(f, "=2")
	if f.Value() != "=2" {
		t.Errorf("buffer = %q, want %q", f.Value(), "=2")
	}

	// A second "=" mid-buffer is a consumed no-op.
	typeText(f, "=")
	if f.Value() != "=2" {
		t.Errorf("buffer = %q after mid-buffer '=', want %q", f.Value(), "=2")
	}
}

func TestArrowNavigationAtEdges(t *testing.T) {
	type request struct {
		dir Direction
		id  string
	}
	var requests []request

	f := newTestField(DefaultConfig())
	f.OnNavigate(func(d Direction, id string) {
		requests = append(requests, request{d, id})
	})
	f.SetText("57")
	f.Focus() // cursor at start

	// Up always goes previous, down always next.
	f.Update(tea.KeyMsg{Type: tea.KeyUp})
	f.Update(tea.KeyMsg{Type: tea.KeyDown})

	// Left at position 0 navigates previous.
	f.Update(tea.KeyMsg{Type: tea.KeyLeft})

	// Right mid-buffer is ordinary cursor movement, not navigation.
	f.Update(tea.KeyMsg{Type: tea.KeyRight})
	f.Update(tea.KeyMsg{Type: tea.KeyRight})

	// Now at the end of "57", right navigates next.
	f.Update(tea.KeyMsg{Type: tea.KeyRight})

	want := []request{
		{Previous, "field-1"},
		{Next, "field-1"},
		{Previous, "field-1"},
		{Next, "field-1"},
	}
	if len(requests) != len(want) {
		t.Fatalf("got %d navigation requests %v, want %d", len(requests), requests, len(want))
	}
	for i := range want {
		if requests[i] != want[i] {
			t.Errorf("request[%d] = %v, want %v", i, requests[i], want[i])
		}
	}
}

func TestAcceleratorChordPassesThrough(t *testing.T) {
	f := newTestField(DefaultConfig())
	f.SetText("123")
	f.Focus()
	f.input.CursorEnd()

	// ctrl+a is the textinput's line-start binding; the filter must let it
	// through rather than swallowing it.
	f.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	if pos := f.input.Position(); pos != 0 {
		t.Errorf("cursor position after ctrl+a = %d, want 0", pos)
	}
}

func TestClampWhileTypingForcesCommit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ClampWhileTyping = true
	f := newTestField(cfg)
	f.Focus()

	typeText(f, "1.234")
	if f.Value() != "1.23" {
		t.Errorf("buffer = %q, want %q", f.Value(), "1.23")
	}
	if f.HasError() {
		t.Error("HasError() = true, want false")
	}
}
