package field

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/numform/numform/internal/logging"
)

// DefaultDecimals is the fraction digit count used when a field's
// configuration does not specify one.
const DefaultDecimals = 2

// Direction identifies which neighbour a navigation request targets.
type Direction int

const (
	// Previous targets the field before this one in the form order.
	Previous Direction = iota
	// Next targets the field after this one in the form order.
	Next
)

// String returns the direction name for logging.
func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}

// Evaluator is the external capability that resolves "=" formulas. It must
// be a pure, synchronous computation over the expression text.
type Evaluator interface {
	Evaluate(expression string) (float64, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(expression string) (float64, error)

// Evaluate implements Evaluator.
func (fn EvaluatorFunc) Evaluate(expression string) (float64, error) {
	return fn(expression)
}

// ChangeFunc is invoked with the settled, formatted text whenever a commit
// or wheel adjustment succeeds.
type ChangeFunc func(fieldID, formatted string)

// NavigateFunc is invoked when the field requests edge navigation. The form
// coordinator resolves the target; the field never touches its siblings.
type NavigateFunc func(direction Direction, fieldID string)

// Config parameterizes one field. It is immutable from the field's point of
// view: the form supplies it by value and replaces it wholesale when the
// shared settings change.
type Config struct {
	Min  Bound
	Max  Bound
	Step Bound

	// Decimals is the fixed number of fraction digits in settled values.
	Decimals int

	// ClampWhileTyping forces a commit as soon as typing would exceed
	// Decimals fraction digits. Off by default; the default policy leaves
	// decimal enforcement entirely to commit-time formatting.
	ClampWhileTyping bool
}

// DefaultConfig returns an unbounded config with DefaultDecimals.
func DefaultConfig() Config {
	return Config{
		Min:      Unbounded(),
		Max:      Unbounded(),
		Step:     Unbounded(),
		Decimals: DefaultDecimals,
	}
}

// Field is a single numeric entry control. It owns its text buffer and error
// flag exclusively; all mutation happens through its own handlers.
type Field struct {
	id        string
	cfg       Config
	input     textinput.Model
	hasError  bool
	evaluator Evaluator

	onChange   ChangeFunc
	onNavigate NavigateFunc
}

// New creates a field identified by id. The evaluator may be nil, in which
// case every formula commit fails.
func New(id string, cfg Config, evaluator Evaluator) Field {
	ti := textinput.New()
	ti.Prompt = ""
	if cfg.Decimals < 0 {
		cfg.Decimals = DefaultDecimals
	}
	return Field{
		id:        id,
		cfg:       cfg,
		input:     ti,
		evaluator: evaluator,
	}
}

// OnChange registers the settled-value callback.
func (f *Field) OnChange(fn ChangeFunc) { f.onChange = fn }

// OnNavigate registers the edge-navigation callback.
func (f *Field) OnNavigate(fn NavigateFunc) { f.onNavigate = fn }

// ID returns the field's identifier.
func (f *Field) ID() string { return f.id }

// Config returns the field's current configuration.
func (f *Field) Config() Config { return f.cfg }

// SetConfig replaces the field's configuration. The buffer is left alone;
// the new bounds and decimals take effect at the next normalization.
func (f *Field) SetConfig(cfg Config) {
	if cfg.Decimals < 0 {
		cfg.Decimals = DefaultDecimals
	}
	f.cfg = cfg
}

// Value returns the current buffer text verbatim.
func (f *Field) Value() string { return f.input.Value() }

// SetText replaces the buffer verbatim. No validation happens here;
// validation is deferred entirely to commit time.
func (f *Field) SetText(s string) {
	f.input.SetValue(s)
	f.input.CursorEnd()
}

// HasError reports the outcome of the last normalization attempt.
func (f *Field) HasError() bool { return f.hasError }

// Focused reports whether the field currently has focus.
func (f *Field) Focused() bool { return f.input.Focused() }

// SetWidth sets the rendered width of the underlying input.
func (f *Field) SetWidth(w int) { f.input.Width = w }

// Focus gives the field focus for fresh editing: separators are stripped so
// the user is not fighting formatting artifacts, and the cursor moves to the
// start of the buffer.
func (f *Field) Focus() tea.Cmd {
	f.input.SetValue(StripSeparators(f.input.Value()))
	cmd := f.input.Focus()
	f.input.CursorStart()
	return cmd
}

// Blur removes focus without committing. Committing on focus loss is the
// coordinator's call, so it can cancel the move when the commit pins focus.
func (f *Field) Blur() {
	f.input.Blur()
}

// Update routes a message through the field's key filter and, where allowed,
// into the underlying textinput.
func (f *Field) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		return f.handleKey(key)
	}
	return f.passthrough(msg)
}

// View renders the underlying input.
func (f *Field) View() string {
	return f.input.View()
}

// handleKey implements the character filter and edge-navigation rules.
// Exactly one action fires per key event.
func (f *Field) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyTab, tea.KeyEnter:
		// Commit without reaching for the mouse. The field stays
		// focused; the buffer settles in place.
		f.Commit()
		return nil

	case tea.KeyUp:
		f.requestNavigation(Previous)
		return nil

	case tea.KeyDown:
		f.requestNavigation(Next)
		return nil

	case tea.KeyLeft:
		if f.input.Position() == 0 {
			f.requestNavigation(Previous)
			return nil
		}
		return f.passthrough(msg)

	case tea.KeyRight:
		if f.input.Position() >= len([]rune(f.input.Value())) {
			f.requestNavigation(Next)
			return nil
		}
		return f.passthrough(msg)

	case tea.KeyBackspace, tea.KeyDelete:
		return f.passthrough(msg)

	case tea.KeyRunes, tea.KeySpace:
		return f.handleRunes(msg)

	default:
		// Accelerator chords pass through so copy/paste/select-all
		// shortcuts keep working; everything else is swallowed.
		if msg.Alt || strings.HasPrefix(msg.String(), "ctrl+") {
			return f.passthrough(msg)
		}
		return nil
	}
}

// handleRunes filters printable input against the allowed character set.
func (f *Field) handleRunes(msg tea.KeyMsg) tea.Cmd {
	if msg.Alt || msg.Paste {
		return f.passthrough(msg)
	}
	if len(msg.Runes) != 1 {
		return f.passthrough(msg)
	}

	r := msg.Runes[0]
	if r == ',' {
		// Comma is a decimal-point alias.
		msg.Runes = []rune{'.'}
		r = '.'
	}

	if r == '=' {
		// "=" introduces a formula and only makes sense as the first
		// character of the buffer.
		if f.input.Position() != 0 || strings.HasPrefix(f.input.Value(), "=") {
			return nil
		}
		return f.passthrough(msg)
	}

	if !allowedRune(r) {
		return nil
	}

	if f.cfg.ClampWhileTyping && r >= '0' && r <= '9' && f.fractionFull() {
		f.Commit()
		return nil
	}

	return f.passthrough(msg)
}

// allowedRune reports whether r may be typed into the buffer. Comma and "="
// are handled separately by handleRunes.
func allowedRune(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	switch r {
	case '.', '-', '+', '/', '*', '(', ')':
		return true
	}
	return false
}

// fractionFull reports whether the cursor sits in a fraction that already
// has the configured number of digits. Formula buffers are exempt.
func (f *Field) fractionFull() bool {
	v := f.input.Value()
	if strings.HasPrefix(v, "=") {
		return false
	}
	dot := strings.IndexByte(v, '.')
	if dot < 0 || f.input.Position() <= dot {
		return false
	}
	return len(v)-dot-1 >= f.cfg.Decimals
}

// passthrough hands the message to the underlying textinput.
func (f *Field) passthrough(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// requestNavigation forwards an edge-navigation request to the coordinator.
func (f *Field) requestNavigation(d Direction) {
	logging.Debug("navigation requested",
		zap.String("field", f.id),
		zap.Stringer("direction", d),
	)
	if f.onNavigate != nil {
		f.onNavigate(d, f.id)
	}
}

// Commit normalizes the buffer: strip separators, evaluate a leading "="
// formula, parse, range-check, then write back the formatted value and fire
// the change callback. The returned error is one of the sentinel commit
// errors (or nil); callers decide focus policy through RetainsFocus.
func (f *Field) Commit() error {
	// The error flag is recomputed from scratch on every normalization.
	f.hasError = false

	text := StripSeparators(f.input.Value())
	if text == "" {
		// Empty is a valid "no value" resting state.
		return nil
	}

	if rest, ok := strings.CutPrefix(text, "="); ok {
		v, err := f.evaluate(rest)
		if err != nil {
			f.hasError = true
			logging.Debug("formula rejected",
				zap.String("field", f.id),
				zap.String("expression", rest),
				zap.Error(err),
			)
			return fmt.Errorf("%w: %v", ErrFormula, err)
		}
		text = strconv.FormatFloat(v, 'f', f.cfg.Decimals, 64)
	}

	// ParseFloat also accepts "NaN" and "Inf" spellings, which can only
	// arrive via paste. Neither is a number the field can hold.
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		f.hasError = true
		return fmt.Errorf("%w: %q", ErrParse, text)
	}

	return f.settle(v)
}

// WheelAdjust steps the value by one configured step: up is positive, down
// is negative. It is a complete commit cycle independent of blur and only
// active when step is bounded. An unparsable buffer steps from zero.
func (f *Field) WheelAdjust(direction int) error {
	if !f.cfg.Step.Bounded() || direction == 0 {
		return nil
	}

	cur, err := strconv.ParseFloat(StripSeparators(f.input.Value()), 64)
	if err != nil || math.IsNaN(cur) || math.IsInf(cur, 0) {
		cur = 0
	}

	f.hasError = false
	return f.settle(cur + float64(direction)*f.cfg.Step.Value())
}

// settle range-checks v, writes back the formatted text, and fires the
// change callback. An out-of-range value is still written back; the error
// flag is its only consequence.
func (f *Field) settle(v float64) error {
	var err error
	switch {
	case f.cfg.Min.Bounded() && v < f.cfg.Min.Value():
		err = fmt.Errorf("%w: %g below minimum %g", ErrRange, v, f.cfg.Min.Value())
	case f.cfg.Max.Bounded() && v > f.cfg.Max.Value():
		err = fmt.Errorf("%w: %g above maximum %g", ErrRange, v, f.cfg.Max.Value())
	}
	f.hasError = err != nil

	formatted := FormatValue(v, f.cfg.Decimals)
	f.input.SetValue(formatted)
	f.input.CursorEnd()

	logging.Debug("value settled",
		zap.String("field", f.id),
		zap.String("formatted", formatted),
		zap.Bool("in_range", err == nil),
	)

	if f.onChange != nil {
		f.onChange(f.id, formatted)
	}
	return err
}

// evaluate runs the external evaluator, guarding against a missing one.
func (f *Field) evaluate(expression string) (float64, error) {
	if f.evaluator == nil {
		return 0, fmt.Errorf("no evaluator configured")
	}
	return f.evaluator.Evaluate(expression)
}
