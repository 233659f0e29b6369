package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/numform/numform/internal/config"
	"github.com/numform/numform/internal/field"
	"github.com/numform/numform/internal/logging"
	"github.com/numform/numform/internal/ui"
)

// Settings pane input indices
const (
	settingMin = iota
	settingMax
	settingStep
	settingDecimals
	settingCount
)

var settingLabels = [settingCount]string{"Min", "Max", "Step", "Decimals"}

// navRequest carries a pending navigation request from a field callback to
// the update loop. It lives behind a pointer so field closures observe the
// same request across Bubble Tea's model copies.
type navRequest struct {
	direction field.Direction
	fromID    string
	pending   bool
}

// formKeyMap defines key bindings surfaced in the help bar
type formKeyMap struct {
	Prev     key.Binding
	Next     key.Binding
	Commit   key.Binding
	Settings key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Commit, k.Settings, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Commit},
		{k.Settings, k.Quit},
	}
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Prev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous field"),
		),
		Next: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next field"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter", "tab"),
			key.WithHelp("enter", "commit value"),
		),
		Settings: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "settings"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// Model is the form coordinator: it owns the ordered field list, the shared
// configuration scalars, and focus. Fields never touch each other; every
// cross-field move goes through navigate.
type Model struct {
	fields  []field.Field
	order   []string // immutable navigation order, no duplicates
	focused int

	shared  field.Config // the four scalars handed to every field
	nav     *navRequest
	persist *config.Config

	// Settings pane (simple text boxes editing the shared scalars)
	settingsOpen  bool
	settingsFocus int
	settings      [settingCount]textinput.Model
	settingsErr   string

	keys formKeyMap
	help help.Model

	width  int
	height int
}

// New builds the form from persisted configuration. The evaluator is handed
// to every field; it resolves "=" formulas at commit time.
func New(persist *config.Config, evaluator field.Evaluator) (Model, error) {
	shared, err := sharedConfig(persist)
	if err != nil {
		return Model{}, err
	}

	nav := &navRequest{}
	count := persist.Fields
	if count < 1 {
		count = 1
	}

	fields := make([]field.Field, count)
	order := make([]string, count)
	for i := range fields {
		id := fmt.Sprintf("field-%d", i+1)
		order[i] = id
		fields[i] = field.New(id, shared, evaluator)
		fields[i].OnNavigate(func(d field.Direction, fromID string) {
			nav.direction = d
			nav.fromID = fromID
			nav.pending = true
		})
	}

	m := Model{
		fields:  fields,
		order:   order,
		shared:  shared,
		nav:     nav,
		persist: persist,
		keys:    newFormKeyMap(),
		help:    help.New(),
	}
	// Seed the layout from the terminal so the first paint is sized before
	// the program delivers a tea.WindowSizeMsg.
	m.width, m.height = ui.GetTerminalSize()
	m.help.Width = m.width
	m.initSettingsInputs()
	return m, nil
}

// sharedConfig parses the persisted bound sentinels into a field config.
func sharedConfig(persist *config.Config) (field.Config, error) {
	min, err := field.ParseBound(persist.Min)
	if err != nil {
		return field.Config{}, fmt.Errorf("min: %w", err)
	}
	max, err := field.ParseBound(persist.Max)
	if err != nil {
		return field.Config{}, fmt.Errorf("max: %w", err)
	}
	step, err := field.ParseBound(persist.Step)
	if err != nil {
		return field.Config{}, fmt.Errorf("step: %w", err)
	}
	decimals := persist.Decimals
	if decimals < 0 {
		return field.Config{}, fmt.Errorf("decimals: must not be negative, got %d", decimals)
	}
	return field.Config{Min: min, Max: max, Step: step, Decimals: decimals}, nil
}

func (m *Model) initSettingsInputs() {
	values := [settingCount]string{
		m.persist.Min,
		m.persist.Max,
		m.persist.Step,
		strconv.Itoa(m.persist.Decimals),
	}
	for i := range m.settings {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 12
		ti.SetValue(values[i])
		m.settings[i] = ti
	}
}

// OnChange registers fn as the settled-value callback on every field.
func (m *Model) OnChange(fn field.ChangeFunc) {
	for i := range m.fields {
		m.fields[i].OnChange(fn)
	}
}

// Order returns the navigation order.
func (m *Model) Order() []string {
	return m.order
}

// FocusedID returns the identifier of the focused field.
func (m *Model) FocusedID() string {
	if len(m.order) == 0 {
		return ""
	}
	return m.order[m.focused]
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	return m.fields[m.focused].Focus()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEsc {
			return m.toggleSettings()
		}
		if m.settingsOpen {
			return m.updateSettings(msg)
		}
		if len(m.fields) == 0 {
			return m, nil
		}
		cmd := m.fields[m.focused].Update(msg)
		navCmd := m.resolveNavigation()
		return m, tea.Batch(cmd, navCmd)
	}

	if m.settingsOpen {
		var cmd tea.Cmd
		m.settings[m.settingsFocus], cmd = m.settings[m.settingsFocus].Update(msg)
		return m, cmd
	}
	if len(m.fields) > 0 {
		return m, m.fields[m.focused].Update(msg)
	}
	return m, nil
}

// handleMouse drives step adjustment from the scroll wheel. A wheel tick is
// a complete commit cycle on the focused field, independent of blur.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.settingsOpen || len(m.fields) == 0 || msg.Action != tea.MouseActionPress {
		return m, nil
	}
	f := &m.fields[m.focused]
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if err := f.WheelAdjust(1); err != nil {
			logging.LogCommit(f.ID(), f.Value(), err)
		}
	case tea.MouseButtonWheelDown:
		if err := f.WheelAdjust(-1); err != nil {
			logging.LogCommit(f.ID(), f.Value(), err)
		}
	}
	return m, nil
}

// resolveNavigation honors at most one navigation request generated by the
// event that was just dispatched.
func (m *Model) resolveNavigation() tea.Cmd {
	if !m.nav.pending {
		return nil
	}
	m.nav.pending = false
	return m.navigate(m.nav.direction, m.nav.fromID)
}

// navigate moves focus from the requesting field to its neighbour,
// wrapping at both ends. Focus leaving the source commits it; a commit
// error that pins focus cancels the move. Navigation is best-effort: an
// unknown source or a target that cannot take focus is a silent no-op.
func (m *Model) navigate(direction field.Direction, fromID string) tea.Cmd {
	i := m.indexOf(fromID)
	if i < 0 || len(m.order) == 0 {
		return nil
	}

	src := m.fieldByID(fromID)
	if src != nil {
		if err := src.Commit(); err != nil {
			logging.LogCommit(fromID, src.Value(), err)
			if field.RetainsFocus(err) {
				// The user must correct the buffer before leaving.
				return nil
			}
		}
	}

	step := 1
	if direction == field.Previous {
		step = len(m.order) - 1
	}
	j := (i + step) % len(m.order)

	target := m.fieldByID(m.order[j])
	if target == nil {
		// Unmounted target: navigation is a best-effort affordance.
		return nil
	}

	if src != nil {
		src.Blur()
	}
	cmd := target.Focus()
	m.focused = j
	logging.LogNavigation(direction.String(), fromID, target.ID())
	return cmd
}

// indexOf returns fromID's position in the navigation order, or -1.
func (m *Model) indexOf(id string) int {
	for i, o := range m.order {
		if o == id {
			return i
		}
	}
	return -1
}

// fieldByID returns the mounted field for id, or nil.
func (m *Model) fieldByID(id string) *field.Field {
	for i := range m.fields {
		if m.fields[i].ID() == id {
			return &m.fields[i]
		}
	}
	return nil
}

// toggleSettings opens or closes the settings pane. Opening takes focus from
// the field, and focus loss commits: a commit error that pins focus cancels
// the pane, same as navigation. Closing without apply discards the pane's
// edits.
func (m Model) toggleSettings() (tea.Model, tea.Cmd) {
	if m.settingsOpen {
		m.settingsOpen = false
		m.settingsErr = ""
		m.settings[m.settingsFocus].Blur()
		if len(m.fields) > 0 {
			return m, m.fields[m.focused].Focus()
		}
		return m, nil
	}

	if len(m.fields) > 0 {
		f := &m.fields[m.focused]
		if err := f.Commit(); err != nil {
			logging.LogCommit(f.ID(), f.Value(), err)
			if field.RetainsFocus(err) {
				return m, nil
			}
		}
		f.Blur()
	}
	m.settingsOpen = true
	m.settingsFocus = 0
	m.initSettingsInputs()
	return m, m.settings[0].Focus()
}

// updateSettings handles input while the settings pane is open.
func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp, tea.KeyShiftTab:
		return m.focusSetting((m.settingsFocus + settingCount - 1) % settingCount)
	case tea.KeyDown, tea.KeyTab:
		return m.focusSetting((m.settingsFocus + 1) % settingCount)
	case tea.KeyEnter:
		return m.applySettings()
	}

	var cmd tea.Cmd
	m.settings[m.settingsFocus], cmd = m.settings[m.settingsFocus].Update(msg)
	return m, cmd
}

func (m Model) focusSetting(i int) (tea.Model, tea.Cmd) {
	m.settings[m.settingsFocus].Blur()
	m.settingsFocus = i
	return m, m.settings[i].Focus()
}

// applySettings re-parses the four scalars, re-parameterizes every field,
// persists the configuration, and closes the pane. A parse failure keeps
// the pane open with the error shown; nothing is partially applied.
func (m Model) applySettings() (tea.Model, tea.Cmd) {
	next := &config.Config{
		Version:  m.persist.Version,
		Fields:   m.persist.Fields,
		Min:      strings.TrimSpace(m.settings[settingMin].Value()),
		Max:      strings.TrimSpace(m.settings[settingMax].Value()),
		Step:     strings.TrimSpace(m.settings[settingStep].Value()),
		Decimals: m.persist.Decimals,
	}

	decimals, err := strconv.Atoi(strings.TrimSpace(m.settings[settingDecimals].Value()))
	if err != nil || decimals < 0 {
		m.settingsErr = "decimals must be a whole number ≥ 0"
		return m, nil
	}
	next.Decimals = decimals

	shared, err := sharedConfig(next)
	if err != nil {
		m.settingsErr = err.Error()
		return m, nil
	}

	m.shared = shared
	*m.persist = *next
	for i := range m.fields {
		m.fields[i].SetConfig(shared)
	}

	if err := config.Save(m.persist); err != nil {
		// The form still runs with the new settings; only persistence failed.
		logging.Warn("failed to save configuration", zap.Error(err))
	}
	logging.Info("settings applied",
		zap.String("min", next.Min),
		zap.String("max", next.Max),
		zap.String("step", next.Step),
		zap.Int("decimals", next.Decimals),
	)

	m.settingsOpen = false
	m.settingsErr = ""
	m.settings[m.settingsFocus].Blur()
	if len(m.fields) > 0 {
		return m, m.fields[m.focused].Focus()
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("numform"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf(
		"min %s · max %s · step %s · %d decimals",
		m.shared.Min, m.shared.Max, m.shared.Step, m.shared.Decimals,
	)))
	b.WriteString("\n\n")

	if m.settingsOpen {
		b.WriteString(m.viewSettings())
	} else {
		b.WriteString(m.viewFields())
	}

	content := b.String()
	footer := helpStyle.Render(m.help.View(m.keys))

	// Pin the help bar to the bottom of the window and truncate overlong
	// lines at the terminal edge.
	if pad := m.height - lipgloss.Height(content+footer); pad > 0 {
		content += strings.Repeat("\n", pad)
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(content + footer)
}

func (m Model) viewFields() string {
	var b strings.Builder
	for i := range m.fields {
		f := &m.fields[i]

		label := labelStyle
		box := fieldStyle
		if f.Focused() {
			label = labelFocusedStyle
			box = fieldFocusedStyle
		}
		if f.HasError() {
			box = fieldErrorStyle
		}

		parts := []string{
			label.Render(fmt.Sprintf("Field %d", i+1)),
			box.Render(f.View()),
		}
		if f.HasError() {
			parts = append(parts, errorMarkStyle.Render(" "+errorMark))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, parts...))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewSettings() string {
	var b strings.Builder
	b.WriteString(settingsTitleStyle.Render("Settings"))
	b.WriteString("\n")
	for i := range m.settings {
		label := labelStyle
		box := fieldStyle
		if i == m.settingsFocus {
			label = labelFocusedStyle
			box = fieldFocusedStyle
		}
		b.WriteString(lipgloss.JoinHorizontal(
			lipgloss.Center,
			label.Render(settingLabels[i]),
			box.Render(m.settings[i].View()),
		))
		b.WriteString("\n")
	}
	if m.settingsErr != "" {
		b.WriteString(settingsErrStyle.Render(m.settingsErr))
		b.WriteString("\n")
	}
	b.WriteString(subtitleStyle.Render("enter apply · esc cancel · * means unbounded"))
	b.WriteString("\n")
	return b.String()
}
