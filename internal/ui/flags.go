package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/marquee/internal/flagapi"
	"github.com/five82/marquee/internal/maintenance"
	"github.com/five82/marquee/internal/notify"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
)

// FlagOptions configure the flag console model.
type FlagOptions struct {
	Context   context.Context
	Store     *state.FlagStore
	Notes     *notify.Channel
	Gate      *maintenance.Gate
	Registry  *state.Registry
	PrefsPath string
}

// FlagModel is the Bubble Tea model for the feature-flag admin console.
type FlagModel struct {
	ctx       context.Context
	store     *state.FlagStore
	notes     *notify.Channel
	gate      *maintenance.Gate
	registry  *state.Registry
	prefsPath string

	input    textinput.Model
	spin     spinner.Model
	creating bool
	selected int
	width    int
	height   int
}

// NewFlagModel builds the model and wires its stores.
func NewFlagModel(opts FlagOptions) FlagModel {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	input := textinput.New()
	input.Placeholder = "new flag name"
	input.CharLimit = 100

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return FlagModel{
		ctx:       ctx,
		store:     opts.Store,
		notes:     opts.Notes,
		gate:      opts.Gate,
		registry:  opts.Registry,
		prefsPath: opts.PrefsPath,
		input:     input,
		spin:      spin,
	}
}

// Init implements tea.Model.
func (m FlagModel) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(),
		m.spin.Tick,
		dispatch(func() error { return m.store.List(m.ctx) }),
	)
}

// Update implements tea.Model.
func (m FlagModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case opDoneMsg:
		m.clampSelection()
		return m, nil

	case tea.KeyMsg:
		if m.creating {
			return m.updateCreate(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m FlagModel) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.creating = false
		m.input.Blur()
		m.input.Reset()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		m.creating = false
		m.input.Blur()
		m.input.Reset()
		if name == "" {
			return m, nil
		}
		return m, dispatch(func() error {
			return m.store.Create(m.ctx, flagapi.CreateFlagRequest{Name: name})
		})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m FlagModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.store.Snapshot()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(snap.Flags)-1 {
			m.selected++
		}
		return m, nil
	case "r":
		return m, dispatch(func() error { return m.store.List(m.ctx) })
	case "n":
		m.store.SetPage(snap.Page + 1)
		return m, dispatch(func() error { return m.store.List(m.ctx) })
	case "p":
		m.store.SetPage(snap.Page - 1)
		return m, dispatch(func() error { return m.store.List(m.ctx) })
	case "+":
		return m.resize(snap.Size + 10)
	case "-":
		return m.resize(snap.Size - 10)
	case "t":
		if flag, ok := selectedFlag(snap, m.selected); ok {
			enabled := !flag.Enabled
			name := flag.Name
			return m, dispatch(func() error {
				return m.store.Update(m.ctx, name, flagapi.UpdateFlagRequest{Enabled: &enabled})
			})
		}
		return m, nil
	case "d":
		if flag, ok := selectedFlag(snap, m.selected); ok {
			name := flag.Name
			return m, dispatch(func() error { return m.store.Delete(m.ctx, name) })
		}
		return m, nil
	case "c":
		m.creating = true
		return m, m.input.Focus()
	case "x":
		m.notes.Dismiss()
		return m, nil
	case "h":
		m.notes.Hide()
		return m, nil
	case "m":
		// Manual gate reset; nothing clears the latch automatically.
		m.gate.Disable()
		return m, dispatch(func() error { return m.store.List(m.ctx) })
	}
	return m, nil
}

func (m FlagModel) resize(size int) (tea.Model, tea.Cmd) {
	if size < 10 {
		size = 10
	}
	m.store.SetPageSize(size)
	if m.prefsPath != "" {
		p := prefs.Load(m.prefsPath)
		p.PageSize = size
		_ = prefs.Save(m.prefsPath, p)
	}
	return m, dispatch(func() error { return m.store.List(m.ctx) })
}

func (m *FlagModel) clampSelection() {
	count := len(m.store.Snapshot().Flags)
	if count == 0 {
		m.selected = 0
	} else if m.selected >= count {
		m.selected = count - 1
	}
}

func selectedFlag(snap state.FlagSnapshot, idx int) (flagapi.Flag, bool) {
	if idx < 0 || idx >= len(snap.Flags) {
		return flagapi.Flag{}, false
	}
	return snap.Flags[idx], true
}

// View implements tea.Model.
func (m FlagModel) View() string {
	styles := ThemeFor(m.registry).Styles()

	if m.gate.Active() {
		return renderMaintenance(styles, m.gate)
	}

	snap := m.store.Snapshot()
	noteSnap := m.notes.Snapshot()

	var b strings.Builder
	b.WriteString(styles.Header.Render("flagdeck · feature flags"))
	b.WriteString("\n\n")

	if m.creating {
		b.WriteString(styles.Accent.Render("create flag: "))
		b.WriteString(m.input.View())
		b.WriteString(styles.Muted.Render("  (enter to save, esc to cancel)"))
		b.WriteString("\n\n")
	}

	if len(snap.Flags) == 0 && !snap.Loading {
		b.WriteString(styles.Muted.Render("no flags on this page"))
		b.WriteString("\n")
	}
	for i, flag := range snap.Flags {
		b.WriteString(renderFlagRow(styles, flag, i == m.selected))
		b.WriteString("\n")
	}

	if toast := renderToast(styles, noteSnap); toast != "" {
		b.WriteString("\n")
		b.WriteString(toast)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer(styles, snap, noteSnap))
	return b.String()
}

func renderFlagRow(styles Styles, flag flagapi.Flag, selected bool) string {
	enabled := styles.Muted.Render("off")
	if flag.Enabled {
		enabled = styles.Success.Render("on ")
	}
	row := fmt.Sprintf("  %s %-30s %s", enabled, flag.Name, flag.Description)
	if selected {
		return styles.Selected.Render(row)
	}
	return styles.Text.Render(row)
}

func (m FlagModel) footer(styles Styles, snap state.FlagSnapshot, noteSnap notify.Snapshot) string {
	parts := []string{pageLabel(snap.Page+1, snap.TotalPages, snap.Total)}
	if snap.Loading {
		parts = append(parts, m.spin.View()+"loading")
	}
	if snap.Err != "" {
		parts = append(parts, styles.Danger.Render(snap.Err))
	}
	if line := historyLine(noteSnap); line != "" {
		parts = append(parts, styles.Muted.Render(line))
	}
	help := "r refresh · n/p page · +/- size · t toggle · c create · d delete · q quit"
	return styles.Muted.Render(strings.Join(parts, "  ·  ") + "\n" + help)
}
