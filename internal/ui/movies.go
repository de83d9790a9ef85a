package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/marquee/internal/maintenance"
	"github.com/five82/marquee/internal/movieapi"
	"github.com/five82/marquee/internal/notify"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
)

// MovieOptions configure the movie console model.
type MovieOptions struct {
	Context   context.Context
	Store     *state.MovieStore
	Notes     *notify.Channel
	Gate      *maintenance.Gate
	Registry  *state.Registry
	PrefsPath string
}

// MovieModel is the Bubble Tea model for the movie search console. It
// has two screens: the search/results list and a details page for one
// movie. Leaving the details page clears the current-movie slot.
type MovieModel struct {
	ctx       context.Context
	store     *state.MovieStore
	notes     *notify.Channel
	gate      *maintenance.Gate
	registry  *state.Registry
	prefsPath string

	input    textinput.Model
	spin     spinner.Model
	details  bool
	selected int
	width    int
	height   int
}

// NewMovieModel builds the model and wires its stores.
func NewMovieModel(opts MovieOptions) MovieModel {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	input := textinput.New()
	input.Placeholder = "search movies"
	input.CharLimit = 200
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := MovieModel{
		ctx:       ctx,
		store:     opts.Store,
		notes:     opts.Notes,
		gate:      opts.Gate,
		registry:  opts.Registry,
		prefsPath: opts.PrefsPath,
		input:     input,
		spin:      spin,
	}
	if opts.PrefsPath != "" {
		if last := prefs.Load(opts.PrefsPath).LastSearch; last != "" {
			m.input.SetValue(last)
		}
	}
	return m
}

// Init implements tea.Model.
func (m MovieModel) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, tickCmd(), m.spin.Tick)
}

// Update implements tea.Model.
func (m MovieModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		if m.details {
			return m.updateDetails(msg)
		}
		return m.updateSearch(msg)
	}
	return m, nil
}

func (m MovieModel) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.details = false
		m.store.ClearCurrent()
		return m, nil
	case "x":
		m.notes.Dismiss()
		return m, nil
	case "h":
		m.notes.Hide()
		return m, nil
	case "m":
		m.gate.Disable()
		return m, nil
	}
	return m, nil
}

func (m MovieModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.store.Snapshot()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m, tea.Quit
	case "enter":
		return m.submitSearch()
	case "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down":
		if snap.Results != nil && m.selected < len(snap.Results.Movies)-1 {
			m.selected++
		}
		return m, nil
	case "ctrl+n":
		m.store.SetPage(snap.Params.Page + 1)
		return m, dispatch(func() error { return m.store.Search(m.ctx) })
	case "ctrl+p":
		m.store.SetPage(snap.Params.Page - 1)
		return m, dispatch(func() error { return m.store.Search(m.ctx) })
	case "ctrl+o":
		if movie, ok := selectedMovie(snap, m.selected); ok {
			m.details = true
			id := movie.ImdbID
			return m, dispatch(func() error { return m.store.Details(m.ctx, id) })
		}
		return m, nil
	case "ctrl+x":
		m.notes.Dismiss()
		return m, nil
	case "ctrl+h":
		m.notes.Hide()
		return m, nil
	case "ctrl+r":
		m.gate.Disable()
		return m, nil
	case "ctrl+l":
		m.store.ClearHistory()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m MovieModel) submitSearch() (tea.Model, tea.Cmd) {
	term := strings.TrimSpace(m.input.Value())
	if term == "" {
		return m, nil
	}
	m.selected = 0
	m.store.SetQuery(term, 0, "")
	if m.prefsPath != "" {
		p := prefs.Load(m.prefsPath)
		p.LastSearch = term
		_ = prefs.Save(m.prefsPath, p)
	}
	return m, dispatch(func() error { return m.store.Search(m.ctx) })
}

func (m *MovieModel) clampSelection() {
	snap := m.store.Snapshot()
	count := 0
	if snap.Results != nil {
		count = len(snap.Results.Movies)
	}
	if count == 0 {
		m.selected = 0
	} else if m.selected >= count {
		m.selected = count - 1
	}
}

func selectedMovie(snap state.MovieSnapshot, idx int) (movieapi.Movie, bool) {
	if snap.Results == nil || idx < 0 || idx >= len(snap.Results.Movies) {
		return movieapi.Movie{}, false
	}
	return snap.Results.Movies[idx], true
}

// View implements tea.Model.
func (m MovieModel) View() string {
	styles := ThemeFor(m.registry).Styles()

	if m.gate.Active() {
		return renderMaintenance(styles, m.gate)
	}

	snap := m.store.Snapshot()
	noteSnap := m.notes.Snapshot()

	if m.details {
		return m.viewDetails(styles, snap, noteSnap)
	}
	return m.viewSearch(styles, snap, noteSnap)
}

func (m MovieModel) viewSearch(styles Styles, snap state.MovieSnapshot, noteSnap notify.Snapshot) string {
	var b strings.Builder
	b.WriteString(styles.Header.Render("marquee · movie search"))
	b.WriteString("\n\n")
	b.WriteString(styles.Accent.Render("search: "))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if snap.Results == nil {
		b.WriteString(styles.Muted.Render("type a title and press enter"))
		b.WriteString("\n")
	} else if len(snap.Results.Movies) == 0 {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("no results for %q", snap.Results.SearchTerm)))
		b.WriteString("\n")
	} else {
		for i, movie := range snap.Results.Movies {
			b.WriteString(renderMovieRow(styles, movie, i == m.selected))
			b.WriteString("\n")
		}
	}

	if len(snap.History) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("recent: " + strings.Join(snap.History, ", ")))
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

func (m MovieModel) viewDetails(styles Styles, snap state.MovieSnapshot, noteSnap notify.Snapshot) string {
	var b strings.Builder
	b.WriteString(styles.Header.Render("marquee · movie details"))
	b.WriteString("\n\n")

	switch {
	case snap.Current != nil:
		movie := snap.Current
		b.WriteString(styles.Accent.Render(fmt.Sprintf("%s (%s)", movie.Title, movie.Year)))
		b.WriteString("\n\n")
		for _, line := range detailLines(movie) {
			b.WriteString(styles.Text.Render(line))
			b.WriteString("\n")
		}
	case snap.Loading:
		b.WriteString(m.spin.View())
		b.WriteString(styles.Muted.Render("loading details"))
		b.WriteString("\n")
	default:
		b.WriteString(styles.Muted.Render("no movie loaded"))
		b.WriteString("\n")
	}

	if snap.Err != "" {
		b.WriteString("\n")
		b.WriteString(styles.Danger.Render(snap.Err))
		b.WriteString("\n")
	}
	if toast := renderToast(styles, noteSnap); toast != "" {
		b.WriteString("\n")
		b.WriteString(toast)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("esc back · q quit"))
	return b.String()
}

func renderMovieRow(styles Styles, movie movieapi.Movie, selected bool) string {
	row := fmt.Sprintf("  %-45s %s  %s", movie.Title, movie.Year, movie.Type)
	if selected {
		return styles.Selected.Render(row)
	}
	return styles.Text.Render(row)
}

func detailLines(movie *movieapi.Movie) []string {
	pairs := []struct{ label, value string }{
		{"rated", movie.Rated},
		{"released", movie.Released},
		{"runtime", movie.Runtime},
		{"genre", movie.Genre},
		{"director", movie.Director},
		{"actors", movie.Actors},
		{"plot", movie.Plot},
		{"rating", movie.ImdbRating},
		{"awards", movie.Awards},
	}
	lines := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if pair.value == "" || pair.value == "N/A" {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %-9s %s", pair.label, pair.value))
	}
	return lines
}

func (m MovieModel) footer(styles Styles, snap state.MovieSnapshot, noteSnap notify.Snapshot) string {
	var parts []string
	if snap.Results != nil {
		parts = append(parts, pageLabel(snap.Results.CurrentPage, snap.Results.TotalPages, snap.Results.TotalResults))
		if snap.Duplicates.Duplicates > 0 {
			parts = append(parts, styles.Warning.Render(
				fmt.Sprintf("%d duplicate(s) collapsed", snap.Duplicates.Duplicates)))
		}
	}
	if snap.Loading {
		parts = append(parts, m.spin.View()+"searching")
	}
	if snap.Err != "" {
		parts = append(parts, styles.Danger.Render(snap.Err))
	}
	if line := historyLine(noteSnap); line != "" {
		parts = append(parts, styles.Muted.Render(line))
	}
	help := "enter search · ctrl+n/p page · ctrl+o details · ctrl+l clear history · esc quit"
	return styles.Muted.Render(strings.Join(parts, "  ·  ") + "\n" + help)
}
