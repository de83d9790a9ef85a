package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/marquee/internal/apierror"
	"github.com/five82/marquee/internal/maintenance"
	"github.com/five82/marquee/internal/notify"
)

// uiTick is the refresh cadence at which models re-snapshot the stores.
const uiTick = 500 * time.Millisecond

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(uiTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// opDoneMsg reports a settled store operation. The stores already hold
// the outcome; the message only triggers a redraw.
type opDoneMsg struct{ err error }

func dispatch(op func() error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: op()}
	}
}

// renderToast renders the global error notification, or "" while the
// channel has nothing visible.
func renderToast(styles Styles, snap notify.Snapshot) string {
	if !snap.Visible || snap.Current == nil {
		return ""
	}
	env := snap.Current

	var b strings.Builder
	fmt.Fprintf(&b, "Error %d: %s", env.Code, env.Error())
	if env.Class == apierror.ClassValidation {
		for _, field := range env.Fields() {
			fmt.Fprintf(&b, "\n  %s: %s", field.Field, field.Message)
		}
	}
	b.WriteString("\n")
	b.WriteString("x dismiss · h hide")
	return styles.Toast.Render(b.String())
}

// renderMaintenance renders the fixed full-page fallback shown while
// the gate is latched.
func renderMaintenance(styles Styles, gate *maintenance.Gate) string {
	since := ""
	if last := gate.LastUpdated(); !last.IsZero() {
		since = "\nsince " + last.Format("15:04:05")
	}
	return styles.Fallback.Render(
		"Service temporarily unavailable\n" +
			"The backend is in a maintenance window." + since +
			"\n\nm retry · q quit")
}

// historyLine summarizes the error history for the footer.
func historyLine(snap notify.Snapshot) string {
	if len(snap.History) == 0 {
		return ""
	}
	return fmt.Sprintf("%d recent error(s)", len(snap.History))
}

// pageLabel formats 1-based pagination for display regardless of the
// domain's index convention.
func pageLabel(displayPage, totalPages, total int) string {
	if totalPages <= 0 {
		return fmt.Sprintf("page %d", displayPage)
	}
	return fmt.Sprintf("page %d/%d · %d total", displayPage, totalPages, total)
}
