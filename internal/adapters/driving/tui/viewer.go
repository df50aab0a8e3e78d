// Package tui provides the interactive transcript viewer.
//
// The viewer is a bubbletea program that pages through cleaned entries,
// one block per entry: speaker and time on the first line, speech wrapped
// beneath. Speakers are coloured so interviewer and participant turns are
// easy to tell apart.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tclean/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tclean/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tclean/internal/core/domain"
)

// Filter restricts which speakers are shown.
type Filter int

// Speaker filters, in cycle order.
const (
	FilterAll Filter = iota
	FilterInterviewer
	FilterParticipant
)

// String returns the filter label shown in the status bar.
func (f Filter) String() string {
	switch f {
	case FilterInterviewer:
		return "interviewer"
	case FilterParticipant:
		return "participant"
	default:
		return "all"
	}
}

func (f Filter) next() Filter {
	return (f + 1) % 3
}

func (f Filter) allows(e domain.TranscriptEntry) bool {
	switch f {
	case FilterInterviewer:
		return e.IsInterviewer()
	case FilterParticipant:
		return !e.IsInterviewer()
	default:
		return true
	}
}

// Chrome lines around the viewport: title with its border, and the footer.
const (
	headerHeight = 2
	footerHeight = 1
)

// Viewer is the bubbletea model for paging through a transcript.
type Viewer struct {
	title   string
	entries []domain.TranscriptEntry

	styles *styles.Styles
	keys   *keymap.KeyMap
	help   help.Model

	viewport viewport.Model
	ready    bool
	width    int
	height   int

	filter  Filter
	shown   int
	offsets []int
}

// NewViewer creates a viewer for entries. title is shown in the header,
// typically the transcript path.
func NewViewer(title string, entries []domain.TranscriptEntry) *Viewer {
	return &Viewer{
		title:   title,
		entries: entries,
		styles:  styles.DefaultStyles(),
		keys:    keymap.DefaultKeyMap(),
		help:    help.New(),
	}
}

// Init implements tea.Model.
func (v *Viewer) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.resize(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *Viewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !v.ready {
		if key.Matches(msg, v.keys.Quit) {
			return v, tea.Quit
		}
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	case key.Matches(msg, v.keys.Help):
		v.help.ShowAll = !v.help.ShowAll
	case key.Matches(msg, v.keys.Up):
		v.scrollTo(v.viewport.YOffset - 1)
	case key.Matches(msg, v.keys.Down):
		v.scrollTo(v.viewport.YOffset + 1)
	case key.Matches(msg, v.keys.PageUp):
		v.scrollTo(v.viewport.YOffset - v.viewport.Height)
	case key.Matches(msg, v.keys.PageDown):
		v.scrollTo(v.viewport.YOffset + v.viewport.Height)
	case key.Matches(msg, v.keys.Top):
		v.scrollTo(0)
	case key.Matches(msg, v.keys.Bottom):
		v.scrollTo(v.viewport.TotalLineCount())
	case key.Matches(msg, v.keys.NextEntry):
		v.scrollTo(v.nextOffset(v.viewport.YOffset))
	case key.Matches(msg, v.keys.PrevEntry):
		v.scrollTo(v.prevOffset(v.viewport.YOffset))
	case key.Matches(msg, v.keys.Filter):
		v.filter = v.filter.next()
		v.render()
		v.scrollTo(0)
	}

	return v, nil
}

// View implements tea.Model.
func (v *Viewer) View() string {
	if !v.ready {
		return "Loading..."
	}

	header := v.styles.Title.Width(v.width).Render(truncate(v.title, v.width))
	return lipgloss.JoinVertical(lipgloss.Left, header, v.viewport.View(), v.footer())
}

func (v *Viewer) footer() string {
	if v.help.ShowAll {
		return v.help.View(v.keys)
	}
	status := fmt.Sprintf("%d/%d entries · filter: %s · %3.f%%",
		v.shown, len(v.entries), v.filter, v.viewport.ScrollPercent()*100)
	left := v.styles.StatusBar.Render(status)
	right := v.help.View(v.keys)
	gap := v.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (v *Viewer) resize(width, height int) {
	v.width = width
	v.height = height
	v.help.Width = width

	body := height - headerHeight - footerHeight
	if body < 1 {
		body = 1
	}

	if !v.ready {
		v.viewport = viewport.New(width, body)
		v.ready = true
	} else {
		v.viewport.Width = width
		v.viewport.Height = body
	}
	v.render()
}

// render lays out the entries allowed by the filter and records the line
// at which each one starts.
func (v *Viewer) render() {
	var b strings.Builder
	v.offsets = v.offsets[:0]
	v.shown = 0
	line := 0

	speechWidth := v.width - 2
	if speechWidth < 20 {
		speechWidth = 20
	}

	for _, e := range v.entries {
		if !v.filter.allows(e) {
			continue
		}
		v.offsets = append(v.offsets, line)
		v.shown++

		block := v.styles.Speaker(e.IsInterviewer()).Render(e.Speaker) + " " +
			v.styles.Time.Render(e.Time) + "\n" +
			v.styles.Speech.Width(speechWidth).Render(e.Speech) + "\n\n"
		b.WriteString(block)
		line += strings.Count(block, "\n")
	}

	if v.shown == 0 {
		b.WriteString(v.styles.Error.Render("No entries to show."))
	}

	v.viewport.SetContent(strings.TrimRight(b.String(), "\n"))
}

func (v *Viewer) scrollTo(offset int) {
	if offset < 0 {
		offset = 0
	}
	v.viewport.SetYOffset(offset)
}

// nextOffset returns the first entry start below current, or current when
// there is none.
func (v *Viewer) nextOffset(current int) int {
	for _, off := range v.offsets {
		if off > current {
			return off
		}
	}
	return current
}

// prevOffset returns the last entry start above current, or 0.
func (v *Viewer) prevOffset(current int) int {
	prev := 0
	for _, off := range v.offsets {
		if off >= current {
			break
		}
		prev = off
	}
	return prev
}

func truncate(s string, width int) string {
	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	keep := width - 3
	if keep > len(r) {
		keep = len(r)
	}
	// Keep the tail: the file name is the informative part of a path.
	return "..." + string(r[len(r)-keep:])
}

// Run starts the viewer full screen and blocks until the user quits.
func Run(title string, entries []domain.TranscriptEntry, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(NewViewer(title, entries), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
