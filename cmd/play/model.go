package play

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gigurra/glass/cmd/common"
	"github.com/gigurra/glass/cmd/jukebox"
	"github.com/gigurra/glass/cmd/library"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 0.05
)

var clipboardWriteAll = clipboard.WriteAll

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	artistStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	playingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))  // Green
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226")) // Yellow
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	lyricStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("117"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	confirmStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// player is the part of the engine the screen drives.
type player interface {
	Toggle(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	Seek(pos time.Duration) error
	SetVolume(v float64) error
	ToggleShuffle() bool
	ToggleRepeat() bool
	Stop() error
}

type snapshotMsg jukebox.Snapshot

type statusMsg string

type updatesClosedMsg struct{}

type model struct {
	player  player
	catalog *library.Catalog
	updates <-chan jukebox.Snapshot
	onTrack func(library.Track)

	snap    jukebox.Snapshot
	lyrics  []library.LyricLine
	trackID string

	status        string
	confirmDelete bool
	helpView      bool
	width         int
}

func newModel(p player, catalog *library.Catalog, updates <-chan jukebox.Snapshot, onTrack func(library.Track)) model {
	return model{
		player:  p,
		catalog: catalog,
		updates: updates,
		onTrack: onTrack,
		width:   80,
	}
}

func (m model) Init() tea.Cmd {
	return waitForSnapshot(m.updates)
}

func waitForSnapshot(updates <-chan jukebox.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return updatesClosedMsg{}
		}
		return snapshotMsg(snap)
	}
}

// do runs an engine intent off the UI loop and reports its error, if any.
func do(intent func() error) tea.Cmd {
	return func() tea.Msg {
		if err := intent(); err != nil {
			return statusMsg(err.Error())
		}
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m = m.applySnapshot(jukebox.Snapshot(msg))
		return m, waitForSnapshot(m.updates)

	case updatesClosedMsg:
		return m, tea.Quit

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.confirmDelete {
			m.confirmDelete = false
			switch msg.String() {
			case "y", "Y":
				return m.deleteCurrent()
			}
			m.status = ""
			return m, nil
		}
		if m.helpView {
			m.helpView = false
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "enter":
		return m, do(func() error { return m.player.Toggle(ctx) })
	case "n":
		return m, do(func() error { return m.player.Next(ctx) })
	case "p":
		return m, do(func() error { return m.player.Previous(ctx) })
	case "left":
		pos := m.snap.Position - seekStep
		return m, do(func() error { return m.player.Seek(max(pos, 0)) })
	case "right":
		pos := m.snap.Position + seekStep
		return m, do(func() error { return m.player.Seek(pos) })
	case "+", "=":
		v := m.snap.Volume + volumeStep
		return m, do(func() error { return m.player.SetVolume(v) })
	case "-", "_":
		v := m.snap.Volume - volumeStep
		return m, do(func() error { return m.player.SetVolume(v) })
	case "s":
		m.status = "shuffle " + onOff(m.player.ToggleShuffle())
	case "r":
		m.status = "repeat " + onOff(m.player.ToggleRepeat())
	case "l":
		return m.toggleLike()
	case "y":
		if m.snap.Track == nil {
			return m, nil
		}
		label := m.snap.Track.Label()
		if err := clipboardWriteAll(label); err != nil {
			m.status = "clipboard: " + err.Error()
		} else {
			m.status = "copied: " + label
		}
	case "d":
		if m.snap.Track != nil {
			m.confirmDelete = true
		}
	case "?":
		m.helpView = true
	}
	return m, nil
}

func (m model) applySnapshot(snap jukebox.Snapshot) model {
	m.snap = snap
	id := ""
	if snap.Track != nil {
		id = snap.Track.ID
	}
	if id == m.trackID {
		return m
	}
	m.trackID = id
	m.lyrics = nil
	if snap.Track != nil {
		m.lyrics = library.ParseLyrics(snap.Track.Lyrics)
		if m.onTrack != nil && snap.Playing() {
			m.onTrack(*snap.Track)
		}
	}
	return m
}

func (m model) toggleLike() (tea.Model, tea.Cmd) {
	if m.snap.Track == nil {
		return m, nil
	}
	t, err := m.catalog.ToggleLike(m.snap.Track.ID)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	// The engine re-reads the catalog on its next snapshot; show it now.
	m.snap.Track = &t
	if t.Liked {
		m.status = "liked"
	} else {
		m.status = "unliked"
	}
	return m, nil
}

func (m model) deleteCurrent() (tea.Model, tea.Cmd) {
	if m.snap.Track == nil {
		return m, nil
	}
	t, err := m.catalog.Delete(m.snap.Track.ID)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = "removed " + t.Label()
	return m, do(m.player.Stop)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func (m model) View() string {
	if m.helpView {
		return m.renderHelpView()
	}

	var b strings.Builder
	width := max(m.width-4, 20)
	b.WriteString("\n")

	t := m.snap.Track
	if t == nil {
		b.WriteString("  " + artistStyle.Render("Nothing playing") + "\n\n")
	} else {
		icon := pausedStyle.Render("⏸")
		if m.snap.Playing() {
			icon = playingStyle.Render("▶")
		}
		heart := ""
		if t.Liked {
			heart = " " + errorStyle.Render("♥")
		}
		b.WriteString(fmt.Sprintf("  %s %s%s\n", icon, titleStyle.Render(common.Truncate(t.Title, width-4)), heart))

		details := t.Artist
		if t.Album != "" {
			details += " · " + t.Album
		}
		if t.Year != "" {
			details += " · " + t.Year
		}
		b.WriteString("    " + artistStyle.Render(common.Truncate(details, width-2)) + "\n\n")
		b.WriteString("    " + m.renderProgress(width-2) + "\n")
	}

	b.WriteString("    " + m.renderBadges() + "\n")

	if i := library.LineAt(m.lyrics, m.snap.Position); i >= 0 {
		b.WriteString("\n    " + lyricStyle.Render(common.Truncate(m.lyrics[i].Text, width-2)) + "\n")
	}
	if m.snap.Err != "" {
		b.WriteString("\n    " + errorStyle.Render(common.Truncate(m.snap.Err, width-2)) + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.confirmDelete && t != nil:
		b.WriteString("  " + confirmStyle.Render("Remove "+common.Truncate(t.Label(), width-20)+" from the library? (y/n)"))
	case m.status != "":
		b.WriteString("  " + badgeStyle.Render(m.status))
	default:
		b.WriteString("  " + helpStyle.Render("space play/pause • n next • p prev • ←/→ seek • +/- volume • ? help • q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m model) renderProgress(width int) string {
	elapsed := common.FormatDuration(m.snap.Position)
	total := "--:--"
	if m.snap.Duration > 0 {
		total = common.FormatDuration(m.snap.Duration)
	}
	times := fmt.Sprintf(" %s / %s", elapsed, total)

	barWidth := max(width-len(times)-2, 10)
	filled := int(m.snap.Progress() * float64(barWidth))
	bar := strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)
	return barStyle.Render(bar) + artistStyle.Render(times)
}

func (m model) renderBadges() string {
	parts := []string{fmt.Sprintf("vol %d%%", int(m.snap.Volume*100+0.5))}
	if m.snap.Status == jukebox.StatusBuffering {
		parts = append(parts, "buffering")
	}
	if m.snap.Shuffle {
		parts = append(parts, "shuffle")
	}
	if m.snap.Repeat {
		parts = append(parts, "repeat")
	}
	if n := len(m.snap.History); n > 0 {
		parts = append(parts, fmt.Sprintf("history %d", n))
	}
	if n := len(m.snap.Queue); n > 0 {
		parts = append(parts, fmt.Sprintf("queue %d", n))
	}
	return badgeStyle.Render(strings.Join(parts, "  "))
}

func (m model) renderHelpView() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Keys") + "\n\n")
	keys := [][2]string{
		{"space", "play / pause"},
		{"n", "next track"},
		{"p", "previous track, or restart if past a few seconds"},
		{"← →", "seek 5 seconds"},
		{"+ -", "volume"},
		{"s", "toggle shuffle"},
		{"r", "toggle repeat"},
		{"l", "like / unlike"},
		{"y", "copy artist - title"},
		{"d", "remove current track from the library"},
		{"q", "quit"},
	}
	for _, k := range keys {
		b.WriteString("  " + badgeStyle.Render(common.PadRight(k[0], 8)) + helpStyle.Render(k[1]) + "\n")
	}
	b.WriteString("\n  " + helpStyle.Render("press any key to return") + "\n")
	return b.String()
}
