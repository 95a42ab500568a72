// ABOUTME: Bubbletea model for the player status UI
// ABOUTME: Read-only view over published stats snapshots; never touches clock/scheduler internals
package statusui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	syncpkg "github.com/Sendspin/sendspin-go/pkg/sync"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	syncedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	degradedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lostStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// StatusMsg is a partial status update; zero-valued fields are left
// unchanged by applyStatus, matching the teacher's sticky-field approach so
// the orchestrator can send small, frequent updates.
type StatusMsg struct {
	Connected   *bool
	ServerName  string
	SyncRTT     int64
	SyncQuality syncpkg.Quality
	Codec       string
	SampleRate  int
	Channels    int
	BitDepth    int
	Title       string
	Artist      string
	Album       string
	ArtworkPath string
	Volume      int
	Received    int64
	Played      int64
	Dropped     int64
	BufferDepth int
}

// VolumeChangeMsg requests a volume change from the UI.
type VolumeChangeMsg struct {
	Volume int
	Muted  bool
}

// QuitMsg signals that the player should shut down.
type QuitMsg struct{}

// VolumeControl carries UI-originated commands back to the orchestrator.
type VolumeControl struct {
	Changes chan VolumeChangeMsg
	Quit    chan QuitMsg
}

// NewVolumeControl returns a VolumeControl with small buffered channels; a
// full channel means the orchestrator is slow, and the UI drops the update
// rather than blocking the render loop.
func NewVolumeControl() *VolumeControl {
	return &VolumeControl{
		Changes: make(chan VolumeChangeMsg, 4),
		Quit:    make(chan QuitMsg, 1),
	}
}

// Model holds the status UI's rendered state.
type Model struct {
	connected  bool
	serverName string

	syncRTT     int64
	syncQuality syncpkg.Quality

	codec      string
	sampleRate int
	channels   int
	bitDepth   int

	title       string
	artist      string
	album       string
	artworkPath string

	volume int
	muted  bool

	received    int64
	played      int64
	dropped     int64
	bufferDepth int

	width, height int

	volumeCtrl *VolumeControl
}

// NewModel creates a Model wired to ctrl, which may be nil in tests.
func NewModel(ctrl *VolumeControl) Model {
	return Model{volume: 100, volumeCtrl: ctrl}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString(m.renderStreamInfo())
	b.WriteString(m.renderControls())
	b.WriteString(m.renderStats())
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) innerWidth() int {
	width := m.width
	if width < 60 {
		width = 60
	}
	return width - 4
}

func (m Model) renderHeader() string {
	connStatus := "Disconnected"
	if m.connected {
		connStatus = fmt.Sprintf("Connected to %s", m.serverName)
	}

	syncIcon, syncText := lostStyle.Render("x"), "Lost"
	switch m.syncQuality {
	case syncpkg.QualityGood:
		syncIcon = syncedStyle.Render("+")
		syncText = fmt.Sprintf("Synced (rtt: %.1fms)", float64(m.syncRTT)/1000.0)
	case syncpkg.QualityDegraded:
		syncIcon = degradedStyle.Render("~")
		syncText = fmt.Sprintf("Degraded (rtt: %.1fms)", float64(m.syncRTT)/1000.0)
	}

	iw := m.innerWidth()
	width := iw + 4
	title := titleStyle.Render("+-- Sendspin Player") + " " + strings.Repeat("-", max(0, width-21)) + "+\n"
	statusLine := fmt.Sprintf("| Status: %-*s |\n", iw-9, truncate(connStatus, iw-9))
	syncLine := fmt.Sprintf("| Sync:   %s %-*s |\n", syncIcon, iw-11, truncate(syncText, iw-11))
	separator := "+" + strings.Repeat("-", width-2) + "+\n"
	return title + statusLine + syncLine + separator
}

func (m Model) renderStreamInfo() string {
	iw := m.innerWidth()
	if !m.connected || m.codec == "" {
		return fmt.Sprintf("| %-*s |\n", iw, "No stream")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("| %-*s |\n", iw, "Now Playing:"))
	if m.title != "" {
		metaWidth := iw - 10
		b.WriteString(fmt.Sprintf("|   Track:  %-*s |\n", iw-10, truncate(m.title, metaWidth)))
		b.WriteString(fmt.Sprintf("|   Artist: %-*s |\n", iw-10, truncate(m.artist, metaWidth)))
		b.WriteString(fmt.Sprintf("|   Album:  %-*s |\n", iw-10, truncate(m.album, metaWidth)))
		if m.artworkPath != "" {
			b.WriteString(fmt.Sprintf("|   Art:    %-*s |\n", iw-10, truncate(m.artworkPath, metaWidth)))
		}
	} else {
		b.WriteString(fmt.Sprintf("|   %-*s |\n", iw-3, "(no metadata)"))
	}
	b.WriteString(fmt.Sprintf("| %-*s |\n", iw, ""))
	formatStr := fmt.Sprintf("Format: %s %dHz %s %d-bit", m.codec, m.sampleRate, channelName(m.channels), m.bitDepth)
	b.WriteString(fmt.Sprintf("| %-*s |\n", iw, formatStr))
	return b.String()
}

func (m Model) renderControls() string {
	iw := m.innerWidth()
	muteTag := ""
	if m.muted {
		muteTag = " [muted]"
	}
	volumeBar := renderBar(m.volume, 100, 10)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("| %-*s |\n", iw, ""))
	b.WriteString(fmt.Sprintf("| %-*s |\n", iw, fmt.Sprintf("Volume: [%s] %d%%%s", volumeBar, m.volume, muteTag)))
	b.WriteString(fmt.Sprintf("| %-*s |\n", iw, fmt.Sprintf("Buffer: %d queued", m.bufferDepth)))
	return b.String()
}

func (m Model) renderStats() string {
	iw := m.innerWidth()
	width := iw + 4
	separator := "+" + strings.Repeat("-", width-2) + "+\n"
	statsLine := fmt.Sprintf("| %-*s |\n", iw, fmt.Sprintf("Stats: RX %d  Played %d  Dropped %d", m.received, m.played, m.dropped))
	return separator + statsLine
}

func (m Model) renderHelp() string {
	iw := m.innerWidth()
	width := iw + 4
	helpLine := fmt.Sprintf("| %-*s |\n", iw, "up/down:Volume  m:Mute  q:Quit")
	bottom := "+" + strings.Repeat("-", width-2) + "+\n"
	return helpLine + bottom
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.volumeCtrl != nil {
			select {
			case m.volumeCtrl.Quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit
	case "up":
		m.volume = clampVolume(m.volume + 5)
		m.sendVolumeChange()
	case "down":
		m.volume = clampVolume(m.volume - 5)
		m.sendVolumeChange()
	case "m":
		m.muted = !m.muted
		m.sendVolumeChange()
	}
	return m, nil
}

func (m Model) sendVolumeChange() {
	if m.volumeCtrl == nil {
		return
	}
	select {
	case m.volumeCtrl.Changes <- VolumeChangeMsg{Volume: m.volume, Muted: m.muted}:
	default:
	}
}

func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Connected != nil {
		m.connected = *msg.Connected
	}
	if msg.ServerName != "" {
		m.serverName = msg.ServerName
	}
	if msg.SyncRTT != 0 || msg.SyncQuality != "" {
		m.syncRTT = msg.SyncRTT
		m.syncQuality = msg.SyncQuality
	}
	if msg.Codec != "" {
		m.codec = msg.Codec
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
		m.bitDepth = msg.BitDepth
	}
	if msg.Title != "" {
		m.title = msg.Title
		m.artist = msg.Artist
		m.album = msg.Album
	}
	if msg.ArtworkPath != "" {
		m.artworkPath = msg.ArtworkPath
	}
	if msg.Volume != 0 {
		m.volume = msg.Volume
	}
	if msg.Received != 0 || msg.Played != 0 || msg.Dropped != 0 || msg.BufferDepth != 0 {
		m.received = msg.Received
		m.played = msg.Played
		m.dropped = msg.Dropped
		m.bufferDepth = msg.BufferDepth
	}
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func renderBar(value, max, width int) string {
	filled := (value * width) / max
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}

func truncate(s string, length int) string {
	if length <= 0 || len(s) <= length {
		return s
	}
	if length < 3 {
		return s[:length]
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	if channels == 1 {
		return "Mono"
	}
	return "Stereo"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
