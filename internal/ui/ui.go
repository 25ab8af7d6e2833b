// Package ui is the live terminal view. It redraws at a fixed 100ms cadence
// from the latest completed snapshot and the session history; it never writes
// to either.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seojin-dev/resmon/internal/config"
	"github.com/seojin-dev/resmon/internal/history"
	"github.com/seojin-dev/resmon/internal/model"
	"github.com/seojin-dev/resmon/internal/report"
	"github.com/seojin-dev/resmon/internal/sampler"
	"github.com/seojin-dev/resmon/internal/session"
	"github.com/seojin-dev/resmon/internal/stats"
)

const redrawEvery = 100 * time.Millisecond

// Model renders the session state, the newest snapshot, and history charts.
// While a session runs, snapshots come from History; when idle, a dedicated
// preview sampler keeps the labels fresh without touching the session's
// counter state.
type Model struct {
	cfg     config.Config
	sess    *session.Session
	hist    *history.History
	preview *sampler.Sampler
	reports *report.Generator

	latest   model.Snapshot
	haveSnap bool
	status   session.Status
	notice   string
	width    int
	height   int
}

func New(cfg config.Config, sess *session.Session, hist *history.History,
	preview *sampler.Sampler, reports *report.Generator) *Model {
	return &Model{
		cfg:     cfg,
		sess:    sess,
		hist:    hist,
		preview: preview,
		reports: reports,
		width:   120,
		height:  40,
	}
}

// Messages
type (
	redrawMsg  struct{}
	previewMsg struct {
		snap model.Snapshot
		ok   bool
	}
	exportDoneMsg struct {
		path string
		err  error
	}
)

func redrawTick() tea.Cmd {
	return tea.Tick(redrawEvery, func(time.Time) tea.Msg { return redrawMsg{} })
}

// previewCmd samples on the configured period while no session owns the
// sampler loop. The closure checks state at fire time so a session that
// started in between is never raced.
func (m *Model) previewCmd() tea.Cmd {
	sess, preview := m.sess, m.preview
	return tea.Tick(m.cfg.Period, func(time.Time) tea.Msg {
		if sess.Status().State == session.StateRunning {
			return previewMsg{}
		}
		return previewMsg{snap: preview.Collect(), ok: true}
	})
}

func (m *Model) exportCmd() tea.Cmd {
	hist, reports := m.hist, m.reports
	return func() tea.Msg {
		path, err := reports.Export(hist.Channels())
		return exportDoneMsg{path: path, err: err}
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(redrawTick(), m.previewCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			if err := m.sess.Start(); err != nil {
				m.notice = err.Error()
			} else {
				m.notice = fmt.Sprintf("monitoring for %s", m.cfg.Duration)
			}
		case "x":
			if err := m.sess.Stop(); err != nil {
				m.notice = err.Error()
			} else {
				m.notice = "monitoring stopped"
			}
		case "r":
			if m.hist.Len() == 0 {
				m.notice = "nothing to export yet"
			} else {
				m.notice = "exporting report..."
				return m, m.exportCmd()
			}
		}

	case redrawMsg:
		m.status = m.sess.Status()
		if m.status.State == session.StateRunning {
			if snap, ok := m.hist.Latest(); ok {
				m.latest = snap
				m.haveSnap = true
			}
		}
		return m, redrawTick()

	case previewMsg:
		// Check the session itself, not the cached status: a session that
		// started since the last redraw must win over the preview.
		if msg.ok && m.sess.Status().State != session.StateRunning {
			m.latest = msg.snap
			m.haveSnap = true
		}
		return m, m.previewCmd()

	case exportDoneMsg:
		if msg.err != nil {
			m.notice = "export failed: " + msg.err.Error()
		} else {
			m.notice = "report written: " + msg.path
		}
	}
	return m, nil
}

// Styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	sparkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	gaugeFill    = "█"
	gaugeEmpty   = "░"
	sparkChars   = []rune("▁▂▃▄▅▆▇█")
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
)

func (m *Model) View() string {
	s := m.latest
	clock := "collecting first sample..."
	if m.haveSnap {
		clock = s.Timestamp.Format("Mon Jan 2 15:04:05 MST 2006")
	}
	header := titleStyle.Render("resmon") + "  " + subtleStyle.Render(clock)

	cpuCard := card("CPU",
		fmt.Sprintf("%s\n%d cores @ %.0f MHz",
			gaugeBar(s.CPU.Percent, 28), s.CPU.Cores, s.CPU.FreqMHz))

	memCard := card("Memory",
		fmt.Sprintf("%s\n%s / %s | swap %.1f%%",
			gaugeBar(s.Memory.Percent, 28),
			stats.FormatBytes(float64(s.Memory.Used)),
			stats.FormatBytes(float64(s.Memory.Total)),
			s.Memory.SwapPercent))

	diskCard := card("Disk",
		fmt.Sprintf("%s\n%s / %s | R %s W %s",
			gaugeBar(s.Disk.Percent, 28),
			stats.FormatBytes(float64(s.Disk.Used)),
			stats.FormatBytes(float64(s.Disk.Total)),
			stats.FormatRate(s.Disk.ReadRate),
			stats.FormatRate(s.Disk.WriteRate)))

	netCard := card("Network",
		fmt.Sprintf("up %s  down %s\ntotal %s sent, %s recv",
			stats.FormatRate(s.Network.SentRate),
			stats.FormatRate(s.Network.RecvRate),
			stats.FormatBytes(float64(s.Network.BytesSent)),
			stats.FormatBytes(float64(s.Network.BytesRecv))))

	tempBody := "unavailable"
	if s.Temperature.Available {
		tempBody = fmt.Sprintf("%.1f °C mean (%d groups)",
			s.Temperature.Mean(), len(s.Temperature.Sensors))
	}
	tempCard := card("Temperature", tempBody)

	gpuBody := "unavailable"
	if s.GPU.Available {
		gpuBody = fmt.Sprintf("%.1f%% | %.0f MB | %.1f °C",
			s.GPU.Usage, s.GPU.MemoryMB, s.GPU.TempC)
	}
	gpuCard := card("GPU", gpuBody)

	line1 := lipgloss.JoinHorizontal(lipgloss.Top, cpuCard, memCard, diskCard)
	line2 := lipgloss.JoinHorizontal(lipgloss.Top, netCard, tempCard, gpuCard)

	parts := []string{header, m.statusLine(), line1, line2}
	if chartCard := m.chartCard(); chartCard != "" {
		parts = append(parts, chartCard)
	}
	parts = append(parts, subtleStyle.Render("[s] start  [x] stop  [r] report  [q] quit"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) statusLine() string {
	var state string
	switch m.status.State {
	case session.StateRunning:
		state = runningStyle.Render(fmt.Sprintf("recording  %2ds left  %d samples",
			int(m.status.Remaining.Seconds()), m.status.Samples))
	case session.StateComplete:
		state = labelStyle.Render(fmt.Sprintf("complete  %d samples", m.status.Samples))
	default:
		state = subtleStyle.Render("idle")
	}
	if m.notice != "" {
		state += "  " + noticeStyle.Render(m.notice)
	}
	return state
}

// chartCard shows the recorded history as sparklines once samples exist.
func (m *Model) chartCard() string {
	ch := m.hist.Channels()
	if ch.Len() == 0 {
		return ""
	}

	width := 60
	rows := []string{
		sparkRow("cpu %", ch.CPUPercent, width),
		sparkRow("mem %", ch.MemoryPercent, width),
		sparkRow("disk r", ch.DiskRead, width),
		sparkRow("disk w", ch.DiskWrite, width),
		sparkRow("net tx", ch.NetSent, width),
		sparkRow("net rx", ch.NetRecv, width),
	}
	if ch.TemperatureSeen {
		rows = append(rows, sparkRow("temp", ch.Temperature, width))
	}
	if ch.GPUSeen {
		rows = append(rows, sparkRow("gpu %", ch.GPUUsage, width))
	}
	return card("History", strings.Join(rows, "\n"))
}

// Helpers
func sparkRow(label string, data []float64, width int) string {
	return fmt.Sprintf("%-7s %s", label, sparkStyle.Render(sparkline(data, width)))
}

func sparkline(data []float64, width int) string {
	if len(data) > width {
		data = data[len(data)-width:]
	}

	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range data {
		idx := int((v - min) / span * float64(len(sparkChars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteRune(sparkChars[idx])
	}
	return b.String()
}

func gaugeBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int((pct / 100) * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		pct)
}

func card(title, body string) string {
	return cardStyle.Render(labelStyle.Render(title) + "\n" + body)
}

// Run starts the Bubble Tea program and blocks until it quits.
func Run(cfg config.Config, sess *session.Session, hist *history.History,
	preview *sampler.Sampler, reports *report.Generator) error {
	prog := tea.NewProgram(New(cfg, sess, hist, preview, reports), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
