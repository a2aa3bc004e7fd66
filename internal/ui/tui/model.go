package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bamsammich/photocopy/internal/event"
	"github.com/bamsammich/photocopy/internal/stats"
	"github.com/bamsammich/photocopy/internal/ui"
)

// Bubble Tea messages.
type engineEventMsg event.Event
type channelDoneMsg struct{}
type tickMsg time.Time
type saveResultMsg struct{ err error }

// readNextEvent returns a tea.Cmd that blocks on the event channel.
func readNextEvent(ch <-chan event.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return channelDoneMsg{}
		}
		return engineEventMsg(ev)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// saveModal manages the text input overlay for saving the report.
type saveModal struct {
	active bool
	input  string
	cursor int
}

func (s *saveModal) insertRune(r rune) {
	s.input = s.input[:s.cursor] + string(r) + s.input[s.cursor:]
	s.cursor++
}

func (s *saveModal) backspace() {
	if s.cursor > 0 {
		s.input = s.input[:s.cursor-1] + s.input[s.cursor:]
		s.cursor--
	}
}

func (s *saveModal) moveLeft() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *saveModal) moveRight() {
	if s.cursor < len(s.input) {
		s.cursor++
	}
}

func (s *saveModal) render() string {
	prompt := styleSavePrompt.Render("Save report to: ")
	before := s.input[:s.cursor]
	after := s.input[s.cursor:]
	cursor := styleSaveInput.Render("█")
	return "  " + prompt + styleSaveInput.Render(before) + cursor + styleSaveInput.Render(after)
}

// Options wires the model to the copy driver.
type Options struct {
	SrcRoot string
	DstRoot string
	// Cancel stops the driver between files. Called when the user quits
	// before the last pass is over.
	Cancel func()
	// Retry receives one value each time the user asks to retry failed files.
	Retry chan<- struct{}
}

// Model is the root Bubble Tea model.
type Model struct {
	events <-chan event.Event
	stats  stats.ReadTicker
	opts   Options

	lists    [numTabs]feedView
	tab      tab
	current  *entry // file in flight
	rate     rateView
	width    int
	height   int
	pass     int
	passDone bool // last pass reached PassComplete or PassCancelled
	done     bool // event channel closed, no more passes
	quitting bool

	statusMsg string // transient notification
	lastSnap  stats.Snapshot
	lastETA   time.Duration

	save saveModal
}

// NewModel creates a new TUI model.
func NewModel(events <-chan event.Event, collector stats.ReadTicker, opts Options) Model {
	m := Model{
		events: events,
		stats:  collector,
		opts:   opts,
		rate:   newRateView(),
		width:  80,
		height: 24,
		pass:   1,
	}
	for i := range m.lists {
		m.lists[i] = newFeedView()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		readNextEvent(m.events),
		tickCmd(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case engineEventMsg:
		return m.handleEngineEvent(event.Event(msg))

	case channelDoneMsg:
		m.done = true
		m.current = nil
		m.lastSnap = m.stats.Snapshot()
		m.lastETA = 0
		return m, nil

	case tickMsg:
		m.stats.Tick()
		m.lastSnap = m.stats.Snapshot()
		if !m.done {
			m.lastETA = m.stats.FileETA()
		}
		return m, tickCmd()

	case saveResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("save failed: %v", msg.err)
		} else {
			m.statusMsg = fmt.Sprintf("saved to %s", m.save.input)
		}
		m.save.active = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// When save modal is active, capture all input.
	if m.save.active {
		return m.handleSaveKey(msg)
	}

	list := &m.lists[m.tab]

	switch msg.String() {
	case "q", "ctrl+c":
		if !m.done && m.opts.Cancel != nil {
			m.opts.Cancel()
		}
		m.quitting = true
		return m, tea.Quit

	case "tab", "right", "l":
		m.tab = (m.tab + 1) % numTabs
		return m, nil

	case "shift+tab", "left", "h":
		m.tab = (m.tab + numTabs - 1) % numTabs
		return m, nil

	case "1", "2", "3", "4":
		m.tab = tab(msg.String()[0] - '1')
		return m, nil

	case "r":
		return m.requestRetry()

	case "j", "down":
		list.scrollDown()
		return m, nil

	case "k", "up":
		list.scrollUp()
		return m, nil

	case "G":
		list.scrollToBottom()
		return m, nil

	case "g":
		list.scrollToTop()
		return m, nil

	case "s":
		if m.passDone || m.done {
			m.save.active = true
			m.save.input = fmt.Sprintf("photocopy-%s.txt", time.Now().Format("2006-01-02-150405"))
			m.save.cursor = len(m.save.input)
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}

func (m Model) requestRetry() (tea.Model, tea.Cmd) {
	switch {
	case !m.passDone || m.done:
		m.statusMsg = "retry is available once a pass has finished"
	case m.lastSnap.FilesFailed == 0:
		m.statusMsg = "no failed files to retry"
	case m.opts.Retry == nil:
		m.statusMsg = "retry: not available"
	default:
		select {
		case m.opts.Retry <- struct{}{}:
			m.passDone = false
			m.statusMsg = "retrying failed files"
		default:
			m.statusMsg = "retry already requested"
		}
	}
	return m, nil
}

func (m Model) handleSaveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.save.active = false
		m.statusMsg = ""
		return m, nil

	case tea.KeyEnter:
		return m, m.writeReport(m.save.input)

	case tea.KeyBackspace:
		m.save.backspace()
		return m, nil

	case tea.KeyLeft:
		m.save.moveLeft()
		return m, nil

	case tea.KeyRight:
		m.save.moveRight()
		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		for _, r := range msg.Runes {
			m.save.insertRune(r)
		}
		return m, nil
	}

	return m, nil
}

// writeReport saves the current pass's lists in the full report format.
func (m Model) writeReport(path string) tea.Cmd {
	report := ui.Report{
		Copied:  m.lists[tabCopied].report(),
		Existed: m.lists[tabExisted].report(),
		Failed:  m.lists[tabFailed].report(),
	}
	snap := m.lastSnap
	srcRoot, dstRoot := m.opts.SrcRoot, m.opts.DstRoot

	return func() tea.Msg {
		var b strings.Builder
		b.WriteString("photocopy report\n")
		b.WriteString("================\n")
		fmt.Fprintf(&b, "source:      %s\n", srcRoot)
		fmt.Fprintf(&b, "destination: %s\n", dstRoot)
		fmt.Fprintf(&b, "written:     %s\n", time.Now().Format("2006-01-02 15:04:05"))
		for _, line := range ui.PassSummary(snap) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		if err := report.Write(&b); err != nil {
			return saveResultMsg{err: err}
		}
		err := os.WriteFile(path, []byte(b.String()), 0o644) //nolint:gosec // user-chosen path for report output
		return saveResultMsg{err: err}
	}
}

func (m Model) handleEngineEvent(ev event.Event) (tea.Model, tea.Cmd) {
	switch ev.Type {
	case event.PassStarted:
		m.pass = ev.Pass
		m.passDone = false
		m.current = nil
		if ev.Pass > 1 {
			// Failures of earlier passes are being retried.
			m.lists[tabFailed].dropBefore(ev.Pass)
			m.statusMsg = fmt.Sprintf("retry pass %d: %d files", ev.Pass, ev.Total)
		}

	case event.FileStarted:
		m.current = &entry{src: ev.Src, dst: ev.Dst}

	case event.FileCopied, event.FileExisted, event.FileFailed:
		e := entry{src: ev.Src, dst: ev.Dst, status: ev.Type, pass: ev.Pass}
		if ev.Error != nil {
			e.errMsg = ev.Error.Error()
		}
		m.lists[tabAll].add(e)
		m.lists[tabFor(ev.Type)].add(e)
		m.current = nil

	case event.PassComplete:
		m.passDone = true
		m.current = nil
		if snap := m.stats.Snapshot(); snap.FilesFailed > 0 && m.opts.Retry != nil {
			m.statusMsg = fmt.Sprintf("%d files failed, press r to retry", snap.FilesFailed)
		}

	case event.PassCancelled:
		m.passDone = true
		m.current = nil
		m.statusMsg = "cancelled"
	}

	m.lastSnap = m.stats.Snapshot()
	return m, readNextEvent(m.events)
}

func tabFor(t event.Type) tab {
	switch t {
	case event.FileCopied:
		return tabCopied
	case event.FileExisted:
		return tabExisted
	default:
		return tabFailed
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteByte('\n')
	b.WriteString(m.rate.view(m.width, m.stats))
	b.WriteByte('\n')
	b.WriteString(m.renderTabs())
	b.WriteByte('\n')
	b.WriteString(m.renderInFlight())
	b.WriteByte('\n')

	// header, rate, tabs, in-flight, status, footer
	listHeight := max(m.height-6, 3)
	b.WriteString(m.lists[m.tab].view(listHeight))

	switch {
	case m.save.active:
		b.WriteString(m.save.render())
	case m.statusMsg != "":
		b.WriteString(styleStatus.Render("  " + m.statusMsg))
	}
	b.WriteByte('\n')

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	snap := m.lastSnap
	pct := snap.Percent()
	bar := ui.ProgressBar(float64(pct)/100, 20)

	counters := fmt.Sprintf("total %s  left %s  %s  %s  %s",
		styleCounter.Render(ui.FormatCount(snap.FilesTotal)),
		styleCounter.Render(ui.FormatCount(snap.FilesRemaining())),
		styleCopied.Render("copied "+ui.FormatCount(snap.FilesCopied)),
		styleExisted.Render("existed "+ui.FormatCount(snap.FilesExisted)),
		styleFailed.Render("failed "+ui.FormatCount(snap.FilesFailed)),
	)

	if m.done {
		return styleHeader.Render(fmt.Sprintf("  %s  %s  %s  time %s",
			styleHeaderLabel.Render("photocopy"),
			styleCopied.Render("done"),
			counters,
			ui.FormatDuration(snap.Elapsed),
		))
	}

	return styleHeader.Render(fmt.Sprintf("  %s  pass %d  %3d%%  %s  %s  eta %s",
		styleHeaderLabel.Render("photocopy"),
		m.pass,
		pct,
		styleProgressFilled.Render(bar),
		counters,
		ui.FormatETA(m.lastETA),
	))
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, numTabs)
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s (%d)", i+1, name, len(m.lists[i].entries))
		if tab(i) == m.tab {
			parts = append(parts, styleTabActive.Render(label))
		} else {
			parts = append(parts, styleTabInactive.Render(label))
		}
	}
	return "  " + strings.Join(parts, styleDivider.Render("  │  "))
}

func (m Model) renderInFlight() string {
	if m.current == nil {
		return ""
	}
	return fmt.Sprintf("  %s  %s %s %s",
		styleInFlight.Render("⟩"),
		styleInFlight.Render(m.current.src),
		styleDivider.Render(">"),
		styledPath(m.current.dst, styleInFlight),
	)
}

func (m Model) renderFooter() string {
	type keybind struct {
		key   string
		label string
	}

	binds := []keybind{
		{"q", "quit"},
		{"tab", "list"},
		{"j/k", "scroll"},
	}
	if m.passDone && !m.done && m.lastSnap.FilesFailed > 0 && m.opts.Retry != nil {
		binds = append(binds, keybind{"r", "retry failed"})
	}
	if m.passDone || m.done {
		binds = append(binds, keybind{"s", "save"})
	}

	var parts []string
	for _, kb := range binds {
		parts = append(parts,
			styleKeybindKey.Render(kb.key)+" "+styleKeybindLabel.Render(kb.label))
	}

	return "  " + strings.Join(parts, "   ")
}
