package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/sgsplit/internal/config"
	"github.com/lumipallolabs/sgsplit/internal/core"
	"github.com/lumipallolabs/sgsplit/internal/logging"
	"github.com/lumipallolabs/sgsplit/internal/model"
	"github.com/lumipallolabs/sgsplit/internal/prefs"
	"golang.org/x/time/rate"
)

// screen identifies which view is shown
type screen int

const (
	screenForm screen = iota
	screenRunning
	screenDone
)

// Panel identifies which results panel is active
type Panel int

const (
	PanelList Panel = iota
	PanelMap
)

// runEventMsg carries one controller event into the update loop
type runEventMsg struct {
	event core.Event
}

// runClosedMsg is sent when a run's event channel is closed
type runClosedMsg struct {
	events <-chan core.Event
}

// logPanelHeight is the log panel height on the running and results screens
const logPanelHeight = 10

// App is the main application model
type App struct {
	// Components
	header   Header
	form     Form
	logs     LogPanel
	list     DesignerList
	loadMap  LoadMap
	help     HelpOverlay
	progress progress.Model
	spinner  spinner.Model

	// Services
	keys       KeyMap
	cfg        *config.Config
	controller *core.Controller
	prefs      *prefs.Manager
	events     <-chan core.Event

	// Scan progress lines are logged occasionally; the counter updates always
	scanLog *rate.Sometimes

	// Run state
	screen    screen
	phase     core.Phase
	root      string
	started   time.Time
	found     int
	counts    model.Snapshot
	elapsed   string
	result    *core.RunCompletedEvent
	runErr    error
	quitArmed bool

	// UI state
	activePanel Panel

	// Dimensions
	width  int
	height int
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, controller *core.Controller, prefsMgr *prefs.Manager) App {
	p := prefsMgr.Get()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorCyan)

	app := App{
		header:     NewHeader(),
		form:       NewForm(p.LastFolder, p.LastWorkers, cfg.Split.MinWorkers, cfg.Split.MaxWorkers),
		logs:       NewLogPanel(),
		list:       NewDesignerList(),
		loadMap:    NewLoadMap(),
		help:       NewHelpOverlay(),
		progress:   progress.New(progress.WithDefaultGradient()),
		spinner:    sp,
		keys:       DefaultKeyMap(),
		cfg:        cfg,
		controller: controller,
		prefs:      prefsMgr,
		scanLog:    &rate.Sometimes{First: 1, Interval: time.Second},
		screen:     screenForm,
	}

	app.header.SetLifetime(p.RunsLifetime, p.FilesLifetime)
	app.list.SetFocused(true)

	return app
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("SG SPLIT"), textinput.Blink)
}

// listen waits for the next run event
func listen(events <-chan core.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return runClosedMsg{events: events}
		}
		return runEventMsg{event: ev}
	}
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case runEventMsg:
		cmd := a.handleEvent(msg.event)
		return a, tea.Batch(cmd, listen(a.events))

	case runClosedMsg:
		// A late close from an earlier run must not detach the current one
		if msg.events != a.events {
			return a, nil
		}
		logging.Debug.Printf("[UI] event channel closed")
		a.events = nil
		a.quitArmed = false
		return a, nil

	case spinner.TickMsg:
		if a.screen != screenRunning {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case progress.FrameMsg:
		m, cmd := a.progress.Update(msg)
		if pm, ok := m.(progress.Model); ok {
			a.progress = pm
		}
		return a, cmd
	}

	if a.screen == screenForm {
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleEvent folds one controller event into the model
func (a *App) handleEvent(ev core.Event) tea.Cmd {
	switch e := ev.(type) {
	case core.RunStartedEvent:
		a.root = e.Root

	case core.PhaseChangedEvent:
		a.phase = e.Phase
		a.header.SetPhase(e.Phase, a.root)

	case core.ScanProgressEvent:
		a.found = e.Found
		a.scanLog.Do(func() {
			a.logs.Append(core.LogEvent{
				Level:   core.LevelInfo,
				Message: fmt.Sprintf("Scanning… %s images found", FormatCount(e.Found)),
				Time:    time.Now(),
			})
		})

	case core.FileProcessedEvent:
		a.counts = e.Stats
		a.elapsed = e.Elapsed
		if e.Stats.Total > 0 {
			done := float64(e.Stats.Processed+e.Stats.Failed) / float64(e.Stats.Total)
			return a.progress.SetPercent(done)
		}

	case core.LogEvent:
		a.logs.Append(e)

	case core.RunCompletedEvent:
		a.result = &e
		a.counts = e.Stats
		a.elapsed = model.FormatElapsed(e.Stats.Elapsed)
		a.screen = screenDone
		loads := LoadsFromSnapshot(e.Stats)
		a.list.SetLoads(loads)
		a.loadMap.SetLoads(loads)
		a.prefs.AddRun(e.Stats.Processed)
		p := a.prefs.Get()
		a.header.SetLifetime(p.RunsLifetime, p.FilesLifetime)
		a.updateLayout()

	case core.RunFailedEvent:
		a.runErr = e.Err
		a.screen = screenDone
		a.updateLayout()
	}
	return nil
}

// handleKey handles keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay takes precedence
	if a.help.IsVisible() {
		if key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Back) {
			a.help.SetVisible(false)
		}
		return a, nil
	}

	// ctrl+c works everywhere; q only where no text input has focus
	if msg.String() == "ctrl+c" || (a.screen != screenForm && key.Matches(msg, a.keys.Quit)) {
		return a.quit()
	}

	switch a.screen {
	case screenForm:
		return a.handleFormKey(msg)
	case screenRunning:
		switch {
		case key.Matches(msg, a.keys.ClearLog):
			a.logs.Clear()
		case key.Matches(msg, a.keys.Help):
			a.help.Toggle()
		}
		return a, nil
	default:
		return a.handleResultsKey(msg)
	}
}

// quit exits, asking for a second press while files are being moved
func (a App) quit() (tea.Model, tea.Cmd) {
	if a.events != nil && !a.quitArmed {
		a.quitArmed = true
		a.logs.Append(core.LogEvent{
			Level:   core.LevelWarn,
			Message: "Run in progress. Press q again to quit; files not yet moved stay in place.",
			Time:    time.Now(),
		})
		return a, nil
	}
	if a.prefs != nil {
		if err := a.prefs.Close(); err != nil {
			logging.Debug.Printf("[UI] saving prefs: %v", err)
		}
	}
	return a, tea.Quit
}

func (a App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Tab):
		a.form.NextField()
		return a, nil
	case key.Matches(msg, a.keys.Enter):
		return a.startRun()
	case key.Matches(msg, a.keys.Back):
		return a.quit()
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)
	return a, cmd
}

// startRun validates the form and launches the controller
func (a App) startRun() (tea.Model, tea.Cmd) {
	if !a.form.Valid() {
		a.form.SetError(fmt.Sprintf("Enter a folder and a number of designers between %d and %d.",
			a.cfg.Split.MinWorkers, a.cfg.Split.MaxWorkers))
		return a, nil
	}

	folder, workers := a.form.Folder(), a.form.Workers()
	events, err := a.controller.Start(core.Request{Root: folder, Workers: workers})
	if err != nil {
		a.form.SetError(err.Error())
		return a, nil
	}
	a.prefs.SetLastRun(folder, workers)

	a.events = events
	a.screen = screenRunning
	a.phase = core.PhaseScanning
	a.root = folder
	a.started = time.Now()
	a.found = 0
	a.counts = model.Snapshot{}
	a.elapsed = ""
	a.result = nil
	a.runErr = nil
	a.quitArmed = false
	a.logs.Clear()
	a.header.SetPhase(core.PhaseScanning, folder)
	a.updateLayout()

	return a, tea.Batch(listen(events), a.spinner.Tick, a.progress.SetPercent(0))
}

func (a App) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()

	case key.Matches(msg, a.keys.Reset):
		p := a.prefs.Get()
		a.form = NewForm(p.LastFolder, p.LastWorkers, a.cfg.Split.MinWorkers, a.cfg.Split.MaxWorkers)
		a.screen = screenForm
		a.header.SetPhase(core.PhaseIdle, "")
		a.updateLayout()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.ClearLog):
		a.logs.Clear()

	case key.Matches(msg, a.keys.Tab):
		if a.activePanel == PanelList {
			a.activePanel = PanelMap
			a.list.SetFocused(false)
			a.loadMap.SetFocused(true)
		} else {
			a.activePanel = PanelList
			a.list.SetFocused(true)
			a.loadMap.SetFocused(false)
			a.list.Select(a.loadMap.Selected())
		}

	case key.Matches(msg, a.keys.Up):
		a.move(0, -1)
	case key.Matches(msg, a.keys.Down):
		a.move(0, 1)
	case msg.String() == "left" || msg.String() == "h":
		a.move(-1, 0)
	case msg.String() == "right" || msg.String() == "l":
		a.move(1, 0)

	case key.Matches(msg, a.keys.Top):
		a.list.GoToTop()
		a.loadMap.SetSelected(a.list.Selected())
	case key.Matches(msg, a.keys.Bottom):
		a.list.GoToBottom()
		a.loadMap.SetSelected(a.list.Selected())

	case key.Matches(msg, a.keys.Enter):
		a.openDesigner()
	case key.Matches(msg, a.keys.Open):
		a.openFolder(a.root)
	}
	return a, nil
}

// move changes the selected designer in the active panel and syncs the other
func (a *App) move(dx, dy int) {
	if a.activePanel == PanelMap {
		a.loadMap.MoveToBlock(dx, dy)
		a.list.Select(a.loadMap.Selected())
		return
	}
	switch {
	case dy < 0:
		a.list.MoveUp()
	case dy > 0:
		a.list.MoveDown()
	}
	a.loadMap.SetSelected(a.list.Selected())
}

// openDesigner opens the selected designer folder in the file manager
func (a *App) openDesigner() {
	idx := a.list.Selected()
	if a.activePanel == PanelMap {
		idx = a.loadMap.Selected()
	}
	if idx < 0 {
		return
	}
	a.openFolder(filepath.Join(a.root, model.WorkerName(a.cfg.Split.FolderPrefix, idx)))
}

// openFolder opens a directory in the system file manager
func (a *App) openFolder(path string) {
	if path == "" {
		return
	}
	logging.Debug.Printf("openFolder: opening %s", path)
	if err := openInFileManager(path); err != nil {
		logging.Debug.Printf("openFolder: error: %v", err)
	}
}

// updateLayout calculates component sizes based on window dimensions
func (a *App) updateLayout() {
	a.header.SetWidth(a.width)
	a.help.SetSize(a.width, a.height)
	a.form.SetWidth(min(a.width, 80))
	a.progress.Width = min(a.width-24, 60)

	logHeight := logPanelHeight
	a.logs.SetSize(a.width, logHeight)

	// header + help bar + summary lines + log panel
	panelHeight := a.height - 2 - 4 - logHeight
	if panelHeight < 5 {
		panelHeight = 5
	}

	listWidth := a.list.RequiredWidth()
	if listWidth > a.width/2 {
		listWidth = a.width / 2
	}
	a.list.SetSize(listWidth, panelHeight)
	a.loadMap.SetSize(a.width-listWidth, panelHeight)
}

// View implements tea.Model
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	if a.help.IsVisible() {
		return a.help.View()
	}

	var sections []string
	sections = append(sections, a.header.View())

	switch a.screen {
	case screenForm:
		sections = append(sections, a.form.View())
		if a.logs.Len() > 0 {
			sections = append(sections, a.logs.View())
		}
		sections = append(sections, HelpBar(a.width, []hint{
			{"Tab", "switch field"}, {"Enter", "start"}, {"Esc", "quit"},
		}))

	case screenRunning:
		sections = append(sections, a.runningView(), a.logs.View())
		sections = append(sections, HelpBar(a.width, []hint{
			{"c", "clear log"}, {"?", "help"}, {"q q", "quit"},
		}))

	case screenDone:
		sections = append(sections, a.summaryView())
		if a.result != nil {
			panels := lipgloss.JoinHorizontal(lipgloss.Top, a.list.View(), a.loadMap.View())
			sections = append(sections, panels)
		}
		sections = append(sections, a.logs.View())
		sections = append(sections, HelpBar(a.width, []hint{
			{"↑↓←→", "select"}, {"Tab", "panel"}, {"Enter", "open designer"},
			{"o", "open folder"}, {"r", "new run"}, {"?", "help"}, {"q", "quit"},
		}))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// runningView renders live progress
func (a App) runningView() string {
	label := lipgloss.NewStyle().Foreground(ColorMuted).Width(12)
	active := lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)

	var b strings.Builder
	b.WriteString(a.spinner.View() + " " + active.Render(a.phase.String()))
	b.WriteString("\n\n")

	b.WriteString(label.Render("Found") + StatsStyle.Render(FormatCount(a.found)+" images"))
	b.WriteString("\n")

	if a.phase != core.PhaseScanning {
		done := a.counts.Processed + a.counts.Failed
		b.WriteString(label.Render("Progress") + a.progress.View() +
			StatsStyle.Render(fmt.Sprintf("  %s/%s", FormatCount(done), FormatCount(a.counts.Total))))
		b.WriteString("\n")
		b.WriteString(label.Render("White") + LightStyle.Render(FormatCount(a.counts.Light)) +
			"   " + label.Render("Other") + OtherStyle.Render(FormatCount(a.counts.Other)))
		if a.counts.Failed > 0 {
			b.WriteString("   " + LogWarn.Render(FormatCount(a.counts.Failed)+" failed"))
		}
		b.WriteString("\n")
	}

	elapsed := model.FormatElapsed(time.Since(a.started))
	b.WriteString(label.Render("Elapsed") + StatsStyle.Render(elapsed))
	if a.quitArmed {
		b.WriteString("\n\n" + LogWarn.Render("Press q again to quit"))
	}

	return PanelStyle.Width(a.width - 2).Render(b.String())
}

// summaryView renders the completion or failure summary
func (a App) summaryView() string {
	if a.runErr != nil {
		return LogError.Padding(0, 1).Render(fmt.Sprintf("Run failed: %v", a.runErr))
	}
	if a.result == nil {
		return ""
	}

	s := a.result.Stats
	check := lipgloss.NewStyle().Foreground(ColorSuccess).Render("✓")
	line1 := fmt.Sprintf("%s %s images split across %d designers in %s · %s white · %s other",
		check, FormatCount(s.Processed), len(s.Workers), a.elapsed,
		LightStyle.Render(FormatCount(s.Light)), OtherStyle.Render(FormatCount(s.Other)))
	if s.Failed > 0 {
		line1 += " · " + LogWarn.Render(FormatCount(s.Failed)+" failed")
	}
	if s.Skipped > 0 {
		line1 += " · " + LogInfo.Render(FormatCount(s.Skipped)+" without group id")
	}

	line2 := LogInfo.Render(fmt.Sprintf("%s · %s", s.ExtensionSummary(), FormatSize(s.Bytes)))

	var line3 string
	if a.result.ReportErr != nil {
		line3 = LogError.Render(fmt.Sprintf("Report not written: %v", a.result.ReportErr))
	} else {
		line3 = StatsStyle.Render("Report: " + a.result.ReportPath)
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join([]string{line1, line2, line3}, "\n"))
}
