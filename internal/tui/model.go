package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rangeprod/internal/config"
	apperrors "github.com/agbru/rangeprod/internal/errors"
	"github.com/agbru/rangeprod/internal/metrics"
	"github.com/agbru/rangeprod/internal/orchestration"
	"github.com/agbru/rangeprod/internal/product"
	"github.com/agbru/rangeprod/internal/sysmon"
)

// tickInterval is the metrics sampling period.
const tickInterval = 500 * time.Millisecond

// metricsPanelWidthPercent is the share of the width given to metrics when
// the terminal is wide enough for two columns.
const (
	metricsPanelWidthPercent = 35
	twoColumnMinWidth        = 100
)

// ExecutionState holds the run-related fields of a session.
type ExecutionState struct {
	ctx         context.Context
	cancel      context.CancelFunc
	calculators []product.Calculator
	generation  uint64
	done        bool
	exitCode    int
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header       HeaderModel
	calcs        CalculatorsModel
	metrics      MetricsModel
	footer       FooterModel
	keymap       KeyMap
	memCollector *metrics.MemoryCollector

	ExecutionState

	parentCtx context.Context
	config    config.AppConfig
	ref       *programRef
	paused    bool
	width     int
	height    int
}

// NewModel creates a dashboard that runs calculators over cfg's range.
func NewModel(parentCtx context.Context, calculators []product.Calculator, cfg config.AppConfig, version string) Model {
	names := make([]string, len(calculators))
	for i, c := range calculators {
		names[i] = c.Name()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	keymap := DefaultKeyMap()

	return Model{
		header:       NewHeaderModel(version, cfg.ToRequest()),
		calcs:        NewCalculatorsModel(names),
		metrics:      NewMetricsModel(),
		footer:       NewFooterModel(keymap),
		keymap:       keymap,
		memCollector: metrics.NewMemoryCollector(),
		ExecutionState: ExecutionState{
			ctx:         ctx,
			cancel:      cancel,
			calculators: calculators,
			exitCode:    apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		config:    cfg,
		ref:       &programRef{},
	}
}

// Init starts the run, the sampling ticker and the cancellation watcher.
func (m Model) Init() tea.Cmd {
	return m.startCmds()
}

func (m Model) startCmds() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startCalculationCmd(m.ref, m.ctx, m.calculators, m.config, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if !m.paused {
			m.calcs.UpdateProgress(msg)
		}
		return m, nil

	case ComparisonResultsMsg:
		m.calcs.AddResults(msg.Results)
		return m, nil

	case FinalResultMsg:
		m.calcs.AddFinalResult(msg)
		return m, nil

	case ErrorMsg:
		m.calcs.AddError(msg)
		m.footer.SetError(true)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(m.memCollector), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil

	case CalculationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation || m.done {
			return m, nil
		}
		m.done = true
		m.exitCode = apperrors.HandleCalculationError(msg.Err, 0, io.Discard, nil)
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		if !m.done {
			m.paused = !m.paused
			m.footer.SetPaused(m.paused)
		}
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.footer.ToggleHelp()
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)

		m.header.Reset()
		m.calcs.Reset()
		m.metrics.Reset()
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess
		return m, m.startCmds()
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	var body string
	if m.width >= twoColumnMinWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.calcs.View(), m.metrics.View())
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, m.calcs.View(), m.metrics.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	bodyHeight := max(m.height-2, 4)
	if m.width >= twoColumnMinWidth {
		metricsWidth := m.width * metricsPanelWidthPercent / 100
		m.calcs.SetSize(m.width-metricsWidth, bodyHeight)
		m.metrics.SetWidth(metricsWidth)
		return
	}
	m.calcs.SetSize(m.width, bodyHeight-7)
	m.metrics.SetWidth(m.width)
}

// Run starts the dashboard and returns the exit code of the last run.
func Run(ctx context.Context, calculators []product.Calculator, cfg config.AppConfig, version string) int {
	initTUIStyles()

	model := NewModel(ctx, calculators, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startCalculationCmd runs the calculators through the orchestration layer.
func startCalculationCmd(ref *programRef, ctx context.Context, calculators []product.Calculator, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		req := cfg.ToRequest()
		results := orchestration.ExecuteCalculations(ctx, calculators, req, reporter, io.Discard)
		if len(results) == 1 {
			ref.Send(ComparisonResultsMsg{Results: results})
		}
		opts := orchestration.PresentationOptions{Request: req, Verbose: cfg.Verbose, Details: cfg.Details}
		exitCode := orchestration.AnalyzeComparisonResults(results, opts, presenter, io.Discard)
		if exitCode == apperrors.ExitErrorMismatch {
			ref.Send(ErrorMsg{Err: orchestration.CheckConsistency(results)})
		}
		return CalculationCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd(mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg(mc.Snapshot())
	}
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd reports the end of ctx. Restarts cancel the old context
// first, so stale generations are dropped in Update.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
