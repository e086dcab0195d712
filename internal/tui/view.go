// Package tui shows an orbital preview in the terminal. The pipeline runs
// inside a tea.Cmd so the UI goroutine never blocks on evaluation.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/san-kum/orbital/internal/analysis"
	"github.com/san-kum/orbital/internal/pipeline"
	"github.com/san-kum/orbital/internal/render"
)

type resultMsg struct {
	res *pipeline.Result
	err error
}

type Model struct {
	job    pipeline.Job
	runner *pipeline.Runner
	styles render.Styles
	camera *render.Camera

	result *pipeline.Result
	err    error

	width  int
	height int
}

func New(job pipeline.Job, runner *pipeline.Runner, theme render.Theme) *Model {
	return &Model{
		job:    job,
		runner: runner,
		styles: render.NewStyles(theme),
		camera: render.NewCamera(),
		width:  80,
		height: 24,
	}
}

// Run starts the viewer and blocks until the user quits.
func Run(job pipeline.Job, runner *pipeline.Runner, theme render.Theme) error {
	_, err := tea.NewProgram(New(job, runner, theme), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	job, runner := m.job, m.runner
	return func() tea.Msg {
		res, err := runner.Run(job)
		return resultMsg{res: res, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.result, m.err = msg.res, msg.err
		if m.result != nil {
			m.camera.Fit(m.result.Scene.Extent)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.camera.RotateZ(-0.2)
		case "right", "l":
			m.camera.RotateZ(0.2)
		case "up", "k":
			m.camera.RotateX(-0.2)
		case "down", "j":
			m.camera.RotateX(0.2)
		case "+", "=":
			m.camera.ZoomIn()
		case "-":
			m.camera.ZoomOut()
		}
	}
	return m, nil
}

func (m *Model) View() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Title.Render(fmt.Sprintf("orbital  %s  %s", m.job.State.Label(), m.job.Mode)))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(s.Error.Render("error: " + m.err.Error()))
	case m.result == nil:
		b.WriteString(s.Muted.Render(fmt.Sprintf("evaluating %s points...",
			humanize.Comma(int64(m.job.Steps*m.job.Steps*m.job.Steps)))))
	default:
		b.WriteString(m.viewResult())
	}
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("←→↑↓ rotate  +/- zoom  q quit"))
	return b.String()
}

func (m *Model) viewResult() string {
	s, res := m.styles, m.result
	w, h := max(m.width-30, 20), max(m.height-6, 8)

	var plot string
	if res.Scene.Empty() {
		plot = s.Warning.Render("nothing to draw: every level lies above the sampled density")
	} else {
		plot = render.Preview(res.Scene, m.camera, w, h).Styled()
	}

	var info strings.Builder
	row := func(label, value string) {
		info.WriteString(s.Label.Render(label) + " " + s.Value.Render(value) + "\n")
	}
	row("points", humanize.Comma(int64(res.Grid.Len())))
	row("norm  ", fmt.Sprintf("%.4f", res.Norm))
	row("<r>   ", fmt.Sprintf("%.3f (%.3f)", res.MeanRadius,
		analysis.ExpectedMeanRadius(res.Job.State.N, res.Job.State.L, res.Job.AtomicNumber)))
	for _, l := range res.Levels {
		row(fmt.Sprintf("p=%.2f", l.Fraction), fmt.Sprintf("%.3e", l.Density))
	}
	row("time  ", res.Elapsed.Round(time.Millisecond).String())

	return plot + "\n" + s.Panel.Render(strings.TrimSuffix(info.String(), "\n"))
}
