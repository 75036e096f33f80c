// Package viz renders a running simulation in the terminal.
package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mdsim/internal/md"
)

const (
	graphWidth      = 70
	graphHeight     = 10
	historyCapacity = 600
	stepsPerFrame   = 10
)

// TickMsg drives the simulation between frames.
type TickMsg time.Time

// Model steps the simulation a few steps per frame and shows the
// energy balance and drift as the run progresses.
type Model struct {
	stepper *md.Stepper
	err     error

	running       bool
	finished      bool
	energyHistory []float64
	frameRate     int
}

// NewModel wraps a prepared stepper; call Start on it first.
func NewModel(stepper *md.Stepper, frameRate int) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	return Model{
		stepper:       stepper,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		frameRate:     frameRate,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running && !m.finished {
				return m, m.tick()
			}
			return m, nil
		case "r":
			if _, err := m.stepper.Start(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.energyHistory = m.energyHistory[:0]
			m.finished = false
			m.running = true
			return m, m.tick()
		}

	case TickMsg:
		if !m.running || m.finished {
			return m, nil
		}
		for i := 0; i < stepsPerFrame && !m.stepper.Done(); i++ {
			m.stepper.Step()
		}
		m.energyHistory = append(m.energyHistory, m.stepper.Energies().Total())
		if len(m.energyHistory) > historyCapacity {
			m.energyHistory = m.energyHistory[1:]
		}
		if m.stepper.Done() {
			m.finished = true
			return m, nil
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	p := m.stepper.Params()
	e := m.stepper.Energies()

	header := headerStyle.Render(
		fmt.Sprintf("mdsim — %d particles, %dd", p.Particles, p.Dims))

	stats := statsStyle.Render(
		row("step", fmt.Sprintf("%d / %d", m.stepper.StepIndex(), p.Steps)) + "\n" +
			row("time", fmt.Sprintf("%.6f", m.stepper.Time())) + "\n" +
			row("potential", fmt.Sprintf("%.6f", e.Potential)) + "\n" +
			row("kinetic", fmt.Sprintf("%.6f", e.Kinetic)) + "\n" +
			row("total", fmt.Sprintf("%.6f", e.Total())) + "\n" +
			row("drift", fmt.Sprintf("%.3e", m.stepper.Drift())))

	graph := ""
	if len(m.energyHistory) > 1 {
		graph = graphStyle.Render(asciigraph.Plot(m.energyHistory,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("total energy"),
		))
	}

	status := "running"
	if m.finished {
		status = fmt.Sprintf("finished, drift %.3e", m.stepper.Drift())
	} else if !m.running {
		status = "paused"
	}

	help := helpStyle.Render("space pause · r restart · q quit · " + status)

	return header + "\n" + stats + "\n" + graph + "\n" + help + "\n"
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}
