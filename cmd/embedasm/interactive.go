package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/embedasm/build"
	"github.com/wippyai/embedasm/config"
	"github.com/wippyai/embedasm/embed"
	"github.com/wippyai/embedasm/platform"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	targetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	dialectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	manifest *config.Manifest
	blob     *embed.Blob
	result   string
	targets  []platform.Target
	preview  viewport.Model
	selected int
	width    int
	height   int
	state    modelState
}

type modelState int

const (
	stateSelectTarget modelState = iota
	statePreview
)

// Lines used by the title, status and help around the preview.
const previewChrome = 6

func newInteractiveModel(m *config.Manifest) *interactiveModel {
	return &interactiveModel{
		manifest: m,
		preview:  viewport.New(80, 20),
		state:    stateSelectTarget,
	}
}

type loadedMsg struct {
	err     error
	blob    *embed.Blob
	targets []platform.Target
}

type renderedMsg struct {
	err  error
	text string
}

type writtenMsg struct {
	err  error
	path string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	blob, err := m.manifest.LoadBlob()
	if err != nil {
		return loadedMsg{err: err}
	}
	if err := blob.Validate(); err != nil {
		return loadedMsg{err: err}
	}
	targets, err := m.manifest.ParsedTargets()
	if err != nil {
		return loadedMsg{err: err}
	}
	// Previewing is most useful across dialects, so offer every known target
	// after the configured ones.
	for _, t := range platform.KnownTargets() {
		if t.PointerSize() > 0 && !containsTarget(targets, t) {
			targets = append(targets, t)
		}
	}
	return loadedMsg{blob: blob, targets: targets}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.preview.Width = msg.Width
		m.preview.Height = max(msg.Height-previewChrome, 1)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectTarget && m.selected > 0 {
				m.selected--
				return m, nil
			}

		case "down", "j":
			if m.state == stateSelectTarget && m.selected < len(m.targets)-1 {
				m.selected++
				return m, nil
			}

		case "enter":
			if m.state == stateSelectTarget && len(m.targets) > 0 {
				m.result = ""
				m.err = nil
				return m, m.render
			}

		case "w":
			if len(m.targets) > 0 {
				return m, m.write
			}

		case "esc":
			if m.state == statePreview {
				m.state = stateSelectTarget
				m.result = ""
				m.err = nil
				return m, nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.blob = msg.blob
		m.targets = msg.targets

	case renderedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.preview.SetContent(msg.text)
		m.preview.GotoTop()
		m.state = statePreview

	case writtenMsg:
		m.err = msg.err
		if msg.err == nil {
			m.result = "wrote " + msg.path
		}
	}

	if m.state == statePreview {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) current() platform.Target {
	return m.targets[m.selected]
}

func (m *interactiveModel) render() tea.Msg {
	text, err := build.Render(m.current(), m.blob)
	return renderedMsg{text: string(text), err: err}
}

func (m *interactiveModel) write() tea.Msg {
	job := build.Job{Target: m.current(), Path: build.OutputPath(m.manifest.Output, m.current())}
	err := build.WriteFile(context.Background(), job, m.blob, build.WithVerify(m.manifest.Verify))
	return writtenMsg{path: job.Path, err: err}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.blob == nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.blob == nil {
		return "Loading blob..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("embedasm"))
	b.WriteString(" ")
	b.WriteString(filepath.Base(m.manifest.Blob))
	b.WriteString(fmt.Sprintf(" (%d data, %d code bytes)", len(m.blob.Data), len(m.blob.Code)))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectTarget:
		b.WriteString("Select a target to preview:\n\n")
		for i, t := range m.targets {
			line := m.formatTarget(t)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(dialectStyle.Render("symbols: " + strings.Join(symbolSummary(m.blob), ", ")))
		b.WriteString("\n")
		m.writeStatus(&b)
		b.WriteString(helpStyle.Render("↑/↓ select • enter preview • w write file • q quit"))

	case statePreview:
		t := m.current()
		b.WriteString(fmt.Sprintf("%s %s\n", targetStyle.Render(t.String()), dialectStyle.Render(platform.DialectFor(t).Name())))
		b.WriteString(m.preview.View())
		b.WriteString("\n")
		m.writeStatus(&b)
		b.WriteString(helpStyle.Render(fmt.Sprintf("↑/↓ scroll %3.f%% • w write file • esc back • q quit", m.preview.ScrollPercent()*100)))
	}

	return b.String()
}

func (m *interactiveModel) writeStatus(b *strings.Builder) {
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	case m.result != "":
		b.WriteString(resultStyle.Render(m.result))
		b.WriteString("\n")
	}
}

func (m *interactiveModel) formatTarget(t platform.Target) string {
	d := platform.DialectFor(t)
	return targetStyle.Render(fmt.Sprintf("%-22s", t)) + " " + dialectStyle.Render(d.Name()+" "+d.Extension)
}

func containsTarget(ts []platform.Target, t platform.Target) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}

func runInteractive(m *config.Manifest) error {
	p := tea.NewProgram(newInteractiveModel(m), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
