package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-copter/internal/config"
)

type difficultyChoice struct {
	preset config.DifficultyPreset
	blurb  string
}

var difficultyChoices = []difficultyChoice{
	{config.DifficultyEasy, "wider gaps, slower scroll"},
	{config.DifficultyNormal, "configured values"},
	{config.DifficultyHard, "narrower gaps, faster scroll"},
	{config.DifficultyFixed, "no speed-up as the score grows"},
}

type difficultyKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func defaultDifficultyKeys() difficultyKeys {
	return difficultyKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s")),
		Select: key.NewBinding(key.WithKeys("enter", " ")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// DifficultyModel lets the player pick a difficulty preset before a session.
type DifficultyModel struct {
	cursor   int
	width    int
	height   int
	keys     difficultyKeys
	chosen   bool
	quitting bool
}

// NewDifficultyModel creates a picker with the cursor on initial.
func NewDifficultyModel(initial config.DifficultyPreset, width, height int) DifficultyModel {
	m := DifficultyModel{width: width, height: height, keys: defaultDifficultyKeys()}
	for i, c := range difficultyChoices {
		if c.preset == initial {
			m.cursor = i
		}
	}
	return m
}

// Selection returns the chosen preset, false if the player backed out.
func (m DifficultyModel) Selection() (config.DifficultyPreset, bool) {
	if !m.chosen {
		return "", false
	}
	return difficultyChoices[m.cursor].preset, true
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(difficultyChoices)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			m.chosen = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the preset list.
func (m DifficultyModel) View() string {
	if m.quitting || m.chosen {
		return ""
	}

	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, "T U I   C O P T E R"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, "Select difficulty:"))
	b.WriteString("\n\n")

	for i, c := range difficultyChoices {
		line := fmt.Sprintf("  %-7s %s", c.preset, dim.Render(c.blurb))
		if i == m.cursor {
			line = selected.Render(fmt.Sprintf("> %-7s", c.preset)) + " " + dim.Render(c.blurb)
		}
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, dim.Render("Enter: Select  |  Q: Quit")))
	return b.String()
}

// RunDifficultySelector shows the picker and returns the chosen preset.
// ok is false when the player quit without choosing.
func RunDifficultySelector(initial config.DifficultyPreset, width, height int) (preset config.DifficultyPreset, ok bool, err error) {
	p := tea.NewProgram(NewDifficultyModel(initial, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", false, err
	}
	m, isModel := final.(DifficultyModel)
	if !isModel {
		return "", false, nil
	}
	preset, ok = m.Selection()
	return preset, ok, nil
}
