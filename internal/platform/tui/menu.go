package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/milkrun/internal/core"
	"github.com/vovakirdan/milkrun/internal/storage"
)

// MenuChoice is an entry of the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

// MenuItem is one selectable line.
type MenuItem struct {
	Label  string
	Choice MenuChoice
}

var menuItems = []MenuItem{
	{Label: "Play", Choice: ChoicePlay},
	{Label: "High Scores", Choice: ChoiceScores},
	{Label: "Quit", Choice: ChoiceQuit},
}

// MenuModel is the main menu: play, high scores or quit.
type MenuModel struct {
	gameID    string
	title     string
	pilot     string
	best      int
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	chosen    MenuChoice
}

// NewMenuModel creates the menu for gameID. The best score is read from
// store when one is available.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, gameID, title, pilot string) MenuModel {
	m := MenuModel{
		gameID:    gameID,
		title:     title,
		pilot:     pilot,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		if best, err := store.HighScore(gameID); err == nil {
			m.best = best
		}
	}
	return m
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles menu navigation.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.chosen = ChoiceQuit
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = core.Clamp(m.cursor-1, 0, len(menuItems)-1)
		case MenuActionDown:
			m.cursor = core.Clamp(m.cursor+1, 0, len(menuItems)-1)
		case MenuActionScoreboard:
			m.chosen = ChoiceScores
			return m, tea.Quit
		case MenuActionSelect:
			m.chosen = menuItems[m.cursor].Choice
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.chosen == ChoiceQuit {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("218"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(spaced(m.title)), m.width))
	b.WriteString("\n\n")

	sub := "collect the herd, dodge the turrets"
	if m.pilot != "" {
		sub = fmt.Sprintf("pilot %s  |  best %d", m.pilot, m.best)
	}
	b.WriteString(centerText(dimStyle.Render(sub), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := "  " + item.Label
		styled := line
		if i == m.cursor {
			line = "> " + item.Label
			styled = selStyle.Render(line)
		}
		b.WriteString(centerText(styled, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")
	return b.String()
}

// Chosen returns the selected entry, or ChoiceNone.
func (m MenuModel) Chosen() MenuChoice {
	return m.chosen
}

// Config returns the runtime config including any resize.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// spaced puts a space between letters for the banner title.
func spaced(s string) string {
	upper := []rune(strings.ToUpper(s))
	parts := make([]string, len(upper))
	for i, r := range upper {
		parts[i] = string(r)
	}
	return "  " + strings.Join(parts, " ") + "  "
}

// centerText left-pads text so that it sits centered within width.
func centerText(styled string, width int) string {
	n := lipgloss.Width(styled)
	if n >= width {
		return styled
	}
	return strings.Repeat(" ", (width-n)/2) + styled
}

// RunMenu shows the menu in the local terminal and returns the choice.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, gameID, title, pilot string) (MenuChoice, core.RuntimeConfig, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg, gameID, title, pilot), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return ChoiceQuit, cfg, err
	}
	m, ok := final.(MenuModel)
	if !ok || m.Chosen() == ChoiceNone {
		return ChoiceQuit, cfg, nil
	}
	return m.Chosen(), m.Config(), nil
}
