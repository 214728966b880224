package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/playmesh/plugbridge/abi"
	"github.com/playmesh/plugbridge/host"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	stateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type playModel struct {
	methods *abi.GameMethods
	opts    string
	state   string

	driver *host.Driver
	err    error

	position string
	board    string
	player   abi.PlayerID
	legal    []string
	winners  []abi.PlayerID
	over     bool

	input textinput.Model
}

type createdMsg struct {
	err    error
	driver *host.Driver
}

func newPlayModel(methods *abi.GameMethods, opts, state string) *playModel {
	ti := textinput.New()
	ti.Prompt = "move: "
	ti.Width = 30
	ti.Focus()
	return &playModel{methods: methods, opts: opts, state: state, input: ti}
}

func (m *playModel) Init() tea.Cmd {
	return tea.Batch(m.createGame, textinput.Blink)
}

func (m *playModel) createGame() tea.Msg {
	d, err := host.New(m.methods, abi.StandardInit(m.opts, m.state))
	if err != nil {
		return createdMsg{err: err}
	}
	return createdMsg{driver: d}
}

// refresh re-reads the position, the player to move and their legal
// moves, or the winners once no one is to move.
func (m *playModel) refresh() {
	m.err = nil
	m.legal = nil
	m.board = ""

	position, err := m.driver.ExportState(abi.PlayerNone)
	if err != nil {
		m.err = err
		return
	}
	m.position = position

	if m.methods.Features.Print {
		if board, err := m.driver.Print(abi.PlayerNone); err == nil {
			m.board = strings.TrimRight(board, "\n")
		}
	}

	toMove, err := m.driver.PlayersToMove()
	if err != nil {
		m.err = err
		return
	}
	if len(toMove) == 0 {
		m.over = true
		m.winners, m.err = m.driver.Results()
		return
	}

	m.player = toMove[0]
	moves, err := m.driver.LegalMoves(m.player)
	if err != nil {
		m.err = err
		return
	}
	for _, mov := range moves {
		str, err := m.driver.MoveString(m.player, abi.Sync(mov))
		if err != nil {
			m.err = err
			return
		}
		m.legal = append(m.legal, str)
	}
}

func (m *playModel) applyMove(str string) {
	mov, err := m.driver.ParseMove(m.player, str)
	if err != nil {
		m.err = err
		return
	}
	if err := m.driver.IsLegal(m.player, mov); err != nil {
		m.err = err
		return
	}
	if err := m.driver.MakeMove(m.player, mov); err != nil {
		m.err = err
		return
	}
	m.refresh()
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.driver != nil {
				m.driver.Close()
			}
			return m, tea.Quit

		case "enter":
			if m.driver == nil || m.over {
				return m, tea.Quit
			}
			str := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if str != "" {
				m.applyMove(str)
			}
			return m, nil
		}

	case createdMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.driver = msg.driver
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *playModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("plugrun"))
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf("%s/%s/%s", m.methods.GameName, m.methods.VariantName, m.methods.ImplName))
	b.WriteString("\n\n")

	if m.driver == nil && m.err == nil {
		b.WriteString("Creating game...\n")
		return b.String()
	}

	if m.position != "" {
		b.WriteString("State: ")
		b.WriteString(stateStyle.Render(m.position))
		b.WriteString("\n")
	}
	if m.board != "" {
		b.WriteString(m.board)
		b.WriteString("\n")
	}

	switch {
	case m.over:
		b.WriteString("\n")
		b.WriteString(resultStyle.Render(fmt.Sprintf("Game over, winners: %v", m.winners)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter quit"))

	case m.driver != nil:
		b.WriteString(fmt.Sprintf("\nPlayer %d to move. Legal: %s\n\n",
			m.player, moveStyle.Render(strings.Join(m.legal, " "))))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter play • esc quit"))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	return b.String()
}

func runInteractive(methods *abi.GameMethods, opts, state string) error {
	p := tea.NewProgram(newPlayModel(methods, opts, state), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
