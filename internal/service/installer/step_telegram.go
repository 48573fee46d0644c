package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TelegramTokenStep collects the Telegram bot token
type TelegramTokenStep struct {
	input textinput.Model
}

func NewTelegramTokenStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "123456789:ABCDEF..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &TelegramTokenStep{
		input: ti,
	}
}

func (s *TelegramTokenStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *TelegramTokenStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.EnvVars["BOT_TOKEN"] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *TelegramTokenStep) View(state *InstallState) string {
	return "Enter your Telegram Bot Token:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

// AuthorizedUsersStep collects the allow-list of Telegram handles
type AuthorizedUsersStep struct {
	input textinput.Model
}

func NewAuthorizedUsersStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "alice,bob"
	ti.EchoMode = textinput.EchoNormal

	return &AuthorizedUsersStep{
		input: ti,
	}
}

func (s *AuthorizedUsersStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *AuthorizedUsersStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.EnvVars["AUTHORIZED_USERS"] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *AuthorizedUsersStep) View(state *InstallState) string {
	return "Enter the Telegram usernames allowed to command the bot (comma-separated):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
