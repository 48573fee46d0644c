package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ChannelStep collects the monitored channel identifier
type ChannelStep struct {
	input textinput.Model
}

func NewChannelStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "@mychannel or -1001234567890"
	ti.EchoMode = textinput.EchoNormal

	return &ChannelStep{
		input: ti,
	}
}

func (s *ChannelStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *ChannelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.EnvVars["CHANNEL"] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *ChannelStep) View(state *InstallState) string {
	return "Enter the channel to monitor (@username, numeric id, or title):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

// HistoryDirStep collects the optional exported-history directory
type HistoryDirStep struct {
	input textinput.Model
}

func NewHistoryDirStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = ".channel_data"
	ti.EchoMode = textinput.EchoNormal

	return &HistoryDirStep{
		input: ti,
	}
}

func (s *HistoryDirStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *HistoryDirStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			if s.input.Value() != "" {
				state.EnvVars["ANSWERBOT_HISTORY_DIR"] = s.input.Value()
			}
			return nil, nil
		}
	}
	return s, cmd
}

func (s *HistoryDirStep) View(state *InstallState) string {
	return "Directory with the channel's exported HTML history (enter to keep the default):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
