package installer

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep normalizes collected values before they are written out
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	// Strip @ prefixes from the allow-list entries
	if users := state.EnvVars["AUTHORIZED_USERS"]; users != "" {
		parts := strings.Split(users, ",")
		for i, p := range parts {
			parts[i] = strings.TrimPrefix(strings.TrimSpace(p), "@")
		}
		state.EnvVars["AUTHORIZED_USERS"] = strings.Join(parts, ",")
	}

	// Set defaults
	if state.EnvVars["ANSWERBOT_DEBUG"] == "" {
		state.EnvVars["ANSWERBOT_DEBUG"] = "0"
	}

	// Signal completion
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
