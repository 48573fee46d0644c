package installer

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Hawkhub/tg-tw-answering-bot/internal/config"
	"github.com/Hawkhub/tg-tw-answering-bot/pkg/env"
)

// envSettings mirrors the configuration structs so MarshalEnv writes the
// same keys they parse.
type envSettings struct {
	Token           string `env:"BOT_TOKEN"`
	Channel         string `env:"CHANNEL"`
	AuthorizedUsers string `env:"AUTHORIZED_USERS"`
	HistoryDir      string `env:"ANSWERBOT_HISTORY_DIR"`
	Debug           string `env:"ANSWERBOT_DEBUG"`
}

// SaveEnvStep writes the collected configuration to .env file
type SaveEnvStep struct {
	err   error
	saved bool
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}

	// Perform save synchronously (fast operation)
	path := config.GetRuntimePath()

	if err := os.MkdirAll(path, 0755); err != nil {
		s.err = fmt.Errorf("failed to create runtime directory: %w", err)
		return s, nil
	}

	envPath := filepath.Join(path, ".env")

	// Check if .env already exists
	if _, err := os.Stat(envPath); err == nil {
		s.err = fmt.Errorf(".env file already exists at %s", envPath)
		return s, nil
	}

	settings := &envSettings{
		Token:           state.EnvVars["BOT_TOKEN"],
		Channel:         state.EnvVars["CHANNEL"],
		AuthorizedUsers: state.EnvVars["AUTHORIZED_USERS"],
		HistoryDir:      state.EnvVars["ANSWERBOT_HISTORY_DIR"],
		Debug:           state.EnvVars["ANSWERBOT_DEBUG"],
	}
	content, err := env.MarshalEnv(settings)
	if err != nil {
		s.err = err
		return s, nil
	}

	if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
		s.err = err
		return s, nil
	}

	s.saved = true
	return nil, nil // Signal completion
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

// InitializeFilesStep prepares the runtime directory: the media scratch
// dir and an empty archive file.
type InitializeFilesStep struct {
	err  error
	done bool
}

func NewInitializeFilesStep() Step {
	return &InitializeFilesStep{}
}

func (s *InitializeFilesStep) Init() tea.Cmd {
	return nil
}

func (s *InitializeFilesStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.done {
		return nil, nil
	}

	path := config.GetRuntimePath()

	if err := os.MkdirAll(filepath.Join(path, "media"), 0755); err != nil {
		s.err = fmt.Errorf("failed to create media directory: %w", err)
		return s, nil
	}

	storageFile := filepath.Join(path, "channel_messages.json")
	if _, err := os.Stat(storageFile); os.IsNotExist(err) {
		if err := os.WriteFile(storageFile, []byte("[]"), 0644); err != nil {
			s.err = fmt.Errorf("failed to create archive file: %w", err)
			return s, nil
		}
	}

	s.done = true
	return nil, nil
}

func (s *InitializeFilesStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.done {
		return "Runtime files initialized successfully!\n"
	}
	return "Initializing runtime files...\n"
}
