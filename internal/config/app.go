package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v9"

	"github.com/Hawkhub/tg-tw-answering-bot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"ANSWERBOT_RUNTIME_PATH" envDefault:".answerbot"`

	// StorageFile overrides the default archive location inside the
	// runtime directory.
	StorageFile string `env:"ANSWERBOT_STORAGE_FILE"`

	// HistoryDir is the root of the static channel export tree searched
	// when the live archive has no match.
	HistoryDir string `env:"ANSWERBOT_HISTORY_DIR" envDefault:".channel_data"`

	// MaxStoreBytes caps the serialized archive size. Default 5 GiB.
	MaxStoreBytes int64 `env:"ANSWERBOT_MAX_STORE_BYTES" envDefault:"5368709120"`

	// UpdateIntervalSeconds is the long-poll timeout. The name survives
	// from the legacy periodic-fetch design.
	UpdateIntervalSeconds int `env:"ANSWERBOT_UPDATE_INTERVAL" envDefault:"60"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

// GetRuntimePath resolves a relative runtime path against the home
// directory, matching the package-level GetRuntimePath.
func (c AppConfig) GetRuntimePath() string {
	if filepath.IsAbs(c.RuntimePath) {
		return c.RuntimePath
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, c.RuntimePath)
}

func (c AppConfig) GetStorageFilePath() string {
	if c.StorageFile != "" {
		return c.StorageFile
	}
	return filepath.Join(c.GetRuntimePath(), "channel_messages.json")
}

func (c AppConfig) GetHistoryDir() string {
	return c.HistoryDir
}

func (c AppConfig) GetMediaDir() string {
	return filepath.Join(c.GetRuntimePath(), "media")
}
