package config

import (
	"context"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/Hawkhub/tg-tw-answering-bot/pkg/log"
)

type TelegramConfig struct {
	Token string `env:"BOT_TOKEN,required,notEmpty"`

	// Channel identifies the monitored channel: numeric id, @username,
	// or title.
	Channel string `env:"CHANNEL,required,notEmpty"`

	// AuthorizedUsers is the allow-list of handles whose commands the
	// bot accepts.
	AuthorizedUsers []string `env:"AUTHORIZED_USERS" envSeparator:","`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	for i, u := range c.AuthorizedUsers {
		c.AuthorizedUsers[i] = strings.TrimPrefix(strings.TrimSpace(u), "@")
	}
	return c
}

// IsAuthorized reports whether the handle is on the allow-list.
func (c *TelegramConfig) IsAuthorized(username string) bool {
	if username == "" {
		return false
	}
	username = strings.TrimPrefix(username, "@")
	for _, u := range c.AuthorizedUsers {
		if u != "" && strings.EqualFold(u, username) {
			return true
		}
	}
	return false
}
