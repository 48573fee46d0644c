package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/Hawkhub/tg-tw-answering-bot/internal/config"
	"github.com/Hawkhub/tg-tw-answering-bot/internal/service/media"
	"github.com/Hawkhub/tg-tw-answering-bot/internal/service/search"
	"github.com/Hawkhub/tg-tw-answering-bot/internal/service/tweet"
	"github.com/Hawkhub/tg-tw-answering-bot/internal/storage/archive"
	"github.com/Hawkhub/tg-tw-answering-bot/internal/storage/exported"
	"github.com/Hawkhub/tg-tw-answering-bot/internal/transport/telegram"
	"github.com/Hawkhub/tg-tw-answering-bot/pkg/log"
	"github.com/Hawkhub/tg-tw-answering-bot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	tgCfg := config.NewTelegramConfig(ctx)

	// 2. Storage
	store := archive.NewStore(appCfg.GetStorageFilePath(), appCfg.MaxStoreBytes)
	if err := store.Init(ctx); err != nil {
		logger.Fatal().Err(err).Str("path", store.Path()).Msg("failed to initialize archive")
	}
	history := exported.NewIndex(appCfg.GetHistoryDir())

	// 3. Search over live archive and static export
	resolver := search.NewResolver(store, history)

	// 4. Tweet fetching and media
	fetcher := tweet.NewFetcher()
	downloader := media.NewDownloader(appCfg.GetMediaDir())
	services = append(services, srv.NewCleanup(func() error {
		return os.RemoveAll(appCfg.GetMediaDir())
	}))

	// 5. Transport
	bot, err := telegram.NewBot(ctx, tgCfg, appCfg, store, resolver, fetcher, downloader)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
	}
	services = append(services, bot)

	return services
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
