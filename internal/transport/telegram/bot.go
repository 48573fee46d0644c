package telegram

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/Hawkhub/tg-tw-answering-bot/internal/config"
	"github.com/Hawkhub/tg-tw-answering-bot/internal/core"
	"github.com/Hawkhub/tg-tw-answering-bot/internal/service/ingest"
	"github.com/Hawkhub/tg-tw-answering-bot/internal/service/relay"
	"github.com/Hawkhub/tg-tw-answering-bot/internal/service/search"
	"github.com/Hawkhub/tg-tw-answering-bot/internal/service/tweet"
	"github.com/Hawkhub/tg-tw-answering-bot/pkg/log"
)

const baseContextKey = "base_context"

type Bot struct {
	bot         *tele.Bot
	cfg         *config.TelegramConfig
	archive     core.Archive
	relay       *relay.Relay
	sender      *sender
	storagePath string
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	appCfg *config.AppConfig,
	archive core.Archive,
	resolver *search.Resolver,
	fetcher core.TweetFetcher,
	downloader core.MediaDownloader,
) (*Bot, error) {
	pollTimeout := time.Duration(appCfg.UpdateIntervalSeconds) * time.Second
	if pollTimeout <= 0 {
		pollTimeout = 10 * time.Second
	}

	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:         b,
		cfg:         cfg,
		archive:     archive,
		sender:      newSender(b),
		storagePath: appCfg.GetStorageFilePath(),
	}
	// The bot is both the poster and the channel resolver for the relay.
	bot.relay = relay.New(resolver, archive, fetcher, downloader, bot, bot, cfg.Channel)

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: channel posts pass through, user commands only from
	// allow-listed handles.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Chat() != nil && c.Chat().Type == tele.ChatChannel {
				return next(c)
			}
			snd := c.Sender()
			if snd == nil || !cfg.IsAuthorized(snd.Username) {
				return c.Reply("Sorry, you are not authorized to use this bot.")
			}
			return next(c)
		}
	})

	b.Handle(tele.OnChannelPost, bot.handleChannelPost)
	b.Handle("/start", bot.handleWelcome)
	b.Handle("/hello", bot.handleWelcome)
	b.Handle("/status", bot.handleStatus)
	b.Handle(tele.OnText, bot.handleText)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("channel", b.cfg.Channel).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// handleChannelPost archives every post from the monitored channel. Posts
// from any other channel the bot happens to be in are ignored.
func (b *Bot) handleChannelPost(c tele.Context) error {
	ctx := b.ctx(c)
	logger := log.FromCtx(ctx)

	if !ingest.IsTargetChannel(c.Chat(), b.cfg.Channel) {
		logger.Debug().Int64("chat", c.Chat().ID).Msg("ignoring post from unmonitored channel")
		return nil
	}

	b.archive.Insert(ctx, ingest.FromTelebot(c.Message()))
	logger.Debug().Int("message_id", c.Message().ID).Msg("archived channel post")
	return nil
}

func (b *Bot) handleWelcome(c tele.Context) error {
	return c.Reply("Howdy, how are you doing?")
}

func (b *Bot) handleStatus(c tele.Context) error {
	ctx := b.ctx(c)
	records := b.archive.All(ctx)

	if len(records) == 0 {
		return c.Reply("No messages stored yet. Waiting for channel updates.")
	}

	newest, oldest := records[0].Date, records[0].Date
	for _, rec := range records[1:] {
		if rec.Date > newest {
			newest = rec.Date
		}
		if rec.Date < oldest {
			oldest = rec.Date
		}
	}

	md := fmt.Sprintf(
		"**Storage status**\n\n- Messages stored: %d\n- Newest: %s\n- Oldest: %s\n- File: `%s`",
		len(records),
		time.Unix(newest, 0).UTC().Format(time.DateTime),
		time.Unix(oldest, 0).UTC().Format(time.DateTime),
		b.storagePath,
	)
	return b.sender.replyMarkdown(ctx, c, md)
}

// handleText runs the status-link flow. Any other text gets a short nudge.
func (b *Bot) handleText(c tele.Context) error {
	ctx := b.ctx(c)
	logger := log.FromCtx(ctx)

	username, tweetID, ok := tweet.ParseStatusLink(c.Text())
	if !ok {
		return c.Reply("Send me a link to a Twitter post.")
	}

	_ = c.Notify(tele.Typing)

	err := b.relay.HandleStatusLink(ctx, username, tweetID, func(progress string) {
		if rerr := c.Reply(progress); rerr != nil {
			logger.Error().Err(rerr).Msg("failed to send progress reply")
		}
		_ = c.Notify(tele.Typing)
	})
	if err != nil {
		logger.Error().Err(err).Str("tweet", tweetID).Msg("status link handling failed")
		return c.Reply(fmt.Sprintf("error: %v", err))
	}
	return nil
}

// ResolveChannel implements core.ChannelResolver via the Telegram API.
func (b *Bot) ResolveChannel(ctx context.Context, identifier string) (int64, error) {
	chat, err := b.bot.ChatByUsername(identifier)
	if err != nil {
		return 0, fmt.Errorf("failed to look up chat %q: %w", identifier, err)
	}
	return chat.ID, nil
}

func (b *Bot) ctx(c tele.Context) context.Context {
	if ctx, ok := c.Get(baseContextKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}
