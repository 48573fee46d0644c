package relay

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Hawkhub/tg-tw-answering-bot/internal/core"
	"github.com/Hawkhub/tg-tw-answering-bot/internal/service/search"
	"github.com/Hawkhub/tg-tw-answering-bot/pkg/log"
)

const historyExcerptLimit = 3

// Relay drives the status-link pipeline: resolve prior mentions of the
// tweet author in channel history, pick a reply target, scrape the tweet,
// and republish the consolidated content into the channel.
type Relay struct {
	resolver   *search.Resolver
	archive    core.Archive
	fetcher    core.TweetFetcher
	downloader core.MediaDownloader
	channels   core.ChannelResolver
	poster     core.Poster
	channel    string
}

func New(
	resolver *search.Resolver,
	archive core.Archive,
	fetcher core.TweetFetcher,
	downloader core.MediaDownloader,
	channels core.ChannelResolver,
	poster core.Poster,
	channel string,
) *Relay {
	return &Relay{
		resolver:   resolver,
		archive:    archive,
		fetcher:    fetcher,
		downloader: downloader,
		channels:   channels,
		poster:     poster,
		channel:    channel,
	}
}

// HandleStatusLink runs the pipeline for a single status link. Progress
// and outcomes meant for the requesting user go through onProgress; the
// returned error covers only failures that aborted the channel post.
func (r *Relay) HandleStatusLink(ctx context.Context, username, tweetID string, onProgress func(string)) error {
	logger := log.FromCtx(ctx)
	notify := func(msg string) {
		if onProgress != nil {
			onProgress(msg)
		}
	}

	notify(fmt.Sprintf("Searching for '%s' in channel history...", username))

	result := r.resolver.Resolve(ctx, username)
	if result.Source == search.SourceHistory {
		notify("Not found in recent messages. Searching in older exported history...")
	}
	notify(summarize(username, result))

	target, err := search.SelectTarget(ctx, result, r.channels, r.channel)
	if err != nil {
		logger.Error().Err(err).Msg("failed to select reply target")
		return fmt.Errorf("could not determine where to post: %w", err)
	}

	// Scrape is best effort; even an all-empty result still carries the
	// reconstructed link, which is always worth posting.
	content := r.fetcher.Fetch(ctx, username, tweetID)
	text := composeText(content)

	paths := r.downloadAll(ctx, content.MediaURLs)
	defer removeAll(ctx, paths)

	sent, err := r.poster.Post(ctx, target, text, paths)
	if err != nil {
		logger.Error().Err(err).Int64("chat", target.ChatID).Msg("failed to post to channel")
		return fmt.Errorf("failed to post to channel: %w", err)
	}

	// Mirror our own post back into the archive so future searches can
	// thread under it.
	r.archive.Insert(ctx, sent)

	if target.ReplyTo != 0 {
		notify(fmt.Sprintf("Posted the link to the channel as a reply to message %d", target.ReplyTo))
	} else {
		notify("Posted the link to the channel as a new message")
	}
	return nil
}

// summarize renders the search outcome for the requesting user.
func summarize(username string, result search.Result) string {
	switch result.Source {
	case search.SourceLive:
		var sb strings.Builder
		fmt.Fprintf(&sb, "Found mentions of '%s':\n\n", username)
		sb.WriteString("Recent message:\n")
		sb.WriteString(excerpt(result.Live.Text, 200))
		return sb.String()

	case search.SourceHistory:
		var sb strings.Builder
		fmt.Fprintf(&sb, "Found mentions of '%s':\n\n", username)
		fmt.Fprintf(&sb, "From history (%d found):\n", len(result.History))
		for i, res := range result.History {
			if i == historyExcerptLimit {
				fmt.Fprintf(&sb, "...and %d more results\n", len(result.History)-historyExcerptLimit)
				break
			}
			fmt.Fprintf(&sb, "%d. %s\n", i+1, excerpt(res.Text, 100))
		}
		return sb.String()

	default:
		return fmt.Sprintf("No mentions of '%s' found in any channel history. Posting as a new message.", username)
	}
}

func composeText(content core.TweetContent) string {
	if content.Text == "" {
		return content.Source
	}
	return content.Text + "\n\n" + content.Source
}

func (r *Relay) downloadAll(ctx context.Context, urls []string) []string {
	logger := log.FromCtx(ctx)

	var paths []string
	for _, u := range urls {
		path, err := r.downloader.Download(ctx, u)
		if err != nil {
			// Partial media is fine; post whatever was recoverable.
			logger.Warn().Err(err).Str("url", u).Msg("failed to download media, skipping")
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

func removeAll(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("path", p).Msg("failed to remove media file")
		}
	}
}

func excerpt(text string, limit int) string {
	text = strings.TrimSpace(text)
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
