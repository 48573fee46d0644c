package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Hawkhub/tg-tw-answering-bot/internal/core"
)

// SelectTarget turns a resolution result into the chat and message id a
// consolidated post should be threaded under. A zero ReplyTo means the
// post goes out as a new, non-reply message.
//
// Live matches carry their own chat id; history and none outcomes fall
// back to the configured default channel, resolved from a human-readable
// handle when necessary. A failed channel lookup aborts the downstream
// post and is reported to the user rather than retried.
func SelectTarget(ctx context.Context, result Result, channels core.ChannelResolver, defaultChannel string) (core.Target, error) {
	switch result.Source {
	case SourceLive:
		target := core.Target{ReplyTo: result.Live.MessageID}
		if result.Live.Chat != nil && result.Live.Chat.ID != 0 {
			target.ChatID = result.Live.Chat.ID
			return target, nil
		}
		chatID, err := resolveChannelID(ctx, channels, defaultChannel)
		if err != nil {
			return core.Target{}, err
		}
		target.ChatID = chatID
		return target, nil

	case SourceHistory:
		// Results are ordered ascending by id; thread under the first.
		replyTo, err := strconv.ParseInt(result.History[0].MessageID, 10, 64)
		if err != nil {
			return core.Target{}, fmt.Errorf("invalid exported message id %q: %w", result.History[0].MessageID, err)
		}
		chatID, err := resolveChannelID(ctx, channels, defaultChannel)
		if err != nil {
			return core.Target{}, err
		}
		return core.Target{ChatID: chatID, ReplyTo: replyTo}, nil

	default:
		chatID, err := resolveChannelID(ctx, channels, defaultChannel)
		if err != nil {
			return core.Target{}, err
		}
		return core.Target{ChatID: chatID}, nil
	}
}

// resolveChannelID accepts either a raw numeric chat id or an @handle that
// needs an external lookup.
func resolveChannelID(ctx context.Context, channels core.ChannelResolver, identifier string) (int64, error) {
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		return id, nil
	}

	id, err := channels.ResolveChannel(ctx, ensureHandle(identifier))
	if err != nil {
		return 0, fmt.Errorf("failed to resolve channel %q: %w", identifier, err)
	}
	return id, nil
}

func ensureHandle(identifier string) string {
	if strings.HasPrefix(identifier, "@") {
		return identifier
	}
	return "@" + identifier
}
