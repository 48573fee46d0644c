package telegram

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/Hawkhub/tg-tw-answering-bot/internal/core"
	"github.com/Hawkhub/tg-tw-answering-bot/internal/service/ingest"
	"github.com/Hawkhub/tg-tw-answering-bot/pkg/log"
)

// Post implements core.Poster. Text-only posts go out as a plain message,
// a single media file as a captioned photo/video/animation, several files
// as an album with the text on the first item.
func (b *Bot) Post(ctx context.Context, target core.Target, text string, mediaPaths []string) (core.MessageRecord, error) {
	logger := log.FromCtx(ctx)

	to := tele.ChatID(target.ChatID)
	opts := &tele.SendOptions{}
	if target.ReplyTo != 0 {
		opts.ReplyTo = &tele.Message{
			ID:   int(target.ReplyTo),
			Chat: &tele.Chat{ID: target.ChatID},
		}
	}

	var (
		sent *tele.Message
		err  error
	)
	switch len(mediaPaths) {
	case 0:
		sent, err = b.bot.Send(to, text, opts)
	case 1:
		sent, err = b.bot.Send(to, mediaFromDisk(mediaPaths[0], text), opts)
	default:
		album := make(tele.Album, 0, len(mediaPaths))
		for i, path := range mediaPaths {
			caption := ""
			if i == 0 {
				caption = text
			}
			album = append(album, mediaFromDisk(path, caption))
		}
		var msgs []tele.Message
		msgs, err = b.bot.SendAlbum(to, album, opts)
		if err == nil && len(msgs) > 0 {
			sent = &msgs[0]
		}
	}
	if err != nil {
		return core.MessageRecord{}, fmt.Errorf("failed to post to chat %d: %w", target.ChatID, err)
	}
	if sent == nil {
		return core.MessageRecord{}, fmt.Errorf("telegram returned no message for chat %d", target.ChatID)
	}

	logger.Info().
		Int64("chat", target.ChatID).
		Int64("reply_to", target.ReplyTo).
		Int("media", len(mediaPaths)).
		Msg("posted message")
	return ingest.FromTelebot(sent), nil
}

// mediaFromDisk picks the Telegram media type from the file extension.
func mediaFromDisk(path, caption string) tele.Inputtable {
	file := tele.FromDisk(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov", ".webm":
		return &tele.Video{File: file, Caption: caption}
	case ".gif":
		return &tele.Animation{File: file, Caption: caption}
	default:
		return &tele.Photo{File: file, Caption: caption}
	}
}
