package ingest

import (
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/Hawkhub/tg-tw-answering-bot/internal/core"
)

// FromTelebot projects a transport message onto the archive record shape.
// The projection is lossy by design: only the fields search and reply
// threading need survive, which keeps the archive bounded and stable
// across transport-library versions.
func FromTelebot(msg *tele.Message) core.MessageRecord {
	rec := core.MessageRecord{
		MessageID: int64(msg.ID),
		Text:      msg.Text,
		Caption:   msg.Caption,
		Date:      msg.Unixtime,
	}

	if rec.Date == 0 {
		rec.Date = time.Now().Unix()
	}

	if msg.Sender != nil {
		rec.From = &core.Sender{
			ID:        msg.Sender.ID,
			Username:  msg.Sender.Username,
			FirstName: msg.Sender.FirstName,
			LastName:  msg.Sender.LastName,
		}
	}

	if msg.Chat != nil {
		rec.Chat = &core.Chat{
			ID:       msg.Chat.ID,
			Type:     string(msg.Chat.Type),
			Title:    msg.Chat.Title,
			Username: msg.Chat.Username,
		}
	}

	for _, ent := range msg.Entities {
		rec.Entities = append(rec.Entities, core.Entity{
			Type:   string(ent.Type),
			Offset: ent.Offset,
			Length: ent.Length,
			URL:    ent.URL,
		})
	}

	return rec
}

// IsTargetChannel reports whether chat is the monitored channel. The
// identifier may be a numeric chat id, a username, or a title; the first
// match wins and string comparisons are case-insensitive. A leading @ on
// the identifier is ignored.
func IsTargetChannel(chat *tele.Chat, identifier string) bool {
	if chat == nil || identifier == "" {
		return false
	}
	ident := strings.TrimPrefix(identifier, "@")

	if strconv.FormatInt(chat.ID, 10) == ident {
		return true
	}
	if chat.Username != "" && strings.EqualFold(chat.Username, ident) {
		return true
	}
	if chat.Title != "" && strings.EqualFold(chat.Title, ident) {
		return true
	}
	return false
}
