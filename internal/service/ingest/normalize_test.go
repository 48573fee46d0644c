package ingest

import (
	"testing"
	"time"

	tele "gopkg.in/telebot.v3"
)

func TestFromTelebot_ChannelPost(t *testing.T) {
	t.Parallel()
	msg := &tele.Message{
		ID:       123,
		Text:     "launch day",
		Unixtime: 1700000000,
		Chat: &tele.Chat{
			ID:       -1001234,
			Type:     tele.ChatChannel,
			Title:    "Acme News",
			Username: "acmenews",
		},
		Entities: []tele.MessageEntity{
			{Type: tele.EntityURL, Offset: 0, Length: 6},
			{Type: tele.EntityTextLink, Offset: 7, Length: 3, URL: "https://x.com/acme"},
		},
	}

	rec := FromTelebot(msg)
	if rec.MessageID != 123 || rec.Text != "launch day" || rec.Date != 1700000000 {
		t.Errorf("rec = %+v", rec)
	}
	if rec.From != nil {
		t.Error("channel post should have no sender")
	}
	if rec.Chat == nil || rec.Chat.ID != -1001234 || rec.Chat.Type != "channel" {
		t.Errorf("Chat = %+v", rec.Chat)
	}
	if len(rec.Entities) != 2 || rec.Entities[1].URL != "https://x.com/acme" {
		t.Errorf("Entities = %+v", rec.Entities)
	}
}

func TestFromTelebot_UserMessageWithCaption(t *testing.T) {
	t.Parallel()
	msg := &tele.Message{
		ID:      7,
		Caption: "look at this",
		Sender:  &tele.User{ID: 42, Username: "alice", FirstName: "Alice"},
		Chat:    &tele.Chat{ID: 42, Type: tele.ChatPrivate},
	}

	rec := FromTelebot(msg)
	if rec.Caption != "look at this" {
		t.Errorf("Caption = %q", rec.Caption)
	}
	if rec.From == nil || rec.From.Username != "alice" {
		t.Errorf("From = %+v", rec.From)
	}
}

func TestFromTelebot_MissingDateDefaultsToNow(t *testing.T) {
	t.Parallel()
	before := time.Now().Unix()
	rec := FromTelebot(&tele.Message{ID: 1})
	after := time.Now().Unix()

	if rec.Date < before || rec.Date > after {
		t.Errorf("Date = %d, want within [%d, %d]", rec.Date, before, after)
	}
}

func TestIsTargetChannel(t *testing.T) {
	t.Parallel()
	chat := &tele.Chat{ID: -1009, Username: "AcmeNews", Title: "Acme News Feed"}

	cases := []struct {
		name       string
		identifier string
		want       bool
	}{
		{"numeric id", "-1009", true},
		{"username", "acmenews", true},
		{"username with at", "@acmenews", true},
		{"title case-insensitive", "ACME NEWS FEED", true},
		{"other channel", "othernews", false},
		{"empty identifier", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTargetChannel(chat, tc.identifier); got != tc.want {
				t.Errorf("IsTargetChannel(%q) = %v, want %v", tc.identifier, got, tc.want)
			}
		})
	}
}

func TestIsTargetChannel_NilChat(t *testing.T) {
	t.Parallel()
	if IsTargetChannel(nil, "acme") {
		t.Error("nil chat matched")
	}
}
