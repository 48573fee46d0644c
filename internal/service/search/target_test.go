package search

import (
	"context"
	"errors"
	"testing"

	"github.com/Hawkhub/tg-tw-answering-bot/internal/core"
)

type fakeChannels struct {
	id     int64
	err    error
	lookup string
}

func (f *fakeChannels) ResolveChannel(ctx context.Context, identifier string) (int64, error) {
	f.lookup = identifier
	return f.id, f.err
}

func TestSelectTarget_LiveUsesRecordChat(t *testing.T) {
	t.Parallel()
	result := Result{
		Source: SourceLive,
		Live:   &core.MessageRecord{MessageID: 55, Chat: &core.Chat{ID: -1001}},
	}
	channels := &fakeChannels{}

	target, err := SelectTarget(context.Background(), result, channels, "@mychannel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.ChatID != -1001 || target.ReplyTo != 55 {
		t.Errorf("target = %+v, want chat -1001 reply 55", target)
	}
	if channels.lookup != "" {
		t.Errorf("unexpected channel lookup for %q", channels.lookup)
	}
}

func TestSelectTarget_LiveWithoutChatFallsBack(t *testing.T) {
	t.Parallel()
	result := Result{
		Source: SourceLive,
		Live:   &core.MessageRecord{MessageID: 55},
	}
	channels := &fakeChannels{id: -2002}

	target, err := SelectTarget(context.Background(), result, channels, "mychannel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.ChatID != -2002 || target.ReplyTo != 55 {
		t.Errorf("target = %+v", target)
	}
	if channels.lookup != "@mychannel" {
		t.Errorf("lookup = %q, want @mychannel", channels.lookup)
	}
}

func TestSelectTarget_HistoryRepliesToFirstResult(t *testing.T) {
	t.Parallel()
	result := Result{
		Source: SourceHistory,
		History: []core.ExportedMessage{
			{MessageID: "7"},
			{MessageID: "42"},
		},
	}
	channels := &fakeChannels{id: -3003}

	target, err := SelectTarget(context.Background(), result, channels, "@mychannel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.ChatID != -3003 || target.ReplyTo != 7 {
		t.Errorf("target = %+v, want chat -3003 reply 7", target)
	}
}

func TestSelectTarget_HistoryResolverFailureAborts(t *testing.T) {
	t.Parallel()
	result := Result{
		Source:  SourceHistory,
		History: []core.ExportedMessage{{MessageID: "7"}},
	}
	channels := &fakeChannels{err: errors.New("chat not found")}

	if _, err := SelectTarget(context.Background(), result, channels, "@mychannel"); err == nil {
		t.Fatal("expected error when channel lookup fails")
	}
}

func TestSelectTarget_NonePostsAsNewMessage(t *testing.T) {
	t.Parallel()
	channels := &fakeChannels{id: -4004}

	target, err := SelectTarget(context.Background(), Result{Source: SourceNone}, channels, "@mychannel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.ChatID != -4004 || target.ReplyTo != 0 {
		t.Errorf("target = %+v, want chat -4004 and no reply", target)
	}
}

func TestSelectTarget_NumericDefaultChannelSkipsLookup(t *testing.T) {
	t.Parallel()
	channels := &fakeChannels{}

	target, err := SelectTarget(context.Background(), Result{Source: SourceNone}, channels, "-1005006007")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.ChatID != -1005006007 {
		t.Errorf("ChatID = %d", target.ChatID)
	}
	if channels.lookup != "" {
		t.Errorf("unexpected lookup %q", channels.lookup)
	}
}
