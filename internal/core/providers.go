package core

import "context"

// TweetFetcher retrieves tweet content by whatever best-effort method is
// available. Normal failure modes (network errors, parse failures) are
// downgraded to an emptier result, never raised.
type TweetFetcher interface {
	Fetch(ctx context.Context, username, tweetID string) TweetContent
}

// MediaDownloader pulls a remote media URL down to a local file.
type MediaDownloader interface {
	Download(ctx context.Context, url string) (string, error)
}

// ChannelResolver turns a human-readable channel identifier (@name) into
// the numeric chat id the transport needs for posting.
type ChannelResolver interface {
	ResolveChannel(ctx context.Context, identifier string) (int64, error)
}

// Poster publishes a consolidated post into a chat, optionally threaded
// under target.ReplyTo, and returns the sent message normalized for
// archival. Media paths are local files; an empty slice means text only.
type Poster interface {
	Post(ctx context.Context, target Target, text string, mediaPaths []string) (MessageRecord, error)
}
