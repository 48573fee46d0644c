package core

const (
	BotName       = "AnswerBot"
	BotUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/97.0.4692.99 Safari/537.36"
	RepositoryURL = "https://github.com/Hawkhub/tg-tw-answering-bot"
	Version       = "0.1.0"
)

// Chat identifies the channel or chat a message lives in. Needed to know
// where a reply should be sent.
type Chat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Username string `json:"username,omitempty"`
}

// Sender is the author of a message. Absent for genuine channel posts.
type Sender struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Entity is a link/mention annotation carried through the archive verbatim.
// The core preserves but never interprets these.
type Entity struct {
	Type   string `json:"type"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	URL    string `json:"url,omitempty"`
}

// MessageRecord is the unit of archive storage: a lossy projection of a
// transport message keeping only what search and reply threading need.
// Records are immutable once written; only store membership changes.
type MessageRecord struct {
	MessageID int64    `json:"message_id"`
	Text      string   `json:"text,omitempty"`
	Caption   string   `json:"caption,omitempty"`
	Date      int64    `json:"date"`
	From      *Sender  `json:"from,omitempty"`
	Chat      *Chat    `json:"chat,omitempty"`
	Entities  []Entity `json:"entities,omitempty"`

	// StoredAt is set at insert time, never taken from the source message.
	// Audit only; ordering and eviction use Date.
	StoredAt string `json:"_stored_at,omitempty"`
}

// ExportedMessage is a message block extracted from a static channel export
// page. Synthesized per query, never persisted.
type ExportedMessage struct {
	MessageID    string   `json:"message_id"`
	Text         string   `json:"text"`
	Date         string   `json:"date,omitempty"`
	From         string   `json:"from,omitempty"`
	FilePath     string   `json:"file_path"`
	TwitterLinks []string `json:"twitter_links,omitempty"`
}

// TweetContent is the best-effort result of scraping a tweet. All fields
// except Source may be empty when every fetch tier fails.
type TweetContent struct {
	Text      string
	MediaURLs []string
	Source    string
}

// Target is where a consolidated post should go: the chat to post into and
// the message to thread under. ReplyTo == 0 means post as a new message.
type Target struct {
	ChatID  int64
	ReplyTo int64
}
