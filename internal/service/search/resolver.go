package search

import (
	"context"

	"github.com/Hawkhub/tg-tw-answering-bot/internal/core"
	"github.com/Hawkhub/tg-tw-answering-bot/pkg/log"
)

// Source tells where a resolved match came from.
type Source string

const (
	SourceLive    Source = "live"
	SourceHistory Source = "history"
	SourceNone    Source = "none"
)

// Result is the outcome of resolving a query against channel history.
// Exactly one of Live/History is populated, according to Source.
type Result struct {
	Source  Source
	Live    *core.MessageRecord
	History []core.ExportedMessage
}

// Resolver finds the best available prior mention of a query, preferring
// the live archive over exported history. Live data is fresher and its
// record directly carries the chat and message id needed to reply; history
// data needs a secondary channel lookup.
type Resolver struct {
	archive core.Archive
	history core.HistoryIndex
}

func NewResolver(archive core.Archive, history core.HistoryIndex) *Resolver {
	return &Resolver{archive: archive, history: history}
}

// Resolve returns the single most recent live match, else the full ordered
// set of exported-history matches, else a none result.
func (r *Resolver) Resolve(ctx context.Context, query string) Result {
	logger := log.FromCtx(ctx)

	if live := r.archive.Search(ctx, query); len(live) > 0 {
		// Pick a maximal-date record. When several share the maximum the
		// last one encountered wins; which one is intentionally
		// unspecified.
		best := live[0]
		for _, rec := range live[1:] {
			if rec.Date >= best.Date {
				best = rec
			}
		}
		logger.Debug().Str("query", query).Int64("message_id", best.MessageID).
			Msg("resolved query from live archive")
		return Result{Source: SourceLive, Live: &best}
	}

	if exported := r.history.Search(ctx, query); len(exported) > 0 {
		logger.Debug().Str("query", query).Int("count", len(exported)).
			Msg("resolved query from exported history")
		return Result{Source: SourceHistory, History: exported}
	}

	logger.Debug().Str("query", query).Msg("query resolved to nothing")
	return Result{Source: SourceNone}
}
