package core

import "context"

// Archive is the durable, size-bounded, duplicate-safe log of channel
// message records.
type Archive interface {
	// Insert appends a record unless one with the same message id already
	// exists. It never fails the caller: storage faults degrade to a
	// logged no-op.
	Insert(ctx context.Context, rec MessageRecord)
	// All returns the full current record set. Corrupt or missing backing
	// state reads as zero records.
	All(ctx context.Context) []MessageRecord
	// Search returns every record whose text contains the query,
	// case-insensitively.
	Search(ctx context.Context, query string) []MessageRecord
}

// HistoryIndex searches the static exported pages that predate the live
// archive. A missing export tree is a normal condition, not a fault.
type HistoryIndex interface {
	Search(ctx context.Context, query string) []ExportedMessage
}
