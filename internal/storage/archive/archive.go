package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Hawkhub/tg-tw-answering-bot/internal/core"
	"github.com/Hawkhub/tg-tw-answering-bot/pkg/log"
)

// DefaultMaxBytes caps the serialized store at 5 GiB.
const DefaultMaxBytes = 5 * 1024 * 1024 * 1024

// Store is an append-only JSON log of message records with a serialized
// size ceiling. Every mutation is a full read-modify-write of the backing
// file; the design targets archival volumes, not a high-throughput log.
//
// The store provides no cross-process locking. Running multiple instances
// against the same file needs an external mutual-exclusion layer.
type Store struct {
	path     string
	maxBytes int64
	mu       sync.RWMutex
}

func NewStore(path string, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{path: path, maxBytes: maxBytes}
}

func (s *Store) Path() string { return s.path }

// Init creates the backing file as an empty array if it does not exist.
// Safe to call on every process start.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat message store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte("[]"), 0644); err != nil {
		return fmt.Errorf("failed to create message store: %w", err)
	}

	log.FromCtx(ctx).Info().Str("path", s.path).Msg("created message store")
	return nil
}

// Insert appends rec unless a record with the same message id is already
// stored. Duplicate detection is by identifier only; content differences
// are ignored. Any storage fault is logged and the record is dropped —
// losing one archival write is less harmful than crashing ingestion.
func (s *Store) Insert(ctx context.Context, rec core.MessageRecord) {
	logger := log.FromCtx(ctx)

	if rec.MessageID == 0 {
		logger.Debug().Msg("skipping record without message id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		logger.Error().Err(err).Msg("failed to load message store, dropping record")
		return
	}

	for _, existing := range records {
		if existing.MessageID == rec.MessageID {
			return
		}
	}

	rec.StoredAt = time.Now().Format(time.RFC3339)
	records = append(records, rec)

	records, evicted, err := enforceCeiling(records, s.maxBytes)
	if err != nil {
		logger.Error().Err(err).Msg("failed to enforce store ceiling, dropping record")
		return
	}
	if evicted > 0 {
		logger.Warn().Int("evicted", evicted).Int64("ceiling", s.maxBytes).
			Msg("removed oldest messages to maintain size limit")
	}

	if err := s.persist(records); err != nil {
		logger.Error().Err(err).Msg("failed to persist message store, dropping record")
		return
	}

	logger.Debug().Int64("message_id", rec.MessageID).Int("total", len(records)).
		Msg("saved new message")
}

// All returns every stored record. A missing or corrupt file reads as zero
// records; the store self-heals on the next successful write.
func (s *Store) All(ctx context.Context) []core.MessageRecord {
	s.mu.RLock()
	records, err := s.load()
	s.mu.RUnlock()

	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to read message store, treating as empty")
		return nil
	}
	return records
}

// Search returns all records whose text contains query, case-insensitively.
func (s *Store) Search(ctx context.Context, query string) []core.MessageRecord {
	needle := strings.ToLower(query)

	var matches []core.MessageRecord
	for _, rec := range s.All(ctx) {
		if rec.Text != "" && strings.Contains(strings.ToLower(rec.Text), needle) {
			matches = append(matches, rec)
		}
	}
	return matches
}

func (s *Store) load() ([]core.MessageRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read message store: %w", err)
	}

	var records []core.MessageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse message store: %w", err)
	}
	return records, nil
}

// persist commits the record set through a scratch file and rename so the
// store file is never left half-written. The scratch file does not survive
// either outcome.
func (s *Store) persist(records []core.MessageRecord) error {
	data, err := marshal(records)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write scratch file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to commit message store: %w", err)
	}
	return nil
}

// enforceCeiling drops the oldest records until the serialized store fits
// under maxBytes. Records are sorted ascending by date (missing date sorts
// as epoch 0) and the cut point is the smallest prefix length whose
// remaining suffix serializes within the ceiling, located by binary search.
// Truncating more of the prefix never grows the serialization, so the
// predicate is monotonic. The newest record is always retained, even when
// it alone exceeds the ceiling.
func enforceCeiling(records []core.MessageRecord, maxBytes int64) ([]core.MessageRecord, int, error) {
	size, err := serializedSize(records)
	if err != nil {
		return nil, 0, err
	}
	if size <= maxBytes {
		return records, 0, nil
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})

	start, end := 0, len(records)-1
	for start < end {
		mid := (start + end) / 2
		size, err := serializedSize(records[mid:])
		if err != nil {
			return nil, 0, err
		}
		if size <= maxBytes {
			end = mid
		} else {
			start = mid + 1
		}
	}

	return records[start:], start, nil
}

func serializedSize(records []core.MessageRecord) (int64, error) {
	data, err := marshal(records)
	if err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

func marshal(records []core.MessageRecord) ([]byte, error) {
	if records == nil {
		records = []core.MessageRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message store: %w", err)
	}
	return data, nil
}
