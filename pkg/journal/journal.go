// Package journal persists completed search results to an embedded key-value store, keyed by
// position and depth, so repeated analysis of the same position across process restarts can
// be inspected later. Grounded on badger/v4 usage in
// _examples/hailam-chessplay/internal/storage/storage.go, adapted from that repo's
// preferences/stats blobs to a single append-style record per (zobrist, depth).
package journal

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/seekerror/logw"

	"github.com/riftchess/rift/pkg/board"
	"github.com/riftchess/rift/pkg/eval"
)

// Entry is one persisted search result.
type Entry struct {
	Score eval.Score   `json:"score"`
	Depth int          `json:"depth"`
	Moves []board.Move `json:"moves"`
}

// Store wraps a Badger database for analysis persistence. A nil *Store (never constructed)
// is never dereferenced: callers guard every use behind an explicit opt-in, matching
// SPEC_FULL.md's "disabled journal has zero runtime cost" requirement.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) a journal database at dir.
func Open(ctx context.Context, dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open journal at %v: %w", dir, err)
	}

	logw.Infof(ctx, "Journal opened at %v", dir)
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Store records the result of a completed search for (zobrist, depth).
func (s *Store) Store(ctx context.Context, zob board.ZobristHash, depth int, score eval.Score, moves []board.Move) error {
	data, err := json.Marshal(Entry{Score: score, Depth: depth, Moves: moves})
	if err != nil {
		return err
	}

	key := entryKey(zob, depth)
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	logw.Debugf(ctx, "Journal: stored %v@%v = %v", zob, depth, score)
	return nil
}

// Lookup returns a previously stored entry for (zobrist, depth), if any.
func (s *Store) Lookup(ctx context.Context, zob board.ZobristHash, depth int) (Entry, bool, error) {
	var entry Entry
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entryKey(zob, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	return entry, found, err
}

func entryKey(zob board.ZobristHash, depth int) []byte {
	key := make([]byte, 12)
	binary.BigEndian.PutUint64(key[0:8], uint64(zob))
	binary.BigEndian.PutUint32(key[8:12], uint32(depth))
	return key
}
