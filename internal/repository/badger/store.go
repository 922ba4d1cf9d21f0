package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-threads/domain"
)

const (
	// Key prefixes for different entity types
	BlogKeyPrefix    = "blog:"
	CommentKeyPrefix = "comment:"
	ReplyKeyPrefix   = "reply:"
	LikeKeyPrefix    = "like:"

	// Index prefixes, the value is empty
	TagIndexPrefix         = "idx:tag:"
	BlogCommentIndexPrefix = "idx:blogcomment:"
	ChildIndexPrefix       = "idx:child:"
	PostedIndexPrefix      = "idx:posted:"

	// conflict backoff bounds, the wait doubles per attempt with full jitter
	minConflictBackoff = 50 * time.Microsecond
	maxConflictBackoff = 5 * time.Millisecond
)

// Open opens the database under dir, or an in-memory one when dir is empty.
func Open(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	return badger.Open(opts.WithLogger(logrus.StandardLogger()))
}

type txKey struct{}

// store is embedded by every repository of this package.
type store struct {
	db *badger.DB
}

// update runs fn in a read-write transaction, joining the one in ctx if
// any. A commit conflict reruns fn against a fresh snapshot until it commits
// or ctx is done.
func (s store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if txn, ok := ctx.Value(txKey{}).(*badger.Txn); ok {
		return fn(txn)
	}
	for attempt := 1; ; attempt++ {
		err := s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		if err := waitConflictBackoff(ctx, attempt); err != nil {
			return fmt.Errorf("gave up after %d conflicting commits: %w", attempt, errors.Join(err, badger.ErrConflict))
		}
	}
}

func waitConflictBackoff(ctx context.Context, attempt int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ceil := maxConflictBackoff
	if attempt < 8 {
		ceil = min(minConflictBackoff<<attempt, maxConflictBackoff)
	}
	t := time.NewTimer(rand.N(ceil) + 1)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s store) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if txn, ok := ctx.Value(txKey{}).(*badger.Txn); ok {
		return fn(txn)
	}
	return s.db.View(fn)
}

type transactor struct {
	db *badger.DB
}

var _ domain.Transactor = (*transactor)(nil)

func NewTransactor(db *badger.DB) *transactor {
	return &transactor{db: db}
}

// WithinTransaction runs fn in one read-write transaction, joining the
// caller's transaction if there is one. On a commit conflict fn runs again
// against a fresh snapshot.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*badger.Txn); ok {
		return fn(ctx)
	}
	return store{t.db}.update(ctx, func(txn *badger.Txn) error {
		return fn(context.WithValue(ctx, txKey{}, txn))
	})
}

// key joins a prefix and id parts. The prefix carries its own separator.
func key(parts ...string) []byte {
	var b []byte
	for i, p := range parts {
		if i > 1 {
			b = append(b, ':')
		}
		b = append(b, p...)
	}
	return b
}

// getEntity loads and unmarshals the value at k. It returns badger.ErrKeyNotFound as is.
func getEntity(txn *badger.Txn, k []byte, entity any) error {
	item, err := txn.Get(k)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, entity)
	})
}

func setEntity(txn *badger.Txn, k []byte, entity any) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %v", err)
	}
	return txn.Set(k, data)
}

func unmarshalEntity(data []byte, entity any) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}

// scanKeys returns the key suffixes after prefix, in key order.
func scanKeys(txn *badger.Txn, prefix []byte) []string {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	var res []string
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		res = append(res, string(it.Item().Key()[len(prefix):]))
	}
	return res
}

// scanEntities unmarshals every value under prefix through fn.
func scanEntities(txn *badger.Txn, prefix []byte, fn func(val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}
