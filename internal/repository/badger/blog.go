package badger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Guyuepp/blog-threads/domain"
)

// postedStampLen is the hex width of the stamp in a posted index key.
const postedStampLen = 16

type blogRepository struct {
	store
}

var _ domain.BlogRepository = (*blogRepository)(nil)

func NewBlogRepository(db *badger.DB) *blogRepository {
	return &blogRepository{store{db}}
}

// Fetch orders by posted time, newest first, walking the posted index so
// only the requested page is loaded.
func (r *blogRepository) Fetch(ctx context.Context, skip, limit int64) ([]domain.BlogPost, error) {
	res := []domain.BlogPost{}
	err := r.view(ctx, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		prefix := []byte(PostedIndexPrefix)
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		var ids []string
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if skip > 0 {
				skip--
				continue
			}
			ids = append(ids, string(it.Item().Key()[len(prefix)+postedStampLen+1:]))
			if limit > 0 && int64(len(ids)) >= limit {
				break
			}
		}

		for _, id := range ids {
			var rec blogRecord
			if err := getEntity(txn, key(BlogKeyPrefix, id), &rec); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			res = append(res, rec.toDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *blogRepository) GetByID(ctx context.Context, id string) (domain.BlogPost, error) {
	var rec blogRecord
	err := r.view(ctx, func(txn *badger.Txn) error {
		return getEntity(txn, key(BlogKeyPrefix, id), &rec)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.BlogPost{}, domain.NotFound(domain.EntityBlog, id)
	}
	if err != nil {
		return domain.BlogPost{}, err
	}
	return rec.toDomain(), nil
}

func (r *blogRepository) FetchByTags(ctx context.Context, tags []string) ([]domain.BlogPost, error) {
	var res []domain.BlogPost
	err := r.view(ctx, func(txn *badger.Txn) error {
		seen := make(map[string]struct{})
		for _, tag := range domain.NormalizeTags(tags) {
			for _, id := range scanKeys(txn, key(TagIndexPrefix, tag, "")) {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}

				var rec blogRecord
				if err := getEntity(txn, key(BlogKeyPrefix, id), &rec); err != nil {
					if errors.Is(err, badger.ErrKeyNotFound) {
						continue
					}
					return err
				}
				res = append(res, rec.toDomain())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].PostedAt.After(res[j].PostedAt) })
	return res, nil
}

func (r *blogRepository) Store(ctx context.Context, b *domain.BlogPost) error {
	rec := newBlogRecord(b)
	return r.update(ctx, func(txn *badger.Txn) error {
		if _, err := txn.Get(key(BlogKeyPrefix, rec.ID)); err == nil {
			return domain.ErrConflict
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := setEntity(txn, key(BlogKeyPrefix, rec.ID), rec); err != nil {
			return err
		}
		if err := txn.Set(postedKey(rec.PostedAt, rec.ID), nil); err != nil {
			return err
		}
		return setTags(txn, rec.ID, nil, rec.Tags)
	})
}

func (r *blogRepository) Update(ctx context.Context, id string, patch domain.BlogPatch, updatedAt time.Time) error {
	return r.modify(ctx, id, func(rec *blogRecord, txn *badger.Txn) error {
		b := rec.toDomain()
		patch.Apply(&b)
		if patch.Tags != nil {
			if err := setTags(txn, id, rec.Tags, b.Tags); err != nil {
				return err
			}
		}
		*rec = newBlogRecord(&b)
		rec.UpdatedAt = updatedAt
		return nil
	})
}

func (r *blogRepository) Delete(ctx context.Context, id string) error {
	return r.update(ctx, func(txn *badger.Txn) error {
		var rec blogRecord
		if err := getEntity(txn, key(BlogKeyPrefix, id), &rec); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.NotFound(domain.EntityBlog, id)
			}
			return err
		}
		if err := setTags(txn, id, rec.Tags, nil); err != nil {
			return err
		}
		if err := txn.Delete(postedKey(rec.PostedAt, id)); err != nil {
			return err
		}
		return txn.Delete(key(BlogKeyPrefix, id))
	})
}

func (r *blogRepository) AddViews(ctx context.Context, id string, deltaViews int64) error {
	return r.modify(ctx, id, func(rec *blogRecord, _ *badger.Txn) error {
		rec.Views += deltaViews
		return nil
	})
}

func (r *blogRepository) IncrLikes(ctx context.Context, id string) error {
	return r.modify(ctx, id, func(rec *blogRecord, _ *badger.Txn) error {
		rec.Likes++
		return nil
	})
}

func (r *blogRepository) DecrLikes(ctx context.Context, id string) error {
	return r.modify(ctx, id, func(rec *blogRecord, _ *badger.Txn) error {
		rec.Likes = max(rec.Likes-1, 0)
		return nil
	})
}

func (r *blogRepository) CompareAndSwapLikes(ctx context.Context, id string, old, likes int64) (bool, error) {
	var swapped bool
	err := r.update(ctx, func(txn *badger.Txn) error {
		swapped = false
		var rec blogRecord
		if err := getEntity(txn, key(BlogKeyPrefix, id), &rec); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		if rec.Likes != old {
			return nil
		}
		rec.Likes = likes
		swapped = true
		return setEntity(txn, key(BlogKeyPrefix, id), rec)
	})
	return swapped, err
}

func (r *blogRepository) FetchIDs(ctx context.Context, cursor string, limit int64) ([]string, error) {
	var ids []string
	err := r.view(ctx, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(BlogKeyPrefix)
		for it.Seek(key(BlogKeyPrefix, cursor)); it.ValidForPrefix(prefix); it.Next() {
			id := string(it.Item().Key()[len(prefix):])
			if id == cursor {
				continue
			}
			ids = append(ids, id)
			if limit > 0 && int64(len(ids)) >= limit {
				break
			}
		}
		return nil
	})
	return ids, err
}

// modify is a read-modify-write of one blog record inside a transaction.
// Concurrent writers conflict and are retried, so counters never lose updates.
func (r *blogRepository) modify(ctx context.Context, id string, fn func(rec *blogRecord, txn *badger.Txn) error) error {
	return r.update(ctx, func(txn *badger.Txn) error {
		var rec blogRecord
		if err := getEntity(txn, key(BlogKeyPrefix, id), &rec); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.NotFound(domain.EntityBlog, id)
			}
			return err
		}
		if err := fn(&rec, txn); err != nil {
			return err
		}
		return setEntity(txn, key(BlogKeyPrefix, id), rec)
	})
}

// postedKey sorts newest first: the signed micro timestamp is mapped onto an
// order-preserving unsigned value and inverted.
func postedKey(postedAt time.Time, id string) []byte {
	desc := ^(uint64(postedAt.UnixMicro()) ^ 1<<63)
	return key(PostedIndexPrefix, fmt.Sprintf("%016x", desc), id)
}

// setTags moves the tag index entries of a blog from old to tags.
func setTags(txn *badger.Txn, blogID string, old, tags []string) error {
	for _, t := range old {
		if err := txn.Delete(key(TagIndexPrefix, t, blogID)); err != nil {
			return err
		}
	}
	for _, t := range tags {
		if err := txn.Set(key(TagIndexPrefix, t, blogID), nil); err != nil {
			return err
		}
	}
	return nil
}
