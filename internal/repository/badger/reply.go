package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/Guyuepp/blog-threads/domain"
)

type replyRepository struct {
	store
}

var _ domain.ReplyRepository = (*replyRepository)(nil)

func NewReplyRepository(db *badger.DB) *replyRepository {
	return &replyRepository{store{db}}
}

func (r *replyRepository) GetByID(ctx context.Context, id string) (domain.Reply, error) {
	var rec replyRecord
	err := r.view(ctx, func(txn *badger.Txn) error {
		return getEntity(txn, key(ReplyKeyPrefix, id), &rec)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Reply{}, domain.NotFound(domain.EntityReply, id)
	}
	if err != nil {
		return domain.Reply{}, err
	}
	return rec.toDomain(), nil
}

func (r *replyRepository) FetchByParents(ctx context.Context, parentIDs []string) ([]domain.Reply, error) {
	var res []domain.Reply
	err := r.view(ctx, func(txn *badger.Txn) error {
		for _, pid := range parentIDs {
			for _, id := range scanKeys(txn, key(ChildIndexPrefix, pid, "")) {
				var rec replyRecord
				if err := getEntity(txn, key(ReplyKeyPrefix, id), &rec); err != nil {
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
	return res, err
}

func (r *replyRepository) Store(ctx context.Context, reply *domain.Reply) error {
	rec := replyRecord{
		ID:         reply.ID,
		UserID:     reply.UserID,
		ParentKind: reply.Parent.Kind.String(),
		ParentID:   reply.Parent.ID,
		Text:       reply.Text,
		RepliedAt:  reply.RepliedAt,
	}
	return r.update(ctx, func(txn *badger.Txn) error {
		if err := setEntity(txn, key(ReplyKeyPrefix, rec.ID), rec); err != nil {
			return err
		}
		return txn.Set(key(ChildIndexPrefix, rec.ParentID, rec.ID), nil)
	})
}

func (r *replyRepository) UpdateText(ctx context.Context, id string, text string) error {
	return r.update(ctx, func(txn *badger.Txn) error {
		var rec replyRecord
		if err := getEntity(txn, key(ReplyKeyPrefix, id), &rec); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.NotFound(domain.EntityReply, id)
			}
			return err
		}
		rec.Text = text
		return setEntity(txn, key(ReplyKeyPrefix, id), rec)
	})
}

func (r *replyRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	var n int64
	err := r.update(ctx, func(txn *badger.Txn) error {
		n = 0
		for _, id := range ids {
			var rec replyRecord
			if err := getEntity(txn, key(ReplyKeyPrefix, id), &rec); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			if err := txn.Delete(key(ChildIndexPrefix, rec.ParentID, id)); err != nil {
				return err
			}
			if err := txn.Delete(key(ReplyKeyPrefix, id)); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}
