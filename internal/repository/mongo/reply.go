package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Guyuepp/blog-threads/domain"
)

type replyRepository struct {
	coll *mongo.Collection
}

var _ domain.ReplyRepository = (*replyRepository)(nil)

func NewReplyRepository(db *mongo.Database) *replyRepository {
	return &replyRepository{coll: db.Collection(CollectionReplies)}
}

func (r *replyRepository) GetByID(ctx context.Context, id string) (domain.Reply, error) {
	var doc replyDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Reply{}, domain.NotFound(domain.EntityReply, id)
	}
	if err != nil {
		return domain.Reply{}, err
	}
	return doc.toDomain(), nil
}

func (r *replyRepository) FetchByParents(ctx context.Context, parentIDs []string) ([]domain.Reply, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	cur, err := r.coll.Find(ctx, bson.D{{Key: "parentContent_id", Value: bson.D{{Key: "$in", Value: parentIDs}}}})
	if err != nil {
		return nil, err
	}
	var docs []replyDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	res := make([]domain.Reply, len(docs))
	for i := range docs {
		res[i] = docs[i].toDomain()
	}
	return res, nil
}

func (r *replyRepository) Store(ctx context.Context, reply *domain.Reply) error {
	_, err := r.coll.InsertOne(ctx, newReplyDocument(reply))
	return err
}

func (r *replyRepository) UpdateText(ctx context.Context, id string, text string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "text", Value: text}}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NotFound(domain.EntityReply, id)
	}
	return nil
}

func (r *replyRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	return deleteByIDs(ctx, r.coll, ids)
}
