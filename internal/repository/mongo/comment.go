package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Guyuepp/blog-threads/domain"
)

type commentRepository struct {
	coll *mongo.Collection
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *mongo.Database) *commentRepository {
	return &commentRepository{coll: db.Collection(CollectionComments)}
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (domain.Comment, error) {
	var doc commentDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Comment{}, domain.NotFound(domain.EntityComment, id)
	}
	if err != nil {
		return domain.Comment{}, err
	}
	return doc.toDomain(), nil
}

func (r *commentRepository) FetchByBlog(ctx context.Context, blogID string) ([]domain.Comment, error) {
	cur, err := r.coll.Find(ctx, bson.D{{Key: "blogPost_id", Value: blogID}})
	if err != nil {
		return nil, err
	}
	var docs []commentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	res := make([]domain.Comment, len(docs))
	for i := range docs {
		res[i] = docs[i].toDomain()
	}
	return res, nil
}

func (r *commentRepository) Store(ctx context.Context, c *domain.Comment) error {
	_, err := r.coll.InsertOne(ctx, newCommentDocument(c))
	return err
}

func (r *commentRepository) UpdateText(ctx context.Context, id string, text string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "text", Value: text}}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NotFound(domain.EntityComment, id)
	}
	return nil
}

func (r *commentRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	return deleteByIDs(ctx, r.coll, ids)
}

func deleteByIDs(ctx context.Context, coll *mongo.Collection, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := coll.DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
