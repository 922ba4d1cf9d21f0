package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Guyuepp/blog-threads/domain"
)

type likeRepository struct {
	coll *mongo.Collection
}

var _ domain.LikeRepository = (*likeRepository)(nil)

func NewLikeRepository(db *mongo.Database) *likeRepository {
	return &likeRepository{coll: db.Collection(CollectionLikes)}
}

func (r *likeRepository) Exists(ctx context.Context, blogID, userID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, pairFilter(blogID, userID), options.Count().SetLimit(1))
	return n > 0, err
}

func (r *likeRepository) Store(ctx context.Context, l *domain.Like) error {
	_, err := r.coll.InsertOne(ctx, likeDocument{
		ID:      l.ID,
		BlogID:  l.BlogID,
		UserID:  l.UserID,
		LikedAt: l.LikedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *likeRepository) Delete(ctx context.Context, blogID, userID string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, pairFilter(blogID, userID))
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *likeRepository) CountByBlog(ctx context.Context, blogID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{{Key: "blog_id", Value: blogID}})
}

func (r *likeRepository) DeleteByBlog(ctx context.Context, blogID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "blog_id", Value: blogID}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func pairFilter(blogID, userID string) bson.D {
	return bson.D{{Key: "blog_id", Value: blogID}, {Key: "user_id", Value: userID}}
}
