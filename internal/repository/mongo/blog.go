package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Guyuepp/blog-threads/domain"
)

type blogRepository struct {
	coll *mongo.Collection
}

var _ domain.BlogRepository = (*blogRepository)(nil)

func NewBlogRepository(db *mongo.Database) *blogRepository {
	return &blogRepository{coll: db.Collection(CollectionBlogs)}
}

func (r *blogRepository) Fetch(ctx context.Context, skip, limit int64) ([]domain.BlogPost, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "postedAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	return r.find(ctx, bson.D{}, opts)
}

func (r *blogRepository) GetByID(ctx context.Context, id string) (domain.BlogPost, error) {
	var doc blogDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.BlogPost{}, domain.NotFound(domain.EntityBlog, id)
	}
	if err != nil {
		return domain.BlogPost{}, err
	}
	return doc.toDomain(), nil
}

func (r *blogRepository) FetchByTags(ctx context.Context, tags []string) ([]domain.BlogPost, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	filter := bson.D{{Key: "tags", Value: bson.D{{Key: "$in", Value: tags}}}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "postedAt", Value: -1}}))
}

func (r *blogRepository) Store(ctx context.Context, b *domain.BlogPost) error {
	_, err := r.coll.InsertOne(ctx, newBlogDocument(b))
	return err
}

func (r *blogRepository) Update(ctx context.Context, id string, patch domain.BlogPatch, updatedAt time.Time) error {
	set := bson.D{{Key: "updated_at", Value: updatedAt}}
	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *patch.Title})
	}
	if patch.Content != nil {
		set = append(set, bson.E{Key: "content", Value: *patch.Content})
	}
	if patch.Tags != nil {
		set = append(set, bson.E{Key: "tags", Value: domain.NormalizeTags(patch.Tags)})
	}
	if patch.CommentsEnabled != nil {
		set = append(set, bson.E{Key: "comments_enabled", Value: *patch.CommentsEnabled})
	}
	if patch.Image != nil {
		set = append(set, bson.E{Key: "post_image", Value: *patch.Image})
	}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NotFound(domain.EntityBlog, id)
	}
	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFound(domain.EntityBlog, id)
	}
	return nil
}

func (r *blogRepository) AddViews(ctx context.Context, id string, deltaViews int64) error {
	return r.inc(ctx, id, "number_of_views", deltaViews)
}

func (r *blogRepository) IncrLikes(ctx context.Context, id string) error {
	return r.inc(ctx, id, "like_count", 1)
}

// DecrLikes runs as an update pipeline so the floor is applied by the server.
func (r *blogRepository) DecrLikes(ctx context.Context, id string) error {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "like_count", Value: bson.D{{Key: "$max", Value: bson.A{
			bson.D{{Key: "$subtract", Value: bson.A{"$like_count", 1}}},
			0,
		}}}}}}},
	}
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, pipeline)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NotFound(domain.EntityBlog, id)
	}
	return nil
}

func (r *blogRepository) CompareAndSwapLikes(ctx context.Context, id string, old, likes int64) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "like_count", Value: old}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "like_count", Value: likes}}}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *blogRepository) FetchIDs(ctx context.Context, cursor string, limit int64) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "_id", Value: 1}}).
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$gt", Value: cursor}}}}, opts)
	if err != nil {
		return nil, err
	}
	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]string, len(docs))
	for i := range docs {
		ids[i] = docs[i].ID
	}
	return ids, nil
}

func (r *blogRepository) inc(ctx context.Context, id, field string, delta int64) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: field, Value: delta}}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NotFound(domain.EntityBlog, id)
	}
	return nil
}

func (r *blogRepository) find(ctx context.Context, filter any, opts *options.FindOptions) ([]domain.BlogPost, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []blogDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	res := make([]domain.BlogPost, len(docs))
	for i := range docs {
		res[i] = docs[i].toDomain()
	}
	return res, nil
}
