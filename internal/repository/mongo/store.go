package mongo

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Guyuepp/blog-threads/domain"
)

type transactor struct {
	client  *mongo.Client
	enabled bool
}

var _ domain.Transactor = (*transactor)(nil)

// NewTransactor runs units of work in session transactions when enabled.
// Transactions need a replica set; a standalone server runs fn as is.
func NewTransactor(client *mongo.Client, enabled bool) *transactor {
	return &transactor{client: client, enabled: enabled}
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}
	sess, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// EnsureIndexes creates the lookup indexes and the unique (blog_id, user_id) like index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionBlogs: {
			{Keys: bson.D{{Key: "tags", Value: 1}}},
			{Keys: bson.D{{Key: "postedAt", Value: -1}}},
		},
		CollectionComments: {
			{Keys: bson.D{{Key: "blogPost_id", Value: 1}}},
		},
		CollectionReplies: {
			{Keys: bson.D{{Key: "parentContent_id", Value: 1}}},
		},
		CollectionLikes: {
			{
				Keys:    bson.D{{Key: "blog_id", Value: 1}, {Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_blog_user"),
			},
		},
	}
	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			logrus.Errorf("failed to create indexes on %s: %v", coll, err)
			return err
		}
	}
	return nil
}
