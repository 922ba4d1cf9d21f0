package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Guyuepp/blog-threads/domain"
	"github.com/Guyuepp/blog-threads/internal/repository/mysql/model"
)

type txKey struct{}

type transactor struct {
	DB *gorm.DB
}

var _ domain.Transactor = (*transactor)(nil)

// NewTransactor returns a Transactor backed by gorm transactions.
func NewTransactor(db *gorm.DB) *transactor {
	return &transactor{DB: db}
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or db itself.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.BlogPost{},
		&model.BlogTag{},
		&model.Comment{},
		&model.Reply{},
		&model.Like{},
	)
}
