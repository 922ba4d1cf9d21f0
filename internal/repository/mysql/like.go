package mysql

import (
	"context"
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/Guyuepp/blog-threads/domain"
	"github.com/Guyuepp/blog-threads/internal/repository/mysql/model"
)

// mysqlDupEntry is ER_DUP_ENTRY, raised by the (blog_id, user_id) unique index.
const mysqlDupEntry = 1062

type likeRepository struct {
	DB *gorm.DB
}

var _ domain.LikeRepository = (*likeRepository)(nil)

func NewLikeRepository(db *gorm.DB) *likeRepository {
	return &likeRepository{
		DB: db,
	}
}

func (l *likeRepository) Exists(ctx context.Context, blogID, userID string) (bool, error) {
	var n int64
	err := conn(ctx, l.DB).Model(&model.Like{}).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Count(&n).Error
	return n > 0, err
}

func (l *likeRepository) Store(ctx context.Context, like *domain.Like) error {
	err := conn(ctx, l.DB).Create(model.NewLikeFromDomain(like)).Error
	if isDuplicateEntry(err) {
		return domain.ErrConflict
	}
	return err
}

func (l *likeRepository) Delete(ctx context.Context, blogID, userID string) (bool, error) {
	result := conn(ctx, l.DB).
		Where("blog_id = ? AND user_id = ?", blogID, userID).
		Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (l *likeRepository) CountByBlog(ctx context.Context, blogID string) (int64, error) {
	var n int64
	err := conn(ctx, l.DB).Model(&model.Like{}).Where("blog_id = ?", blogID).Count(&n).Error
	return n, err
}

func (l *likeRepository) DeleteByBlog(ctx context.Context, blogID string) (int64, error) {
	result := conn(ctx, l.DB).Where("blog_id = ?", blogID).Delete(&model.Like{})
	return result.RowsAffected, result.Error
}

func isDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqldriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDupEntry
}
