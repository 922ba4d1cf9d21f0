package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Guyuepp/blog-threads/domain"
	"github.com/Guyuepp/blog-threads/internal/repository/mysql/model"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

func (c *commentRepository) GetByID(ctx context.Context, id string) (domain.Comment, error) {
	var comment model.Comment
	err := conn(ctx, c.DB).First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Comment{}, domain.NotFound(domain.EntityComment, id)
	}
	if err != nil {
		return domain.Comment{}, err
	}
	return comment.ToDomain(), nil
}

func (c *commentRepository) FetchByBlog(ctx context.Context, blogID string) ([]domain.Comment, error) {
	var comments []model.Comment
	err := conn(ctx, c.DB).
		Where("blog_id = ?", blogID).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Comment, len(comments))
	for i := range comments {
		res[i] = comments[i].ToDomain()
	}
	return res, nil
}

func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	return conn(ctx, c.DB).Create(model.NewCommentFromDomain(comment)).Error
}

func (c *commentRepository) UpdateText(ctx context.Context, id string, text string) error {
	result := conn(ctx, c.DB).Model(&model.Comment{}).Where("id = ?", id).Update("text", text)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound(domain.EntityComment, id)
	}
	return nil
}

func (c *commentRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := conn(ctx, c.DB).Where("id IN ?", ids).Delete(&model.Comment{})
	return result.RowsAffected, result.Error
}
