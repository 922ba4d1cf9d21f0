package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Guyuepp/blog-threads/domain"
	"github.com/Guyuepp/blog-threads/internal/repository/mysql/model"
)

type replyRepository struct {
	DB *gorm.DB
}

var _ domain.ReplyRepository = (*replyRepository)(nil)

func NewReplyRepository(db *gorm.DB) *replyRepository {
	return &replyRepository{
		DB: db,
	}
}

func (r *replyRepository) GetByID(ctx context.Context, id string) (domain.Reply, error) {
	var reply model.Reply
	err := conn(ctx, r.DB).First(&reply, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Reply{}, domain.NotFound(domain.EntityReply, id)
	}
	if err != nil {
		return domain.Reply{}, err
	}
	return reply.ToDomain(), nil
}

func (r *replyRepository) FetchByParents(ctx context.Context, parentIDs []string) ([]domain.Reply, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var replies []model.Reply
	err := conn(ctx, r.DB).
		Where("parent_content_id IN ?", parentIDs).
		Find(&replies).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Reply, len(replies))
	for i := range replies {
		res[i] = replies[i].ToDomain()
	}
	return res, nil
}

func (r *replyRepository) Store(ctx context.Context, reply *domain.Reply) error {
	return conn(ctx, r.DB).Create(model.NewReplyFromDomain(reply)).Error
}

func (r *replyRepository) UpdateText(ctx context.Context, id string, text string) error {
	result := conn(ctx, r.DB).Model(&model.Reply{}).Where("id = ?", id).Update("text", text)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound(domain.EntityReply, id)
	}
	return nil
}

func (r *replyRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := conn(ctx, r.DB).Where("id IN ?", ids).Delete(&model.Reply{})
	return result.RowsAffected, result.Error
}
