package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Guyuepp/blog-threads/domain"
	"github.com/Guyuepp/blog-threads/internal/repository/mysql/model"
)

type blogRepository struct {
	DB *gorm.DB
}

var _ domain.BlogRepository = (*blogRepository)(nil)

// NewBlogRepository will create an implementation of domain.BlogRepository
func NewBlogRepository(db *gorm.DB) *blogRepository {
	return &blogRepository{db}
}

func (m *blogRepository) Fetch(ctx context.Context, skip, limit int64) ([]domain.BlogPost, error) {
	var blogs []model.BlogPost
	err := conn(ctx, m.DB).
		Order("posted_at DESC").
		Offset(int(skip)).
		Limit(int(limit)).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return m.withTags(ctx, blogs)
}

func (m *blogRepository) GetByID(ctx context.Context, id string) (domain.BlogPost, error) {
	var blog model.BlogPost
	err := conn(ctx, m.DB).First(&blog, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.BlogPost{}, domain.NotFound(domain.EntityBlog, id)
	}
	if err != nil {
		return domain.BlogPost{}, err
	}
	res, err := m.withTags(ctx, []model.BlogPost{blog})
	if err != nil {
		return domain.BlogPost{}, err
	}
	return res[0], nil
}

func (m *blogRepository) FetchByTags(ctx context.Context, tags []string) ([]domain.BlogPost, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	db := conn(ctx, m.DB)
	var blogs []model.BlogPost
	err := db.
		Where("id IN (?)", db.Model(&model.BlogTag{}).Select("blog_id").Where("tag IN ?", tags)).
		Order("posted_at DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return m.withTags(ctx, blogs)
}

func (m *blogRepository) Store(ctx context.Context, b *domain.BlogPost) error {
	return conn(ctx, m.DB).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.NewBlogPostFromDomain(b)).Error; err != nil {
			return err
		}
		if len(b.Tags) == 0 {
			return nil
		}
		tags := model.NewBlogTags(b.ID, b.Tags)
		return tx.Create(&tags).Error
	})
}

func (m *blogRepository) Update(ctx context.Context, id string, patch domain.BlogPatch, updatedAt time.Time) error {
	fields := map[string]any{"updated_at": updatedAt}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Content != nil {
		fields["content"] = *patch.Content
	}
	if patch.CommentsEnabled != nil {
		fields["comments_enabled"] = *patch.CommentsEnabled
	}
	if patch.Image != nil {
		fields["image"] = *patch.Image
	}

	return conn(ctx, m.DB).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.BlogPost{}).Where("id = ?", id).UpdateColumns(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.NotFound(domain.EntityBlog, id)
		}
		if patch.Tags == nil {
			return nil
		}
		if err := tx.Where("blog_id = ?", id).Delete(&model.BlogTag{}).Error; err != nil {
			return err
		}
		tags := domain.NormalizeTags(patch.Tags)
		if len(tags) == 0 {
			return nil
		}
		rows := model.NewBlogTags(id, tags)
		return tx.Create(&rows).Error
	})
}

func (m *blogRepository) Delete(ctx context.Context, id string) error {
	db := conn(ctx, m.DB)
	result := db.Delete(&model.BlogPost{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound(domain.EntityBlog, id)
	}
	return db.Where("blog_id = ?", id).Delete(&model.BlogTag{}).Error
}

func (m *blogRepository) AddViews(ctx context.Context, id string, deltaViews int64) error {
	result := conn(ctx, m.DB).Model(&model.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", deltaViews))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound(domain.EntityBlog, id)
	}
	return nil
}

func (m *blogRepository) IncrLikes(ctx context.Context, id string) error {
	result := conn(ctx, m.DB).Model(&model.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound(domain.EntityBlog, id)
	}
	return nil
}

// DecrLikes does not look at RowsAffected: a counter already at zero is left
// unchanged and MySQL reports no affected rows for it.
func (m *blogRepository) DecrLikes(ctx context.Context, id string) error {
	return conn(ctx, m.DB).Model(&model.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("GREATEST(likes - 1, 0)")).Error
}

// CompareAndSwapLikes relies on found rows being reported, so swapping to an
// equal value still counts as swapped.
func (m *blogRepository) CompareAndSwapLikes(ctx context.Context, id string, old, likes int64) (bool, error) {
	result := conn(ctx, m.DB).Model(&model.BlogPost{}).
		Where("id = ? AND likes = ?", id, old).
		UpdateColumn("likes", likes)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (m *blogRepository) FetchIDs(ctx context.Context, cursor string, limit int64) (ids []string, err error) {
	err = conn(ctx, m.DB).
		Model(&model.BlogPost{}).
		Where("id > ?", cursor).
		Order("id").
		Limit(int(limit)).
		Pluck("id", &ids).Error
	return
}

// withTags loads the tag rows of blogs in one query and maps them to domain.
func (m *blogRepository) withTags(ctx context.Context, blogs []model.BlogPost) ([]domain.BlogPost, error) {
	res := make([]domain.BlogPost, len(blogs))
	if len(blogs) == 0 {
		return res, nil
	}
	ids := make([]string, len(blogs))
	for i := range blogs {
		ids[i] = blogs[i].ID
		res[i] = blogs[i].ToDomain()
	}

	var rows []model.BlogTag
	if err := conn(ctx, m.DB).Where("blog_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	tagMap := make(map[string][]string, len(blogs))
	for _, r := range rows {
		tagMap[r.BlogID] = append(tagMap[r.BlogID], r.Tag)
	}
	for i := range res {
		res[i].Tags = tagMap[res[i].ID]
		if res[i].Tags == nil {
			res[i].Tags = []string{}
		}
	}
	return res, nil
}
