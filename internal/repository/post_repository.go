package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/pkg/errs"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// ListByUser 按发布顺序返回用户的全部博文
	ListByUser(ctx context.Context, userID string) ([]*model.Post, error)
	// Random 随机抽取至多 limit 篇不重复的博文，每次调用重新抽样
	Random(ctx context.Context, limit int) ([]*model.Post, error)
	// Update 覆盖标题与正文，创建时间不变
	Update(ctx context.Context, id, title, content string) (*model.Post, error)
	// Delete 在一个事务内删除博文及其全部评论、点赞
	Delete(ctx context.Context, id string) error
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	if post.ID == "" {
		post.ID = newID()
	}
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("post")
		}
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID string) ([]*model.Post, error) {
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&res).Error
	return res, err
}

func (r *postRepository) Random(ctx context.Context, limit int) ([]*model.Post, error) {
	if limit <= 0 {
		return []*model.Post{}, nil
	}
	var res []*model.Post
	// RANDOM() 在 postgres 与 sqlite 中均可用
	err := r.db.WithContext(ctx).
		Order("RANDOM()").
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *postRepository) Update(ctx context.Context, id, title, content string) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Post{}).
			Where("id = ?", id).
			Updates(map[string]any{"title": title, "content": content})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("post")
		}
		return tx.Where("id = ?", id).First(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("post")
		}
		return nil
	})
}
