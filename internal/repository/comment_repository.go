package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/pkg/errs"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	// ListByPost 按时间正序返回博文下的全部评论（含回复）
	ListByPost(ctx context.Context, postID string) ([]*model.Comment, error)
	// Delete 删除评论及其全部后代回复，返回删除条数
	Delete(ctx context.Context, id string) (int64, error)
}

type commentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if comment.ID == "" {
		comment.ID = newID()
	}
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("comment")
		}
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	var res []*model.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&res).Error
	return res, err
}

func (r *commentRepository) Delete(ctx context.Context, id string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var root model.Comment
		if err := tx.Where("id = ?", id).First(&root).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("comment")
			}
			return err
		}
		// 回复只会挂在同一博文下，取整棵树后在内存中收集后代
		var siblings []*model.Comment
		if err := tx.Select("id", "parent_id").Where("post_id = ?", root.PostID).Find(&siblings).Error; err != nil {
			return err
		}
		ids := Descendants(siblings, root.ID)
		res := tx.Where("id IN ?", append(ids, root.ID)).Delete(&model.Comment{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}
