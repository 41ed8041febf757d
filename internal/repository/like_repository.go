package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/pkg/errs"
)

type LikeRepository interface {
	// Toggle 原子地切换 (user, post) 的点赞状态并返回最新点赞数
	Toggle(ctx context.Context, userID, postID string) (*model.LikeResult, error)
	Count(ctx context.Context, postID string) (int64, error)
	// CountByPosts 批量统计点赞数，没有点赞的博文不出现在结果中
	CountByPosts(ctx context.Context, postIDs []string) (map[string]int64, error)
	// LikedBy 返回 postIDs 中被 userID 点赞过的集合
	LikedBy(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)
}

type likeRepository struct{ db *gorm.DB }

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

func (r *likeRepository) Toggle(ctx context.Context, userID, postID string) (*model.LikeResult, error) {
	var res model.LikeResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先删：删到了说明之前已点赞
		del := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.Like{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected == 0 {
			l := &model.Like{ID: newID(), UserID: userID, PostID: postID}
			// 幂等：并发切换时唯一索引保证至多一条
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(l).Error; err != nil {
				// 博文在检查之后被删除
				if errors.Is(err, gorm.ErrForeignKeyViolated) {
					return errs.NotFound("post")
				}
				return err
			}
			res.Liked = true
		}
		return tx.Model(&model.Like{}).Where("post_id = ?", postID).Count(&res.Likes).Error
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *likeRepository) Count(ctx context.Context, postID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).Where("post_id = ?", postID).Count(&cnt).Error
	return cnt, err
}

func (r *likeRepository) CountByPosts(ctx context.Context, postIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	type row struct {
		PostID string
		Cnt    int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Select("post_id, COUNT(*) AS cnt").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, rw := range rows {
		out[rw.PostID] = rw.Cnt
	}
	return out, nil
}

func (r *likeRepository) LikedBy(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	out := make(map[string]bool, len(postIDs))
	if userID == "" || len(postIDs) == 0 {
		return out, nil
	}
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
