package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/d60-Lab/blog-service/internal/auth"
	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/internal/repository"
	"github.com/d60-Lab/blog-service/pkg/errs"
	"github.com/d60-Lab/blog-service/pkg/logger"
)

// PostSummary 列表中的博文
type PostSummary struct {
	*model.Post
	Author string `json:"author"`
	Likes  int64  `json:"likes"`
	Liked  bool   `json:"liked"`
}

// PostDetail 博文详情，附带评论树
type PostDetail struct {
	PostSummary
	Comments []*model.CommentNode `json:"comments"`
}

// ContentService 博文、评论、点赞；所有写操作先校验登录与归属
type ContentService interface {
	// Feed 随机返回至多 limit 篇博文，每次调用重新抽样
	Feed(ctx context.Context, actor auth.Actor, limit int) ([]*PostSummary, error)
	OwnPosts(ctx context.Context, actor auth.Actor) ([]*PostSummary, error)
	GetPost(ctx context.Context, actor auth.Actor, postID string) (*PostDetail, error)
	Comments(ctx context.Context, actor auth.Actor, postID string) ([]*model.CommentNode, error)

	CreatePost(ctx context.Context, actor auth.Actor, title, content string) (*model.Post, error)
	UpdatePost(ctx context.Context, actor auth.Actor, postID, title, content string) (*model.Post, error)
	DeletePost(ctx context.Context, actor auth.Actor, postID string) error

	AddComment(ctx context.Context, actor auth.Actor, postID, content string, parentID *string) (*model.Comment, error)
	DeleteComment(ctx context.Context, actor auth.Actor, commentID string) error

	ToggleLike(ctx context.Context, actor auth.Actor, postID string) (*model.LikeResult, error)
}

type contentService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	likes    repository.LikeRepository
}

func NewContentService(users repository.UserRepository, posts repository.PostRepository, comments repository.CommentRepository, likes repository.LikeRepository) ContentService {
	return &contentService{users: users, posts: posts, comments: comments, likes: likes}
}

func (s *contentService) Feed(ctx context.Context, actor auth.Actor, limit int) ([]*PostSummary, error) {
	if err := actor.Require(); err != nil {
		return nil, err
	}
	posts, err := s.posts.Random(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, actor, posts)
}

func (s *contentService) OwnPosts(ctx context.Context, actor auth.Actor) ([]*PostSummary, error) {
	if err := actor.Require(); err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, actor, posts)
}

func (s *contentService) GetPost(ctx context.Context, actor auth.Actor, postID string) (*PostDetail, error) {
	if err := actor.Require(); err != nil {
		return nil, err
	}
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	sums, err := s.summarize(ctx, actor, []*model.Post{p})
	if err != nil {
		return nil, err
	}
	tree, err := s.thread(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{PostSummary: *sums[0], Comments: tree}, nil
}

func (s *contentService) Comments(ctx context.Context, actor auth.Actor, postID string) ([]*model.CommentNode, error) {
	if err := actor.Require(); err != nil {
		return nil, err
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.thread(ctx, postID)
}

func (s *contentService) thread(ctx context.Context, postID string) ([]*model.CommentNode, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return repository.BuildThread(comments), nil
}

// summarize 批量补齐作者名、点赞数与当前用户是否已点赞
func (s *contentService) summarize(ctx context.Context, actor auth.Actor, posts []*model.Post) ([]*PostSummary, error) {
	out := make([]*PostSummary, 0, len(posts))
	if len(posts) == 0 {
		return out, nil
	}
	postIDs := make([]string, len(posts))
	authorSet := make(map[string]struct{}, len(posts))
	authorIDs := make([]string, 0, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		if _, ok := authorSet[p.UserID]; !ok {
			authorSet[p.UserID] = struct{}{}
			authorIDs = append(authorIDs, p.UserID)
		}
	}

	counts, err := s.likes.CountByPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	liked, err := s.likes.LikedBy(ctx, actor.UserID, postIDs)
	if err != nil {
		return nil, err
	}
	authors, err := s.users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(authors))
	for _, u := range authors {
		names[u.ID] = u.Username
	}

	for _, p := range posts {
		out = append(out, &PostSummary{Post: p, Author: names[p.UserID], Likes: counts[p.ID], Liked: liked[p.ID]})
	}
	return out, nil
}

func (s *contentService) CreatePost(ctx context.Context, actor auth.Actor, title, content string) (*model.Post, error) {
	if err := actor.Require(); err != nil {
		return nil, err
	}
	p := &model.Post{Title: title, Content: content, UserID: actor.UserID}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// owned 加载博文并校验归属；UserID 创建后不变，检查与写入之间不存在归属变化
func (s *contentService) owned(ctx context.Context, actor auth.Actor, postID string) (*model.Post, error) {
	if err := actor.Require(); err != nil {
		return nil, err
	}
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.UserID != actor.UserID {
		return nil, errs.Forbidden("post %s belongs to another user", postID)
	}
	return p, nil
}

func (s *contentService) UpdatePost(ctx context.Context, actor auth.Actor, postID, title, content string) (*model.Post, error) {
	if _, err := s.owned(ctx, actor, postID); err != nil {
		return nil, err
	}
	return s.posts.Update(ctx, postID, title, content)
}

func (s *contentService) DeletePost(ctx context.Context, actor auth.Actor, postID string) error {
	if _, err := s.owned(ctx, actor, postID); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	logger.Info("post deleted", zap.String("post_id", postID), zap.String("user_id", actor.UserID))
	return nil
}

func (s *contentService) AddComment(ctx context.Context, actor auth.Actor, postID, content string, parentID *string) (*model.Comment, error) {
	if err := actor.Require(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, errs.Validation("comment cannot be empty")
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if parentID != nil && *parentID == "" {
		parentID = nil
	}
	if parentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, errs.Validation("parent comment belongs to a different post")
		}
	}
	c := &model.Comment{Content: content, UserID: actor.UserID, PostID: postID, ParentID: parentID}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contentService) DeleteComment(ctx context.Context, actor auth.Actor, commentID string) error {
	if err := actor.Require(); err != nil {
		return err
	}
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.UserID != actor.UserID {
		return errs.Forbidden("comment %s belongs to another user", commentID)
	}
	n, err := s.comments.Delete(ctx, commentID)
	if err != nil {
		return err
	}
	logger.Debug("comment deleted", zap.String("comment_id", commentID), zap.Int64("rows", n))
	return nil
}

func (s *contentService) ToggleLike(ctx context.Context, actor auth.Actor, postID string) (*model.LikeResult, error) {
	if err := actor.Require(); err != nil {
		return nil, err
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.likes.Toggle(ctx, actor.UserID, postID)
}
