package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-service/pkg/errs"
	"github.com/d60-Lab/blog-service/pkg/response"
)

type postRequest struct {
	Title   string `json:"title" form:"title" binding:"required,notblank,max=100"`
	Content string `json:"content" form:"content" binding:"required,notblank"`
}

// Feed 发现页
// @Summary 随机博文
// @Tags 博文
// @Produce json
// @Param limit query int false "数量" default(10)
// @Success 200 {object} response.Response{data=[]service.PostSummary}
// @Failure 401 {object} response.Response
// @Router /api/v1/feed [get]
func (h *Handler) Feed(c *gin.Context) {
	limit := h.feed.DefaultLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			response.Error(c, errs.Validation("limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	if h.feed.MaxLimit > 0 && limit > h.feed.MaxLimit {
		limit = h.feed.MaxLimit
	}
	list, err := h.content.Feed(c.Request.Context(), actorOf(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// MyPosts 我的博文
// @Summary 当前用户的博文
// @Tags 博文
// @Produce json
// @Success 200 {object} response.Response{data=[]service.PostSummary}
// @Failure 401 {object} response.Response
// @Router /api/v1/me/posts [get]
func (h *Handler) MyPosts(c *gin.Context) {
	list, err := h.content.OwnPosts(c.Request.Context(), actorOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetPost 博文详情
// @Summary 博文详情（含评论树）
// @Tags 博文
// @Produce json
// @Param id path string true "博文ID"
// @Success 200 {object} response.Response{data=service.PostDetail}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	p, err := h.content.GetPost(c.Request.Context(), actorOf(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

// CreatePost 发布博文
// @Summary 发布博文
// @Tags 博文
// @Accept json
// @Produce json
// @Param request body postRequest true "博文"
// @Success 201 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.content.CreatePost(c.Request.Context(), actorOf(c), req.Title, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p)
}

// UpdatePost 编辑博文
// @Summary 编辑博文（仅作者）
// @Tags 博文
// @Accept json
// @Produce json
// @Param id path string true "博文ID"
// @Param request body postRequest true "博文"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.content.UpdatePost(c.Request.Context(), actorOf(c), c.Param("id"), req.Title, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

// DeletePost 删除博文
// @Summary 删除博文（仅作者，级联删除评论与点赞）
// @Tags 博文
// @Produce json
// @Param id path string true "博文ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.content.DeletePost(c.Request.Context(), actorOf(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

type likeResponse struct {
	Success bool   `json:"success"`
	Likes   int64  `json:"likes"`
	Liked   bool   `json:"liked"`
	Error   string `json:"error,omitempty"`
}

// ToggleLike 点赞/取消点赞
// @Summary 切换点赞状态
// @Tags 博文
// @Produce json
// @Param id path string true "博文ID"
// @Success 200 {object} likeResponse
// @Failure 401 {object} likeResponse
// @Failure 404 {object} likeResponse
// @Router /api/v1/posts/{id}/like [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	res, err := h.content.ToggleLike(c.Request.Context(), actorOf(c), c.Param("id"))
	if err != nil {
		status := response.Status(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			response.InternalError(c, err)
			return
		}
		c.JSON(status, likeResponse{Success: false, Error: msg})
		return
	}
	c.JSON(http.StatusOK, likeResponse{Success: true, Likes: res.Likes, Liked: res.Liked})
}
