package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-service/pkg/response"
)

type commentRequest struct {
	Content  string  `json:"content" form:"comment_content"`
	ParentID *string `json:"parent_id" form:"parent_id"`
}

// ListComments 评论树
// @Summary 博文的评论树
// @Tags 评论
// @Produce json
// @Param id path string true "博文ID"
// @Success 200 {object} response.Response{data=[]model.CommentNode}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	tree, err := h.content.Comments(c.Request.Context(), actorOf(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tree)
}

// AddComment 评论或回复
// @Summary 发表评论（parent_id 非空时为回复）
// @Tags 评论
// @Accept json
// @Produce json
// @Param id path string true "博文ID"
// @Param request body commentRequest true "评论"
// @Success 201 {object} response.Response{data=model.Comment}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.content.AddComment(c.Request.Context(), actorOf(c), c.Param("id"), req.Content, req.ParentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cm)
}

// DeleteComment 删除评论
// @Summary 删除评论及其全部回复（仅作者）
// @Tags 评论
// @Produce json
// @Param id path string true "评论ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/comments/{id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	if err := h.content.DeleteComment(c.Request.Context(), actorOf(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
