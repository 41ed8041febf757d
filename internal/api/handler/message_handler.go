package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-service/pkg/response"
)

type messageRequest struct {
	Content string `json:"content" form:"message_content"`
}

// ListChats 会话列表
// @Summary 会话列表（按最近消息倒序）
// @Tags 私信
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Conversation}
// @Failure 401 {object} response.Response
// @Router /api/v1/chats [get]
func (h *Handler) ListChats(c *gin.Context) {
	list, err := h.messaging.Conversations(c.Request.Context(), actorOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetChat 与某用户的对话
// @Summary 与某用户的全部私信（时间正序）
// @Tags 私信
// @Produce json
// @Param user_id path string true "对方用户ID"
// @Success 200 {object} response.Response{data=service.ThreadView}
// @Failure 404 {object} response.Response
// @Router /api/v1/chats/{user_id} [get]
func (h *Handler) GetChat(c *gin.Context) {
	th, err := h.messaging.Thread(c.Request.Context(), actorOf(c), c.Param("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, th)
}

// SendMessage 发送私信
// @Summary 发送私信
// @Tags 私信
// @Accept json
// @Produce json
// @Param user_id path string true "对方用户ID"
// @Param request body messageRequest true "私信"
// @Success 201 {object} response.Response{data=model.Message}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/chats/{user_id} [post]
func (h *Handler) SendMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.messaging.Send(c.Request.Context(), actorOf(c), c.Param("user_id"), req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, m)
}
