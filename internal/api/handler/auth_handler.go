package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-service/pkg/response"
)

type signupRequest struct {
	Username string `json:"username" form:"username" binding:"required,notblank,max=20"`
	Email    string `json:"email" form:"email" binding:"required,email,max=120"`
	Password string `json:"password" form:"password" binding:"required,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Signup 注册
// @Summary 注册账号
// @Tags 账号
// @Accept json
// @Produce json
// @Param request body signupRequest true "注册信息"
// @Success 201 {object} response.Response{data=model.User}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.identity.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, u)
}

// Login 登录
// @Summary 登录并下发会话 Cookie
// @Tags 账号
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	s, err := h.identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setSessionCookie(c, s.Token, s.ExpiresAt)
	response.Success(c, gin.H{"token": s.Token, "expires_at": s.ExpiresAt, "user": s.User})
}

// Logout 登出
// @Summary 登出并吊销会话
// @Tags 账号
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if err := h.identity.Logout(c.Request.Context(), actorOf(c)); err != nil {
		response.Error(c, err)
		return
	}
	h.clearSessionCookie(c)
	response.Success(c, nil)
}

// Me 当前用户
// @Summary 当前登录用户
// @Tags 账号
// @Produce json
// @Success 200 {object} response.Response{data=model.User}
// @Failure 401 {object} response.Response
// @Router /api/v1/me [get]
func (h *Handler) Me(c *gin.Context) {
	u, err := h.identity.Profile(c.Request.Context(), actorOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, u)
}
