package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-api/internal/application"
	"github.com/oksasatya/go-portfolio-api/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
	"github.com/oksasatya/go-portfolio-api/pkg/response"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Errors *middleware.ErrorResponder
}

func NewAuthHandler(svc *application.AuthService, errs *middleware.ErrorResponder) *AuthHandler {
	return &AuthHandler{Svc: svc, Errors: errs}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AppError(c, apperror.Validation("Invalid credentials format."))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password, application.LoginMeta{
		IP:        c.GetString("real_ip"),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.AppError(c, apperror.Unauthorized("Unauthorized"))
		return
	}
	u, err := h.Svc.Me(c.Request.Context(), claims)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"user": u})
}

// Logout POST /api/auth/logout. Tokens are stateless; the client drops its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"message": "Logged out (client should delete token)"})
}
