package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studybuddy-api/pkg/response"
)

// AuthHandler serves identity endpoints. Sign-in itself happens against Supabase.
type AuthHandler struct{}

// NewAuthHandler creates a new handler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Me godoc
// @Summary Current user
// @Description Returns the user behind the access token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}
