package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studybuddy-api/internal/middleware"
	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
)

// currentUser returns the authenticated user or a 401.
func currentUser(c *gin.Context) (*models.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, appErrors.ErrUnauthorized
	}
	return user, nil
}

// actorFromContext builds the audit actor for the current request.
func actorFromContext(c *gin.Context) (models.Actor, error) {
	user, err := currentUser(c)
	if err != nil {
		return models.Actor{}, err
	}
	return models.ActorFromUser(user, c.ClientIP(), c.GetHeader("User-Agent")), nil
}

func bindJSON(c *gin.Context, dest interface{}, message string) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message)
	}
	return nil
}

func bindQuery(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindQuery(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters")
	}
	return nil
}
