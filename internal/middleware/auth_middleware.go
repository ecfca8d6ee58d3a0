package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/deniz/coursehub/internal/app/models"
	"github.com/deniz/coursehub/internal/pkg/auth"
)

// ContextUserKey is the gin context key holding the authenticated user.
const ContextUserKey = "currentUser"

// tokenVerifier checks a bearer token and returns the user id it names.
type tokenVerifier interface {
	Verify(token string) (int64, error)
}

// userLoader resolves the authenticated user record.
type userLoader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthMiddleware requires a valid bearer token and loads the acting user
// into the request context. Requests without one are rejected with 401.
func AuthMiddleware(tokens tokenVerifier, users userLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		user, err := resolveUser(c, tokens, users, token)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

func resolveUser(c *gin.Context, tokens tokenVerifier, users userLoader, token string) (*models.User, error) {
	userID, err := tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := users.GetByID(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// The token outlived its user record.
		return nil, auth.ErrInvalidToken
	}

	return user, nil
}

// CurrentUser returns the authenticated user from the request context, or
// nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
