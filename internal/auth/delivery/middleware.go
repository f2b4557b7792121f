package delivery

import (
	"strings"

	"github.com/gin-gonic/gin"

	authdomain "taskhub-backend/internal/auth/domain"
	"taskhub-backend/internal/auth/usecase"
	"taskhub-backend/pkg/apperror"
	"taskhub-backend/pkg/response"
)

const userKey = "user"

var (
	errNotAuthenticated = apperror.Authentication("not_authenticated", "Authentication credentials were not provided.")
	errBadHeader        = apperror.Authentication("bad_authorization_header", "Authorization header must contain two space-delimited values")
)

func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, errNotAuthenticated)
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, errBadHeader)
			return
		}

		user, err := authUsecase.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user set by AuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *authdomain.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*authdomain.User)
	return user
}
