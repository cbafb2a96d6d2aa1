package middleware

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yukikurage/microblog-app/internal/constants"
	"github.com/yukikurage/microblog-app/internal/database"
	weberrors "github.com/yukikurage/microblog-app/internal/errors"
	"github.com/yukikurage/microblog-app/internal/models"
)

// LoadUser resolves the session's curr_user key to a persisted user and
// stores both the ID and the model in the request context. A session key
// pointing at a deleted user is cleared and treated as no session at all.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(constants.CurrUserKey)

		userID, ok := toUint64(raw)
		if !ok {
			c.Next()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			// Only a definite miss invalidates the key. A transient store
			// failure must not log the user out.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				session.Delete(constants.CurrUserKey)
				_ = session.Save()
			}
			c.Next()
			return
		}

		c.Set(constants.CurrUserKey, userID)
		c.Set(constants.CurrentUserModelKey, &user)
		c.Next()
	}
}

// RequireAuth rejects requests with no resolved current user. The denial is
// a flash plus a redirect home, never an error page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := GetUserID(c); !exists {
			weberrors.Unauthorized(c)
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.CurrUserKey)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

// GetCurrentUser retrieves the loaded current user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(constants.CurrentUserModelKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func toUint64(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint:
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}
