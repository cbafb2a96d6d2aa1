package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/microblog-app/internal/dto"
	"github.com/yukikurage/microblog-app/internal/middleware"
	"github.com/yukikurage/microblog-app/internal/web"
)

// pageData seeds the gin.H every template expects: drained flashes and the
// current user's card (nil when anonymous).
func pageData(c *gin.Context) gin.H {
	data := gin.H{
		"Flashes":     web.Flashes(c),
		"CurrentUser": (*dto.UserCard)(nil),
	}
	if user, ok := middleware.GetCurrentUser(c); ok {
		card := dto.ToUserCard(*user)
		data["CurrentUser"] = &card
	}
	return data
}

// paramID parses the :id path parameter.
func paramID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
