package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/microblog-app/internal/dto"
	weberrors "github.com/yukikurage/microblog-app/internal/errors"
	"github.com/yukikurage/microblog-app/internal/middleware"
	"github.com/yukikurage/microblog-app/internal/services"
)

// HomeHandler renders the landing page: a timeline for logged-in users, a
// welcome page for everyone else.
type HomeHandler struct {
	messageService *services.MessageService
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(messageService *services.MessageService) *HomeHandler {
	return &HomeHandler{
		messageService: messageService,
	}
}

// Home renders the home page.
func (h *HomeHandler) Home(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.HTML(http.StatusOK, "home_anon.html", pageData(c))
		return
	}

	messages, err := h.messageService.Timeline(userID)
	if err != nil {
		weberrors.Internal(c, err)
		return
	}

	likedIDs, err := h.messageService.ListLikedIDs(userID)
	if err != nil {
		weberrors.Internal(c, err)
		return
	}

	data := pageData(c)
	data["Messages"] = dto.ToMessageViews(messages, dto.LikedIDSet(likedIDs))
	c.HTML(http.StatusOK, "home.html", data)
}
