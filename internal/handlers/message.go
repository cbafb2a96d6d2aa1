package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/microblog-app/internal/constants"
	"github.com/yukikurage/microblog-app/internal/dto"
	weberrors "github.com/yukikurage/microblog-app/internal/errors"
	"github.com/yukikurage/microblog-app/internal/middleware"
	"github.com/yukikurage/microblog-app/internal/models"
	"github.com/yukikurage/microblog-app/internal/services"
	"github.com/yukikurage/microblog-app/internal/web"
)

// MessageHandler coordinates message pages and mutations.
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// ShowNewForm renders the new-message form.
func (h *MessageHandler) ShowNewForm(c *gin.Context) {
	data := pageData(c)
	c.HTML(http.StatusOK, "messages_new.html", data)
}

// Create posts a new message for the current user.
func (h *MessageHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	text := c.PostForm("text")

	message, err := h.messageService.Create(userID, text)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMessageTextEmpty):
			h.renderNewForm(c, text, "Text is required")
		case errors.Is(err, models.ErrMessageTextTooLong):
			h.renderNewForm(c, text,
				fmt.Sprintf("Messages are limited to %d characters", constants.MaxMessageLength))
		default:
			weberrors.Internal(c, err)
		}
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", message.UserID))
}

func (h *MessageHandler) renderNewForm(c *gin.Context, text, errMsg string) {
	data := pageData(c)
	data["Text"] = text
	data["Error"] = errMsg
	c.HTML(http.StatusOK, "messages_new.html", data)
}

// Show renders a single message.
func (h *MessageHandler) Show(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		weberrors.NotFound(c)
		return
	}

	message, err := h.messageService.Get(id)
	if err != nil {
		h.respondMessageError(c, err)
		return
	}

	likeCount, err := h.messageService.LikeCount(id)
	if err != nil {
		weberrors.Internal(c, err)
		return
	}

	viewerID, _ := middleware.GetUserID(c)

	data := pageData(c)
	data["Message"] = dto.ToMessageView(*message, nil)
	data["LikeCount"] = likeCount
	data["IsOwner"] = viewerID == message.UserID
	c.HTML(http.StatusOK, "messages_show.html", data)
}

// Delete removes a message owned by the current user.
func (h *MessageHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	id, ok := paramID(c)
	if !ok {
		weberrors.NotFound(c)
		return
	}

	if err := h.messageService.Delete(id, userID); err != nil {
		if errors.Is(err, services.ErrNotMessageOwner) {
			weberrors.Unauthorized(c)
			return
		}
		h.respondMessageError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", userID))
}

// ToggleLike flips the current user's like on a message, then sends them
// back where they came from.
func (h *MessageHandler) ToggleLike(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	id, ok := paramID(c)
	if !ok {
		weberrors.NotFound(c)
		return
	}

	if _, err := h.messageService.ToggleLike(userID, id); err != nil {
		if errors.Is(err, services.ErrOwnMessageLike) {
			web.Flash(c, "You cannot like your own message.")
			c.Redirect(http.StatusFound, backTo(c))
			return
		}
		h.respondMessageError(c, err)
		return
	}

	c.Redirect(http.StatusFound, backTo(c))
}

func (h *MessageHandler) respondMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMessageNotFound):
		weberrors.NotFound(c)
	default:
		weberrors.Internal(c, err)
	}
}

// backTo picks the redirect target after a toggle: the referring page when
// present, the home timeline otherwise.
func backTo(c *gin.Context) string {
	if ref := c.Request.Referer(); ref != "" {
		return ref
	}
	return "/"
}
