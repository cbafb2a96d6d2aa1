package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/microblog-app/internal/constants"
	"github.com/yukikurage/microblog-app/internal/dto"
	weberrors "github.com/yukikurage/microblog-app/internal/errors"
	"github.com/yukikurage/microblog-app/internal/middleware"
	"github.com/yukikurage/microblog-app/internal/models"
	"github.com/yukikurage/microblog-app/internal/services"
	"github.com/yukikurage/microblog-app/internal/utils"
	"github.com/yukikurage/microblog-app/internal/web"
)

// UserHandler coordinates user listings, profiles, and follow actions.
type UserHandler struct {
	userService    *services.UserService
	messageService *services.MessageService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, messageService *services.MessageService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		messageService: messageService,
	}
}

// ListUsers renders the user directory, filtered by ?q= substring.
func (h *UserHandler) ListUsers(c *gin.Context) {
	query := c.Query("q")
	params := utils.GetPaginationParams(c)

	users, err := h.userService.ListUsers(query, params)
	if err != nil {
		weberrors.Internal(c, err)
		return
	}

	data := pageData(c)
	data["Users"] = dto.ToUserCards(users)
	data["Query"] = query
	c.HTML(http.StatusOK, "users_index.html", data)
}

// ShowUser renders a user's profile with their messages and derived counts.
func (h *UserHandler) ShowUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		weberrors.NotFound(c)
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		h.respondUserError(c, err)
		return
	}

	counts, err := h.userService.GetCounts(id)
	if err != nil {
		weberrors.Internal(c, err)
		return
	}

	messages, err := h.messageService.ListByUser(id)
	if err != nil {
		weberrors.Internal(c, err)
		return
	}
	for i := range messages {
		messages[i].User = *user
	}

	data := pageData(c)
	likedIDs := map[uint64]bool{}
	if viewerID, exists := middleware.GetUserID(c); exists {
		ids, err := h.messageService.ListLikedIDs(viewerID)
		if err != nil {
			weberrors.Internal(c, err)
			return
		}
		likedIDs = dto.LikedIDSet(ids)

		following, err := h.userService.IsFollowing(viewerID, id)
		if err != nil {
			weberrors.Internal(c, err)
			return
		}
		data["IsFollowing"] = following
	} else {
		data["IsFollowing"] = false
	}

	profile := dto.UserProfile{
		UserCard:       dto.ToUserCard(*user),
		Email:          user.Email,
		HeaderImageURL: user.HeaderImageURL,
		Location:       user.Location,
		MessageCount:   counts.Messages,
		FollowingCount: counts.Following,
		FollowerCount:  counts.Followers,
		LikeCount:      counts.Likes,
	}

	data["Profile"] = profile
	data["Messages"] = dto.ToMessageViews(messages, likedIDs)
	c.HTML(http.StatusOK, "users_show.html", data)
}

// ShowFollowing renders the users someone follows.
func (h *UserHandler) ShowFollowing(c *gin.Context) {
	h.renderUserList(c, "users_following.html", h.userService.ListFollowing)
}

// ShowFollowers renders the users following someone.
func (h *UserHandler) ShowFollowers(c *gin.Context) {
	h.renderUserList(c, "users_followers.html", h.userService.ListFollowers)
}

func (h *UserHandler) renderUserList(c *gin.Context, tmpl string, list func(uint64) ([]models.User, error)) {
	id, ok := paramID(c)
	if !ok {
		weberrors.NotFound(c)
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		h.respondUserError(c, err)
		return
	}

	users, err := list(id)
	if err != nil {
		weberrors.Internal(c, err)
		return
	}

	data := pageData(c)
	data["User"] = dto.ToUserCard(*user)
	data["Users"] = dto.ToUserCards(users)
	c.HTML(http.StatusOK, tmpl, data)
}

// ShowLikes renders the messages a user has liked.
func (h *UserHandler) ShowLikes(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		weberrors.NotFound(c)
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		h.respondUserError(c, err)
		return
	}

	messages, err := h.messageService.ListLiked(id)
	if err != nil {
		weberrors.Internal(c, err)
		return
	}

	likedIDs := map[uint64]bool{}
	if viewerID, exists := middleware.GetUserID(c); exists {
		ids, err := h.messageService.ListLikedIDs(viewerID)
		if err != nil {
			weberrors.Internal(c, err)
			return
		}
		likedIDs = dto.LikedIDSet(ids)
	}

	data := pageData(c)
	data["User"] = dto.ToUserCard(*user)
	data["Messages"] = dto.ToMessageViews(messages, likedIDs)
	c.HTML(http.StatusOK, "users_likes.html", data)
}

// Follow creates the follow edge from the current user to :id.
func (h *UserHandler) Follow(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	id, ok := paramID(c)
	if !ok {
		weberrors.NotFound(c)
		return
	}

	if err := h.userService.Follow(userID, id); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfFollow):
			web.Flash(c, "You cannot follow yourself.")
			c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", userID))
		default:
			h.respondUserError(c, err)
		}
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d/following", userID))
}

// StopFollowing removes the follow edge from the current user to :id.
func (h *UserHandler) StopFollowing(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	id, ok := paramID(c)
	if !ok {
		weberrors.NotFound(c)
		return
	}

	if err := h.userService.Unfollow(userID, id); err != nil {
		weberrors.Internal(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d/following", userID))
}

// ShowProfileForm renders the profile edit form prefilled with the current
// user's values.
func (h *UserHandler) ShowProfileForm(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	data := pageData(c)
	data["Username"] = user.Username
	data["Email"] = user.Email
	data["ImageURL"] = user.ImageURL
	data["HeaderImageURL"] = user.HeaderImageURL
	data["Bio"] = user.Bio
	data["Location"] = user.Location
	c.HTML(http.StatusOK, "users_edit.html", data)
}

// UpdateProfile applies profile edits after password confirmation.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var form editProfileForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderEditForm(c, form, "Invalid form input")
		return
	}

	user, err := h.userService.UpdateProfile(userID, services.UpdateProfileInput{
		Username:       form.Username,
		Email:          form.Email,
		ImageURL:       form.ImageURL,
		HeaderImageURL: form.HeaderImageURL,
		Bio:            form.Bio,
		Location:       form.Location,
		Password:       form.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			h.renderEditForm(c, form, "Incorrect password.")
		case errors.Is(err, services.ErrCredentialsTaken):
			h.renderEditForm(c, form, "Username or email already taken")
		default:
			h.respondUserError(c, err)
		}
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", user.ID))
}

type editProfileForm struct {
	Username       string `form:"username"`
	Email          string `form:"email"`
	ImageURL       string `form:"image_url"`
	HeaderImageURL string `form:"header_image_url"`
	Bio            string `form:"bio"`
	Location       string `form:"location"`
	Password       string `form:"password"`
}

func (h *UserHandler) renderEditForm(c *gin.Context, form editProfileForm, errMsg string) {
	data := pageData(c)
	data["Username"] = form.Username
	data["Email"] = form.Email
	data["ImageURL"] = form.ImageURL
	data["HeaderImageURL"] = form.HeaderImageURL
	data["Bio"] = form.Bio
	data["Location"] = form.Location
	data["Error"] = errMsg
	c.HTML(http.StatusOK, "users_edit.html", data)
}

// DeleteUser removes the current user's account and ends the session.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	if err := h.userService.DeleteUser(userID); err != nil {
		h.respondUserError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Delete(constants.CurrUserKey)
	if err := session.Save(); err != nil {
		weberrors.Internal(c, err)
		return
	}

	web.Flash(c, "User deleted.")
	c.Redirect(http.StatusFound, "/signup")
}

func (h *UserHandler) respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		weberrors.NotFound(c)
	default:
		weberrors.Internal(c, err)
	}
}
