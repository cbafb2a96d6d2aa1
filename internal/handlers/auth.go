package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/microblog-app/internal/constants"
	weberrors "github.com/yukikurage/microblog-app/internal/errors"
	"github.com/yukikurage/microblog-app/internal/services"
	"github.com/yukikurage/microblog-app/internal/web"
)

// AuthHandler coordinates signup, login, and logout.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// ShowSignup renders the signup form.
func (h *AuthHandler) ShowSignup(c *gin.Context) {
	data := pageData(c)
	c.HTML(http.StatusOK, "signup.html", data)
}

// Signup registers a new user and starts their session.
func (h *AuthHandler) Signup(c *gin.Context) {
	type signupForm struct {
		Username string `form:"username"`
		Email    string `form:"email"`
		Password string `form:"password"`
		ImageURL string `form:"image_url"`
	}

	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderSignup(c, form.Username, form.Email, form.ImageURL, "Invalid form input")
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		ImageURL: form.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCredentialsTaken):
			h.renderSignup(c, form.Username, form.Email, form.ImageURL, "Username or email already taken")
		case errors.Is(err, services.ErrPasswordTooShort):
			h.renderSignup(c, form.Username, form.Email, form.ImageURL,
				fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
		case errors.Is(err, services.ErrUsernameRequired), errors.Is(err, services.ErrEmailRequired):
			h.renderSignup(c, form.Username, form.Email, form.ImageURL, "Username and e-mail are required")
		default:
			weberrors.Internal(c, err)
		}
		return
	}

	if err := h.startSession(c, user.ID); err != nil {
		weberrors.Internal(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) renderSignup(c *gin.Context, username, email, imageURL, errMsg string) {
	data := pageData(c)
	data["Username"] = username
	data["Email"] = email
	data["ImageURL"] = imageURL
	data["Error"] = errMsg
	c.HTML(http.StatusOK, "signup.html", data)
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	data := pageData(c)
	c.HTML(http.StatusOK, "login.html", data)
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type loginForm struct {
		Username string `form:"username"`
		Password string `form:"password"`
	}

	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLogin(c, form.Username, "Invalid form input")
		return
	}

	user, err := h.authService.Authenticate(form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.renderLogin(c, form.Username, "Invalid credentials.")
			return
		}
		weberrors.Internal(c, err)
		return
	}

	if err := h.startSession(c, user.ID); err != nil {
		weberrors.Internal(c, err)
		return
	}

	web.Flash(c, fmt.Sprintf("Hello, %s!", user.Username))
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) renderLogin(c *gin.Context, username, errMsg string) {
	data := pageData(c)
	data["Username"] = username
	data["Error"] = errMsg
	c.HTML(http.StatusOK, "login.html", data)
}

// Logout removes the current-user key from the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(constants.CurrUserKey)
	if err := session.Save(); err != nil {
		weberrors.Internal(c, err)
		return
	}

	web.Flash(c, "You have successfully logged out.")
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) startSession(c *gin.Context, userID uint64) error {
	session := sessions.Default(c)
	session.Set(constants.CurrUserKey, userID)
	return session.Save()
}
