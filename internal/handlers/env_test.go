package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/microblog-app/internal/constants"
	"github.com/yukikurage/microblog-app/internal/database"
	"github.com/yukikurage/microblog-app/internal/middleware"
	"github.com/yukikurage/microblog-app/internal/models"
	"github.com/yukikurage/microblog-app/internal/repository"
	"github.com/yukikurage/microblog-app/internal/services"
	"github.com/yukikurage/microblog-app/internal/web"
)

type handlerTestEnv struct {
	db             *gorm.DB
	router         *gin.Engine
	authService    *services.AuthService
	userService    *services.UserService
	messageService *services.MessageService
}

// setupHandlerTestEnv builds an in-memory database and a router with the
// full route table, mirroring cmd/server.
func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Follow{},
		&models.Like{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, followRepo, likeRepo, messageRepo)
	messageService := services.NewMessageService(messageRepo, likeRepo, followRepo)

	homeHandler := NewHomeHandler(messageService)
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService, messageService)
	messageHandler := NewMessageHandler(messageService)

	r := gin.New()
	r.SetHTMLTemplate(web.Templates())
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.LoadUser())

	r.GET("/", homeHandler.Home)
	r.GET("/signup", authHandler.ShowSignup)
	r.POST("/signup", authHandler.Signup)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", middleware.RequireAuth(), authHandler.Logout)

	r.GET("/users", userHandler.ListUsers)
	r.GET("/users/profile", middleware.RequireAuth(), userHandler.ShowProfileForm)
	r.POST("/users/profile", middleware.RequireAuth(), userHandler.UpdateProfile)
	r.POST("/users/delete", middleware.RequireAuth(), userHandler.DeleteUser)
	r.POST("/users/follow/:id", middleware.RequireAuth(), userHandler.Follow)
	r.POST("/users/stop-following/:id", middleware.RequireAuth(), userHandler.StopFollowing)
	r.GET("/users/:id", userHandler.ShowUser)
	r.GET("/users/:id/following", middleware.RequireAuth(), userHandler.ShowFollowing)
	r.GET("/users/:id/followers", middleware.RequireAuth(), userHandler.ShowFollowers)
	r.GET("/users/:id/likes", middleware.RequireAuth(), userHandler.ShowLikes)

	r.GET("/messages/new", middleware.RequireAuth(), messageHandler.ShowNewForm)
	r.POST("/messages/new", middleware.RequireAuth(), messageHandler.Create)
	r.GET("/messages/:id", messageHandler.Show)
	r.POST("/messages/:id/delete", middleware.RequireAuth(), messageHandler.Delete)
	r.POST("/messages/:id/like", middleware.RequireAuth(), messageHandler.ToggleLike)

	return handlerTestEnv{
		db:             db,
		router:         r,
		authService:    authService,
		userService:    userService,
		messageService: messageService,
	}
}

// signup creates a user directly through the service.
func (env handlerTestEnv) signup(t *testing.T, username, email string) *models.User {
	t.Helper()

	user, err := env.authService.Signup(services.SignupInput{
		Username: username,
		Email:    email,
		Password: "password",
	})
	require.NoError(t, err)
	return user
}

// login performs a real login request and returns the session cookies to
// attach to subsequent requests.
func (env handlerTestEnv) login(t *testing.T, username string) []*http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", "password")

	w := env.do(t, http.MethodPost, "/login", form, nil)
	require.Equal(t, http.StatusFound, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

// do runs a request through the router. A nil form means no body.
func (env handlerTestEnv) do(t *testing.T, method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// followRedirect re-issues a GET against the redirect target, carrying over
// cookies set by the redirecting response.
func (env handlerTestEnv) followRedirect(t *testing.T, w *httptest.ResponseRecorder, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	location := w.Header().Get("Location")
	require.NotEmpty(t, location, "expected a redirect")

	return env.do(t, http.MethodGet, location, nil, mergeCookies(cookies, w.Result().Cookies()))
}

// mergeCookies overlays newer cookies on older ones. Later values win per
// name, since the server reads the first cookie carrying it.
func mergeCookies(old, updated []*http.Cookie) []*http.Cookie {
	seen := map[string]bool{}
	merged := make([]*http.Cookie, 0, len(old)+len(updated))
	for _, c := range updated {
		merged = append(merged, c)
		seen[c.Name] = true
	}
	for _, c := range old {
		if !seen[c.Name] {
			merged = append(merged, c)
		}
	}
	return merged
}
