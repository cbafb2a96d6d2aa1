package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/microblog-app/internal/config"
	"github.com/yukikurage/microblog-app/internal/constants"
	"github.com/yukikurage/microblog-app/internal/database"
	"github.com/yukikurage/microblog-app/internal/handlers"
	"github.com/yukikurage/microblog-app/internal/middleware"
	"github.com/yukikurage/microblog-app/internal/repository"
	"github.com/yukikurage/microblog-app/internal/services"
	"github.com/yukikurage/microblog-app/internal/web"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()
	r.SetHTMLTemplate(web.Templates())

	// Session store: Redis when configured, signed cookies otherwise
	store, err := sessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.LoadUser())

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, followRepo, likeRepo, messageRepo)
	messageService := services.NewMessageService(messageRepo, likeRepo, followRepo)

	// Initialize handlers
	homeHandler := handlers.NewHomeHandler(messageService)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, messageService)
	messageHandler := handlers.NewMessageHandler(messageService)

	// Public routes
	r.GET("/", homeHandler.Home)
	r.GET("/signup", authHandler.ShowSignup)
	r.POST("/signup", authHandler.Signup)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", middleware.RequireAuth(), authHandler.Logout)

	// User routes
	users := r.Group("/users")
	{
		users.GET("", userHandler.ListUsers)
		users.GET("/profile", middleware.RequireAuth(), userHandler.ShowProfileForm)
		users.POST("/profile", middleware.RequireAuth(), userHandler.UpdateProfile)
		users.POST("/delete", middleware.RequireAuth(), userHandler.DeleteUser)
		users.POST("/follow/:id", middleware.RequireAuth(), userHandler.Follow)
		users.POST("/stop-following/:id", middleware.RequireAuth(), userHandler.StopFollowing)
		users.GET("/:id", userHandler.ShowUser)
		users.GET("/:id/following", middleware.RequireAuth(), userHandler.ShowFollowing)
		users.GET("/:id/followers", middleware.RequireAuth(), userHandler.ShowFollowers)
		users.GET("/:id/likes", middleware.RequireAuth(), userHandler.ShowLikes)
	}

	// Message routes
	messages := r.Group("/messages")
	{
		messages.GET("/new", middleware.RequireAuth(), messageHandler.ShowNewForm)
		messages.POST("/new", middleware.RequireAuth(), messageHandler.Create)
		messages.GET("/:id", messageHandler.Show)
		messages.POST("/:id/delete", middleware.RequireAuth(), messageHandler.Delete)
		messages.POST("/:id/like", middleware.RequireAuth(), messageHandler.ToggleLike)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func sessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.RedisHost == "" {
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		return nil, err
	}

	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	return store, nil
}
