package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/microblog-app/internal/constants"
	"github.com/yukikurage/microblog-app/internal/database"
	"github.com/yukikurage/microblog-app/internal/models"
)

// buildSessionRouter wires a router around LoadUser with two plumbing routes
// registered ahead of it: one writes the session key directly, one reports
// whether the raw key is still in the session.
func buildSessionRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	database.SetDB(db)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))

	r.POST("/session/:id", func(c *gin.Context) {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
		session := sessions.Default(c)
		session.Set(constants.CurrUserKey, id)
		_ = session.Save()
		c.Status(http.StatusOK)
	})
	r.GET("/raw", func(c *gin.Context) {
		if sessions.Default(c).Get(constants.CurrUserKey) != nil {
			c.String(http.StatusOK, "present")
			return
		}
		c.String(http.StatusOK, "absent")
	})

	r.Use(LoadUser())
	r.GET("/whoami", func(c *gin.Context) {
		if id, ok := GetUserID(c); ok {
			c.String(http.StatusOK, fmt.Sprintf("user %d", id))
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	return r
}

func openMiddlewareTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func setSessionUser(t *testing.T, r *gin.Engine, id uint64) []*http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/session/%d", id), nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func get(r *gin.Engine, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestLoadUserResolvesSession(t *testing.T) {
	db := openMiddlewareTestDB(t)
	r := buildSessionRouter(db)

	user := models.User{Username: "u1", Email: "u1@email.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	cookies := setSessionUser(t, r, user.ID)

	w := get(r, "/whoami", cookies)
	require.Equal(t, fmt.Sprintf("user %d", user.ID), w.Body.String())
}

func TestLoadUserClearsStaleSession(t *testing.T) {
	db := openMiddlewareTestDB(t)
	r := buildSessionRouter(db)

	cookies := setSessionUser(t, r, 42)

	w := get(r, "/whoami", cookies)
	require.Equal(t, "anonymous", w.Body.String())

	// The cleared session comes back on the response cookie
	cleared := w.Result().Cookies()
	require.NotEmpty(t, cleared)
	raw := get(r, "/raw", cleared)
	require.Equal(t, "absent", raw.Body.String())
}

func TestLoadUserKeepsSessionOnStoreFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnError(errors.New("connection reset"))

	r := buildSessionRouter(db)
	cookies := setSessionUser(t, r, 42)

	// The lookup fails, so the request proceeds anonymously
	w := get(r, "/whoami", cookies)
	require.Equal(t, "anonymous", w.Body.String())

	// But the session key survives for the next request
	raw := get(r, "/raw", cookies)
	require.Equal(t, "present", raw.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}
