// Package errors centralizes the user-facing failure responses of the HTML
// surface: unauthorized actions flash and redirect, missing resources render
// a 404 page, everything unexpected becomes a logged 500.
package errors

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/microblog-app/internal/web"
)

// AccessUnauthorizedMessage is the uniform denial text. Missing session,
// stale session, and ownership mismatch all read the same so responses leak
// nothing about why access was refused.
const AccessUnauthorizedMessage = "Access unauthorized."

// Unauthorized flashes the uniform denial message and redirects home.
func Unauthorized(c *gin.Context) {
	web.Flash(c, AccessUnauthorizedMessage)
	c.Redirect(http.StatusFound, "/")
	c.Abort()
}

// NotFound renders the 404 page.
func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{})
	c.Abort()
}

// Internal logs the underlying error and responds with a plain 500. The
// failure is fatal to the request, not to the process.
func Internal(c *gin.Context, err error) {
	log.Printf("internal error: %v", err)
	c.String(http.StatusInternalServerError, "Internal server error")
	c.Abort()
}
