package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"housewolf/portal/internal/obscure"
)

// RedirectHandler decodes obscured link keys and issues redirects. The key is
// reversible obfuscation only (see the obscure package): its sole purpose is
// keeping the raw destination out of shared links. A key that fails to decode
// must never surface an error page, so every failure path falls through to
// the configured default location.
type RedirectHandler struct {
	fallbackURL string
}

// NewRedirectHandler creates a new RedirectHandler.
func NewRedirectHandler(fallbackURL string) *RedirectHandler {
	return &RedirectHandler{fallbackURL: fallbackURL}
}

// Go handles GET /v1/go?key=...
func (h *RedirectHandler) Go(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.Redirect(http.StatusFound, h.fallbackURL)
		return
	}

	target, err := obscure.Decode(key)
	if err != nil {
		c.Redirect(http.StatusFound, h.fallbackURL)
		return
	}
	c.Redirect(http.StatusFound, target)
}
