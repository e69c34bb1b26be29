package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PasswordCheckRequest struct {
	Password string `json:"password" form:"password" binding:"required"`
}

// Redirect resolves an owner/code pair and sends the visitor to the
// destination. A password for protected links may be supplied as a
// query parameter (the password form posts back through PasswordCheck).
func (h *Handler) Redirect(c *gin.Context) {
	h.resolveAndRedirect(c, c.Query("password"))
}

// PasswordCheck accepts a submitted password for a protected link and
// re-resolves.
func (h *Handler) PasswordCheck(c *gin.Context) {
	var req PasswordCheckRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.resolveAndRedirect(c, req.Password)
}

func (h *Handler) resolveAndRedirect(c *gin.Context, password string) {
	shortCode := c.Param("owner") + "/" + c.Param("code")

	link, err := h.links.Resolve(shortCode, password)
	if err != nil {
		h.fail(c, err)
		return
	}

	// Telemetry is best-effort: a failed write never blocks the redirect.
	if err := h.links.RecordClick(link.ID, c.ClientIP(), c.Request.Referer(), c.Request.UserAgent()); err != nil {
		h.log.Warn().Err(err).Uint("link_id", link.ID).Msg("failed to record click")
	}

	c.Redirect(http.StatusFound, link.OriginalURL)
}
