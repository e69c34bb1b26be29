package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"linkforge/auth"
	"linkforge/models"
	"linkforge/services"
)

type CreateLinkRequest struct {
	URL            string `json:"url" binding:"required"`
	DisplayName    string `json:"display_name"`
	CustomCode     string `json:"custom_code"`
	Password       string `json:"password"`
	ExpirationDays int    `json:"expiration_days"`
}

type UpdateDestinationRequest struct {
	URL string `json:"url" binding:"required"`
}

type LinkSelectionRequest struct {
	LinkIDs []uint `json:"link_ids" binding:"required,min=1"`
}

func (h *Handler) CreateLink(c *gin.Context) {
	userID, username, ok := h.identity(c)
	if !ok {
		return
	}

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.links.Create(services.CreateLinkParams{
		OwnerID:        userID,
		OwnerName:      username,
		URL:            req.URL,
		DisplayName:    req.DisplayName,
		CustomCode:     req.CustomCode,
		Password:       req.Password,
		ExpirationDays: req.ExpirationDays,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"link":      link,
		"short_url": services.ShortURL(h.cfg.Server.BaseURL, link.ShortCode),
	})
}

func (h *Handler) ListLinks(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}

	links, err := h.links.ListByOwner(userID, c.Query("search"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"links": links,
		"total": len(links),
	})
}

func (h *Handler) UpdateDestination(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}
	linkID, ok := h.linkID(c)
	if !ok {
		return
	}

	var req UpdateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.links.UpdateDestination(linkID, userID, req.URL); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Link updated successfully"})
}

func (h *Handler) DeactivateLink(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}
	linkID, ok := h.linkID(c)
	if !ok {
		return
	}

	if err := h.links.Deactivate(linkID, userID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Link deactivated"})
}

func (h *Handler) BulkDelete(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}

	var req LinkSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := h.links.DeleteMany(req.LinkIDs, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted_count": deleted})
}

func (h *Handler) ExportCSV(c *gin.Context) {
	userID, username, ok := h.identity(c)
	if !ok {
		return
	}

	links, err := h.links.ListByOwner(userID, "")
	if err != nil {
		h.fail(c, err)
		return
	}
	h.writeCSV(c, username, links)
}

func (h *Handler) ExportSelectedCSV(c *gin.Context) {
	userID, username, ok := h.identity(c)
	if !ok {
		return
	}

	var req LinkSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	links, err := h.links.ListOwnedByIDs(req.LinkIDs, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.writeCSV(c, username, links)
}

func (h *Handler) writeCSV(c *gin.Context, username string, links []models.Link) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=linkforge_links_%s.csv", username))
	if err := services.WriteLinksCSV(c.Writer, h.cfg.Server.BaseURL, links); err != nil {
		h.log.Error().Err(err).Msg("csv export failed")
	}
}

func (h *Handler) DownloadQR(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}
	linkID, ok := h.linkID(c)
	if !ok {
		return
	}

	link, err := h.links.GetOwned(linkID, userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	shortURL := services.ShortURL(h.cfg.Server.BaseURL, link.ShortCode)

	// format=datauri returns an embeddable preview instead of a download.
	if c.Query("format") == "datauri" {
		uri, err := h.qr.DataURI(shortURL, services.QRSizeSmall)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"qr_code": uri})
		return
	}

	png, err := h.qr.PNG(shortURL, services.QRSizeLarge)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", services.QRFilename(link.DisplayName)))
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) BulkQRZip(c *gin.Context) {
	userID, username, ok := h.identity(c)
	if !ok {
		return
	}

	var req LinkSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	links, err := h.links.ListOwnedByIDs(req.LinkIDs, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(links) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No valid links found"})
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=linkforge_qr_codes_%s.zip", username))
	if err := h.qr.WriteZIP(c.Writer, h.cfg.Server.BaseURL, links); err != nil {
		h.log.Error().Err(err).Msg("qr zip export failed")
	}
}

func (h *Handler) LinkStats(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}
	linkID, ok := h.linkID(c)
	if !ok {
		return
	}

	clicks, err := h.links.ClickStats(linkID, userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"link_id":      linkID,
		"click_stats":  clicks,
		"total_clicks": len(clicks),
	})
}

func (h *Handler) Dashboard(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}

	stats, err := h.links.Stats(userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	links, err := h.links.ListByOwner(userID, c.Query("search"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
		"links": links,
	})
}

func (h *Handler) identity(c *gin.Context) (uint, string, bool) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, "", false
	}
	username, _ := auth.GetUsername(c)
	return userID, username, true
}

func (h *Handler) linkID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return 0, false
	}
	return uint(id), true
}
