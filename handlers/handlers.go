package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"linkforge/auth"
	"linkforge/config"
	"linkforge/middleware"
	"linkforge/services"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	cfg      config.Config
	auth     *auth.Auth
	accounts *services.AccountService
	links    *services.LinkService
	qr       services.QRService
	log      zerolog.Logger
}

func New(cfg config.Config, db *gorm.DB, log zerolog.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		auth:     auth.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		accounts: services.NewAccountService(db),
		links:    services.NewLinkService(db),
		qr:       services.QRService{},
		log:      log,
	}
}

// Router builds the gin engine with all routes mounted.
func (h *Handler) Router() *gin.Engine {
	if h.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(h.log))

	router.POST("/api/register", h.Register)
	router.POST("/api/login", h.Login)
	router.POST("/api/logout", h.Logout)

	router.GET("/:owner/:code", h.Redirect)
	router.POST("/:owner/:code/password", h.PasswordCheck)

	api := router.Group("/api")
	api.Use(h.auth.Middleware())
	{
		api.POST("/links", h.CreateLink)
		api.GET("/links", h.ListLinks)
		api.PUT("/links/:id/url", h.UpdateDestination)
		api.POST("/links/:id/deactivate", h.DeactivateLink)
		api.POST("/links/bulk_delete", h.BulkDelete)

		api.GET("/links/export/csv", h.ExportCSV)
		api.POST("/links/export/csv", h.ExportSelectedCSV)
		api.GET("/links/:id/qr", h.DownloadQR)
		api.POST("/links/qr_zip", h.BulkQRZip)

		api.GET("/links/:id/stats", h.LinkStats)
		api.GET("/dashboard", h.Dashboard)
	}

	return router
}

// fail maps service errors onto HTTP responses. Persistence failures
// are logged and surfaced as a generic message.
func (h *Handler) fail(c *gin.Context, err error) {
	var pwErr *services.PasswordRequiredError
	switch {
	case errors.As(err, &pwErr):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":        "Password required",
			"display_name": pwErr.DisplayName,
		})
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidURL),
		errors.Is(err, services.ErrInvalidPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateAccount),
		errors.Is(err, services.ErrShortCodeExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFoundOrForbidden),
		errors.Is(err, services.ErrLinkNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
	case errors.Is(err, services.ErrLinkDeactivated):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrLinkExpired):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
