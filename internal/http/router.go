package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Decan209/easy-tick-bw/internal/config"
	"github.com/Decan209/easy-tick-bw/internal/http/handlers"
	"github.com/Decan209/easy-tick-bw/internal/http/middleware"
	"github.com/Decan209/easy-tick-bw/internal/modules/campaigns"
	"github.com/Decan209/easy-tick-bw/internal/modules/exclusion"
	"github.com/Decan209/easy-tick-bw/internal/storage"
)

func NewRouter(l *slog.Logger, db *gorm.DB, cfg config.Config, st storage.Storage, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(l),
		middleware.Recovery(l),
		middleware.ErrorHandler(l),
	)

	repo := campaigns.NewRepo(db)
	resolver := campaigns.NewResolver(repo)
	exclCodec := exclusion.NewCodec([]byte(cfg.CookieSecret), cfg.CookieSecure)

	proxyH := handlers.NewProxyCampaignsHandler(resolver)
	widgetH := handlers.NewWidgetHandler(resolver, exclCodec, l)
	if rdb != nil {
		widgetH.Redis = exclusion.NewRedis(rdb)
	}
	adminH := handlers.NewCampaignAdminHandler(repo)
	uploadH := handlers.NewUploadHandler(st)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// storefront app proxy: every request carries the platform signature
	proxy := r.Group("/apps/easy-tick", middleware.VerifyProxySignature(cfg.ProxySecret))
	{
		proxy.GET("/campaigns", proxyH.Get)
		proxy.POST("/campaigns", proxyH.Action)
		proxy.GET("/widget", widgetH.State)
	}

	// embedded admin API
	api := r.Group("/api")
	{
		api.GET("/campaigns", adminH.List)
		api.POST("/campaigns", adminH.Create)
		api.GET("/campaigns/:id", adminH.Get)
		api.PUT("/campaigns/:id", adminH.Update)
		api.DELETE("/campaigns/:id", adminH.Delete)
		api.DELETE("/campaigns", adminH.DeleteByShop)
		api.POST("/campaigns/status", adminH.BulkStatus)
		api.POST("/campaigns/images", uploadH.Image)
	}

	return r
}
