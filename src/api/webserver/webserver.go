// Package webserver exposes the verification pipeline over HTTP for the
// frontend: verify an article, fetch a report, publish and list posts.
package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/realorrender/realorrender/src/api/config"
	"github.com/realorrender/realorrender/src/verify"
)

func New(cfg config.Config, pipeline *verify.Pipeline, reports ReportStore, posts PostStore) *gin.Engine {
	r := gin.Default()
	attachRoutes(r, cfg, pipeline, reports, posts)
	return r
}

func attachRoutes(r *gin.Engine, cfg config.Config, pipeline *verify.Pipeline, reports ReportStore, posts PostStore) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	verifyH := NewVerify(pipeline)
	reportH := NewReports(reports)
	postH := NewPosts(reports, posts)

	// Verification is the expensive endpoint; keep it rate limited.
	limiter := NewRateLimiter(10, time.Minute)

	api := r.Group("/api")
	{
		api.POST("/verifyArticle", RateLimitMiddleware(limiter), verifyH.Create)
		api.GET("/reports/:id", reportH.Get)
		api.POST("/posts", postH.Create)
		api.GET("/posts", postH.List)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
