package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ikkim/recipe-box/config"
	"github.com/ikkim/recipe-box/internal/app/controller"
	"github.com/ikkim/recipe-box/internal/metrics"
	"github.com/ikkim/recipe-box/internal/middleware"
	"github.com/ikkim/recipe-box/internal/web"
)

// UploadsURLPrefix is where locally stored review photos are served
const UploadsURLPrefix = "/uploads/recipes"

// multipartMemory bounds the in-memory part of a parsed form; larger
// uploads are spooled to temp files
const multipartMemory = 8 << 20

type Router struct {
	recipeController *controller.RecipeController
	editController   *controller.EditController
	createController *controller.CreateController
	targetController *controller.TargetController
	config           *config.Config
}

func NewRouter(
	recipeController *controller.RecipeController,
	editController *controller.EditController,
	createController *controller.CreateController,
	targetController *controller.TargetController,
	cfg *config.Config,
) *Router {
	return &Router{
		recipeController: recipeController,
		editController:   editController,
		createController: createController,
		targetController: targetController,
		config:           cfg,
	}
}

func (r *Router) Setup() (*gin.Engine, error) {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()
	router.MaxMultipartMemory = multipartMemory

	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(templates)

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(metrics.Middleware())
	router.Use(middleware.SecurityHeaders())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Recipe Box is running",
		})
	})
	router.GET("/metrics", metrics.Handler())

	// Serve locally stored review photos
	if r.config.Storage.UploadBackend != "s3" {
		router.Static(UploadsURLPrefix, r.config.Storage.UploadsDir)
	}

	pages := router.Group("/")
	pages.Use(middleware.Session(r.config.Security.SessionCookie, r.config.Security.CookieSecure))
	pages.Use(middleware.BodyLimit(r.config.Server.MaxBodyBytes, r.recipeController.RequestTooLarge))
	{
		pages.GET("/", r.recipeController.Index)
		pages.GET("/recipe", r.recipeController.Show)
		pages.POST("/recipe", r.recipeController.Post)
		pages.GET("/edit", r.editController.Show)
		pages.POST("/edit", r.editController.Post)
		pages.GET("/new", r.createController.Show)
		pages.POST("/new", r.createController.Post)
	}

	// Monitoring dashboard endpoints, called cross-origin
	monitoring := router.Group("/")
	monitoring.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	monitoring.Use(middleware.BodyLimit(1<<20, nil))
	{
		monitoring.GET("/load", r.targetController.Load)
		monitoring.POST("/save", r.targetController.Save)
		monitoring.OPTIONS("/load", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		monitoring.OPTIONS("/save", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}

	router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, web.ErrorPage, gin.H{
			"PageTitle": "Not Found",
			"Status":    http.StatusNotFound,
			"Title":     "Not Found",
			"Message":   "Page not found.",
		})
	})

	return router, nil
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		for _, origin := range allowedOrigins {
			if origin == "*" {
				cfg.AllowAllOrigins = true
				break
			}
		}
		if !cfg.AllowAllOrigins {
			cfg.AllowOrigins = allowedOrigins
		}
	}
	return cors.New(cfg)
}
