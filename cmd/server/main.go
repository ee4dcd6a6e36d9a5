package main

import (
	"log"
	"strconv"

	"stridehub/config"
	"stridehub/db"
	"stridehub/metrics"
	"stridehub/middlewares"
	"stridehub/routes"
	"stridehub/services"
	"stridehub/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	services.Init(cfg)

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Set up the Gin router and configure routes
	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	origins := cfg.Server.CorsOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:8081"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes
	router.POST("/register", routes.RegisterRouteHandler)
	router.POST("/verify", routes.VerifyRouteHandler)
	router.GET("/catalog/tag-choices", routes.GetTagChoicesRouteHandler)
	router.GET("/catalog/activities", routes.GetActivitiesRouteHandler)
	router.GET("/metrics", metrics.Handler())

	// Protected routes (bearer token matching)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/user/tags", routes.GetTagsRouteHandler)
		auth.PUT("/user/tags", routes.UpdateTagsRouteHandler)

		auth.POST("/events", routes.LogEventRouteHandler)
		auth.GET("/events", routes.GetMyEventsRouteHandler)

		routes.SetupChallengeRoutes(auth)

		// Live leaderboard updates
		auth.GET("/ws/leaderboard/:challengeId", websocket.LeaderboardWebsocketHandler)
	}

	return router
}
