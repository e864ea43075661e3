package main

import (
	"log"

	"github.com/moneefalasali/Shield-Spear/internal/config"
	"github.com/moneefalasali/Shield-Spear/internal/database"
	"github.com/moneefalasali/Shield-Spear/internal/duel"
	"github.com/moneefalasali/Shield-Spear/internal/handlers"
	"github.com/moneefalasali/Shield-Spear/internal/metrics"
	"github.com/moneefalasali/Shield-Spear/internal/middleware"
	"github.com/moneefalasali/Shield-Spear/internal/scoring"
	"github.com/moneefalasali/Shield-Spear/internal/services"
	"github.com/moneefalasali/Shield-Spear/internal/ws"

	_ "github.com/moneefalasali/Shield-Spear/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Shield-Spear API
// @version         1.0
// @description     API for the Shield-Spear cybersecurity training platform with live dueling sessions
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()
	evaluator := scoring.NewBaseline()

	store := duel.NewGormStore(db)
	registry := duel.NewRegistry()
	engine := duel.NewEngine(store, registry, evaluator, hub)
	manager := duel.NewManager(store, registry, engine, hub)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	challengeService := services.NewChallengeService(db, evaluator)

	authHandler := handlers.NewAuthHandler(authService)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	duelHandler := handlers.NewDuelHandler(manager, engine)
	wsHandler := handlers.NewWSHandler(hub, manager)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/ws/duel/:code", wsHandler.HandleDuelWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		challenges := api.Group("/challenges")
		challenges.Use(middleware.JWTAuth(authService))
		{
			challenges.GET("", challengeHandler.ListChallenges)
			challenges.GET("/:id", challengeHandler.GetChallenge)
			challenges.POST("/:id/start", challengeHandler.StartChallenge)
		}

		attempts := api.Group("/attempts")
		attempts.Use(middleware.JWTAuth(authService))
		{
			attempts.GET("/:id", challengeHandler.GetAttempt)
			attempts.POST("/:id/submit", challengeHandler.SubmitSolution)
			attempts.POST("/:id/bot", challengeHandler.BotInteract)
		}

		api.GET("/leaderboard", middleware.JWTAuth(authService), challengeHandler.Leaderboard)

		duels := api.Group("/duels")
		duels.Use(middleware.JWTAuth(authService))
		{
			duels.POST("", duelHandler.CreateDuel)
			duels.POST("/join", duelHandler.JoinDuel)
			duels.GET("/:code", duelHandler.GetDuel)
			duels.POST("/:code/start", duelHandler.StartDuel)
			duels.POST("/:code/actions", duelHandler.SubmitAction)
			duels.POST("/:code/end", duelHandler.EndDuel)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
