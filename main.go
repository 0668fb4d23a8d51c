package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"samasya-be/config"
	"samasya-be/models"
	"samasya-be/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

func setupLogger() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    os.Getenv("GO_ENV") == "production",
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}
	setupLogger()

	db := config.ConnectDB()
	if db == nil {
		slog.Error("failed to connect to MongoDB")
		os.Exit(1)
	}
	config.ConnectRedis()

	if err := models.EnsureIssueIndex(db.Collection("issues")); err != nil {
		slog.Warn("failed to ensure issue index", "error", err)
	}
	if err := models.EnsureResponseIndex(db.Collection("responses")); err != nil {
		slog.Warn("failed to ensure response index", "error", err)
	}

	r := gin.Default()

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(corsOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.AuthRoutes(r)
	routes.IssueRoutes(r)
	routes.AuthorityRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
