package main

import (
	"log"
	"os"

	"github.com/ngocthb/OJT-BE/internal/db"
	"github.com/ngocthb/OJT-BE/internal/handlers"
	"github.com/ngocthb/OJT-BE/internal/middleware"
	"github.com/ngocthb/OJT-BE/internal/services"
	"github.com/ngocthb/OJT-BE/internal/stores"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	// Initialize Database
	db.Init()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}

	// Stores
	userStore := stores.NewUserStore(db.DB)
	claimStore := stores.NewClaimStore(db.DB)
	commentStore := stores.NewCommentStore(db.DB)
	replyLinkStore := stores.NewReplyLinkStore(db.DB)

	// Services
	mailService := services.NewMailService()
	commentService := services.NewCommentService(userStore, claimStore, commentStore, replyLinkStore, mailService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userStore, []byte(secret))
	commentHandler := handlers.NewCommentHandler(commentService)
	uploadHandler := handlers.NewUploadHandler()

	r := gin.Default()
	r.Use(middleware.LoadUser(userStore, []byte(secret)))

	api := r.Group("/api")
	api.POST("/auth/login", authHandler.Login)
	api.GET("/comment/get-comments/:claimId", commentHandler.GetComments)

	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/comment/create", commentHandler.Create)
		authorized.POST("/comment/reply", commentHandler.Reply)
		authorized.GET("/comment/check/:id", commentHandler.Check)
		authorized.POST("/upload", uploadHandler.Upload)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("OJT-BE server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
