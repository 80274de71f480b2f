package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"brewshare/internal/app/middleware"
	"brewshare/internal/app/routes"
	"brewshare/internal/blob"
	"brewshare/internal/config"
	"brewshare/internal/store"
	"brewshare/internal/workflow"
)

func main() {
	cfg := config.Load()

	db, err := store.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	blobStore, err := blob.New(cfg)
	if err != nil {
		log.Fatalf("initializing blob store: %v", err)
	}

	accounts := store.NewAccounts(db)
	users := store.NewUsers(db)
	sessions := store.NewSessions(db)
	posts := store.NewPosts(db)
	saves := store.NewSaves(db)
	brands := store.NewBrands(db)
	equipment := store.NewEquipment(db)

	uploader := workflow.NewUploader(blobStore)
	postFlow := workflow.NewPostWorkflow(posts, uploader, brands, equipment, cfg.DeleteReplacedAssets)
	accountFlow := workflow.NewAccountWorkflow(accounts, users, sessions, cfg.AvatarEndpoint, cfg.JWTSecret, cfg.SessionTTL)

	r := gin.Default()

	requireSession := middleware.RequireSession(cfg.JWTSecret, sessions, users)
	// 5 credential attempts per minute per IP
	credentialLimiter := middleware.NewRateLimiter(5, time.Minute)

	v1 := r.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/signup", credentialLimiter.Limit(), routes.Signup(accountFlow))
	auth.POST("/signin", credentialLimiter.Limit(), routes.Signin(accountFlow, cfg.SessionTTL))
	auth.POST("/signout", requireSession, routes.Signout(accountFlow))
	auth.GET("/me", requireSession, routes.Me())

	postGroup := v1.Group("/posts")
	postGroup.GET("/", routes.GetRecentPosts(posts))
	postGroup.GET("/search", routes.SearchPosts(posts))
	postGroup.GET("/:id", routes.GetPostById(posts))
	postGroup.POST("/", requireSession, routes.CreatePost(postFlow))
	postGroup.PUT("/:id", requireSession, routes.UpdatePost(postFlow, posts))
	postGroup.DELETE("/:id", requireSession, routes.DeletePost(postFlow, posts))
	postGroup.PUT("/:id/like", requireSession, routes.LikePost(posts))
	postGroup.PUT("/:id/unlike", requireSession, routes.UnlikePost(posts))
	postGroup.POST("/:id/save", requireSession, routes.SavePost(saves, posts))

	v1.GET("/saves", requireSession, routes.GetSavedPosts(saves))
	v1.DELETE("/saves/:id", requireSession, routes.DeleteSavedPost(saves))

	v1.GET("/brands", routes.ListReferences(brands))
	v1.POST("/brands", requireSession, routes.CreateReference(brands))
	v1.GET("/equipment", routes.ListReferences(equipment))
	v1.POST("/equipment", requireSession, routes.CreateReference(equipment))

	v1.GET("/users/:id", routes.GetUserById(users))
	v1.GET("/users/:id/posts", routes.GetUserPosts(users, posts))

	r.Run(":" + cfg.Port)
}
