// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"

	"github.com/yourusername/board-api/internal/auth"
	"github.com/yourusername/board-api/internal/board"
	"github.com/yourusername/board-api/internal/config"
	"github.com/yourusername/board-api/internal/session"
	"github.com/yourusername/board-api/internal/store"
	"github.com/yourusername/board-api/internal/user"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// データベース接続はリスナー起動前に確立する
	ctx := context.Background()
	db, disconnect, err := store.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		_ = disconnect(context.Background())
	}()
	log.Printf("MongoDB connected (db: %s)", cfg.DBName)

	users := user.NewRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}
	posts := board.NewRepository(db)

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()

	// セッションストアの設定
	sessionStore, err := setupSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to set up session store: %v", err)
	}
	router.Use(sessions.Sessions(auth.SessionCookieName, sessionStore))

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins()
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		"Authorization",
	}
	router.Use(cors.New(corsConfig))

	// ルーティングの設定
	setupRoutes(router, cfg, posts, users)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupSessionStore はセッションストアを作成します。
// SESSION_REDIS_URL が設定されていればRedisに、無ければ署名付きクッキーに保存します。
func setupSessionStore(cfg *config.Config) (sessions.Store, error) {
	var sessionStore sessions.Store
	if cfg.SessionRedisURL != "" {
		opt, err := redis.ParseURL(cfg.SessionRedisURL)
		if err != nil {
			return nil, err
		}
		sessionStore = session.NewRedisStore(redis.NewClient(opt), []byte(cfg.SessionSecret))
	} else {
		sessionStore = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAgeMinutes * 60,
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteStrictMode,
	})
	return sessionStore, nil
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "board-api",
		"version": "0.1.0",
	})
}

// handleRoot はホームエンドポイントのハンドラーです。
func handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello, World!"})
}

// setupRoutes は掲示板と認証まわりの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config, posts *board.Repository, users *user.Repository) {
	router.GET("/health", handleHealth)
	router.GET("/", handleRoot)

	// 投稿のCRUD（認証不要）
	router.GET("/list", board.ListHandler(posts))
	router.GET("/content/:id", board.GetHandler(posts))
	router.POST("/content", board.CreateHandler(posts))
	router.PUT("/content/:id", board.UpdateHandler(posts))
	router.DELETE("/content/:id", board.DeleteHandler(posts))

	// 認証まわり
	authHandler := auth.NewHandler(users, auth.NewCredentials(cfg.BcryptCost))
	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)
	router.GET("/users", authHandler.Users)
	router.GET("/logout", authHandler.Logout)
	router.GET("/welcome", auth.RequireLogin(), authHandler.Welcome)
}
