package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/board-api/internal/user"
)

// UserService はユーザーの永続化操作を提供するサービスが実装します。
type UserService interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	Create(ctx context.Context, username, passwordHash string) (*user.User, error)
	ListPublic(ctx context.Context) ([]user.PublicUser, error)
}

// Handler は認証まわりのHTTPハンドラーをまとめた構造体です。
type Handler struct {
	users UserService
	creds *Credentials
}

// NewHandler は Handler を作成します。
func NewHandler(users UserService, creds *Credentials) *Handler {
	return &Handler{
		users: users,
		creds: creds,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup は POST /signup のハンドラーです。セッションは作成しません。
func (h *Handler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ユーザー名とパスワードは必須です"})
		return
	}

	hashed, err := h.creds.Hash(req.Password)
	if err != nil {
		log.Printf("password hashing error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "サーバー内部でエラーが発生しました"})
		return
	}

	if _, err := h.users.Create(c.Request.Context(), req.Username, hashed); err != nil {
		if errors.Is(err, user.ErrDuplicateUsername) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "このユーザー名は既に使用されています"})
			return
		}
		log.Printf("database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "データベースエラーが発生しました"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "会員登録が完了しました"})
}

// Login は POST /login のハンドラーです。
// 成功時はセッションにユーザーを紐付け、レスポンスにはユーザー名のみを含めます。
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ユーザー名とパスワードは必須です"})
		return
	}

	u, err := h.users.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		log.Printf("database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "データベースエラーが発生しました"})
		return
	}
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "ユーザーが存在しません"})
		return
	}

	if !h.creds.Verify(req.Password, u.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "パスワードが一致しません"})
		return
	}

	if err := bindUser(c, u); err != nil {
		log.Printf("session save error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "セッションの保存に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "ログインに成功しました",
		"user":    gin.H{"username": u.Username},
	})
}

// Logout は GET /logout のハンドラーです。ログイン状態に関わらず破棄を試みます。
func (h *Handler) Logout(c *gin.Context) {
	if err := destroySession(c); err != nil {
		log.Printf("session destroy error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "セッションの削除に失敗しました"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ログアウトしました"})
}

// Welcome は GET /welcome のハンドラーです。RequireLogin の後段で動作します。
func (h *Handler) Welcome(c *gin.Context) {
	v, ok := c.Get(ContextUserKey)
	u, valid := v.(*user.User)
	if !ok || !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "ログインが必要です"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("こんにちは、%sさん", u.Username)})
}

// Users は GET /users のハンドラーです。パスワードハッシュは決して含まれません。
func (h *Handler) Users(c *gin.Context) {
	users, err := h.users.ListPublic(c.Request.Context())
	if err != nil {
		log.Printf("database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "データベースエラーが発生しました"})
		return
	}
	c.JSON(http.StatusOK, users)
}
