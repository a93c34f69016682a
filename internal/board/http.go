package board

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PostService は投稿の永続化操作を提供するサービスが実装します。
type PostService interface {
	List(ctx context.Context) ([]Post, error)
	Get(ctx context.Context, id string) (*Post, error)
	Create(ctx context.Context, title, content string) (*Post, error)
	Update(ctx context.Context, id, title, content string) (*Post, error)
	Delete(ctx context.Context, id string) error
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListHandler は GET /list のハンドラーを返します。
func ListHandler(svc PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := svc.List(c.Request.Context())
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// GetHandler は GET /content/:id のハンドラーを返します。
func GetHandler(svc PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// CreateHandler は POST /content のハンドラーを返します。
func CreateHandler(svc PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req postRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "タイトルと内容は必須です"})
			return
		}

		post, err := svc.Create(c.Request.Context(), req.Title, req.Content)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, post)
	}
}

// UpdateHandler は PUT /content/:id のハンドラーを返します。
func UpdateHandler(svc PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req postRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "タイトルと内容は必須です"})
			return
		}

		post, err := svc.Update(c.Request.Context(), c.Param("id"), req.Title, req.Content)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// DeleteHandler は DELETE /content/:id のハンドラーを返します。
func DeleteHandler(svc PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// respondWithError はリポジトリのエラーをHTTPステータスに変換します。
// ストレージ障害の詳細はサーバー側でログに残し、クライアントには返しません。
func respondWithError(c *gin.Context, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "投稿が見つかりません"})
	default:
		log.Printf("database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "データベースエラーが発生しました"})
	}
}
