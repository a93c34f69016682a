package auth

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/board-api/internal/user"
)

const (
	// SessionCookieName はセッションクッキーの名前です。
	SessionCookieName = "board_session"

	sessionKeyUser = "auth_user"
)

// ContextUserKey は、ハンドラー間でログイン済みユーザーを共有するためのキーです。
const ContextUserKey = "auth.user"

func init() {
	// セッションにユーザーレコードを格納するための型登録
	gob.Register(user.User{})
}

// bindUser はユーザーをセッションに紐付けます。
// ログイン時点のレコードがそのまま格納されます（コピーであり、以後更新されません）。
func bindUser(c *gin.Context, u *user.User) error {
	session := sessions.Default(c)
	session.Set(sessionKeyUser, *u)
	return session.Save()
}

// currentUser はセッションに紐付いたユーザーを返します。
func currentUser(c *gin.Context) (*user.User, bool) {
	session := sessions.Default(c)
	u, ok := session.Get(sessionKeyUser).(user.User)
	if !ok {
		return nil, false
	}
	return &u, true
}

// destroySession はセッションを破棄します。破棄の失敗は呼び出し元に返します。
func destroySession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

// RequireLogin はログイン済みであることを要求するミドルウェアを返します。
// 未ログインの場合は 401 を返し、後続のハンドラーは実行されません。
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := currentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "ログインが必要です"})
			return
		}
		c.Set(ContextUserKey, u)
		c.Next()
	}
}
