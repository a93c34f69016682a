// Package session はセッションストアの実装を提供します。
package session

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"net/http"
	"time"

	ginsessions "github.com/gin-contrib/sessions"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	gsessions "github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisStore はセッションをRedisに保存する gin-contrib/sessions 互換のストアです。
// クッキーには署名付きのセッションIDのみを持たせ、値はRedisに格納します。
// Redis側の障害はセッションの保存・破棄エラーとして呼び出し元に返ります。
type RedisStore struct {
	rdb     *redis.Client
	codecs  []securecookie.Codec
	options *gsessions.Options
}

// NewRedisStore は RedisStore を作成します。keyPairs はクッキー署名鍵です。
func NewRedisStore(rdb *redis.Client, keyPairs ...[]byte) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		codecs: securecookie.CodecsFromPairs(keyPairs...),
		options: &gsessions.Options{
			Path:   "/",
			MaxAge: 86400,
		},
	}
}

// Options はセッションクッキーのオプションを設定します。
func (s *RedisStore) Options(opts ginsessions.Options) {
	s.options = opts.ToGorillaOptions()
	for _, codec := range s.codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(opts.MaxAge)
		}
	}
}

// Get はリクエストのレジストリからセッションを取得します。
func (s *RedisStore) Get(r *http.Request, name string) (*gsessions.Session, error) {
	return gsessions.GetRegistry(r).Get(s, name)
}

// New はクッキーのセッションIDを検証し、対応する値をRedisから読み込みます。
// クッキーが無い・復号できない・Redisに値が無い場合は新規セッションになります。
// Redis読み取りの失敗はエラーとして返しますが、gin-contrib/sessions の
// ミドルウェアはそれをログに記録して空のセッションで処理を続行するため、
// 読み取り障害中のゲート付きルートは500ではなく401になります。
func (s *RedisStore) New(r *http.Request, name string) (*gsessions.Session, error) {
	session := gsessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	var id string
	if err := securecookie.DecodeMulti(name, cookie.Value, &id, s.codecs...); err != nil {
		return session, nil
	}
	session.ID = id

	found, err := s.load(r.Context(), session)
	if err != nil {
		return session, err
	}
	session.IsNew = !found
	return session, nil
}

// Save はセッションをRedisに保存し、署名済みIDをクッキーに書き込みます。
// MaxAge が0以下の場合はRedisのレコードを削除し、クッキーを失効させます。
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *gsessions.Session) error {
	if session.Options.MaxAge <= 0 {
		if err := s.delete(r.Context(), session); err != nil {
			return err
		}
		http.SetCookie(w, gsessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if err := s.save(r.Context(), session); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, gsessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *RedisStore) load(ctx context.Context, session *gsessions.Session) (bool, error) {
	data, err := s.rdb.Get(ctx, sessionKey(session.ID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&session.Values); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) save(ctx context.Context, session *gsessions.Session) error {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(session.Values); err != nil {
		return err
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	return s.rdb.Set(ctx, sessionKey(session.ID), buf.Bytes(), ttl).Err()
}

func (s *RedisStore) delete(ctx context.Context, session *gsessions.Session) error {
	if session.ID == "" {
		return nil
	}
	return s.rdb.Del(ctx, sessionKey(session.ID)).Err()
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}
