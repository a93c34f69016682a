// Package user はユーザーアカウントの永続化を提供します。
package user

import "go.mongodb.org/mongo-driver/bson/primitive"

// User はユーザーアカウントを表します。
// パスワードハッシュはJSONに含めません。
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`
}

// PublicUser は一覧表示用の公開情報のみを持つユーザーです。
type PublicUser struct {
	Username string `bson:"username" json:"username"`
}
