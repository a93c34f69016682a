package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "user"

// ErrDuplicateUsername は同名のユーザーが既に存在する場合に返されます。
var ErrDuplicateUsername = errors.New("username already exists")

// Repository はユーザーをMongoDBの user コレクションに永続化します。
type Repository struct {
	users *mongo.Collection
}

// NewRepository は Repository を作成します。
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		users: db.Collection(collectionName),
	}
}

// EnsureIndexes は username のユニークインデックスを作成します。
// 事前チェックをすり抜けた同時登録はこのインデックスが拒否します。
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// FindByUsername は指定されたユーザー名のユーザーを返します。
// 存在しない場合は (nil, nil) を返します。
func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	if err := r.users.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create はユーザーを保存します。ユーザー名が既に使われている場合は
// ErrDuplicateUsername を返します。
func (r *Repository) Create(ctx context.Context, username, passwordHash string) (*User, error) {
	existing, err := r.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	u := User{Username: username, Password: passwordHash}
	result, err := r.users.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return &u, nil
}

// ListPublic は全ユーザーの公開情報を返します。
// パスワードハッシュはクエリのプロジェクションで常に除外します。
func (r *Repository) ListPublic(ctx context.Context) ([]PublicUser, error) {
	cursor, err := r.users.Find(ctx, bson.D{},
		options.Find().SetProjection(bson.D{{Key: "password", Value: 0}}))
	if err != nil {
		return nil, err
	}

	users := []PublicUser{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
