package board

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "post"

// Repository は投稿をMongoDBの post コレクションに永続化します。
type Repository struct {
	posts *mongo.Collection
}

// NewRepository は Repository を作成します。
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		posts: db.Collection(collectionName),
	}
}

// List は全投稿を返します。投稿が無い場合は空のスライスを返します。
func (r *Repository) List(ctx context.Context) ([]Post, error) {
	cursor, err := r.posts.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	posts := []Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Get は指定IDの投稿を返します。
// IDの形式が不正な場合も存在しない場合と区別せず ErrNotFound を返します。
func (r *Repository) Get(ctx context.Context, id string) (*Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var post Post
	if err := r.posts.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create は投稿を保存し、採番されたIDを含む投稿を返します。
func (r *Repository) Create(ctx context.Context, title, content string) (*Post, error) {
	if err := validatePostInput(title, content); err != nil {
		return nil, err
	}

	post := Post{Title: title, Content: content}
	result, err := r.posts.InsertOne(ctx, post)
	if err != nil {
		return nil, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return &post, nil
}

// Update は指定IDの投稿のタイトルと内容を丸ごと置き換え、更新後の投稿を返します。
func (r *Repository) Update(ctx context.Context, id, title, content string) (*Post, error) {
	if err := validatePostInput(title, content); err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	result, err := r.posts.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "title", Value: title},
			{Key: "content", Value: content},
		}}},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	// 更新後の状態を読み直して返す
	return r.Get(ctx, id)
}

// Delete は指定IDの投稿を削除します。該当が無ければ ErrNotFound を返します。
func (r *Repository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.posts.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
