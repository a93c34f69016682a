// Package board は掲示板の投稿機能を提供します。
package board

import "go.mongodb.org/mongo-driver/bson/primitive"

// Post は掲示板の投稿を表します。
type Post struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content" json:"content"`
}
