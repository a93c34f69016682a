// Package store はMongoDBへの接続を管理します。
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yourusername/board-api/internal/config"
)

const connectTimeout = 10 * time.Second

// Connect はMongoDBに接続し、疎通確認済みのデータベースハンドルを返します。
// リスナー起動前に呼び出し、ハンドルは各リポジトリへ明示的に注入します。
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Database, func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DBURL))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(cfg.DBName), client.Disconnect, nil
}
