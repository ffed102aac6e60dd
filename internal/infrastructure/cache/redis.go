package cache

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// RedisClient go-redisクライアントのラッパー（プロバイダ応答のキャッシュ用）
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient REDIS_ADDR / REDIS_PASSWORD からクライアントを初期化し、疎通を確認する
func NewRedisClient(ctx context.Context) (*RedisClient, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, fmt.Errorf("REDIS_ADDR環境変数が設定されていません")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redisへの接続に失敗: %w", err)
	}
	log.Printf("✅ Redis client initialized: %s", addr)

	return &RedisClient{client: client}, nil
}

// GetClient go-redisクライアントを取得
func (rc *RedisClient) GetClient() *redis.Client {
	return rc.client
}

// Close 接続を閉じる
func (rc *RedisClient) Close() error {
	return rc.client.Close()
}

// HealthCheck 接続のヘルスチェック
func (rc *RedisClient) HealthCheck(ctx context.Context) error {
	if rc.client == nil {
		return fmt.Errorf("Redisクライアントが初期化されていません")
	}
	return rc.client.Ping(ctx).Err()
}
