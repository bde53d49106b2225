package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/redis/go-redis/v9"
)

// Open builds the sink selected by cfg.Sink and verifies it can reach its backend
func Open(ctx context.Context, cfg config.Config) (Sink, error) {
	switch cfg.Sink {
	case config.SinkMemory:
		return NewMemorySink(), nil

	case config.SinkFile:
		return NewFileSink(cfg.Dir)

	case config.SinkRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisSink(client, cfg.RedisPrefix), nil

	case config.SinkPostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		sink, err := NewPostgresSink(ctx, database)
		if err != nil {
			database.Close()
			return nil, err
		}
		return sink, nil

	case config.SinkMongo:
		client, err := ConnectMongo(ctx, cfg.MongoURI, 10*time.Second)
		if err != nil {
			return nil, err
		}
		return NewMongoSink(client, cfg.MongoDatabase, cfg.MongoCollection), nil

	case config.SinkMinIO:
		return NewMinIOSink(ctx, MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			UseSSL:    cfg.MinIOUseSSL,
			Bucket:    cfg.MinIOBucket,
		})

	default:
		return nil, &UnknownSinkError{Kind: cfg.Sink}
	}
}
