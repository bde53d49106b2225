package config

import (
	"github.com/spf13/viper"
)

// FromEnv builds a Config from environment variables layered over Defaults().
// A .env file, when present, should already be loaded by the caller (godotenv).
func FromEnv() Config {
	v := viper.New()
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("RESUME_SINK", d.Sink)
	v.SetDefault("RESUME_KEY", d.Key)
	v.SetDefault("RESUME_DIR", d.Dir)
	v.SetDefault("REDIS_ADDR", d.RedisAddr)
	v.SetDefault("REDIS_DB", d.RedisDB)
	v.SetDefault("REDIS_PREFIX", d.RedisPrefix)
	v.SetDefault("MONGO_DATABASE", d.MongoDatabase)
	v.SetDefault("MONGO_COLLECTION", d.MongoCollection)
	v.SetDefault("MINIO_BUCKET", d.MinIOBucket)
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("LOG_LEVEL", d.LogLevel)
	v.SetDefault("LOG_FORMAT", d.LogFormat)

	return Config{
		Sink:            v.GetString("RESUME_SINK"),
		Key:             v.GetString("RESUME_KEY"),
		Dir:             v.GetString("RESUME_DIR"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		RedisDB:         v.GetInt("REDIS_DB"),
		RedisPrefix:     v.GetString("REDIS_PREFIX"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		MongoURI:        v.GetString("MONGO_URI"),
		MongoDatabase:   v.GetString("MONGO_DATABASE"),
		MongoCollection: v.GetString("MONGO_COLLECTION"),
		MinIOEndpoint:   v.GetString("MINIO_ENDPOINT"),
		MinIOAccessKey:  v.GetString("MINIO_ACCESS_KEY"),
		MinIOSecretKey:  v.GetString("MINIO_SECRET_KEY"),
		MinIOBucket:     v.GetString("MINIO_BUCKET"),
		MinIOUseSSL:     v.GetBool("MINIO_USE_SSL"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
	}
}

// Resolve returns the effective configuration: the file at path (if any) over the environment
func Resolve(path string) (Config, error) {
	env := FromEnv()
	if path == "" {
		return env, nil
	}
	file, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}
	return file.MergeWithDefaults(env), nil
}
