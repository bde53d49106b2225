package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDocument is the stored shape of one key
type mongoDocument struct {
	Key       string    `bson:"key"`
	Content   string    `bson:"content"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoSink upserts one document per key into a collection
type MongoSink struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// ConnectMongo opens a connection and verifies it with a ping
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// NewMongoSink creates a MongoSink. The sink owns client and disconnects it on Close.
func NewMongoSink(client *mongo.Client, database, collection string) *MongoSink {
	return &MongoSink{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

// Write upserts {key, content, updatedAt} matched by key
func (m *MongoSink) Write(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	rec := mongoDocument{Key: key, Content: value, UpdatedAt: time.Now().UTC()}
	_, err := m.collection.UpdateOne(ctx,
		bson.M{"key": key},
		bson.M{"$set": rec},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return &WriteError{Sink: "mongo", Key: key, Cause: err}
	}
	return nil
}

// Close disconnects the client
func (m *MongoSink) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
