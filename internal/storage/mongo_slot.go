package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSlotStorage реализует SlotStorage поверх MongoDB.
// Слот хранится документом вида {_id: <ключ>, payload: <байты>, updated_at: <время>}.
type MongoSlotStorage struct {
	client     *mongo.Client
	collection *mongo.Collection
	ctxTimeout time.Duration
}

// MongoSlotConfig содержит настройки подключения к MongoDB
type MongoSlotConfig struct {
	URI        string // например, mongodb://localhost:27017
	Database   string
	Collection string
}

// NewMongoSlotStorage устанавливает соединение и возвращает хранилище
func NewMongoSlotStorage(cfg MongoSlotConfig) (*MongoSlotStorage, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "voxelbuilder"
	}
	if cfg.Collection == "" {
		cfg.Collection = "save_slots"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("MongoDB не отвечает на ping: %w", err)
	}

	return &MongoSlotStorage{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		ctxTimeout: 5 * time.Second,
	}, nil
}

type slotDocument struct {
	Key       string    `bson:"_id"`
	Payload   []byte    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Get читает значение по ключу
func (s *MongoSlotStorage) Get(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.ctxTimeout)
	defer cancel()

	var doc slotDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения слота %q из MongoDB: %w", key, err)
	}
	return doc.Payload, true, nil
}

// Set записывает значение под ключом (upsert)
func (s *MongoSlotStorage) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.ctxTimeout)
	defer cancel()

	doc := slotDocument{Key: key, Payload: value, UpdatedAt: time.Now().UTC()}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("ошибка записи слота %q в MongoDB: %w", key, err)
	}
	return nil
}

// Delete удаляет ключ
func (s *MongoSlotStorage) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.ctxTimeout)
	defer cancel()

	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("ошибка удаления слота %q из MongoDB: %w", key, err)
	}
	return nil
}

// Close разрывает соединение с MongoDB
func (s *MongoSlotStorage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.ctxTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}
