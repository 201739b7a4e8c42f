package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisSlotStorage реализует SlotStorage поверх Redis.
// Полезен, когда несколько процессов должны видеть один слот сохранения.
type RedisSlotStorage struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisSlotStorage подключается к Redis и проверяет соединение
func NewRedisSlotStorage(addr, password string, db int) (*RedisSlotStorage, error) {
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("не удалось подключиться к Redis: %w", err)
	}

	return &RedisSlotStorage{client: client, ctx: ctx}, nil
}

// Get читает значение по ключу
func (s *RedisSlotStorage) Get(key string) ([]byte, bool, error) {
	value, err := s.client.Get(s.ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения ключа %q из Redis: %w", key, err)
	}
	return value, true, nil
}

// Set записывает значение под ключом без TTL: слот живёт до перезаписи
func (s *RedisSlotStorage) Set(key string, value []byte) error {
	if err := s.client.Set(s.ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("ошибка записи ключа %q в Redis: %w", key, err)
	}
	return nil
}

// Delete удаляет ключ
func (s *RedisSlotStorage) Delete(key string) error {
	if err := s.client.Del(s.ctx, key).Err(); err != nil {
		return fmt.Errorf("ошибка удаления ключа %q из Redis: %w", key, err)
	}
	return nil
}

// Close закрывает соединение с Redis
func (s *RedisSlotStorage) Close() error {
	return s.client.Close()
}
