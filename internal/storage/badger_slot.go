package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/badger/v3"
)

// BadgerSlotStorage реализует SlotStorage поверх встраиваемой BadgerDB.
// Подходит для одиночного сервера без внешних зависимостей.
type BadgerSlotStorage struct {
	db      *badger.DB
	mu      sync.RWMutex
	isReady bool
}

// NewBadgerSlotStorage открывает BadgerDB в поддиректории dataPath
func NewBadgerSlotStorage(dataPath string) (*BadgerSlotStorage, error) {
	opts := badger.DefaultOptions(filepath.Join(dataPath, "slots"))
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	return &BadgerSlotStorage{db: db, isReady: true}, nil
}

// Get читает значение по ключу
func (s *BadgerSlotStorage) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isReady {
		return nil, false, fmt.Errorf("хранилище не готово")
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения ключа %q: %w", key, err)
	}
	return value, true, nil
}

// Set записывает значение под ключом
func (s *BadgerSlotStorage) Set(key string, value []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("ошибка записи ключа %q: %w", key, err)
	}
	return nil
}

// Delete удаляет ключ
func (s *BadgerSlotStorage) Delete(key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления ключа %q: %w", key, err)
	}
	return nil
}

// Close закрывает базу данных
func (s *BadgerSlotStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isReady {
		return nil
	}

	s.isReady = false
	return s.db.Close()
}
