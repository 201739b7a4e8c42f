package storage

import (
	"fmt"
	"sync"
)

// MemorySlotStorage реализует SlotStorage в памяти.
// Используется как бэкенд по умолчанию и для CI/локальной разработки.
// ВНИМАНИЕ: данные теряются при перезапуске процесса!
type MemorySlotStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemorySlotStorage создает новое хранилище в памяти
func NewMemorySlotStorage() *MemorySlotStorage {
	return &MemorySlotStorage{
		data: make(map[string][]byte),
	}
}

// Get читает значение по ключу
func (s *MemorySlotStorage) Get(key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, fmt.Errorf("недействительный ключ: пустая строка")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.data[key]
	if !exists {
		return nil, false, nil
	}

	// Возвращаем копию, чтобы вызывающий не мог изменить хранимое значение
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set записывает значение под ключом
func (s *MemorySlotStorage) Set(key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("недействительный ключ: пустая строка")
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = stored
	return nil
}

// Delete удаляет ключ
func (s *MemorySlotStorage) Delete(key string) error {
	if key == "" {
		return fmt.Errorf("недействительный ключ: пустая строка")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Close освобождает ресурсы (для памяти — ничего не делает)
func (s *MemorySlotStorage) Close() error {
	return nil
}
