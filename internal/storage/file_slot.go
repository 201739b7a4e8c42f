package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileSlotStorage реализует SlotStorage поверх файловой системы:
// одному ключу соответствует один файл в базовой директории.
type FileSlotStorage struct {
	basePath string
}

// NewFileSlotStorage создаёт файловое хранилище в указанной директории
func NewFileSlotStorage(basePath string) (*FileSlotStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию %s: %w", basePath, err)
	}

	return &FileSlotStorage{basePath: basePath}, nil
}

// Get читает значение по ключу
func (s *FileSlotStorage) Get(key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, fmt.Errorf("недействительный ключ: пустая строка")
	}

	data, err := os.ReadFile(s.filename(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения файла слота %q: %w", key, err)
	}
	return data, true, nil
}

// Set записывает значение под ключом.
// Запись идёт через временный файл с переименованием, чтобы
// прерванная запись не повредила предыдущее сохранение.
func (s *FileSlotStorage) Set(key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("недействительный ключ: пустая строка")
	}

	filename := s.filename(key)
	tmp := filename + ".tmp"

	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла слота %q: %w", key, err)
	}
	if err := os.Rename(tmp, filename); err != nil {
		return fmt.Errorf("ошибка переименования файла слота %q: %w", key, err)
	}
	return nil
}

// Delete удаляет ключ
func (s *FileSlotStorage) Delete(key string) error {
	if key == "" {
		return fmt.Errorf("недействительный ключ: пустая строка")
	}

	err := os.Remove(s.filename(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка удаления файла слота %q: %w", key, err)
	}
	return nil
}

// Close освобождает ресурсы (для файлов — ничего не делает)
func (s *FileSlotStorage) Close() error {
	return nil
}

// filename преобразует ключ в безопасное имя файла
func (s *FileSlotStorage) filename(key string) string {
	safe := strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(key)
	return filepath.Join(s.basePath, safe+".json")
}
