package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// MariaSlotStorage реализует SlotStorage поверх MariaDB/MySQL.
// Слот хранится одной строкой таблицы save_slots.
type MariaSlotStorage struct {
	db *sql.DB
}

// MariaConfig содержит настройки подключения к MariaDB
type MariaConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

// NewMariaSlotStorage создаёт подключение к MariaDB и таблицу слотов
func NewMariaSlotStorage(cfg MariaConfig) (*MariaSlotStorage, error) {
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 3306
	}
	if cfg.Database == "" {
		cfg.Database = "voxelbuilder"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть подключение к MariaDB: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("не удалось подключиться к MariaDB: %w", err)
	}

	storage := &MariaSlotStorage{db: db}
	if err := storage.createTables(); err != nil {
		return nil, fmt.Errorf("не удалось создать таблицы: %w", err)
	}
	return storage, nil
}

// createTables создает таблицу слотов, если её нет
func (s *MariaSlotStorage) createTables() error {
	createSlotsTable := `
	CREATE TABLE IF NOT EXISTS save_slots (
		slot_key VARCHAR(191) NOT NULL PRIMARY KEY,
		payload MEDIUMBLOB NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`

	if _, err := s.db.Exec(createSlotsTable); err != nil {
		return fmt.Errorf("не удалось создать таблицу save_slots: %w", err)
	}
	return nil
}

// Get читает значение по ключу
func (s *MariaSlotStorage) Get(key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRow("SELECT payload FROM save_slots WHERE slot_key = ?", key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения слота %q: %w", key, err)
	}
	return payload, true, nil
}

// Set записывает значение под ключом (upsert)
func (s *MariaSlotStorage) Set(key string, value []byte) error {
	_, err := s.db.Exec(
		"INSERT INTO save_slots (slot_key, payload) VALUES (?, ?) ON DUPLICATE KEY UPDATE payload = VALUES(payload)",
		key, value)
	if err != nil {
		return fmt.Errorf("ошибка записи слота %q: %w", key, err)
	}
	return nil
}

// Delete удаляет ключ
func (s *MariaSlotStorage) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM save_slots WHERE slot_key = ?", key); err != nil {
		return fmt.Errorf("ошибка удаления слота %q: %w", key, err)
	}
	return nil
}

// Close закрывает подключение к базе данных
func (s *MariaSlotStorage) Close() error {
	return s.db.Close()
}
