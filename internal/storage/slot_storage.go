package storage

// SlotStorage определяет интерфейс key-value хранилища слота сохранения.
// Адаптер персистентности работает с ним через один фиксированный ключ;
// интерфейс намеренно узкий, чтобы бэкенды были взаимозаменяемы.
type SlotStorage interface {
	// Get читает значение по ключу.
	// Возвращает (nil, false, nil), если ключ отсутствует — отсутствие
	// сохранения не является ошибкой хранилища.
	Get(key string) ([]byte, bool, error)

	// Set записывает значение под ключом, безусловно перезаписывая прежнее.
	Set(key string, value []byte) error

	// Delete удаляет ключ. Удаление отсутствующего ключа не ошибка.
	Delete(key string) error

	// Close освобождает ресурсы бэкенда.
	Close() error
}
