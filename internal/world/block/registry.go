package block

var registry = make(map[BlockID]BlockBehavior)

// Register добавляет поведение блока в регистр
func Register(behavior BlockBehavior) {
	registry[behavior.ID()] = behavior
}

// Get возвращает поведение для указанного ID
func Get(id BlockID) (BlockBehavior, bool) {
	behavior, exists := registry[id]
	return behavior, exists
}

// IsValidBlockID проверяет, зарегистрирован ли ID в регистре
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// ColorOf возвращает цвет для типа блока.
// Неизвестные теги получают цвет куба, но сам тег при этом
// сохраняется как есть — это контракт хранилища, а не регистра.
func ColorOf(id BlockID) string {
	if behavior, exists := registry[id]; exists {
		return behavior.Color()
	}
	if fallback, exists := registry[CubeBlockID]; exists {
		return fallback.Color()
	}
	return "#ffffff"
}

// RegisteredIDs возвращает список всех зарегистрированных типов
func RegisteredIDs() []BlockID {
	ids := make([]BlockID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}
