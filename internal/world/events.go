package world

import (
	"github.com/annel0/voxel-builder/internal/vec"
	"github.com/annel0/voxel-builder/internal/world/block"
)

// EventType определяет тип события сетки
type EventType string

const (
	EventTypeBlockPlaced  EventType = "block_placed"  // Установка блока
	EventTypeBlockRemoved EventType = "block_removed" // Удаление блока
	EventTypeGridCleared  EventType = "grid_cleared"  // Полная очистка сетки
	EventTypeGridLoaded   EventType = "grid_loaded"   // Восстановление из сохранения
)

// GridEvent описывает одно изменение состояния сетки.
// Сериализуется в JSON как payload конверта шины событий.
type GridEvent struct {
	Type      EventType     `json:"type"`
	Cell      vec.Vec3      `json:"cell,omitempty"`
	BlockType block.BlockID `json:"block_type,omitempty"`
	Count     int           `json:"count"` // Число блоков в сетке после события
}
