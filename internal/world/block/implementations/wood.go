package implementations

import (
	"github.com/annel0/voxel-builder/internal/world/block"
)

// WoodBehavior реализует поведение деревянного блока
type WoodBehavior struct{}

// ID возвращает идентификатор блока
func (b *WoodBehavior) ID() block.BlockID {
	return block.WoodBlockID
}

// DisplayName возвращает имя блока
func (b *WoodBehavior) DisplayName() string {
	return "Wood"
}

// Color возвращает цвет визуального примитива
func (b *WoodBehavior) Color() string {
	return "#8b5a2b"
}
