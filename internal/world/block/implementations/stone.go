package implementations

import (
	"github.com/annel0/voxel-builder/internal/world/block"
)

// StoneBehavior реализует поведение каменного блока
type StoneBehavior struct{}

// ID возвращает идентификатор блока
func (b *StoneBehavior) ID() block.BlockID {
	return block.StoneBlockID
}

// DisplayName возвращает имя блока
func (b *StoneBehavior) DisplayName() string {
	return "Stone"
}

// Color возвращает цвет визуального примитива
func (b *StoneBehavior) Color() string {
	return "#7f8c8d"
}
