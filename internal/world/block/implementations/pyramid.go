package implementations

import (
	"github.com/annel0/voxel-builder/internal/world/block"
)

// PyramidBehavior реализует поведение пирамидального блока
type PyramidBehavior struct{}

// ID возвращает идентификатор блока
func (b *PyramidBehavior) ID() block.BlockID {
	return block.PyramidBlockID
}

// DisplayName возвращает имя блока
func (b *PyramidBehavior) DisplayName() string {
	return "Pyramid"
}

// Color возвращает цвет визуального примитива
func (b *PyramidBehavior) Color() string {
	return "#f5a623"
}
