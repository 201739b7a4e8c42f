package implementations

import (
	"github.com/annel0/voxel-builder/internal/world/block"
)

// CubeBehavior реализует поведение базового куба.
// Куб — тип по умолчанию: его цвет используется как fallback
// для неизвестных тегов из повреждённых сохранений.
type CubeBehavior struct{}

// ID возвращает идентификатор блока
func (b *CubeBehavior) ID() block.BlockID {
	return block.CubeBlockID
}

// DisplayName возвращает имя блока
func (b *CubeBehavior) DisplayName() string {
	return "Cube"
}

// Color возвращает цвет визуального примитива
func (b *CubeBehavior) Color() string {
	return "#4a90e2"
}
