package implementations

import (
	"github.com/annel0/voxel-builder/internal/world/block"
)

// SlopeBehavior реализует поведение наклонного блока
type SlopeBehavior struct{}

// ID возвращает идентификатор блока
func (b *SlopeBehavior) ID() block.BlockID {
	return block.SlopeBlockID
}

// DisplayName возвращает имя блока
func (b *SlopeBehavior) DisplayName() string {
	return "Slope"
}

// Color возвращает цвет визуального примитива
func (b *SlopeBehavior) Color() string {
	return "#7ed321"
}
