package implementations

import (
	"github.com/annel0/voxel-builder/internal/world/block"
)

// init регистрирует все стандартные типы блоков в регистре.
// Пакет импортируется с пустым идентификатором там, где нужен полный набор.
func init() {
	block.Register(&CubeBehavior{})
	block.Register(&SlopeBehavior{})
	block.Register(&PyramidBehavior{})
	block.Register(&StoneBehavior{})
	block.Register(&WoodBehavior{})
}
